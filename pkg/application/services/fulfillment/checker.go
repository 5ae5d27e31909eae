// Package fulfillment classifies sales orders against finished-goods stock.
package fulfillment

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// Status is an order's readiness for dispatch
type Status string

const (
	Ready      Status = "Ready"
	Partial    Status = "Partial"
	OutOfStock Status = "Out of Stock"
)

// MissingItem is one order line the stock cannot cover
type MissingItem struct {
	ProductName string          `json:"productName"`
	Size        string          `json:"size"`
	RequiredKg  decimal.Decimal `json:"requiredKg"`
	AvailableKg decimal.Decimal `json:"availableKg"`
	ShortfallKg decimal.Decimal `json:"shortfallKg"`
}

// Result is the classification of one order
type Result struct {
	OrderID      string        `json:"orderId"`
	Status       Status        `json:"status"`
	MissingItems []MissingItem `json:"missingItems"`
}

// Checker classifies orders. It holds no state.
type Checker struct{}

// NewChecker creates a new fulfillment checker
func NewChecker() *Checker {
	return &Checker{}
}

// Classify compares every line with the snapshot independently. Lines do
// not draw down a shared balance. An order with no lines is Ready.
//
// The shortfall is required - available without flooring, so it exceeds the
// required weight when stock is already negative.
func (c *Checker) Classify(order *entities.SalesOrder, snapshot map[entities.ItemKey]decimal.Decimal) Result {
	result := Result{OrderID: order.ID, MissingItems: []MissingItem{}}

	satisfied := 0
	for _, item := range order.Items {
		available := snapshot[entities.ProductKey(item.ProductName, item.Size)]
		required := item.CalculatedWeightKg
		if available.GreaterThanOrEqual(required) {
			satisfied++
			continue
		}
		result.MissingItems = append(result.MissingItems, MissingItem{
			ProductName: item.ProductName,
			Size:        item.Size,
			RequiredKg:  required,
			AvailableKg: available,
			ShortfallKg: required.Sub(available),
		})
	}

	switch {
	case satisfied == len(order.Items):
		result.Status = Ready
	case satisfied == 0:
		result.Status = OutOfStock
	default:
		result.Status = Partial
	}
	return result
}

// ClassifyAll classifies every order in the slice
func (c *Checker) ClassifyAll(orders []*entities.SalesOrder, snapshot map[entities.ItemKey]decimal.Decimal) []Result {
	results := make([]Result, 0, len(orders))
	for _, o := range orders {
		results = append(results, c.Classify(o, snapshot))
	}
	return results
}
