// Package planning turns open order demand into a production plan.
package planning

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// CartonConverter converts weight to cartons for a product and size
type CartonConverter interface {
	KgToCartons(product, size string, kg decimal.Decimal) (decimal.Decimal, bool)
}

// Requirement is the production needed to cover open orders for one
// product and size
type Requirement struct {
	Key          entities.ItemKey `json:"key"`
	ProductName  string           `json:"productName"`
	Size         string           `json:"size"`
	DemandKg     decimal.Decimal  `json:"demandKg"`
	AvailableKg  decimal.Decimal  `json:"availableKg"`
	ToProduceKg  decimal.Decimal  `json:"toProduceKg"`
	ToProduceCtn int64            `json:"toProduceCtn"`
	OrderIDs     []string         `json:"orderIds"`
}

// Planner compares open demand with finished-goods stock
type Planner struct {
	converter CartonConverter
}

// NewPlanner creates a planner
func NewPlanner(converter CartonConverter) *Planner {
	return &Planner{converter: converter}
}

// Plan aggregates the demand of Pending and Processing orders per product
// and size and returns a requirement for every key the snapshot cannot
// cover, sorted by key. Cartons round up.
func (p *Planner) Plan(orders []*entities.SalesOrder, snapshot map[entities.ItemKey]decimal.Decimal) []Requirement {
	byKey := make(map[entities.ItemKey]*Requirement)

	for _, o := range orders {
		if !o.Status.IsOpen() {
			continue
		}
		for _, item := range o.Items {
			key := entities.ProductKey(item.ProductName, item.Size)
			req, ok := byKey[key]
			if !ok {
				req = &Requirement{
					Key:         key,
					ProductName: item.ProductName,
					Size:        item.Size,
					AvailableKg: snapshot[key],
				}
				byKey[key] = req
			}
			req.DemandKg = req.DemandKg.Add(item.CalculatedWeightKg)
			if n := len(req.OrderIDs); n == 0 || req.OrderIDs[n-1] != o.ID {
				req.OrderIDs = append(req.OrderIDs, o.ID)
			}
		}
	}

	plan := make([]Requirement, 0, len(byKey))
	for _, req := range byKey {
		short := req.DemandKg.Sub(req.AvailableKg)
		if !short.IsPositive() {
			continue
		}
		req.ToProduceKg = short
		if p.converter != nil {
			if ctn, ok := p.converter.KgToCartons(req.ProductName, req.Size, short); ok {
				req.ToProduceCtn = ctn.Ceil().IntPart()
			}
		}
		plan = append(plan, *req)
	}

	sort.Slice(plan, func(i, j int) bool {
		return plan[i].Key < plan[j].Key
	})
	return plan
}
