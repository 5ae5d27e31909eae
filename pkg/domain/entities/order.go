package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderStatus represents where a sales order is in its lifecycle
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderDispatched OrderStatus = "Dispatched"
	OrderDelivered  OrderStatus = "Delivered"
)

// ParseOrderStatus accepts a status name case-insensitively
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range []OrderStatus{OrderPending, OrderProcessing, OrderDispatched, OrderDelivered} {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid order status: %s (expected Pending, Processing, Dispatched or Delivered)", s)
}

// ReducesStock reports whether orders in this status have left the warehouse
func (s OrderStatus) ReducesStock() bool {
	return s == OrderDispatched || s == OrderDelivered
}

// IsOpen reports whether the order still awaits dispatch
func (s OrderStatus) IsOpen() bool {
	return s == OrderPending || s == OrderProcessing
}

// SalesOrderItem is one product line of a sales order
type SalesOrderItem struct {
	ProductName        string          `json:"productName" validate:"required"`
	Size               string          `json:"size" validate:"required"`
	QuantityCtn        int64           `json:"quantityCtn" validate:"gte=0"`
	CalculatedWeightKg decimal.Decimal `json:"calculatedWeightKg"`
	PricePerKg         decimal.Decimal `json:"pricePerKg"`
	ItemValue          decimal.Decimal `json:"itemValue"`
	AssignedBatch      string          `json:"assignedBatch,omitempty"`
}

// SalesOrder is a customer order
type SalesOrder struct {
	ID              string           `json:"id" validate:"required"`
	OrderDate       Date             `json:"orderDate" validate:"required"`
	DispatchDate    Date             `json:"dispatchDate,omitempty"`
	SalesPerson     string           `json:"salesPerson"`
	CustomerID      string           `json:"customerId,omitempty"`
	CustomerName    string           `json:"customerName" validate:"required"`
	CustomerPhone   string           `json:"customerPhone,omitempty"`
	CustomerAddress string           `json:"customerAddress,omitempty"`
	PONumber        string           `json:"poNumber,omitempty"`
	POFileData      string           `json:"poFileData,omitempty"`
	Items           []SalesOrderItem `json:"items" validate:"dive"`
	TotalWeightKg   decimal.Decimal  `json:"totalWeightKg"`
	TotalValue      decimal.Decimal  `json:"totalValue"`
	Status          OrderStatus      `json:"status" validate:"oneof=Pending Processing Dispatched Delivered"`
}

// RecomputeTotals derives item values and order totals from the line items.
// Stored totals are never trusted across edits.
func (o *SalesOrder) RecomputeTotals() {
	totalWeight := decimal.Zero
	totalValue := decimal.Zero
	for i := range o.Items {
		item := &o.Items[i]
		item.ItemValue = item.CalculatedWeightKg.Mul(item.PricePerKg)
		totalWeight = totalWeight.Add(item.CalculatedWeightKg)
		totalValue = totalValue.Add(item.ItemValue)
	}
	o.TotalWeightKg = totalWeight
	o.TotalValue = totalValue
}

// StockDate is the date the order leaves finished-goods stock
func (o *SalesOrder) StockDate() Date {
	if !o.DispatchDate.IsZero() {
		return o.DispatchDate
	}
	return o.OrderDate
}
