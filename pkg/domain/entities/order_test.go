package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSalesOrder_RecomputeTotals(t *testing.T) {
	order := &SalesOrder{
		ID:        "SO-1",
		OrderDate: "2025-12-02",
		Items: []SalesOrderItem{
			{ProductName: "SPARKWELD 6013", Size: "3.2 x 350", QuantityCtn: 5, CalculatedWeightKg: decimal.NewFromInt(100), PricePerKg: decimal.NewFromInt(150)},
			{ProductName: "SPARKWELD 7018", Size: "4.0 x 350", QuantityCtn: 2, CalculatedWeightKg: decimal.NewFromInt(40), PricePerKg: decimal.NewFromInt(200)},
		},
		// Stale totals from a previous edit must be discarded
		TotalWeightKg: decimal.NewFromInt(999),
		Status:        OrderPending,
	}

	order.RecomputeTotals()

	if !order.TotalWeightKg.Equal(decimal.NewFromInt(140)) {
		t.Errorf("Expected total weight 140, got %s", order.TotalWeightKg)
	}
	if !order.Items[0].ItemValue.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("Expected first item value 15000, got %s", order.Items[0].ItemValue)
	}
	if !order.TotalValue.Equal(decimal.NewFromInt(23000)) {
		t.Errorf("Expected total value 23000, got %s", order.TotalValue)
	}

	// Removing an item must shrink the total
	order.Items = order.Items[:1]
	order.RecomputeTotals()
	if !order.TotalWeightKg.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected total weight 100 after removing an item, got %s", order.TotalWeightKg)
	}
}

func TestOrderStatus(t *testing.T) {
	testCases := []struct {
		status       OrderStatus
		reducesStock bool
		isOpen       bool
	}{
		{OrderPending, false, true},
		{OrderProcessing, false, true},
		{OrderDispatched, true, false},
		{OrderDelivered, true, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			if tc.status.ReducesStock() != tc.reducesStock {
				t.Errorf("Expected ReducesStock %t for %s", tc.reducesStock, tc.status)
			}
			if tc.status.IsOpen() != tc.isOpen {
				t.Errorf("Expected IsOpen %t for %s", tc.isOpen, tc.status)
			}
		})
	}

	parsed, err := ParseOrderStatus(" delivered ")
	if err != nil {
		t.Fatalf("Expected status to parse: %v", err)
	}
	if parsed != OrderDelivered {
		t.Errorf("Expected Delivered, got %s", parsed)
	}
	if _, err := ParseOrderStatus("Shipped"); err == nil {
		t.Error("Expected error for unknown status")
	}
}

func TestSalesOrder_StockDate(t *testing.T) {
	order := SalesOrder{OrderDate: "2025-12-02"}
	if order.StockDate() != "2025-12-02" {
		t.Errorf("Expected order date as stock date, got %s", order.StockDate())
	}
	order.DispatchDate = "2025-12-06"
	if order.StockDate() != "2025-12-06" {
		t.Errorf("Expected dispatch date as stock date, got %s", order.StockDate())
	}
}
