package fulfillment

import (
	"testing"

	"github.com/shopspring/decimal"

	fixtures "github.com/vsinha/factoryops/pkg/application/services/testing"
	"github.com/vsinha/factoryops/pkg/domain/entities"
)

func snapshot(kv map[string]int64) map[entities.ItemKey]decimal.Decimal {
	out := make(map[entities.ItemKey]decimal.Decimal, len(kv))
	for k, v := range kv {
		out[entities.ItemKey(k)] = decimal.NewFromInt(v)
	}
	return out
}

func TestChecker_Classify(t *testing.T) {
	stock := snapshot(map[string]int64{
		"SPARKWELD6013|3.2X350": 1000,
		"SPARKWELD7018|2.6X350": 50,
		"SPARKWELDNI|2.5X300":   -20,
	})

	tests := []struct {
		name      string
		items     []entities.SalesOrderItem
		status    Status
		missing   int
		shortfall int64
	}{
		{
			name:   "all covered",
			items:  []entities.SalesOrderItem{fixtures.Item("SPARKWELD 6013", "3.2 x 350", 50, 1000)},
			status: Ready,
		},
		{
			name: "one of two covered",
			items: []entities.SalesOrderItem{
				fixtures.Item("SPARKWELD 6013", "3.2 x 350", 10, 200),
				fixtures.Item("SPARKWELD 7018", "2.6 x 350", 10, 200),
			},
			status:    Partial,
			missing:   1,
			shortfall: 150,
		},
		{
			name:      "nothing covered",
			items:     []entities.SalesOrderItem{fixtures.Item("SPARKWELD 7018", "2.6x350", 5, 100)},
			status:    OutOfStock,
			missing:   1,
			shortfall: 50,
		},
		{
			name:      "negative stock over-commits",
			items:     []entities.SalesOrderItem{fixtures.Item("sparkweld ni", "2.5 X 300", 1, 10)},
			status:    OutOfStock,
			missing:   1,
			shortfall: 30,
		},
		{
			name:      "unknown product",
			items:     []entities.SalesOrderItem{fixtures.Item("WIDGET", "1 x 1", 1, 10)},
			status:    OutOfStock,
			missing:   1,
			shortfall: 10,
		},
		{
			name:   "empty order",
			status: Ready,
		},
	}

	checker := NewChecker()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := fixtures.Order("O1", "2025-12-05", entities.OrderPending, tt.items...)
			result := checker.Classify(order, stock)

			if result.Status != tt.status {
				t.Errorf("Expected status %s, got %s", tt.status, result.Status)
			}
			if len(result.MissingItems) != tt.missing {
				t.Fatalf("Expected %d missing items, got %d", tt.missing, len(result.MissingItems))
			}
			if tt.missing > 0 && !result.MissingItems[0].ShortfallKg.Equal(decimal.NewFromInt(tt.shortfall)) {
				t.Errorf("Expected shortfall %d, got %s", tt.shortfall, result.MissingItems[0].ShortfallKg)
			}
		})
	}
}

func TestChecker_LinesDoNotShareStock(t *testing.T) {
	stock := snapshot(map[string]int64{"SPARKWELD6013|3.2X350": 100})
	order := fixtures.Order("O1", "2025-12-05", entities.OrderPending,
		fixtures.Item("SPARKWELD 6013", "3.2 x 350", 5, 100),
		fixtures.Item("SPARKWELD 6013", "3.2 x 350", 5, 100),
	)

	result := NewChecker().Classify(order, stock)
	if result.Status != Ready {
		t.Errorf("Expected each line checked on its own to be Ready, got %s", result.Status)
	}
}

func TestChecker_ClassifyAll(t *testing.T) {
	orders := []*entities.SalesOrder{
		fixtures.Order("O1", "2025-12-05", entities.OrderPending),
		fixtures.Order("O2", "2025-12-05", entities.OrderPending, fixtures.Item("WIDGET", "1 x 1", 1, 10)),
	}

	results := NewChecker().ClassifyAll(orders, nil)
	if len(results) != 2 || results[0].OrderID != "O1" || results[1].Status != OutOfStock {
		t.Errorf("Unexpected results: %+v", results)
	}
}
