package testing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// mustCreateRecord is a helper for tests - panics on validation error
func mustCreateRecord(
	id string,
	date entities.Date,
	product, batch, size string,
	weightKg int64,
	packets, cartons int64,
	kind entities.RecordKind,
) *entities.ProductionRecord {
	rec, err := entities.NewProductionRecord(
		id,
		date,
		product,
		batch,
		size,
		decimal.NewFromInt(weightKg),
		decimal.Zero,
		packets,
		cartons,
		kind,
	)
	if err != nil {
		panic(err)
	}
	return rec
}

// Production builds a production ledger line
func Production(id string, date entities.Date, product, batch, size string, weightKg, packets, cartons int64) *entities.ProductionRecord {
	return mustCreateRecord(id, date, product, batch, size, weightKg, packets, cartons, entities.Production)
}

// Return builds a return ledger line
func Return(id string, date entities.Date, product, size string, weightKg int64) *entities.ProductionRecord {
	return mustCreateRecord(id, date, product, "", size, weightKg, 0, 0, entities.Return)
}

// Dispatch builds a manual dispatch ledger line
func Dispatch(id string, date entities.Date, product, size string, weightKg int64) *entities.ProductionRecord {
	return mustCreateRecord(id, date, product, "", size, weightKg, 0, 0, entities.Dispatch)
}

// Item builds an order line with an explicit weight
func Item(product, size string, cartons, weightKg int64) entities.SalesOrderItem {
	return entities.SalesOrderItem{
		ProductName:        product,
		Size:               size,
		QuantityCtn:        cartons,
		CalculatedWeightKg: decimal.NewFromInt(weightKg),
		PricePerKg:         decimal.NewFromInt(100),
	}
}

// Order builds a sales order with recomputed totals
func Order(id string, date entities.Date, status entities.OrderStatus, items ...entities.SalesOrderItem) *entities.SalesOrder {
	o := &entities.SalesOrder{
		ID:           id,
		OrderDate:    date,
		CustomerName: fmt.Sprintf("Customer %s", id),
		Items:        items,
		Status:       status,
	}
	o.RecomputeTotals()
	return o
}

// Transaction builds a manual stock transaction
func Transaction(id, itemID string, date entities.Date, typ entities.TransactionType, qty int64) *entities.StockTransaction {
	return &entities.StockTransaction{
		ID:     id,
		ItemID: itemID,
		Date:   date,
		Qty:    decimal.NewFromInt(qty),
		Type:   typ,
	}
}

// BuildSampleDataset creates a small week of factory activity after the
// December baseline
func BuildSampleDataset() *entities.Dataset {
	return &entities.Dataset{
		Records: []*entities.ProductionRecord{
			Production("R1", "2025-12-02", "SPARKWELD 6013", "B-1202", "2.6 x 350", 400, 80, 20),
			Production("R2", "2025-12-03", "SPARKWELD 6013", "B-1203", "2.6 x 350", 500, 100, 25),
			Production("R3", "2025-12-03", "SPARKWELD 7018", "B-7001", "3.2 x 350", 200, 40, 10),
			Production("R4", "2025-12-04", "SPARKWELD 7018 VACUUM", "V-0001", "4.0 x 450", 48, 24, 4),
			Return("R5", "2025-12-04", "SPARKWELD 6013", "3.2 x 350", 60),
			Dispatch("R6", "2025-12-05", "SPARKWELD 6013", "2.6 x 350", 300),
		},
		Orders: []*entities.SalesOrder{
			Order("O1", "2025-12-04", entities.OrderDispatched, Item("SPARKWELD 6013", "2.6 x 350", 10, 200)),
			Order("O2", "2025-12-05", entities.OrderPending,
				Item("SPARKWELD 6013", "2.6 x 350", 50, 1000),
				Item("SPARKWELD 7018", "5.0 x 450", 30, 600),
			),
		},
		Customers: []*entities.Customer{
			{ID: "C1", Name: "Customer O1", City: "Pune"},
		},
		Transactions: []*entities.StockTransaction{
			Transaction("T1", "PM-PKT-6013", "2025-12-02", entities.Inward, 500),
			Transaction("T2", "RM-WIRE-MS", "2025-12-03", entities.Issue, 1200),
			Transaction("T3", "PM-CTN-6013", "2025-12-05", entities.Adjustment, -15),
		},
	}
}
