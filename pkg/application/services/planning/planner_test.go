package planning

import (
	"testing"

	"github.com/shopspring/decimal"

	fixtures "github.com/vsinha/factoryops/pkg/application/services/testing"
	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/domain/masterdata"
	"github.com/vsinha/factoryops/pkg/domain/services"
)

func TestPlanner_Plan(t *testing.T) {
	planner := NewPlanner(services.NewUnitConverter(masterdata.Default()))

	orders := []*entities.SalesOrder{
		fixtures.Order("O1", "2025-12-05", entities.OrderPending,
			fixtures.Item("SPARKWELD 6013", "3.2 x 350", 30, 600),
			fixtures.Item("SPARKWELD 7018", "3.2 x 350", 5, 100),
		),
		fixtures.Order("O2", "2025-12-06", entities.OrderProcessing,
			fixtures.Item("sparkweld 6013", "3.2X350", 20, 410),
		),
		fixtures.Order("O3", "2025-12-06", entities.OrderDispatched,
			fixtures.Item("SPARKWELD 6013", "3.2 x 350", 500, 10000),
		),
	}
	snapshot := map[entities.ItemKey]decimal.Decimal{
		entities.ProductKey("SPARKWELD 6013", "3.2 x 350"): decimal.NewFromInt(500),
		entities.ProductKey("SPARKWELD 7018", "3.2 x 350"): decimal.NewFromInt(500),
	}

	plan := planner.Plan(orders, snapshot)
	if len(plan) != 1 {
		t.Fatalf("Expected 1 requirement, got %d", len(plan))
	}

	req := plan[0]
	if !req.DemandKg.Equal(decimal.NewFromInt(1010)) {
		t.Errorf("Expected demand 1010 kg, got %s", req.DemandKg)
	}
	if !req.ToProduceKg.Equal(decimal.NewFromInt(510)) {
		t.Errorf("Expected 510 kg to produce, got %s", req.ToProduceKg)
	}
	if req.ToProduceCtn != 26 {
		t.Errorf("Expected 26 cartons rounded up, got %d", req.ToProduceCtn)
	}
	if len(req.OrderIDs) != 2 {
		t.Errorf("Expected orders O1 and O2, got %v", req.OrderIDs)
	}
}

func TestPlanner_NegativeStockAndUnknownProduct(t *testing.T) {
	planner := NewPlanner(services.NewUnitConverter(masterdata.Default()))
	orders := []*entities.SalesOrder{
		fixtures.Order("O1", "2025-12-05", entities.OrderPending,
			fixtures.Item("SPARKWELD 6013", "3.2 x 350", 1, 20),
			fixtures.Item("WIDGET", "1 x 1", 1, 5),
		),
	}
	snapshot := map[entities.ItemKey]decimal.Decimal{
		entities.ProductKey("SPARKWELD 6013", "3.2 x 350"): decimal.NewFromInt(-40),
	}

	plan := planner.Plan(orders, snapshot)
	if len(plan) != 2 {
		t.Fatalf("Expected 2 requirements, got %d", len(plan))
	}
	if !plan[0].ToProduceKg.Equal(decimal.NewFromInt(60)) || plan[0].ToProduceCtn != 3 {
		t.Errorf("Expected 60 kg / 3 ctn for 6013, got %s / %d", plan[0].ToProduceKg, plan[0].ToProduceCtn)
	}
	if plan[1].ToProduceCtn != 0 {
		t.Errorf("Expected no carton estimate for unknown product, got %d", plan[1].ToProduceCtn)
	}
}
