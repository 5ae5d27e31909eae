package projection

import (
	"testing"

	"github.com/shopspring/decimal"

	fixtures "github.com/vsinha/factoryops/pkg/application/services/testing"
	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/domain/masterdata"
)

func rowFor(t *testing.T, rows []entities.BalanceRow, key entities.ItemKey) entities.BalanceRow {
	t.Helper()
	for _, row := range rows {
		if row.Item.Key == key {
			return row
		}
	}
	t.Fatalf("No balance row for %s", key)
	return entities.BalanceRow{}
}

func assertDecimal(t *testing.T, what string, expected int64, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(expected)) {
		t.Errorf("Expected %s %d, got %s", what, expected, got)
	}
}

func values(records ...*entities.ProductionRecord) []entities.ProductionRecord {
	out := make([]entities.ProductionRecord, 0, len(records))
	for _, r := range records {
		out = append(out, *r)
	}
	return out
}

func TestProjector_ConcreteScenario(t *testing.T) {
	master := masterdata.Default()
	p := NewProjector(master.FinishedGoodsBaseline)
	key := entities.ProductKey("SPARKWELD 6013", "2.6 x 350")

	records := values(
		fixtures.Production("R1", "2025-12-03", "SPARKWELD 6013", "B1", "2.6 x 350", 500, 100, 25),
	)
	movements := FinishedGoodsMovements(records, nil)

	row := rowFor(t, p.Project(master.FinishedGoods, movements, "2025-12-03"), key)
	assertDecimal(t, "opening on 12-03", 2214, row.Opening)
	assertDecimal(t, "inflow on 12-03", 500, row.Inflow)
	assertDecimal(t, "closing on 12-03", 2714, row.Closing)

	records = append(records, *fixtures.Dispatch("R2", "2025-12-04", "SPARKWELD 6013", "2.6 x 350", 300))
	movements = FinishedGoodsMovements(records, nil)

	row = rowFor(t, p.Project(master.FinishedGoods, movements, "2025-12-05"), key)
	assertDecimal(t, "opening on 12-05", 2414, row.Opening)
	assertDecimal(t, "closing on 12-05", 2414, row.Closing)
}

func TestProjector_ClosingEqualsNextOpening(t *testing.T) {
	master := masterdata.Default()
	p := NewProjector(master.FinishedGoodsBaseline)
	data := fixtures.BuildSampleDataset()
	movements := FinishedGoodsMovements(data.RecordValues(), data.OrderValues())

	days := entities.DateRange("2025-12-01", "2025-12-08")
	for _, day := range days[:len(days)-1] {
		today := p.Project(master.FinishedGoods, movements, day)
		tomorrow := p.Project(master.FinishedGoods, movements, day.Next())
		for i := range today {
			if !today[i].Closing.Equal(tomorrow[i].Opening) {
				t.Errorf("%s on %s: closing %s != next opening %s",
					today[i].Item.Key, day, today[i].Closing, tomorrow[i].Opening)
			}
		}
	}
}

func TestProjector_BaselineExclusion(t *testing.T) {
	master := masterdata.Default()
	p := NewProjector(master.FinishedGoodsBaseline)
	key := entities.ProductKey("SPARKWELD 6013", "2.6 x 350")

	base := values(fixtures.Production("R1", "2025-12-02", "SPARKWELD 6013", "B1", "2.6 x 350", 100, 20, 5))
	withOld := append(values(fixtures.Production("R0", "2025-11-15", "SPARKWELD 6013", "B0", "2.6 x 350", 900, 180, 45)), base...)

	for _, asOf := range []entities.Date{"2025-11-15", "2025-12-01", "2025-12-05"} {
		without := rowFor(t, p.Project(master.FinishedGoods, FinishedGoodsMovements(base, nil), asOf), key)
		with := rowFor(t, p.Project(master.FinishedGoods, FinishedGoodsMovements(withOld, nil), asOf), key)
		if !without.Opening.Equal(with.Opening) || !without.Closing.Equal(with.Closing) {
			t.Errorf("On %s: pre-baseline event changed balance (%s/%s vs %s/%s)",
				asOf, without.Opening, without.Closing, with.Opening, with.Closing)
		}
	}
}

func TestProjector_ZeroEvents(t *testing.T) {
	master := masterdata.Default()
	rows := NewProjector(master.FinishedGoodsBaseline).Project(master.FinishedGoods, nil, "2025-12-10")

	if len(rows) != len(master.FinishedGoods) {
		t.Fatalf("Expected %d rows, got %d", len(master.FinishedGoods), len(rows))
	}
	for i, row := range rows {
		item := master.FinishedGoods[i]
		if !row.Opening.Equal(item.Opening) || !row.Closing.Equal(item.Opening) {
			t.Errorf("%s: expected opening and closing %s, got %s and %s", item.Key, item.Opening, row.Opening, row.Closing)
		}
		if !row.Inflow.IsZero() || !row.Outflow.IsZero() {
			t.Errorf("%s: expected no period activity, got %s in / %s out", item.Key, row.Inflow, row.Outflow)
		}
	}
}

func TestProjector_NormalizedKeys(t *testing.T) {
	master := masterdata.Default()
	p := NewProjector(master.FinishedGoodsBaseline)

	records := values(fixtures.Production("R1", "2025-12-03", "sparkweld6013", "B1", "2.6X350", 40, 8, 2))
	row := rowFor(t, p.Project(master.FinishedGoods, FinishedGoodsMovements(records, nil), "2025-12-03"),
		entities.ProductKey("SPARKWELD 6013", "2.6 x 350"))
	assertDecimal(t, "inflow", 40, row.Inflow)

	items := []entities.MasterItem{{Key: "Sparkweld 6013|2.6 x 350", Opening: decimal.NewFromInt(10)}}
	rows := p.Project(items, FinishedGoodsMovements(records, nil), "2025-12-03")
	assertDecimal(t, "closing for hand-built key", 50, rows[0].Closing)
}

func TestFinishedGoodsMovements_OrderStatus(t *testing.T) {
	master := masterdata.Default()
	p := NewProjector(master.FinishedGoodsBaseline)
	key := entities.ProductKey("SPARKWELD 6013", "3.2 x 350")
	item := fixtures.Item("SPARKWELD 6013", "3.2 x 350", 10, 200)

	tests := []struct {
		name    string
		status  entities.OrderStatus
		outflow int64
	}{
		{"pending", entities.OrderPending, 0},
		{"processing", entities.OrderProcessing, 0},
		{"dispatched", entities.OrderDispatched, 200},
		{"delivered", entities.OrderDelivered, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := fixtures.Order("O1", "2025-12-04", tt.status, item)
			movements := FinishedGoodsMovements(nil, []entities.SalesOrder{*order})
			row := rowFor(t, p.Project(master.FinishedGoods, movements, "2025-12-04"), key)
			assertDecimal(t, "outflow", tt.outflow, row.Outflow)
		})
	}
}

func TestFinishedGoodsMovements_DispatchDate(t *testing.T) {
	order := fixtures.Order("O1", "2025-12-04", entities.OrderDelivered,
		fixtures.Item("SPARKWELD 6013", "3.2 x 350", 10, 200))
	order.DispatchDate = "2025-12-06"

	movements := FinishedGoodsMovements(nil, []entities.SalesOrder{*order})
	if len(movements) != 1 {
		t.Fatalf("Expected 1 movement, got %d", len(movements))
	}
	if movements[0].Date != "2025-12-06" {
		t.Errorf("Expected movement on dispatch date 2025-12-06, got %s", movements[0].Date)
	}
	if movements[0].Source != entities.SourceSalesOrder {
		t.Errorf("Expected source %s, got %s", entities.SourceSalesOrder, movements[0].Source)
	}
}
