package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	fixtures "github.com/vsinha/factoryops/pkg/application/services/testing"
	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/domain/masterdata"
	"github.com/vsinha/factoryops/pkg/domain/repositories"
	domain "github.com/vsinha/factoryops/pkg/domain/services"
	"github.com/vsinha/factoryops/pkg/infrastructure/events"
	"github.com/vsinha/factoryops/pkg/infrastructure/repositories/memory"
)

func newTestLedger(t *testing.T) (*LedgerService, *memory.Store, *events.InMemoryEventStore) {
	t.Helper()
	store := memory.NewStore()
	eventStore := events.NewInMemoryEventStore(nil)
	svc := NewLedgerService(store, eventStore, domain.NewUnitConverter(masterdata.Default()), nil)
	svc.now = func() time.Time { return time.Date(2025, 12, 6, 9, 30, 0, 0, time.UTC) }
	return svc, store, eventStore
}

func TestLedgerService_SaveRecord(t *testing.T) {
	ctx := context.Background()
	svc, store, eventStore := newTestLedger(t)

	rec := fixtures.Production("", "2025-12-02", "SPARKWELD 6013", "B-1", "2.6 x 350", 400, 80, 20)
	saved, err := svc.SaveRecord(ctx, rec)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("Expected a generated id")
	}
	created := saved.Timestamp
	if created != svc.now().UnixMilli() {
		t.Errorf("Expected timestamp %d, got %d", svc.now().UnixMilli(), created)
	}

	svc.now = func() time.Time { return time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC) }
	edit := *saved
	edit.Timestamp = 0
	edit.WeightKg = decimal.NewFromInt(450)
	if _, err := svc.SaveRecord(ctx, &edit); err != nil {
		t.Fatalf("Unexpected error on edit: %v", err)
	}

	stored, err := store.GetRecord(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stored.Timestamp != created {
		t.Errorf("Expected edit to keep timestamp %d, got %d", created, stored.Timestamp)
	}
	if !stored.WeightKg.Equal(decimal.NewFromInt(450)) {
		t.Errorf("Expected weight 450, got %s", stored.WeightKg)
	}

	recorded, _ := eventStore.ReadEvents(events.RecordStream, 1)
	if len(recorded) != 2 {
		t.Fatalf("Expected 2 record events, got %d", len(recorded))
	}
	first := recorded[0].Data().(events.RecordSaved)
	second := recorded[1].Data().(events.RecordSaved)
	if !first.Created || second.Created {
		t.Errorf("Expected created=true then false, got %v then %v", first.Created, second.Created)
	}
}

func TestLedgerService_SaveRecordRejects(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		record    *entities.ProductionRecord
		sentinel  error
		wantField string
	}{
		{
			name: "return and dispatch",
			record: &entities.ProductionRecord{
				Date: "2025-12-02", ProductName: "SPARKWELD 6013", Size: "2.6 x 350",
				IsReturn: true, IsDispatch: true,
			},
			sentinel: entities.ErrReturnAndDispatch,
		},
		{
			name: "bad date",
			record: &entities.ProductionRecord{
				Date: "02/12/2025", ProductName: "SPARKWELD 6013", Size: "2.6 x 350",
			},
		},
		{
			name: "negative weight",
			record: &entities.ProductionRecord{
				Date: "2025-12-02", ProductName: "SPARKWELD 6013", Size: "2.6 x 350",
				WeightKg: decimal.NewFromInt(-1),
			},
		},
		{
			name: "missing product",
			record: &entities.ProductionRecord{
				Date: "2025-12-02", Size: "2.6 x 350",
			},
			wantField: "ProductionRecord.ProductName",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestLedger(t)
			_, err := svc.SaveRecord(ctx, tt.record)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("Expected %v, got %v", tt.sentinel, err)
			}
			if tt.wantField != "" {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("Expected ValidationError, got %T: %v", err, err)
				}
				if verr.Fields[tt.wantField] != "required" {
					t.Errorf("Expected %s=required, got %v", tt.wantField, verr.Fields)
				}
			}
			records, _ := store.ListRecords(ctx)
			if len(records) != 0 {
				t.Errorf("Expected nothing stored, got %d records", len(records))
			}
		})
	}
}

func TestLedgerService_SaveOrderRecomputesTotals(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestLedger(t)

	order := &entities.SalesOrder{
		OrderDate:     "2025-12-05",
		CustomerName:  "Acme Fabricators",
		Status:        entities.OrderPending,
		TotalWeightKg: decimal.NewFromInt(999999),
		Items: []entities.SalesOrderItem{
			{ProductName: "SPARKWELD 6013", Size: "2.6 x 350", QuantityCtn: 5, PricePerKg: decimal.NewFromInt(100)},
			{ProductName: "SPARKWELD 7018", Size: "3.2 x 350", QuantityCtn: 2, CalculatedWeightKg: decimal.NewFromInt(45), PricePerKg: decimal.NewFromInt(120)},
		},
	}

	saved, err := svc.SaveOrder(ctx, order)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if saved.ID == "" {
		t.Error("Expected a generated order id")
	}
	if !saved.Items[0].CalculatedWeightKg.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected derived weight 100, got %s", saved.Items[0].CalculatedWeightKg)
	}
	if !saved.Items[1].CalculatedWeightKg.Equal(decimal.NewFromInt(45)) {
		t.Errorf("Expected entered weight 45 kept, got %s", saved.Items[1].CalculatedWeightKg)
	}
	if !saved.TotalWeightKg.Equal(decimal.NewFromInt(145)) {
		t.Errorf("Expected total weight 145, got %s", saved.TotalWeightKg)
	}
	if !saved.TotalValue.Equal(decimal.NewFromInt(15400)) {
		t.Errorf("Expected total value 15400, got %s", saved.TotalValue)
	}
}

func TestLedgerService_SaveOrderRejectsBadStatus(t *testing.T) {
	svc, _, _ := newTestLedger(t)
	order := fixtures.Order("O9", "2025-12-05", entities.OrderStatus("Shipped"))

	_, err := svc.SaveOrder(context.Background(), order)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if verr.Fields["SalesOrder.Status"] != "oneof" {
		t.Errorf("Expected Status=oneof, got %v", verr.Fields)
	}
}

func TestLedgerService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestLedger(t)

	if _, err := svc.SaveOrder(ctx, fixtures.Order("O1", "2025-12-04", entities.OrderPending, fixtures.Item("SPARKWELD 6013", "2.6 x 350", 10, 200))); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	updated, err := svc.UpdateOrderStatus(ctx, "O1", entities.OrderDispatched)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if updated.DispatchDate != "2025-12-06" {
		t.Errorf("Expected dispatch date 2025-12-06, got %s", updated.DispatchDate)
	}

	_, err = svc.UpdateOrderStatus(ctx, "missing", entities.OrderDelivered)
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLedgerService_Deletes(t *testing.T) {
	ctx := context.Background()
	svc, store, eventStore := newTestLedger(t)
	if err := store.Replace(ctx, fixtures.BuildSampleDataset()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := svc.DeleteRecord(ctx, "R1"); err != nil {
		t.Errorf("Unexpected error deleting record: %v", err)
	}
	if err := svc.DeleteOrder(ctx, "O1"); err != nil {
		t.Errorf("Unexpected error deleting order: %v", err)
	}
	if err := svc.DeleteCustomer(ctx, "C1"); err != nil {
		t.Errorf("Unexpected error deleting customer: %v", err)
	}
	if err := svc.DeleteTransaction(ctx, "T1"); err != nil {
		t.Errorf("Unexpected error deleting transaction: %v", err)
	}
	if err := svc.DeleteRecord(ctx, "R1"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}

	all, _ := eventStore.ReadAllEvents(0)
	if len(all) != 4 {
		t.Errorf("Expected 4 delete events, got %d", len(all))
	}
}

func TestLedgerService_CustomersAndTransactions(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestLedger(t)

	customer, err := svc.SaveCustomer(ctx, &entities.Customer{Name: "Acme Fabricators", City: "Nashik"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if customer.ID == "" {
		t.Error("Expected a generated customer id")
	}

	_, err = svc.SaveTransaction(ctx, fixtures.Transaction("", "PM-PKT-6013", "2025-12-03", entities.Inward, 250))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	txns, _ := store.ListTransactions(ctx)
	if len(txns) != 1 || txns[0].ID == "" {
		t.Errorf("Expected 1 stored transaction with an id, got %+v", txns)
	}

	_, err = svc.SaveTransaction(ctx, fixtures.Transaction("T9", "PM-PKT-6013", "2025-12-03", entities.TransactionType("MOVE"), 1))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for unknown type, got %v", err)
	}
}

func TestLedgerService_Import(t *testing.T) {
	ctx := context.Background()
	svc, store, eventStore := newTestLedger(t)
	if err := store.Replace(ctx, fixtures.BuildSampleDataset()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	incoming := &entities.Dataset{
		Records: []*entities.ProductionRecord{
			fixtures.Production("R1", "2025-12-02", "SPARKWELD 6013", "B-1202", "2.6 x 350", 420, 84, 21),
			fixtures.Production("", "2025-12-06", "SPARKWELD 6013", "B-1206", "3.2 x 350", 300, 60, 15),
		},
		Orders: []*entities.SalesOrder{
			fixtures.Order("O3", "2025-12-06", entities.OrderPending, fixtures.Item("SPARKWELD 6013", "3.2 x 350", 5, 0)),
		},
	}

	merged, err := svc.Import(ctx, incoming)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(merged.Records) != 7 {
		t.Errorf("Expected 7 records after import, got %d", len(merged.Records))
	}
	if len(merged.Transactions) != 3 {
		t.Errorf("Expected local transactions kept, got %d", len(merged.Transactions))
	}

	r1, _ := store.GetRecord(ctx, "R1")
	if !r1.WeightKg.Equal(decimal.NewFromInt(420)) {
		t.Errorf("Expected imported R1 weight 420, got %s", r1.WeightKg)
	}
	o3, err := store.GetOrder(ctx, "O3")
	if err != nil {
		t.Fatalf("Expected O3 stored, got %v", err)
	}
	if !o3.TotalWeightKg.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected O3 weight derived to 100, got %s", o3.TotalWeightKg)
	}

	replaced, _ := eventStore.ReadEvents(events.DatasetStream, 1)
	if len(replaced) != 1 {
		t.Fatalf("Expected 1 dataset event, got %d", len(replaced))
	}
	if src := replaced[0].Data().(events.DatasetReplaced).Source; src != events.SourceImport {
		t.Errorf("Expected source %s, got %s", events.SourceImport, src)
	}
}

func TestLedgerService_ImportRejects(t *testing.T) {
	negative := fixtures.Production("", "2025-12-03", "SPARKWELD 6013", "B-1", "2.6 x 350", 100, 20, 5)
	negative.WeightKg = decimal.NewFromInt(-100)
	badDate := fixtures.Production("", "2025-12-03", "SPARKWELD 6013", "B-1", "2.6 x 350", 100, 20, 5)
	badDate.Date = "03/12/2025"

	tests := []struct {
		name     string
		incoming *entities.Dataset
	}{
		{"record bad date", &entities.Dataset{Records: []*entities.ProductionRecord{badDate}}},
		{"record negative weight", &entities.Dataset{Records: []*entities.ProductionRecord{negative}}},
		{"transaction bad date", &entities.Dataset{Transactions: []*entities.StockTransaction{
			{ItemID: "PM-CTN-6013", Date: "2025-13-01", Qty: decimal.NewFromInt(10), Type: entities.Inward},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestLedger(t)
			if _, err := svc.Import(context.Background(), tt.incoming); err == nil {
				t.Fatal("Expected import to fail")
			}
			snap, _ := store.Snapshot(context.Background())
			if len(snap.Records) != 0 || len(snap.Transactions) != 0 {
				t.Errorf("Expected store untouched, got %d records %d transactions", len(snap.Records), len(snap.Transactions))
			}
		})
	}
}

func TestLedgerService_ReimportIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestLedger(t)
	file := func() *entities.Dataset {
		return &entities.Dataset{
			Records: []*entities.ProductionRecord{
				fixtures.Production("", "2025-12-03", "SPARKWELD 6013", "B-1203", "2.6 x 350", 200, 40, 10),
				fixtures.Production("", "2025-12-03", "SPARKWELD 6013", "B-1203", "2.6 x 350", 200, 40, 10),
				fixtures.Production("", "2025-12-04", "SPARKWELD 7018", "B-1204", "3.2 x 350", 150, 30, 6),
			},
			Transactions: []*entities.StockTransaction{
				{ItemID: "PM-CTN-6013", Date: "2025-12-03", Qty: decimal.NewFromInt(100), Type: entities.Inward},
			},
		}
	}

	first, err := svc.Import(ctx, file())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(first.Records) != 3 {
		t.Fatalf("Expected identical lines kept apart, got %d records", len(first.Records))
	}
	stamp := first.Records[0].Timestamp

	svc.now = func() time.Time { return time.Date(2025, 12, 7, 8, 0, 0, 0, time.UTC) }
	if _, err := svc.Import(ctx, file()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	snap, _ := store.Snapshot(ctx)
	if len(snap.Records) != 3 || len(snap.Transactions) != 1 {
		t.Errorf("Expected 3 records and 1 transaction after re-import, got %d and %d", len(snap.Records), len(snap.Transactions))
	}
	for _, r := range snap.Records {
		if r.Timestamp != stamp {
			t.Errorf("Expected original timestamp %d kept on %s, got %d", stamp, r.ID, r.Timestamp)
		}
	}
}
