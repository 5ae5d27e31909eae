package fifo

import (
	"testing"

	fixtures "github.com/vsinha/factoryops/pkg/application/services/testing"
	"github.com/vsinha/factoryops/pkg/domain/entities"
)

func TestAssignBatches(t *testing.T) {
	queues := NewSequencer(Options{}).BuildQueues(values(
		fixtures.Production("R1", "2025-01-02", "SPARKWELD 6013", "B2", "3.2 x 350", 300, 60, 15),
		fixtures.Production("R2", "2025-01-01", "SPARKWELD 6013", "B1", "3.2 x 350", 200, 40, 10),
		fixtures.Production("R3", "2025-01-03", "SPARKWELD 6013", "B3", "3.2 x 350", 500, 100, 25),
	))

	order := fixtures.Order("O1", "2025-01-05", entities.OrderProcessing,
		fixtures.Item("SPARKWELD 6013", "3.2 x 350", 5, 100),
		fixtures.Item("SPARKWELD 6013", "3.2X350", 15, 300),
		fixtures.Item("SPARKWELD 7018", "3.2 x 350", 1, 20),
	)
	order.Items[2].AssignedBatch = "MANUAL"

	AssignBatches(order, queues)

	expected := []string{"B1", "B1, B2", "MANUAL"}
	for i, want := range expected {
		if order.Items[i].AssignedBatch != want {
			t.Errorf("Item %d: expected batch %q, got %q", i, want, order.Items[i].AssignedBatch)
		}
	}

	head, _ := queues[0].Head()
	if head.BatchNo != "B1" || head.WeightKg.IntPart() != 200 {
		t.Errorf("Expected queues to be left untouched, head is %s with %s kg", head.BatchNo, head.WeightKg)
	}
}
