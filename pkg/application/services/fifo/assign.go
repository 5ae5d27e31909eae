package fifo

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// AssignBatches tags each order item with the batches that would cover its
// weight, oldest first. Items of the same product draw down the same queue,
// so a later item starts where an earlier one stopped. Items with no queue
// keep their existing tag.
func AssignBatches(order *entities.SalesOrder, queues []ProductQueue) {
	remaining := make(map[entities.ItemKey][]Batch, len(queues))
	for _, q := range queues {
		batches := make([]Batch, len(q.Batches))
		copy(batches, q.Batches)
		remaining[q.Key] = batches
	}

	for i := range order.Items {
		item := &order.Items[i]
		key := entities.ProductKey(item.ProductName, item.Size)
		batches, ok := remaining[key]
		if !ok || len(batches) == 0 {
			continue
		}

		need := item.CalculatedWeightKg
		var tags []string
		for len(batches) > 0 && need.IsPositive() {
			b := &batches[0]
			if !b.WeightKg.IsPositive() {
				batches = batches[1:]
				continue
			}
			tags = append(tags, b.BatchNo)
			take := decimal.Min(need, b.WeightKg)
			b.WeightKg = b.WeightKg.Sub(take)
			need = need.Sub(take)
			if !b.WeightKg.IsPositive() {
				batches = batches[1:]
			}
		}
		remaining[key] = batches
		if len(tags) > 0 {
			item.AssignedBatch = strings.Join(tags, ", ")
		}
	}
}
