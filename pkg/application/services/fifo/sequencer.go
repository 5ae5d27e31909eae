// Package fifo builds first-in-first-out dispatch queues from the production
// ledger.
package fifo

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/domain/services"
)

// Batch is the aggregated stock of one production batch
type Batch struct {
	BatchNo   string          `json:"batchNo"`
	Date      entities.Date   `json:"date"`
	Cartons   int64           `json:"cartons"`
	WeightKg  decimal.Decimal `json:"weightKg"`
	Pallets   decimal.Decimal `json:"pallets"`
	RecordIDs []string        `json:"recordIds"`
}

// ProductQueue is the batches of one product and size, oldest first
type ProductQueue struct {
	Key         entities.ItemKey `json:"key"`
	ProductName string           `json:"productName"`
	Size        string           `json:"size"`
	Batches     []Batch          `json:"batches"`
	TotalKg     decimal.Decimal  `json:"totalKg"`
	TotalCtn    int64            `json:"totalCtn"`
	Pallets     decimal.Decimal  `json:"pallets"`
}

// Head is the batch to dispatch first
func (q *ProductQueue) Head() (Batch, bool) {
	if len(q.Batches) == 0 {
		return Batch{}, false
	}
	return q.Batches[0], true
}

// Waiting returns the batches queued behind the head
func (q *ProductQueue) Waiting() []Batch {
	if len(q.Batches) < 2 {
		return nil
	}
	return q.Batches[1:]
}

// Options controls which ledger lines enter the queues
type Options struct {
	// ExcludeNonProduction drops return and dispatch lines. Off by default:
	// the ledger has always queued every line.
	ExcludeNonProduction bool
}

// Sequencer builds dispatch queues
type Sequencer struct {
	opts Options
}

// NewSequencer creates a sequencer with the given options
func NewSequencer(opts Options) *Sequencer {
	return &Sequencer{opts: opts}
}

type group struct {
	queue   *ProductQueue
	batches map[string]*Batch
	order   []string
}

// BuildQueues groups records by product and size, aggregates each batch,
// sorts batches by date and drops groups with no stock. Queues come back
// sorted by key.
func (s *Sequencer) BuildQueues(records []entities.ProductionRecord) []ProductQueue {
	groups := make(map[entities.ItemKey]*group)
	var keys []entities.ItemKey

	for _, r := range records {
		if s.opts.ExcludeNonProduction && r.Kind() != entities.Production {
			continue
		}
		key := entities.ProductKey(r.ProductName, r.Size)
		g, ok := groups[key]
		if !ok {
			g = &group{
				queue: &ProductQueue{
					Key:         key,
					ProductName: r.ProductName,
					Size:        r.Size,
				},
				batches: make(map[string]*Batch),
			}
			groups[key] = g
			keys = append(keys, key)
		}

		batchKey := strings.TrimSpace(r.BatchNo)
		b, ok := g.batches[batchKey]
		if !ok {
			b = &Batch{BatchNo: r.BatchNo, Date: r.Date}
			g.batches[batchKey] = b
			g.order = append(g.order, batchKey)
		}
		b.Cartons += r.CartonCtn
		b.WeightKg = b.WeightKg.Add(r.WeightKg)
		b.RecordIDs = append(b.RecordIDs, r.ID)
		if r.Date.Before(b.Date) {
			b.Date = r.Date
		}
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	queues := make([]ProductQueue, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		q := g.queue
		for _, batchKey := range g.order {
			b := g.batches[batchKey]
			b.Pallets = services.Pallets(b.WeightKg)
			q.Batches = append(q.Batches, *b)
			q.TotalKg = q.TotalKg.Add(b.WeightKg)
			q.TotalCtn += b.Cartons
		}
		if !q.TotalKg.IsPositive() {
			continue
		}
		// Stable: batches sharing a date keep ledger order.
		sort.SliceStable(q.Batches, func(i, j int) bool {
			return q.Batches[i].Date.Before(q.Batches[j].Date)
		})
		q.Pallets = services.Pallets(q.TotalKg)
		queues = append(queues, *q)
	}
	return queues
}
