package projection

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// MaterialResolver decides which packing materials a record consumes
type MaterialResolver interface {
	Resolve(record *entities.ProductionRecord) (entities.MaterialResolution, error)
}

// FinishedGoodsMovements classifies ledger lines and shipped order items
// into finished-goods movements keyed by product and size. Only orders
// that have left the warehouse reduce stock.
func FinishedGoodsMovements(records []entities.ProductionRecord, orders []entities.SalesOrder) []entities.StockMovement {
	movements := make([]entities.StockMovement, 0, len(records))

	for _, r := range records {
		m := entities.StockMovement{
			Key:      entities.ProductKey(r.ProductName, r.Size),
			Date:     r.Date,
			Quantity: r.WeightKg,
			Ref:      r.ID,
		}
		switch r.Kind() {
		case entities.Return:
			m.Direction = entities.Inflow
			m.Source = entities.SourceReturn
		case entities.Dispatch:
			m.Direction = entities.Outflow
			m.Source = entities.SourceDispatch
		default:
			m.Direction = entities.Inflow
			m.Source = entities.SourceProduction
		}
		movements = append(movements, m)
	}

	for _, o := range orders {
		if !o.Status.ReducesStock() {
			continue
		}
		date := o.StockDate()
		for _, item := range o.Items {
			movements = append(movements, entities.StockMovement{
				Key:       entities.ProductKey(item.ProductName, item.Size),
				Date:      date,
				Quantity:  item.CalculatedWeightKg,
				Direction: entities.Outflow,
				Source:    entities.SourceSalesOrder,
				Ref:       o.ID,
			})
		}
	}
	return movements
}

// TransactionMovements turns manual stock transactions into movements
// keyed by material id
func TransactionMovements(txns []entities.StockTransaction) []entities.StockMovement {
	movements := make([]entities.StockMovement, 0, len(txns))
	for i := range txns {
		t := &txns[i]
		dir, qty := t.Direction()
		movements = append(movements, entities.StockMovement{
			Key:       entities.MaterialKey(t.ItemID),
			Date:      t.Date,
			Quantity:  qty,
			Direction: dir,
			Source:    entities.SourceTransaction,
			Ref:       t.ID,
		})
	}
	return movements
}

// PackingMovements combines manual transactions with the packets, cartons
// and foil bags consumed by production. Returns and dispatches consume no
// packing material.
func PackingMovements(
	records []entities.ProductionRecord,
	txns []entities.StockTransaction,
	resolver MaterialResolver,
) ([]entities.StockMovement, error) {
	movements := TransactionMovements(txns)

	for i := range records {
		r := &records[i]
		if r.Kind() != entities.Production {
			continue
		}
		res, err := resolver.Resolve(r)
		if err != nil {
			return nil, fmt.Errorf("resolving materials for record %s: %w", r.ID, err)
		}
		consume := func(id string, qty int64) {
			if id == "" || qty <= 0 {
				return
			}
			movements = append(movements, entities.StockMovement{
				Key:       entities.MaterialKey(id),
				Date:      r.Date,
				Quantity:  decimal.NewFromInt(qty),
				Direction: entities.Outflow,
				Source:    entities.SourceConsumption,
				Ref:       r.ID,
			})
		}
		consume(res.PacketID, r.DuplesPkt)
		consume(res.CartonID, r.CartonCtn)
		consume(res.FoilID, r.DuplesPkt)
	}
	return movements, nil
}
