// Package projection replays dated stock movements over static opening
// balances to compute the balance of every master item on a date.
package projection

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// Projector computes balances relative to a baseline date. Movements dated
// before the baseline are already reflected in the opening numbers.
type Projector struct {
	Baseline entities.Date
}

// NewProjector creates a projector anchored at baseline
func NewProjector(baseline entities.Date) *Projector {
	return &Projector{Baseline: baseline}
}

type flows struct {
	before  decimal.Decimal
	inflow  decimal.Decimal
	outflow decimal.Decimal
}

// Project returns one balance row per master item, in item order.
//
// opening = master opening + net movements dated before asOf
// inflow, outflow = movements dated exactly asOf
// closing = opening + inflow - outflow
func (p *Projector) Project(items []entities.MasterItem, movements []entities.StockMovement, asOf entities.Date) []entities.BalanceRow {
	byKey := make(map[entities.ItemKey]*flows, len(items))
	for _, item := range items {
		byKey[normalizeKey(item.Key)] = &flows{}
	}

	for _, m := range movements {
		if m.Date.Before(p.Baseline) || m.Date.After(asOf) {
			continue
		}
		f, ok := byKey[normalizeKey(m.Key)]
		if !ok {
			continue
		}
		switch {
		case m.Date.Before(asOf):
			if m.Direction == entities.Inflow {
				f.before = f.before.Add(m.Quantity)
			} else {
				f.before = f.before.Sub(m.Quantity)
			}
		case m.Direction == entities.Inflow:
			f.inflow = f.inflow.Add(m.Quantity)
		default:
			f.outflow = f.outflow.Add(m.Quantity)
		}
	}

	rows := make([]entities.BalanceRow, 0, len(items))
	for _, item := range items {
		f := byKey[normalizeKey(item.Key)]
		opening := item.Opening.Add(f.before)
		rows = append(rows, entities.BalanceRow{
			Item:    item,
			AsOf:    asOf,
			Opening: opening,
			Inflow:  f.inflow,
			Outflow: f.outflow,
			Closing: opening.Add(f.inflow).Sub(f.outflow),
		})
	}
	return rows
}

// Snapshot maps each row's key to its closing balance
func Snapshot(rows []entities.BalanceRow) map[entities.ItemKey]decimal.Decimal {
	out := make(map[entities.ItemKey]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[normalizeKey(row.Item.Key)] = row.Closing
	}
	return out
}

// normalizeKey re-normalizes each part of a "PRODUCT|SIZE" or material key
// so hand-built keys still match
func normalizeKey(k entities.ItemKey) entities.ItemKey {
	if product, size, ok := strings.Cut(string(k), "|"); ok {
		return entities.ProductKey(product, size)
	}
	return entities.MaterialKey(string(k))
}
