// Package ledger summarizes the production ledger per day.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

var hundred = decimal.NewFromInt(100)

// DaySummary is the ledger activity of one date
type DaySummary struct {
	Date         entities.Date   `json:"date"`
	Records      int             `json:"records"`
	GoodKg       decimal.Decimal `json:"goodKg"`
	RejectedKg   decimal.Decimal `json:"rejectedKg"`
	RejectPct    decimal.Decimal `json:"rejectPct"`
	Packets      int64           `json:"packets"`
	Cartons      int64           `json:"cartons"`
	ReturnedKg   decimal.Decimal `json:"returnedKg"`
	DispatchedKg decimal.Decimal `json:"dispatchedKg"`
}

// Summarize returns one summary per date from..to inclusive, including
// days with no activity. Reject percentage is rejected / (good + rejected)
// over production lines, rounded to two places.
func Summarize(records []entities.ProductionRecord, from, to entities.Date) []DaySummary {
	days := entities.DateRange(from, to)
	index := make(map[entities.Date]*DaySummary, len(days))
	out := make([]DaySummary, len(days))
	for i, d := range days {
		out[i].Date = d
		index[d] = &out[i]
	}

	for _, r := range records {
		s, ok := index[r.Date]
		if !ok {
			continue
		}
		s.Records++
		switch r.Kind() {
		case entities.Return:
			s.ReturnedKg = s.ReturnedKg.Add(r.WeightKg)
		case entities.Dispatch:
			s.DispatchedKg = s.DispatchedKg.Add(r.WeightKg)
		default:
			s.GoodKg = s.GoodKg.Add(r.WeightKg)
			s.RejectedKg = s.RejectedKg.Add(r.RejectedKg)
			s.Packets += r.DuplesPkt
			s.Cartons += r.CartonCtn
		}
	}

	for i := range out {
		total := out[i].GoodKg.Add(out[i].RejectedKg)
		if total.IsPositive() {
			out[i].RejectPct = out[i].RejectedKg.Mul(hundred).Div(total).Round(2)
		}
	}
	return out
}

// Total folds a range of day summaries into one
func Total(days []DaySummary) DaySummary {
	var t DaySummary
	for _, d := range days {
		t.Records += d.Records
		t.GoodKg = t.GoodKg.Add(d.GoodKg)
		t.RejectedKg = t.RejectedKg.Add(d.RejectedKg)
		t.Packets += d.Packets
		t.Cartons += d.Cartons
		t.ReturnedKg = t.ReturnedKg.Add(d.ReturnedKg)
		t.DispatchedKg = t.DispatchedKg.Add(d.DispatchedKg)
	}
	if total := t.GoodKg.Add(t.RejectedKg); total.IsPositive() {
		t.RejectPct = t.RejectedKg.Mul(hundred).Div(total).Round(2)
	}
	return t
}
