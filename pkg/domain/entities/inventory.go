package entities

import "github.com/shopspring/decimal"

// ItemKey identifies a stock line after normalization: "PRODUCT|SIZE" for
// finished goods, the material id for packing and raw materials
type ItemKey string

// Direction is whether a movement adds to or removes from stock
type Direction int

const (
	Inflow Direction = iota
	Outflow
)

// String method for Direction enum
func (d Direction) String() string {
	switch d {
	case Inflow:
		return "Inflow"
	case Outflow:
		return "Outflow"
	default:
		return "Unknown"
	}
}

// MovementSource records which event produced a movement
type MovementSource string

const (
	SourceProduction  MovementSource = "production"
	SourceReturn      MovementSource = "return"
	SourceDispatch    MovementSource = "dispatch"
	SourceSalesOrder  MovementSource = "sales_order"
	SourceTransaction MovementSource = "transaction"
	SourceConsumption MovementSource = "consumption"
)

// StockMovement is a single dated quantity change against one stock key
type StockMovement struct {
	Key       ItemKey
	Date      Date
	Quantity  decimal.Decimal
	Direction Direction
	Source    MovementSource
	Ref       string
}

// MasterItem is a stock line with its static opening balance
type MasterItem struct {
	Key     ItemKey
	ItemID  string
	Product string
	Size    string
	Name    string
	Unit    string
	Opening decimal.Decimal
}

// BalanceRow is the projected balance of one master item on one date
type BalanceRow struct {
	Item    MasterItem      `json:"item"`
	AsOf    Date            `json:"asOf"`
	Opening decimal.Decimal `json:"opening"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Closing decimal.Decimal `json:"closing"`
}

// Dataset is the complete local state: every computation receives one and
// remote sync pushes or pulls one
type Dataset struct {
	Records      []*ProductionRecord `json:"records"`
	Orders       []*SalesOrder       `json:"orders"`
	Customers    []*Customer         `json:"customers"`
	Transactions []*StockTransaction `json:"transactions"`
}

// RecordValues flattens the record pointers for the pure projection functions
func (d *Dataset) RecordValues() []ProductionRecord {
	out := make([]ProductionRecord, 0, len(d.Records))
	for _, r := range d.Records {
		out = append(out, *r)
	}
	return out
}

// OrderValues flattens the order pointers
func (d *Dataset) OrderValues() []SalesOrder {
	out := make([]SalesOrder, 0, len(d.Orders))
	for _, o := range d.Orders {
		out = append(out, *o)
	}
	return out
}

// TransactionValues flattens the transaction pointers
func (d *Dataset) TransactionValues() []StockTransaction {
	out := make([]StockTransaction, 0, len(d.Transactions))
	for _, t := range d.Transactions {
		out = append(out, *t)
	}
	return out
}
