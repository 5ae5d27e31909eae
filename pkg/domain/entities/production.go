package entities

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrReturnAndDispatch is returned when a ledger line claims to be both a
// return and a dispatch
var ErrReturnAndDispatch = errors.New("record cannot be both a return and a dispatch")

// RecordKind is the semantic of a ledger line, derived from its flags
type RecordKind int

const (
	Production RecordKind = iota
	Return
	Dispatch
)

// String method for RecordKind enum
func (k RecordKind) String() string {
	switch k {
	case Production:
		return "Production"
	case Return:
		return "Return"
	case Dispatch:
		return "Dispatch"
	default:
		return "Unknown"
	}
}

// ProductionRecord is one production ledger line. With both flags false it
// is production output; IsReturn brings material back into finished goods;
// IsDispatch is a manual deduction not tied to a sales order.
type ProductionRecord struct {
	ID          string          `json:"id" db:"id" validate:"required"`
	Date        Date            `json:"date" db:"date" validate:"required"`
	ProductName string          `json:"productName" db:"product_name" validate:"required"`
	BatchNo     string          `json:"batchNo" db:"batch_no"`
	Size        string          `json:"size" db:"size" validate:"required"`
	WeightKg    decimal.Decimal `json:"weightKg" db:"weight_kg"`
	RejectedKg  decimal.Decimal `json:"rejectedKg" db:"rejected_kg"`
	DuplesPkt   int64           `json:"duplesPkt" db:"duples_pkt" validate:"gte=0"`
	CartonCtn   int64           `json:"cartonCtn" db:"carton_ctn" validate:"gte=0"`
	Notes       string          `json:"notes" db:"notes"`
	Timestamp   int64           `json:"timestamp" db:"timestamp"`
	IsReturn    bool            `json:"isReturn" db:"is_return"`
	IsDispatch  bool            `json:"isDispatch" db:"is_dispatch"`
}

// NewProductionRecord creates a validated production ledger line
func NewProductionRecord(
	id string,
	date Date,
	productName, batchNo, size string,
	weightKg, rejectedKg decimal.Decimal,
	duplesPkt, cartonCtn int64,
	kind RecordKind,
) (*ProductionRecord, error) {
	if _, err := ParseDate(string(date)); err != nil {
		return nil, err
	}
	if productName == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}
	if size == "" {
		return nil, fmt.Errorf("size cannot be empty")
	}
	if weightKg.IsNegative() {
		return nil, fmt.Errorf("weight cannot be negative, got %s", weightKg)
	}
	if rejectedKg.IsNegative() {
		return nil, fmt.Errorf("rejected weight cannot be negative, got %s", rejectedKg)
	}
	if duplesPkt < 0 || cartonCtn < 0 {
		return nil, fmt.Errorf("packet and carton counts cannot be negative, got %d/%d", duplesPkt, cartonCtn)
	}

	return &ProductionRecord{
		ID:          id,
		Date:        date,
		ProductName: productName,
		BatchNo:     batchNo,
		Size:        size,
		WeightKg:    weightKg,
		RejectedKg:  rejectedKg,
		DuplesPkt:   duplesPkt,
		CartonCtn:   cartonCtn,
		IsReturn:    kind == Return,
		IsDispatch:  kind == Dispatch,
	}, nil
}

// Kind derives the record semantic from the two flags
func (r *ProductionRecord) Kind() RecordKind {
	switch {
	case r.IsReturn:
		return Return
	case r.IsDispatch:
		return Dispatch
	default:
		return Production
	}
}

// Validate checks the flag invariant
func (r *ProductionRecord) Validate() error {
	if r.IsReturn && r.IsDispatch {
		return ErrReturnAndDispatch
	}
	return nil
}

// PacketWeight approximates the weight of one packet. Zero when no packets
// were recorded.
func (r *ProductionRecord) PacketWeight() decimal.Decimal {
	if r.DuplesPkt <= 0 {
		return decimal.Zero
	}
	return r.WeightKg.Div(decimal.NewFromInt(r.DuplesPkt))
}
