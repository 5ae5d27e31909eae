package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a manual stock transaction
type TransactionType string

const (
	Inward     TransactionType = "INWARD"
	Issue      TransactionType = "ISSUE"
	Adjustment TransactionType = "ADJUSTMENT"
)

// ParseTransactionType accepts a type name case-insensitively
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(s))) {
	case Inward:
		return Inward, nil
	case Issue:
		return Issue, nil
	case Adjustment:
		return Adjustment, nil
	default:
		return "", fmt.Errorf("invalid transaction type: %s (expected INWARD, ISSUE or ADJUSTMENT)", s)
	}
}

// StockTransaction is a manual inventory adjustment against a master item
type StockTransaction struct {
	ID     string          `json:"id" db:"id" validate:"required"`
	ItemID string          `json:"itemId" db:"item_id" validate:"required"`
	Date   Date            `json:"date" db:"date" validate:"required"`
	Qty    decimal.Decimal `json:"qty" db:"qty"`
	Type   TransactionType `json:"type" db:"type" validate:"oneof=INWARD ISSUE ADJUSTMENT"`
	Notes  string          `json:"notes" db:"notes"`
}

// Direction splits the transaction into inflow or outflow. INWARD and ISSUE
// use the magnitude; ADJUSTMENT is signed.
func (t *StockTransaction) Direction() (Direction, decimal.Decimal) {
	switch t.Type {
	case Inward:
		return Inflow, t.Qty.Abs()
	case Issue:
		return Outflow, t.Qty.Abs()
	default:
		if t.Qty.IsNegative() {
			return Outflow, t.Qty.Neg()
		}
		return Inflow, t.Qty
	}
}

// Customer is a buyer referenced by sales orders
type Customer struct {
	ID            string `json:"id" db:"id" validate:"required"`
	Name          string `json:"name" db:"name" validate:"required"`
	ContactPerson string `json:"contactPerson,omitempty" db:"contact_person"`
	Phone         string `json:"phone,omitempty" db:"phone"`
	Address       string `json:"address,omitempty" db:"address"`
	City          string `json:"city,omitempty" db:"city"`
}
