package sqlite

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// orderItems is stored as a JSON array in sales_orders.items
type orderItems []entities.SalesOrderItem

func (o orderItems) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]entities.SalesOrderItem(o))
	if err != nil {
		return nil, fmt.Errorf("encoding order items: %w", err)
	}
	return string(b), nil
}

func (o *orderItems) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*o = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into order items", src)
	}
	return json.Unmarshal(raw, (*[]entities.SalesOrderItem)(o))
}

type orderRow struct {
	ID              string               `db:"id"`
	OrderDate       entities.Date        `db:"order_date"`
	DispatchDate    entities.Date        `db:"dispatch_date"`
	SalesPerson     string               `db:"sales_person"`
	CustomerID      string               `db:"customer_id"`
	CustomerName    string               `db:"customer_name"`
	CustomerPhone   string               `db:"customer_phone"`
	CustomerAddress string               `db:"customer_address"`
	PONumber        string               `db:"po_number"`
	POFileData      string               `db:"po_file_data"`
	Items           orderItems           `db:"items"`
	TotalWeightKg   decimal.Decimal      `db:"total_weight_kg"`
	TotalValue      decimal.Decimal      `db:"total_value"`
	Status          entities.OrderStatus `db:"status"`
}

func toOrderRow(o *entities.SalesOrder) orderRow {
	return orderRow{
		ID:              o.ID,
		OrderDate:       o.OrderDate,
		DispatchDate:    o.DispatchDate,
		SalesPerson:     o.SalesPerson,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		PONumber:        o.PONumber,
		POFileData:      o.POFileData,
		Items:           orderItems(o.Items),
		TotalWeightKg:   o.TotalWeightKg,
		TotalValue:      o.TotalValue,
		Status:          o.Status,
	}
}

func (r orderRow) toEntity() *entities.SalesOrder {
	return &entities.SalesOrder{
		ID:              r.ID,
		OrderDate:       r.OrderDate,
		DispatchDate:    r.DispatchDate,
		SalesPerson:     r.SalesPerson,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		PONumber:        r.PONumber,
		POFileData:      r.POFileData,
		Items:           []entities.SalesOrderItem(r.Items),
		TotalWeightKg:   r.TotalWeightKg,
		TotalValue:      r.TotalValue,
		Status:          r.Status,
	}
}
