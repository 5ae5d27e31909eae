// Package sqlite keeps the local dataset in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/domain/repositories"
)

//go:embed schema.sql
var schema string

// Store is a repositories.Store backed by SQLite
type Store struct {
	db *sqlx.DB
}

// Verify interface compliance
var _ repositories.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" && !strings.Contains(path, "?") {
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	// One writer; also keeps ":memory:" on a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func notFound(kind, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", kind, id, repositories.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s %s: %w", kind, id, err)
}

func deleteByID(ctx context.Context, db sqlx.ExecerContext, table, kind, id string) error {
	res, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, repositories.ErrNotFound)
	}
	return nil
}

const recordColumns = `id, date, product_name, batch_no, size, weight_kg, rejected_kg,
	duples_pkt, carton_ctn, notes, timestamp, is_return, is_dispatch`

const upsertRecord = `
	INSERT INTO production_records (` + recordColumns + `)
	VALUES (:id, :date, :product_name, :batch_no, :size, :weight_kg, :rejected_kg,
		:duples_pkt, :carton_ctn, :notes, :timestamp, :is_return, :is_dispatch)
	ON CONFLICT(id) DO UPDATE SET
		date = excluded.date,
		product_name = excluded.product_name,
		batch_no = excluded.batch_no,
		size = excluded.size,
		weight_kg = excluded.weight_kg,
		rejected_kg = excluded.rejected_kg,
		duples_pkt = excluded.duples_pkt,
		carton_ctn = excluded.carton_ctn,
		notes = excluded.notes,
		timestamp = excluded.timestamp,
		is_return = excluded.is_return,
		is_dispatch = excluded.is_dispatch`

// ListRecords returns all ledger lines in ledger order
func (s *Store) ListRecords(ctx context.Context) ([]*entities.ProductionRecord, error) {
	var records []*entities.ProductionRecord
	q := `SELECT ` + recordColumns + ` FROM production_records ORDER BY date, timestamp, id`
	if err := s.db.SelectContext(ctx, &records, q); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// GetRecord returns one ledger line
func (s *Store) GetRecord(ctx context.Context, id string) (*entities.ProductionRecord, error) {
	var r entities.ProductionRecord
	q := `SELECT ` + recordColumns + ` FROM production_records WHERE id = ?`
	if err := s.db.GetContext(ctx, &r, q, id); err != nil {
		return nil, notFound("record", id, err)
	}
	return &r, nil
}

// SaveRecord inserts or replaces a ledger line
func (s *Store) SaveRecord(ctx context.Context, record *entities.ProductionRecord) error {
	if _, err := sqlx.NamedExecContext(ctx, s.db, upsertRecord, record); err != nil {
		return fmt.Errorf("failed to save record %s: %w", record.ID, err)
	}
	return nil
}

// DeleteRecord removes a ledger line
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, "production_records", "record", id)
}

const orderColumns = `id, order_date, dispatch_date, sales_person, customer_id, customer_name,
	customer_phone, customer_address, po_number, po_file_data, items, total_weight_kg,
	total_value, status`

const upsertOrder = `
	INSERT INTO sales_orders (` + orderColumns + `)
	VALUES (:id, :order_date, :dispatch_date, :sales_person, :customer_id, :customer_name,
		:customer_phone, :customer_address, :po_number, :po_file_data, :items, :total_weight_kg,
		:total_value, :status)
	ON CONFLICT(id) DO UPDATE SET
		order_date = excluded.order_date,
		dispatch_date = excluded.dispatch_date,
		sales_person = excluded.sales_person,
		customer_id = excluded.customer_id,
		customer_name = excluded.customer_name,
		customer_phone = excluded.customer_phone,
		customer_address = excluded.customer_address,
		po_number = excluded.po_number,
		po_file_data = excluded.po_file_data,
		items = excluded.items,
		total_weight_kg = excluded.total_weight_kg,
		total_value = excluded.total_value,
		status = excluded.status`

// ListOrders returns all sales orders by order date
func (s *Store) ListOrders(ctx context.Context) ([]*entities.SalesOrder, error) {
	var rows []orderRow
	q := `SELECT ` + orderColumns + ` FROM sales_orders ORDER BY order_date, id`
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	orders := make([]*entities.SalesOrder, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, r.toEntity())
	}
	return orders, nil
}

// GetOrder returns one sales order
func (s *Store) GetOrder(ctx context.Context, id string) (*entities.SalesOrder, error) {
	var r orderRow
	q := `SELECT ` + orderColumns + ` FROM sales_orders WHERE id = ?`
	if err := s.db.GetContext(ctx, &r, q, id); err != nil {
		return nil, notFound("order", id, err)
	}
	return r.toEntity(), nil
}

// SaveOrder inserts or replaces a sales order
func (s *Store) SaveOrder(ctx context.Context, order *entities.SalesOrder) error {
	if _, err := sqlx.NamedExecContext(ctx, s.db, upsertOrder, toOrderRow(order)); err != nil {
		return fmt.Errorf("failed to save order %s: %w", order.ID, err)
	}
	return nil
}

// DeleteOrder removes a sales order
func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, "sales_orders", "order", id)
}

const customerColumns = `id, name, contact_person, phone, address, city`

const upsertCustomer = `
	INSERT INTO customers (` + customerColumns + `)
	VALUES (:id, :name, :contact_person, :phone, :address, :city)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		contact_person = excluded.contact_person,
		phone = excluded.phone,
		address = excluded.address,
		city = excluded.city`

// ListCustomers returns all customers by name
func (s *Store) ListCustomers(ctx context.Context) ([]*entities.Customer, error) {
	var customers []*entities.Customer
	q := `SELECT ` + customerColumns + ` FROM customers ORDER BY name, id`
	if err := s.db.SelectContext(ctx, &customers, q); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// GetCustomer returns one customer
func (s *Store) GetCustomer(ctx context.Context, id string) (*entities.Customer, error) {
	var c entities.Customer
	q := `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	if err := s.db.GetContext(ctx, &c, q, id); err != nil {
		return nil, notFound("customer", id, err)
	}
	return &c, nil
}

// SaveCustomer inserts or replaces a customer
func (s *Store) SaveCustomer(ctx context.Context, customer *entities.Customer) error {
	if _, err := sqlx.NamedExecContext(ctx, s.db, upsertCustomer, customer); err != nil {
		return fmt.Errorf("failed to save customer %s: %w", customer.ID, err)
	}
	return nil
}

// DeleteCustomer removes a customer
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, "customers", "customer", id)
}

const transactionColumns = `id, item_id, date, qty, type, notes`

const upsertTransaction = `
	INSERT INTO stock_transactions (` + transactionColumns + `)
	VALUES (:id, :item_id, :date, :qty, :type, :notes)
	ON CONFLICT(id) DO UPDATE SET
		item_id = excluded.item_id,
		date = excluded.date,
		qty = excluded.qty,
		type = excluded.type,
		notes = excluded.notes`

// ListTransactions returns all stock transactions by date
func (s *Store) ListTransactions(ctx context.Context) ([]*entities.StockTransaction, error) {
	var txns []*entities.StockTransaction
	q := `SELECT ` + transactionColumns + ` FROM stock_transactions ORDER BY date, id`
	if err := s.db.SelectContext(ctx, &txns, q); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// GetTransaction returns one stock transaction
func (s *Store) GetTransaction(ctx context.Context, id string) (*entities.StockTransaction, error) {
	var t entities.StockTransaction
	q := `SELECT ` + transactionColumns + ` FROM stock_transactions WHERE id = ?`
	if err := s.db.GetContext(ctx, &t, q, id); err != nil {
		return nil, notFound("transaction", id, err)
	}
	return &t, nil
}

// SaveTransaction inserts or replaces a stock transaction
func (s *Store) SaveTransaction(ctx context.Context, txn *entities.StockTransaction) error {
	if _, err := sqlx.NamedExecContext(ctx, s.db, upsertTransaction, txn); err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
	}
	return nil
}

// DeleteTransaction removes a stock transaction
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, "stock_transactions", "transaction", id)
}

// Snapshot reads every table inside one transaction
func (s *Store) Snapshot(ctx context.Context) (*entities.Dataset, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer tx.Rollback()

	data := &entities.Dataset{}
	if err := tx.SelectContext(ctx, &data.Records,
		`SELECT `+recordColumns+` FROM production_records ORDER BY date, timestamp, id`); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	var rows []orderRow
	if err := tx.SelectContext(ctx, &rows,
		`SELECT `+orderColumns+` FROM sales_orders ORDER BY order_date, id`); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	for _, r := range rows {
		data.Orders = append(data.Orders, r.toEntity())
	}
	if err := tx.SelectContext(ctx, &data.Customers,
		`SELECT `+customerColumns+` FROM customers ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}
	if err := tx.SelectContext(ctx, &data.Transactions,
		`SELECT `+transactionColumns+` FROM stock_transactions ORDER BY date, id`); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	if data.Records == nil {
		data.Records = []*entities.ProductionRecord{}
	}
	if data.Orders == nil {
		data.Orders = []*entities.SalesOrder{}
	}
	if data.Customers == nil {
		data.Customers = []*entities.Customer{}
	}
	if data.Transactions == nil {
		data.Transactions = []*entities.StockTransaction{}
	}
	return data, nil
}

// Replace swaps the whole dataset atomically
func (s *Store) Replace(ctx context.Context, data *entities.Dataset) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin replace: %w", err)
	}
	defer tx.Rollback()

	tables := []string{"production_records", "sales_orders", "customers"}
	if data.Transactions != nil {
		tables = append(tables, "stock_transactions")
	}
	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, r := range data.Records {
		if _, err := tx.NamedExecContext(ctx, upsertRecord, r); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", r.ID, err)
		}
	}
	for _, o := range data.Orders {
		if _, err := tx.NamedExecContext(ctx, upsertOrder, toOrderRow(o)); err != nil {
			return fmt.Errorf("failed to insert order %s: %w", o.ID, err)
		}
	}
	for _, c := range data.Customers {
		if _, err := tx.NamedExecContext(ctx, upsertCustomer, c); err != nil {
			return fmt.Errorf("failed to insert customer %s: %w", c.ID, err)
		}
	}
	for _, t := range data.Transactions {
		if _, err := tx.NamedExecContext(ctx, upsertTransaction, t); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}
