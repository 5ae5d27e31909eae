package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/domain/repositories"
)

// Store provides in-memory storage for the whole local dataset
type Store struct {
	mu           sync.RWMutex
	records      *collection[entities.ProductionRecord]
	orders       *collection[entities.SalesOrder]
	customers    *collection[entities.Customer]
	transactions *collection[entities.StockTransaction]
}

// NewStore creates a new empty in-memory store
func NewStore() *Store {
	return &Store{
		records: newCollection(
			func(r *entities.ProductionRecord) string { return r.ID },
			// Ledger order: date, then creation time
			func(a, b *entities.ProductionRecord) bool {
				if a.Date != b.Date {
					return a.Date.Before(b.Date)
				}
				return a.Timestamp < b.Timestamp
			},
		),
		orders: newCollection(
			func(o *entities.SalesOrder) string { return o.ID },
			func(a, b *entities.SalesOrder) bool { return a.OrderDate.Before(b.OrderDate) },
		),
		customers: newCollection(
			func(c *entities.Customer) string { return c.ID },
			func(a, b *entities.Customer) bool { return a.Name < b.Name },
		),
		transactions: newCollection(
			func(t *entities.StockTransaction) string { return t.ID },
			func(a, b *entities.StockTransaction) bool { return a.Date.Before(b.Date) },
		),
	}
}

// Verify interface compliance
var _ repositories.Store = (*Store)(nil)

// ListRecords returns all ledger lines in ledger order
func (s *Store) ListRecords(ctx context.Context) ([]*entities.ProductionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records.list(), nil
}

// GetRecord returns one ledger line
func (s *Store) GetRecord(ctx context.Context, id string) (*entities.ProductionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, err := s.records.get(id)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", id, err)
	}
	return r, nil
}

// SaveRecord inserts or replaces a ledger line
func (s *Store) SaveRecord(ctx context.Context, record *entities.ProductionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records.save(record)
	return nil
}

// DeleteRecord removes a ledger line
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.records.delete(id); err != nil {
		return fmt.Errorf("record %s: %w", id, err)
	}
	return nil
}

// ListOrders returns all sales orders by order date
func (s *Store) ListOrders(ctx context.Context) ([]*entities.SalesOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := s.orders.list()
	for _, o := range orders {
		o.Items = append([]entities.SalesOrderItem(nil), o.Items...)
	}
	return orders, nil
}

// GetOrder returns one sales order
func (s *Store) GetOrder(ctx context.Context, id string) (*entities.SalesOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, err := s.orders.get(id)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", id, err)
	}
	o.Items = append([]entities.SalesOrderItem(nil), o.Items...)
	return o, nil
}

// SaveOrder inserts or replaces a sales order
func (s *Store) SaveOrder(ctx context.Context, order *entities.SalesOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *order
	copied.Items = append([]entities.SalesOrderItem(nil), order.Items...)
	s.orders.save(&copied)
	return nil
}

// DeleteOrder removes a sales order
func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.orders.delete(id); err != nil {
		return fmt.Errorf("order %s: %w", id, err)
	}
	return nil
}

// ListCustomers returns all customers by name
func (s *Store) ListCustomers(ctx context.Context) ([]*entities.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers.list(), nil
}

// GetCustomer returns one customer
func (s *Store) GetCustomer(ctx context.Context, id string) (*entities.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.customers.get(id)
	if err != nil {
		return nil, fmt.Errorf("customer %s: %w", id, err)
	}
	return c, nil
}

// SaveCustomer inserts or replaces a customer
func (s *Store) SaveCustomer(ctx context.Context, customer *entities.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers.save(customer)
	return nil
}

// DeleteCustomer removes a customer
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.customers.delete(id); err != nil {
		return fmt.Errorf("customer %s: %w", id, err)
	}
	return nil
}

// ListTransactions returns all stock transactions by date
func (s *Store) ListTransactions(ctx context.Context) ([]*entities.StockTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactions.list(), nil
}

// GetTransaction returns one stock transaction
func (s *Store) GetTransaction(ctx context.Context, id string) (*entities.StockTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.transactions.get(id)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", id, err)
	}
	return t, nil
}

// SaveTransaction inserts or replaces a stock transaction
func (s *Store) SaveTransaction(ctx context.Context, txn *entities.StockTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions.save(txn)
	return nil
}

// DeleteTransaction removes a stock transaction
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transactions.delete(id); err != nil {
		return fmt.Errorf("transaction %s: %w", id, err)
	}
	return nil
}

// Snapshot returns a copy of the whole dataset
func (s *Store) Snapshot(ctx context.Context) (*entities.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := s.orders.list()
	for _, o := range orders {
		o.Items = append([]entities.SalesOrderItem(nil), o.Items...)
	}
	return &entities.Dataset{
		Records:      s.records.list(),
		Orders:       orders,
		Customers:    s.customers.list(),
		Transactions: s.transactions.list(),
	}, nil
}

// Replace swaps the whole dataset
func (s *Store) Replace(ctx context.Context, data *entities.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records.replace(data.Records)
	orders := make([]*entities.SalesOrder, 0, len(data.Orders))
	for _, o := range data.Orders {
		copied := *o
		copied.Items = append([]entities.SalesOrderItem(nil), o.Items...)
		orders = append(orders, &copied)
	}
	s.orders.replace(orders)
	s.customers.replace(data.Customers)
	if data.Transactions != nil {
		s.transactions.replace(data.Transactions)
	}
	return nil
}
