package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/domain/repositories"
	domain "github.com/vsinha/factoryops/pkg/domain/services"
	"github.com/vsinha/factoryops/pkg/infrastructure/events"
)

// ValidationError lists the failed validation tag per field
type ValidationError struct {
	Entity string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+e.Fields[name])
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, ", "))
}

// LedgerService is the single write path for records, orders, customers
// and transactions. It assigns ids, validates, recomputes derived order
// fields and publishes an event for every change.
type LedgerService struct {
	store     repositories.Store
	events    events.EventStore
	converter *domain.UnitConverter
	validate  *validator.Validate
	logger    logrus.FieldLogger
	now       func() time.Time
}

// NewLedgerService creates a ledger service. eventStore may be nil when
// nothing listens for changes.
func NewLedgerService(
	store repositories.Store,
	eventStore events.EventStore,
	converter *domain.UnitConverter,
	logger logrus.FieldLogger,
) *LedgerService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LedgerService{
		store:     store,
		events:    eventStore,
		converter: converter,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *LedgerService) check(entity string, v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Namespace()] = fe.Tag()
	}
	return &ValidationError{Entity: entity, Fields: fields}
}

func (s *LedgerService) publish(stream, eventType string, data any) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendEvent(stream, events.NewEvent(eventType, stream, data)); err != nil {
		s.logger.WithError(err).WithField("event", eventType).Warn("failed to publish event")
	}
}

// exists reports whether get finds the id, treating ErrNotFound as false
func exists[T any](ctx context.Context, id string, get func(context.Context, string) (T, error)) (bool, error) {
	_, err := get(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *LedgerService) prepareRecord(record *entities.ProductionRecord) error {
	if _, err := entities.ParseDate(string(record.Date)); err != nil {
		return fmt.Errorf("record %s: %w", record.ID, err)
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("record %s: %w", record.ID, err)
	}
	if record.WeightKg.IsNegative() || record.RejectedKg.IsNegative() {
		return fmt.Errorf("record %s: weights cannot be negative", record.ID)
	}
	return s.check("record", record)
}

func (s *LedgerService) prepareTransaction(txn *entities.StockTransaction) error {
	if _, err := entities.ParseDate(string(txn.Date)); err != nil {
		return fmt.Errorf("transaction %s: %w", txn.ID, err)
	}
	return s.check("transaction", txn)
}

// SaveRecord creates or replaces a ledger line. A record without an id
// gets a new one; the creation timestamp is kept across edits.
func (s *LedgerService) SaveRecord(ctx context.Context, record *entities.ProductionRecord) (*entities.ProductionRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := s.prepareRecord(record); err != nil {
		return nil, err
	}

	existing, err := s.store.GetRecord(ctx, record.ID)
	created := errors.Is(err, repositories.ErrNotFound)
	if err != nil && !created {
		return nil, fmt.Errorf("failed to look up record %s: %w", record.ID, err)
	}
	switch {
	case !created && record.Timestamp == 0:
		record.Timestamp = existing.Timestamp
	case record.Timestamp == 0:
		record.Timestamp = s.now().UnixMilli()
	}

	if err := s.store.SaveRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save record %s: %w", record.ID, err)
	}
	s.publish(events.RecordStream, events.RecordSavedEvent, events.RecordSaved{Record: *record, Created: created})
	return record, nil
}

// DeleteRecord removes a ledger line
func (s *LedgerService) DeleteRecord(ctx context.Context, id string) error {
	if err := s.store.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	s.publish(events.RecordStream, events.RecordDeletedEvent, events.Deleted{ID: id})
	return nil
}

// prepareOrder fills derived fields: item weights from cartons when not
// entered, item values and order totals
func (s *LedgerService) prepareOrder(order *entities.SalesOrder) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if _, err := entities.ParseDate(string(order.OrderDate)); err != nil {
		return fmt.Errorf("order %s: %w", order.ID, err)
	}
	if !order.DispatchDate.IsZero() {
		if _, err := entities.ParseDate(string(order.DispatchDate)); err != nil {
			return fmt.Errorf("order %s dispatch date: %w", order.ID, err)
		}
	}
	for i := range order.Items {
		item := &order.Items[i]
		if !item.CalculatedWeightKg.IsZero() || item.QuantityCtn == 0 || s.converter == nil {
			continue
		}
		if kg, ok := s.converter.CartonsToKg(item.ProductName, item.Size, item.QuantityCtn); ok {
			item.CalculatedWeightKg = kg
		} else {
			s.logger.WithFields(logrus.Fields{
				"order":   order.ID,
				"product": item.ProductName,
				"size":    item.Size,
			}).Warn("no carton weight for order item; weight left at zero")
		}
	}
	order.RecomputeTotals()
	return s.check("order", order)
}

// SaveOrder creates or replaces a sales order. Totals are always
// recomputed from the items.
func (s *LedgerService) SaveOrder(ctx context.Context, order *entities.SalesOrder) (*entities.SalesOrder, error) {
	if err := s.prepareOrder(order); err != nil {
		return nil, err
	}
	found, err := exists(ctx, order.ID, s.store.GetOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to look up order %s: %w", order.ID, err)
	}
	if err := s.store.SaveOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order %s: %w", order.ID, err)
	}
	s.publish(events.OrderStream, events.OrderSavedEvent, events.OrderSaved{Order: *order, Created: !found})
	return order, nil
}

// UpdateOrderStatus moves an order to a new status. Moving to Dispatched
// without a dispatch date stamps today.
func (s *LedgerService) UpdateOrderStatus(ctx context.Context, id string, status entities.OrderStatus) (*entities.SalesOrder, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	order.Status = status
	if status == entities.OrderDispatched && order.DispatchDate.IsZero() {
		order.DispatchDate = entities.DateOf(s.now())
	}
	return s.SaveOrder(ctx, order)
}

// DeleteOrder removes a sales order
func (s *LedgerService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order %s: %w", id, err)
	}
	s.publish(events.OrderStream, events.OrderDeletedEvent, events.Deleted{ID: id})
	return nil
}

// SaveCustomer creates or replaces a customer
func (s *LedgerService) SaveCustomer(ctx context.Context, customer *entities.Customer) (*entities.Customer, error) {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	if err := s.check("customer", customer); err != nil {
		return nil, err
	}
	found, err := exists(ctx, customer.ID, s.store.GetCustomer)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer %s: %w", customer.ID, err)
	}
	if err := s.store.SaveCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer %s: %w", customer.ID, err)
	}
	s.publish(events.CustomerStream, events.CustomerSavedEvent, events.CustomerSaved{Customer: *customer, Created: !found})
	return customer, nil
}

// DeleteCustomer removes a customer. Orders keep their copied customer
// fields.
func (s *LedgerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.store.DeleteCustomer(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", id, err)
	}
	s.publish(events.CustomerStream, events.CustomerDeletedEvent, events.Deleted{ID: id})
	return nil
}

// SaveTransaction creates or replaces a manual stock transaction
func (s *LedgerService) SaveTransaction(ctx context.Context, txn *entities.StockTransaction) (*entities.StockTransaction, error) {
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if err := s.prepareTransaction(txn); err != nil {
		return nil, err
	}
	found, err := exists(ctx, txn.ID, s.store.GetTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to look up transaction %s: %w", txn.ID, err)
	}
	if err := s.store.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
	}
	s.publish(events.TransactionStream, events.TransactionSavedEvent, events.TransactionSaved{Transaction: *txn, Created: !found})
	return txn, nil
}

// DeleteTransaction removes a manual stock transaction
func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	s.publish(events.TransactionStream, events.TransactionDeletedEvent, events.Deleted{ID: id})
	return nil
}

// Import merges imported entities into the local dataset by id and
// replaces the store in one step. Imported entities win over local ones
// with the same id. Records and transactions without an id get one derived
// from their content, which makes re-importing a file idempotent.
func (s *LedgerService) Import(ctx context.Context, incoming *entities.Dataset) (*entities.Dataset, error) {
	current, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read local dataset: %w", err)
	}
	stamps := make(map[string]int64, len(current.Records))
	for _, r := range current.Records {
		stamps[r.ID] = r.Timestamp
	}

	seen := make(map[string]int)
	for _, r := range incoming.Records {
		if r.ID == "" {
			r.ID = importID(seen, "record", string(r.Date), r.ProductName, r.BatchNo, r.Size,
				r.WeightKg.String(), r.RejectedKg.String(), fmt.Sprint(r.DuplesPkt), fmt.Sprint(r.CartonCtn),
				r.Kind().String(), r.Notes)
		}
		if r.Timestamp == 0 {
			if ts, ok := stamps[r.ID]; ok {
				r.Timestamp = ts
			} else {
				r.Timestamp = s.now().UnixMilli()
			}
		}
		if err := s.prepareRecord(r); err != nil {
			return nil, err
		}
	}
	for _, o := range incoming.Orders {
		if err := s.prepareOrder(o); err != nil {
			return nil, err
		}
	}
	for _, c := range incoming.Customers {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if err := s.check("customer", c); err != nil {
			return nil, err
		}
	}
	for _, t := range incoming.Transactions {
		if t.ID == "" {
			t.ID = importID(seen, "transaction", string(t.Date), t.ItemID, string(t.Type), t.Qty.String(), t.Notes)
		}
		if err := s.prepareTransaction(t); err != nil {
			return nil, err
		}
	}

	merged := &entities.Dataset{
		Records:      mergeByID(current.Records, incoming.Records, func(r *entities.ProductionRecord) string { return r.ID }),
		Orders:       mergeByID(current.Orders, incoming.Orders, func(o *entities.SalesOrder) string { return o.ID }),
		Customers:    mergeByID(current.Customers, incoming.Customers, func(c *entities.Customer) string { return c.ID }),
		Transactions: mergeByID(current.Transactions, incoming.Transactions, func(t *entities.StockTransaction) string { return t.ID }),
	}
	if err := s.store.Replace(ctx, merged); err != nil {
		return nil, fmt.Errorf("failed to store imported dataset: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"records":      len(incoming.Records),
		"orders":       len(incoming.Orders),
		"customers":    len(incoming.Customers),
		"transactions": len(incoming.Transactions),
	}).Info("import complete")
	s.publish(events.DatasetStream, events.DatasetReplacedEvent, events.DatasetReplaced{
		Source:  events.SourceImport,
		Records: len(merged.Records),
		Orders:  len(merged.Orders),
	})
	return merged, nil
}

// importNamespace seeds the ids of imported lines that carry none
var importNamespace = uuid.MustParse("3b8f6c1e-5a2d-4e7b-9c0f-1d2e3f4a5b6c")

// importID derives an id from a line's content and its occurrence count, so
// importing the same file again updates the lines instead of adding copies
func importID(seen map[string]int, fields ...string) string {
	key := strings.Join(fields, "\x1f")
	seen[key]++
	return uuid.NewSHA1(importNamespace, []byte(fmt.Sprintf("%s\x1f%d", key, seen[key]))).String()
}

func mergeByID[T any](current, incoming []*T, id func(*T) string) []*T {
	merged := make([]*T, 0, len(current)+len(incoming))
	index := make(map[string]int, len(current))
	for _, v := range current {
		index[id(v)] = len(merged)
		merged = append(merged, v)
	}
	for _, v := range incoming {
		if i, ok := index[id(v)]; ok {
			merged[i] = v
			continue
		}
		index[id(v)] = len(merged)
		merged = append(merged, v)
	}
	return merged
}
