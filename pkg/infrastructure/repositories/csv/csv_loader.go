package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// CartonWeigher derives an order line's weight from its carton count
type CartonWeigher interface {
	CartonsToKg(product, size string, cartons int64) (decimal.Decimal, bool)
}

// Loader handles importing ledger data from CSV files. Imported entities
// carry no ids; the ledger service assigns them on save.
type Loader struct {
	weigher CartonWeigher
}

// NewLoader creates a new CSV loader. weigher may be nil, in which case
// order rows must carry a weight.
func NewLoader(weigher CartonWeigher) *Loader {
	return &Loader{weigher: weigher}
}

var (
	recordHeader      = []string{"date", "product_name", "batch_no", "size", "weight_kg", "rejected_kg", "duples_pkt", "carton_ctn", "kind", "notes"}
	transactionHeader = []string{"date", "item_id", "type", "qty", "notes"}
	orderHeader       = []string{"order_id", "order_date", "customer_name", "status", "product_name", "size", "quantity_ctn", "weight_kg", "price_per_kg"}
)

// readCSV opens a file and returns its data rows after checking the header
func readCSV(filename, what string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", what, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", what, err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", what)
	}

	header := rows[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", what, expectedHeader, header)
	}

	for i, row := range rows[1:] {
		if len(row) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", what, i+2, len(expectedHeader), len(row))
		}
	}
	return rows[1:], nil
}

// LoadRecords loads production ledger lines from a CSV file
func (l *Loader) LoadRecords(filename string) ([]*entities.ProductionRecord, error) {
	rows, err := readCSV(filename, "records", recordHeader)
	if err != nil {
		return nil, err
	}

	var records []*entities.ProductionRecord
	for i, row := range rows {
		record, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("records CSV row %d: %w", i+2, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// LoadTransactions loads manual stock transactions from a CSV file
func (l *Loader) LoadTransactions(filename string) ([]*entities.StockTransaction, error) {
	rows, err := readCSV(filename, "transactions", transactionHeader)
	if err != nil {
		return nil, err
	}

	var txns []*entities.StockTransaction
	for i, row := range rows {
		txn, err := parseTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("transactions CSV row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// LoadOrders loads sales orders from a CSV file with one row per order
// line. Rows sharing an order_id form one order; the first row's header
// fields win.
func (l *Loader) LoadOrders(filename string) ([]*entities.SalesOrder, error) {
	rows, err := readCSV(filename, "orders", orderHeader)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entities.SalesOrder)
	var orders []*entities.SalesOrder
	for i, row := range rows {
		orderID := strings.TrimSpace(row[0])
		if orderID == "" {
			return nil, fmt.Errorf("orders CSV row %d: order_id cannot be empty", i+2)
		}

		order, ok := byID[orderID]
		if !ok {
			order, err = parseOrderHeader(row)
			if err != nil {
				return nil, fmt.Errorf("orders CSV row %d: %w", i+2, err)
			}
			byID[orderID] = order
			orders = append(orders, order)
		}

		item, err := l.parseOrderItem(row)
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: %w", i+2, err)
		}
		order.Items = append(order.Items, item)
	}

	for _, o := range orders {
		o.RecomputeTotals()
	}
	return orders, nil
}

// validateHeader checks if the CSV header matches expected format
func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range header {
		if strings.TrimSpace(strings.ToLower(col)) != expected[i] {
			return false
		}
	}
	return true
}

func parseRecord(row []string) (*entities.ProductionRecord, error) {
	date, err := entities.ParseDate(row[0])
	if err != nil {
		return nil, err
	}
	weight, err := parseDecimal("weight_kg", row[4])
	if err != nil {
		return nil, err
	}
	rejected, err := parseDecimal("rejected_kg", row[5])
	if err != nil {
		return nil, err
	}
	packets, err := parseCount("duples_pkt", row[6])
	if err != nil {
		return nil, err
	}
	cartons, err := parseCount("carton_ctn", row[7])
	if err != nil {
		return nil, err
	}
	kind, err := parseRecordKind(row[8])
	if err != nil {
		return nil, err
	}

	record, err := entities.NewProductionRecord("", date, strings.TrimSpace(row[1]), strings.TrimSpace(row[2]),
		strings.TrimSpace(row[3]), weight, rejected, packets, cartons, kind)
	if err != nil {
		return nil, err
	}
	record.Notes = row[9]
	return record, nil
}

func parseTransaction(row []string) (*entities.StockTransaction, error) {
	date, err := entities.ParseDate(row[0])
	if err != nil {
		return nil, err
	}
	itemID := strings.TrimSpace(row[1])
	if itemID == "" {
		return nil, fmt.Errorf("item_id cannot be empty")
	}
	typ, err := entities.ParseTransactionType(row[2])
	if err != nil {
		return nil, err
	}
	qty, err := parseDecimal("qty", row[3])
	if err != nil {
		return nil, err
	}
	return &entities.StockTransaction{
		ItemID: itemID,
		Date:   date,
		Qty:    qty,
		Type:   typ,
		Notes:  row[4],
	}, nil
}

func parseOrderHeader(row []string) (*entities.SalesOrder, error) {
	date, err := entities.ParseDate(row[1])
	if err != nil {
		return nil, err
	}
	status, err := entities.ParseOrderStatus(row[3])
	if err != nil {
		return nil, err
	}
	return &entities.SalesOrder{
		ID:           strings.TrimSpace(row[0]),
		OrderDate:    date,
		CustomerName: strings.TrimSpace(row[2]),
		Status:       status,
	}, nil
}

func (l *Loader) parseOrderItem(row []string) (entities.SalesOrderItem, error) {
	product := strings.TrimSpace(row[4])
	size := strings.TrimSpace(row[5])
	cartons, err := parseCount("quantity_ctn", row[6])
	if err != nil {
		return entities.SalesOrderItem{}, err
	}
	price, err := parseDecimal("price_per_kg", row[8])
	if err != nil {
		return entities.SalesOrderItem{}, err
	}

	var weight decimal.Decimal
	if strings.TrimSpace(row[7]) != "" {
		weight, err = parseDecimal("weight_kg", row[7])
		if err != nil {
			return entities.SalesOrderItem{}, err
		}
	} else {
		var ok bool
		if l.weigher != nil {
			weight, ok = l.weigher.CartonsToKg(product, size, cartons)
		}
		if !ok {
			return entities.SalesOrderItem{}, fmt.Errorf("weight_kg is empty and %s %s has no carton weight", product, size)
		}
	}

	return entities.SalesOrderItem{
		ProductName:        product,
		Size:               size,
		QuantityCtn:        cartons,
		CalculatedWeightKg: weight,
		PricePerKg:         price,
	}, nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %s", field, s)
	}
	return d, nil
}

func parseCount(field, s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", field, s)
	}
	return n, nil
}

func parseRecordKind(s string) (entities.RecordKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "production":
		return entities.Production, nil
	case "return":
		return entities.Return, nil
	case "dispatch":
		return entities.Dispatch, nil
	default:
		return entities.Production, fmt.Errorf("invalid kind: %s (expected: production, return, or dispatch)", s)
	}
}
