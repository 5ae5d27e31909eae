package events

import (
	"github.com/vsinha/factoryops/pkg/domain/entities"
)

const (
	RecordSavedEvent   = "record.saved"
	RecordDeletedEvent = "record.deleted"

	OrderSavedEvent   = "order.saved"
	OrderDeletedEvent = "order.deleted"

	CustomerSavedEvent   = "customer.saved"
	CustomerDeletedEvent = "customer.deleted"

	TransactionSavedEvent   = "transaction.saved"
	TransactionDeletedEvent = "transaction.deleted"

	// DatasetReplacedEvent follows a pull or bulk import
	DatasetReplacedEvent = "dataset.replaced"
)

// MutationEvents lists every event that changes local data
var MutationEvents = []string{
	RecordSavedEvent, RecordDeletedEvent,
	OrderSavedEvent, OrderDeletedEvent,
	CustomerSavedEvent, CustomerDeletedEvent,
	TransactionSavedEvent, TransactionDeletedEvent,
	DatasetReplacedEvent,
}

// Stream ids group events by entity type
const (
	RecordStream      = "records"
	OrderStream       = "orders"
	CustomerStream    = "customers"
	TransactionStream = "transactions"
	DatasetStream     = "dataset"
)

type RecordSaved struct {
	Record  entities.ProductionRecord `json:"record"`
	Created bool                      `json:"created"`
}

type OrderSaved struct {
	Order   entities.SalesOrder `json:"order"`
	Created bool                `json:"created"`
}

type CustomerSaved struct {
	Customer entities.Customer `json:"customer"`
	Created  bool              `json:"created"`
}

type TransactionSaved struct {
	Transaction entities.StockTransaction `json:"transaction"`
	Created     bool                      `json:"created"`
}

// Deleted carries the id of a removed entity
type Deleted struct {
	ID string `json:"id"`
}

// Replacement sources
const (
	SourcePull   = "pull"
	SourceImport = "import"
)

// DatasetReplaced records where a replacement came from
type DatasetReplaced struct {
	Source  string `json:"source"`
	Records int    `json:"records"`
	Orders  int    `json:"orders"`
}
