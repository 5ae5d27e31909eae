package repositories

import (
	"context"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// RecordRepository provides access to the production ledger
type RecordRepository interface {
	// ListRecords returns every ledger line ordered by date, then creation time
	ListRecords(ctx context.Context) ([]*entities.ProductionRecord, error)
	GetRecord(ctx context.Context, id string) (*entities.ProductionRecord, error)
	// SaveRecord inserts the record or replaces the one with the same id
	SaveRecord(ctx context.Context, record *entities.ProductionRecord) error
	DeleteRecord(ctx context.Context, id string) error
}
