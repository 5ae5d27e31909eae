package repositories

import (
	"context"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// Store is the complete local state behind one backend
type Store interface {
	RecordRepository
	OrderRepository
	CustomerRepository
	TransactionRepository

	// Snapshot returns every entity in one consistent read
	Snapshot(ctx context.Context) (*entities.Dataset, error)
	// Replace discards all local state and loads the dataset. A nil
	// Transactions slice leaves existing transactions in place.
	Replace(ctx context.Context, data *entities.Dataset) error
}
