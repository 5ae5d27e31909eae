package repositories

import (
	"context"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// TransactionRepository provides access to manual stock transactions
type TransactionRepository interface {
	ListTransactions(ctx context.Context) ([]*entities.StockTransaction, error)
	GetTransaction(ctx context.Context, id string) (*entities.StockTransaction, error)
	SaveTransaction(ctx context.Context, txn *entities.StockTransaction) error
	DeleteTransaction(ctx context.Context, id string) error
}
