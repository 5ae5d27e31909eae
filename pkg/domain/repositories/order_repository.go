package repositories

import (
	"context"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// OrderRepository provides access to sales orders
type OrderRepository interface {
	ListOrders(ctx context.Context) ([]*entities.SalesOrder, error)
	GetOrder(ctx context.Context, id string) (*entities.SalesOrder, error)
	SaveOrder(ctx context.Context, order *entities.SalesOrder) error
	DeleteOrder(ctx context.Context, id string) error
}

// CustomerRepository provides access to customers
type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]*entities.Customer, error)
	GetCustomer(ctx context.Context, id string) (*entities.Customer, error)
	SaveCustomer(ctx context.Context, customer *entities.Customer) error
	DeleteCustomer(ctx context.Context, id string) error
}
