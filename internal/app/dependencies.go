package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/storage/memory"
	"github.com/vladislavdragonenkov/catalog/internal/storage/postgres"
)

// Dependencies содержит хранилища приложения. Store заполнен только при
// работе поверх Postgres; при in-memory хранилище он nil.
type Dependencies struct {
	Customers domain.CustomerRepository
	Products  domain.ProductRepository
	Orders    domain.OrderRepository
	Index     domain.AssociationIndex
	Store     *postgres.Store
	Logger    *log.Entry
}

// NewDependencies собирает слой хранения: Postgres при заданном DSN,
// иначе in-memory реализация для локальной разработки и тестов.
func NewDependencies(ctx context.Context, dsn string, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	if dsn == "" {
		logger.Info("postgres DSN is not set, using in-memory storage")
		orders := memory.NewOrderRepository()
		products := memory.NewProductRepository()
		return &Dependencies{
			Customers: memory.NewCustomerRepository(),
			Products:  products,
			Orders:    orders,
			Index:     memory.NewAssociationIndex(orders, products),
			Logger:    logger,
		}, nil
	}

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info("postgres storage initialized")

	return &Dependencies{
		Customers: postgres.NewCustomerRepository(store),
		Products:  postgres.NewProductRepository(store),
		Orders:    postgres.NewOrderRepository(store),
		Index:     postgres.NewAssociationIndex(store),
		Store:     store,
		Logger:    logger,
	}, nil
}

// Close освобождает ресурсы слоя хранения.
func (d *Dependencies) Close() error {
	if d.Store != nil {
		return d.Store.Close()
	}
	return nil
}
