package order_test

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/service/order"
	"github.com/vladislavdragonenkov/catalog/internal/storage/memory"
)

type fixture struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	index     domain.AssociationIndex
	service   *order.Service

	customer domain.Customer
	product  domain.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	customers := memory.NewCustomerRepository()
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	index := memory.NewAssociationIndex(orders, products)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	svc := order.NewService(orders, customers, products, index, nil, nil, logger.WithField("test", "order"))

	customer, err := customers.Create(domain.Customer{Name: "Ana", Address: "1 Main St", Email: "ana@x.com"})
	require.NoError(t, err)
	product, err := products.Create(domain.Product{Name: "Widget", Price: 9.99})
	require.NoError(t, err)

	return &fixture{
		customers: customers,
		products:  products,
		orders:    orders,
		index:     index,
		service:   svc,
		customer:  customer,
		product:   product,
	}
}

func TestCreate_DefaultsOrderDate(t *testing.T) {
	f := newFixture(t)

	before := time.Now().UTC()
	created, err := f.service.Create(f.customer.ID, time.Time{})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.False(t, created.OrderDate.Before(before))
	require.False(t, created.OrderDate.After(time.Now().UTC()))
}

func TestCreate_KeepsExplicitOrderDate(t *testing.T) {
	f := newFixture(t)

	date := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	created, err := f.service.Create(f.customer.ID, date)
	require.NoError(t, err)
	require.True(t, created.OrderDate.Equal(date))
}

func TestCreate_UnknownCustomerLeavesStorageUntouched(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(99, time.Time{})
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)

	orders, err := f.orders.ListByCustomer(99)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestAddProduct_ThenDuplicateConflicts(t *testing.T) {
	f := newFixture(t)

	created, err := f.service.Create(f.customer.ID, time.Time{})
	require.NoError(t, err)

	require.NoError(t, f.service.AddProduct(created.ID, f.product.ID))

	err = f.service.AddProduct(created.ID, f.product.ID)
	require.ErrorIs(t, err, domain.ErrProductAlreadyInOrder)
	require.Equal(t, domain.ClassConflict, domain.ClassOf(err))

	products, err := f.service.ProductsFor(created.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, f.product, products[0])
}

func TestAddProduct_MissingOrderLeavesIndexEmpty(t *testing.T) {
	f := newFixture(t)

	err := f.service.AddProduct(99, f.product.ID)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)

	created, err := f.service.Create(f.customer.ID, time.Time{})
	require.NoError(t, err)
	products, err := f.service.ProductsFor(created.ID)
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestAddProduct_MissingProduct(t *testing.T) {
	f := newFixture(t)

	created, err := f.service.Create(f.customer.ID, time.Time{})
	require.NoError(t, err)

	err = f.service.AddProduct(created.ID, 99)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestRemoveProduct_Lifecycle(t *testing.T) {
	f := newFixture(t)

	created, err := f.service.Create(f.customer.ID, time.Time{})
	require.NoError(t, err)
	require.NoError(t, f.service.AddProduct(created.ID, f.product.ID))

	require.NoError(t, f.service.RemoveProduct(created.ID, f.product.ID))

	products, err := f.service.ProductsFor(created.ID)
	require.NoError(t, err)
	require.Empty(t, products)

	// Пара больше не связана: тот же not-found-класс, что и для отсутствующих записей.
	err = f.service.RemoveProduct(created.ID, f.product.ID)
	require.ErrorIs(t, err, domain.ErrProductNotInOrder)
	require.Equal(t, domain.ClassNotFound, domain.ClassOf(err))
}

func TestRemoveProduct_MissingSides(t *testing.T) {
	f := newFixture(t)

	created, err := f.service.Create(f.customer.ID, time.Time{})
	require.NoError(t, err)

	err = f.service.RemoveProduct(99, f.product.ID)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)

	err = f.service.RemoveProduct(created.ID, 99)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductsFor_MissingOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ProductsFor(99)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrdersFor_ReturnsCustomerOrders(t *testing.T) {
	f := newFixture(t)

	first, err := f.service.Create(f.customer.ID, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	second, err := f.service.Create(f.customer.ID, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	orders, err := f.service.OrdersFor(f.customer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, first.ID, orders[0].ID)
	require.Equal(t, second.ID, orders[1].ID)
}

func TestOrdersFor_MissingCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.OrdersFor(99)
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestDelete_CascadesAssociations(t *testing.T) {
	f := newFixture(t)

	created, err := f.service.Create(f.customer.ID, time.Time{})
	require.NoError(t, err)
	require.NoError(t, f.service.AddProduct(created.ID, f.product.ID))

	require.NoError(t, f.service.Delete(created.ID))

	_, err = f.service.Get(created.ID)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
	err = f.index.Remove(created.ID, f.product.ID)
	require.ErrorIs(t, err, domain.ErrProductNotInOrder)
}
