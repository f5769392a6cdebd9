package order

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/metrics"
)

const (
	opCreate        = "order.create"
	opGet           = "order.get"
	opDelete        = "order.delete"
	opAddProduct    = "order.add_product"
	opRemoveProduct = "order.remove_product"
	opProductsFor   = "order.products_for"
	opOrdersFor     = "order.orders_for"
)

// Service реализует операции над заказами и составом заказов.
// Существование сторон проверяется до мутаций; изменение состава делегируется
// ассоциативному индексу, который отвечает за уникальность пар.
type Service struct {
	orders    domain.OrderRepository
	customers domain.CustomerRepository
	products  domain.ProductRepository
	index     domain.AssociationIndex
	publisher domain.EventPublisher
	metrics   *metrics.ServiceMetrics
	logger    *log.Entry
}

// NewService конструирует сервис заказов. publisher и serviceMetrics необязательны.
func NewService(
	orders domain.OrderRepository,
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	index domain.AssociationIndex,
	publisher domain.EventPublisher,
	serviceMetrics *metrics.ServiceMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}
	return &Service{
		orders:    orders,
		customers: customers,
		products:  products,
		index:     index,
		publisher: publisher,
		metrics:   serviceMetrics,
		logger:    logger,
	}
}

// Create создаёт заказ. Клиент разрешается до любых записей: отсутствующий
// клиент не оставляет следов в хранилище. Нулевая дата заменяется текущим
// временем UTC.
func (s *Service) Create(customerID int64, orderDate time.Time) (domain.Order, error) {
	start := time.Now()

	if _, err := s.customers.Get(customerID); err != nil {
		s.observe(opCreate, start, err)
		return domain.Order{}, err
	}

	if orderDate.IsZero() {
		orderDate = time.Now().UTC()
	}

	input := domain.Order{CustomerID: customerID, OrderDate: orderDate}
	if err := domain.NewValidationError(input.Validate()); err != nil {
		s.observe(opCreate, start, err)
		return domain.Order{}, err
	}

	created, err := s.orders.Create(input)
	if err != nil {
		s.logger.WithError(err).Error("failed to create order")
		s.observe(opCreate, start, err)
		return domain.Order{}, err
	}

	s.publish("order.created", domain.KindOrder, created.ID)
	s.observe(opCreate, start, nil)
	return created, nil
}

// Get возвращает заказ по ID.
func (s *Service) Get(id int64) (domain.Order, error) {
	start := time.Now()
	order, err := s.orders.Get(id)
	s.observe(opGet, start, err)
	return order, err
}

// Delete удаляет заказ и каскадно чистит его ассоциативные записи.
func (s *Service) Delete(id int64) error {
	start := time.Now()

	if err := s.orders.Delete(id); err != nil {
		s.observe(opDelete, start, err)
		return err
	}
	if err := s.index.OnEntityDeleted(domain.KindOrder, id); err != nil {
		s.logger.WithError(err).WithField("order_id", id).Error("cascade cleanup failed")
		s.observe(opDelete, start, err)
		return err
	}
	s.metrics.RecordCascadeRemoval()

	s.publish("order.deleted", domain.KindOrder, id)
	s.observe(opDelete, start, nil)
	return nil
}

// AddProduct связывает товар с заказом. Повторное добавление той же пары —
// конфликт ErrProductAlreadyInOrder, состояние индекса не меняется.
func (s *Service) AddProduct(orderID, productID int64) error {
	start := time.Now()

	result, err := s.index.Add(orderID, productID)
	if err != nil {
		s.observe(opAddProduct, start, err)
		return err
	}
	if result == domain.AddResultAlreadyPresent {
		s.observe(opAddProduct, start, domain.ErrProductAlreadyInOrder)
		return domain.ErrProductAlreadyInOrder
	}

	s.publish("order.product_added", domain.KindOrder, orderID)
	s.observe(opAddProduct, start, nil)
	return nil
}

// RemoveProduct разрывает пару. Требует существования обеих записей; и
// отсутствующая запись, и никогда не связанная пара дают один и тот же
// not-found-исход — вызывающему нечем их различить без лишних деталей.
func (s *Service) RemoveProduct(orderID, productID int64) error {
	start := time.Now()

	if _, err := s.orders.Get(orderID); err != nil {
		s.observe(opRemoveProduct, start, err)
		return err
	}
	if _, err := s.products.Get(productID); err != nil {
		s.observe(opRemoveProduct, start, err)
		return err
	}

	if err := s.index.Remove(orderID, productID); err != nil {
		s.observe(opRemoveProduct, start, err)
		return err
	}

	s.publish("order.product_removed", domain.KindOrder, orderID)
	s.observe(opRemoveProduct, start, nil)
	return nil
}

// ProductsFor возвращает товары заказа или ErrOrderNotFound.
func (s *Service) ProductsFor(orderID int64) ([]domain.Product, error) {
	start := time.Now()

	if _, err := s.orders.Get(orderID); err != nil {
		s.observe(opProductsFor, start, err)
		return nil, err
	}

	products, err := s.index.ProductsOf(orderID)
	if err != nil {
		if domain.ClassOf(err) == domain.ClassIntegrity {
			s.logger.WithError(err).WithField("order_id", orderID).Error("association index is corrupted")
		}
		s.observe(opProductsFor, start, err)
		return nil, err
	}

	s.observe(opProductsFor, start, nil)
	return products, nil
}

// OrdersFor возвращает заказы клиента или ErrCustomerNotFound.
func (s *Service) OrdersFor(customerID int64) ([]domain.Order, error) {
	start := time.Now()

	if _, err := s.customers.Get(customerID); err != nil {
		s.observe(opOrdersFor, start, err)
		return nil, err
	}

	orders, err := s.orders.ListByCustomer(customerID)
	if err != nil {
		s.observe(opOrdersFor, start, err)
		return nil, err
	}

	s.observe(opOrdersFor, start, nil)
	return orders, nil
}

func (s *Service) publish(eventType string, kind domain.Kind, id int64) {
	if s.publisher == nil {
		return
	}
	event := domain.EntityEvent{Type: eventType, Kind: kind, ID: id}
	if err := s.publisher.PublishEntityEvent(event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"event": eventType,
			"kind":  kind,
			"id":    id,
		}).Warn("failed to publish entity event")
		return
	}
	s.metrics.RecordEntityEvent()
}

func (s *Service) observe(operation string, start time.Time, err error) {
	s.metrics.RecordOperation(operation, string(domain.ClassOf(err)))
	s.metrics.RecordOperationDuration(operation, time.Since(start))
}
