package catalog

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/metrics"
)

const (
	opCreateCustomer = "catalog.create_customer"
	opGetCustomer    = "catalog.get_customer"
	opListCustomers  = "catalog.list_customers"
	opUpdateCustomer = "catalog.update_customer"
	opDeleteCustomer = "catalog.delete_customer"
	opCreateProduct  = "catalog.create_product"
	opGetProduct     = "catalog.get_product"
	opListProducts   = "catalog.list_products"
	opUpdateProduct  = "catalog.update_product"
	opDeleteProduct  = "catalog.delete_product"
)

// Service реализует CRUD над клиентами и товарами каталога.
// Валидация входа выполняется целиком до обращения к хранилищу,
// каскад при удалении товара — внутри той же единицы работы.
type Service struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	index     domain.AssociationIndex
	publisher domain.EventPublisher
	metrics   *metrics.ServiceMetrics
	logger    *log.Entry
}

// NewService конструирует сервис каталога. publisher и serviceMetrics
// необязательны: без них сервис просто не публикует события и не пишет метрики.
func NewService(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	index domain.AssociationIndex,
	publisher domain.EventPublisher,
	serviceMetrics *metrics.ServiceMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "catalog-service")
	}
	return &Service{
		customers: customers,
		products:  products,
		orders:    orders,
		index:     index,
		publisher: publisher,
		metrics:   serviceMetrics,
		logger:    logger,
	}
}

// CreateCustomer валидирует все поля и сохраняет клиента.
func (s *Service) CreateCustomer(input domain.Customer) (domain.Customer, error) {
	start := time.Now()

	if err := domain.NewValidationError(input.Validate()); err != nil {
		s.observe(opCreateCustomer, start, err)
		return domain.Customer{}, err
	}

	input.ID = 0
	created, err := s.customers.Create(input)
	if err != nil {
		s.logger.WithError(err).Error("failed to create customer")
		s.observe(opCreateCustomer, start, err)
		return domain.Customer{}, err
	}

	s.publish("customer.created", domain.KindCustomer, created.ID)
	s.observe(opCreateCustomer, start, nil)
	return created, nil
}

// GetCustomer возвращает клиента по ID.
func (s *Service) GetCustomer(id int64) (domain.Customer, error) {
	start := time.Now()
	customer, err := s.customers.Get(id)
	s.observe(opGetCustomer, start, err)
	return customer, err
}

// ListCustomers возвращает всех клиентов.
func (s *Service) ListCustomers() ([]domain.Customer, error) {
	start := time.Now()
	customers, err := s.customers.List()
	s.observe(opListCustomers, start, err)
	return customers, err
}

// UpdateCustomer целиком заменяет запись клиента. Вход валидируется так же,
// как при создании; частичные обновления не поддерживаются.
func (s *Service) UpdateCustomer(id int64, input domain.Customer) (domain.Customer, error) {
	start := time.Now()

	if _, err := s.customers.Get(id); err != nil {
		s.observe(opUpdateCustomer, start, err)
		return domain.Customer{}, err
	}
	if err := domain.NewValidationError(input.Validate()); err != nil {
		s.observe(opUpdateCustomer, start, err)
		return domain.Customer{}, err
	}

	input.ID = id
	if err := s.customers.Update(input); err != nil {
		s.logger.WithError(err).Error("failed to update customer")
		s.observe(opUpdateCustomer, start, err)
		return domain.Customer{}, err
	}

	s.publish("customer.updated", domain.KindCustomer, id)
	s.observe(opUpdateCustomer, start, nil)
	return input, nil
}

// DeleteCustomer удаляет клиента. Пока на клиента ссылаются заказы,
// удаление запрещено.
func (s *Service) DeleteCustomer(id int64) error {
	start := time.Now()

	orders, err := s.orders.ListByCustomer(id)
	if err != nil {
		s.observe(opDeleteCustomer, start, err)
		return err
	}
	if len(orders) > 0 {
		s.observe(opDeleteCustomer, start, domain.ErrCustomerHasOrders)
		return domain.ErrCustomerHasOrders
	}

	if err := s.customers.Delete(id); err != nil {
		s.observe(opDeleteCustomer, start, err)
		return err
	}

	s.publish("customer.deleted", domain.KindCustomer, id)
	s.observe(opDeleteCustomer, start, nil)
	return nil
}

// CreateProduct валидирует все поля и сохраняет товар.
func (s *Service) CreateProduct(input domain.Product) (domain.Product, error) {
	start := time.Now()

	if err := domain.NewValidationError(input.Validate()); err != nil {
		s.observe(opCreateProduct, start, err)
		return domain.Product{}, err
	}

	input.ID = 0
	created, err := s.products.Create(input)
	if err != nil {
		s.logger.WithError(err).Error("failed to create product")
		s.observe(opCreateProduct, start, err)
		return domain.Product{}, err
	}

	s.publish("product.created", domain.KindProduct, created.ID)
	s.observe(opCreateProduct, start, nil)
	return created, nil
}

// GetProduct возвращает товар по ID.
func (s *Service) GetProduct(id int64) (domain.Product, error) {
	start := time.Now()
	product, err := s.products.Get(id)
	s.observe(opGetProduct, start, err)
	return product, err
}

// ListProducts возвращает все товары.
func (s *Service) ListProducts() ([]domain.Product, error) {
	start := time.Now()
	products, err := s.products.List()
	s.observe(opListProducts, start, err)
	return products, err
}

// UpdateProduct целиком заменяет запись товара.
func (s *Service) UpdateProduct(id int64, input domain.Product) (domain.Product, error) {
	start := time.Now()

	if _, err := s.products.Get(id); err != nil {
		s.observe(opUpdateProduct, start, err)
		return domain.Product{}, err
	}
	if err := domain.NewValidationError(input.Validate()); err != nil {
		s.observe(opUpdateProduct, start, err)
		return domain.Product{}, err
	}

	input.ID = id
	if err := s.products.Update(input); err != nil {
		s.logger.WithError(err).Error("failed to update product")
		s.observe(opUpdateProduct, start, err)
		return domain.Product{}, err
	}

	s.publish("product.updated", domain.KindProduct, id)
	s.observe(opUpdateProduct, start, nil)
	return input, nil
}

// DeleteProduct удаляет товар и каскадно чистит ассоциативные записи,
// чтобы ни один заказ не ссылался на исчезнувший товар.
func (s *Service) DeleteProduct(id int64) error {
	start := time.Now()

	if err := s.products.Delete(id); err != nil {
		s.observe(opDeleteProduct, start, err)
		return err
	}
	if err := s.index.OnEntityDeleted(domain.KindProduct, id); err != nil {
		s.logger.WithError(err).WithField("product_id", id).Error("cascade cleanup failed")
		s.observe(opDeleteProduct, start, err)
		return err
	}
	s.metrics.RecordCascadeRemoval()

	s.publish("product.deleted", domain.KindProduct, id)
	s.observe(opDeleteProduct, start, nil)
	return nil
}

// publish отправляет событие сущности, если издатель сконфигурирован.
// Ошибка публикации логируется и не отменяет выполненную операцию.
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
