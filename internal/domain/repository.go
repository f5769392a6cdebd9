package domain

// Kind перечисляет виды сущностей хранилища. Используется каскадным хуком
// ассоциативного индекса и ошибками целостности.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindProduct  Kind = "product"
	KindOrder    Kind = "order"
)

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	// Create сохраняет клиента и назначает свежий монотонно растущий ID.
	Create(customer Customer) (Customer, error)
	// Get возвращает клиента или ErrCustomerNotFound.
	Get(id int64) (Customer, error)
	// List возвращает всех клиентов в порядке возрастания ID.
	List() ([]Customer, error)
	// Update целиком заменяет запись или возвращает ErrCustomerNotFound.
	Update(customer Customer) error
	// Delete удаляет запись или возвращает ErrCustomerNotFound.
	Delete(id int64) error
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	Create(product Product) (Product, error)
	Get(id int64) (Product, error)
	List() ([]Product, error)
	Update(product Product) error
	Delete(id int64) error
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	Create(order Order) (Order, error)
	Get(id int64) (Order, error)
	// ListByCustomer возвращает заказы клиента, отсортированные по дате создания.
	ListByCustomer(customerID int64) ([]Order, error)
	Delete(id int64) error
}

// AddResult — исход успешной попытки связать товар с заказом.
type AddResult string

const (
	// AddResultAdded — пара вставлена.
	AddResultAdded AddResult = "added"
	// AddResultAlreadyPresent — пара уже существовала, состояние не изменилось.
	AddResultAlreadyPresent AddResult = "already_present"
)

// AssociationIndex хранит множество пар (order_id, product_id) — состав заказов.
// Проверка существования обеих сторон выполняется на границе Add, поэтому
// через собственный API индекс не может породить висячую пару.
type AssociationIndex interface {
	// Add связывает товар с заказом. Возвращает ErrOrderNotFound или
	// ErrProductNotFound, если сторона не существует; AddResultAlreadyPresent —
	// если пара уже есть (не ошибка). Гонка двух Add по одной паре обязана
	// разрешиться в один AddResultAdded, вторая вставка не происходит.
	Add(orderID, productID int64) (AddResult, error)
	// Remove разрывает пару или возвращает ErrProductNotInOrder.
	Remove(orderID, productID int64) error
	// ProductsOf возвращает товары заказа. Висячая ссылка на удалённый товар —
	// *IntegrityError, а не молчаливый пропуск.
	ProductsOf(orderID int64) ([]Product, error)
	// OnEntityDeleted — каскадный хук: удаляет все пары, ссылающиеся на
	// удалённый заказ или товар. Для прочих видов — no-op.
	OnEntityDeleted(kind Kind, id int64) error
}
