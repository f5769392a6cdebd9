package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Ошибка отсутствующего имени клиента.
	ErrCustomerNameRequired = errors.New("name is required")
	// Ошибка отсутствующего почтового адреса клиента.
	ErrCustomerAddressRequired = errors.New("address is required")
	// Ошибка отсутствующего email клиента.
	ErrCustomerEmailRequired = errors.New("email is required")
	// Ошибка некорректного email клиента.
	ErrCustomerEmailInvalid = errors.New("email is not valid")
	// Ошибка отсутствующего названия товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отрицательной цены товара.
	ErrProductPriceNegative = errors.New("price must be non-negative")
	// Ошибка отсутствующего владельца заказа.
	ErrOrderCustomerRequired = errors.New("customer_id is required")

	// ErrCustomerNotFound возвращается, если клиент не найден в хранилище.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductNotFound возвращается, если товар не найден в хранилище.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")

	// ErrProductAlreadyInOrder — пара (order_id, product_id) уже существует.
	// Это конфликт, а не сбой: состояние индекса не меняется.
	ErrProductAlreadyInOrder = errors.New("product already in order")
	// ErrProductNotInOrder — пара (order_id, product_id) не была связана.
	ErrProductNotInOrder = errors.New("product not in order")
	// ErrCustomerHasOrders запрещает удаление клиента, на которого ссылаются заказы.
	ErrCustomerHasOrders = errors.New("customer has orders and cannot be deleted")
)

// ValidationError агрегирует все нарушения полей входной записи.
// Сервисный слой обязан вернуть полный список, а не первое нарушение.
type ValidationError struct {
	Violations []error
}

// NewValidationError оборачивает непустой список нарушений; для пустого
// списка возвращает nil, чтобы вызывающий мог писать `if err := ...`.
func NewValidationError(violations []error) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Is позволяет errors.Is находить конкретное нарушение внутри агрегата.
func (e *ValidationError) Is(target error) bool {
	for _, v := range e.Violations {
		if errors.Is(v, target) {
			return true
		}
	}
	return false
}

// Class группирует ошибки по таксономии исходов: валидация, отсутствие
// записи, конфликт, повреждение данных, прочее. По классу сервисный слой
// пишет метрики, а транспорт выбирает код ответа.
type Class string

const (
	ClassOK        Class = "ok"
	ClassInvalid   Class = "invalid"
	ClassNotFound  Class = "not_found"
	ClassConflict  Class = "conflict"
	ClassIntegrity Class = "integrity_fault"
	ClassInternal  Class = "internal"
)

// ClassOf относит ошибку к классу таксономии.
func ClassOf(err error) Class {
	if err == nil {
		return ClassOK
	}

	var validationErr *ValidationError
	var integrityErr *IntegrityError
	switch {
	case errors.As(err, &validationErr):
		return ClassInvalid
	case errors.Is(err, ErrCustomerNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrProductNotInOrder):
		return ClassNotFound
	case errors.Is(err, ErrProductAlreadyInOrder),
		errors.Is(err, ErrCustomerHasOrders):
		return ClassConflict
	case errors.As(err, &integrityErr):
		return ClassIntegrity
	default:
		return ClassInternal
	}
}

// IntegrityError сигнализирует о повреждении данных: ассоциативная запись
// ссылается на удалённую сущность. При работающем каскаде такого состояния
// быть не должно, поэтому ошибка намеренно не сводится к NotFound.
type IntegrityError struct {
	Kind Kind
	ID   int64
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity fault: dangling reference to %s %d", e.Kind, e.ID)
}
