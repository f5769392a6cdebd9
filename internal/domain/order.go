package domain

import "time"

// Order агрегирует заказ клиента. Состав заказа хранится отдельно,
// в ассоциативном индексе (order_id, product_id); сам заказ держит только
// владельца и дату создания.
type Order struct {
	ID         int64
	CustomerID int64
	OrderDate  time.Time
}

// Validate проверяет базовые инварианты заказа.
// Существование клиента проверяет сервисный слой, не модель.
func (o *Order) Validate() []error {
	var errs []error

	if o.CustomerID <= 0 {
		errs = append(errs, ErrOrderCustomerRequired)
	}

	return errs
}
