package domain

import "strings"

// Product описывает товар каталога. Товар попадает в заказы только через
// ассоциативную таблицу, собственного состояния заказа у него нет.
type Product struct {
	ID    int64
	Name  string
	Price float64
}

// Validate проверяет обязательные поля товара и возвращает полный список замечаний.
func (p *Product) Validate() []error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.Price < 0 {
		errs = append(errs, ErrProductPriceNegative)
	}

	return errs
}
