package domain

import "strings"

// Customer описывает клиента каталога. Идентификатор назначается хранилищем
// и после создания не меняется.
type Customer struct {
	ID      int64
	Name    string
	Address string
	Email   string
}

// Validate проверяет обязательные поля клиента и возвращает полный список замечаний.
func (c *Customer) Validate() []error {
	var errs []error

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}
	if strings.TrimSpace(c.Address) == "" {
		errs = append(errs, ErrCustomerAddressRequired)
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		errs = append(errs, ErrCustomerEmailRequired)
	} else if !strings.Contains(email, "@") {
		errs = append(errs, ErrCustomerEmailInvalid)
	}

	return errs
}
