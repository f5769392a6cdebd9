package api

import (
	"time"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

// Wire-представления перечисляют поля явно: правила валидации видны и
// тестируются отдельно от транспорта, автогенерации схем нет.

type customerPayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

func (p customerPayload) toDomain() domain.Customer {
	return domain.Customer{
		Name:    p.Name,
		Address: p.Address,
		Email:   p.Email,
	}
}

type customerResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{
		ID:      c.ID,
		Name:    c.Name,
		Address: c.Address,
		Email:   c.Email,
	}
}

func toCustomerResponses(customers []domain.Customer) []customerResponse {
	out := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out
}

type productPayload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (p productPayload) toDomain() domain.Product {
	return domain.Product{
		Name:  p.Name,
		Price: p.Price,
	}
}

type productResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

type orderPayload struct {
	CustomerID int64      `json:"customer_id"`
	OrderDate  *time.Time `json:"order_date,omitempty"`
}

type orderResponse struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	OrderDate  time.Time `json:"order_date"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		OrderDate:  o.OrderDate,
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}
