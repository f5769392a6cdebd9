package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/service/order"
)

// OrderHandler обслуживает заказы и их ассоциации с товарами.
type OrderHandler struct {
	service *order.Service
	logger  *log.Entry
}

// NewOrderHandler создаёт обработчик заказов.
func NewOrderHandler(service *order.Service, logger *log.Entry) *OrderHandler {
	return &OrderHandler{service: service, logger: logger}
}

// Create обрабатывает POST /orders. Дата заказа опциональна, по умолчанию
// текущее время UTC.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload orderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "unable to parse order", h.logger)
		return
	}

	var orderDate time.Time
	if payload.OrderDate != nil {
		orderDate = *payload.OrderDate
	}

	created, err := h.service.Create(payload.CustomerID, orderDate)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(created), h.logger)
}

// Get обрабатывает GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", h.logger)
	if !ok {
		return
	}

	found, err := h.service.Get(id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(found), h.logger)
}

// Delete обрабатывает DELETE /orders/{id}; связи заказа с товарами
// удаляются каскадно.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"id": id}, h.logger)
}

// AddProduct обрабатывает PUT /orders/{orderID}/products/{productID}.
// Повторное добавление той же пары возвращает 409.
func (h *OrderHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(w, r, "orderID", h.logger)
	if !ok {
		return
	}
	productID, ok := parseIDParam(w, r, "productID", h.logger)
	if !ok {
		return
	}

	if err := h.service.AddProduct(orderID, productID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"order_id":   orderID,
		"product_id": productID,
	}, h.logger)
}

// RemoveProduct обрабатывает DELETE /orders/{orderID}/products/{productID}.
func (h *OrderHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(w, r, "orderID", h.logger)
	if !ok {
		return
	}
	productID, ok := parseIDParam(w, r, "productID", h.logger)
	if !ok {
		return
	}

	if err := h.service.RemoveProduct(orderID, productID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"order_id":   orderID,
		"product_id": productID,
	}, h.logger)
}

// ListProducts обрабатывает GET /orders/{orderID}/products.
func (h *OrderHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(w, r, "orderID", h.logger)
	if !ok {
		return
	}

	products, err := h.service.ProductsFor(orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products), h.logger)
}

// ListByCustomer обрабатывает GET /customers/{id}/orders.
func (h *OrderHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseIDParam(w, r, "id", h.logger)
	if !ok {
		return
	}

	orders, err := h.service.OrdersFor(customerID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders), h.logger)
}

// Register вешает маршруты заказов на роутер.
func (h *OrderHandler) Register(r chi.Router) {
	r.Post("/orders", h.Create)
	r.Get("/orders/{id}", h.Get)
	r.Delete("/orders/{id}", h.Delete)
	r.Get("/orders/{orderID}/products", h.ListProducts)
	r.Put("/orders/{orderID}/products/{productID}", h.AddProduct)
	r.Delete("/orders/{orderID}/products/{productID}", h.RemoveProduct)
	r.Get("/customers/{id}/orders", h.ListByCustomer)
}
