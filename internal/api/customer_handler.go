package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/service/catalog"
)

// CustomerHandler обслуживает CRUD-эндпоинты клиентов.
type CustomerHandler struct {
	service *catalog.Service
	logger  *log.Entry
}

// NewCustomerHandler создаёт обработчик клиентов.
func NewCustomerHandler(service *catalog.Service, logger *log.Entry) *CustomerHandler {
	return &CustomerHandler{service: service, logger: logger}
}

// List обрабатывает GET /customers.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers()
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponses(customers), h.logger)
}

// Get обрабатывает GET /customers/{id}.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", h.logger)
	if !ok {
		return
	}

	customer, err := h.service.GetCustomer(id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(customer), h.logger)
}

// Create обрабатывает POST /customers.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload customerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "unable to parse customer", h.logger)
		return
	}

	created, err := h.service.CreateCustomer(payload.toDomain())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, toCustomerResponse(created), h.logger)
}

// Update обрабатывает PUT /customers/{id}: запись заменяется целиком.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", h.logger)
	if !ok {
		return
	}

	var payload customerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "unable to parse customer", h.logger)
		return
	}

	updated, err := h.service.UpdateCustomer(id, payload.toDomain())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(updated), h.logger)
}

// Delete обрабатывает DELETE /customers/{id}.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.DeleteCustomer(id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"id": id}, h.logger)
}

// Register вешает маршруты клиентов на роутер.
func (h *CustomerHandler) Register(r chi.Router) {
	r.Get("/customers", h.List)
	r.Post("/customers", h.Create)
	r.Get("/customers/{id}", h.Get)
	r.Put("/customers/{id}", h.Update)
	r.Delete("/customers/{id}", h.Delete)
}
