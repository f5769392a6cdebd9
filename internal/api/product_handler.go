package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/service/catalog"
)

// ProductHandler обслуживает CRUD-эндпоинты товаров.
type ProductHandler struct {
	service *catalog.Service
	logger  *log.Entry
}

// NewProductHandler создаёт обработчик товаров.
func NewProductHandler(service *catalog.Service, logger *log.Entry) *ProductHandler {
	return &ProductHandler{service: service, logger: logger}
}

// List обрабатывает GET /products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts()
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products), h.logger)
}

// Get обрабатывает GET /products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", h.logger)
	if !ok {
		return
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product), h.logger)
}

// Create обрабатывает POST /products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "unable to parse product", h.logger)
		return
	}

	created, err := h.service.CreateProduct(payload.toDomain())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(created), h.logger)
}

// Update обрабатывает PUT /products/{id}: запись заменяется целиком.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", h.logger)
	if !ok {
		return
	}

	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "unable to parse product", h.logger)
		return
	}

	updated, err := h.service.UpdateProduct(id, payload.toDomain())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(updated), h.logger)
}

// Delete обрабатывает DELETE /products/{id}; ассоциативные записи товара
// удаляются каскадно.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"id": id}, h.logger)
}

// Register вешает маршруты товаров на роутер.
func (h *ProductHandler) Register(r chi.Router) {
	r.Get("/products", h.List)
	r.Post("/products", h.Create)
	r.Get("/products/{id}", h.Get)
	r.Put("/products/{id}", h.Update)
	r.Delete("/products/{id}", h.Delete)
}
