package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/catalog/internal/service/catalog"
	"github.com/vladislavdragonenkov/catalog/internal/service/order"
	"github.com/vladislavdragonenkov/catalog/internal/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	customers := memory.NewCustomerRepository()
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	index := memory.NewAssociationIndex(orders, products)

	logger := log.NewEntry(log.New())
	logger.Logger.SetLevel(log.PanicLevel)

	catalogService := catalog.NewService(customers, products, orders, index, nil, nil, logger)
	orderService := order.NewService(orders, customers, products, index, nil, nil, logger)

	srv := httptest.NewServer(NewRouter(catalogService, orderService, logger))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createCustomer(t *testing.T, srv *httptest.Server) customerResponse {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/customers", customerPayload{
		Name:    "Anna",
		Address: "Nevsky 1",
		Email:   "anna@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[customerResponse](t, resp)
}

func createProduct(t *testing.T, srv *httptest.Server, name string) productResponse {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/products", productPayload{Name: name, Price: 9.99})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[productResponse](t, resp)
}

func createOrder(t *testing.T, srv *httptest.Server, customerID int64) orderResponse {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/orders", orderPayload{CustomerID: customerID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[orderResponse](t, resp)
}

func TestCustomerLifecycle(t *testing.T) {
	srv := newTestServer(t)

	created := createCustomer(t, srv)
	require.Equal(t, int64(1), created.ID)

	resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/customers/%d", srv.URL, created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, created, decode[customerResponse](t, resp))

	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/customers/%d", srv.URL, created.ID), customerPayload{
		Name:    "Anna",
		Address: "Liteyny 5",
		Email:   "anna@example.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Liteyny 5", decode[customerResponse](t, resp).Address)

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/customers/%d", srv.URL, created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/customers/%d", srv.URL, created.ID), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "not_found", decode[errorResponse](t, resp).Code)
}

func TestCreateCustomerReportsAllViolations(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/customers", customerPayload{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[errorResponse](t, resp)
	require.Equal(t, "validation_error", body.Code)
	require.Len(t, body.Violations, 3)
}

func TestCustomerBadIDRejected(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/customers/abc", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "bad_request", decode[errorResponse](t, resp).Code)
}

func TestProductLifecycle(t *testing.T) {
	srv := newTestServer(t)

	created := createProduct(t, srv, "Mug")

	resp := doJSON(t, http.MethodPut, fmt.Sprintf("%s/products/%d", srv.URL, created.ID), productPayload{
		Name:  "Mug",
		Price: 12.50,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 12.50, decode[productResponse](t, resp).Price)

	resp = doJSON(t, http.MethodGet, srv.URL+"/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]productResponse](t, resp), 1)

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/products/%d", srv.URL, created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/products/%d", srv.URL, created.ID), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/orders", orderPayload{CustomerID: 77})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "not_found", decode[errorResponse](t, resp).Code)
}

func TestOrderProductAssociations(t *testing.T) {
	srv := newTestServer(t)

	customer := createCustomer(t, srv)
	ord := createOrder(t, srv, customer.ID)
	first := createProduct(t, srv, "Mug")
	second := createProduct(t, srv, "Plate")

	addURL := fmt.Sprintf("%s/orders/%d/products/%d", srv.URL, ord.ID, first.ID)
	resp := doJSON(t, http.MethodPut, addURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Повторное добавление той же пары.
	resp = doJSON(t, http.MethodPut, addURL, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "conflict", decode[errorResponse](t, resp).Code)

	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/orders/%d/products/%d", srv.URL, ord.ID, second.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/orders/%d/products", srv.URL, ord.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]productResponse](t, resp), 2)

	resp = doJSON(t, http.MethodDelete, addURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, addURL, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/orders/%d/products", srv.URL, ord.ID), nil)
	require.Len(t, decode[[]productResponse](t, resp), 1)
}

func TestAddProductUnknownOrder(t *testing.T) {
	srv := newTestServer(t)

	product := createProduct(t, srv, "Mug")

	resp := doJSON(t, http.MethodPut, fmt.Sprintf("%s/orders/42/products/%d", srv.URL, product.ID), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteOrderCascades(t *testing.T) {
	srv := newTestServer(t)

	customer := createCustomer(t, srv)
	ord := createOrder(t, srv, customer.ID)
	product := createProduct(t, srv, "Mug")

	resp := doJSON(t, http.MethodPut, fmt.Sprintf("%s/orders/%d/products/%d", srv.URL, ord.ID, product.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/orders/%d", srv.URL, ord.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/orders/%d/products", srv.URL, ord.ID), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteCustomerWithOrdersRejected(t *testing.T) {
	srv := newTestServer(t)

	customer := createCustomer(t, srv)
	createOrder(t, srv, customer.ID)

	resp := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/customers/%d", srv.URL, customer.ID), nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "conflict", decode[errorResponse](t, resp).Code)
}

func TestOrdersByCustomer(t *testing.T) {
	srv := newTestServer(t)

	customer := createCustomer(t, srv)
	createOrder(t, srv, customer.ID)
	createOrder(t, srv, customer.ID)

	resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/customers/%d/orders", srv.URL, customer.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	orders := decode[[]orderResponse](t, resp)
	require.Len(t, orders, 2)
	require.Less(t, orders[0].ID, orders[1].ID)
}
