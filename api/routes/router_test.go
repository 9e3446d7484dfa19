package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelieamado/backoffice-api/internal/orders"
	"github.com/atelieamado/backoffice-api/internal/patients"
	"github.com/atelieamado/backoffice-api/internal/producers"
	"github.com/atelieamado/backoffice-api/internal/stock"
	"github.com/atelieamado/backoffice-api/pkg/config"
	"github.com/atelieamado/backoffice-api/pkg/db/models"
	"github.com/atelieamado/backoffice-api/pkg/metrics"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type stubOrders struct{}

func (stubOrders) List(context.Context, pagination.Params, orders.ListFilters) (*orders.ListPage, error) {
	return &orders.ListPage{Orders: []orders.OrderSummary{}}, nil
}
func (stubOrders) Detail(context.Context, int64) (*orders.OrderDetail, error) {
	return &orders.OrderDetail{}, nil
}
func (stubOrders) Finalize(context.Context, int64) (*orders.OrderSummary, error) {
	return &orders.OrderSummary{}, nil
}

type stubStock struct{}

func (stubStock) List(context.Context, pagination.Params, stock.ListFilters) (*stock.ListPage, error) {
	return &stock.ListPage{Items: []stock.Row{}}, nil
}
func (stubStock) UpdateQuantity(context.Context, int64, int) (*stock.Row, error) {
	return &stock.Row{}, nil
}

type stubProducers struct{}

func (stubProducers) Producers(context.Context) ([]string, error) { return []string{}, nil }
func (stubProducers) Gallery(context.Context, string, pagination.Params) (*producers.GalleryPage, error) {
	return &producers.GalleryPage{}, nil
}

type stubPatients struct{}

func (stubPatients) List(context.Context, pagination.Params, string) (*patients.ListPage, error) {
	return &patients.ListPage{Patients: []models.Patient{}}, nil
}
func (stubPatients) Autocomplete(context.Context, string) ([]models.Patient, error) {
	return []models.Patient{}, nil
}
func (stubPatients) Find(context.Context, int64) (*models.Patient, error) {
	return &models.Patient{}, nil
}
func (stubPatients) Create(context.Context, patients.CreateInput) (*models.Patient, error) {
	return &models.Patient{}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	registry := prometheus.NewRegistry()
	return NewRouter(Deps{
		Config:       &config.Config{App: config.AppConfig{Env: "test"}},
		DBPinger:     okPinger{},
		RedisPinger:  okPinger{},
		Metrics:      metrics.NewRequestMetrics(registry),
		Registry:     registry,
		OrdersSvc:    stubOrders{},
		StockSvc:     stubStock{},
		ProducersSvc: stubProducers{},
		PatientsSvc:  stubPatients{},
	})
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/health/ready", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/v1/orders", http.StatusOK},
		{http.MethodGet, "/api/v1/orders/42", http.StatusOK},
		{http.MethodPost, "/api/v1/orders/42/finalize", http.StatusOK},
		{http.MethodGet, "/api/v1/stock", http.StatusOK},
		{http.MethodGet, "/api/v1/producers", http.StatusOK},
		{http.MethodGet, "/api/v1/producers/Estudio%20Sol/images", http.StatusOK},
		{http.MethodGet, "/api/v1/patients", http.StatusOK},
		{http.MethodGet, "/api/v1/patients/autocomplete", http.StatusOK},
		{http.MethodGet, "/api/v1/nope", http.StatusNotFound},
	}

	for _, tc := range cases {
		r := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equalf(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouterSetsRequestID(t *testing.T) {
	router := newTestRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}
