package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atelieamado/backoffice-api/api/controllers"
	"github.com/atelieamado/backoffice-api/api/middleware"
	"github.com/atelieamado/backoffice-api/pkg/config"
	"github.com/atelieamado/backoffice-api/pkg/logger"
	"github.com/atelieamado/backoffice-api/pkg/metrics"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DBPinger     controllers.Pinger
	RedisPinger  controllers.Pinger
	Metrics      *metrics.RequestMetrics
	Registry     *prometheus.Registry
	OrdersSvc    controllers.OrdersService
	StockSvc     controllers.StockService
	ProducersSvc controllers.ProducersService
	PatientsSvc  controllers.PatientsService
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DBPinger, deps.RedisPinger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.OrdersSvc, deps.Logger))
			r.Get("/{orderId}", controllers.OrderDetail(deps.OrdersSvc, deps.Logger))
			r.Post("/{orderId}/finalize", controllers.FinalizeOrder(deps.OrdersSvc, deps.Logger))
		})

		r.Route("/stock", func(r chi.Router) {
			r.Get("/", controllers.ListStock(deps.StockSvc, deps.Logger))
			r.Patch("/{itemId}/quantity", controllers.UpdateStockQuantity(deps.StockSvc, deps.Logger))
		})

		r.Route("/producers", func(r chi.Router) {
			r.Get("/", controllers.ListProducers(deps.ProducersSvc, deps.Logger))
			r.Get("/{producer}/images", controllers.ProducerGallery(deps.ProducersSvc, deps.Logger))
		})

		r.Route("/patients", func(r chi.Router) {
			r.Get("/", controllers.ListPatients(deps.PatientsSvc, deps.Logger))
			r.Get("/autocomplete", controllers.PatientAutocomplete(deps.PatientsSvc, deps.Logger))
			r.Get("/{patientId}", controllers.PatientDetail(deps.PatientsSvc, deps.Logger))
			r.Post("/", controllers.CreatePatient(deps.PatientsSvc, deps.Logger))
		})
	})

	return r
}
