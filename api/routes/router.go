package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openlmis/fulfillment-backend/api/controllers"
	"github.com/openlmis/fulfillment-backend/api/middleware"
	"github.com/openlmis/fulfillment-backend/internal/orders"
	"github.com/openlmis/fulfillment-backend/internal/templates"
	"github.com/openlmis/fulfillment-backend/internal/transfer"
	"github.com/openlmis/fulfillment-backend/pkg/config"
	"github.com/openlmis/fulfillment-backend/pkg/logger"
)

// RouterParams groups the wired services exposed over HTTP.
type RouterParams struct {
	Config    *config.Config
	Log       *logger.Logger
	Orders    *orders.Service
	Templates *templates.Service
	Transfer  *transfer.Service
	Metrics   prometheus.Gatherer
}

func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(params.Log),
		middleware.RequestID(params.Log),
		middleware.Logging(params.Log),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(params.Config))
		r.Get("/ready", controllers.HealthReady(params.Config))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", controllers.OrderList(params.Orders, params.Log))
		r.Post("/", controllers.OrderCreate(params.Orders, params.Log))
		r.Get("/{orderID}", controllers.OrderGet(params.Orders, params.Log))
		r.Delete("/{orderID}", controllers.OrderDelete(params.Orders, params.Log))
		r.Get("/{orderID}/export", controllers.OrderExport(params.Orders, params.Log))
		r.Post("/{orderID}/retry", controllers.OrderRetry(params.Orders, params.Log))
	})

	r.Route("/api/fileTemplates", func(r chi.Router) {
		r.Get("/", controllers.FileTemplateGet(params.Templates, params.Log))
		r.Put("/", controllers.FileTemplateSave(params.Templates, params.Log))
	})

	r.Route("/api/transferProperties", func(r chi.Router) {
		r.Post("/", controllers.TransferPropertiesCreate(params.Transfer, params.Log))
		r.Get("/search", controllers.TransferPropertiesSearch(params.Transfer, params.Log))
		r.Get("/{propertiesID}", controllers.TransferPropertiesGet(params.Transfer, params.Log))
		r.Put("/{propertiesID}", controllers.TransferPropertiesUpdate(params.Transfer, params.Log))
		r.Delete("/{propertiesID}", controllers.TransferPropertiesDelete(params.Transfer, params.Log))
	})

	return r
}
