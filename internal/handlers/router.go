package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/nwtech/license-orderflow/internal/catalog"
	"github.com/nwtech/license-orderflow/internal/docstore"
	"github.com/nwtech/license-orderflow/internal/logger"
	"github.com/nwtech/license-orderflow/internal/metrics"
	"github.com/nwtech/license-orderflow/internal/orders"
	"github.com/nwtech/license-orderflow/internal/validation"
)

// OrderNotifier publishes a message after an order is persisted.
// *aws.Publisher satisfies it.
type OrderNotifier interface {
	SendOrderMessage(ctx context.Context, messageBody string, attributes map[string]string) error
}

// Diagnostics describes the deployment for GET /test.
type Diagnostics struct {
	Driver      string
	Region      string
	TablePrefix string
}

// Deps groups everything the HTTP layer needs. Store may be nil when no
// document store is configured; Notifier and MetricsHandler are optional.
type Deps struct {
	Store          docstore.Store
	Logger         *logger.Logger
	Metrics        metrics.Recorder
	Notifier       OrderNotifier
	Validator      *validatorv10.Validate
	AllowedOrigins []string
	Diagnostics    Diagnostics
	MetricsHandler http.Handler
}

type api struct {
	catalog  *catalog.Service
	orders   *orders.Service
	store    docstore.Store
	log      *logger.Logger
	metrics  metrics.Recorder
	notifier OrderNotifier
	validate *validatorv10.Validate
	diag     Diagnostics
}

// NewRouter builds the gin engine serving the catalog and order API.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}
	if deps.Validator == nil {
		deps.Validator = validation.New()
	}

	a := &api{
		catalog:  catalog.NewService(deps.Store),
		orders:   orders.NewService(deps.Store, deps.Validator),
		store:    deps.Store,
		log:      deps.Logger,
		metrics:  deps.Metrics,
		notifier: deps.Notifier,
		validate: deps.Validator,
		diag:     deps.Diagnostics,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(deps.AllowedOrigins))
	r.Use(requestID(a.log))
	r.Use(requestLogging(a.log, a.metrics))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "NWTech Services Backend Running"})
	})
	r.GET("/test", a.diagnostics)

	licenses := r.Group("/api/licenses")
	licenses.GET("", a.listLicenses)
	licenses.POST("", a.createLicense)
	licenses.POST("/seed", a.seedLicenses)

	ordersGroup := r.Group("/api/orders")
	ordersGroup.POST("", a.placeOrder)
	ordersGroup.GET("", a.listOrders)

	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}
	return r
}
