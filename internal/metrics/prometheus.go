package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus records events on a prometheus registerer.
type Prometheus struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	orders          prometheus.Counter
	orderAmount     prometheus.Counter
	orderItems      prometheus.Histogram
	seeded          prometheus.Counter
	products        prometheus.Counter
}

// NewPrometheus registers the service metrics on reg. A nil registerer yields
// a recorder that drops everything.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		return &Prometheus{}
	}
	p := &Prometheus{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		orders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders persisted.",
		}),
		orderAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_amount_total",
			Help: "Sum of placed order totals.",
		}),
		orderItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "order_items",
			Help:    "Line items per placed order.",
			Buckets: []float64{1, 2, 3, 5, 10, 20},
		}),
		seeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_seeded_products_total",
			Help: "Sample products inserted by catalog seeding.",
		}),
		products: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_products_created_total",
			Help: "Products created through the catalog API.",
		}),
	}
	reg.MustRegister(p.requests, p.requestDuration, p.orders, p.orderAmount, p.orderItems, p.seeded, p.products)
	return p
}

func (p *Prometheus) ObserveRequest(_ context.Context, route, method string, status int, duration time.Duration) {
	if p == nil || p.requests == nil {
		return
	}
	route = normalizeLabel(route)
	p.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	p.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

func (p *Prometheus) OrderPlaced(_ context.Context, total float64, items int) {
	if p == nil || p.orders == nil {
		return
	}
	p.orders.Inc()
	p.orderAmount.Add(total)
	p.orderItems.Observe(float64(items))
}

func (p *Prometheus) CatalogSeeded(_ context.Context, inserted int) {
	if p == nil || p.seeded == nil {
		return
	}
	p.seeded.Add(float64(inserted))
}

func (p *Prometheus) ProductCreated(context.Context) {
	if p == nil || p.products == nil {
		return
	}
	p.products.Inc()
}
