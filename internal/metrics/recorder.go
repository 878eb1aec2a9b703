// Package metrics records request and workflow metrics. Prometheus backs the
// local HTTP server, CloudWatch backs Lambda deployments.
package metrics

import (
	"context"
	"time"
)

// Recorder receives the service's metric events. Implementations never fail
// the caller.
type Recorder interface {
	ObserveRequest(ctx context.Context, route, method string, status int, duration time.Duration)
	OrderPlaced(ctx context.Context, total float64, items int)
	CatalogSeeded(ctx context.Context, inserted int)
	ProductCreated(ctx context.Context)
}

// Nop discards every event.
type Nop struct{}

func (Nop) ObserveRequest(context.Context, string, string, int, time.Duration) {}
func (Nop) OrderPlaced(context.Context, float64, int)                           {}
func (Nop) CatalogSeeded(context.Context, int)                                  {}
func (Nop) ProductCreated(context.Context)                                      {}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
