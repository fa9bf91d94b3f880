// Package telemetry wires the OpenTelemetry metric SDK to a prometheus
// registry served on the diagnostics router, and records the HTTP server
// metrics of the API router.
package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

type Telemetry struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider
	meter    metric.Meter

	completed metric.Int64Counter
	duration  metric.Float64Histogram
}

// New creates a meter provider exporting to a private prometheus registry
// and installs it as the global provider.
func New(serviceName string) (*Telemetry, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	)
	otel.SetMeterProvider(provider)

	t := &Telemetry{
		registry: registry,
		provider: provider,
		meter:    provider.Meter(serviceName),
	}

	t.completed, err = t.meter.Int64Counter("http.server.completed_count",
		metric.WithDescription("Count of completed requests, by HTTP method and response status"),
	)
	if err != nil {
		return nil, err
	}

	t.duration, err = t.meter.Float64Histogram("http.server.duration",
		metric.WithDescription("Request duration in milliseconds, by route"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Telemetry) Meter() metric.Meter {
	return t.meter
}

// Handler serves the registry in the prometheus text format.
func (t *Telemetry) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{Registry: t.registry})
}

// Middleware counts completed requests and records their duration. The
// route attribute is the chi route pattern, never the raw path.
func (t *Telemetry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		attrs := metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.String("status", strconv.Itoa(status)),
			attribute.String("route", route),
		)

		t.completed.Add(r.Context(), 1, attrs)
		t.duration.Record(r.Context(), float64(time.Since(start).Microseconds())/1000, attrs)
	})
}

func (t *Telemetry) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}
