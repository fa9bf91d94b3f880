package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const meterName = "github.com/SergeyParamoshkin/gamereviews/internal/db"

type observer struct {
	log    *zap.SugaredLogger
	slow   time.Duration
	system string

	count    metric.Int64Counter
	duration metric.Float64Histogram
	errs     metric.Int64Counter
}

func (o *observer) instrument(meter metric.Meter) {
	o.count, _ = meter.Int64Counter("db.query.count",
		metric.WithDescription("Total number of SQL queries executed"),
		metric.WithUnit("{query}"),
	)
	o.duration, _ = meter.Float64Histogram("db.query.duration",
		metric.WithDescription("Query execution duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500),
	)
	o.errs, _ = meter.Int64Counter("db.query.errors",
		metric.WithDescription("Total number of failed SQL queries"),
		metric.WithUnit("{error}"),
	)
}

func (o *observer) observe(ctx context.Context, op, query string, start time.Time, err error) {
	elapsed := time.Since(start)

	// no rows is an answer, not a failure
	failed := err != nil && !errors.Is(err, sql.ErrNoRows)

	attrs := metric.WithAttributes(
		attribute.String("db.operation", op),
		attribute.String("db.system", o.system),
	)

	if o.count != nil {
		o.count.Add(ctx, 1, attrs)
	}
	if o.duration != nil {
		o.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
	}
	if failed && o.errs != nil {
		o.errs.Add(ctx, 1, attrs)
	}

	switch {
	case failed:
		o.log.Debugw("query failed", "operation", op, "query", query, "duration", elapsed, "error", err)
	case o.slow > 0 && elapsed >= o.slow:
		o.log.Warnw("slow query", "operation", op, "query", query, "duration", elapsed)
	default:
		o.log.Debugw("query", "operation", op, "query", query, "duration", elapsed)
	}
}
