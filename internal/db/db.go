// Package db is the data access handle shared by every store. It wraps an
// sqlx pool with the dialect's squirrel placeholder format, query logging
// and metrics, transactions and the existence checks used before writes.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Querier is satisfied by both *DB and *Tx, so stores can run the same
// code inside and outside a transaction.
type Querier interface {
	Builder() sq.StatementBuilderType
	Select(ctx context.Context, dest any, query sq.Sqlizer) error
	Get(ctx context.Context, dest any, query sq.Sqlizer) error
	Exec(ctx context.Context, query sq.Sqlizer) (sql.Result, error)
}

type executor interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type runner struct {
	exec    executor
	builder sq.StatementBuilderType
	obs     *observer
}

func (r runner) Builder() sq.StatementBuilderType {
	return r.builder
}

func (r runner) Select(ctx context.Context, dest any, query sq.Sqlizer) error {
	q, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	start := time.Now()
	err = r.exec.SelectContext(ctx, dest, q, args...)
	r.obs.observe(ctx, "select", q, start, err)

	return err
}

func (r runner) Get(ctx context.Context, dest any, query sq.Sqlizer) error {
	q, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	start := time.Now()
	err = r.exec.GetContext(ctx, dest, q, args...)
	r.obs.observe(ctx, "get", q, start, err)

	return err
}

func (r runner) Exec(ctx context.Context, query sq.Sqlizer) (sql.Result, error) {
	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	start := time.Now()
	res, err := r.exec.ExecContext(ctx, q, args...)
	r.obs.observe(ctx, "exec", q, start, err)

	return res, err
}

type DB struct {
	runner
	x       *sqlx.DB
	dialect Dialect
}

type Tx struct {
	runner
	tx *sqlx.Tx
}

type Option func(*DB)

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(d *DB) {
		d.obs.log = logger
	}
}

// WithMeter records query count, duration and errors on meter.
func WithMeter(meter metric.Meter) Option {
	return func(d *DB) {
		d.obs.instrument(meter)
	}
}

// WithSlowQueryThreshold logs queries slower than threshold at warn level.
func WithSlowQueryThreshold(threshold time.Duration) Option {
	return func(d *DB) {
		d.obs.slow = threshold
	}
}

// Open connects to the database behind driver and dsn and pings it.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*DB, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	x, err := sqlx.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect.Name(), err)
	}

	if dialect == SQLite {
		// a second connection to an in-memory database sees an empty one
		x.SetMaxOpenConns(1)
	}

	if err := x.PingContext(ctx); err != nil {
		_ = x.Close()

		return nil, fmt.Errorf("ping %s: %w", dialect.Name(), err)
	}

	return New(x, dialect, opts...), nil
}

// New wraps an already opened pool.
func New(x *sqlx.DB, dialect Dialect, opts ...Option) *DB {
	obs := &observer{
		log:    zap.NewNop().Sugar(),
		slow:   200 * time.Millisecond,
		system: dialect.Name(),
	}
	obs.instrument(otel.Meter(meterName))

	d := &DB{
		runner: runner{
			exec:    x,
			builder: sq.StatementBuilder.PlaceholderFormat(dialect.PlaceholderFormat()),
			obs:     obs,
		},
		x:       x,
		dialect: dialect,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *DB) Dialect() Dialect {
	return d.dialect
}

func (d *DB) Ping(ctx context.Context) error {
	return d.x.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.x.Close()
}

// Transaction runs fn inside a transaction. The transaction is rolled back
// when fn returns an error or panics and committed otherwise.
func (d *DB) Transaction(ctx context.Context, fn func(tx *Tx) error) (err error) {
	x, err := d.x.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	tx := &Tx{
		runner: runner{exec: x, builder: d.builder, obs: d.obs},
		tx:     x,
	}

	defer func() {
		if p := recover(); p != nil {
			_ = x.Rollback()
			panic(p)
		}

		if err != nil {
			_ = x.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = x.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
