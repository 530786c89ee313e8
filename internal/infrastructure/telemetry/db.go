package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for query tracing.
type DBTracingConfig struct {
	Enabled         bool
	DBName          string // reported as db.name, e.g. "postgresql" or "sqlite"
	SlowQueryThresh time.Duration
	IncludeVars     bool // include bound parameters in db.statement (development only)
}

type dbContextKey struct{}

// RegisterDBTracing installs the otelgorm plugin plus callbacks that tag slow
// queries and mark failed statements on the active span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.IncludeVars {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, dbContextKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { annotateSpan(tx, cfg.SlowQueryThresh) }

	cb := db.Callback()
	registrations := []error{
		cb.Create().Before("gorm:create").Register("finops_timing:before_create", before),
		cb.Query().Before("gorm:query").Register("finops_timing:before_query", before),
		cb.Update().Before("gorm:update").Register("finops_timing:before_update", before),
		cb.Delete().Before("gorm:delete").Register("finops_timing:before_delete", before),
		cb.Row().Before("gorm:row").Register("finops_timing:before_row", before),
		cb.Raw().Before("gorm:raw").Register("finops_timing:before_raw", before),
		cb.Create().After("gorm:create").Register("finops_timing:after_create", after),
		cb.Query().After("gorm:query").Register("finops_timing:after_query", after),
		cb.Update().After("gorm:update").Register("finops_timing:after_update", after),
		cb.Delete().After("gorm:delete").Register("finops_timing:after_delete", after),
		cb.Row().After("gorm:row").Register("finops_timing:after_row", after),
		cb.Raw().After("gorm:raw").Register("finops_timing:after_raw", after),
	}
	if err := errors.Join(registrations...); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_name", cfg.DBName),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

func annotateSpan(tx *gorm.DB, slow time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.RecordError(tx.Error)
		span.SetStatus(codes.Error, tx.Error.Error())
	}
	if start, ok := ctx.Value(dbContextKey{}).(time.Time); ok && slow > 0 {
		if elapsed := time.Since(start); elapsed > slow {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
