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

	"github.com/institute/backend/internal/infrastructure/config"
)

const defaultSlowQueryThresh = 200 * time.Millisecond

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

// DBTracingPlugin registers otelgorm plus a slow query annotator.
type DBTracingPlugin struct {
	enabled    bool
	logFullSQL bool
	slowThresh time.Duration
	logger     *zap.Logger
}

// NewDBTracingPlugin creates the plugin from the telemetry configuration
func NewDBTracingPlugin(cfg config.TelemetryConfig, logger *zap.Logger) *DBTracingPlugin {
	thresh := cfg.DBSlowQueryThresh
	if thresh <= 0 {
		thresh = defaultSlowQueryThresh
	}
	return &DBTracingPlugin{
		enabled:    cfg.Enabled && cfg.DBTraceEnabled,
		logFullSQL: cfg.DBLogFullSQL,
		slowThresh: thresh,
		logger:     logger,
	}
}

// Register installs the plugin on db; a disabled plugin does nothing.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
	if !p.logFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := p.registerCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.logFullSQL),
		zap.Duration("slow_query_threshold", p.slowThresh))
	return nil
}

func (p *DBTracingPlugin) registerCallbacks(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartTimeKey, time.Now())
		}
	}
	cb := db.Callback()
	regs := []struct {
		name     string
		register func(name string) error
	}{
		{"create", func(n string) error {
			if err := cb.Create().Before("gorm:create").Register("otel_timing:before_"+n, before); err != nil {
				return err
			}
			return cb.Create().After("gorm:create").Register("otel_slow_query:"+n, p.afterQuery)
		}},
		{"query", func(n string) error {
			if err := cb.Query().Before("gorm:query").Register("otel_timing:before_"+n, before); err != nil {
				return err
			}
			return cb.Query().After("gorm:query").Register("otel_slow_query:"+n, p.afterQuery)
		}},
		{"update", func(n string) error {
			if err := cb.Update().Before("gorm:update").Register("otel_timing:before_"+n, before); err != nil {
				return err
			}
			return cb.Update().After("gorm:update").Register("otel_slow_query:"+n, p.afterQuery)
		}},
		{"delete", func(n string) error {
			if err := cb.Delete().Before("gorm:delete").Register("otel_timing:before_"+n, before); err != nil {
				return err
			}
			return cb.Delete().After("gorm:delete").Register("otel_slow_query:"+n, p.afterQuery)
		}},
		{"row", func(n string) error {
			if err := cb.Row().Before("gorm:row").Register("otel_timing:before_"+n, before); err != nil {
				return err
			}
			return cb.Row().After("gorm:row").Register("otel_slow_query:"+n, p.afterQuery)
		}},
		{"raw", func(n string) error {
			if err := cb.Raw().Before("gorm:raw").Register("otel_timing:before_"+n, before); err != nil {
				return err
			}
			return cb.Raw().After("gorm:raw").Register("otel_slow_query:"+n, p.afterQuery)
		}},
	}
	for _, r := range regs {
		if err := r.register(r.name); err != nil {
			return err
		}
	}
	return nil
}

// afterQuery marks errors and slow statements on the current span
func (p *DBTracingPlugin) afterQuery(tx *gorm.DB) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, tx.Error.Error())
		span.RecordError(tx.Error)
	}

	if start, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > p.slowThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
