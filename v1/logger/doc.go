// Package logger provides the structured logger used across this module.
//
// It wraps zap with a small, error-first API: every method takes a message,
// an optional error and optional field maps. Packages that log declare their
// own narrow Logger interface, so they depend on the shape and not on this
// package.
//
// # Architecture
//
//   - Logger interface: the full logging contract
//   - LoggerClient struct: the zap backed implementation
//   - NewLoggerClient constructor: returns *LoggerClient
//   - FXModule: provides both *LoggerClient and Logger
//
// # Direct Usage (Without FX)
//
//	import "github.com/Aleph-Alpha/querystd/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         "info",
//		EnableTracing: true,
//		ServiceName:   "catalog-api",
//	})
//
//	log.Warn("query parameter degraded", err, map[string]interface{}{
//		"param": "nested",
//	})
//
//	// With a span in ctx the entry also carries trace_id and span_id.
//	log.InfoWithContext(ctx, "request parsed", nil, map[string]interface{}{
//		"filter_keys": 4,
//	})
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: "info", ServiceName: "catalog-api"}
//		}),
//	)
//
// Packages with their own Logger interface need a one line adapter, since fx
// matches interface types exactly:
//
//	fx.Provide(func(l *logger.LoggerClient) queryparser.Logger { return l })
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # debug, info, warning, error
//	LOGGER_ENABLE_TRACING=true      # add trace_id/span_id in *WithContext methods
//	LOGGER_SERVICE_NAME=catalog-api # "service" field on every entry
//
// # Thread Safety
//
// All methods are safe for concurrent use.
package logger
