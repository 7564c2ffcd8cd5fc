// Package observability provides structured logging for the resolution
// engine and its surrounding commands.
//
// # Overview
//
// The logger wraps stdlib log/slog with JSON output, leveled filtering, and
// chainable field attachment. Engine packages log through it without
// knowing where output goes; commands decide the sink and level.
//
// # Usage Example
//
//	log := observability.NewLogger(observability.InfoLevel, os.Stderr)
//	log.WithField("packages", g.Len()).Info("graph built")
//
//	run := log.WithField("run_id", report.RunID)
//	run.WithError(err).Warn("specifier skipped")
//
// # Related Packages
//
//   - pkg/resolve: Tags every log line with the resolution run ID
package observability
