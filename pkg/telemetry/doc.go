// Package telemetry provides structured logging, tracing, and metrics for
// OrgForge.
//
// Logging is built on zerolog, tracing on OpenTelemetry (stdout or OTLP gRPC
// exporters), and metrics on Prometheus. Tracing and metrics are disabled by
// default; a disabled Tracer or Metrics instance is safe to use and records
// nothing.
package telemetry
