// Package observability provides logging, metrics, and tracing
// functionality for the console REST layer.
//
// Logging goes through the Logger interface backed by zap:
//
//	logger, err := observability.NewLogger(observability.DefaultLogConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
// Metrics are Prometheus collectors registered on a private registry. A
// short-lived process dumps them for the textfile collector:
//
//	metrics := observability.NewMetrics("console")
//	defer metrics.WriteToTextfile("/var/lib/node_exporter/console.prom")
//
// Tracing uses OpenTelemetry with an optional OTLP gRPC exporter.
package observability
