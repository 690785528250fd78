// Package observability provides structured logging and Prometheus metrics
// for the Taskdeck API.
//
// The Logger wraps logrus with a small leveled API and context helpers so
// handlers can pull a request-scoped logger out of the request context:
//
//	logger := observability.FromContext(r.Context())
//	logger.WithField("task_id", id).Info("task created")
//
// Metrics are registered against an explicit prometheus.Registry created in
// main and exposed on the health port:
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	observability.RegisterMetricsEndpoint(healthMux, registry)
package observability
