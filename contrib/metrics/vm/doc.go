// Package vm provides a VictoriaMetrics-based implementation of the MetricsCollector interface.
//
// This package uses github.com/VictoriaMetrics/metrics for lightweight,
// high-performance Prometheus-compatible metrics collection.
//
// # Basic Usage
//
// Create a collector with default prefix "scyllacdc":
//
//	collector := vm.New()
//	session, _ := scyllacdc.Bootstrap(cfg, scyllacdc.WithMetrics(collector))
//
// # Custom Prefix
//
// Use WithPrefix to customize the metric name prefix:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//
// # Exposing Metrics
//
// Use the Handler method to expose metrics via HTTP:
//
//	http.HandleFunc("/metrics", collector.Handler)
//	http.ListenAndServe(":8080", nil)
//
// # Metrics Provided
//
// Bootstrap:
//   - {prefix}_bootstrap_total - Counter of bootstrap attempts
//   - {prefix}_bootstrap_errors_total{kind} - Counter of failures by kind
//     (invalid_argument, security, connection, illegal_state)
//   - {prefix}_bootstrap_duration_seconds - Histogram of bootstrap latencies
//
// Sessions:
//   - {prefix}_sessions_opened_total{auth} - Counter of sessions by auth kind
//   - {prefix}_sessions_closed_total - Counter of closed sessions
//   - {prefix}_sessions_open - Gauge of currently open sessions
//
// # Performance Notes
//
// This implementation pre-creates all metrics at initialization time
// using the NewXXX pattern (instead of GetOrCreateXXX), as recommended by
// the VictoriaMetrics documentation.
package vm
