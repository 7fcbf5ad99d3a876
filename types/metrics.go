package types

// Error kinds reported to MetricsCollector.IncBootstrapError.
const (
	ErrorKindInvalidArgument = "invalid_argument"
	ErrorKindSecurity        = "security"
	ErrorKindConnection      = "connection"
	ErrorKindIllegalState    = "illegal_state"
)

// MetricsCollector defines methods for collecting session lifecycle metrics.
//
// Implementations should be thread-safe as methods may be called concurrently.
//
// Example usage with VictoriaMetrics (via contrib/metrics/vm):
//
//	import vmmetrics "github.com/arloliu/scyllacdc/contrib/metrics/vm"
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	session, _ := scyllacdc.Bootstrap(cfg, scyllacdc.WithMetrics(collector))
//
//	// Expose metrics via HTTP
//	http.HandleFunc("/metrics", collector.Handler)
type MetricsCollector interface {
	// ----------------------
	// Bootstrap
	// ----------------------

	// IncBootstrapTotal increments the bootstrap attempt counter.
	IncBootstrapTotal()

	// IncBootstrapError increments the bootstrap failure counter.
	// kind is one of the ErrorKind* constants.
	IncBootstrapError(kind string)

	// ObserveBootstrapDuration records the bootstrap duration in seconds.
	ObserveBootstrapDuration(seconds float64)

	// ----------------------
	// Session Lifecycle
	// ----------------------

	// IncSessionOpened increments the counter when a session is handed to the caller.
	IncSessionOpened(authKind AuthKind)

	// IncSessionClosed increments the counter when a session is closed.
	IncSessionClosed()
}
