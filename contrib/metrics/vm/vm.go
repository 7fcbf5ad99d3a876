package vm

import (
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"

	"github.com/arloliu/scyllacdc/types"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPrefix sets the metric name prefix.
//
// Default: "scyllacdc"
//
// Parameters:
//   - prefix: The prefix to use for all metric names
//
// Returns:
//   - Option: A configuration option
func WithPrefix(prefix string) Option {
	return func(c *Collector) {
		c.prefix = prefix
	}
}

// WithMetricsSet sets the metrics set to use.
//
// If provided, the collector will register metrics with this set instead of
// creating a new one. The caller is responsible for exposing this set
// (e.g., via metrics.WritePrometheus or a custom handler).
//
// Parameters:
//   - set: The metrics set to use
//
// Returns:
//   - Option: A configuration option
func WithMetricsSet(set *metrics.Set) Option {
	return func(c *Collector) {
		c.set = set
	}
}

var errorKinds = []string{
	types.ErrorKindInvalidArgument,
	types.ErrorKindSecurity,
	types.ErrorKindConnection,
	types.ErrorKindIllegalState,
}

var authKinds = []types.AuthKind{types.AuthNone, types.AuthCredentials, types.AuthClientCert}

// Collector implements types.MetricsCollector using VictoriaMetrics.
//
// All metrics are pre-created at initialization time for optimal performance.
// Thread-safe for concurrent use.
type Collector struct {
	set    *metrics.Set
	prefix string

	// Bootstrap metrics
	bootstrapTotal    *metrics.Counter
	bootstrapErrors   map[string]*metrics.Counter
	bootstrapDuration *metrics.Histogram

	// Session metrics
	sessionsOpened map[types.AuthKind]*metrics.Counter
	sessionsClosed *metrics.Counter
	sessionsOpen   atomic.Int64
}

// Compile-time assertion that Collector implements types.MetricsCollector.
var _ types.MetricsCollector = (*Collector)(nil)

// New creates a new VictoriaMetrics-based metrics collector.
//
// The collector creates its own metrics.Set and registers it globally.
// All metrics are pre-created at initialization for optimal performance.
//
// Parameters:
//   - opts: Configuration options (e.g., WithPrefix)
//
// Returns:
//   - *Collector: A new metrics collector ready for use
//
// Example:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//	session, _ := scyllacdc.Bootstrap(cfg, scyllacdc.WithMetrics(collector))
func New(opts ...Option) *Collector {
	c := &Collector{
		prefix: "scyllacdc",
	}

	for _, opt := range opts {
		opt(c)
	}

	// If no set is provided, create a new one and register it globally.
	// If a set is provided, we assume the caller manages it.
	if c.set == nil {
		c.set = metrics.NewSet()
		metrics.RegisterSet(c.set)
	}

	c.initMetrics()

	return c
}

// initMetrics pre-creates all metrics with the configured prefix.
func (c *Collector) initMetrics() {
	p := c.prefix

	c.bootstrapTotal = c.set.NewCounter(fmt.Sprintf(`%s_bootstrap_total`, p))
	c.bootstrapErrors = make(map[string]*metrics.Counter, len(errorKinds))
	for _, kind := range errorKinds {
		c.bootstrapErrors[kind] = c.set.NewCounter(fmt.Sprintf(`%s_bootstrap_errors_total{kind="%s"}`, p, kind))
	}
	c.bootstrapDuration = c.set.NewHistogram(fmt.Sprintf(`%s_bootstrap_duration_seconds`, p))

	c.sessionsOpened = make(map[types.AuthKind]*metrics.Counter, len(authKinds))
	for _, kind := range authKinds {
		c.sessionsOpened[kind] = c.set.NewCounter(fmt.Sprintf(`%s_sessions_opened_total{auth="%s"}`, p, kind))
	}
	c.sessionsClosed = c.set.NewCounter(fmt.Sprintf(`%s_sessions_closed_total`, p))
	c.set.NewGauge(fmt.Sprintf(`%s_sessions_open`, p), func() float64 {
		return float64(c.sessionsOpen.Load())
	})
}

// Set returns the metrics set the collector registers with.
func (c *Collector) Set() *metrics.Set {
	return c.set
}

// Handler returns an HTTP handler that exposes metrics in Prometheus format.
//
// Example:
//
//	http.HandleFunc("/metrics", collector.Handler)
func (c *Collector) Handler(w http.ResponseWriter, _ *http.Request) {
	c.set.WritePrometheus(w)
}

// WritePrometheus writes all metrics in Prometheus format to the given writer.
//
// Parameters:
//   - w: The writer to write metrics to
func (c *Collector) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

// ----------------------
// Bootstrap
// ----------------------

// IncBootstrapTotal increments the bootstrap attempt counter.
func (c *Collector) IncBootstrapTotal() {
	c.bootstrapTotal.Inc()
}

// IncBootstrapError increments the bootstrap failure counter for kind.
// Unknown kinds are counted as illegal_state.
func (c *Collector) IncBootstrapError(kind string) {
	counter, ok := c.bootstrapErrors[kind]
	if !ok {
		counter = c.bootstrapErrors[types.ErrorKindIllegalState]
	}
	counter.Inc()
}

// ObserveBootstrapDuration records a bootstrap duration in seconds.
func (c *Collector) ObserveBootstrapDuration(seconds float64) {
	c.bootstrapDuration.Update(seconds)
}

// ----------------------
// Session Lifecycle
// ----------------------

// IncSessionOpened increments the opened-session counter and the open gauge.
func (c *Collector) IncSessionOpened(authKind types.AuthKind) {
	if counter, ok := c.sessionsOpened[authKind]; ok {
		counter.Inc()
	}
	c.sessionsOpen.Add(1)
}

// IncSessionClosed increments the closed-session counter and lowers the open gauge.
func (c *Collector) IncSessionClosed() {
	c.sessionsClosed.Inc()
	c.sessionsOpen.Add(-1)
}
