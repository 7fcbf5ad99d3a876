// Package metrics provides internal metrics utilities for scyllacdc.
package metrics

import "github.com/arloliu/scyllacdc/types"

// NopMetrics is a no-op metrics collector that discards all metrics.
//
// This is used as the default metrics collector when no collector is configured,
// avoiding nil checks throughout the codebase.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements types.MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNopMetrics creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A collector that discards all metrics
func NewNopMetrics() *NopMetrics {
	return &NopMetrics{}
}

// ----------------------
// Bootstrap
// ----------------------

// IncBootstrapTotal discards the metric.
func (m *NopMetrics) IncBootstrapTotal() {}

// IncBootstrapError discards the metric.
func (m *NopMetrics) IncBootstrapError(_ string) {}

// ObserveBootstrapDuration discards the metric.
func (m *NopMetrics) ObserveBootstrapDuration(_ float64) {}

// ----------------------
// Session Lifecycle
// ----------------------

// IncSessionOpened discards the metric.
func (m *NopMetrics) IncSessionOpened(_ types.AuthKind) {}

// IncSessionClosed discards the metric.
func (m *NopMetrics) IncSessionClosed() {}
