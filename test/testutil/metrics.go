package testutil

import (
	"sync"

	"github.com/arloliu/scyllacdc/types"
)

// TestMetricsCollector is a test implementation of types.MetricsCollector
// that tracks method calls for assertion in tests.
type TestMetricsCollector struct {
	mu sync.RWMutex

	// Bootstrap
	BootstrapTotal    int64
	BootstrapErrors   map[string]int64
	BootstrapDuration []float64

	// Session lifecycle
	SessionsOpened map[types.AuthKind]int64
	SessionsClosed int64
}

// Compile-time assertion that TestMetricsCollector implements types.MetricsCollector.
var _ types.MetricsCollector = (*TestMetricsCollector)(nil)

// NewTestMetricsCollector creates a new test metrics collector.
func NewTestMetricsCollector() *TestMetricsCollector {
	return &TestMetricsCollector{
		BootstrapErrors: make(map[string]int64),
		SessionsOpened:  make(map[types.AuthKind]int64),
	}
}

// ----------------------
// Bootstrap
// ----------------------

func (m *TestMetricsCollector) IncBootstrapTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BootstrapTotal++
}

func (m *TestMetricsCollector) IncBootstrapError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BootstrapErrors[kind]++
}

func (m *TestMetricsCollector) ObserveBootstrapDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BootstrapDuration = append(m.BootstrapDuration, seconds)
}

// ----------------------
// Session Lifecycle
// ----------------------

func (m *TestMetricsCollector) IncSessionOpened(authKind types.AuthKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsOpened[authKind]++
}

func (m *TestMetricsCollector) IncSessionClosed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsClosed++
}

// ----------------------
// Test Helpers
// ----------------------

// GetBootstrapTotal returns the number of bootstrap attempts.
func (m *TestMetricsCollector) GetBootstrapTotal() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.BootstrapTotal
}

// GetBootstrapErrors returns the failure count for an error kind.
func (m *TestMetricsCollector) GetBootstrapErrors(kind string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.BootstrapErrors[kind]
}

// GetBootstrapDurations returns a copy of the observed durations.
func (m *TestMetricsCollector) GetBootstrapDurations() []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]float64(nil), m.BootstrapDuration...)
}

// GetSessionsOpened returns the number of sessions opened with the given auth kind.
func (m *TestMetricsCollector) GetSessionsOpened(authKind types.AuthKind) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.SessionsOpened[authKind]
}

// GetSessionsClosed returns the number of sessions closed.
func (m *TestMetricsCollector) GetSessionsClosed() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.SessionsClosed
}

// Reset clears all collected metrics.
func (m *TestMetricsCollector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.BootstrapTotal = 0
	m.BootstrapErrors = make(map[string]int64)
	m.BootstrapDuration = nil
	m.SessionsOpened = make(map[types.AuthKind]int64)
	m.SessionsClosed = 0
}
