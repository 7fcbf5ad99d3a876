package scyllacdc

import (
	"github.com/arloliu/scyllacdc/adapter/cql"
	v1 "github.com/arloliu/scyllacdc/adapter/cql/v1"
	"github.com/arloliu/scyllacdc/internal/logging"
	"github.com/arloliu/scyllacdc/internal/metrics"
	"github.com/arloliu/scyllacdc/security"
	"github.com/arloliu/scyllacdc/types"
)

// BootstrapConfig holds the collaborators used by Bootstrap.
type BootstrapConfig struct {
	Driver     cql.Driver
	Logger     types.Logger
	Metrics    types.MetricsCollector
	TLSOptions []security.Option
}

// DefaultBootstrapConfig returns a BootstrapConfig with sensible defaults.
//
// Defaults:
//   - Driver: gocql v1 (adapter/cql/v1)
//   - Logger: no-op
//   - Metrics: no-op
//
// Returns:
//   - *BootstrapConfig: Configuration with default settings
func DefaultBootstrapConfig() *BootstrapConfig {
	return &BootstrapConfig{
		Driver:  v1.NewDriver(),
		Logger:  logging.NewNopLogger(),
		Metrics: metrics.NewNopMetrics(),
	}
}

// Option configures a BootstrapConfig.
type Option func(*BootstrapConfig)

// WithDriver sets the driver that builds the cluster and session.
//
// Parameters:
//   - driver: A cql.Driver such as v1.NewDriver() or v2.NewDriver()
//
// Returns:
//   - Option: Configuration option
//
// Example:
//
//	session, err := scyllacdc.Bootstrap(cfg,
//	    scyllacdc.WithDriver(v2.NewDriver()),
//	)
func WithDriver(driver cql.Driver) Option {
	return func(c *BootstrapConfig) {
		if driver != nil {
			c.Driver = driver
		}
	}
}

// WithLogger sets the structured logger.
//
// If not set, a no-op logger is used that discards all messages.
// Passwords are never logged.
//
// Parameters:
//   - logger: The logger implementation
//
// Returns:
//   - Option: Configuration option
//
// Example:
//
//	logger, _ := zap.NewProduction()
//	session, err := scyllacdc.Bootstrap(cfg,
//	    scyllacdc.WithLogger(zaplog.New(logger)),
//	)
func WithLogger(logger types.Logger) Option {
	return func(c *BootstrapConfig) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
//
// Parameters:
//   - collector: The metrics collector implementation
//
// Returns:
//   - Option: Configuration option
//
// Example:
//
//	import vmmetrics "github.com/arloliu/scyllacdc/contrib/metrics/vm"
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	session, err := scyllacdc.Bootstrap(cfg, scyllacdc.WithMetrics(collector))
func WithMetrics(collector types.MetricsCollector) Option {
	return func(c *BootstrapConfig) {
		if collector != nil {
			c.Metrics = collector
		}
	}
}

// WithHostVerification verifies server host names against their
// certificates when client certificate auth is configured.
//
// By default only the certificate chain is verified.
//
// Returns:
//   - Option: Configuration option
func WithHostVerification() Option {
	return func(c *BootstrapConfig) {
		c.TLSOptions = append(c.TLSOptions, security.WithHostVerification())
	}
}
