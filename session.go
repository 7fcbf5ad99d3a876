package scyllacdc

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/scyllacdc/adapter/cql"
	"github.com/arloliu/scyllacdc/security"
	"github.com/arloliu/scyllacdc/types"
)

// consistencyTable maps every abstract level to its native driver value.
var consistencyTable = map[types.Consistency]cql.Consistency{
	types.LocalOne:    cql.LocalOne,
	types.One:         cql.One,
	types.Two:         cql.Two,
	types.Three:       cql.Three,
	types.LocalQuorum: cql.LocalQuorum,
	types.Quorum:      cql.Quorum,
	types.All:         cql.All,
}

// SystemConsistency is the level used by SystemQuery.
const SystemConsistency = cql.LocalOne

func resolveConsistency(level types.Consistency) (cql.Consistency, error) {
	native, ok := consistencyTable[level]
	if !ok {
		return 0, fmt.Errorf("%w: no native consistency for level %d (%s)", types.ErrIllegalState, uint8(level), level)
	}

	return native, nil
}

// Session is an open, authenticated session for reading a CDC log.
//
// Session owns the driver cluster and session. Close releases the session
// first, then the cluster, each at most once.
//
// Session is safe for concurrent use. Query concurrency is provided by
// the underlying driver.
type Session struct {
	id          string
	level       types.Consistency
	consistency cql.Consistency
	authKind    types.AuthKind
	logger      types.Logger
	metrics     types.MetricsCollector

	mu      sync.RWMutex
	cluster cql.Cluster
	session cql.Session
	opened  bool
}

// Bootstrap opens a session described by cfg.
//
// The steps are:
//  1. Assemble driver parameters: newest protocol version, contact points, port 9042.
//  2. Attach credentials, or build a TLS config from the trust and key
//     stores and switch to port 9142.
//  3. Install a DC-aware round-robin policy when a local DC is set.
//  4. Build the cluster and open the session.
//  5. Resolve the native consistency level.
//
// Any resource opened before a failing step is released before the error
// is returned.
//
// Parameters:
//   - cfg: A Configuration from Builder.Build
//   - opts: Optional collaborators (driver, logger, metrics)
//
// Returns:
//   - *Session: The open session
//   - error: wraps one of types.ErrInvalidArgument, types.ErrSecurityInitialization,
//     types.ErrConnection or types.ErrIllegalState
//
// Example:
//
//	session, err := scyllacdc.Bootstrap(cfg, scyllacdc.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
func Bootstrap(cfg *Configuration, opts ...Option) (*Session, error) {
	bc := DefaultBootstrapConfig()
	for _, opt := range opts {
		opt(bc)
	}

	start := time.Now()
	bc.Metrics.IncBootstrapTotal()

	s, err := bootstrap(cfg, bc)
	bc.Metrics.ObserveBootstrapDuration(time.Since(start).Seconds())
	if err != nil {
		kind := errorKind(err)
		bc.Metrics.IncBootstrapError(kind)
		bc.Logger.Error("scyllacdc: bootstrap failed", "kind", kind, "error", err)

		return nil, err
	}

	bc.Metrics.IncSessionOpened(s.authKind)
	bc.Logger.Info("scyllacdc: session opened",
		"session_id", s.id,
		"auth", s.authKind.String(),
		"consistency", s.consistency.String(),
	)

	return s, nil
}

func bootstrap(cfg *Configuration, bc *BootstrapConfig) (_ *Session, err error) {
	if cfg == nil {
		return nil, &types.ArgumentError{Field: "configuration", Reason: "must not be nil"}
	}

	params := cql.ClusterParams{
		ContactPoints:   cfg.ContactPoints(),
		Port:            types.DefaultPort,
		ProtocolVersion: cql.NewestSupported,
	}

	switch auth := cfg.Auth().(type) {
	case types.Credentials:
		params.Auth = &cql.PasswordAuth{Username: auth.User, Password: auth.Password}
	case types.ClientCertAuth:
		bc.Logger.Debug("scyllacdc: loading TLS material",
			"truststore", auth.TruststoreLocation,
			"truststore_type", auth.TruststoreType,
			"keystore", auth.KeystoreLocation,
			"keystore_type", auth.KeystoreType,
		)

		tlsConfig, err := security.NewTLSConfig(auth, bc.TLSOptions...)
		if err != nil {
			return nil, err
		}

		params.TLSConfig = tlsConfig
		params.Port = types.DefaultTLSPort
	}

	if dc, ok := cfg.LocalDCName(); ok {
		params.LoadBalancing = cql.DCAwareRoundRobinPolicy{LocalDC: dc}
	}

	s := &Session{
		id:       uuid.NewString(),
		level:    cfg.ConsistencyLevel(),
		authKind: cfg.Auth().Kind(),
		logger:   bc.Logger,
		metrics:  bc.Metrics,
	}
	defer func() {
		if err != nil {
			s.release()
		}
	}()

	bc.Logger.Debug("scyllacdc: building cluster",
		"contact_points", len(params.ContactPoints),
		"port", params.Port,
		"tls", params.TLSConfig != nil,
		"local_dc", cfg.localDC,
	)

	s.cluster, err = bc.Driver.NewCluster(params)
	if err != nil {
		return nil, &types.ConnectionError{Stage: "cluster", Cause: err}
	}
	if s.cluster == nil {
		return nil, &types.ConnectionError{Stage: "cluster", Cause: errNilCluster}
	}

	s.session, err = s.cluster.Connect()
	if err != nil {
		return nil, &types.ConnectionError{Stage: "session", Cause: err}
	}
	if s.session == nil {
		return nil, &types.ConnectionError{Stage: "session", Cause: errNilSession}
	}

	s.consistency, err = resolveConsistency(s.level)
	if err != nil {
		return nil, err
	}

	s.opened = true

	return s, nil
}

var (
	errNilCluster = errors.New("driver returned a nil cluster without an error")
	errNilSession = errors.New("driver returned a nil session without an error")
)

func errorKind(err error) string {
	switch {
	case errors.Is(err, types.ErrInvalidArgument):
		return types.ErrorKindInvalidArgument
	case errors.Is(err, types.ErrSecurityInitialization):
		return types.ErrorKindSecurity
	case errors.Is(err, types.ErrConnection):
		return types.ErrorKindConnection
	}

	return types.ErrorKindIllegalState
}

// ID returns a unique identifier for this session, used in logs.
func (s *Session) ID() string {
	return s.id
}

// ConsistencyLevel returns the configured abstract consistency level.
func (s *Session) ConsistencyLevel() types.Consistency {
	return s.level
}

// Consistency returns the native consistency applied to CDC log queries.
func (s *Session) Consistency() cql.Consistency {
	return s.consistency
}

// Query creates a query against the CDC log at the configured consistency.
//
// After Close the returned query fails with types.ErrSessionClosed.
//
// Parameters:
//   - stmt: CQL statement with ? placeholders
//   - values: Values to bind to placeholders
//
// Returns:
//   - cql.Query: A query with the session consistency applied
func (s *Session) Query(stmt string, values ...any) cql.Query {
	return s.query(s.consistency, stmt, values)
}

// SystemQuery creates a query against system or metadata tables.
//
// System queries always run at LOCAL_ONE and ignore the configured
// consistency level.
//
// Parameters:
//   - stmt: CQL statement with ? placeholders
//   - values: Values to bind to placeholders
//
// Returns:
//   - cql.Query: A query at LOCAL_ONE
func (s *Session) SystemQuery(stmt string, values ...any) cql.Query {
	return s.query(SystemConsistency, stmt, values)
}

func (s *Session) query(c cql.Consistency, stmt string, values []any) cql.Query {
	s.mu.RLock()
	session := s.session
	s.mu.RUnlock()

	if session == nil {
		return &closedQuery{stmt: stmt, values: values}
	}

	return session.Query(stmt, values...).Consistency(c)
}

// Driver returns the underlying driver session, or nil after Close.
func (s *Session) Driver() cql.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session == nil && s.cluster == nil
}

// Close releases the session, then the cluster.
//
// Close is idempotent and safe to call from any goroutine.
func (s *Session) Close() {
	if s == nil {
		return
	}

	if s.release() {
		s.metrics.IncSessionClosed()
		s.logger.Info("scyllacdc: session closed", "session_id", s.id)
	}
}

// release closes whichever sub-resources are still held and reports
// whether the session had been handed to a caller.
func (s *Session) release() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		s.session.Close()
		s.session = nil
	}
	if s.cluster != nil {
		s.cluster.Close()
		s.cluster = nil
	}

	opened := s.opened
	s.opened = false

	return opened
}
