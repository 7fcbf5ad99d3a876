// Package v1 provides an adapter for gocql v1 (github.com/gocql/gocql).
package v1

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/gocql/gocql"

	"github.com/arloliu/scyllacdc/adapter/cql"
)

// errClusterClosed is returned when Connect is called on a closed cluster.
var errClusterClosed = errors.New("v1: cluster is closed")

// Option configures a Driver.
type Option func(*Driver)

// WithClusterConfig registers a hook that runs on every gocql.ClusterConfig
// after scyllacdc has applied its parameters.
//
// Use it for driver concerns scyllacdc does not manage, such as timeouts,
// keyspace or retry policy.
//
// Parameters:
//   - fn: Function that adjusts the cluster config
//
// Returns:
//   - Option: Configuration option
//
// Example:
//
//	driver := v1.NewDriver(v1.WithClusterConfig(func(c *gocql.ClusterConfig) {
//	    c.Timeout = 10 * time.Second
//	}))
func WithClusterConfig(fn func(*gocql.ClusterConfig)) Option {
	return func(d *Driver) {
		d.configurers = append(d.configurers, fn)
	}
}

// Driver builds gocql v1 clusters.
type Driver struct {
	configurers []func(*gocql.ClusterConfig)
}

// Compile-time assertion that Driver implements cql.Driver.
var _ cql.Driver = (*Driver)(nil)

// NewDriver creates a gocql v1 driver.
//
// Parameters:
//   - opts: Optional configuration options
//
// Returns:
//   - *Driver: A driver implementing cql.Driver
func NewDriver(opts ...Option) *Driver {
	d := &Driver{}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// NewCluster translates params into a gocql.ClusterConfig.
//
// Parameters:
//   - params: Connection parameters assembled by scyllacdc
//
// Returns:
//   - cql.Cluster: A cluster wrapping the gocql config
//   - error: Always nil; the config is validated by gocql on Connect
func (d *Driver) NewCluster(params cql.ClusterParams) (cql.Cluster, error) {
	hosts := make([]string, 0, len(params.ContactPoints))
	for _, cp := range params.ContactPoints {
		hosts = append(hosts, cql.HostAddress(cp, params.Port))
	}

	config := gocql.NewCluster(hosts...)
	config.ProtoVersion = int(params.ProtocolVersion)
	if params.Port > 0 {
		config.Port = params.Port
	}

	if params.Auth != nil {
		config.Authenticator = gocql.PasswordAuthenticator{
			Username: params.Auth.Username,
			Password: params.Auth.Password,
		}
	}

	if params.TLSConfig != nil {
		// Verification is configured on the tls.Config itself.
		config.SslOpts = &gocql.SslOptions{
			Config:                 params.TLSConfig,
			EnableHostVerification: !params.TLSConfig.InsecureSkipVerify,
		}
	}

	if policy, ok := params.LoadBalancing.(cql.DCAwareRoundRobinPolicy); ok {
		config.PoolConfig.HostSelectionPolicy = gocql.DCAwareRoundRobinPolicy(policy.LocalDC)
	}

	for _, fn := range d.configurers {
		fn(config)
	}

	return &Cluster{config: config}, nil
}

// Cluster wraps a gocql v1 cluster config.
//
// gocql keeps every pooled connection on the session, so closing the
// cluster only prevents further sessions from being opened.
type Cluster struct {
	config *gocql.ClusterConfig
	closed atomic.Bool
}

// Config returns the underlying gocql.ClusterConfig.
func (c *Cluster) Config() *gocql.ClusterConfig {
	return c.config
}

// Connect creates a gocql session.
func (c *Cluster) Connect() (cql.Session, error) {
	if c.closed.Load() {
		return nil, errClusterClosed
	}

	session, err := c.config.CreateSession()
	if err != nil {
		return nil, err
	}

	return NewSession(session), nil
}

// Close marks the cluster closed.
func (c *Cluster) Close() {
	c.closed.Store(true)
}

// Session wraps a gocql v1 session.
type Session struct {
	session *gocql.Session
}

// NewSession creates a new v1 adapter from a gocql session.
//
// Parameters:
//   - session: A gocql.Session instance
//
// Returns:
//   - *Session: An adapter implementing cql.Session
func NewSession(session *gocql.Session) *Session {
	return &Session{session: session}
}

// Query creates a new query for the given statement.
//
// Parameters:
//   - stmt: CQL statement with ? placeholders
//   - values: Values to bind to placeholders
//
// Returns:
//   - cql.Query: A query builder
func (s *Session) Query(stmt string, values ...any) cql.Query {
	return &Query{
		query:     s.session.Query(stmt, values...),
		statement: stmt,
		values:    values,
	}
}

// Close terminates the session.
func (s *Session) Close() {
	s.session.Close()
}

// Query wraps a gocql v1 query.
type Query struct {
	query     *gocql.Query
	statement string
	values    []any
}

// Consistency sets the consistency level.
func (q *Query) Consistency(c cql.Consistency) cql.Query {
	q.query = q.query.Consistency(gocql.Consistency(c))
	return q
}

// PageSize sets the page size.
func (q *Query) PageSize(n int) cql.Query {
	q.query = q.query.PageSize(n)
	return q
}

// PageState sets the pagination state.
func (q *Query) PageState(state []byte) cql.Query {
	q.query = q.query.PageState(state)
	return q
}

// Exec executes the query.
func (q *Query) Exec() error {
	return q.query.Exec()
}

// Scan executes and scans a single row.
func (q *Query) Scan(dest ...any) error {
	return q.query.Scan(dest...)
}

// Iter returns an iterator for results.
func (q *Query) Iter() cql.Iter {
	return &Iter{iter: q.query.Iter()}
}

// MapScan executes and scans into a map.
func (q *Query) MapScan(m map[string]any) error {
	return q.query.MapScan(m)
}

// Statement returns the CQL statement.
func (q *Query) Statement() string {
	return q.statement
}

// Values returns the bound values.
func (q *Query) Values() []any {
	return q.values
}

// Release returns the query to the gocql pool.
func (q *Query) Release() {
	q.query.Release()
}

// ExecContext executes the query with context.
func (q *Query) ExecContext(ctx context.Context) error {
	return q.query.WithContext(ctx).Exec()
}

// ScanContext executes and scans a single row with context.
func (q *Query) ScanContext(ctx context.Context, dest ...any) error {
	return q.query.WithContext(ctx).Scan(dest...)
}

// IterContext returns an iterator for results with context.
func (q *Query) IterContext(ctx context.Context) cql.Iter {
	return &Iter{iter: q.query.WithContext(ctx).Iter()}
}

// MapScanContext executes and scans into a map with context.
func (q *Query) MapScanContext(ctx context.Context, m map[string]any) error {
	return q.query.WithContext(ctx).MapScan(m)
}

// Iter wraps a gocql v1 iterator.
type Iter struct {
	iter *gocql.Iter
}

// Scan reads the next row.
func (i *Iter) Scan(dest ...any) bool {
	if i.iter == nil {
		return false
	}

	return i.iter.Scan(dest...)
}

// Close closes the iterator.
func (i *Iter) Close() error {
	if i.iter == nil {
		return nil
	}

	return i.iter.Close()
}

// MapScan reads the next row into a map.
func (i *Iter) MapScan(m map[string]any) bool {
	if i.iter == nil {
		return false
	}

	return i.iter.MapScan(m)
}

// SliceMap reads all rows into a slice of maps.
func (i *Iter) SliceMap() ([]map[string]any, error) {
	if i.iter == nil {
		return nil, nil
	}

	return i.iter.SliceMap()
}

// PageState returns the pagination token.
func (i *Iter) PageState() []byte {
	if i.iter == nil {
		return nil
	}

	return i.iter.PageState()
}

// NumRows returns the number of rows in the current page.
func (i *Iter) NumRows() int {
	if i.iter == nil {
		return 0
	}

	return i.iter.NumRows()
}

// Columns returns metadata about the columns in the result set.
func (i *Iter) Columns() []cql.ColumnInfo {
	if i.iter == nil {
		return nil
	}

	gocqlCols := i.iter.Columns()
	result := make([]cql.ColumnInfo, len(gocqlCols))
	for idx, col := range gocqlCols {
		result[idx] = cql.ColumnInfo{
			Keyspace: col.Keyspace,
			Table:    col.Table,
			Name:     col.Name,
			TypeInfo: col.TypeInfo,
		}
	}

	return result
}

// Scanner returns a database/sql-style scanner for the iterator.
func (i *Iter) Scanner() cql.Scanner {
	if i.iter == nil {
		return &scanner{scanner: nil}
	}

	return &scanner{scanner: i.iter.Scanner()}
}

// Warnings returns any warnings from the server.
func (i *Iter) Warnings() []string {
	if i.iter == nil {
		return nil
	}

	return i.iter.Warnings()
}

// scanner wraps gocql.Scanner to implement cql.Scanner.
type scanner struct {
	scanner gocql.Scanner
}

func (s *scanner) Next() bool {
	if s.scanner == nil {
		return false
	}

	return s.scanner.Next()
}

func (s *scanner) Scan(dest ...any) error {
	if s.scanner == nil {
		return nil
	}

	return s.scanner.Scan(dest...)
}

func (s *scanner) Err() error {
	if s.scanner == nil {
		return nil
	}

	return s.scanner.Err()
}
