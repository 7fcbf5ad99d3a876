// Package v2 provides an adapter for gocql v2 (github.com/apache/cassandra-gocql-driver).
package v2

import (
	"context"
	"errors"
	"sync/atomic"

	gocql "github.com/apache/cassandra-gocql-driver/v2"

	"github.com/arloliu/scyllacdc/adapter/cql"
)

// errClusterClosed is returned when Connect is called on a closed cluster.
var errClusterClosed = errors.New("v2: cluster is closed")

// Option configures a Driver.
type Option func(*Driver)

// WithClusterConfig registers a hook that runs on every gocql.ClusterConfig
// after scyllacdc has applied its parameters.
//
// Parameters:
//   - fn: Function that adjusts the cluster config
//
// Returns:
//   - Option: Configuration option
func WithClusterConfig(fn func(*gocql.ClusterConfig)) Option {
	return func(d *Driver) {
		d.configurers = append(d.configurers, fn)
	}
}

// Driver builds gocql v2 clusters.
type Driver struct {
	configurers []func(*gocql.ClusterConfig)
}

// Compile-time assertion that Driver implements cql.Driver.
var _ cql.Driver = (*Driver)(nil)

// NewDriver creates a gocql v2 driver.
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

// Cluster wraps a gocql v2 cluster config.
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

// Close marks the cluster closed. Pooled connections belong to the session.
func (c *Cluster) Close() {
	c.closed.Store(true)
}

// Session wraps a gocql v2 session.
type Session struct {
	session *gocql.Session
}

// NewSession creates a new v2 adapter from a gocql session.
//
// Parameters:
//   - session: A gocql.Session instance from the Apache driver
//
// Returns:
//   - *Session: An adapter implementing cql.Session
func NewSession(session *gocql.Session) *Session {
	return &Session{session: session}
}

// Query creates a new query for the given statement.
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

// Query wraps a gocql v2 query.
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

// Release is a no-op for v2 as it doesn't have query pooling.
func (q *Query) Release() {}

// ExecContext executes the query with context.
func (q *Query) ExecContext(ctx context.Context) error {
	return q.query.ExecContext(ctx)
}

// ScanContext executes and scans a single row with context.
func (q *Query) ScanContext(ctx context.Context, dest ...any) error {
	return q.query.ScanContext(ctx, dest...)
}

// IterContext returns an iterator for results with context.
func (q *Query) IterContext(ctx context.Context) cql.Iter {
	return &Iter{iter: q.query.IterContext(ctx)}
}

// MapScanContext executes and scans into a map with context.
func (q *Query) MapScanContext(ctx context.Context, m map[string]any) error {
	return q.query.MapScanContext(ctx, m)
}

// Iter wraps a gocql v2 iterator.
type Iter struct {
	iter *gocql.Iter
}

// Scan reads the next row.
func (i *Iter) Scan(dest ...any) bool {
	return i.iter.Scan(dest...)
}

// Close closes the iterator.
func (i *Iter) Close() error {
	return i.iter.Close()
}

// MapScan reads the next row into a map.
func (i *Iter) MapScan(m map[string]any) bool {
	return i.iter.MapScan(m)
}

// SliceMap reads all rows into a slice of maps.
func (i *Iter) SliceMap() ([]map[string]any, error) {
	return i.iter.SliceMap()
}

// PageState returns the pagination token.
func (i *Iter) PageState() []byte {
	return i.iter.PageState()
}

// NumRows returns the number of rows in the current page.
func (i *Iter) NumRows() int {
	return i.iter.NumRows()
}

// Columns returns metadata about the columns in the result set.
func (i *Iter) Columns() []cql.ColumnInfo {
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
	return &scanner{scanner: i.iter.Scanner()}
}

// Warnings returns any warnings from the server.
func (i *Iter) Warnings() []string {
	return i.iter.Warnings()
}

// scanner wraps gocql.Scanner to implement cql.Scanner.
type scanner struct {
	scanner gocql.Scanner
}

func (s *scanner) Next() bool {
	return s.scanner.Next()
}

func (s *scanner) Scan(dest ...any) error {
	return s.scanner.Scan(dest...)
}

func (s *scanner) Err() error {
	return s.scanner.Err()
}
