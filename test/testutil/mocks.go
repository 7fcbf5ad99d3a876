package testutil

import (
	"context"
	"sync"

	"github.com/arloliu/scyllacdc/adapter/cql"
)

// MockDriver is a mock implementation of cql.Driver for testing.
//
// It records every ClusterParams it receives and every cluster and session
// it builds, so tests can assert on resource lifecycles without a server.
type MockDriver struct {
	mu       sync.Mutex
	params   []cql.ClusterParams
	clusters []*MockCluster

	// NewClusterErr is returned by NewCluster when set.
	NewClusterErr error

	// ConnectErr is returned by Connect on every cluster built after it is set.
	ConnectErr error

	// OnQuery, when set, is installed on every session this driver opens.
	OnQuery func(stmt string, values ...any) *MockQuery
}

// Compile-time assertion that MockDriver implements cql.Driver.
var _ cql.Driver = (*MockDriver)(nil)

// NewMockDriver creates a new mock driver.
func NewMockDriver() *MockDriver {
	return &MockDriver{}
}

// NewCluster records params and builds a mock cluster.
func (d *MockDriver) NewCluster(params cql.ClusterParams) (cql.Cluster, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.params = append(d.params, params)
	if d.NewClusterErr != nil {
		return nil, d.NewClusterErr
	}

	c := &MockCluster{
		connectErr: d.ConnectErr,
		onQuery:    d.OnQuery,
	}
	d.clusters = append(d.clusters, c)

	return c, nil
}

// Params returns a copy of every ClusterParams passed to NewCluster.
func (d *MockDriver) Params() []cql.ClusterParams {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]cql.ClusterParams(nil), d.params...)
}

// LastParams returns the most recent ClusterParams, or the zero value.
func (d *MockDriver) LastParams() cql.ClusterParams {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.params) == 0 {
		return cql.ClusterParams{}
	}

	return d.params[len(d.params)-1]
}

// NewClusterCalls returns how many times NewCluster was called.
func (d *MockDriver) NewClusterCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.params)
}

// Clusters returns the clusters built so far.
func (d *MockDriver) Clusters() []*MockCluster {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]*MockCluster(nil), d.clusters...)
}

// ClustersBuilt returns the number of clusters built.
func (d *MockDriver) ClustersBuilt() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.clusters)
}

// SessionsBuilt returns the number of sessions opened across all clusters.
func (d *MockDriver) SessionsBuilt() int {
	n := 0
	for _, c := range d.Clusters() {
		n += len(c.Sessions())
	}

	return n
}

// MockCluster is a mock implementation of cql.Cluster for testing.
type MockCluster struct {
	mu         sync.Mutex
	connectErr error
	onQuery    func(stmt string, values ...any) *MockQuery
	connects   int
	closeCount int
	sessions   []*MockSession
}

// Compile-time assertion that MockCluster implements cql.Cluster.
var _ cql.Cluster = (*MockCluster)(nil)

// Connect opens a mock session, or returns the configured error.
func (c *MockCluster) Connect() (cql.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.connects++
	if c.connectErr != nil {
		return nil, c.connectErr
	}

	s := NewMockSession()
	s.OnQuery = c.onQuery
	c.sessions = append(c.sessions, s)

	return s, nil
}

// Close records the close.
func (c *MockCluster) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeCount++
}

// ConnectCalls returns how many times Connect was called.
func (c *MockCluster) ConnectCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.connects
}

// CloseCount returns how many times Close was called.
func (c *MockCluster) CloseCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closeCount
}

// Sessions returns the sessions opened by this cluster.
func (c *MockCluster) Sessions() []*MockSession {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]*MockSession(nil), c.sessions...)
}

// MockSession is a mock implementation of cql.Session for testing.
type MockSession struct {
	mu         sync.RWMutex
	closeCount int
	queries    []*MockQuery

	// OnQuery overrides query creation when set.
	OnQuery func(stmt string, values ...any) *MockQuery

	// OnClose is called on every Close.
	OnClose func()
}

// Compile-time assertion that MockSession implements cql.Session.
var _ cql.Session = (*MockSession)(nil)

// NewMockSession creates a new mock session.
func NewMockSession() *MockSession {
	return &MockSession{}
}

// Query returns a mock query for the given statement and records it.
func (m *MockSession) Query(stmt string, values ...any) cql.Query {
	m.mu.Lock()
	defer m.mu.Unlock()

	var q *MockQuery
	if m.OnQuery != nil {
		q = m.OnQuery(stmt, values...)
	}
	if q == nil {
		q = NewMockQuery(stmt, values...)
	}
	m.queries = append(m.queries, q)

	return q
}

// Close records the close.
func (m *MockSession) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeCount++

	if m.OnClose != nil {
		m.OnClose()
	}
}

// CloseCount returns how many times Close was called.
func (m *MockSession) CloseCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.closeCount
}

// Queries returns the queries created on this session.
func (m *MockSession) Queries() []*MockQuery {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]*MockQuery(nil), m.queries...)
}

// MockQuery is a mock implementation of cql.Query for testing.
type MockQuery struct {
	mu     sync.RWMutex
	stmt   string
	values []any

	// Configuration
	consistency    cql.Consistency
	consistencySet bool
	pageSize       int
	pageState      []byte
	released       bool

	// Return values
	execErr  error
	scanErr  error
	scanData []any
	iter     *MockIter
	mapData  map[string]any
}

// Compile-time assertion that MockQuery implements cql.Query.
var _ cql.Query = (*MockQuery)(nil)

// NewMockQuery creates a new mock query.
func NewMockQuery(stmt string, values ...any) *MockQuery {
	return &MockQuery{
		stmt:   stmt,
		values: values,
	}
}

// Statement returns the query statement.
func (m *MockQuery) Statement() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.stmt
}

// Values returns the query values.
func (m *MockQuery) Values() []any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.values
}

// Consistency sets the consistency level.
func (m *MockQuery) Consistency(c cql.Consistency) cql.Query {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.consistency = c
	m.consistencySet = true

	return m
}

// GetConsistency returns the consistency level set on the query and
// whether one was set at all.
func (m *MockQuery) GetConsistency() (cql.Consistency, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.consistency, m.consistencySet
}

// PageSize sets the page size.
func (m *MockQuery) PageSize(n int) cql.Query {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pageSize = n

	return m
}

// PageState sets the page state.
func (m *MockQuery) PageState(state []byte) cql.Query {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pageState = state

	return m
}

// Exec executes the query.
func (m *MockQuery) Exec() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.execErr
}

// ExecContext executes the query with context.
func (m *MockQuery) ExecContext(_ context.Context) error {
	return m.Exec()
}

// Scan scans a single row.
func (m *MockQuery) Scan(dest ...any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.scanErr != nil {
		return m.scanErr
	}

	for i := 0; i < len(dest) && i < len(m.scanData); i++ {
		copyValue(dest[i], m.scanData[i])
	}

	return nil
}

// ScanContext scans with context.
func (m *MockQuery) ScanContext(_ context.Context, dest ...any) error {
	return m.Scan(dest...)
}

// Iter returns an iterator.
func (m *MockQuery) Iter() cql.Iter {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.iter != nil {
		return m.iter
	}

	return NewMockIter()
}

// IterContext returns an iterator with context.
func (m *MockQuery) IterContext(_ context.Context) cql.Iter {
	return m.Iter()
}

// MapScan scans into a map.
func (m *MockQuery) MapScan(dest map[string]any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.scanErr != nil {
		return m.scanErr
	}

	for k, v := range m.mapData {
		dest[k] = v
	}

	return nil
}

// MapScanContext scans into a map with context.
func (m *MockQuery) MapScanContext(_ context.Context, dest map[string]any) error {
	return m.MapScan(dest)
}

// Release marks the query released.
func (m *MockQuery) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.released = true
}

// SetExecError configures the exec error.
func (m *MockQuery) SetExecError(err error) *MockQuery {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.execErr = err

	return m
}

// SetScanData configures the scan data.
func (m *MockQuery) SetScanData(data ...any) *MockQuery {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scanData = data

	return m
}

// SetScanError configures the scan error.
func (m *MockQuery) SetScanError(err error) *MockQuery {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scanErr = err

	return m
}

// SetIter configures the iterator.
func (m *MockQuery) SetIter(iter *MockIter) *MockQuery {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.iter = iter

	return m
}

// SetMapData configures the map scan data.
func (m *MockQuery) SetMapData(data map[string]any) *MockQuery {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mapData = data

	return m
}

// MockIter is a mock implementation of cql.Iter for testing.
type MockIter struct {
	mu        sync.RWMutex
	rows      [][]any
	mapRows   []map[string]any
	index     int
	closeErr  error
	pageState []byte
}

// Compile-time assertion that MockIter implements cql.Iter.
var _ cql.Iter = (*MockIter)(nil)

// NewMockIter creates a new mock iterator.
func NewMockIter() *MockIter {
	return &MockIter{}
}

// Scan reads the next row.
func (m *MockIter) Scan(dest ...any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index >= len(m.rows) {
		return false
	}

	row := m.rows[m.index]
	for i := 0; i < len(dest) && i < len(row); i++ {
		copyValue(dest[i], row[i])
	}
	m.index++

	return true
}

// Close closes the iterator.
func (m *MockIter) Close() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.closeErr
}

// MapScan reads the next row into a map.
func (m *MockIter) MapScan(dest map[string]any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index >= len(m.mapRows) {
		return false
	}

	for k, v := range m.mapRows[m.index] {
		dest[k] = v
	}
	m.index++

	return true
}

// SliceMap returns all remaining rows.
func (m *MockIter) SliceMap() ([]map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closeErr != nil {
		return nil, m.closeErr
	}

	remaining := m.mapRows[m.index:]
	m.index = len(m.mapRows)

	return remaining, nil
}

// PageState returns the pagination state.
func (m *MockIter) PageState() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.pageState
}

// NumRows returns the number of rows in the current page.
func (m *MockIter) NumRows() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.rows)
}

// Columns returns metadata about the columns in the result set.
func (m *MockIter) Columns() []cql.ColumnInfo {
	return nil
}

// Scanner returns a database/sql-style scanner for the iterator.
func (m *MockIter) Scanner() cql.Scanner {
	return &mockScanner{iter: m}
}

// Warnings returns any warnings from the server.
func (m *MockIter) Warnings() []string {
	return nil
}

// AddRow adds a row to the iterator.
func (m *MockIter) AddRow(values ...any) *MockIter {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows = append(m.rows, values)

	return m
}

// AddMapRow adds a map row to the iterator.
func (m *MockIter) AddMapRow(row map[string]any) *MockIter {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mapRows = append(m.mapRows, row)

	return m
}

// SetCloseError configures the close error.
func (m *MockIter) SetCloseError(err error) *MockIter {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeErr = err

	return m
}

// copyValue copies a value to a destination pointer.
func copyValue(dest, src any) {
	switch d := dest.(type) {
	case *string:
		if s, ok := src.(string); ok {
			*d = s
		}
	case *int:
		if s, ok := src.(int); ok {
			*d = s
		}
	case *int64:
		if s, ok := src.(int64); ok {
			*d = s
		}
	case *bool:
		if s, ok := src.(bool); ok {
			*d = s
		}
	case *[]byte:
		if s, ok := src.([]byte); ok {
			*d = s
		}
	}
}

// mockScanner implements cql.Scanner for testing.
type mockScanner struct {
	iter    *MockIter
	current []any
}

func (s *mockScanner) Next() bool {
	s.iter.mu.Lock()
	defer s.iter.mu.Unlock()

	if s.iter.index >= len(s.iter.rows) {
		return false
	}

	s.current = s.iter.rows[s.iter.index]
	s.iter.index++

	return true
}

func (s *mockScanner) Scan(dest ...any) error {
	for i := 0; i < len(dest) && i < len(s.current); i++ {
		copyValue(dest[i], s.current[i])
	}

	return nil
}

func (s *mockScanner) Err() error {
	return nil
}
