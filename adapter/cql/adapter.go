// Package cql provides the driver contract that scyllacdc configures.
package cql

import (
	"context"
	"crypto/tls"

	"github.com/arloliu/scyllacdc/types"
)

// Consistency is the driver's native consistency level.
//
// Values are the CQL native protocol codes, matching gocql.Consistency.
type Consistency uint16

// Native consistency levels matching gocql.
const (
	Any         Consistency = 0x00
	One         Consistency = 0x01
	Two         Consistency = 0x02
	Three       Consistency = 0x03
	Quorum      Consistency = 0x04
	All         Consistency = 0x05
	LocalQuorum Consistency = 0x06
	EachQuorum  Consistency = 0x07
	Serial      Consistency = 0x08
	LocalSerial Consistency = 0x09
	LocalOne    Consistency = 0x0A
)

var nativeNames = map[Consistency]string{
	Any:         "ANY",
	One:         "ONE",
	Two:         "TWO",
	Three:       "THREE",
	Quorum:      "QUORUM",
	All:         "ALL",
	LocalQuorum: "LOCAL_QUORUM",
	EachQuorum:  "EACH_QUORUM",
	Serial:      "SERIAL",
	LocalSerial: "LOCAL_SERIAL",
	LocalOne:    "LOCAL_ONE",
}

// String returns the protocol name of the consistency level.
func (c Consistency) String() string {
	if name, ok := nativeNames[c]; ok {
		return name
	}

	return "UNKNOWN"
}

// ProtocolVersion is the CQL native protocol version requested from the driver.
type ProtocolVersion int

// NewestSupported asks the driver to negotiate the newest protocol version
// both it and the server support.
const NewestSupported ProtocolVersion = 0

// LoadBalancingPolicy selects coordinators for requests.
//
// A nil policy leaves the driver's default in place.
type LoadBalancingPolicy interface {
	// Name returns a short description used in logs.
	Name() string
}

// DCAwareRoundRobinPolicy prefers hosts in LocalDC and round-robins among them.
type DCAwareRoundRobinPolicy struct {
	LocalDC string
}

// Name returns the policy description.
func (p DCAwareRoundRobinPolicy) Name() string {
	return "dc-aware-round-robin(" + p.LocalDC + ")"
}

// PasswordAuth carries username/password credentials for the driver.
type PasswordAuth struct {
	Username string
	Password string
}

// ClusterParams holds everything the driver needs to build a cluster.
type ClusterParams struct {
	// ContactPoints are the initial hosts to connect to.
	ContactPoints []types.ContactPoint

	// Port is the session port. Contact points declaring types.DefaultPort
	// are dialed on this port instead.
	Port int

	// ProtocolVersion is the native protocol version to request.
	ProtocolVersion ProtocolVersion

	// Auth is set for credential authentication.
	Auth *PasswordAuth

	// TLSConfig is set for client certificate authentication.
	TLSConfig *tls.Config

	// LoadBalancing overrides the driver's default host selection when set.
	LoadBalancing LoadBalancingPolicy
}

// Driver builds clusters from assembled parameters.
//
// This interface is implemented by adapters for gocql v1 and v2.
type Driver interface {
	// NewCluster builds a cluster object. No network I/O is required.
	//
	// Parameters:
	//   - params: Connection parameters
	//
	// Returns:
	//   - Cluster: The cluster object
	//   - error: Error if the parameters cannot be applied
	NewCluster(params ClusterParams) (Cluster, error)
}

// Cluster is a configured, not yet connected, driver cluster.
type Cluster interface {
	// Connect opens a session. Network I/O and the authentication
	// handshake happen here.
	//
	// Returns:
	//   - Session: The open session
	//   - error: Error if the cluster is unreachable or rejects the client
	Connect() (Session, error)

	// Close releases the cluster's resources.
	Close()
}

// Session represents a raw CQL session from the underlying driver.
type Session interface {
	// Query creates a new query for the given statement.
	//
	// Parameters:
	//   - stmt: CQL statement with ? placeholders
	//   - values: Values to bind to placeholders
	//
	// Returns:
	//   - Query: A query builder
	Query(stmt string, values ...any) Query

	// Close terminates the session.
	Close()
}

// Query represents a raw CQL query from the underlying driver.
type Query interface {
	// Consistency sets the consistency level.
	Consistency(c Consistency) Query

	// PageSize sets the page size.
	PageSize(n int) Query

	// PageState sets the pagination state.
	PageState(state []byte) Query

	// Exec executes the query.
	Exec() error

	// ExecContext executes the query with context.
	ExecContext(ctx context.Context) error

	// Scan executes and scans a single row.
	Scan(dest ...any) error

	// ScanContext executes and scans a single row with context.
	ScanContext(ctx context.Context, dest ...any) error

	// Iter returns an iterator for results.
	Iter() Iter

	// IterContext returns an iterator for results with context.
	IterContext(ctx context.Context) Iter

	// MapScan executes and scans into a map.
	MapScan(m map[string]any) error

	// MapScanContext executes and scans into a map with context.
	MapScanContext(ctx context.Context, m map[string]any) error

	// Statement returns the CQL statement.
	Statement() string

	// Values returns the bound values.
	Values() []any

	// Release returns the query to a pool (if applicable).
	Release()
}

// Iter represents a raw CQL iterator from the underlying driver.
type Iter interface {
	// Scan reads the next row.
	Scan(dest ...any) bool

	// Close closes the iterator.
	Close() error

	// MapScan reads the next row into a map.
	MapScan(m map[string]any) bool

	// SliceMap reads all rows into a slice of maps.
	SliceMap() ([]map[string]any, error)

	// PageState returns the pagination token.
	PageState() []byte

	// NumRows returns the number of rows in the current page.
	NumRows() int

	// Columns returns metadata about the columns in the result set.
	Columns() []ColumnInfo

	// Scanner returns a database/sql-style scanner for the iterator.
	Scanner() Scanner

	// Warnings returns any warnings from the server.
	Warnings() []string
}

// ColumnInfo holds metadata about a column in query results.
type ColumnInfo struct {
	Keyspace string
	Table    string
	Name     string
	TypeInfo any
}

// Scanner provides database/sql-style row scanning.
type Scanner interface {
	// Next advances to the next row, returning true if a row is available.
	Next() bool

	// Scan reads the current row into dest.
	Scan(dest ...any) error

	// Err returns any error from iteration and releases resources.
	Err() error
}

// HostAddress returns the address a driver should dial for cp.
//
// Contact points on types.DefaultPort follow the session port, so a
// TLS session reaches the encrypted listener; any other explicit port is
// kept.
//
// Parameters:
//   - cp: The configured contact point
//   - port: The session port
//
// Returns:
//   - string: "host:port" to dial
func HostAddress(cp types.ContactPoint, port int) string {
	if cp.Port == types.DefaultPort && port > 0 {
		return types.ContactPoint{Host: cp.Host, Port: port}.String()
	}

	return cp.String()
}
