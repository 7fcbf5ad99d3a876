package testutil

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocql/gocql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/cassandra"
	"github.com/testcontainers/testcontainers-go/modules/scylladb"

	"github.com/arloliu/scyllacdc/types"
)

// CQLClusterType identifies the database backend.
type CQLClusterType int

const (
	// CQLClusterTypeNone indicates no cluster is running.
	CQLClusterTypeNone CQLClusterType = iota
	// CQLClusterTypeScyllaDB indicates ScyllaDB is being used.
	CQLClusterTypeScyllaDB
	// CQLClusterTypeCassandra indicates Cassandra is being used.
	CQLClusterTypeCassandra
)

// String returns the string representation of the cluster type.
func (t CQLClusterType) String() string {
	switch t {
	case CQLClusterTypeScyllaDB:
		return "ScyllaDB"
	case CQLClusterTypeCassandra:
		return "Cassandra"
	case CQLClusterTypeNone:
		return "None"
	}

	return "Unknown"
}

// CQLCluster is a single-node CQL database running in a container.
//
// Session is an administrative gocql session used to create schema and
// write rows; the code under test opens its own sessions from Host.
type CQLCluster struct {
	Type     CQLClusterType
	Host     string
	Keyspace string
	Session  *gocql.Session

	scyllaContainer    *scylladb.Container
	cassandraContainer *cassandra.CassandraContainer
}

// ContactPoint returns the mapped address of the node.
func (c *CQLCluster) ContactPoint() (types.ContactPoint, error) {
	return types.ParseContactPoint(c.Host)
}

// SupportsCDC reports whether the backend writes a "<table>_scylla_cdc_log" table.
func (c *CQLCluster) SupportsCDC() bool {
	return c.Type == CQLClusterTypeScyllaDB
}

// CreateCDCTable creates a table in the test keyspace with CDC enabled
// and returns the name of its CDC log table.
//
// Parameters:
//   - table: Base table name
//   - columns: Column definitions including the PRIMARY KEY clause
//
// Returns:
//   - string: Fully qualified CDC log table name
//   - error: Error if the table cannot be created
func (c *CQLCluster) CreateCDCTable(table, columns string) (string, error) {
	if !c.SupportsCDC() {
		return "", fmt.Errorf("%s does not support scylla CDC logs", c.Type)
	}

	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.%s (%s) WITH cdc = {'enabled': true}", c.Keyspace, table, columns)
	if err := c.Session.Query(stmt).Exec(); err != nil {
		return "", fmt.Errorf("failed to create table %s: %w", table, err)
	}

	return c.Keyspace + "." + table + "_scylla_cdc_log", nil
}

// Close closes the admin session (does not terminate the container).
func (c *CQLCluster) Close() {
	if c.Session != nil {
		c.Session.Close()
		c.Session = nil
	}
}

// Terminate closes the admin session and terminates the container.
func (c *CQLCluster) Terminate(ctx context.Context) error {
	c.Close()

	switch c.Type {
	case CQLClusterTypeScyllaDB:
		if c.scyllaContainer != nil {
			return c.scyllaContainer.Terminate(ctx)
		}
	case CQLClusterTypeCassandra:
		if c.cassandraContainer != nil {
			return c.cassandraContainer.Terminate(ctx)
		}
	case CQLClusterTypeNone:
	}

	return nil
}

// CQLClusterOptions configures the CQL cluster container.
type CQLClusterOptions struct {
	// Keyspace is the keyspace to create. Required.
	Keyspace string
	// PreferScyllaDB attempts to use ScyllaDB first, falls back to Cassandra.
	PreferScyllaDB bool
	// ScyllaDBImage is the ScyllaDB image. Default: "scylladb/scylla:6.2"
	ScyllaDBImage string
	// CassandraImage is the Cassandra image. Default: "cassandra:4.1"
	CassandraImage string
	// ScyllaDBMemory is the ScyllaDB memory limit. Default: "512M"
	ScyllaDBMemory string
	// ScyllaDBSMP is the number of ScyllaDB shards. Default: 1
	ScyllaDBSMP int
}

// DefaultCQLClusterOptions returns default options.
func DefaultCQLClusterOptions(keyspace string) CQLClusterOptions {
	return CQLClusterOptions{
		Keyspace:       keyspace,
		PreferScyllaDB: true,
		ScyllaDBImage:  "scylladb/scylla:6.2",
		CassandraImage: "cassandra:4.1",
		ScyllaDBMemory: "512M",
		ScyllaDBSMP:    1,
	}
}

// IsAIOAvailable checks if the system has available AIO slots for ScyllaDB.
//
// ScyllaDB needs Linux AIO even with --reactor-backend=epoll. To fix a
// host without free slots: sudo sysctl -w fs.aio-max-nr=1048576
func IsAIOAvailable() bool {
	aioNr, err := readProcInt("/proc/sys/fs/aio-nr")
	if err != nil {
		return false
	}

	aioMaxNr, err := readProcInt("/proc/sys/fs/aio-max-nr")
	if err != nil {
		return false
	}

	return aioNr < aioMaxNr
}

func readProcInt(path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	return strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
}

// StartCQLCluster starts a CQL-compatible database for testing.
// Prefers ScyllaDB, falls back to Cassandra if AIO is unavailable.
//
// This function is designed for use in TestMain where *testing.T is not available.
// Caller is responsible for calling cluster.Terminate(ctx) for cleanup.
//
// Parameters:
//   - ctx: Context for container operations
//   - opts: Configuration options
//
// Returns:
//   - *CQLCluster: Cluster with connection details and admin session
//   - error: Error if the cluster fails to start
func StartCQLCluster(ctx context.Context, opts CQLClusterOptions) (*CQLCluster, error) {
	if opts.PreferScyllaDB && IsAIOAvailable() {
		cluster, err := startScyllaDBCluster(ctx, opts)
		if err == nil {
			return cluster, nil
		}
		fmt.Printf("ScyllaDB failed: %v, falling back to Cassandra...\n", err)
	}

	return startCassandraCluster(ctx, opts)
}

func startScyllaDBCluster(ctx context.Context, opts CQLClusterOptions) (*CQLCluster, error) {
	container, err := scylladb.Run(ctx, opts.ScyllaDBImage,
		scylladb.WithCustomCommands(
			fmt.Sprintf("--memory=%s", opts.ScyllaDBMemory),
			fmt.Sprintf("--smp=%d", opts.ScyllaDBSMP),
			"--developer-mode=1",
			"--overprovisioned=1",
			"--reactor-backend=epoll",
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start ScyllaDB container: %w", err)
	}

	host, err := container.NonShardAwareConnectionHost(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection host: %w", err)
	}

	session, err := createKeyspace(host, opts.Keyspace, 30*time.Second)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &CQLCluster{
		Type:            CQLClusterTypeScyllaDB,
		Host:            host,
		Keyspace:        opts.Keyspace,
		Session:         session,
		scyllaContainer: container,
	}, nil
}

func startCassandraCluster(ctx context.Context, opts CQLClusterOptions) (*CQLCluster, error) {
	container, err := cassandra.Run(ctx, opts.CassandraImage,
		testcontainers.WithEnv(map[string]string{
			"HEAP_NEWSIZE":     "128M",
			"MAX_HEAP_SIZE":    "512M",
			"CASSANDRA_SNITCH": "SimpleSnitch",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start Cassandra container: %w", err)
	}

	host, err := container.ConnectionHost(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection host: %w", err)
	}

	session, err := createKeyspace(host, opts.Keyspace, 60*time.Second)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &CQLCluster{
		Type:               CQLClusterTypeCassandra,
		Host:               host,
		Keyspace:           opts.Keyspace,
		Session:            session,
		cassandraContainer: container,
	}, nil
}

// createKeyspace creates keyspace with replication factor 1 and returns
// an admin session bound to it.
func createKeyspace(host, keyspace string, timeout time.Duration) (*gocql.Session, error) {
	cluster := gocql.NewCluster(host)
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = timeout
	cluster.ConnectTimeout = timeout
	cluster.Keyspace = "system"

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system keyspace: %w", err)
	}

	stmt := fmt.Sprintf(`
		CREATE KEYSPACE IF NOT EXISTS %s
		WITH replication = {'class': 'SimpleStrategy', 'replication_factor': 1}
	`, keyspace)

	err = session.Query(stmt).Exec()
	session.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to create keyspace: %w", err)
	}

	cluster.Keyspace = keyspace
	session, err = cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create session for keyspace %s: %w", keyspace, err)
	}

	return session, nil
}
