package integration_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/scyllacdc"
	"github.com/arloliu/scyllacdc/adapter/cql"
	v2 "github.com/arloliu/scyllacdc/adapter/cql/v2"
	"github.com/arloliu/scyllacdc/test/testutil"
	"github.com/arloliu/scyllacdc/types"
)

func TestBootstrapSystemQuery(t *testing.T) {
	b := newBuilder(t)
	require.NoError(t, b.WithConsistencyLevel(types.One))

	cfg, err := b.Build()
	require.NoError(t, err)

	session, err := scyllacdc.Bootstrap(cfg)
	require.NoError(t, err)
	defer session.Close()

	var version string
	require.NoError(t, session.SystemQuery("SELECT release_version FROM system.local").Scan(&version))
	assert.NotEmpty(t, version)
}

func TestBootstrapV2Driver(t *testing.T) {
	cfg, err := newBuilder(t).Build()
	require.NoError(t, err)

	session, err := scyllacdc.Bootstrap(cfg, scyllacdc.WithDriver(v2.NewDriver()))
	require.NoError(t, err)
	defer session.Close()

	var clusterName string
	require.NoError(t, session.SystemQuery("SELECT cluster_name FROM system.local").Scan(&clusterName))
	assert.NotEmpty(t, clusterName)
}

func TestBootstrapLocalDC(t *testing.T) {
	cluster := getSharedCluster(t)

	var dc string
	require.NoError(t, cluster.Session.Query("SELECT data_center FROM system.local").Scan(&dc))

	b := newBuilder(t)
	require.NoError(t, b.WithLocalDCName(dc))

	cfg, err := b.Build()
	require.NoError(t, err)

	session, err := scyllacdc.Bootstrap(cfg)
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.SystemQuery("SELECT now() FROM system.local").Exec())
}

func TestReadCDCLog(t *testing.T) {
	cluster := getSharedCluster(t)
	if !cluster.SupportsCDC() {
		t.Skipf("%s has no scylla CDC log", cluster.Type)
	}

	table := fmt.Sprintf("orders_%d", time.Now().UnixNano())
	logTable, err := cluster.CreateCDCTable(table, "id uuid PRIMARY KEY, amount int")
	require.NoError(t, err)

	id := gocql.TimeUUID()
	insert := fmt.Sprintf("INSERT INTO %s.%s (id, amount) VALUES (?, ?)", cluster.Keyspace, table)
	require.NoError(t, cluster.Session.Query(insert, id, 42).Exec())

	b := newBuilder(t)
	require.NoError(t, b.WithConsistencyLevel(types.LocalOne))
	cfg, err := b.Build()
	require.NoError(t, err)

	session, err := scyllacdc.Bootstrap(cfg)
	require.NoError(t, err)
	defer session.Close()
	assert.Equal(t, cql.LocalOne, session.Consistency())

	iter := session.Query(fmt.Sprintf(`SELECT id, amount FROM %s`, logTable)).Iter()
	var (
		rowID  gocql.UUID
		amount int
		rows   int
	)
	for iter.Scan(&rowID, &amount) {
		rows++
		assert.Equal(t, id, rowID)
		assert.Equal(t, 42, amount)
	}
	require.NoError(t, iter.Close())
	assert.Equal(t, 1, rows)
}

func TestBootstrapUnreachable(t *testing.T) {
	getSharedCluster(t)

	b := scyllacdc.NewBuilder()
	require.NoError(t, b.AddContactPoint("127.0.0.1", 1))
	cfg, err := b.Build()
	require.NoError(t, err)

	collector := testutil.NewTestMetricsCollector()
	session, err := scyllacdc.Bootstrap(cfg, scyllacdc.WithMetrics(collector))
	require.Nil(t, session)
	require.ErrorIs(t, err, types.ErrConnection)
	assert.Equal(t, int64(1), collector.GetBootstrapErrors(types.ErrorKindConnection))
}

func TestCloseTwice(t *testing.T) {
	cfg, err := newBuilder(t).Build()
	require.NoError(t, err)

	session, err := scyllacdc.Bootstrap(cfg)
	require.NoError(t, err)

	session.Close()
	session.Close()

	require.ErrorIs(t, session.Query("SELECT now() FROM system.local").Exec(), types.ErrSessionClosed)
}
