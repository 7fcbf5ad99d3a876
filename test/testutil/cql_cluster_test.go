package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCQLClusterTypeString(t *testing.T) {
	assert.Equal(t, "ScyllaDB", CQLClusterTypeScyllaDB.String())
	assert.Equal(t, "Cassandra", CQLClusterTypeCassandra.String())
	assert.Equal(t, "None", CQLClusterTypeNone.String())
	assert.Equal(t, "Unknown", CQLClusterType(42).String())
}

func TestCQLClusterContactPoint(t *testing.T) {
	c := &CQLCluster{Type: CQLClusterTypeScyllaDB, Host: "127.0.0.1:32768"}

	cp, err := c.ContactPoint()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cp.Host)
	assert.Equal(t, 32768, cp.Port)
	assert.True(t, c.SupportsCDC())
}

func TestCreateCDCTableRequiresScylla(t *testing.T) {
	c := &CQLCluster{Type: CQLClusterTypeCassandra, Keyspace: "ks"}
	assert.False(t, c.SupportsCDC())

	_, err := c.CreateCDCTable("orders", "id int PRIMARY KEY")
	require.Error(t, err)
}

func TestDefaultCQLClusterOptions(t *testing.T) {
	opts := DefaultCQLClusterOptions("cdc_test")

	assert.Equal(t, "cdc_test", opts.Keyspace)
	assert.True(t, opts.PreferScyllaDB)
	assert.Equal(t, 1, opts.ScyllaDBSMP)
}
