package v1_test

import (
	"crypto/tls"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/scyllacdc/adapter/cql"
	v1 "github.com/arloliu/scyllacdc/adapter/cql/v1" //nolint:revive // required for v1_test package
	"github.com/arloliu/scyllacdc/types"
)

// TestDriverImplementsInterface verifies that v1.Driver implements cql.Driver.
func TestDriverImplementsInterface(t *testing.T) {
	var _ cql.Driver = (*v1.Driver)(nil)
	var _ cql.Cluster = (*v1.Cluster)(nil)
	var _ cql.Session = (*v1.Session)(nil)
	var _ cql.Query = (*v1.Query)(nil)
	var _ cql.Iter = (*v1.Iter)(nil)
}

func newCluster(t *testing.T, params cql.ClusterParams, opts ...v1.Option) *gocql.ClusterConfig {
	t.Helper()

	cluster, err := v1.NewDriver(opts...).NewCluster(params)
	require.NoError(t, err)

	c, ok := cluster.(*v1.Cluster)
	require.True(t, ok)

	return c.Config()
}

func TestNewClusterPlaintext(t *testing.T) {
	config := newCluster(t, cql.ClusterParams{
		ContactPoints: []types.ContactPoint{
			{Host: "10.0.0.1", Port: 9042},
			{Host: "10.0.0.2", Port: 19042},
		},
		Port:            types.DefaultPort,
		ProtocolVersion: cql.NewestSupported,
	})

	assert.Equal(t, []string{"10.0.0.1:9042", "10.0.0.2:19042"}, config.Hosts)
	assert.Equal(t, 9042, config.Port)
	assert.Equal(t, 0, config.ProtoVersion)
	assert.Nil(t, config.Authenticator)
	assert.Nil(t, config.SslOpts)
}

func TestNewClusterCredentials(t *testing.T) {
	config := newCluster(t, cql.ClusterParams{
		ContactPoints: []types.ContactPoint{{Host: "db", Port: 9042}},
		Port:          types.DefaultPort,
		Auth:          &cql.PasswordAuth{Username: "cdc", Password: "secret"},
	})

	auth, ok := config.Authenticator.(gocql.PasswordAuthenticator)
	require.True(t, ok)
	assert.Equal(t, "cdc", auth.Username)
	assert.Equal(t, "secret", auth.Password)
}

func TestNewClusterTLS(t *testing.T) {
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12, InsecureSkipVerify: true} //nolint:gosec // chain verified by VerifyConnection
	config := newCluster(t, cql.ClusterParams{
		ContactPoints: []types.ContactPoint{{Host: "db", Port: 9042}, {Host: "db2", Port: 29142}},
		Port:          types.DefaultTLSPort,
		TLSConfig:     tlsConfig,
	})

	require.NotNil(t, config.SslOpts)
	assert.Same(t, tlsConfig, config.SslOpts.Config)
	assert.False(t, config.SslOpts.EnableHostVerification)
	assert.Equal(t, 9142, config.Port)
	assert.Equal(t, []string{"db:9142", "db2:29142"}, config.Hosts)
}

func TestNewClusterLocalDC(t *testing.T) {
	withDC := newCluster(t, cql.ClusterParams{
		ContactPoints: []types.ContactPoint{{Host: "db", Port: 9042}},
		LoadBalancing: cql.DCAwareRoundRobinPolicy{LocalDC: "dc-east"},
	})
	require.NotNil(t, withDC.PoolConfig.HostSelectionPolicy)

	withoutDC := newCluster(t, cql.ClusterParams{
		ContactPoints: []types.ContactPoint{{Host: "db", Port: 9042}},
	})
	assert.Nil(t, withoutDC.PoolConfig.HostSelectionPolicy)
}

func TestWithClusterConfigRunsLast(t *testing.T) {
	config := newCluster(t, cql.ClusterParams{
		ContactPoints: []types.ContactPoint{{Host: "db", Port: 9042}},
		Port:          types.DefaultPort,
	}, v1.WithClusterConfig(func(c *gocql.ClusterConfig) {
		c.Timeout = 7 * time.Second
		c.Keyspace = "cdc_test"
	}))

	assert.Equal(t, 7*time.Second, config.Timeout)
	assert.Equal(t, "cdc_test", config.Keyspace)
}

func TestConnectAfterClose(t *testing.T) {
	cluster, err := v1.NewDriver().NewCluster(cql.ClusterParams{
		ContactPoints: []types.ContactPoint{{Host: "db", Port: 9042}},
	})
	require.NoError(t, err)

	cluster.Close()
	session, err := cluster.Connect()
	require.Error(t, err)
	assert.Nil(t, session)
}

// TestConsistencyConstants verifies native consistency constants match gocql.
func TestConsistencyConstants(t *testing.T) {
	require.Equal(t, cql.Consistency(gocql.Any), cql.Any)
	require.Equal(t, cql.Consistency(gocql.One), cql.One)
	require.Equal(t, cql.Consistency(gocql.Two), cql.Two)
	require.Equal(t, cql.Consistency(gocql.Three), cql.Three)
	require.Equal(t, cql.Consistency(gocql.Quorum), cql.Quorum)
	require.Equal(t, cql.Consistency(gocql.All), cql.All)
	require.Equal(t, cql.Consistency(gocql.LocalQuorum), cql.LocalQuorum)
	require.Equal(t, cql.Consistency(gocql.EachQuorum), cql.EachQuorum)
	require.Equal(t, cql.Consistency(gocql.LocalOne), cql.LocalOne)
	require.Equal(t, gocql.LocalQuorum, v1.ToGocqlConsistency(cql.LocalQuorum))
	require.Equal(t, cql.All, v1.FromGocqlConsistency(gocql.All))
}

// TestNewSessionNil tests that NewSession handles nil gracefully.
func TestNewSessionNil(t *testing.T) {
	session := v1.NewSession(nil)
	require.NotNil(t, session)
}

// TestNilIter verifies the iterator wrapper tolerates a nil gocql iterator.
func TestNilIter(t *testing.T) {
	iter := &v1.Iter{}
	assert.False(t, iter.Scan())
	assert.NoError(t, iter.Close())
	assert.Nil(t, iter.PageState())
	assert.Equal(t, 0, iter.NumRows())
	assert.False(t, iter.Scanner().Next())
}
