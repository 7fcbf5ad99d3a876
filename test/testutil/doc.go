// Package testutil provides test utilities and mock implementations for scyllacdc testing.
//
// # Mock Implementations
//
//   - [MockDriver]: cql.Driver that records ClusterParams and the clusters it builds
//   - [MockCluster]: cql.Cluster counting Connect and Close calls
//   - [MockSession]: cql.Session recording queries and Close calls
//   - [MockQuery]: cql.Query with configurable results
//   - [MockIter]: cql.Iter over canned rows
//   - [TestMetricsCollector]: types.MetricsCollector recording every call
//
// # Usage
//
//	driver := testutil.NewMockDriver()
//	session, err := scyllacdc.Bootstrap(cfg, scyllacdc.WithDriver(driver))
//	require.NoError(t, err)
//
//	params := driver.LastParams()
//	require.Equal(t, 9042, params.Port)
//
// # TLS Material
//
// [NewPKI] generates a throwaway CA with server and client certificates and
// writes them as JKS, PKCS#12 or PEM trust and key stores.
//
// # Integration Test Helpers
//
// [StartCQLCluster] starts a ScyllaDB container, or Cassandra when the host
// has no free AIO slots (requires Docker).
package testutil
