// Package cql defines the driver contract used by scyllacdc session bootstrap.
//
// scyllacdc does not speak the CQL wire protocol itself. It assembles
// validated ClusterParams and hands them to a Driver, which builds a Cluster
// and opens a Session.
//
// # Interfaces
//
//   - Driver: Builds a Cluster from ClusterParams
//   - Cluster: Opens sessions and owns cluster-wide resources
//   - Session: Creates queries
//   - Query: A CQL statement with bind parameters
//   - Iter: Iterates over query results
//
// # Adapters
//
// Driver-specific adapters are provided in subpackages:
//
//   - [github.com/arloliu/scyllacdc/adapter/cql/v1]: Adapter for gocql v1.x
//   - [github.com/arloliu/scyllacdc/adapter/cql/v2]: Adapter for apache/cassandra-gocql-driver v2.x
//
// # Usage
//
//	session, err := scyllacdc.Bootstrap(cfg, scyllacdc.WithDriver(v2.NewDriver()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
package cql
