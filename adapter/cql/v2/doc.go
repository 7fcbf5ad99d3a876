// Package v2 provides an adapter for gocql v2 (github.com/apache/cassandra-gocql-driver).
//
// The adapter translates scyllacdc cluster parameters into a gocql.ClusterConfig
// from the Apache Cassandra gocql driver v2 and wraps the resulting session.
//
// # Installation
//
// Import this package along with the Apache gocql driver:
//
//	import (
//	    gocql "github.com/apache/cassandra-gocql-driver/v2"
//	    v2 "github.com/arloliu/scyllacdc/adapter/cql/v2"
//	)
//
// # Usage
//
//	driver := v2.NewDriver(v2.WithClusterConfig(func(c *gocql.ClusterConfig) {
//	    c.Keyspace = "my_keyspace"
//	}))
//
//	session, err := scyllacdc.Bootstrap(cfg, scyllacdc.WithDriver(driver))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
// # Thread Safety
//
// All adapter types are safe for concurrent use, matching gocql's thread safety guarantees.
package v2
