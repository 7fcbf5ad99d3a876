// Package v1 provides an adapter for gocql v1.x to work with the scyllacdc library.
//
// This is the default driver used by scyllacdc.Bootstrap. It translates the
// bootstrap parameters into a gocql.ClusterConfig:
//
//   - contact points become ClusterConfig.Hosts
//   - credentials become a gocql.PasswordAuthenticator
//   - the client TLS config becomes ClusterConfig.SslOpts
//   - a local datacenter becomes gocql.DCAwareRoundRobinPolicy
//
// # Usage
//
//	driver := v1.NewDriver(v1.WithClusterConfig(func(c *gocql.ClusterConfig) {
//	    c.Timeout = 10 * time.Second
//	}))
//
//	session, err := scyllacdc.Bootstrap(cfg, scyllacdc.WithDriver(driver))
//
// # Type Conversions
//
//   - [ToGocqlConsistency]: Converts native cql.Consistency to gocql.Consistency
//   - [FromGocqlConsistency]: Converts gocql.Consistency to native cql.Consistency
//   - [UnwrapSession]: Returns the underlying gocql.Session
//
// # Thread Safety
//
// All adapter types are safe for concurrent use, matching gocql's thread safety guarantees.
package v1
