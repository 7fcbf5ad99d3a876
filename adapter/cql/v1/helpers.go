package v1

import (
	"github.com/gocql/gocql"

	"github.com/arloliu/scyllacdc/adapter/cql"
)

// ToGocqlConsistency converts a native cql.Consistency to gocql.Consistency.
//
// Parameters:
//   - c: Native consistency level
//
// Returns:
//   - gocql.Consistency: The equivalent gocql consistency level
//
// Example:
//
//	session, _ := scyllacdc.Bootstrap(cfg)
//	query.Consistency(v1.ToGocqlConsistency(session.Consistency()))
func ToGocqlConsistency(c cql.Consistency) gocql.Consistency {
	return gocql.Consistency(c)
}

// FromGocqlConsistency converts a gocql.Consistency to a native cql.Consistency.
//
// Parameters:
//   - c: gocql consistency level
//
// Returns:
//   - cql.Consistency: The equivalent native consistency level
func FromGocqlConsistency(c gocql.Consistency) cql.Consistency {
	return cql.Consistency(c)
}

// UnwrapSession returns the underlying gocql.Session from a v1 Session adapter.
//
// This is useful when you need direct access to the underlying gocql session
// for operations not exposed by the adapter, such as keyspace metadata.
//
// Parameters:
//   - s: v1 Session adapter
//
// Returns:
//   - *gocql.Session: The underlying gocql session
//
// Example:
//
//	raw := v1.UnwrapSession(session.Driver().(*v1.Session))
//	keyspaceMeta, _ := raw.KeyspaceMetadata("my_keyspace")
func UnwrapSession(s *Session) *gocql.Session {
	return s.session
}
