package v2

import (
	gocql "github.com/apache/cassandra-gocql-driver/v2"

	"github.com/arloliu/scyllacdc/adapter/cql"
)

// ToGocqlConsistency converts a native cql.Consistency to gocql.Consistency.
//
// Parameters:
//   - c: Native consistency level
//
// Returns:
//   - gocql.Consistency: The equivalent gocql consistency level
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

// UnwrapSession returns the underlying gocql.Session from a v2 Session adapter.
//
// Parameters:
//   - s: v2 Session adapter
//
// Returns:
//   - *gocql.Session: The underlying gocql session
func UnwrapSession(s *Session) *gocql.Session {
	return s.session
}
