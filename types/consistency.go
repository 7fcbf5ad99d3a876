package types

import (
	"strings"
)

// Consistency is the consistency level of read queries against the CDC log.
//
// The values are abstract: they are deliberately not the CQL protocol codes.
// The session bootstrap resolves them to the driver's native consistency
// through an explicit table. The zero value is not a valid level.
type Consistency uint8

// Supported consistency levels.
const (
	// LocalOne waits for a response from a single replica in the local datacenter.
	LocalOne Consistency = iota + 1
	// One waits for a response from a single replica.
	One
	// Two waits for responses from two replicas.
	Two
	// Three waits for responses from three replicas.
	Three
	// LocalQuorum waits for a quorum of replicas in the coordinator's datacenter,
	// defined as dataCenterReplicationFactor / 2 + 1.
	LocalQuorum
	// Quorum waits for a quorum of replicas across all datacenters, defined as
	// (dc1ReplicationFactor + dc2ReplicationFactor + ...) / 2 + 1.
	Quorum
	// All waits for responses from all replicas.
	All
)

// DefaultConsistency is the level used when none is configured.
const DefaultConsistency = Quorum

var consistencyNames = map[Consistency]string{
	LocalOne:    "LOCAL_ONE",
	One:         "ONE",
	Two:         "TWO",
	Three:       "THREE",
	LocalQuorum: "LOCAL_QUORUM",
	Quorum:      "QUORUM",
	All:         "ALL",
}

// Consistencies returns every supported consistency level in declaration order.
func Consistencies() []Consistency {
	return []Consistency{LocalOne, One, Two, Three, LocalQuorum, Quorum, All}
}

// String returns the CQL name of the consistency level, e.g. "LOCAL_QUORUM".
func (c Consistency) String() string {
	if name, ok := consistencyNames[c]; ok {
		return name
	}

	return "UNKNOWN"
}

// IsValid reports whether c is one of the supported levels.
func (c Consistency) IsValid() bool {
	return c >= LocalOne && c <= All
}

// ParseConsistency parses a consistency level name.
//
// Matching ignores case, dashes and underscores, so "LOCAL_QUORUM",
// "local-quorum" and "LocalQuorum" are all accepted.
//
// Parameters:
//   - s: The consistency level name
//
// Returns:
//   - Consistency: The parsed level
//   - error: ArgumentError if the name is unknown
func ParseConsistency(s string) (Consistency, error) {
	normalized := normalizeName(s)
	for c, name := range consistencyNames {
		if normalizeName(name) == normalized {
			return c, nil
		}
	}

	return 0, &ArgumentError{Field: "consistency", Reason: "unknown consistency level " + strings.TrimSpace(s)}
}

// MarshalText implements encoding.TextMarshaler.
func (c Consistency) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, &ArgumentError{Field: "consistency", Reason: "unknown consistency level"}
	}

	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Consistency) UnmarshalText(text []byte) error {
	parsed, err := ParseConsistency(string(text))
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "")

	return strings.ReplaceAll(s, "-", "")
}
