package types

import (
	"net"
	"strconv"
)

// Well-known CQL native transport ports.
const (
	// DefaultPort is the plaintext CQL port.
	DefaultPort = 9042
	// DefaultTLSPort is the port the cluster serves encrypted client traffic on.
	DefaultTLSPort = 9142
)

// ContactPoint is a host/port pair used to bootstrap the driver.
type ContactPoint struct {
	Host string
	Port int
}

// String returns the "host:port" form, bracketing IPv6 hosts.
func (c ContactPoint) String() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks that the host is present and the port is in (0, 65536).
//
// Returns:
//   - error: ArgumentError if the contact point is malformed, or nil
func (c ContactPoint) Validate() error {
	if c.Host == "" {
		return &ArgumentError{Field: "contact point host", Reason: "must not be empty"}
	}
	if c.Port <= 0 || c.Port >= 65536 {
		return &ArgumentError{Field: "contact point port", Reason: "must be in range (0, 65536), got " + strconv.Itoa(c.Port)}
	}

	return nil
}

// ParseContactPoint parses an address of the form "host:port" or "[ipv6]:port".
//
// Parameters:
//   - addr: The address to parse
//
// Returns:
//   - ContactPoint: The validated contact point
//   - error: ArgumentError if the address is malformed
func ParseContactPoint(addr string) (ContactPoint, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return ContactPoint{}, &ArgumentError{Field: "contact point address", Reason: err.Error()}
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return ContactPoint{}, &ArgumentError{Field: "contact point port", Reason: "not a number: " + portStr}
	}

	cp := ContactPoint{Host: host, Port: port}
	if err := cp.Validate(); err != nil {
		return ContactPoint{}, err
	}

	return cp, nil
}
