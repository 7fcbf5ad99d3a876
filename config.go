package scyllacdc

import (
	"errors"
	"strconv"
	"strings"

	"github.com/arloliu/scyllacdc/types"
)

// Configuration describes how to connect to the cluster holding the CDC log.
//
// A Configuration is created only by Builder.Build and is never mutated
// afterwards, so it is safe to share between goroutines and to bootstrap
// more than one session from.
type Configuration struct {
	contactPoints []types.ContactPoint
	auth          types.AuthMechanism
	consistency   types.Consistency
	localDC       string
}

// ContactPoints returns a copy of the contact points in insertion order.
func (c *Configuration) ContactPoints() []types.ContactPoint {
	return append([]types.ContactPoint(nil), c.contactPoints...)
}

// Auth returns the selected authentication mechanism. It is never nil.
func (c *Configuration) Auth() types.AuthMechanism {
	return c.auth
}

// Credentials returns the credentials if that mechanism is selected.
func (c *Configuration) Credentials() (types.Credentials, bool) {
	creds, ok := c.auth.(types.Credentials)

	return creds, ok
}

// ClientCert returns the client certificate settings if that mechanism is selected.
func (c *Configuration) ClientCert() (types.ClientCertAuth, bool) {
	cert, ok := c.auth.(types.ClientCertAuth)

	return cert, ok
}

// ConsistencyLevel returns the consistency level for CDC log reads.
func (c *Configuration) ConsistencyLevel() types.Consistency {
	return c.consistency
}

// LocalDCName returns the local datacenter name and whether one is set.
func (c *Configuration) LocalDCName() (string, bool) {
	return c.localDC, c.localDC != ""
}

// String returns a human readable summary with secrets redacted.
func (c *Configuration) String() string {
	var sb strings.Builder

	sb.WriteString("Configuration{ContactPoints: [")
	for i, cp := range c.contactPoints {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(cp.String())
	}
	sb.WriteString("], Auth: ")

	switch auth := c.auth.(type) {
	case types.Credentials:
		sb.WriteString(auth.String())
	case types.ClientCertAuth:
		sb.WriteString(auth.String())
	default:
		sb.WriteString(c.auth.Kind().String())
	}

	sb.WriteString(", Consistency: ")
	sb.WriteString(c.consistency.String())
	if c.localDC != "" {
		sb.WriteString(", LocalDC: ")
		sb.WriteString(c.localDC)
	}
	sb.WriteString("}")

	return sb.String()
}

// Builder accumulates connection parameters and produces a Configuration.
//
// Each method validates its own arguments and leaves the builder unchanged
// when it fails. Cross-field validation happens in Build. An empty string
// is treated as an absent argument.
//
// Build copies the accumulated state; one Build per Builder is the
// supported pattern. A Builder is not safe for concurrent use.
//
// Example:
//
//	b := scyllacdc.NewBuilder()
//	_ = b.AddContactPoint("10.0.0.1", 9042)
//	_ = b.WithCredentials("cdc_reader", "secret")
//	_ = b.WithConsistencyLevel(types.LocalQuorum)
//	_ = b.WithLocalDCName("dc1")
//	cfg, err := b.Build()
type Builder struct {
	contactPoints []types.ContactPoint
	auth          types.AuthMechanism
	consistency   types.Consistency
	localDC       string
}

// NewBuilder creates a builder with anonymous auth and Quorum consistency.
//
// Returns:
//   - *Builder: An empty builder
func NewBuilder() *Builder {
	return &Builder{
		auth:        types.NoAuth{},
		consistency: types.DefaultConsistency,
	}
}

// AddContactPointAddress appends a contact point given as "host:port".
//
// Parameters:
//   - addr: Address such as "10.0.0.1:9042" or "[::1]:9042"
//
// Returns:
//   - error: *types.ArgumentError if the address is malformed
func (b *Builder) AddContactPointAddress(addr string) error {
	cp, err := types.ParseContactPoint(addr)
	if err != nil {
		return err
	}

	b.contactPoints = append(b.contactPoints, cp)

	return nil
}

// AddContactPoint appends a contact point.
//
// Parameters:
//   - host: Host name or IP address
//   - port: Port in (0, 65536)
//
// Returns:
//   - error: *types.ArgumentError if host is empty or port is out of range
func (b *Builder) AddContactPoint(host string, port int) error {
	cp := types.ContactPoint{Host: host, Port: port}
	if err := cp.Validate(); err != nil {
		return err
	}

	b.contactPoints = append(b.contactPoints, cp)

	return nil
}

// AddContactPointHost appends a contact point on the default port 9042.
func (b *Builder) AddContactPointHost(host string) error {
	return b.AddContactPoint(host, types.DefaultPort)
}

// AddContactPoints appends several contact points.
//
// Either all points are appended or, if any is invalid, none are.
//
// Parameters:
//   - points: Contact points to append
//
// Returns:
//   - error: *types.ArgumentError naming the first invalid point
func (b *Builder) AddContactPoints(points []types.ContactPoint) error {
	for i, cp := range points {
		if err := cp.Validate(); err != nil {
			var argErr *types.ArgumentError
			if errors.As(err, &argErr) {
				return &types.ArgumentError{
					Field:  argErr.Field + " at index " + strconv.Itoa(i),
					Reason: argErr.Reason,
				}
			}

			return err
		}
	}

	b.contactPoints = append(b.contactPoints, points...)

	return nil
}

// WithCredentials selects username/password authentication.
//
// It replaces any previously selected mechanism, including client
// certificate authentication.
//
// Parameters:
//   - user: Username (required)
//   - password: Password (required)
//
// Returns:
//   - error: *types.ArgumentError if either argument is empty
func (b *Builder) WithCredentials(user, password string) error {
	if user == "" {
		return required("user")
	}
	if password == "" {
		return required("password")
	}

	b.auth = types.Credentials{User: user, Password: password}

	return nil
}

// WithClientCertAuth selects mutual-TLS client certificate authentication.
//
// It replaces any previously selected mechanism, including credentials.
// Store types are JKS, PKCS12 (P12, PFX) or PEM; they are resolved when
// the session is bootstrapped.
//
// The session then connects on the TLS port 9142. Contact points added
// with the default port 9042 (including AddContactPointHost) move to 9142;
// contact points with any other explicit port keep it.
//
// Parameters:
//   - truststoreLocation: Path of the store holding trusted server CAs
//   - truststorePassword: Truststore password
//   - truststoreType: Truststore format
//   - keystoreLocation: Path of the store holding the client key and certificate
//   - keystorePassword: Keystore password, also used for the key entry
//   - keystoreType: Keystore format
//
// Returns:
//   - error: *types.ArgumentError naming the first empty argument
func (b *Builder) WithClientCertAuth(
	truststoreLocation, truststorePassword, truststoreType,
	keystoreLocation, keystorePassword, keystoreType string,
) error {
	fields := []struct {
		name  string
		value string
	}{
		{"truststore location", truststoreLocation},
		{"truststore password", truststorePassword},
		{"truststore type", truststoreType},
		{"keystore location", keystoreLocation},
		{"keystore password", keystorePassword},
		{"keystore type", keystoreType},
	}
	for _, f := range fields {
		if f.value == "" {
			return required(f.name)
		}
	}

	b.auth = types.ClientCertAuth{
		TruststoreLocation: truststoreLocation,
		TruststorePassword: truststorePassword,
		TruststoreType:     truststoreType,
		KeystoreLocation:   keystoreLocation,
		KeystorePassword:   keystorePassword,
		KeystoreType:       keystoreType,
	}

	return nil
}

// WithConsistencyLevel overrides the default Quorum consistency.
//
// Parameters:
//   - level: One of LocalOne, One, Two, Three, LocalQuorum, Quorum, All
//
// Returns:
//   - error: *types.ArgumentError if level is not a known value
func (b *Builder) WithConsistencyLevel(level types.Consistency) error {
	if !level.IsValid() {
		return &types.ArgumentError{Field: "consistency level", Reason: "unknown value " + strconv.Itoa(int(level))}
	}

	b.consistency = level

	return nil
}

// WithLocalDCName sets the datacenter that coordinators are chosen from.
//
// Parameters:
//   - name: Datacenter name (required)
//
// Returns:
//   - error: *types.ArgumentError if name is empty
func (b *Builder) WithLocalDCName(name string) error {
	if name == "" {
		return required("local datacenter name")
	}

	b.localDC = name

	return nil
}

// Build validates the accumulated state and returns a Configuration.
//
// Returns:
//   - *Configuration: The immutable configuration
//   - error: *types.ArgumentError if no contact point was added
func (b *Builder) Build() (*Configuration, error) {
	if len(b.contactPoints) == 0 {
		return nil, &types.ArgumentError{Field: "contact points", Reason: "at least one contact point is required"}
	}

	auth := b.auth
	if auth == nil {
		auth = types.NoAuth{}
	}

	consistency := b.consistency
	if !consistency.IsValid() {
		consistency = types.DefaultConsistency
	}

	return &Configuration{
		contactPoints: append([]types.ContactPoint(nil), b.contactPoints...),
		auth:          auth,
		consistency:   consistency,
		localDC:       b.localDC,
	}, nil
}

func required(field string) error {
	return &types.ArgumentError{Field: field, Reason: "is required"}
}
