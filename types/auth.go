package types

import "strings"

// AuthKind identifies the variant held by an AuthMechanism.
type AuthKind int

const (
	// AuthNone is an anonymous connection.
	AuthNone AuthKind = iota
	// AuthCredentials is username/password authentication.
	AuthCredentials
	// AuthClientCert is mutual-TLS client certificate authentication.
	AuthClientCert
)

// String returns the string representation of the AuthKind.
func (k AuthKind) String() string {
	switch k {
	case AuthNone:
		return "none"
	case AuthCredentials:
		return "credentials"
	case AuthClientCert:
		return "client_cert"
	}

	return "unknown"
}

// AuthMechanism is a closed set of authentication variants.
//
// Exactly one of NoAuth, Credentials or ClientCertAuth is held by a
// configuration. Each variant carries only its own fields, so a
// configuration can never mix credential and certificate settings.
type AuthMechanism interface {
	// Kind returns the variant tag.
	Kind() AuthKind

	isAuthMechanism()
}

// NoAuth selects an anonymous connection.
type NoAuth struct{}

// Kind returns AuthNone.
func (NoAuth) Kind() AuthKind { return AuthNone }

func (NoAuth) isAuthMechanism() {}

// Credentials selects username/password authentication.
type Credentials struct {
	User     string
	Password string
}

// Kind returns AuthCredentials.
func (Credentials) Kind() AuthKind { return AuthCredentials }

func (Credentials) isAuthMechanism() {}

// String returns the credentials with the password redacted.
func (c Credentials) String() string {
	return "Credentials{User: " + c.User + ", Password: <redacted>}"
}

// ClientCertAuth selects mutual-TLS client certificate authentication.
//
// The truststore holds the certificates used to verify the server; the
// keystore holds the client certificate chain and its private key.
type ClientCertAuth struct {
	TruststoreLocation string
	TruststorePassword string
	TruststoreType     string
	KeystoreLocation   string
	KeystorePassword   string
	KeystoreType       string
}

// Kind returns AuthClientCert.
func (ClientCertAuth) Kind() AuthKind { return AuthClientCert }

func (ClientCertAuth) isAuthMechanism() {}

// String returns the store locations and types with passwords redacted.
func (c ClientCertAuth) String() string {
	return "ClientCertAuth{Truststore: " + c.TruststoreLocation + " (" + c.TruststoreType + ")" +
		", Keystore: " + c.KeystoreLocation + " (" + c.KeystoreType + ")}"
}

// StoreType is the on-disk format of a trust or key store.
type StoreType string

// Supported store formats.
const (
	// StoreJKS is a Java KeyStore file.
	StoreJKS StoreType = "JKS"
	// StorePKCS12 is a PKCS#12 archive (.p12, .pfx).
	StorePKCS12 StoreType = "PKCS12"
	// StorePEM is a file of PEM blocks (certificates and, for keystores, a private key).
	StorePEM StoreType = "PEM"
)

// ParseStoreType resolves a store type name case-insensitively.
//
// "P12" and "PFX" are accepted as aliases of PKCS12.
//
// Returns:
//   - StoreType: The resolved type
//   - bool: false if the name is not a supported format
func ParseStoreType(s string) (StoreType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "JKS":
		return StoreJKS, true
	case "PKCS12", "P12", "PFX":
		return StorePKCS12, true
	case "PEM":
		return StorePEM, true
	}

	return "", false
}
