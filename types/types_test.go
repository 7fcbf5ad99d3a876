package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgumentError(t *testing.T) {
	err := &ArgumentError{Field: "contact point port", Reason: "must be in range (0, 65536), got 0"}

	assert.Contains(t, err.Error(), "contact point port")
	assert.Contains(t, err.Error(), "got 0")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, errors.Is(err, ErrSecurityInitialization))
}

func TestSecurityError(t *testing.T) {
	cause := errors.New("no such file or directory")
	err := &SecurityError{Store: "truststore", Location: "/etc/cdc/trust.jks", Cause: cause}

	assert.Contains(t, err.Error(), "truststore /etc/cdc/trust.jks")
	assert.Contains(t, err.Error(), "no such file")
	assert.True(t, errors.Is(err, ErrSecurityInitialization))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrConnection))
}

func TestConnectionError(t *testing.T) {
	cause := errors.New("no hosts available")
	err := &ConnectionError{Stage: "session", Cause: cause}

	assert.Contains(t, err.Error(), "open session")
	assert.True(t, errors.Is(err, ErrConnection))
	assert.True(t, errors.Is(err, cause))

	var connErr *ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, "session", connErr.Stage)
}

func TestConsistencyString(t *testing.T) {
	tests := []struct {
		level Consistency
		name  string
	}{
		{LocalOne, "LOCAL_ONE"},
		{One, "ONE"},
		{Two, "TWO"},
		{Three, "THREE"},
		{LocalQuorum, "LOCAL_QUORUM"},
		{Quorum, "QUORUM"},
		{All, "ALL"},
		{Consistency(0), "UNKNOWN"},
		{Consistency(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.level.String())
		})
	}
}

func TestConsistencyValidity(t *testing.T) {
	for _, c := range Consistencies() {
		assert.True(t, c.IsValid(), c.String())
	}
	assert.False(t, Consistency(0).IsValid())
	assert.False(t, Consistency(All+1).IsValid())
	assert.Equal(t, Quorum, DefaultConsistency)
}

func TestParseConsistency(t *testing.T) {
	for _, c := range Consistencies() {
		parsed, err := ParseConsistency(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	parsed, err := ParseConsistency("local-quorum")
	require.NoError(t, err)
	assert.Equal(t, LocalQuorum, parsed)

	parsed, err = ParseConsistency(" LocalOne ")
	require.NoError(t, err)
	assert.Equal(t, LocalOne, parsed)

	_, err = ParseConsistency("EACH_QUORUM")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestConsistencyText(t *testing.T) {
	text, err := LocalQuorum.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "LOCAL_QUORUM", string(text))

	var c Consistency
	require.NoError(t, c.UnmarshalText([]byte("three")))
	assert.Equal(t, Three, c)

	_, err = Consistency(0).MarshalText()
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAuthVariants(t *testing.T) {
	var auth AuthMechanism = NoAuth{}
	assert.Equal(t, AuthNone, auth.Kind())

	auth = Credentials{User: "cdc", Password: "secret"}
	assert.Equal(t, AuthCredentials, auth.Kind())
	assert.NotContains(t, auth.(Credentials).String(), "secret")

	auth = ClientCertAuth{
		TruststoreLocation: "/trust.p12", TruststorePassword: "tpass", TruststoreType: "PKCS12",
		KeystoreLocation: "/key.p12", KeystorePassword: "kpass", KeystoreType: "PKCS12",
	}
	assert.Equal(t, AuthClientCert, auth.Kind())
	s := auth.(ClientCertAuth).String()
	assert.Contains(t, s, "/trust.p12")
	assert.NotContains(t, s, "tpass")
	assert.NotContains(t, s, "kpass")

	assert.Equal(t, "client_cert", AuthClientCert.String())
	assert.Equal(t, "unknown", AuthKind(9).String())
}

func TestParseStoreType(t *testing.T) {
	tests := []struct {
		in   string
		want StoreType
		ok   bool
	}{
		{"JKS", StoreJKS, true},
		{"jks", StoreJKS, true},
		{"PKCS12", StorePKCS12, true},
		{"p12", StorePKCS12, true},
		{"PFX", StorePKCS12, true},
		{"pem", StorePEM, true},
		{"BKS", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseStoreType(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestContactPoint(t *testing.T) {
	cp := ContactPoint{Host: "10.0.0.1", Port: 9042}
	require.NoError(t, cp.Validate())
	assert.Equal(t, "10.0.0.1:9042", cp.String())

	v6 := ContactPoint{Host: "::1", Port: 9142}
	assert.Equal(t, "[::1]:9142", v6.String())

	require.ErrorIs(t, ContactPoint{Host: "", Port: 9042}.Validate(), ErrInvalidArgument)
	require.ErrorIs(t, ContactPoint{Host: "h", Port: 0}.Validate(), ErrInvalidArgument)
	require.ErrorIs(t, ContactPoint{Host: "h", Port: 65536}.Validate(), ErrInvalidArgument)
	require.NoError(t, ContactPoint{Host: "h", Port: 65535}.Validate())
	require.NoError(t, ContactPoint{Host: "h", Port: 1}.Validate())
}

func TestParseContactPoint(t *testing.T) {
	cp, err := ParseContactPoint("scylla-1.internal:19042")
	require.NoError(t, err)
	assert.Equal(t, ContactPoint{Host: "scylla-1.internal", Port: 19042}, cp)

	cp, err = ParseContactPoint("[fd00::1]:9042")
	require.NoError(t, err)
	assert.Equal(t, ContactPoint{Host: "fd00::1", Port: 9042}, cp)

	for _, bad := range []string{"no-port", "host:abc", "host:0", "host:70000", ":9042"} {
		_, err := ParseContactPoint(bad)
		require.ErrorIs(t, err, ErrInvalidArgument, bad)
	}
}
