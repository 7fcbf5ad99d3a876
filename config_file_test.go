package scyllacdc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/scyllacdc/types"
)

func TestParseConfigClientCert(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
contact_points:
  - 10.0.0.1:9042
  - "[::1]:9142"
client_cert:
  truststore:
    location: /etc/cdc/truststore.jks
    password: changeit
    type: JKS
  keystore:
    location: /etc/cdc/client.p12
    password: changeit
    type: PKCS12
consistency: local-quorum
local_dc: dc1
`))
	require.NoError(t, err)

	assert.Equal(t, []types.ContactPoint{
		{Host: "10.0.0.1", Port: 9042},
		{Host: "::1", Port: 9142},
	}, cfg.ContactPoints())
	assert.Equal(t, types.LocalQuorum, cfg.ConsistencyLevel())

	dc, ok := cfg.LocalDCName()
	require.True(t, ok)
	assert.Equal(t, "dc1", dc)

	cert, ok := cfg.ClientCert()
	require.True(t, ok)
	assert.Equal(t, "/etc/cdc/client.p12", cert.KeystoreLocation)
	assert.Equal(t, "PKCS12", cert.KeystoreType)
}

func TestParseConfigCredentials(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
contact_points: [db1:9042]
credentials:
  user: cdc_reader
  password: secret
`))
	require.NoError(t, err)

	creds, ok := cfg.Credentials()
	require.True(t, ok)
	assert.Equal(t, types.Credentials{User: "cdc_reader", Password: "secret"}, creds)
	assert.Equal(t, types.Quorum, cfg.ConsistencyLevel())
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{
			name:  "empty document",
			yaml:  "",
			field: "contact points",
		},
		{
			name:  "unknown key",
			yaml:  "contact_points: [db:9042]\nretries: 3\n",
			field: "config file",
		},
		{
			name:  "malformed contact point",
			yaml:  "contact_points: [db]\n",
			field: "contact point address",
		},
		{
			name: "both auth mechanisms",
			yaml: `
contact_points: [db:9042]
credentials: {user: u, password: p}
client_cert:
  truststore: {location: /t, password: p, type: JKS}
  keystore: {location: /k, password: p, type: JKS}
`,
			field: "auth",
		},
		{
			name:  "incomplete credentials",
			yaml:  "contact_points: [db:9042]\ncredentials: {user: u}\n",
			field: "password",
		},
		{
			name: "incomplete client cert",
			yaml: `
contact_points: [db:9042]
client_cert:
  truststore: {location: /t, password: p, type: JKS}
  keystore: {location: /k, password: p}
`,
			field: "keystore type",
		},
		{
			name:  "unknown consistency",
			yaml:  "contact_points: [db:9042]\nconsistency: EACH_QUORUM\n",
			field: "consistency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			requireArgumentError(t, err, tt.field)
		})
	}
}

func TestFileConfigBuilderAllowsOverrides(t *testing.T) {
	fc, err := DecodeFileConfig(strings.NewReader("contact_points: [db1:9042]\nconsistency: ONE\n"))
	require.NoError(t, err)

	b, err := fc.Builder()
	require.NoError(t, err)
	require.NoError(t, b.AddContactPoint("db2", 9042))
	require.NoError(t, b.WithConsistencyLevel(types.All))

	cfg, err := b.Build()
	require.NoError(t, err)
	assert.Len(t, cfg.ContactPoints(), 2)
	assert.Equal(t, types.All, cfg.ConsistencyLevel())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cdc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("contact_points: [10.0.0.1:9042]\nlocal_dc: dc2\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	dc, ok := cfg.LocalDCName()
	require.True(t, ok)
	assert.Equal(t, "dc2", dc)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
