package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/scyllacdc/types"
)

func TestBuildConfigurationFromFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--contact-point", "10.0.0.1:9042",
		"--contact-point", "10.0.0.2:9042",
		"--user", "cdc_reader",
		"--password", "secret",
		"--consistency", "local_quorum",
		"--local-dc", "dc1",
	}))
	v, err := newSettings(fs)
	require.NoError(t, err)

	cfg, err := buildConfiguration(v)
	require.NoError(t, err)

	assert.Equal(t, []types.ContactPoint{
		{Host: "10.0.0.1", Port: 9042},
		{Host: "10.0.0.2", Port: 9042},
	}, cfg.ContactPoints())
	assert.Equal(t, types.LocalQuorum, cfg.ConsistencyLevel())

	creds, ok := cfg.Credentials()
	require.True(t, ok)
	assert.Equal(t, "cdc_reader", creds.User)

	dc, ok := cfg.LocalDCName()
	require.True(t, ok)
	assert.Equal(t, "dc1", dc)
}

func TestBuildConfigurationFromEnv(t *testing.T) {
	t.Setenv("CDCPING_USER", "env_user")
	t.Setenv("CDCPING_PASSWORD", "env_secret")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerFlags(fs)
	require.NoError(t, fs.Parse([]string{"--contact-point", "db:9042"}))
	v, err := newSettings(fs)
	require.NoError(t, err)

	cfg, err := buildConfiguration(v)
	require.NoError(t, err)

	creds, ok := cfg.Credentials()
	require.True(t, ok)
	assert.Equal(t, types.Credentials{User: "env_user", Password: "env_secret"}, creds)
}

func TestBuildConfigurationContactPointsFromEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"comma separated", "10.0.0.1:9042,10.0.0.2:9042"},
		{"comma and space", "10.0.0.1:9042, 10.0.0.2:9042"},
		{"space separated", "10.0.0.1:9042 10.0.0.2:9042"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CDCPING_CONTACT_POINT", tt.value)

			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			registerFlags(fs)
			require.NoError(t, fs.Parse(nil))
			v, err := newSettings(fs)
			require.NoError(t, err)

			cfg, err := buildConfiguration(v)
			require.NoError(t, err)
			assert.Equal(t, []types.ContactPoint{
				{Host: "10.0.0.1", Port: 9042},
				{Host: "10.0.0.2", Port: 9042},
			}, cfg.ContactPoints())
		})
	}
}

func TestBuildConfigurationFileWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cdc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
contact_points: [10.0.0.1:9042]
client_cert:
  truststore: {location: /etc/cdc/ts.pem, password: changeit, type: PEM}
  keystore: {location: /etc/cdc/ks.pem, password: changeit, type: PEM}
consistency: ONE
`), 0o600))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--config", path,
		"--contact-point", "10.0.0.9:9142",
		"--consistency", "ALL",
	}))
	v, err := newSettings(fs)
	require.NoError(t, err)

	cfg, err := buildConfiguration(v)
	require.NoError(t, err)

	assert.Len(t, cfg.ContactPoints(), 2)
	assert.Equal(t, types.All, cfg.ConsistencyLevel())
	assert.Equal(t, types.AuthClientCert, cfg.Auth().Kind())
}

func TestBuildConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no contact points", nil},
		{"bad contact point", []string{"--contact-point", "db"}},
		{"both auth mechanisms", []string{"--contact-point", "db:9042", "--user", "u", "--password", "p", "--truststore", "/ts"}},
		{"missing password", []string{"--contact-point", "db:9042", "--user", "u"}},
		{"missing keystore", []string{"--contact-point", "db:9042", "--truststore", "/ts", "--truststore-password", "p"}},
		{"unknown consistency", []string{"--contact-point", "db:9042", "--consistency", "SERIAL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			registerFlags(fs)
			require.NoError(t, fs.Parse(tt.args))
			v, err := newSettings(fs)
			require.NoError(t, err)

			_, err = buildConfiguration(v)
			require.ErrorIs(t, err, types.ErrInvalidArgument)
		})
	}
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("debug", "json")
	require.NoError(t, err)

	_, err = newLogger("verbose", "json")
	require.Error(t, err)

	_, err = newLogger("info", "xml")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "cdc-ping v"+version)
}
