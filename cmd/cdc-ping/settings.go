package main

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/arloliu/scyllacdc"
	"github.com/arloliu/scyllacdc/types"
)

// Setting keys. Flags use the same names; environment variables use the
// CDCPING_ prefix with dashes replaced by underscores.
const (
	keyConfig             = "config"
	keyContactPoints      = "contact-point"
	keyUser               = "user"
	keyPassword           = "password"
	keyTruststore         = "truststore"
	keyTruststorePassword = "truststore-password"
	keyTruststoreType     = "truststore-type"
	keyKeystore           = "keystore"
	keyKeystorePassword   = "keystore-password"
	keyKeystoreType       = "keystore-type"
	keyConsistency        = "consistency"
	keyLocalDC            = "local-dc"
	keyVerifyHost         = "verify-host"
	keyTimeout            = "timeout"
	keyLogLevel           = "log-level"
	keyLogFormat          = "log-format"
)

const envPrefix = "CDCPING"

func registerFlags(fs *pflag.FlagSet) {
	fs.String(keyConfig, "", "YAML configuration file")
	fs.StringSlice(keyContactPoints, nil, "contact point as host:port (repeatable; CDCPING_CONTACT_POINT takes a comma or space separated list)")
	fs.String(keyUser, "", "username for credential auth")
	fs.String(keyPassword, "", "password for credential auth")
	fs.String(keyTruststore, "", "truststore location for client certificate auth")
	fs.String(keyTruststorePassword, "", "truststore password")
	fs.String(keyTruststoreType, "JKS", "truststore type: JKS, PKCS12 or PEM")
	fs.String(keyKeystore, "", "keystore location for client certificate auth")
	fs.String(keyKeystorePassword, "", "keystore password")
	fs.String(keyKeystoreType, "JKS", "keystore type: JKS, PKCS12 or PEM")
	fs.String(keyConsistency, "", "consistency level for CDC log reads (default QUORUM)")
	fs.String(keyLocalDC, "", "local datacenter name")
	fs.Bool(keyVerifyHost, false, "verify server host names against their certificates")
	fs.Duration(keyTimeout, 10*time.Second, "connect and query timeout")
	fs.String(keyLogLevel, "info", "log level: debug, info, warn, error")
	fs.String(keyLogFormat, "console", "log format: console or json")
}

// newSettings binds fs to a fresh viper instance that also reads the environment.
func newSettings(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	return v, nil
}

// buildConfiguration merges the optional YAML file with flag and
// environment settings. Settings given on the command line override the
// file, and contact points are appended to the file's list.
func buildConfiguration(v *viper.Viper) (*scyllacdc.Configuration, error) {
	b := scyllacdc.NewBuilder()
	if path := v.GetString(keyConfig); path != "" {
		fc, err := scyllacdc.ReadFileConfig(path)
		if err != nil {
			return nil, err
		}

		b, err = fc.Builder()
		if err != nil {
			return nil, err
		}
	}

	for _, addr := range contactPointAddresses(v) {
		if err := b.AddContactPointAddress(addr); err != nil {
			return nil, err
		}
	}

	user, truststore := v.GetString(keyUser), v.GetString(keyTruststore)
	if user != "" && truststore != "" {
		return nil, &types.ArgumentError{
			Field:  "auth",
			Reason: "--user and --truststore are mutually exclusive",
		}
	}

	if user != "" {
		if err := b.WithCredentials(user, v.GetString(keyPassword)); err != nil {
			return nil, err
		}
	}

	if truststore != "" {
		err := b.WithClientCertAuth(
			truststore, v.GetString(keyTruststorePassword), v.GetString(keyTruststoreType),
			v.GetString(keyKeystore), v.GetString(keyKeystorePassword), v.GetString(keyKeystoreType),
		)
		if err != nil {
			return nil, err
		}
	}

	if name := v.GetString(keyConsistency); name != "" {
		level, err := types.ParseConsistency(name)
		if err != nil {
			return nil, err
		}
		if err := b.WithConsistencyLevel(level); err != nil {
			return nil, err
		}
	}

	if dc := v.GetString(keyLocalDC); dc != "" {
		if err := b.WithLocalDCName(dc); err != nil {
			return nil, err
		}
	}

	return b.Build()
}

// contactPointAddresses returns the configured addresses. Values read from
// the environment arrive as one string, so every entry is split on commas.
func contactPointAddresses(v *viper.Viper) []string {
	var addrs []string
	for _, entry := range v.GetStringSlice(keyContactPoints) {
		for _, addr := range strings.Split(entry, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				addrs = append(addrs, addr)
			}
		}
	}

	return addrs
}
