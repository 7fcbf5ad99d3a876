package scyllacdc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/scyllacdc/types"
)

// FileConfig is the YAML form of a Configuration.
//
// Example:
//
//	contact_points:
//	  - 10.0.0.1:9042
//	  - 10.0.0.2:9042
//	client_cert:
//	  truststore: {location: /etc/cdc/truststore.jks, password: changeit, type: JKS}
//	  keystore:   {location: /etc/cdc/client.p12, password: changeit, type: PKCS12}
//	consistency: LOCAL_QUORUM
//	local_dc: dc1
type FileConfig struct {
	ContactPoints []string         `yaml:"contact_points"`
	Credentials   *FileCredentials `yaml:"credentials,omitempty"`
	ClientCert    *FileClientCert  `yaml:"client_cert,omitempty"`
	Consistency   string           `yaml:"consistency,omitempty"`
	LocalDC       string           `yaml:"local_dc,omitempty"`
}

// FileCredentials holds username/password authentication settings.
type FileCredentials struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// FileStore locates one trust or key store.
type FileStore struct {
	Location string `yaml:"location"`
	Password string `yaml:"password"`
	Type     string `yaml:"type"`
}

// FileClientCert holds client certificate authentication settings.
type FileClientCert struct {
	Truststore FileStore `yaml:"truststore"`
	Keystore   FileStore `yaml:"keystore"`
}

// LoadConfig reads a YAML configuration file and builds a Configuration.
//
// Parameters:
//   - path: Path of the YAML file
//
// Returns:
//   - *Configuration: The validated configuration
//   - error: file errors, or *types.ArgumentError for invalid content
func LoadConfig(path string) (*Configuration, error) {
	fc, err := ReadFileConfig(path)
	if err != nil {
		return nil, err
	}

	return fc.Configuration()
}

// ParseConfig parses YAML and builds a Configuration.
func ParseConfig(data []byte) (*Configuration, error) {
	fc, err := DecodeFileConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return fc.Configuration()
}

// ReadFileConfig reads a YAML file into a FileConfig without validating it.
func ReadFileConfig(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scyllacdc: open config: %w", err)
	}
	defer f.Close()

	return DecodeFileConfig(f)
}

// DecodeFileConfig decodes YAML from r. Unknown keys are rejected.
func DecodeFileConfig(r io.Reader) (*FileConfig, error) {
	var fc FileConfig

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &types.ArgumentError{Field: "config file", Reason: err.Error()}
	}

	return &fc, nil
}

// Builder returns a Builder populated from the file settings.
//
// Callers may add further contact points or override settings before
// calling Build.
//
// Returns:
//   - *Builder: The populated builder
//   - error: *types.ArgumentError if a setting is invalid, or if both
//     credentials and client_cert are declared
func (fc *FileConfig) Builder() (*Builder, error) {
	b := NewBuilder()

	for _, addr := range fc.ContactPoints {
		if err := b.AddContactPointAddress(addr); err != nil {
			return nil, err
		}
	}

	if fc.Credentials != nil && fc.ClientCert != nil {
		return nil, &types.ArgumentError{
			Field:  "auth",
			Reason: "credentials and client_cert are mutually exclusive",
		}
	}

	if c := fc.Credentials; c != nil {
		if err := b.WithCredentials(c.User, c.Password); err != nil {
			return nil, err
		}
	}

	if c := fc.ClientCert; c != nil {
		err := b.WithClientCertAuth(
			c.Truststore.Location, c.Truststore.Password, c.Truststore.Type,
			c.Keystore.Location, c.Keystore.Password, c.Keystore.Type,
		)
		if err != nil {
			return nil, err
		}
	}

	if fc.Consistency != "" {
		level, err := types.ParseConsistency(fc.Consistency)
		if err != nil {
			return nil, err
		}
		if err := b.WithConsistencyLevel(level); err != nil {
			return nil, err
		}
	}

	if fc.LocalDC != "" {
		if err := b.WithLocalDCName(fc.LocalDC); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Configuration builds and validates the Configuration.
func (fc *FileConfig) Configuration() (*Configuration, error) {
	b, err := fc.Builder()
	if err != nil {
		return nil, err
	}

	return b.Build()
}
