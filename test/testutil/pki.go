package testutil

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pavlo-v-chernykh/keystore-go/v4"
	"github.com/stretchr/testify/require"
	"github.com/youmark/pkcs8"
	"software.sslmate.com/src/go-pkcs12"

	"github.com/arloliu/scyllacdc/types"
)

// DefaultStorePassword is the password protecting every store written by PKI.
const DefaultStorePassword = "changeit"

var serialNumber atomic.Int64

// PKI is a throwaway certificate authority with one server and one client
// certificate, able to write trust and key stores in every supported format.
type PKI struct {
	t   *testing.T
	dir string

	// Password protects every store and encrypted key written by this PKI.
	Password string

	CA     *x509.Certificate
	caKey  *ecdsa.PrivateKey
	Server *x509.Certificate
	srvKey *ecdsa.PrivateKey
	Client *x509.Certificate
	cliKey *ecdsa.PrivateKey
}

// NewPKI generates a CA, a server certificate and a client certificate.
//
// Files are written under t.TempDir().
//
// Parameters:
//   - t: Testing context
//   - serverNames: Host names and IPs for the server certificate
//     (default: "localhost", "127.0.0.1")
//
// Returns:
//   - *PKI: The generated material
func NewPKI(t *testing.T, serverNames ...string) *PKI {
	t.Helper()

	if len(serverNames) == 0 {
		serverNames = []string{"localhost", "127.0.0.1"}
	}

	p := &PKI{t: t, dir: t.TempDir(), Password: DefaultStorePassword}

	p.caKey = newKey(t)
	p.CA = issue(t, &x509.Certificate{
		Subject:               pkix.Name{CommonName: "scyllacdc test CA"},
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
	}, nil, nil, p.caKey)

	p.srvKey = newKey(t)
	server := &x509.Certificate{
		Subject:     pkix.Name{CommonName: serverNames[0]},
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	for _, name := range serverNames {
		if ip := net.ParseIP(name); ip != nil {
			server.IPAddresses = append(server.IPAddresses, ip)
		} else {
			server.DNSNames = append(server.DNSNames, name)
		}
	}
	p.Server = issue(t, server, p.CA, p.caKey, p.srvKey)

	p.cliKey = newKey(t)
	p.Client = issue(t, &x509.Certificate{
		Subject:     pkix.Name{CommonName: "cdc-reader"},
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}, p.CA, p.caKey, p.cliKey)

	return p
}

func newKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	return key
}

// issue signs tmpl with parentKey, or self-signs with key when parent is nil.
func issue(t *testing.T, tmpl, parent *x509.Certificate, parentKey, key *ecdsa.PrivateKey) *x509.Certificate {
	t.Helper()

	tmpl.SerialNumber = big.NewInt(serialNumber.Add(1))
	tmpl.NotBefore = time.Now().Add(-time.Hour)
	tmpl.NotAfter = time.Now().Add(24 * time.Hour)

	if parent == nil {
		parent, parentKey = tmpl, key
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, parent, &key.PublicKey, parentKey)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	return cert
}

// Path returns the absolute path of name inside the PKI directory.
func (p *PKI) Path(name string) string {
	return filepath.Join(p.dir, name)
}

// WriteFile writes raw data into the PKI directory and returns its path.
func (p *PKI) WriteFile(name string, data []byte) string {
	p.t.Helper()

	path := p.Path(name)
	require.NoError(p.t, os.WriteFile(path, data, 0o600))

	return path
}

// WriteTruststore writes the CA certificate as a truststore.
//
// Parameters:
//   - storeType: Format to write
//
// Returns:
//   - string: Path of the written file
func (p *PKI) WriteTruststore(storeType types.StoreType) string {
	p.t.Helper()

	switch storeType {
	case types.StoreJKS:
		ks := keystore.New()
		require.NoError(p.t, ks.SetTrustedCertificateEntry("ca", keystore.TrustedCertificateEntry{
			CreationTime: time.Now(),
			Certificate:  keystore.Certificate{Type: "X509", Content: p.CA.Raw},
		}))

		return p.WriteFile("truststore.jks", p.storeJKS(ks))
	case types.StorePKCS12:
		data, err := pkcs12.Modern.EncodeTrustStore([]*x509.Certificate{p.CA}, p.Password)
		require.NoError(p.t, err)

		return p.WriteFile("truststore.p12", data)
	case types.StorePEM:
		return p.WriteFile("truststore.pem", certPEM(p.CA))
	}

	p.t.Fatalf("unsupported store type %q", storeType)

	return ""
}

// WriteKeystore writes the client certificate chain and key as a keystore.
//
// Parameters:
//   - storeType: Format to write
//
// Returns:
//   - string: Path of the written file
func (p *PKI) WriteKeystore(storeType types.StoreType) string {
	p.t.Helper()

	switch storeType {
	case types.StoreJKS:
		der, err := x509.MarshalPKCS8PrivateKey(p.cliKey)
		require.NoError(p.t, err)

		ks := keystore.New()
		require.NoError(p.t, ks.SetPrivateKeyEntry("client", keystore.PrivateKeyEntry{
			CreationTime: time.Now(),
			PrivateKey:   der,
			CertificateChain: []keystore.Certificate{
				{Type: "X509", Content: p.Client.Raw},
				{Type: "X509", Content: p.CA.Raw},
			},
		}, []byte(p.Password)))

		return p.WriteFile("keystore.jks", p.storeJKS(ks))
	case types.StorePKCS12:
		data, err := pkcs12.Modern.Encode(p.cliKey, p.Client, []*x509.Certificate{p.CA}, p.Password)
		require.NoError(p.t, err)

		return p.WriteFile("keystore.p12", data)
	case types.StorePEM:
		der, err := x509.MarshalPKCS8PrivateKey(p.cliKey)
		require.NoError(p.t, err)

		data := append(certPEM(p.Client), certPEM(p.CA)...)
		data = append(data, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})...)

		return p.WriteFile("keystore.pem", data)
	}

	p.t.Fatalf("unsupported store type %q", storeType)

	return ""
}

// WriteEncryptedPEMKeystore writes the client chain with its key encrypted
// as PKCS#8 under the store password.
func (p *PKI) WriteEncryptedPEMKeystore() string {
	p.t.Helper()

	der, err := pkcs8.MarshalPrivateKey(p.cliKey, []byte(p.Password), nil)
	require.NoError(p.t, err)

	data := append(certPEM(p.Client), pem.EncodeToMemory(&pem.Block{Type: "ENCRYPTED PRIVATE KEY", Bytes: der})...)

	return p.WriteFile("keystore-encrypted.pem", data)
}

// ClientAuth returns a ClientCertAuth pointing at freshly written stores.
//
// Parameters:
//   - truststoreType: Truststore format
//   - keystoreType: Keystore format
//
// Returns:
//   - types.ClientCertAuth: Store locations, passwords and types
func (p *PKI) ClientAuth(truststoreType, keystoreType types.StoreType) types.ClientCertAuth {
	p.t.Helper()

	return types.ClientCertAuth{
		TruststoreLocation: p.WriteTruststore(truststoreType),
		TruststorePassword: p.Password,
		TruststoreType:     string(truststoreType),
		KeystoreLocation:   p.WriteKeystore(keystoreType),
		KeystorePassword:   p.Password,
		KeystoreType:       string(keystoreType),
	}
}

// ServerTLSConfig returns a server configuration presenting the server
// certificate and requiring a client certificate signed by the CA.
func (p *PKI) ServerTLSConfig() *tls.Config {
	pool := x509.NewCertPool()
	pool.AddCert(p.CA)

	return &tls.Config{
		Certificates: []tls.Certificate{{
			Certificate: [][]byte{p.Server.Raw, p.CA.Raw},
			PrivateKey:  p.srvKey,
			Leaf:        p.Server,
		}},
		ClientCAs:  pool,
		ClientAuth: tls.RequireAndVerifyClientCert,
		MinVersion: tls.VersionTLS12,
	}
}

func (p *PKI) storeJKS(ks keystore.KeyStore) []byte {
	p.t.Helper()

	var buf bytes.Buffer
	require.NoError(p.t, ks.Store(&buf, []byte(p.Password)))

	return buf.Bytes()
}

func certPEM(c *x509.Certificate) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: c.Raw})
}
