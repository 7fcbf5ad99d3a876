package security

import (
	"crypto"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/arloliu/scyllacdc/types"
)

var (
	errNoCertificates = errors.New("store contains no certificates")
	errNoPrivateKey   = errors.New("store contains no private key entry")
	errKeyMismatch    = errors.New("private key does not match certificate")
	errEmptyLocation  = errors.New("store location is empty")
)

// LoadTruststore reads every trusted certificate from a store.
//
// Parameters:
//   - location: Path to the store file
//   - password: Store password
//   - storeType: JKS, PKCS12 (P12, PFX) or PEM, case-insensitive
//
// Returns:
//   - []*x509.Certificate: Trusted certificates, never empty on success
//   - error: *types.SecurityError with Store "truststore"
func LoadTruststore(location, password, storeType string) ([]*x509.Certificate, error) {
	certs, err := loadTruststore(location, password, storeType)
	if err != nil {
		return nil, &types.SecurityError{Store: storeTruststore, Location: location, Cause: err}
	}

	return certs, nil
}

func loadTruststore(location, password, storeType string) ([]*x509.Certificate, error) {
	st, data, err := readStore(location, storeType)
	if err != nil {
		return nil, err
	}

	var certs []*x509.Certificate
	switch st {
	case types.StoreJKS:
		certs, err = jksTrustedCertificates(data, password)
	case types.StorePKCS12:
		certs, err = pkcs12TrustedCertificates(data, password)
	case types.StorePEM:
		certs, err = pemCertificates(data)
	}
	if err != nil {
		return nil, err
	}

	if len(certs) == 0 {
		return nil, errNoCertificates
	}

	return certs, nil
}

// LoadKeystore reads the client certificate chain and private key from a store.
//
// Only the first private key entry is used. For JKS stores entries are
// ordered by alias. The key is decrypted with the store password.
//
// Parameters:
//   - location: Path to the store file
//   - password: Store password, also used for the key entry
//   - storeType: JKS, PKCS12 (P12, PFX) or PEM, case-insensitive
//
// Returns:
//   - tls.Certificate: Certificate chain and key, leaf first
//   - error: *types.SecurityError with Store "keystore"
func LoadKeystore(location, password, storeType string) (tls.Certificate, error) {
	cert, err := loadKeystore(location, password, storeType)
	if err != nil {
		return tls.Certificate{}, &types.SecurityError{Store: storeKeystore, Location: location, Cause: err}
	}

	return cert, nil
}

func loadKeystore(location, password, storeType string) (tls.Certificate, error) {
	st, data, err := readStore(location, storeType)
	if err != nil {
		return tls.Certificate{}, err
	}

	var (
		key   crypto.PrivateKey
		chain []*x509.Certificate
	)
	switch st {
	case types.StoreJKS:
		key, chain, err = jksPrivateKey(data, password)
	case types.StorePKCS12:
		key, chain, err = pkcs12PrivateKey(data, password)
	case types.StorePEM:
		key, chain, err = pemPrivateKey(data, password)
	}
	if err != nil {
		return tls.Certificate{}, err
	}

	return newCertificate(key, chain)
}

func readStore(location, storeType string) (types.StoreType, []byte, error) {
	st, ok := types.ParseStoreType(storeType)
	if !ok {
		return "", nil, fmt.Errorf("unsupported store type %q", storeType)
	}

	if location == "" {
		return "", nil, errEmptyLocation
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return "", nil, err
	}

	return st, data, nil
}

// newCertificate assembles a tls.Certificate after checking that key
// belongs to the leaf of chain.
func newCertificate(key crypto.PrivateKey, chain []*x509.Certificate) (tls.Certificate, error) {
	if key == nil {
		return tls.Certificate{}, errNoPrivateKey
	}
	if len(chain) == 0 {
		return tls.Certificate{}, errNoCertificates
	}

	signer, ok := key.(crypto.Signer)
	if !ok {
		return tls.Certificate{}, fmt.Errorf("unsupported private key type %T", key)
	}

	pub, ok := signer.Public().(interface{ Equal(x crypto.PublicKey) bool })
	if !ok || !pub.Equal(chain[0].PublicKey) {
		return tls.Certificate{}, errKeyMismatch
	}

	raw := make([][]byte, 0, len(chain))
	for _, c := range chain {
		raw = append(raw, c.Raw)
	}

	return tls.Certificate{
		Certificate: raw,
		PrivateKey:  key,
		Leaf:        chain[0],
	}, nil
}
