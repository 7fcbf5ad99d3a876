package security

import (
	"bytes"
	"crypto"
	"crypto/x509"
	"fmt"
	"sort"

	"github.com/pavlo-v-chernykh/keystore-go/v4"
)

func loadJKS(data []byte, password string) (keystore.KeyStore, error) {
	ks := keystore.New()
	if err := ks.Load(bytes.NewReader(data), []byte(password)); err != nil {
		return keystore.KeyStore{}, err
	}

	return ks, nil
}

func sortedAliases(ks keystore.KeyStore) []string {
	aliases := ks.Aliases()
	sort.Strings(aliases)

	return aliases
}

func jksTrustedCertificates(data []byte, password string) ([]*x509.Certificate, error) {
	ks, err := loadJKS(data, password)
	if err != nil {
		return nil, err
	}

	var certs []*x509.Certificate
	for _, alias := range sortedAliases(ks) {
		if !ks.IsTrustedCertificateEntry(alias) {
			continue
		}

		entry, err := ks.GetTrustedCertificateEntry(alias)
		if err != nil {
			return nil, fmt.Errorf("alias %q: %w", alias, err)
		}

		c, err := x509.ParseCertificate(entry.Certificate.Content)
		if err != nil {
			return nil, fmt.Errorf("alias %q: %w", alias, err)
		}
		certs = append(certs, c)
	}

	return certs, nil
}

// jksPrivateKey returns the first private key entry by alias order. The
// entry is protected by the store password.
func jksPrivateKey(data []byte, password string) (crypto.PrivateKey, []*x509.Certificate, error) {
	ks, err := loadJKS(data, password)
	if err != nil {
		return nil, nil, err
	}

	for _, alias := range sortedAliases(ks) {
		if !ks.IsPrivateKeyEntry(alias) {
			continue
		}

		entry, err := ks.GetPrivateKeyEntry(alias, []byte(password))
		if err != nil {
			return nil, nil, fmt.Errorf("alias %q: %w", alias, err)
		}

		key, err := x509.ParsePKCS8PrivateKey(entry.PrivateKey)
		if err != nil {
			return nil, nil, fmt.Errorf("alias %q: %w", alias, err)
		}

		chain := make([]*x509.Certificate, 0, len(entry.CertificateChain))
		for _, c := range entry.CertificateChain {
			cert, err := x509.ParseCertificate(c.Content)
			if err != nil {
				return nil, nil, fmt.Errorf("alias %q: %w", alias, err)
			}
			chain = append(chain, cert)
		}

		return key, chain, nil
	}

	return nil, nil, errNoPrivateKey
}
