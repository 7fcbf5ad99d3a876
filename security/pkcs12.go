package security

import (
	"crypto"
	"crypto/x509"

	"software.sslmate.com/src/go-pkcs12"
)

// pkcs12TrustedCertificates reads a Java-style PKCS#12 truststore. Archives
// without trusted-certificate bags fall back to their certificate chain.
func pkcs12TrustedCertificates(data []byte, password string) ([]*x509.Certificate, error) {
	certs, err := pkcs12.DecodeTrustStore(data, password)
	if err == nil && len(certs) > 0 {
		return certs, nil
	}

	_, cert, caCerts, chainErr := pkcs12.DecodeChain(data, password)
	if chainErr != nil {
		if err != nil {
			return nil, err
		}

		return nil, chainErr
	}

	return append([]*x509.Certificate{cert}, caCerts...), nil
}

func pkcs12PrivateKey(data []byte, password string) (crypto.PrivateKey, []*x509.Certificate, error) {
	key, cert, caCerts, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		return nil, nil, err
	}

	return key, append([]*x509.Certificate{cert}, caCerts...), nil
}
