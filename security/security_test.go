package security_test

import (
	"crypto/rand"
	"crypto/tls"
	"encoding/pem"
	"errors"
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/scyllacdc/security"
	"github.com/arloliu/scyllacdc/test/testutil"
	"github.com/arloliu/scyllacdc/types"
)

var storeTypes = []types.StoreType{types.StoreJKS, types.StorePKCS12, types.StorePEM}

func TestLoadTruststore(t *testing.T) {
	pki := testutil.NewPKI(t)

	for _, st := range storeTypes {
		t.Run(string(st), func(t *testing.T) {
			path := pki.WriteTruststore(st)

			certs, err := security.LoadTruststore(path, pki.Password, string(st))
			require.NoError(t, err)
			require.Len(t, certs, 1)
			assert.True(t, certs[0].Equal(pki.CA))
		})
	}
}

func TestLoadTruststoreTypeAliases(t *testing.T) {
	pki := testutil.NewPKI(t)
	path := pki.WriteTruststore(types.StorePKCS12)

	for _, name := range []string{"pkcs12", "P12", "pfx"} {
		certs, err := security.LoadTruststore(path, pki.Password, name)
		require.NoError(t, err, name)
		assert.Len(t, certs, 1)
	}
}

func TestLoadTruststoreFromKeystoreArchive(t *testing.T) {
	pki := testutil.NewPKI(t)

	// A PKCS#12 keystore has no Java trust bags; its chain is trusted instead.
	path := pki.WriteKeystore(types.StorePKCS12)
	certs, err := security.LoadTruststore(path, pki.Password, "PKCS12")
	require.NoError(t, err)
	require.Len(t, certs, 2)
	assert.True(t, certs[0].Equal(pki.Client))
	assert.True(t, certs[1].Equal(pki.CA))
}

func TestLoadKeystore(t *testing.T) {
	pki := testutil.NewPKI(t)

	for _, st := range storeTypes {
		t.Run(string(st), func(t *testing.T) {
			path := pki.WriteKeystore(st)

			cert, err := security.LoadKeystore(path, pki.Password, string(st))
			require.NoError(t, err)
			require.Len(t, cert.Certificate, 2)
			require.NotNil(t, cert.Leaf)
			assert.True(t, cert.Leaf.Equal(pki.Client))
			assert.NotNil(t, cert.PrivateKey)
		})
	}
}

func TestLoadKeystoreEncryptedPEM(t *testing.T) {
	pki := testutil.NewPKI(t)
	path := pki.WriteEncryptedPEMKeystore()

	cert, err := security.LoadKeystore(path, pki.Password, "PEM")
	require.NoError(t, err)
	assert.True(t, cert.Leaf.Equal(pki.Client))

	_, err = security.LoadKeystore(path, "wrong-password", "PEM")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSecurityInitialization)
}

func TestLoadKeystoreWrongPassword(t *testing.T) {
	pki := testutil.NewPKI(t)

	for _, st := range []types.StoreType{types.StoreJKS, types.StorePKCS12} {
		t.Run(string(st), func(t *testing.T) {
			path := pki.WriteKeystore(st)

			_, err := security.LoadKeystore(path, "not-the-password", string(st))
			require.Error(t, err)

			var secErr *types.SecurityError
			require.ErrorAs(t, err, &secErr)
			assert.Equal(t, "keystore", secErr.Store)
			assert.Equal(t, path, secErr.Location)
			assert.ErrorIs(t, err, types.ErrSecurityInitialization)
		})
	}
}

func TestLoadStoreErrors(t *testing.T) {
	pki := testutil.NewPKI(t)

	t.Run("missing file", func(t *testing.T) {
		missing := pki.Path("does-not-exist.jks")
		_, err := security.LoadTruststore(missing, pki.Password, "JKS")
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrSecurityInitialization)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), missing)
	})

	t.Run("unsupported type", func(t *testing.T) {
		path := pki.WriteTruststore(types.StorePEM)
		_, err := security.LoadTruststore(path, pki.Password, "BKS")
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrSecurityInitialization)
		assert.Contains(t, err.Error(), "BKS")
	})

	t.Run("empty truststore", func(t *testing.T) {
		path := pki.WriteFile("empty.pem", []byte("no certificates here\n"))
		_, err := security.LoadTruststore(path, pki.Password, "PEM")
		require.Error(t, err)

		var secErr *types.SecurityError
		require.ErrorAs(t, err, &secErr)
		assert.Equal(t, "truststore", secErr.Store)
	})

	t.Run("keystore without key", func(t *testing.T) {
		path := pki.WriteTruststore(types.StorePEM)
		_, err := security.LoadKeystore(path, pki.Password, "PEM")
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrSecurityInitialization)
	})

	t.Run("jks truststore has no key entry", func(t *testing.T) {
		path := pki.WriteTruststore(types.StoreJKS)
		_, err := security.LoadKeystore(path, pki.Password, "JKS")
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrSecurityInitialization)
	})

	t.Run("key does not match certificate", func(t *testing.T) {
		other := testutil.NewPKI(t)
		certs := readPEMBlocks(t, pki.WriteKeystore(types.StorePEM), "CERTIFICATE")
		keys := readPEMBlocks(t, other.WriteKeystore(types.StorePEM), "PRIVATE KEY")

		path := pki.WriteFile("mismatch.pem", append(certs, keys...))
		_, err := security.LoadKeystore(path, pki.Password, "PEM")
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrSecurityInitialization)
	})
}

func readPEMBlocks(t *testing.T, path, blockType string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out []byte
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type == blockType {
			out = append(out, pem.EncodeToMemory(block)...)
		}
	}

	return out
}

func TestNewTLSConfig(t *testing.T) {
	pki := testutil.NewPKI(t)
	auth := pki.ClientAuth(types.StoreJKS, types.StorePKCS12)

	cfg, err := security.NewTLSConfig(auth)
	require.NoError(t, err)

	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
	assert.Equal(t, rand.Reader, cfg.Rand)
	assert.NotNil(t, cfg.RootCAs)
	require.Len(t, cfg.Certificates, 1)
	assert.True(t, cfg.Certificates[0].Leaf.Equal(pki.Client))
	assert.True(t, cfg.InsecureSkipVerify)
	assert.NotNil(t, cfg.VerifyConnection)

	strict, err := security.NewTLSConfig(auth, security.WithHostVerification())
	require.NoError(t, err)
	assert.False(t, strict.InsecureSkipVerify)
	assert.Nil(t, strict.VerifyConnection)
}

func TestNewTLSConfigFailsFast(t *testing.T) {
	pki := testutil.NewPKI(t)
	auth := pki.ClientAuth(types.StorePEM, types.StorePEM)

	badTrust := auth
	badTrust.TruststoreLocation = pki.Path("missing.pem")
	_, err := security.NewTLSConfig(badTrust)

	var secErr *types.SecurityError
	require.ErrorAs(t, err, &secErr)
	assert.Equal(t, "truststore", secErr.Store)

	badKey := auth
	badKey.KeystoreType = "unknown"
	_, err = security.NewTLSConfig(badKey)
	require.ErrorAs(t, err, &secErr)
	assert.Equal(t, "keystore", secErr.Store)
}

// serveTLS accepts one connection and reports the server handshake result.
func serveTLS(t *testing.T, cfg *tls.Config) (string, <-chan error) {
	t.Helper()

	ln, err := tls.Listen("tcp", "127.0.0.1:0", cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	result := make(chan error, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			result <- err
			return
		}
		defer conn.Close()

		tlsConn, ok := conn.(*tls.Conn)
		if !ok {
			result <- errors.New("not a TLS connection")
			return
		}
		result <- tlsConn.Handshake()
	}()

	return ln.Addr().String(), result
}

func TestMutualTLSHandshake(t *testing.T) {
	// The server certificate does not name 127.0.0.1.
	pki := testutil.NewPKI(t, "scylla-node.invalid")

	for _, pair := range [][2]types.StoreType{
		{types.StoreJKS, types.StoreJKS},
		{types.StorePKCS12, types.StorePKCS12},
		{types.StorePEM, types.StorePEM},
		{types.StorePEM, types.StoreJKS},
	} {
		t.Run(string(pair[0])+"/"+string(pair[1]), func(t *testing.T) {
			cfg, err := security.NewTLSConfig(pki.ClientAuth(pair[0], pair[1]))
			require.NoError(t, err)

			addr, result := serveTLS(t, pki.ServerTLSConfig())
			conn, err := tls.Dial("tcp", addr, cfg)
			require.NoError(t, err)
			defer conn.Close()

			require.NoError(t, <-result)
			assert.True(t, conn.ConnectionState().HandshakeComplete)
		})
	}
}

func TestHandshakeHostVerification(t *testing.T) {
	pki := testutil.NewPKI(t, "scylla-node.invalid")

	cfg, err := security.NewTLSConfig(pki.ClientAuth(types.StorePEM, types.StorePEM), security.WithHostVerification())
	require.NoError(t, err)

	addr, _ := serveTLS(t, pki.ServerTLSConfig())
	conn, err := tls.Dial("tcp", addr, cfg)
	if conn != nil {
		_ = conn.Close()
	}
	require.Error(t, err)
}

func TestHandshakeUntrustedServer(t *testing.T) {
	server := testutil.NewPKI(t)
	client := testutil.NewPKI(t)

	cfg, err := security.NewTLSConfig(client.ClientAuth(types.StorePEM, types.StorePEM))
	require.NoError(t, err)

	addr, _ := serveTLS(t, server.ServerTLSConfig())
	dialer := &net.Dialer{}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, cfg)
	if conn != nil {
		_ = conn.Close()
	}
	require.Error(t, err)
}
