// Package security builds client TLS configurations from trust and key stores.
//
// A truststore supplies the certificates used to verify the server; a
// keystore supplies the client certificate chain and its private key for
// mutual TLS. Three on-disk formats are supported:
//
//   - JKS: Java KeyStore files, read with keystore-go
//   - PKCS12 (P12, PFX): PKCS#12 archives, read with go-pkcs12
//   - PEM: certificate and private-key blocks; encrypted PKCS#8 keys are
//     decrypted with the store password
//
// Every failure is reported as a *types.SecurityError, which matches
// types.ErrSecurityInitialization with errors.Is.
//
// # Server verification
//
// By default the server certificate chain is verified against the
// truststore but the server host name is not compared against the
// certificate. Cluster nodes are usually addressed by IP and their
// certificates rarely carry matching SANs. Use WithHostVerification to
// enable full host name verification.
package security
