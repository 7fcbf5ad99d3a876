// Package types provides shared types and error definitions for the scyllacdc library.
//
// This is a leaf package with zero scyllacdc imports to prevent import cycles.
// All packages in scyllacdc can safely import this package.
//
// # Types
//
// Consistency is the abstract read consistency of CDC log queries. It is
// resolved to the driver's native level during session bootstrap:
//
//	const (
//	    LocalOne Consistency = iota + 1
//	    One
//	    Two
//	    Three
//	    LocalQuorum
//	    Quorum
//	    All
//	)
//
// AuthMechanism is a tagged union of NoAuth, Credentials and ClientCertAuth.
// Switch on the concrete type or on Kind():
//
//	switch auth := cfg.Auth().(type) {
//	case types.Credentials:
//	    use(auth.User, auth.Password)
//	case types.ClientCertAuth:
//	    loadStores(auth)
//	}
//
// # Errors
//
// Sentinel errors identify the failure kind and are checked with errors.Is:
//
//   - ErrInvalidArgument: malformed builder input (concrete type ArgumentError)
//   - ErrSecurityInitialization: trust/key store failure (concrete type SecurityError)
//   - ErrConnection: cluster or session open failure (concrete type ConnectionError)
//   - ErrIllegalState: internal invariant violation
//   - ErrSessionClosed: query issued on a closed session
package types
