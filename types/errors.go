package types

import "errors"

// Sentinel errors for the four failure kinds and for closed sessions.
var (
	// ErrInvalidArgument indicates malformed or missing configuration input.
	// It is a caller error and is never retried.
	ErrInvalidArgument = errors.New("scyllacdc: invalid argument")

	// ErrSecurityInitialization indicates trust or key store material could
	// not be loaded or interpreted. Retrying with the same material cannot succeed.
	ErrSecurityInitialization = errors.New("scyllacdc: security initialization failed")

	// ErrConnection indicates the driver could not open the cluster or session.
	// The caller may retry the whole bootstrap.
	ErrConnection = errors.New("scyllacdc: connection failed")

	// ErrIllegalState indicates an internal invariant was violated.
	ErrIllegalState = errors.New("scyllacdc: illegal state")

	// ErrSessionClosed indicates an operation was attempted on a closed session.
	ErrSessionClosed = errors.New("scyllacdc: session is closed")
)

// ArgumentError describes an invalid configuration value.
type ArgumentError struct {
	// Field names the offending parameter.
	Field string

	// Reason explains what is wrong with it.
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return "scyllacdc: invalid " + e.Field + ": " + e.Reason
}

// Unwrap returns ErrInvalidArgument for errors.Is compatibility.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// SecurityError wraps a failure to load TLS material.
type SecurityError struct {
	// Store is "truststore", "keystore" or "tls".
	Store string

	// Location is the file the store was read from, if any.
	Location string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *SecurityError) Error() string {
	msg := "scyllacdc: failed to initialize " + e.Store
	if e.Location != "" {
		msg += " " + e.Location
	}

	return msg + ": " + e.Cause.Error()
}

// Unwrap returns the sentinel and the cause for errors.Is/As compatibility.
func (e *SecurityError) Unwrap() []error {
	return []error{ErrSecurityInitialization, e.Cause}
}

// ConnectionError wraps a driver failure while opening the cluster or session.
type ConnectionError struct {
	// Stage is "cluster" or "session".
	Stage string

	// Cause is the underlying driver error.
	Cause error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return "scyllacdc: failed to open " + e.Stage + ": " + e.Cause.Error()
}

// Unwrap returns the sentinel and the cause for errors.Is/As compatibility.
func (e *ConnectionError) Unwrap() []error {
	return []error{ErrConnection, e.Cause}
}
