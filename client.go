package scyllacdc

import "github.com/arloliu/scyllacdc/types"

// Type aliases for convenience - re-export from types package.
type (
	Consistency      = types.Consistency
	ContactPoint     = types.ContactPoint
	AuthMechanism    = types.AuthMechanism
	AuthKind         = types.AuthKind
	NoAuth           = types.NoAuth
	Credentials      = types.Credentials
	ClientCertAuth   = types.ClientCertAuth
	StoreType        = types.StoreType
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
)

// Re-export consistency level constants for convenience.
const (
	LocalOne    = types.LocalOne
	One         = types.One
	Two         = types.Two
	Three       = types.Three
	LocalQuorum = types.LocalQuorum
	Quorum      = types.Quorum
	All         = types.All
)

// Re-export port constants for convenience.
const (
	DefaultPort    = types.DefaultPort
	DefaultTLSPort = types.DefaultTLSPort
)

// Re-export sentinel errors for convenience.
var (
	ErrInvalidArgument        = types.ErrInvalidArgument
	ErrSecurityInitialization = types.ErrSecurityInitialization
	ErrConnection             = types.ErrConnection
	ErrIllegalState           = types.ErrIllegalState
	ErrSessionClosed          = types.ErrSessionClosed
)
