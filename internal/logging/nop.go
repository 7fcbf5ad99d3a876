// Package logging holds the logger Bootstrap falls back to when the caller
// does not supply one.
package logging

import "github.com/arloliu/scyllacdc/types"

// NopLogger drops every entry, including Fatal ones.
//
// Bootstrap and Session always hold a non-nil types.Logger; this is what
// they hold when WithLogger is not used or is given nil.
type NopLogger struct{}

var _ types.Logger = NopLogger{}

// NewNopLogger returns the logger installed by DefaultBootstrapConfig.
func NewNopLogger() NopLogger {
	return NopLogger{}
}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// Fatal never exits the process; a library must not terminate its host.
func (NopLogger) Fatal(string, ...any) {}
