// Package gep is the top-level GEP subscription client: it assembles
// the transport, codec, cache, callback-pump, subscription and
// reconnect components into the public Subscriber API.
package gep

import (
	"errors"
	"fmt"

	"github.com/gridedge/gsub/pkg/protoerr"
)

// Sentinel lifecycle errors, returned directly by Subscriber methods.
var (
	ErrAlreadyConnected = errors.New("gep: already connected")
	ErrNotConnected     = errors.New("gep: not connected")
	ErrBindFailed       = errors.New("gep: failed to bind data channel")
)

// ConnectError wraps a failure to establish the TCP command connection.
type ConnectError struct {
	Host string
	Port uint16
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("gep: connect to %s:%d failed: %v", e.Host, e.Port, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// ProtocolError, SequenceError and DecodeError are aliases of the
// wire-level error types raised by the codec packages (pkg/sigcache,
// pkg/compact, pkg/tssc, pkg/dispatch), re-exported here so callers can
// use errors.As against the gep package alone.
type (
	ProtocolError = protoerr.ProtocolError
	SequenceError = protoerr.SequenceError
	DecodeError   = protoerr.DecodeError
)

// NewProtocolError builds a ProtocolError with a formatted detail message.
func NewProtocolError(context, format string, args ...any) *ProtocolError {
	return protoerr.NewProtocolError(context, format, args...)
}

// IsProtocolError reports whether err is (or wraps) a *ProtocolError.
func IsProtocolError(err error) bool { return protoerr.IsProtocolError(err) }

// IsSequenceError reports whether err is (or wraps) a *SequenceError.
func IsSequenceError(err error) bool { return protoerr.IsSequenceError(err) }
