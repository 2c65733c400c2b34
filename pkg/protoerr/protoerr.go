// Package protoerr holds the wire-level error types shared by the codec
// and transport packages (sigcache, compact, tssc, dispatch). It exists
// as its own leaf package, separate from pkg/gep, so that those packages
// can report protocol-level failures without importing the top-level
// client package that in turn imports them.
package protoerr

import (
	"errors"
	"fmt"
)

// ProtocolError represents a malformed or unexpected wire-level
// structure: an unknown response code, a malformed signal index cache
// payload, a TSSC version mismatch. It never terminates the connection
// by itself.
type ProtocolError struct {
	Context string
	Detail  string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("gep: protocol error in %s: %s", e.Context, e.Detail)
}

// NewProtocolError builds a ProtocolError with a formatted detail message.
func NewProtocolError(context, format string, args ...any) *ProtocolError {
	return &ProtocolError{Context: context, Detail: fmt.Sprintf(format, args...)}
}

// SequenceError reports a TSSC sequence-number mismatch. The decoder
// drops packets until the next reset; it never terminates the connection.
type SequenceError struct {
	Expected uint16
	Received uint16
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("gep: TSSC sequence mismatch: expected %d, received %d", e.Expected, e.Received)
}

// DecodeError reports a per-measurement parse failure. It stops decoding
// the current packet only.
type DecodeError struct {
	Context string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gep: decode error in %s: %v", e.Context, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsProtocolError reports whether err is (or wraps) a *ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// IsSequenceError reports whether err is (or wraps) a *SequenceError.
func IsSequenceError(err error) bool {
	var se *SequenceError
	return errors.As(err, &se)
}
