package launchpad

import (
	"errors"
	"fmt"
)

var (
	// ErrNoOutput is returned when a client is requested from a device without output
	ErrNoOutput = errors.New("no output port configured")
	// ErrNoInput is returned when a listener is set on a device without input
	ErrNoInput = errors.New("no input port configured")
	// ErrClosed is returned by operations on a closed device
	ErrClosed = errors.New("device is closed")
)

// ArgumentError reports an invalid argument. It is returned before anything
// is sent to the device and is never wrapped.
type ArgumentError struct {
	Arg    string
	Value  interface{}
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid %s: %s", e.Arg, e.Reason)
	}
	return fmt.Sprintf("invalid %s %v: %s", e.Arg, e.Value, e.Reason)
}

// IsArgumentError reports whether err is an *ArgumentError
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}

// Error is the error kind for everything that goes wrong while talking to the device:
// transport failures, unclassifiable input and misuse of a device session.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("launchpad: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ProtocolError reports an inbound message that could not be classified
type ProtocolError struct {
	Message []byte
	Reason  string
}

func (e *ProtocolError) Error() string {
	if len(e.Message) == 0 {
		return "unknown event: " + e.Reason
	}
	return fmt.Sprintf("unknown event % X: %s", e.Message, e.Reason)
}
