package mariner

import (
	"errors"
	"fmt"
)

// Predefined error types for robust error handling
var (
	// Session lifecycle errors
	ErrNotConnected = errors.New("printer is not connected")
	ErrAlreadyOpen  = errors.New("printer connection already open")

	// Exchange errors, each a distinct failure kind the caller can match
	// with errors.Is to decide between retrying and giving up
	ErrNoResponse          = errors.New("no response from printer")
	ErrTruncatedResponse   = errors.New("truncated response from printer")
	ErrUndecodableResponse = errors.New("printer response is not valid UTF-8")
)

// TransportError reports a failure of the underlying byte channel while
// executing a command. It wraps the transport's own error unchanged so
// callers can still reach it with errors.Is/errors.As.
type TransportError struct {
	Op  string // "write", "read" or "flush"
	Cmd string // wire form of the command being exchanged
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s failed for %q: %v", e.Op, e.Cmd, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnexpectedResponseError reports a reply that was received and decoded but
// does not satisfy the grammar the command implies. Firmware-reported domain
// errors ("It's not printing now!", file open failures) surface as this type
// with the original text preserved for diagnostics.
type UnexpectedResponseError struct {
	Cmd      string // wire form of the command that was sent
	Response string // raw reply text, untouched
	Expected string // description of the accepted grammar
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected response to %q: got %q, expected %s", e.Cmd, e.Response, e.Expected)
}

func unexpectedResponse(cmd Command, response, expected string) error {
	return &UnexpectedResponseError{
		Cmd:      cmd.String(),
		Response: response,
		Expected: expected,
	}
}
