package http

import "fmt"

// ErrorDomain tags every error produced by the client itself.
// Transport errors keep their own type and are passed through untouched.
const ErrorDomain = "request-build-domain"

// ErrorCode is the code carried by client-generated errors.
const ErrorCode = -1

const (
	msgRequestBuild = "request construction failed"
	msgDeserialize  = "deserialization failed"
)

// Error is a client-generated failure reported through a Completion.
type Error struct {
	Domain  string
	Code    int
	Message string
	// Err is the underlying cause, if any.
	Err error
}

var (
	// ErrRequestBuild matches errors reported when no request could be built.
	ErrRequestBuild = &Error{Domain: ErrorDomain, Code: ErrorCode, Message: msgRequestBuild}
	// ErrDeserialize matches errors reported when the response body is not JSON.
	ErrDeserialize = &Error{Domain: ErrorDomain, Code: ErrorCode, Message: msgDeserialize}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s (%d): %s", e.Domain, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same domain, code and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Domain == t.Domain && e.Code == t.Code && e.Message == t.Message
}

func newBuildError(cause error) *Error {
	return &Error{Domain: ErrorDomain, Code: ErrorCode, Message: msgRequestBuild, Err: cause}
}

func newDeserializeError(cause error) *Error {
	return &Error{Domain: ErrorDomain, Code: ErrorCode, Message: msgDeserialize, Err: cause}
}
