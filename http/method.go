package http

import (
	"fmt"
	"strings"
)

// Method is an HTTP method supported by the request builder.
// The set is closed; add a constant here rather than accepting arbitrary strings.
type Method int

const (
	// MethodGet sends parameters in the URL query string.
	MethodGet Method = iota
	// MethodPost sends parameters in the request body.
	MethodPost
)

// String returns the wire name of the method.
func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Valid reports whether m is one of the declared methods.
func (m Method) Valid() bool {
	return m == MethodGet || m == MethodPost
}

// ParseMethod converts a method name such as "get" or "POST" to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GET":
		return MethodGet, nil
	case "POST":
		return MethodPost, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
	}
}
