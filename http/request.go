package http

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

var (
	// ErrEmptyURL is returned by BuildRequest when no URL is given.
	ErrEmptyURL = errors.New("empty url")
	// ErrMissingBody is returned by BuildRequest for a non-GET request without parameters.
	ErrMissingBody = errors.New("no parameters to send in request body")
	// ErrUnsupportedMethod is returned for a Method outside the declared set.
	ErrUnsupportedMethod = errors.New("unsupported method")
	// ErrInvalidURL is returned when the final request URL cannot be parsed.
	ErrInvalidURL = errors.New("invalid url")
)

// FormContentType is sent with every request body. Bodies are always a
// query string.
const FormContentType = "application/x-www-form-urlencoded"

// Request is a request ready to be sent by a Client.
// A Request is built per call and should not be reused across calls.
type Request struct {
	Method Method
	// URL is the target, including the query string for GET requests.
	URL string
	// Body holds the encoded parameters for non-GET requests. No Content-Type is implied.
	Body []byte
}

// BuildRequest constructs a Request from a method, a URL and optional parameters.
//
// For GET the parameters are appended to rawURL as a query string. For POST they
// become the body, and a POST without parameters cannot be built.
//
// Example:
//
//	req, err := http.BuildRequest(http.MethodGet, "https://api.example.com/items",
//	    map[string]string{"q": "shoes"})
//	// req.URL == "https://api.example.com/items?q=shoes"
func BuildRequest(method Method, rawURL string, params map[string]string) (*Request, error) {
	if rawURL == "" {
		return nil, ErrEmptyURL
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	req := &Request{Method: method, URL: rawURL}
	query, ok := QueryString(params)

	if method == MethodGet {
		if ok {
			req.URL = rawURL + "?" + query
		}
	} else {
		if !ok {
			return nil, ErrMissingBody
		}
		req.Body = []byte(query)
	}

	if _, err := url.Parse(req.URL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	return req, nil
}

// QueryString renders params as key=value pairs joined by "&".
// Values are percent-escaped, keys are written as given. Pairs are ordered by key.
// The boolean is false when params is nil or empty, in which case there is no query.
func QueryString(params map[string]string) (string, bool) {
	if len(params) == 0 {
		return "", false
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+EscapeValue(params[key]))
	}

	return strings.Join(pairs, "&"), true
}

// EscapeValue percent-escapes every byte outside the RFC 3986 unreserved set.
// Spaces become %20 rather than "+".
func EscapeValue(value string) string {
	// QueryEscape already turns a literal '+' into %2B, so any '+' left is a space.
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
