// Package http sends small GET and POST requests and hands back the decoded
// JSON response through a single completion callback.
//
// This package provides:
//   - BuildRequest, which turns a method, a URL and a flat parameter map into a Request
//   - A Client holding one shared session, created when the Client is built
//   - RequestJSON, which sends a request in the background and calls back exactly once
//   - Dispatchers that decide which goroutine runs the completion
//
// Basic Usage:
//
//	client := http.NewClient(http.WithTimeout(10 * time.Second))
//	defer client.Close()
//
//	client.RequestJSON(http.MethodGet, "https://api.example.com/items",
//	    map[string]string{"q": "shoes"},
//	    func(result interface{}, err error) {
//	        if err != nil {
//	            log.Println(err)
//	            return
//	        }
//	        fmt.Println(result)
//	    })
//
// Parameters:
//
// For GET the parameters are appended to the URL as "?k1=v1&k2=v2". For POST
// they are sent as the body in the same form. Values are percent-escaped,
// keys are not. A POST without parameters is never sent.
//
// Errors:
//
// Errors produced by the client itself are *Error values with Domain
// ErrorDomain and Code -1, and can be matched with errors.Is against
// ErrRequestBuild or ErrDeserialize. Transport errors are passed through
// unchanged.
//
// Completion Goroutines:
//
// When the request cannot be built, the completion runs synchronously on the
// caller's goroutine. Every other outcome is delivered through the Client's
// Dispatcher, which by default is a Queue running completions one at a time.
//
// Thread Safety:
//
// Client is safe for concurrent use. Completions of concurrent calls may
// arrive in any order.
package http
