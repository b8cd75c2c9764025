package http

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// TimingInfo stores timing information for a request.
type TimingInfo struct {
	// DNSLookupTime is the time spent resolving the host
	DNSLookupTime time.Duration

	// TCPConnectTime is the time spent establishing a TCP connection
	TCPConnectTime time.Duration

	// TLSHandshakeTime is the time spent performing the TLS handshake (for HTTPS)
	TLSHandshakeTime time.Duration

	// TimeToFirstByte is the time from connection ready to the first response byte
	TimeToFirstByte time.Duration

	// ContentTransferTime is the time spent reading the response body
	ContentTransferTime time.Duration

	// TotalTime is the total time from request start to completion
	TotalTime time.Duration

	// ConnReused is true when the connection came from the session's idle pool
	ConnReused bool
}

// timingFromTrace maps resty trace phases onto TimingInfo. total is measured by
// the caller since the trace total is skewed when no DNS lookup happened.
func timingFromTrace(ti resty.TraceInfo, total time.Duration) TimingInfo {
	return TimingInfo{
		DNSLookupTime:       ti.DNSLookup,
		TCPConnectTime:      ti.TCPConnTime,
		TLSHandshakeTime:    ti.TLSHandshake,
		TimeToFirstByte:     ti.ServerTime,
		ContentTransferTime: ti.ResponseTime,
		TotalTime:           total,
		ConnReused:          ti.IsConnReused,
	}
}

// Response is a fully read HTTP response.
type Response struct {
	// StatusCode is the HTTP status code (e.g., 200, 404, 500)
	StatusCode int

	// Status is the HTTP status string (e.g., "200 OK")
	Status string

	// Headers contains the response headers
	Headers http.Header

	// Body is the raw response body
	Body []byte

	Timing TimingInfo
}

func newResponse(resp *resty.Response, total time.Duration) *Response {
	return &Response{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Headers:    resp.Header(),
		Body:       resp.Body(),
		Timing:     timingFromTrace(resp.Request.TraceInfo(), total),
	}
}

// String returns the body as a string.
func (r *Response) String() string {
	return string(r.Body)
}

// JSON decodes the body as a single JSON document. See DecodeJSON.
func (r *Response) JSON() (interface{}, error) {
	return DecodeJSON(r.Body)
}

// Get looks up a gjson path (e.g. "items.0.name") in the body.
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// GetHeader returns the value of the specified header
func (r *Response) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// IsSuccess returns true if the response status code is in the 2xx range
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
