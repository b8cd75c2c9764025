package http

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultTimeout is the session timeout used when WithTimeout is not given.
const DefaultTimeout = 30 * time.Second

// Completion receives the outcome of RequestJSON. It is called exactly once,
// with a decoded JSON value or an error.
type Completion func(result interface{}, err error)

// Client sends requests through one shared session and decodes JSON responses.
// Client is safe for concurrent use by multiple goroutines.
//
// Unless WithDispatcher is given, a Client owns a completion queue backed by a
// goroutine that runs until Close is called. Call Close when the Client is no
// longer needed.
type Client struct {
	session    *resty.Client
	dispatcher Dispatcher
	queue      *Queue
	logger     *zap.Logger
}

// ClientOption is a function that configures a Client.
// Options are applied in order, so WithSession should come before options
// that configure the session.
type ClientOption func(*Client)

// NewClient creates a Client. The session is created here, once, and reused
// for every request the Client sends.
//
// Example:
//
//	client := http.NewClient(
//	    http.WithTimeout(10*time.Second),
//	    http.WithUserAgent("simplenet/0.1.0"),
//	)
//	defer client.Close()
func NewClient(options ...ClientOption) *Client {
	nop := zap.NewNop()
	client := &Client{
		session: resty.New().SetTimeout(DefaultTimeout).SetLogger(nop.Sugar()),
		logger:  nop,
	}

	for _, option := range options {
		option(client)
	}

	if client.dispatcher == nil {
		client.queue = NewQueue()
		client.dispatcher = client.queue
	}

	return client
}

// WithSession replaces the session with an existing resty client.
func WithSession(session *resty.Client) ClientOption {
	return func(c *Client) {
		c.session = session
	}
}

// WithTimeout sets the timeout for every request sent through the session.
// The default timeout is 30 seconds.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.session.SetTimeout(timeout)
	}
}

// WithHeader adds a header to every request sent through the session.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.session.SetHeader(key, value)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) ClientOption {
	return WithHeader("User-Agent", userAgent)
}

// WithDispatcher sets where completions of sent requests run.
// By default the Client owns a Queue, and Close must be called to release it.
func WithDispatcher(d Dispatcher) ClientOption {
	return func(c *Client) {
		c.dispatcher = d
	}
}

// WithLogger sets the logger, for the Client and for the session's own
// messages. The default logger discards everything.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
		c.session.SetLogger(logger.Sugar())
	}
}

// Session returns the shared session.
func (c *Client) Session() *resty.Client {
	return c.session
}

// Close releases the completion queue owned by the Client, after running any
// completions already queued. Completions of requests still in flight run on
// their network goroutine instead.
func (c *Client) Close() {
	if c.queue != nil {
		c.queue.Close()
	}
}

// RequestJSON builds a request, sends it in the background and passes the
// decoded JSON body to completion.
//
// If no request can be built (empty URL, or a POST without params) completion
// is called before RequestJSON returns, on the caller's goroutine, with an
// error matching ErrRequestBuild. Otherwise RequestJSON returns immediately and
// completion later runs on the Client's dispatcher with one of:
//   - (nil, err) where err is the transport error, unchanged
//   - (nil, err) where err matches ErrDeserialize
//   - (value, nil)
//
// The HTTP status code is not inspected.
func (c *Client) RequestJSON(method Method, rawURL string, params map[string]string, completion Completion) {
	if completion == nil {
		completion = func(interface{}, error) {}
	}

	req, err := BuildRequest(method, rawURL, params)
	if err != nil {
		c.logger.Debug("request build failed",
			zap.Stringer("method", method),
			zap.String("url", rawURL),
			zap.Error(err))
		completion(nil, newBuildError(err))
		return
	}

	c.logger.Debug("request submitted",
		zap.Stringer("method", req.Method),
		zap.String("url", req.URL),
		zap.Int("body_bytes", len(req.Body)))

	go func() {
		result, err := c.fetchJSON(context.Background(), req)
		c.dispatcher.Dispatch(func() {
			completion(result, err)
		})
	}()
}

func (c *Client) fetchJSON(ctx context.Context, req *Request) (interface{}, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("url", req.URL), zap.Error(err))
		return nil, err
	}

	value, err := resp.JSON()
	if err != nil {
		c.logger.Debug("response is not JSON",
			zap.String("url", req.URL),
			zap.Int("status", resp.StatusCode),
			zap.Error(err))
		return nil, newDeserializeError(err)
	}

	c.logger.Debug("request completed",
		zap.String("url", req.URL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("total", resp.Timing.TotalTime))
	return value, nil
}

// Do sends req through the session and reads the whole response.
// It blocks until the response is read or ctx is done. Errors from the
// transport are returned as they are.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	r := c.session.R().
		SetContext(ctx).
		EnableTrace()

	if req.Body != nil {
		r.SetHeader("Content-Type", FormContentType).SetBody(req.Body)
	}

	start := time.Now()
	resp, err := r.Execute(req.Method.String(), req.URL)
	if err != nil {
		return nil, err
	}

	return newResponse(resp, time.Since(start)), nil
}
