// Package testserver provides an HTTP server with fixed JSON fixtures for tests
// and manual runs.
package testserver

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// Server wraps an httptest.Server and counts the requests it handled.
type Server struct {
	*httptest.Server
	hits atomic.Int64
}

// New starts a fixture server. Callers must Close it.
func New() *Server {
	s := &Server{}
	s.Server = httptest.NewServer(s.Handler())
	return s
}

// Hits returns how many requests the server has received.
func (s *Server) Hits() int64 {
	return s.hits.Load()
}

// Endpoint joins path onto the server address.
func (s *Server) Endpoint(path string) string {
	return s.Server.URL + path
}

// Handler builds the gin engine with all fixture routes:
//
//	/items          echoes method, raw query, raw body, Content-Type and parsed params as JSON
//	/not-json       plain text body
//	/null           the JSON literal null
//	/array          a JSON array
//	/scalar         a bare JSON number
//	/overflow       a JSON number beyond float64 range
//	/status/:code   JSON body with the given status code
//	/slow?delay=D   JSON body after sleeping D (a Go duration)
//	/headers        echoes request headers as JSON
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		s.hits.Add(1)
		c.Next()
	})

	r.Any("/items", echoItems)
	r.Any("/not-json", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte("not json"))
	})
	r.Any("/null", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte("null"))
	})
	r.Any("/array", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(`[1,2,3]`))
	})
	r.Any("/overflow", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(`{"big":1e400}`))
	})
	r.Any("/scalar", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(`42`))
	})
	r.Any("/status/:code", func(c *gin.Context) {
		code, err := strconv.Atoi(c.Param("code"))
		if err != nil || code < 100 || code > 599 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad status code"})
			return
		}
		c.JSON(code, gin.H{"status": code})
	})
	r.Any("/slow", func(c *gin.Context) {
		delay, err := time.ParseDuration(c.DefaultQuery("delay", "100ms"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		select {
		case <-time.After(delay):
		case <-c.Request.Context().Done():
			return
		}
		c.JSON(http.StatusOK, gin.H{"delay": delay.String()})
	})
	r.Any("/headers", func(c *gin.Context) {
		headers := make(map[string]string, len(c.Request.Header))
		for key := range c.Request.Header {
			headers[key] = c.Request.Header.Get(key)
		}
		c.JSON(http.StatusOK, headers)
	})

	return r
}

// echoItems reports exactly what arrived on the wire. The body is parsed with
// Request.ParseForm, so form fields only show up when the request declares a
// form Content-Type.
func echoItems(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	form := c.Request.PostForm

	c.JSON(http.StatusOK, gin.H{
		"method":      c.Request.Method,
		"rawQuery":    c.Request.URL.RawQuery,
		"body":        string(body),
		"contentType": c.ContentType(),
		"query":       flatten(c.Request.URL.Query()),
		"form":        flatten(form),
		"count":       len(c.Request.URL.Query()) + len(form),
		"userAgent":   c.Request.UserAgent(),
	})
}

func flatten(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for key := range values {
		out[key] = values.Get(key)
	}
	return out
}
