package http

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequest_Get(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		params   map[string]string
		expected string
	}{
		{
			name:     "no params",
			url:      "https://api.example.com/items",
			params:   nil,
			expected: "https://api.example.com/items",
		},
		{
			name:     "empty params",
			url:      "https://api.example.com/items",
			params:   map[string]string{},
			expected: "https://api.example.com/items",
		},
		{
			name:     "single param",
			url:      "https://api.example.com/items",
			params:   map[string]string{"q": "shoes"},
			expected: "https://api.example.com/items?q=shoes",
		},
		{
			name:     "escaped values sorted by key",
			url:      "https://api.example.com/items",
			params:   map[string]string{"b": "c&d", "a": "x y"},
			expected: "https://api.example.com/items?a=x%20y&b=c%26d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := BuildRequest(MethodGet, tt.url, tt.params)
			require.NoError(t, err)
			assert.Equal(t, MethodGet, req.Method)
			assert.Equal(t, tt.expected, req.URL)
			assert.Nil(t, req.Body)
		})
	}
}

func TestBuildRequest_Post(t *testing.T) {
	req, err := BuildRequest(MethodPost, "https://api.example.com/items", map[string]string{
		"a": "x y",
		"b": "c&d",
	})
	require.NoError(t, err)

	assert.Equal(t, MethodPost, req.Method)
	assert.Equal(t, "https://api.example.com/items", req.URL, "POST params must not touch the URL")
	assert.Equal(t, "a=x%20y&b=c%26d", string(req.Body))
}

func TestBuildRequest_Failures(t *testing.T) {
	tests := []struct {
		name   string
		method Method
		url    string
		params map[string]string
		want   error
	}{
		{"empty url GET", MethodGet, "", map[string]string{"q": "x"}, ErrEmptyURL},
		{"empty url POST", MethodPost, "", nil, ErrEmptyURL},
		{"POST without params", MethodPost, "https://api.example.com", nil, ErrMissingBody},
		{"POST with empty params", MethodPost, "https://api.example.com", map[string]string{}, ErrMissingBody},
		{"unknown method", Method(42), "https://api.example.com", nil, ErrUnsupportedMethod},
		{"malformed url", MethodGet, "http://[::1", nil, ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := BuildRequest(tt.method, tt.url, tt.params)
			assert.Nil(t, req)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestQueryString(t *testing.T) {
	t.Run("nil map is absent", func(t *testing.T) {
		query, ok := QueryString(nil)
		assert.False(t, ok)
		assert.Empty(t, query)
	})

	t.Run("empty map is absent", func(t *testing.T) {
		_, ok := QueryString(map[string]string{})
		assert.False(t, ok)
	})

	t.Run("keys are never escaped", func(t *testing.T) {
		query, ok := QueryString(map[string]string{"a b": "c d"})
		require.True(t, ok)
		assert.Equal(t, "a b=c%20d", query)
	})

	t.Run("each pair exactly once", func(t *testing.T) {
		query, ok := QueryString(map[string]string{"a": "x y", "b": "c&d", "c": ""})
		require.True(t, ok)
		pairs := strings.Split(query, "&")
		assert.ElementsMatch(t, []string{"a=x%20y", "b=c%26d", "c="}, pairs)
	})
}

func TestEscapeValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"x y", "x%20y"},
		{"c&d", "c%26d"},
		{"1+1=2", "1%2B1%3D2"},
		{"a/b?c#d", "a%2Fb%3Fc%23d"},
		{"-_.~", "-_.~"},
		{"café", "caf%C3%A9"},
		{"\xff", "%FF"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeValue(tt.in))
		})
	}
}

func TestMethod(t *testing.T) {
	assert.Equal(t, "GET", MethodGet.String())
	assert.Equal(t, "POST", MethodPost.String())
	assert.Equal(t, "Method(7)", Method(7).String())
	assert.False(t, Method(7).Valid())

	for _, in := range []string{"get", "GET", " Get "} {
		m, err := ParseMethod(in)
		require.NoError(t, err)
		assert.Equal(t, MethodGet, m)
	}

	m, err := ParseMethod("post")
	require.NoError(t, err)
	assert.Equal(t, MethodPost, m)

	_, err = ParseMethod("DELETE")
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}
