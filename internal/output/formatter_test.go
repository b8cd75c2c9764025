package output

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/simplenet/http"
	"github.com/wesleyorama2/simplenet/internal/stats"
)

func sampleRecord() Record {
	rec := NewRecord("search", http.MethodGet, "https://api.example.com/items?q=shoes",
		map[string]string{"q": "shoes"},
		map[string]interface{}{"count": float64(1)}, nil, 12*time.Millisecond)
	rec.Extracted = map[string]string{"count": "1"}
	return rec
}

func TestNewRecord_Errors(t *testing.T) {
	buildErr := http.ErrRequestBuild
	rec := NewRecord("", http.MethodPost, "https://x", nil, nil, buildErr, 0)
	require.NotNil(t, rec.Error)
	assert.Equal(t, http.ErrorDomain, rec.Error.Domain)
	assert.Equal(t, -1, rec.Error.Code)
	assert.Contains(t, rec.Error.Message, "request construction failed")
	assert.True(t, rec.Failed())

	rec = NewRecord("", http.MethodGet, "https://x", nil, nil, errors.New("dial tcp: refused"), 0)
	assert.Equal(t, &ErrorData{Domain: "transport", Code: 0, Message: "dial tcp: refused"}, rec.Error)

	rec = NewRecord("", http.MethodGet, "https://x", nil, "ok", nil, 0)
	assert.Nil(t, rec.Error)
	assert.False(t, rec.Failed())
	rec.CheckErrors = []string{"bad"}
	assert.True(t, rec.Failed())
}

func TestFormatter_Text(t *testing.T) {
	f := NewFormatter(FormatText, false)

	out, err := f.FormatRecord(sampleRecord())
	require.NoError(t, err)

	assert.Contains(t, out, "▶ search GET https://api.example.com/items?q=shoes\n")
	assert.Contains(t, out, "    q: shoes\n")
	assert.Contains(t, out, "✓ OK (12ms)\n")
	assert.Contains(t, out, `"count": 1`)
	assert.Contains(t, out, "    count = 1\n")
	assert.NotContains(t, out, "\x1b[", "colors must be disabled")
}

func TestFormatter_TextError(t *testing.T) {
	f := NewFormatter(FormatText, false)
	rec := NewRecord("", http.MethodGet, "https://x/not-json", nil, nil, http.ErrDeserialize, 3*time.Millisecond)
	rec.CheckErrors = []string{"never shown for failed requests"}

	out, err := f.FormatRecord(rec)
	require.NoError(t, err)
	assert.Contains(t, out, "✗ request-build-domain (-1): deserialization failed (3ms)")
	assert.NotContains(t, out, "OK")
	assert.NotContains(t, out, "never shown")
}

func TestFormatter_TextCheckErrors(t *testing.T) {
	f := NewFormatter(FormatText, false)
	rec := sampleRecord()
	rec.CheckErrors = []string{"validation error at /: missing properties: 'id'"}

	out, err := f.FormatRecord(rec)
	require.NoError(t, err)
	assert.Contains(t, out, "✗ check: validation error at /: missing properties: 'id'")
}

func TestFormatter_Colors(t *testing.T) {
	f := NewFormatter(FormatText, true)
	out, err := f.FormatRecord(sampleRecord())
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
}

func TestFormatter_JSON(t *testing.T) {
	f := NewFormatter(FormatJSON, true)

	out, err := f.FormatRecord(sampleRecord())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "search", decoded["name"])
	assert.Equal(t, "GET", decoded["method"])
	assert.Equal(t, map[string]interface{}{"count": float64(1)}, decoded["result"])
	assert.Equal(t, float64(12), decoded["elapsedMs"])
	assert.NotContains(t, decoded, "error")
	assert.NotContains(t, out, "\x1b[")
}

func TestFormatter_YAML(t *testing.T) {
	f := NewFormatter(FormatYAML, false)
	rec := NewRecord("", http.MethodPost, "https://x", map[string]string{"a": "b"}, nil, http.ErrRequestBuild, 0)

	out, err := f.FormatRecord(rec)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "---\n"))

	var decoded Record
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "POST", decoded.Method)
	require.NotNil(t, decoded.Error)
	assert.Equal(t, -1, decoded.Error.Code)
}

func TestFormatter_Summary(t *testing.T) {
	r := stats.NewRecorder()
	r.Record(10*time.Millisecond, true)
	r.Record(20*time.Millisecond, false)

	text, err := NewFormatter(FormatText, false).FormatSummary("search", r.Summary())
	require.NoError(t, err)
	assert.Contains(t, text, "search: 2 requests, 1 ok, 1 failed")
	assert.Contains(t, text, "p50 ")

	out, err := NewFormatter(FormatJSON, false).FormatSummary("search", r.Summary())
	require.NoError(t, err)
	var data SummaryData
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	assert.Equal(t, int64(2), data.Count)
	assert.InDelta(t, 10.0, data.MinMs, 0.1)
	assert.InDelta(t, 20.0, data.MaxMs, 0.1)
}

func TestShouldColor(t *testing.T) {
	assert.False(t, ShouldColor(os.Stdout, true))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, ShouldColor(f, false), "regular files are not terminals")
}
