// Package output renders request outcomes for the terminal as colored text,
// JSON or YAML.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/simplenet/http"
	"github.com/wesleyorama2/simplenet/internal/stats"
)

// Format is an output format.
type Format string

const (
	// FormatText is the default human-readable text format
	FormatText Format = "text"
	// FormatJSON outputs one JSON document per record
	FormatJSON Format = "json"
	// FormatYAML outputs one YAML document per record
	FormatYAML Format = "yaml"
)

// ErrorData is the serialized form of an error.
type ErrorData struct {
	Domain  string `json:"domain" yaml:"domain"`
	Code    int    `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Record is the outcome of one request.
type Record struct {
	Name        string            `json:"name,omitempty" yaml:"name,omitempty"`
	Method      string            `json:"method" yaml:"method"`
	URL         string            `json:"url" yaml:"url"`
	Params      map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Result      interface{}       `json:"result,omitempty" yaml:"result,omitempty"`
	Error       *ErrorData        `json:"error,omitempty" yaml:"error,omitempty"`
	Extracted   map[string]string `json:"extracted,omitempty" yaml:"extracted,omitempty"`
	CheckErrors []string          `json:"checkErrors,omitempty" yaml:"checkErrors,omitempty"`
	ElapsedMs   int64             `json:"elapsedMs" yaml:"elapsedMs"`
}

// NewRecord builds a Record from a completion's arguments.
func NewRecord(name string, method http.Method, url string, params map[string]string, result interface{}, err error, elapsed time.Duration) Record {
	return Record{
		Name:      name,
		Method:    method.String(),
		URL:       url,
		Params:    params,
		Result:    result,
		Error:     errorData(err),
		ElapsedMs: elapsed.Milliseconds(),
	}
}

// Failed reports whether the request or any check on its result failed.
func (r Record) Failed() bool {
	return r.Error != nil || len(r.CheckErrors) > 0
}

func errorData(err error) *ErrorData {
	if err == nil {
		return nil
	}
	var clientErr *http.Error
	if errors.As(err, &clientErr) {
		return &ErrorData{Domain: clientErr.Domain, Code: clientErr.Code, Message: clientErr.Error()}
	}
	return &ErrorData{Domain: "transport", Code: 0, Message: err.Error()}
}

// SummaryData is the serialized form of a latency summary.
type SummaryData struct {
	Name      string  `json:"name,omitempty" yaml:"name,omitempty"`
	Count     int64   `json:"count" yaml:"count"`
	Successes int64   `json:"successes" yaml:"successes"`
	Failures  int64   `json:"failures" yaml:"failures"`
	MinMs     float64 `json:"minMs" yaml:"minMs"`
	MeanMs    float64 `json:"meanMs" yaml:"meanMs"`
	P50Ms     float64 `json:"p50Ms" yaml:"p50Ms"`
	P90Ms     float64 `json:"p90Ms" yaml:"p90Ms"`
	P99Ms     float64 `json:"p99Ms" yaml:"p99Ms"`
	MaxMs     float64 `json:"maxMs" yaml:"maxMs"`
}

// Formatter renders Records and latency summaries.
type Formatter struct {
	Format Format
	colors *ColorScheme
}

// NewFormatter creates a formatter. color controls ANSI colors in text output.
func NewFormatter(format Format, color bool) *Formatter {
	return &Formatter{
		Format: format,
		colors: NewColorScheme(color),
	}
}

// FormatRecord renders a single request outcome.
func (f *Formatter) FormatRecord(rec Record) (string, error) {
	switch f.Format {
	case FormatJSON:
		return encodeJSON(rec)
	case FormatYAML:
		return encodeYAML(rec)
	default:
		return f.textRecord(rec), nil
	}
}

// FormatSummary renders latency statistics for a repeated request.
func (f *Formatter) FormatSummary(name string, s stats.Summary) (string, error) {
	data := SummaryData{
		Name:      name,
		Count:     s.Count,
		Successes: s.Successes,
		Failures:  s.Failures,
		MinMs:     ms(s.Min),
		MeanMs:    ms(s.Mean),
		P50Ms:     ms(s.P50),
		P90Ms:     ms(s.P90),
		P99Ms:     ms(s.P99),
		MaxMs:     ms(s.Max),
	}

	switch f.Format {
	case FormatJSON:
		return encodeJSON(data)
	case FormatYAML:
		return encodeYAML(data)
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("%s %s: %d requests, %d ok, %d failed\n",
		f.colors.Highlight.Sprint("≡"), name, data.Count, data.Successes, data.Failures))
	buf.WriteString(fmt.Sprintf("  min %.2fms  mean %.2fms  p50 %.2fms  p90 %.2fms  p99 %.2fms  max %.2fms\n",
		data.MinMs, data.MeanMs, data.P50Ms, data.P90Ms, data.P99Ms, data.MaxMs))
	return buf.String(), nil
}

func (f *Formatter) textRecord(rec Record) string {
	var buf strings.Builder

	label := ""
	if rec.Name != "" {
		label = rec.Name + " "
	}
	buf.WriteString(fmt.Sprintf("▶ %s%s %s\n", label, f.colors.Method.Sprint(rec.Method), f.colors.URL.Sprint(rec.URL)))

	if len(rec.Params) > 0 {
		buf.WriteString("  Params:\n")
		for _, key := range sortedKeys(rec.Params) {
			buf.WriteString(fmt.Sprintf("    %s: %s\n", f.colors.Key.Sprint(key), rec.Params[key]))
		}
	}

	if rec.Error != nil {
		buf.WriteString(fmt.Sprintf("%s %s (%dms)\n", f.colors.ErrorIcon(), f.colors.Error.Sprint(rec.Error.Message), rec.ElapsedMs))
		return buf.String()
	}

	buf.WriteString(fmt.Sprintf("%s OK (%dms)\n", f.colors.SuccessIcon(), rec.ElapsedMs))
	if body, err := json.MarshalIndent(rec.Result, "  ", "  "); err == nil {
		buf.WriteString("  ")
		buf.Write(body)
		buf.WriteString("\n")
	}

	if len(rec.Extracted) > 0 {
		buf.WriteString("  Extracted:\n")
		for _, key := range sortedKeys(rec.Extracted) {
			buf.WriteString(fmt.Sprintf("    %s = %s\n", f.colors.Key.Sprint(key), rec.Extracted[key]))
		}
	}

	for _, msg := range rec.CheckErrors {
		buf.WriteString(fmt.Sprintf("  %s check: %s\n", f.colors.ErrorIcon(), f.colors.Error.Sprint(msg)))
	}

	return buf.String()
}

func encodeJSON(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return buf.String(), nil
}

func encodeYAML(v interface{}) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return buf.String(), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
