package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/wesleyorama2/simplenet/http"
	"github.com/wesleyorama2/simplenet/internal/output"
)

// parseParams turns repeated key=value flags into a params map. It returns nil
// for no flags so that a POST without params is rejected by the client.
func parseParams(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

type completionResult struct {
	result interface{}
	err    error
}

// send runs one RequestJSON call and waits for its completion.
func (s *session) send(name string, method http.Method, url string, params map[string]string) (output.Record, time.Duration) {
	done := make(chan completionResult, 1)
	start := time.Now()
	s.client.RequestJSON(method, url, params, func(result interface{}, err error) {
		done <- completionResult{result: result, err: err}
	})
	res := <-done
	elapsed := time.Since(start)
	return output.NewRecord(name, method, url, params, res.result, res.err, elapsed), elapsed
}

// sendOne is the body of the get and post commands.
func (s *session) sendOne(method http.Method, url string, pairs []string) error {
	params, err := parseParams(pairs)
	if err != nil {
		return err
	}

	rec, _ := s.send("", method, url, params)
	if err := s.print(s.formatter.FormatRecord(rec)); err != nil {
		return err
	}
	if rec.Failed() {
		return fmt.Errorf("%s %s failed", method, url)
	}
	return nil
}
