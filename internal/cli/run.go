package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wesleyorama2/simplenet/config"
	"github.com/wesleyorama2/simplenet/internal/output"
	"github.com/wesleyorama2/simplenet/internal/stats"
	"github.com/wesleyorama2/simplenet/pkg/jsonpath"
	"github.com/wesleyorama2/simplenet/pkg/jsonschema"
)

func newRunCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run -f FILE [NAME...]",
		Short: "Run requests from a collection file",
		Long: `Run named requests from a YAML or JSON collection file, in the order given
or in name order when no names are given. Values extracted from a response are
available as {{name}} variables to the requests that follow it.`,
		Example: `  simplenet run -f requests.yaml
  simplenet run -f requests.yaml search --var term=shoes --repeat 100 -c 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			varPairs, _ := cmd.Flags().GetStringArray("var")
			repeat, _ := cmd.Flags().GetInt("repeat")
			concurrency, _ := cmd.Flags().GetInt("concurrency")

			if file == "" {
				return fmt.Errorf("collection file is required (-f)")
			}
			if repeat < 1 {
				return fmt.Errorf("--repeat must be at least 1, got %d", repeat)
			}
			if concurrency < 1 {
				return fmt.Errorf("--concurrency must be at least 1, got %d", concurrency)
			}

			vars, err := parseParams(varPairs)
			if err != nil {
				return err
			}

			c, err := config.LoadCollection(file)
			if err != nil {
				return err
			}
			if errs := config.ValidateCollection(c); len(errs) > 0 {
				msgs := make([]string, len(errs))
				for i, e := range errs {
					msgs[i] = "  - " + e.Error()
				}
				return fmt.Errorf("invalid collection %s:\n%s", file, strings.Join(msgs, "\n"))
			}

			names := args
			if len(names) == 0 {
				names = config.RequestNames(c)
			}

			s, err := newSession(cmd, v)
			if err != nil {
				return err
			}
			defer s.close()

			return s.runCollection(c, names, vars, repeat, concurrency)
		},
	}

	cmd.Flags().StringP("file", "f", "", "Collection file")
	cmd.Flags().StringArray("var", []string{}, "Variable as key=value (can be used multiple times)")
	cmd.Flags().Int("repeat", 1, "Send each request this many times and print latency statistics")
	cmd.Flags().IntP("concurrency", "c", 1, "Number of workers sending repeated requests")
	return cmd
}

func (s *session) runCollection(c *config.Collection, names []string, vars map[string]string, repeat, concurrency int) error {
	failed := 0
	for _, name := range names {
		req, err := c.Resolve(name, vars)
		if err != nil {
			return err
		}

		rec, err := s.runRequest(req, repeat, concurrency)
		if err != nil {
			return err
		}
		if rec.Failed() {
			failed++
		}
		vars = config.MergeVariables(vars, rec.Extracted)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, len(names))
	}
	return nil
}

// runRequest sends req repeat times from concurrency workers and prints the
// last outcome, followed by a latency summary when repeat > 1.
func (s *session) runRequest(req *config.ResolvedRequest, repeat, concurrency int) (output.Record, error) {
	if concurrency > repeat {
		concurrency = repeat
	}

	recorder := stats.NewRecorder()
	var (
		mu      sync.Mutex
		last    output.Record
		started atomic.Int64
		wg      sync.WaitGroup
	)

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for started.Add(1) <= int64(repeat) {
				rec, elapsed := s.send(req.Name, req.Method, req.URL, req.Params)
				checkResult(req, &rec)
				recorder.Record(elapsed, !rec.Failed())

				mu.Lock()
				last = rec
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.logger.Debug("request finished",
		zap.String("name", req.Name),
		zap.Int("repeat", repeat),
		zap.Int("concurrency", concurrency),
		zap.Bool("failed", last.Failed()))

	if err := s.print(s.formatter.FormatRecord(last)); err != nil {
		return last, err
	}
	if repeat > 1 {
		if err := s.print(s.formatter.FormatSummary(req.Name, recorder.Summary())); err != nil {
			return last, err
		}
	}
	return last, nil
}

// checkResult applies the request's extraction and schema checks to a
// successful result.
func checkResult(req *config.ResolvedRequest, rec *output.Record) {
	if rec.Error != nil {
		return
	}

	if len(req.Extract) > 0 {
		names := make([]string, 0, len(req.Extract))
		for name := range req.Extract {
			names = append(names, name)
		}
		sort.Strings(names)

		rec.Extracted = make(map[string]string, len(names))
		for _, name := range names {
			value, err := jsonpath.LookupValue(rec.Result, req.Extract[name])
			if err != nil {
				rec.CheckErrors = append(rec.CheckErrors, fmt.Sprintf("extract %s: %v", name, err))
				continue
			}
			rec.Extracted[name] = value
		}
	}

	if req.Schema != nil {
		err := req.Schema.Validate(rec.Result)
		var validationErrs jsonschema.ValidationErrors
		switch {
		case err == nil:
		case errors.As(err, &validationErrs):
			for _, e := range validationErrs {
				rec.CheckErrors = append(rec.CheckErrors, e.Error())
			}
		default:
			rec.CheckErrors = append(rec.CheckErrors, err.Error())
		}
	}
}
