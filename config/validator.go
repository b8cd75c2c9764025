package config

import (
	"fmt"

	"github.com/wesleyorama2/simplenet/http"
	"github.com/wesleyorama2/simplenet/pkg/jsonschema"
)

// ValidationError represents a collection validation error.
type ValidationError struct {
	// Path is the location of the invalid field, e.g. "requests.items.url"
	Path string

	// Message describes the validation error
	Message string
}

// Error returns the error message.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateCollection checks every request in c and returns all problems found.
// The rules mirror http.BuildRequest so that a valid request can be built
// once its variables are substituted.
func ValidateCollection(c *Collection) []ValidationError {
	var errors []ValidationError

	if len(c.Requests) == 0 {
		errors = append(errors, ValidationError{
			Path:    "requests",
			Message: "at least one request is required",
		})
	}

	for _, name := range RequestNames(c) {
		errors = append(errors, validateRequest(name, c.Requests[name])...)
	}

	return errors
}

func validateRequest(name string, req Request) []ValidationError {
	var errors []ValidationError
	path := "requests." + name

	method, err := http.ParseMethod(req.Method)
	if err != nil {
		errors = append(errors, ValidationError{
			Path:    path + ".method",
			Message: fmt.Sprintf("method must be GET or POST, got %q", req.Method),
		})
	}

	if req.URL == "" {
		errors = append(errors, ValidationError{
			Path:    path + ".url",
			Message: "url is required",
		})
	}

	if err == nil && method == http.MethodPost && len(req.Params) == 0 {
		errors = append(errors, ValidationError{
			Path:    path + ".params",
			Message: "POST requests need at least one parameter",
		})
	}

	for key, expr := range req.Extract {
		if expr == "" {
			errors = append(errors, ValidationError{
				Path:    path + ".extract." + key,
				Message: "JSONPath expression is required",
			})
		}
	}

	if req.Schema != nil {
		source, err := schemaSource(req.Schema)
		if err == nil {
			_, err = jsonschema.Compile(source)
		}
		if err != nil {
			errors = append(errors, ValidationError{
				Path:    path + ".schema",
				Message: err.Error(),
			})
		}
	}

	return errors
}

// ValidateRequest checks that the named request exists and is valid.
func ValidateRequest(c *Collection, name string) error {
	req, ok := c.Requests[name]
	if !ok {
		return fmt.Errorf("request '%s' not found", name)
	}
	if errs := validateRequest(name, req); len(errs) > 0 {
		return errs[0]
	}
	return nil
}
