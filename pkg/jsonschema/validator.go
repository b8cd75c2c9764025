// Package jsonschema checks decoded JSON values against a JSON Schema.
package jsonschema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const resourceName = "schema.json"

// ValidationErrors represents a collection of validation errors
type ValidationErrors []error

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, err := range ve {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Schema is a compiled JSON Schema.
type Schema struct {
	compiled *jsonschema.Schema
}

// Compile parses and compiles schema source text.
func Compile(source string) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceName, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	compiled, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &Schema{compiled: compiled}, nil
}

// Validate checks a decoded JSON value (as produced by encoding/json or
// gjson: maps, slices, float64, string, bool, nil). It returns nil when the
// value conforms, or ValidationErrors listing every failing location.
func (s *Schema) Validate(value interface{}) error {
	err := s.compiled.Validate(value)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return flatten(validationErr)
	}
	return ValidationErrors{err}
}

// Validate compiles source and validates value against it in one step.
func Validate(value interface{}, source string) error {
	schema, err := Compile(source)
	if err != nil {
		return err
	}
	return schema.Validate(value)
}

// flatten collects the leaf causes, which carry the useful messages.
func flatten(err *jsonschema.ValidationError) ValidationErrors {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		return ValidationErrors{fmt.Errorf("validation error at %s: %s", location, err.Message)}
	}

	var errs ValidationErrors
	for _, cause := range err.Causes {
		errs = append(errs, flatten(cause)...)
	}
	return errs
}
