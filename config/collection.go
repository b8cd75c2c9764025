package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/simplenet/http"
	"github.com/wesleyorama2/simplenet/pkg/jsonschema"
)

// Collection is a set of named requests loaded from a YAML or JSON file.
type Collection struct {
	Variables map[string]string  `yaml:"variables,omitempty" json:"variables,omitempty"`
	Requests  map[string]Request `yaml:"requests" json:"requests"`
}

// Request is one request template in a Collection.
type Request struct {
	Method string            `yaml:"method" json:"method"`
	URL    string            `yaml:"url" json:"url"`
	Params map[string]string `yaml:"params,omitempty" json:"params,omitempty"`

	// Extract names JSONPath expressions evaluated against the response.
	Extract map[string]string `yaml:"extract,omitempty" json:"extract,omitempty"`

	// Schema is a JSON Schema for the response, either as source text or as
	// an inline mapping.
	Schema interface{} `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// ResolvedRequest is a Request with variables substituted and its method and
// schema parsed, ready to hand to http.Client.RequestJSON.
type ResolvedRequest struct {
	Name    string
	Method  http.Method
	URL     string
	Params  map[string]string
	Extract map[string]string
	Schema  *jsonschema.Schema
}

// LoadCollection reads a collection file. YAML is a superset of JSON, so
// both formats are accepted.
func LoadCollection(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("collection file not found: %s", path)
		}
		return nil, fmt.Errorf("error reading collection file: %w", err)
	}

	c, err := ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing collection file %s: %w", path, err)
	}
	return c, nil
}

// ParseCollection decodes collection source.
func ParseCollection(data []byte) (*Collection, error) {
	var c Collection
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// RequestNames returns the request names in sorted order.
func RequestNames(c *Collection) []string {
	names := make([]string, 0, len(c.Requests))
	for name := range c.Requests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve substitutes variables into the named request. overrides take
// precedence over the collection's own variables.
func (c *Collection) Resolve(name string, overrides map[string]string) (*ResolvedRequest, error) {
	req, ok := c.Requests[name]
	if !ok {
		return nil, fmt.Errorf("request '%s' not found", name)
	}

	method, err := http.ParseMethod(req.Method)
	if err != nil {
		return nil, fmt.Errorf("request '%s': %w", name, err)
	}

	vars := MergeVariables(c.Variables, overrides)
	resolved := &ResolvedRequest{
		Name:    name,
		Method:  method,
		URL:     ProcessVariables(req.URL, vars),
		Params:  ProcessVariablesInMap(req.Params, vars),
		Extract: req.Extract,
	}

	if req.Schema != nil {
		source, err := schemaSource(req.Schema)
		if err != nil {
			return nil, fmt.Errorf("request '%s': %w", name, err)
		}
		resolved.Schema, err = jsonschema.Compile(source)
		if err != nil {
			return nil, fmt.Errorf("request '%s': %w", name, err)
		}
	}

	return resolved, nil
}

// schemaSource turns the schema field into JSON text.
func schemaSource(schema interface{}) (string, error) {
	if s, ok := schema.(string); ok {
		return s, nil
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("invalid schema: %w", err)
	}
	return string(data), nil
}

// ProcessVariables substitutes {{name}} placeholders.
//
// Example:
//
//	url := config.ProcessVariables("{{host}}/items/{{id}}", map[string]string{
//	    "host": "https://api.example.com",
//	    "id":   "123",
//	})
//	// Result: "https://api.example.com/items/123"
func ProcessVariables(input string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(input, "{{") {
		return input
	}

	pairs := make([]string, 0, 2*len(vars))
	for key, value := range vars {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(input)
}

// ProcessVariablesInMap substitutes placeholders in every value of input.
// A nil map stays nil.
func ProcessVariablesInMap(input map[string]string, vars map[string]string) map[string]string {
	if input == nil {
		return nil
	}
	result := make(map[string]string, len(input))
	for key, value := range input {
		result[key] = ProcessVariables(value, vars)
	}
	return result
}

// MergeVariables merges two variable sets, with override taking precedence.
func MergeVariables(base, override map[string]string) map[string]string {
	result := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		result[key] = value
	}
	for key, value := range override {
		result[key] = value
	}
	return result
}
