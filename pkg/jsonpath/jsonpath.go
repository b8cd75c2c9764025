// Package jsonpath pulls values out of JSON documents using a small subset of
// JSONPath ($.a.b[0].c), evaluated with gjson.
package jsonpath

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Lookup returns the value at path in doc. The string form is the raw JSON for
// objects and arrays and the plain value for scalars, "null" for null.
func Lookup(doc []byte, path string) (string, error) {
	if len(doc) == 0 {
		return "", fmt.Errorf("empty JSON document")
	}
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}

	result := gjson.GetBytes(doc, ToGjson(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// LookupValue is Lookup for an already decoded value, such as the result
// passed to a RequestJSON completion.
func LookupValue(value interface{}, path string) (string, error) {
	doc, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode value: %w", err)
	}
	return Lookup(doc, path)
}

// LookupAll evaluates every named path. Values that were found are returned
// even when other paths fail; the error lists the failures by name.
func LookupAll(doc []byte, paths map[string]string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSONPath expressions provided")
	}

	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(paths))
	var failures []string
	for _, name := range names {
		value, err := Lookup(doc, paths[name])
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		results[name] = value
	}

	if len(failures) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(failures, "; "))
	}
	return results, nil
}

// ToGjson converts a JSONPath expression to gjson syntax:
//
//	$                 -> @this
//	$.users[0].name   -> users.0.name
//	$['name']         -> name
//	$[1].id           -> 1.id
//
// Expressions without a leading $ are assumed to be gjson paths already.
func ToGjson(path string) string {
	if !strings.HasPrefix(path, "$") {
		return path
	}

	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	replacer := strings.NewReplacer(
		"['", ".", "']", "",
		`["`, ".", `"]`, "",
		"[", ".", "]", "",
	)
	path = replacer.Replace(path)

	return strings.TrimPrefix(path, ".")
}
