package http

import (
	"errors"
	"math"

	"github.com/tidwall/gjson"
)

var (
	errInvalidJSON = errors.New("body is not a valid JSON document")
	errNullJSON    = errors.New("body decodes to null")
	errNumberRange = errors.New("number out of range")
)

// DecodeJSON parses a single JSON document.
// The result is a map[string]interface{}, []interface{}, float64, string or bool.
// A body that is empty, malformed or the literal null is an error, as is a
// number too large for a float64. When an object repeats a key the last value
// wins.
func DecodeJSON(body []byte) (interface{}, error) {
	if !gjson.ValidBytes(body) {
		return nil, errInvalidJSON
	}

	doc := gjson.ParseBytes(body)
	if doc.Type == gjson.Null {
		return nil, errNullJSON
	}

	return decodeValue(doc)
}

func decodeValue(r gjson.Result) (interface{}, error) {
	switch r.Type {
	case gjson.Null:
		return nil, nil
	case gjson.False:
		return false, nil
	case gjson.True:
		return true, nil
	case gjson.Number:
		if math.IsInf(r.Num, 0) || math.IsNaN(r.Num) {
			return nil, errNumberRange
		}
		return r.Num, nil
	case gjson.String:
		return r.Str, nil
	}

	var err error
	if r.IsArray() {
		values := []interface{}{}
		r.ForEach(func(_, item gjson.Result) bool {
			var v interface{}
			if v, err = decodeValue(item); err != nil {
				return false
			}
			values = append(values, v)
			return true
		})
		if err != nil {
			return nil, err
		}
		return values, nil
	}

	object := map[string]interface{}{}
	r.ForEach(func(key, item gjson.Result) bool {
		var v interface{}
		if v, err = decodeValue(item); err != nil {
			return false
		}
		object[key.Str] = v
		return true
	})
	if err != nil {
		return nil, err
	}
	return object, nil
}
