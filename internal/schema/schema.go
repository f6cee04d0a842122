// Package schema converts catalog entities to and from their JSON
// representation. Only allow-listed fields are read or written: unknown keys
// in request bodies are ignored and responses never embed related entities.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ValidationError reports a request body that is missing a required field or
// carries a value of the wrong type.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// object is a decoded request body keyed by field name.
type object map[string]json.RawMessage

func decodeObject(data []byte) (object, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ValidationError{Message: "request body cannot be empty"}
	}
	var obj object
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, &ValidationError{Message: "request body must be a JSON object"}
	}
	if obj == nil {
		return nil, &ValidationError{Message: "request body must be a JSON object"}
	}
	return obj, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// optional decodes key into a pointer; absent or null yields nil.
func optional[T any](obj object, key, kind string) (*T, error) {
	raw, ok := obj[key]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &ValidationError{Field: key, Message: "must be " + kind}
	}
	return &v, nil
}

// required decodes key and fails when it is absent or null.
func required[T any](obj object, key, kind string) (T, error) {
	var zero T
	raw, ok := obj[key]
	if !ok || isNull(raw) {
		return zero, &ValidationError{Field: key, Message: "is required"}
	}
	v, err := optional[T](obj, key, kind)
	if err != nil {
		return zero, err
	}
	return *v, nil
}
