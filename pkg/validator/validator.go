package validator

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// FieldError is a single schema violation reported back to the client.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Errors []FieldError

func (e Errors) HasErrors() bool {
	return len(e) > 0
}

func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation passed"
	}
	return fmt.Sprintf("%s: %s", e[0].Field, e[0].Message)
}

var uuidV4Regex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// IsUUID reports whether s has the shape of a UUID v4.
func IsUUID(s string) bool {
	return uuidV4Regex.MatchString(s)
}

// UUID validates that value is UUID-v4-shaped, recording a field error otherwise.
func UUID(field, value string, errs *Errors) {
	if value == "" {
		errs.Add(field, fmt.Sprintf("%s is required", field))
		return
	}
	if !IsUUID(value) {
		errs.Add(field, fmt.Sprintf("%s must be a valid UUID", field))
	}
}

// OptionalUUID validates value only when present.
func OptionalUUID(field, value string, errs *Errors) {
	if value == "" {
		return
	}
	if !IsUUID(value) {
		errs.Add(field, fmt.Sprintf("%s must be a valid UUID", field))
	}
}

// Bool coerces a filter value into a bool. Query values arrive as the
// literal strings "true"/"false"; programmatic booleans pass through.
// The second return reports whether a value was present and valid.
func Bool(field string, value any, errs *Errors) (bool, bool) {
	switch v := value.(type) {
	case nil:
		return false, false
	case bool:
		return v, true
	case string:
		if v == "true" {
			return true, true
		}
		if v == "false" {
			return false, true
		}
		errs.Add(field, fmt.Sprintf("%s must be true or false", field))
		return false, false
	default:
		errs.Add(field, fmt.Sprintf("%s must be a boolean", field))
		return false, false
	}
}

// DecodeObject unmarshals a raw payload into dst without mutating the input.
// A missing payload decodes as an empty object.
func DecodeObject(payload json.RawMessage, dst any) error {
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	return json.Unmarshal(payload, dst)
}
