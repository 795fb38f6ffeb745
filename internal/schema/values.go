package schema

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// TypeError reports a form value that could not be coerced to the
// field's declared type. Handlers surface it to the user as a 400.
type TypeError struct {
	Field string
	Value string
	Err   error
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("field %s: cannot convert %q: %v", e.Field, e.Value, e.Err)
}

func (e *TypeError) Unwrap() error { return e.Err }

// Accepted timestamp layouts, tried in order. HTML datetime-local inputs
// produce the second form.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormInt64 coerces a form value to int64.
func FormInt64(form url.Values, field string) (int64, error) {
	raw := form.Get(field)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &TypeError{Field: field, Value: raw, Err: err}
	}
	return n, nil
}

// FormInt coerces a form value to int.
func FormInt(form url.Values, field string) (int, error) {
	n, err := FormInt64(form, field)
	return int(n), err
}

// FormFloat coerces a form value to float64.
func FormFloat(form url.Values, field string) (float64, error) {
	raw := form.Get(field)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &TypeError{Field: field, Value: raw, Err: err}
	}
	return f, nil
}

// FormBool reads a checkbox-style value. Missing means false.
func FormBool(form url.Values, field string) bool {
	switch form.Get(field) {
	case "on", "true", "1":
		return true
	}
	return false
}

// FormTime coerces a form value to a timestamp. An empty value defaults
// to the current time, matching the entity lifecycle for created/end
// dates populated through the admin grid.
func FormTime(form url.Values, field string) (time.Time, error) {
	raw := form.Get(field)
	if raw == "" {
		return time.Now(), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &TypeError{Field: field, Value: raw, Err: fmt.Errorf("unrecognized timestamp")}
}
