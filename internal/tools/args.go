package tools

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Args gives typed access to a tool call's JSON arguments. A key that is
// absent or null is "not set", which is how partial updates leave fields
// alone.
type Args struct {
	raw gjson.Result
}

// ParseArgs wraps the decoded parameters the provider handed back.
func ParseArgs(params map[string]any) (Args, error) {
	if params == nil {
		return Args{raw: gjson.Parse("{}")}, nil
	}
	b, err := json.Marshal(params)
	if err != nil {
		return Args{}, fmt.Errorf("encoding arguments: %w", err)
	}
	return Args{raw: gjson.ParseBytes(b)}, nil
}

// ArgsFromJSON is ParseArgs for a raw JSON object.
func ArgsFromJSON(s string) Args {
	return Args{raw: gjson.Parse(s)}
}

func (a Args) get(key string) gjson.Result {
	return a.raw.Get(gjson.Escape(key))
}

// Has reports whether key is present with a non-null value.
func (a Args) Has(key string) bool {
	v := a.get(key)
	return v.Exists() && v.Type != gjson.Null
}

// String returns the value of key when it is set. Non-string values are an
// error rather than being coerced.
func (a Args) String(key string) (string, bool, error) {
	if !a.Has(key) {
		return "", false, nil
	}
	v := a.get(key)
	if v.Type != gjson.String {
		return "", true, fmt.Errorf("%s must be a string", key)
	}
	return v.Str, true, nil
}

// RequiredString returns a set, non-blank string.
func (a Args) RequiredString(key string) (string, error) {
	s, ok, err := a.String(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}
	return s, nil
}

// Int returns key as a whole number, or def when it is not set. Models
// sometimes send numbers as strings, so "10" is accepted too.
func (a Args) Int(key string, def int) (int, error) {
	if !a.Has(key) {
		return def, nil
	}
	v := a.get(key)
	switch v.Type {
	case gjson.Number:
		if v.Num != float64(int64(v.Num)) {
			return 0, fmt.Errorf("%s must be a whole number", key)
		}
		return int(v.Int()), nil
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(v.Str))
		if err != nil {
			return 0, fmt.Errorf("%s must be a whole number", key)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%s must be a whole number", key)
}

// Strings returns key as a list of strings. A single string is treated as
// a one-element list.
func (a Args) Strings(key string) ([]string, error) {
	if !a.Has(key) {
		return nil, nil
	}
	v := a.get(key)
	if v.Type == gjson.String {
		return []string{v.Str}, nil
	}
	if !v.IsArray() {
		return nil, fmt.Errorf("%s must be a list of strings", key)
	}
	var out []string
	for _, item := range v.Array() {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("%s must be a list of strings", key)
		}
		out = append(out, item.Str)
	}
	return out, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseTime accepts RFC 3339 timestamps and plain dates. Values without a
// zone are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or an RFC 3339 timestamp", s)
}

// Time returns key parsed with ParseTime, or nil when it is not set.
func (a Args) Time(key string) (*time.Time, error) {
	s, ok, err := a.String(key)
	if err != nil || !ok {
		return nil, err
	}
	t, err := ParseTime(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &t, nil
}

// RequiredTime is Time for a mandatory field.
func (a Args) RequiredTime(key string) (time.Time, error) {
	t, err := a.Time(key)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, fmt.Errorf("%s is required", key)
	}
	return *t, nil
}
