package dispatch

import (
	"fmt"
	"strconv"
	"strings"
)

// stringParam extracts a non-blank string parameter. Validation guarantees
// required parameters are present, so errors here cover type mismatches only.
func stringParam(params map[string]interface{}, key string) (string, error) {
	value, ok := params[key]
	if !ok || value == nil {
		return "", fmt.Errorf("Missing required parameter: %s", key)
	}
	s, isString := value.(string)
	if !isString {
		return "", fmt.Errorf("Parameter '%s' must be a string", key)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("Missing required parameter: %s", key)
	}
	return s, nil
}

// optionalString returns the parameter if present and non-blank.
func optionalString(params map[string]interface{}, key string) (string, bool) {
	s, isString := params[key].(string)
	s = strings.TrimSpace(s)
	return s, isString && s != ""
}

// intParam accepts JSON numbers, Go ints, and numeric strings; everything a
// loosely typed producer may send for an integer field.
func intParam(params map[string]interface{}, key string) (int, error) {
	value, ok := params[key]
	if !ok || value == nil {
		return 0, fmt.Errorf("Missing required parameter: %s", key)
	}
	switch v := value.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("Parameter '%s' must be an integer", key)
		}
		return n, nil
	}
	return 0, fmt.Errorf("Parameter '%s' must be an integer", key)
}

// optionalInt returns the parameter as an int when present and parseable.
func optionalInt(params map[string]interface{}, key string, fallback int) int {
	if _, ok := params[key]; !ok {
		return fallback
	}
	n, err := intParam(params, key)
	if err != nil {
		return fallback
	}
	return n
}
