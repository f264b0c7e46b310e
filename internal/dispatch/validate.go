package dispatch

import (
	"fmt"
	"strings"
	"time"

	"github.com/ayvor/assistant/core/internal/shared/types"
)

// timestampLayouts accepted for the envelope timestamp. Producers emit either
// RFC 3339 or a naive ISO 8601 instant without a zone offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Validate checks the envelope against the whitelist and returns every
// violation found, never stopping at the first one. An empty slice means the
// envelope is executable.
func Validate(env *types.CommandEnvelope) []string {
	var violations []string

	action := strings.TrimSpace(env.Action)
	switch {
	case action == "":
		violations = append(violations, "Missing action")
	default:
		if _, ok := allowedActions[action]; !ok {
			violations = append(violations, fmt.Sprintf("Action '%s' is not allowed", action))
		}
	}

	for _, param := range allowedActions[action] {
		if !hasParam(env.Params, param) {
			violations = append(violations, fmt.Sprintf("Missing required parameter: %s", param))
		}
	}

	if strings.TrimSpace(env.UUID) == "" {
		violations = append(violations, "Missing UUID")
	}

	switch ts := strings.TrimSpace(env.Timestamp); {
	case ts == "":
		violations = append(violations, "Missing timestamp")
	case !parseableTimestamp(ts):
		violations = append(violations, fmt.Sprintf("Invalid timestamp format: %s", ts))
	}

	return violations
}

func hasParam(params map[string]interface{}, key string) bool {
	value, ok := params[key]
	if !ok || value == nil {
		return false
	}
	if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

func parseableTimestamp(value string) bool {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
