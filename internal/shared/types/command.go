package types

// CommandEnvelope is the inbound request produced by the orchestration layer.
type CommandEnvelope struct {
	Action    string                 `json:"action"`
	Params    map[string]interface{} `json:"params"`
	UUID      string                 `json:"uuid"`
	Timestamp string                 `json:"timestamp"`
}

// CommandResult is the outbound response. Exactly one of Result/Error is
// populated; transport status is always 200 and errors are payload-level.
type CommandResult struct {
	Status string                 `json:"status"`
	Result map[string]interface{} `json:"result"`
	Error  *string                `json:"error"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// OK builds a success result.
func OK(data map[string]interface{}) *CommandResult {
	return &CommandResult{Status: StatusOK, Result: data}
}

// Err builds an error result.
func Err(message string) *CommandResult {
	msg := message
	return &CommandResult{Status: StatusError, Error: &msg}
}
