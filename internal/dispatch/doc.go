// Package dispatch validates inbound command envelopes against the action
// whitelist and routes them to OS-action handlers. Per request the flow is
// Received, Validated, Routed, Executed, Responded; no state persists between
// requests. Handler failures become structured error results, and a recover
// boundary turns anything unexpected into an execution error instead of
// letting it propagate.
package dispatch
