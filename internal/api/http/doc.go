// Package http exposes the bridge's REST surface: action execution, the
// service descriptor, and health/status endpoints. Action outcomes travel in
// the response payload; the transport answers 200 even for failed actions so
// callers only parse one shape.
package http
