// Package types defines the shared data model: application descriptors held by
// the registry, and the command envelope/result pair exchanged with the
// orchestration layer over HTTP.
package types
