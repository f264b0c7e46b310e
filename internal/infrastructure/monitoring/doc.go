// Package monitoring collects Prometheus metrics for the HTTP surface and
// the action pipeline. Metrics are registered on a private registry so tests
// can construct collectors repeatedly without duplicate-registration panics.
package monitoring
