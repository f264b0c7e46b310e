// Package logging provides structured logging using uber/zap.
//
// Two modes are offered: production emits JSON on stdout for machine
// parsing, development emits colored console lines for humans. Both share
// the same field-based API via the embedded zap.Logger.
package logging
