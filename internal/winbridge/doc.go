// Package winbridge is the OS call surface: window location and capture,
// full-display screenshots, volume key injection, desktop control, microphone
// recording, and speech synthesis.
//
// Real implementations are Windows-only; on other platforms every operation
// reports ErrUnsupported so handlers can answer with a placeholder instead of
// failing the whole request pipeline.
package winbridge
