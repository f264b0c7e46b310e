//go:build !windows

package winbridge

import (
	"context"
	"time"
)

// Off Windows there is no window manager, GDI, media-key, or SAPI surface to
// drive; every operation degrades to ErrUnsupported.

func topLevelWindows() ([]WindowInfo, error) {
	return nil, ErrUnsupported
}

func captureWindowImage(uintptr) ([]byte, int, int, error) {
	return nil, 0, 0, ErrUnsupported
}

// CaptureScreen is unavailable off Windows.
func CaptureScreen() ([]byte, int, int, error) {
	return nil, 0, 0, ErrUnsupported
}

// TapVolumeKey is unavailable off Windows.
func TapVolumeKey(VolumeDirection, int) error {
	return ErrUnsupported
}

// ShowDesktop is unavailable off Windows.
func ShowDesktop() error {
	return ErrUnsupported
}

// RecordWAV is unavailable off Windows.
func RecordWAV(context.Context, time.Duration, int, int) ([]byte, error) {
	return nil, ErrUnsupported
}

func speakText(string) error {
	return ErrUnsupported
}
