package winbridge

import "errors"

var (
	// ErrUnsupported marks operations with no implementation on this platform.
	ErrUnsupported = errors.New("operation not supported on this platform")

	// ErrNoWindow means no enumerated window scored positively for the query.
	ErrNoWindow = errors.New("no matching window")

	// ErrBadDimensions means the target window reported non-positive bounds.
	ErrBadDimensions = errors.New("invalid window dimensions")

	// ErrCaptureFailed means both print modes failed for the target window.
	ErrCaptureFailed = errors.New("window capture API failed")
)
