package winbridge

// CaptureResult is a still image of one window, PNG-encoded in memory.
type CaptureResult struct {
	Image       []byte
	Title       string
	ProcessName string
	Width       int
	Height      int
}

// Capturer resolves a free-text application reference to a window and
// produces a still image of it, even for minimized or background windows.
type Capturer struct {
	locator *Locator
}

// NewCapturer creates a capturer backed by the given name resolver.
func NewCapturer(resolver NameResolver) *Capturer {
	return &Capturer{locator: NewLocator(resolver)}
}

// CaptureByName locates the best-matching window for query and captures it.
// Distinct failures stay distinct: ErrNoWindow, ErrBadDimensions, and
// ErrCaptureFailed are all reported verbatim to the caller.
func (c *Capturer) CaptureByName(query string) (*CaptureResult, error) {
	win, err := c.locator.Locate(query)
	if err != nil {
		return nil, err
	}

	img, width, height, err := captureWindowImage(win.Handle)
	if err != nil {
		return nil, err
	}

	return &CaptureResult{
		Image:       img,
		Title:       win.Title,
		ProcessName: win.ProcessName,
		Width:       width,
		Height:      height,
	}, nil
}
