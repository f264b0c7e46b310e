//go:build windows

package winbridge

// CaptureScreen grabs the full primary display and returns it PNG-encoded
// with its dimensions.
func CaptureScreen() ([]byte, int, int, error) {
	width, _, _ := procGetSystemMetrics.Call(smCxScreen)
	height, _, _ := procGetSystemMetrics.Call(smCyScreen)
	if width == 0 || height == 0 {
		return nil, 0, 0, ErrBadDimensions
	}

	screenDC, _, _ := procGetDC.Call(0)
	if screenDC == 0 {
		return nil, 0, 0, ErrCaptureFailed
	}
	defer procReleaseDC.Call(0, screenDC)

	memDC, _, _ := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		return nil, 0, 0, ErrCaptureFailed
	}
	defer procDeleteDC.Call(memDC)

	bitmap, _, _ := procCreateCompatibleBitmap.Call(screenDC, width, height)
	if bitmap == 0 {
		return nil, 0, 0, ErrCaptureFailed
	}
	defer procDeleteObject.Call(bitmap)

	oldObj, _, _ := procSelectObject.Call(memDC, bitmap)
	defer procSelectObject.Call(memDC, oldObj)

	ok, _, _ := procBitBlt.Call(memDC, 0, 0, width, height, screenDC, 0, 0, srcCopy|captureBlt)
	if ok == 0 {
		return nil, 0, 0, ErrCaptureFailed
	}

	img, err := bitmapToPNG(memDC, bitmap, int(width), int(height))
	if err != nil {
		return nil, 0, 0, err
	}
	return img, int(width), int(height), nil
}
