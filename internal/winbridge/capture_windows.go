//go:build windows

package winbridge

import (
	"bytes"
	"image"
	"image/png"
	"time"
	"unsafe"
)

type rect struct {
	Left, Top, Right, Bottom int32
}

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	Colors [1]uint32
}

// captureWindowImage produces a PNG of the window's current content at its
// current bounds. A minimized window is made renderable first: marked layered
// with zero alpha, restored (logically shown but invisible on screen), given
// a moment to render, then re-minimized with the temporary style stripped on
// every exit path, capture failures included.
func captureWindowImage(hwnd uintptr) ([]byte, int, int, error) {
	if iconic, _, _ := procIsIconic.Call(hwnd); iconic != 0 {
		prevStyle, _, _ := procGetWindowLongW.Call(hwnd, gwlExStyle)
		procSetWindowLongW.Call(hwnd, gwlExStyle, prevStyle|wsExLayered)
		procSetLayeredWindowAttributes.Call(hwnd, 0, 0, lwaAlpha)
		procShowWindow.Call(hwnd, swRestore)
		time.Sleep(150 * time.Millisecond) // allow a render pass

		defer func() {
			procShowWindow.Call(hwnd, swMinimize)
			procSetWindowLongW.Call(hwnd, gwlExStyle, prevStyle)
		}()
	}

	var bounds rect
	procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&bounds)))
	width := int(bounds.Right - bounds.Left)
	height := int(bounds.Bottom - bounds.Top)
	if width <= 0 || height <= 0 {
		return nil, 0, 0, ErrBadDimensions
	}

	windowDC, _, _ := procGetWindowDC.Call(hwnd)
	if windowDC == 0 {
		return nil, 0, 0, ErrCaptureFailed
	}
	defer procReleaseDC.Call(hwnd, windowDC)

	memDC, _, _ := procCreateCompatibleDC.Call(windowDC)
	if memDC == 0 {
		return nil, 0, 0, ErrCaptureFailed
	}
	defer procDeleteDC.Call(memDC)

	bitmap, _, _ := procCreateCompatibleBitmap.Call(windowDC, uintptr(width), uintptr(height))
	if bitmap == 0 {
		return nil, 0, 0, ErrCaptureFailed
	}
	defer procDeleteObject.Call(bitmap)

	oldObj, _, _ := procSelectObject.Call(memDC, bitmap)
	defer procSelectObject.Call(memDC, oldObj)

	// Full-content print first; older windows only answer the legacy mode.
	ok, _, _ := procPrintWindow.Call(hwnd, memDC, pwRenderFullContent)
	if ok == 0 {
		ok, _, _ = procPrintWindow.Call(hwnd, memDC, 0)
	}
	if ok == 0 {
		return nil, 0, 0, ErrCaptureFailed
	}

	png, err := bitmapToPNG(memDC, bitmap, width, height)
	if err != nil {
		return nil, 0, 0, err
	}
	return png, width, height, nil
}

// bitmapToPNG copies a GDI bitmap out as top-down 32-bit pixels and encodes
// PNG in memory.
func bitmapToPNG(dc, bitmap uintptr, width, height int) ([]byte, error) {
	info := bitmapInfo{Header: bitmapInfoHeader{
		Size:        uint32(unsafe.Sizeof(bitmapInfoHeader{})),
		Width:       int32(width),
		Height:      -int32(height), // negative = top-down rows
		Planes:      1,
		BitCount:    32,
		Compression: biRGB,
	}}

	pixels := make([]byte, width*height*4)
	ret, _, _ := procGetDIBits.Call(
		dc, bitmap, 0, uintptr(height),
		uintptr(unsafe.Pointer(&pixels[0])),
		uintptr(unsafe.Pointer(&info)),
		dibRGBColors,
	)
	if ret == 0 {
		return nil, ErrCaptureFailed
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i+3 < len(pixels); i += 4 {
		// GDI hands back BGRA.
		img.Pix[i] = pixels[i+2]
		img.Pix[i+1] = pixels[i+1]
		img.Pix[i+2] = pixels[i]
		img.Pix[i+3] = 0xFF
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
