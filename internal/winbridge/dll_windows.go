//go:build windows

package winbridge

import "golang.org/x/sys/windows"

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")
	winmm  = windows.NewLazySystemDLL("winmm.dll")

	procEnumWindows                = user32.NewProc("EnumWindows")
	procIsWindowVisible            = user32.NewProc("IsWindowVisible")
	procGetWindowTextW             = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW       = user32.NewProc("GetWindowTextLengthW")
	procGetWindowThreadProcessId   = user32.NewProc("GetWindowThreadProcessId")
	procGetWindow                  = user32.NewProc("GetWindow")
	procIsIconic                   = user32.NewProc("IsIconic")
	procGetWindowLongW             = user32.NewProc("GetWindowLongW")
	procSetWindowLongW             = user32.NewProc("SetWindowLongW")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procShowWindow                 = user32.NewProc("ShowWindow")
	procGetWindowRect              = user32.NewProc("GetWindowRect")
	procGetWindowDC                = user32.NewProc("GetWindowDC")
	procGetDC                      = user32.NewProc("GetDC")
	procReleaseDC                  = user32.NewProc("ReleaseDC")
	procPrintWindow                = user32.NewProc("PrintWindow")
	procGetSystemMetrics           = user32.NewProc("GetSystemMetrics")
	procKeybdEvent                 = user32.NewProc("keybd_event")

	procCreateCompatibleDC     = gdi32.NewProc("CreateCompatibleDC")
	procCreateCompatibleBitmap = gdi32.NewProc("CreateCompatibleBitmap")
	procSelectObject           = gdi32.NewProc("SelectObject")
	procDeleteObject           = gdi32.NewProc("DeleteObject")
	procDeleteDC               = gdi32.NewProc("DeleteDC")
	procGetDIBits              = gdi32.NewProc("GetDIBits")
	procBitBlt                 = gdi32.NewProc("BitBlt")

	procMciSendStringW = winmm.NewProc("mciSendStringW")
)

const (
	gwlExStyle          = ^uintptr(19) // -20 as uintptr
	wsExLayered         = 0x00080000
	lwaAlpha            = 0x2
	swMinimize          = 6
	swRestore           = 9
	pwRenderFullContent = 0x2
	srcCopy             = 0x00CC0020
	captureBlt          = 0x40000000
	dibRGBColors        = 0
	biRGB               = 0
	smCxScreen          = 0
	smCyScreen          = 1
	keyeventfKeyUp      = 0x2

	vkVolumeMute = 0xAD
	vkVolumeDown = 0xAE
	vkVolumeUp   = 0xAF
	vkLWin       = 0x5B
	vkD          = 0x44
)
