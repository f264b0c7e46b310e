//go:build windows

package winbridge

import (
	"syscall"
	"unsafe"

	"github.com/shirou/gopsutil/v3/process"
)

// topLevelWindows enumerates every visible top-level window with a non-empty
// title and resolves the owning process name. Minimized windows keep their
// WS_VISIBLE bit, so they are included.
func topLevelWindows() ([]WindowInfo, error) {
	var windows []WindowInfo
	names := make(map[int32]string)

	cb := syscall.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
			return 1 // continue enumeration
		}
		titleLen, _, _ := procGetWindowTextLengthW.Call(hwnd)
		if titleLen == 0 {
			return 1
		}

		buf := make([]uint16, titleLen+1)
		procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), titleLen+1)
		title := syscall.UTF16ToString(buf)

		var pid uint32
		procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
		if pid == 0 {
			return 1
		}

		name, cached := names[int32(pid)]
		if !cached {
			if p, err := process.NewProcess(int32(pid)); err == nil {
				name, _ = p.Name()
			}
			names[int32(pid)] = name
		}

		windows = append(windows, WindowInfo{
			Handle:      hwnd,
			Title:       title,
			PID:         int32(pid),
			ProcessName: name,
		})
		return 1
	})

	ret, _, err := procEnumWindows.Call(cb, 0)
	if ret == 0 {
		return nil, err
	}
	return windows, nil
}
