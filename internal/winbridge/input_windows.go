//go:build windows

package winbridge

import "time"

func pressKey(vk byte) {
	procKeybdEvent.Call(uintptr(vk), 0, 0, 0)
	procKeybdEvent.Call(uintptr(vk), 0, keyeventfKeyUp, 0)
}

// TapVolumeKey injects the media volume key the given number of times. Each
// tap moves the system volume by one OS-defined step, so the resulting level
// is approximate by construction.
func TapVolumeKey(direction VolumeDirection, times int) error {
	var vk byte
	switch direction {
	case VolumeUp:
		vk = vkVolumeUp
	case VolumeDown:
		vk = vkVolumeDown
	case VolumeMute:
		vk = vkVolumeMute
	default:
		return ErrUnsupported
	}

	for i := 0; i < times; i++ {
		pressKey(vk)
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

// ShowDesktop minimizes all windows via the Win+D chord.
func ShowDesktop() error {
	procKeybdEvent.Call(vkLWin, 0, 0, 0)
	procKeybdEvent.Call(vkD, 0, 0, 0)
	procKeybdEvent.Call(vkD, 0, keyeventfKeyUp, 0)
	procKeybdEvent.Call(vkLWin, 0, keyeventfKeyUp, 0)
	return nil
}
