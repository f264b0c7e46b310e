//go:build windows

package winbridge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
	"unsafe"

	"github.com/google/uuid"
)

func mciSend(command string) error {
	ptr, err := syscall.UTF16PtrFromString(command)
	if err != nil {
		return err
	}
	ret, _, _ := procMciSendStringW.Call(uintptr(unsafe.Pointer(ptr)), 0, 0, 0)
	if ret != 0 {
		return fmt.Errorf("mci command failed (code %d): %s", ret, command)
	}
	return nil
}

// RecordWAV captures microphone input for the given duration and returns the
// WAV bytes. The device is always closed, even when the recording is cut
// short by context cancellation.
func RecordWAV(ctx context.Context, duration time.Duration, sampleRate, channels int) ([]byte, error) {
	alias := "ayvorrec"
	target := filepath.Join(os.TempDir(), "ayvor-rec-"+uuid.NewString()+".wav")
	defer os.Remove(target)

	if err := mciSend("open new type waveaudio alias " + alias); err != nil {
		return nil, err
	}
	defer mciSend("close " + alias)

	format := fmt.Sprintf(
		"set %s time format ms bitspersample 16 channels %d samplespersec %d alignment %d bytespersec %d",
		alias, channels, sampleRate, channels*2, sampleRate*channels*2,
	)
	if err := mciSend(format); err != nil {
		return nil, err
	}
	if err := mciSend("record " + alias); err != nil {
		return nil, err
	}

	select {
	case <-time.After(duration):
	case <-ctx.Done():
	}

	if err := mciSend("stop " + alias); err != nil {
		return nil, err
	}
	if err := mciSend(fmt.Sprintf("save %s %q", alias, target)); err != nil {
		return nil, err
	}

	return os.ReadFile(target)
}
