package dispatch

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ayvor/assistant/core/internal/shared/types"
	"github.com/ayvor/assistant/core/internal/winbridge"
)

// maxRecordingSeconds bounds record_audio so one request cannot hold the
// audio device open indefinitely.
const maxRecordingSeconds = 300

func (d *Dispatcher) captureWindow(params map[string]interface{}) *types.CommandResult {
	query, err := stringParam(params, "application")
	if err != nil {
		return types.Err(err.Error())
	}

	shot, err := d.capturer.CaptureByName(query)
	switch {
	case errors.Is(err, winbridge.ErrUnsupported):
		return unsupportedResult(ActionCaptureWindow, map[string]interface{}{"application": query})
	case errors.Is(err, winbridge.ErrNoWindow):
		return types.Err(fmt.Sprintf("No window found for '%s'", query))
	case err != nil:
		return types.Err(fmt.Sprintf("Window capture failed: %v", err))
	}

	return types.OK(map[string]interface{}{
		"image":       base64.StdEncoding.EncodeToString(shot.Image),
		"windowTitle": shot.Title,
		"processName": shot.ProcessName,
		"width":       shot.Width,
		"height":      shot.Height,
	})
}

func (d *Dispatcher) screenshot() *types.CommandResult {
	image, width, height, err := winbridge.CaptureScreen()
	if errors.Is(err, winbridge.ErrUnsupported) {
		return unsupportedResult(ActionScreenshot, nil)
	}
	if err != nil {
		return types.Err(fmt.Sprintf("Screenshot failed: %v", err))
	}

	name := fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405"))
	path := filepath.Join(d.dirs.Pictures, name)
	if writeErr := os.WriteFile(path, image, 0o644); writeErr != nil {
		// Capture succeeded; a failed save downgrades to a warning and the
		// image still goes back inline.
		d.log.Warn("screenshot save failed", zap.String("path", path), zap.Error(writeErr))
		path = ""
	}

	return types.OK(map[string]interface{}{
		"image":  base64.StdEncoding.EncodeToString(image),
		"path":   path,
		"width":  width,
		"height": height,
	})
}

func (d *Dispatcher) recordAudio(ctx context.Context, params map[string]interface{}) *types.CommandResult {
	seconds, err := intParam(params, "duration")
	if err != nil {
		return types.Err(err.Error())
	}
	if seconds <= 0 {
		return types.Err("Recording duration must be positive")
	}
	if seconds > maxRecordingSeconds {
		return types.Err(fmt.Sprintf("Recording duration must not exceed %d seconds", maxRecordingSeconds))
	}

	sampleRate := optionalInt(params, "sampleRate", 44100)
	channels := optionalInt(params, "channels", 2)

	audio, err := winbridge.RecordWAV(ctx, time.Duration(seconds)*time.Second, sampleRate, channels)
	if errors.Is(err, winbridge.ErrUnsupported) {
		return unsupportedResult(ActionRecordAudio, map[string]interface{}{"duration": seconds})
	}
	if err != nil {
		return types.Err(fmt.Sprintf("Audio recording failed: %v", err))
	}

	return types.OK(map[string]interface{}{
		"audio":      base64.StdEncoding.EncodeToString(audio),
		"format":     "wav",
		"duration":   seconds,
		"sampleRate": sampleRate,
		"channels":   channels,
	})
}
