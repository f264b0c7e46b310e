package dispatch

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/ayvor/assistant/core/internal/shared/types"
	"github.com/ayvor/assistant/core/internal/winbridge"
)

func (d *Dispatcher) setVolume(params map[string]interface{}) *types.CommandResult {
	level, err := intParam(params, "level")
	if err != nil {
		return types.Err(err.Error())
	}
	if level < 0 || level > 100 {
		return types.Err("Volume level must be between 0 and 100")
	}

	// Absolute level is approximated with media keys: drive the mixer to the
	// floor, then step back up. Each up-key press adds two points.
	if err := winbridge.TapVolumeKey(winbridge.VolumeDown, winbridge.VolumeSteps); err != nil {
		if errors.Is(err, winbridge.ErrUnsupported) {
			return unsupportedResult(ActionSetVolume, map[string]interface{}{"level": level})
		}
		return types.Err(fmt.Sprintf("Failed to adjust volume: %v", err))
	}
	if err := winbridge.TapVolumeKey(winbridge.VolumeUp, level/2); err != nil {
		return types.Err(fmt.Sprintf("Failed to adjust volume: %v", err))
	}

	return types.OK(map[string]interface{}{
		"level":       level,
		"approximate": true,
	})
}

func (d *Dispatcher) mute() *types.CommandResult {
	if err := winbridge.TapVolumeKey(winbridge.VolumeMute, 1); err != nil {
		if errors.Is(err, winbridge.ErrUnsupported) {
			return unsupportedResult(ActionMute, nil)
		}
		return types.Err(fmt.Sprintf("Failed to toggle mute: %v", err))
	}
	return types.OK(map[string]interface{}{"muted": true})
}

func (d *Dispatcher) showDesktop() *types.CommandResult {
	if err := winbridge.ShowDesktop(); err != nil {
		if errors.Is(err, winbridge.ErrUnsupported) {
			return unsupportedResult(ActionShowDesktop, nil)
		}
		return types.Err(fmt.Sprintf("Failed to show desktop: %v", err))
	}
	return types.OK(map[string]interface{}{"shown": true})
}

func (d *Dispatcher) answerQuestion(params map[string]interface{}) *types.CommandResult {
	answer, err := stringParam(params, "answer")
	if err != nil {
		return types.Err(err.Error())
	}

	spoken := winbridge.SanitizeSpeech(answer)
	if spoken == "" {
		return types.Err("Answer contains no speakable text")
	}

	if err := winbridge.Speak(spoken); err != nil {
		if errors.Is(err, winbridge.ErrUnsupported) {
			return unsupportedResult(ActionAnswerQuestion, map[string]interface{}{"spoken": spoken})
		}
		return types.Err(fmt.Sprintf("Speech synthesis failed: %v", err))
	}

	return types.OK(map[string]interface{}{
		"spoken": spoken,
		"length": len(spoken),
	})
}

func (d *Dispatcher) systemStatus() *types.CommandResult {
	hostname, _ := os.Hostname()

	data := map[string]interface{}{
		"machineName":   hostname,
		"os":            runtime.GOOS,
		"architecture":  runtime.GOARCH,
		"processors":    runtime.NumCPU(),
		"uptimeSeconds": int64(time.Since(d.startedAt).Seconds()),
		"actions":       Actions(),
	}

	if info, err := host.Info(); err == nil {
		data["platform"] = info.Platform
		data["platformVersion"] = info.PlatformVersion
		data["hostUptimeSeconds"] = info.Uptime
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		data["memoryTotal"] = vm.Total
		data["memoryUsedPercent"] = vm.UsedPercent
	}

	return types.OK(data)
}

func (d *Dispatcher) adjustSetting(params map[string]interface{}) *types.CommandResult {
	setting, err := stringParam(params, "setting")
	if err != nil {
		return types.Err(err.Error())
	}
	value := fmt.Sprintf("%v", params["value"])

	// Recognized but not implemented yet; reported as a placeholder success
	// so orchestrators can distinguish it from a rejected action.
	return types.OK(map[string]interface{}{
		"unsupported": true,
		"message":     fmt.Sprintf("Adjusting setting '%s' is not implemented yet", setting),
		"setting":     setting,
		"value":       value,
	})
}
