package dispatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ayvor/assistant/core/internal/shared/types"
	"github.com/ayvor/assistant/core/internal/winbridge"
)

// Registry is the application-catalog surface the dispatcher needs.
type Registry interface {
	Find(query string) (types.AppDescriptor, bool)
	ListAll() []types.AppDescriptor
	ListByCategory(category types.Category) []types.AppDescriptor
	Statistics() types.RegistryStats
	RescanAndPersist(ctx context.Context) (types.RegistryStats, error)
}

// PathValidator gates every filesystem-touching action.
type PathValidator interface {
	IsSafe(path string) bool
	Resolve(path string) (string, error)
}

// WindowCapturer produces still images of application windows.
type WindowCapturer interface {
	CaptureByName(query string) (*winbridge.CaptureResult, error)
}

// ProcessStarter launches an executable and reports its PID. Injected so
// tests never spawn real processes.
type ProcessStarter interface {
	Start(path string, args []string) (int, error)
}

// Dirs are the user folders actions read from or write to.
type Dirs struct {
	Documents string
	Desktop   string
	Pictures  string
}

// DefaultDirs derives the conventional user folders from the home directory.
func DefaultDirs() Dirs {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Dirs{
		Documents: filepath.Join(home, "Documents"),
		Desktop:   filepath.Join(home, "Desktop"),
		Pictures:  filepath.Join(home, "Pictures"),
	}
}

// Dispatcher validates and executes command envelopes.
type Dispatcher struct {
	log       *zap.Logger
	registry  Registry
	validator PathValidator
	capturer  WindowCapturer
	starter   ProcessStarter
	dirs      Dirs
	startedAt time.Time
}

// New wires a dispatcher. A nil starter falls back to launching real
// processes via os/exec.
func New(log *zap.Logger, reg Registry, validator PathValidator, capturer WindowCapturer, starter ProcessStarter, dirs Dirs) *Dispatcher {
	if starter == nil {
		starter = execStarter{}
	}
	return &Dispatcher{
		log:       log,
		registry:  reg,
		validator: validator,
		capturer:  capturer,
		starter:   starter,
		dirs:      dirs,
		startedAt: time.Now(),
	}
}

// Dispatch runs one envelope end to end and always returns a result; handler
// panics are converted to execution errors at this boundary.
func (d *Dispatcher) Dispatch(ctx context.Context, env *types.CommandEnvelope) (result *types.CommandResult) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("handler panic",
				zap.String("action", env.Action),
				zap.String("uuid", env.UUID),
				zap.Any("panic", r))
			result = types.Err(fmt.Sprintf("Execution failed: %v", r))
		}
	}()

	if violations := Validate(env); len(violations) > 0 {
		d.log.Warn("envelope rejected",
			zap.String("action", env.Action),
			zap.Strings("violations", violations))
		return types.Err(strings.Join(violations, "; "))
	}

	start := time.Now()
	result = d.route(ctx, env)
	d.log.Info("action executed",
		zap.String("action", env.Action),
		zap.String("uuid", env.UUID),
		zap.String("status", result.Status),
		zap.Duration("elapsed", time.Since(start)))
	return result
}

func (d *Dispatcher) route(ctx context.Context, env *types.CommandEnvelope) *types.CommandResult {
	p := env.Params
	switch env.Action {
	case ActionOpenApp:
		return d.openApp(p)
	case ActionRunExe:
		return d.runExe(p)
	case ActionSearchFiles:
		return d.searchFiles(p)
	case ActionCreateFolder:
		return d.createFolder(p)
	case ActionDeleteFolder:
		return d.deleteFolder(p)
	case ActionMoveFile:
		return d.moveFile(p)
	case ActionCopyFile:
		return d.copyFile(p)
	case ActionScanApplications:
		return d.scanApplications(ctx)
	case ActionListApplications:
		return d.listApplications(p)
	case ActionCaptureWindow:
		return d.captureWindow(p)
	case ActionScreenshot:
		return d.screenshot()
	case ActionSetVolume:
		return d.setVolume(p)
	case ActionMute:
		return d.mute()
	case ActionShowDesktop:
		return d.showDesktop()
	case ActionRecordAudio:
		return d.recordAudio(ctx, p)
	case ActionAnswerQuestion:
		return d.answerQuestion(p)
	case ActionSystemStatus:
		return d.systemStatus()
	case ActionAdjustSetting:
		return d.adjustSetting(p)
	}
	// Unreachable after validation; kept so routing stays total.
	return types.Err(fmt.Sprintf("Action '%s' is not allowed", env.Action))
}

// unsupportedResult is the placeholder success for actions the current
// platform or build recognizes but cannot perform.
func unsupportedResult(action string, extra map[string]interface{}) *types.CommandResult {
	data := map[string]interface{}{
		"unsupported": true,
		"message":     fmt.Sprintf("Action '%s' is not supported in this environment", action),
	}
	for k, v := range extra {
		data[k] = v
	}
	return types.OK(data)
}
