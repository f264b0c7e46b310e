package dispatch

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayvor/assistant/core/internal/safety"
	"github.com/ayvor/assistant/core/internal/shared/types"
	"github.com/ayvor/assistant/core/internal/winbridge"
)

type fakeRegistry struct {
	apps      []types.AppDescriptor
	scanCalls int
	scanErr   error
}

func (f *fakeRegistry) Find(query string) (types.AppDescriptor, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, a := range f.apps {
		if strings.ToLower(a.Name) == q || a.HasAlias(q) {
			return a.Clone(), true
		}
	}
	return types.AppDescriptor{}, false
}

func (f *fakeRegistry) ListAll() []types.AppDescriptor { return f.apps }

func (f *fakeRegistry) ListByCategory(c types.Category) []types.AppDescriptor {
	var out []types.AppDescriptor
	for _, a := range f.apps {
		if a.Category == c {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeRegistry) Statistics() types.RegistryStats {
	return types.RegistryStats{Total: len(f.apps)}
}

func (f *fakeRegistry) RescanAndPersist(context.Context) (types.RegistryStats, error) {
	f.scanCalls++
	return types.RegistryStats{Total: len(f.apps)}, f.scanErr
}

type fakeStarter struct {
	pid     int
	err     error
	path    string
	args    []string
	started int
}

func (f *fakeStarter) Start(path string, args []string) (int, error) {
	f.started++
	f.path = path
	f.args = args
	return f.pid, f.err
}

type fakeCapturer struct {
	result *winbridge.CaptureResult
	err    error
}

func (f *fakeCapturer) CaptureByName(string) (*winbridge.CaptureResult, error) {
	return f.result, f.err
}

func sampleApps() []types.AppDescriptor {
	return []types.AppDescriptor{
		{
			ID: "app-1", Name: "Telegram",
			ExecutablePath:     `C:\Users\test\AppData\Roaming\Telegram Desktop\Telegram.exe`,
			ExecutableFileName: "Telegram.exe",
			Category:           types.CategoryCommunication,
			Aliases:            []string{"telegram", "телеграм"},
		},
		{
			ID: "system-calculator", Name: "Calculator",
			ExecutableFileName: "calc.exe",
			Category:           types.CategorySystem,
			Aliases:            []string{"calc", "calculator", "калькулятор"},
			IsSystemApp:        true,
		},
	}
}

func newTestDispatcher(t *testing.T, reg *fakeRegistry, starter *fakeStarter, capturer *fakeCapturer) *Dispatcher {
	t.Helper()
	if reg == nil {
		reg = &fakeRegistry{apps: sampleApps()}
	}
	if starter == nil {
		starter = &fakeStarter{pid: 4242}
	}
	if capturer == nil {
		capturer = &fakeCapturer{err: winbridge.ErrNoWindow}
	}
	base := t.TempDir()
	dirs := Dirs{
		Documents: filepath.Join(base, "Documents"),
		Desktop:   filepath.Join(base, "Desktop"),
		Pictures:  filepath.Join(base, "Pictures"),
	}
	for _, dir := range []string{dirs.Documents, dirs.Desktop, dirs.Pictures} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	return New(zap.NewNop(), reg, safety.New([]string{"/denied"}), capturer, starter, dirs)
}

func envelope(action string, params map[string]interface{}) *types.CommandEnvelope {
	return &types.CommandEnvelope{
		Action:    action,
		Params:    params,
		UUID:      "b7e486a0-9a86-4f3a-9a27-caf8e4c9f3d1",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	env := &types.CommandEnvelope{
		Action:    "format_disk",
		Params:    map[string]interface{}{},
		UUID:      "",
		Timestamp: "yesterday",
	}
	violations := Validate(env)
	assert.Contains(t, violations, "Action 'format_disk' is not allowed")
	assert.Contains(t, violations, "Missing UUID")
	assert.Contains(t, violations, "Invalid timestamp format: yesterday")
	assert.Len(t, violations, 3)
}

func TestValidateMissingParams(t *testing.T) {
	env := envelope(ActionMoveFile, map[string]interface{}{"source": "  "})
	violations := Validate(env)
	assert.Equal(t, []string{
		"Missing required parameter: source",
		"Missing required parameter: destination",
	}, violations)
}

func TestValidateTimestampLayouts(t *testing.T) {
	for _, ts := range []string{
		"2026-08-30T10:15:00Z",
		"2026-08-30T10:15:00+03:00",
		"2026-08-30T10:15:00.123456",
		"2026-08-30T10:15:00",
	} {
		env := envelope(ActionMute, nil)
		env.Timestamp = ts
		assert.Empty(t, Validate(env), "timestamp %s should be accepted", ts)
	}
}

func TestDispatchRejectsInvalidEnvelope(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)
	res := d.Dispatch(context.Background(), &types.CommandEnvelope{Action: "open_app"})

	assert.Equal(t, types.StatusError, res.Status)
	require.NotNil(t, res.Error)
	assert.Contains(t, *res.Error, "Missing required parameter: application")
	assert.Contains(t, *res.Error, "Missing UUID")
	assert.Contains(t, *res.Error, "; ")
}

func TestOpenAppByAlias(t *testing.T) {
	starter := &fakeStarter{pid: 1337}
	d := newTestDispatcher(t, nil, starter, nil)

	res := d.Dispatch(context.Background(), envelope(ActionOpenApp, map[string]interface{}{
		"application": "телеграм",
	}))

	require.Equal(t, types.StatusOK, res.Status)
	assert.Equal(t, "Telegram", res.Result["application"])
	assert.Equal(t, 1337, res.Result["processId"])
	assert.Equal(t, `C:\Users\test\AppData\Roaming\Telegram Desktop\Telegram.exe`, starter.path)
}

func TestOpenAppSystemAppUsesBareCommand(t *testing.T) {
	starter := &fakeStarter{pid: 7}
	d := newTestDispatcher(t, nil, starter, nil)

	res := d.Dispatch(context.Background(), envelope(ActionOpenApp, map[string]interface{}{
		"application": "calculator",
	}))

	require.Equal(t, types.StatusOK, res.Status)
	assert.Equal(t, "calc", starter.path)
}

func TestOpenAppNotFound(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)
	res := d.Dispatch(context.Background(), envelope(ActionOpenApp, map[string]interface{}{
		"application": "nonexistent",
	}))

	require.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, *res.Error, "Application 'nonexistent' not found")
	assert.Contains(t, *res.Error, "scan_applications")
}

func TestRunExeGatedByDenyList(t *testing.T) {
	d := newTestDispatcher(t, nil, &fakeStarter{pid: 1}, nil)
	res := d.Dispatch(context.Background(), envelope(ActionRunExe, map[string]interface{}{
		"path": "/denied/tool.exe",
	}))

	require.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, *res.Error, "is not allowed")
}

func TestRunExeRejectsNonExecutable(t *testing.T) {
	d := newTestDispatcher(t, nil, &fakeStarter{pid: 1}, nil)
	res := d.Dispatch(context.Background(), envelope(ActionRunExe, map[string]interface{}{
		"path": "/home/test/notes.txt",
	}))

	require.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, *res.Error, "is not an executable file")
}

func TestRunExeMissingFile(t *testing.T) {
	d := newTestDispatcher(t, nil, &fakeStarter{pid: 1}, nil)
	res := d.Dispatch(context.Background(), envelope(ActionRunExe, map[string]interface{}{
		"path": filepath.Join(t.TempDir(), "ghost.exe"),
	}))

	require.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, *res.Error, "Executable not found")
}

func TestSearchFilesTopLevelOnly(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)
	require.NoError(t, os.WriteFile(filepath.Join(d.dirs.Documents, "report.docx"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(d.dirs.Desktop, "Report-final.pdf"), []byte("x"), 0o644))
	nested := filepath.Join(d.dirs.Documents, "archive")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "report-old.docx"), []byte("x"), 0o644))

	res := d.Dispatch(context.Background(), envelope(ActionSearchFiles, map[string]interface{}{
		"query": "report",
	}))

	require.Equal(t, types.StatusOK, res.Status)
	assert.Equal(t, 2, res.Result["count"])
	files := res.Result["files"].([]map[string]interface{})
	names := []string{files[0]["name"].(string), files[1]["name"].(string)}
	assert.ElementsMatch(t, []string{"report.docx", "Report-final.pdf"}, names)
}

func TestSearchFilesGlobPattern(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)
	require.NoError(t, os.WriteFile(filepath.Join(d.dirs.Documents, "photo.png"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(d.dirs.Documents, "photo.jpg"), []byte("x"), 0o644))

	res := d.Dispatch(context.Background(), envelope(ActionSearchFiles, map[string]interface{}{
		"query": "*.png",
	}))

	require.Equal(t, types.StatusOK, res.Status)
	assert.Equal(t, 1, res.Result["count"])
}

func TestCreateFolderIdempotent(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)
	target := filepath.Join(d.dirs.Documents, "projects")

	first := d.Dispatch(context.Background(), envelope(ActionCreateFolder, map[string]interface{}{"path": target}))
	require.Equal(t, types.StatusOK, first.Status)
	assert.Equal(t, false, first.Result["alreadyExisted"])

	second := d.Dispatch(context.Background(), envelope(ActionCreateFolder, map[string]interface{}{"path": target}))
	require.Equal(t, types.StatusOK, second.Status)
	assert.Equal(t, true, second.Result["alreadyExisted"])
}

func TestDeleteFolderMustExist(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)
	target := filepath.Join(d.dirs.Documents, "gone")

	res := d.Dispatch(context.Background(), envelope(ActionDeleteFolder, map[string]interface{}{"path": target}))
	require.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, *res.Error, "Folder not found")

	require.NoError(t, os.MkdirAll(filepath.Join(target, "inner"), 0o755))
	res = d.Dispatch(context.Background(), envelope(ActionDeleteFolder, map[string]interface{}{"path": target}))
	require.Equal(t, types.StatusOK, res.Status)
	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))
}

func TestMoveFileRefusesOverwrite(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)
	src := filepath.Join(d.dirs.Documents, "a.txt")
	dst := filepath.Join(d.dirs.Desktop, "b.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("existing"), 0o644))

	res := d.Dispatch(context.Background(), envelope(ActionMoveFile, map[string]interface{}{
		"source": src, "destination": dst,
	}))

	require.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, *res.Error, "Destination already exists")
	// Source untouched after the refusal.
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestMoveFileHappyPath(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)
	src := filepath.Join(d.dirs.Documents, "a.txt")
	dst := filepath.Join(d.dirs.Desktop, "moved.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	res := d.Dispatch(context.Background(), envelope(ActionMoveFile, map[string]interface{}{
		"source": src, "destination": dst,
	}))

	require.Equal(t, types.StatusOK, res.Status)
	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestCopyFilePreservesSource(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)
	src := filepath.Join(d.dirs.Documents, "a.txt")
	dst := filepath.Join(d.dirs.Documents, "copy.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	res := d.Dispatch(context.Background(), envelope(ActionCopyFile, map[string]interface{}{
		"source": src, "destination": dst,
	}))

	require.Equal(t, types.StatusOK, res.Status)
	for _, p := range []string{src, dst} {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	}
}

func TestTransferGatesBothEndpoints(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)
	src := filepath.Join(d.dirs.Documents, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	res := d.Dispatch(context.Background(), envelope(ActionCopyFile, map[string]interface{}{
		"source": src, "destination": "/denied/a.txt",
	}))

	require.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, *res.Error, "is not allowed")
}

func TestScanApplications(t *testing.T) {
	reg := &fakeRegistry{apps: sampleApps()}
	d := newTestDispatcher(t, reg, nil, nil)

	res := d.Dispatch(context.Background(), envelope(ActionScanApplications, nil))

	require.Equal(t, types.StatusOK, res.Status)
	assert.Equal(t, 1, reg.scanCalls)
	stats := res.Result["statistics"].(types.RegistryStats)
	assert.Equal(t, 2, stats.Total)
}

func TestListApplicationsByCategory(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)

	res := d.Dispatch(context.Background(), envelope(ActionListApplications, map[string]interface{}{
		"category": "communication",
	}))

	require.Equal(t, types.StatusOK, res.Status)
	assert.Equal(t, 1, res.Result["count"])

	res = d.Dispatch(context.Background(), envelope(ActionListApplications, map[string]interface{}{
		"category": "Kitchenware",
	}))
	require.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, *res.Error, "Unknown category")
}

func TestCaptureWindowEncodesImage(t *testing.T) {
	capturer := &fakeCapturer{result: &winbridge.CaptureResult{
		Image:       []byte{0x89, 0x50, 0x4e, 0x47},
		Title:       "Telegram",
		ProcessName: "Telegram.exe",
		Width:       800,
		Height:      600,
	}}
	d := newTestDispatcher(t, nil, nil, capturer)

	res := d.Dispatch(context.Background(), envelope(ActionCaptureWindow, map[string]interface{}{
		"application": "telegram",
	}))

	require.Equal(t, types.StatusOK, res.Status)
	decoded, err := base64.StdEncoding.DecodeString(res.Result["image"].(string))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, decoded)
	assert.Equal(t, "Telegram", res.Result["windowTitle"])
	assert.Equal(t, "Telegram.exe", res.Result["processName"])
	assert.Equal(t, 800, res.Result["width"])
	assert.Equal(t, 600, res.Result["height"])
}

func TestCaptureWindowNoMatch(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, &fakeCapturer{err: winbridge.ErrNoWindow})

	res := d.Dispatch(context.Background(), envelope(ActionCaptureWindow, map[string]interface{}{
		"application": "telegram",
	}))

	require.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, *res.Error, "No window found for 'telegram'")
}

func TestCaptureWindowUnsupportedPlatform(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, &fakeCapturer{err: winbridge.ErrUnsupported})

	res := d.Dispatch(context.Background(), envelope(ActionCaptureWindow, map[string]interface{}{
		"application": "telegram",
	}))

	require.Equal(t, types.StatusOK, res.Status)
	assert.Equal(t, true, res.Result["unsupported"])
}

func TestRecordAudioDurationCap(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)

	res := d.Dispatch(context.Background(), envelope(ActionRecordAudio, map[string]interface{}{
		"duration": 301,
	}))
	require.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, *res.Error, "must not exceed 300 seconds")

	res = d.Dispatch(context.Background(), envelope(ActionRecordAudio, map[string]interface{}{
		"duration": 0,
	}))
	require.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, *res.Error, "must be positive")
}

func TestSetVolumeRange(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)

	for _, level := range []int{-1, 101} {
		res := d.Dispatch(context.Background(), envelope(ActionSetVolume, map[string]interface{}{
			"level": level,
		}))
		require.Equal(t, types.StatusError, res.Status)
		assert.Contains(t, *res.Error, "between 0 and 100")
	}
}

func TestAnswerQuestionSanitizes(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)

	res := d.Dispatch(context.Background(), envelope(ActionAnswerQuestion, map[string]interface{}{
		"answer": "\"$`\\",
	}))
	require.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, *res.Error, "no speakable text")
}

func TestSystemStatusAlwaysAvailable(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)

	res := d.Dispatch(context.Background(), envelope(ActionSystemStatus, nil))

	require.Equal(t, types.StatusOK, res.Status)
	assert.NotEmpty(t, res.Result["machineName"])
	assert.Positive(t, res.Result["processors"])
	assert.Len(t, res.Result["actions"], len(allowedActions))
}

func TestAdjustSettingPlaceholder(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)

	res := d.Dispatch(context.Background(), envelope(ActionAdjustSetting, map[string]interface{}{
		"setting": "brightness", "value": 80,
	}))

	require.Equal(t, types.StatusOK, res.Status)
	assert.Equal(t, true, res.Result["unsupported"])
	assert.Equal(t, "brightness", res.Result["setting"])
}

func TestDispatchRecoversFromPanic(t *testing.T) {
	d := newTestDispatcher(t, nil, nil, nil)
	d.registry = nil // forces a nil dereference inside the handler

	res := d.Dispatch(context.Background(), envelope(ActionListApplications, nil))

	require.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, *res.Error, "Execution failed:")
}

func TestActionsSortedAndComplete(t *testing.T) {
	names := Actions()
	assert.Len(t, names, 18)
	assert.IsType(t, []string{}, names)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
	assert.Contains(t, names, ActionOpenApp)
	assert.Contains(t, names, ActionAdjustSetting)
}
