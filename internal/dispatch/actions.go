package dispatch

import "sort"

// Action names accepted by the dispatcher. Anything else is rejected at
// validation with an explicit "not allowed" violation.
const (
	ActionOpenApp          = "open_app"
	ActionRunExe           = "run_exe"
	ActionSearchFiles      = "search_files"
	ActionCreateFolder     = "create_folder"
	ActionDeleteFolder     = "delete_folder"
	ActionMoveFile         = "move_file"
	ActionCopyFile         = "copy_file"
	ActionScanApplications = "scan_applications"
	ActionListApplications = "list_applications"
	ActionCaptureWindow    = "capture_window"
	ActionScreenshot       = "screenshot"
	ActionSetVolume        = "set_volume"
	ActionMute             = "mute"
	ActionShowDesktop      = "show_desktop"
	ActionRecordAudio      = "record_audio"
	ActionAnswerQuestion   = "answer_question"
	ActionSystemStatus     = "system_status"
	ActionAdjustSetting    = "adjust_setting"
)

// allowedActions maps each whitelisted action to the parameters it cannot
// run without. Optional parameters are handled inside the handlers.
var allowedActions = map[string][]string{
	ActionOpenApp:          {"application"},
	ActionRunExe:           {"path"},
	ActionSearchFiles:      {"query"},
	ActionCreateFolder:     {"path"},
	ActionDeleteFolder:     {"path"},
	ActionMoveFile:         {"source", "destination"},
	ActionCopyFile:         {"source", "destination"},
	ActionScanApplications: {},
	ActionListApplications: {},
	ActionCaptureWindow:    {"application"},
	ActionScreenshot:       {},
	ActionSetVolume:        {"level"},
	ActionMute:             {},
	ActionShowDesktop:      {},
	ActionRecordAudio:      {"duration"},
	ActionAnswerQuestion:   {"answer"},
	ActionSystemStatus:     {},
	ActionAdjustSetting:    {"setting", "value"},
}

// Actions returns the whitelist in sorted order for the service descriptor.
func Actions() []string {
	names := make([]string, 0, len(allowedActions))
	for name := range allowedActions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
