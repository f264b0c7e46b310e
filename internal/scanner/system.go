package scanner

import (
	"time"

	"github.com/ayvor/assistant/core/internal/shared/types"
)

// systemApps are OS-bundled utilities launched by bare command name. They are
// assumed present and carry no path, so no existence check is performed.
var systemApps = []struct {
	id      string
	name    string
	command string
	args    []string
}{
	{"system-notepad", "Notepad", "notepad", nil},
	{"system-calculator", "Calculator", "calc", nil},
	{"system-paint", "Paint", "mspaint", nil},
	{"system-explorer", "File Explorer", "explorer", nil},
	{"system-cmd", "Command Prompt", "cmd", nil},
	{"system-taskmgr", "Task Manager", "taskmgr", nil},
	{"system-control", "Control Panel", "control", nil},
	{"system-snipping", "Snipping Tool", "snippingtool", nil},
}

// SystemApps returns descriptors for the static system-app set.
func SystemApps() []types.AppDescriptor {
	now := time.Now().UTC()
	out := make([]types.AppDescriptor, 0, len(systemApps))
	for _, sa := range systemApps {
		out = append(out, types.AppDescriptor{
			ID:                 sa.id,
			Name:               sa.name,
			ExecutableFileName: sa.command + executableExt,
			Category:           types.CategorySystem,
			Aliases:            buildAliases(sa.name, sa.command+executableExt),
			IsSystemApp:        true,
			LaunchArguments:    sa.args,
			DiscoveredAt:       now,
		})
	}
	return out
}
