package dispatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ayvor/assistant/core/internal/shared/types"
)

func (d *Dispatcher) openApp(params map[string]interface{}) *types.CommandResult {
	query, err := stringParam(params, "application")
	if err != nil {
		return types.Err(err.Error())
	}

	app, found := d.registry.Find(query)
	if !found {
		return types.Err(fmt.Sprintf("Application '%s' not found. Try running scan_applications first.", query))
	}

	command := app.ExecutablePath
	if command == "" {
		// System utilities resolve through PATH by executable name.
		command = strings.TrimSuffix(app.ExecutableFileName, filepath.Ext(app.ExecutableFileName))
	}
	if command == "" {
		return types.Err(fmt.Sprintf("Application '%s' has no launchable executable", app.Name))
	}

	pid, err := d.starter.Start(command, app.LaunchArguments)
	if err != nil {
		d.log.Warn("launch failed", zap.String("application", app.Name), zap.Error(err))
		return types.Err(fmt.Sprintf("Failed to start '%s': %v", app.Name, err))
	}

	return types.OK(map[string]interface{}{
		"application": app.Name,
		"processId":   pid,
		"path":        app.ExecutablePath,
	})
}

func (d *Dispatcher) runExe(params map[string]interface{}) *types.CommandResult {
	raw, err := stringParam(params, "path")
	if err != nil {
		return types.Err(err.Error())
	}

	resolved, err := d.validator.Resolve(raw)
	if err != nil {
		return types.Err(fmt.Sprintf("Path validation failed: %v", err))
	}
	if !d.validator.IsSafe(raw) {
		return types.Err(fmt.Sprintf("Path validation failed: '%s' is not allowed", raw))
	}
	if !strings.EqualFold(filepath.Ext(resolved), ".exe") {
		return types.Err(fmt.Sprintf("'%s' is not an executable file", raw))
	}
	if info, statErr := os.Stat(resolved); statErr != nil || info.IsDir() {
		return types.Err(fmt.Sprintf("Executable not found: %s", resolved))
	}

	pid, err := d.starter.Start(resolved, nil)
	if err != nil {
		return types.Err(fmt.Sprintf("Failed to start '%s': %v", resolved, err))
	}

	return types.OK(map[string]interface{}{
		"path":      resolved,
		"processId": pid,
	})
}

func (d *Dispatcher) scanApplications(ctx context.Context) *types.CommandResult {
	stats, err := d.registry.RescanAndPersist(ctx)
	if err != nil {
		return types.Err(fmt.Sprintf("Application scan failed: %v", err))
	}
	return types.OK(map[string]interface{}{
		"statistics": stats,
	})
}

func (d *Dispatcher) listApplications(params map[string]interface{}) *types.CommandResult {
	var apps []types.AppDescriptor
	if category, ok := optionalString(params, "category"); ok {
		parsed, valid := types.ParseCategory(category)
		if !valid {
			return types.Err(fmt.Sprintf("Unknown category: %s", category))
		}
		apps = d.registry.ListByCategory(parsed)
	} else {
		apps = d.registry.ListAll()
	}

	return types.OK(map[string]interface{}{
		"applications": apps,
		"count":        len(apps),
		"statistics":   d.registry.Statistics(),
	})
}
