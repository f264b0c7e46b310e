package dispatch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ayvor/assistant/core/internal/shared/types"
)

// maxSearchResults caps matches per searched folder so a broad query never
// produces an unbounded payload.
const maxSearchResults = 25

func (d *Dispatcher) searchFiles(params map[string]interface{}) *types.CommandResult {
	query, err := stringParam(params, "query")
	if err != nil {
		return types.Err(err.Error())
	}

	pattern := strings.ToLower(query)
	if !strings.ContainsAny(pattern, "*?[{") {
		pattern = "*" + pattern + "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return types.Err(fmt.Sprintf("Invalid search pattern: %s", query))
	}

	folders := []struct {
		label string
		path  string
	}{
		{"Documents", d.dirs.Documents},
		{"Desktop", d.dirs.Desktop},
	}

	matches := make([]map[string]interface{}, 0)
	for _, folder := range folders {
		entries, readErr := os.ReadDir(folder.path)
		if readErr != nil {
			// Missing or unreadable folders are skipped, not fatal.
			continue
		}
		found := 0
		for _, entry := range entries {
			if entry.IsDir() || found >= maxSearchResults {
				continue
			}
			ok, matchErr := doublestar.Match(pattern, strings.ToLower(entry.Name()))
			if matchErr != nil || !ok {
				continue
			}
			info, infoErr := entry.Info()
			if infoErr != nil {
				continue
			}
			matches = append(matches, map[string]interface{}{
				"name":     entry.Name(),
				"path":     filepath.Join(folder.path, entry.Name()),
				"folder":   folder.label,
				"size":     info.Size(),
				"modified": info.ModTime(),
			})
			found++
		}
	}

	return types.OK(map[string]interface{}{
		"query": query,
		"files": matches,
		"count": len(matches),
	})
}

func (d *Dispatcher) createFolder(params map[string]interface{}) *types.CommandResult {
	raw, err := stringParam(params, "path")
	if err != nil {
		return types.Err(err.Error())
	}
	resolved, denied := d.gatePath(raw)
	if denied != nil {
		return denied
	}

	if info, statErr := os.Stat(resolved); statErr == nil && info.IsDir() {
		return types.OK(map[string]interface{}{
			"path":           resolved,
			"alreadyExisted": true,
		})
	}
	if mkErr := os.MkdirAll(resolved, 0o755); mkErr != nil {
		return types.Err(fmt.Sprintf("Failed to create folder: %v", mkErr))
	}
	return types.OK(map[string]interface{}{
		"path":           resolved,
		"alreadyExisted": false,
	})
}

func (d *Dispatcher) deleteFolder(params map[string]interface{}) *types.CommandResult {
	raw, err := stringParam(params, "path")
	if err != nil {
		return types.Err(err.Error())
	}
	resolved, denied := d.gatePath(raw)
	if denied != nil {
		return denied
	}

	info, statErr := os.Stat(resolved)
	if statErr != nil {
		return types.Err(fmt.Sprintf("Folder not found: %s", resolved))
	}
	if !info.IsDir() {
		return types.Err(fmt.Sprintf("'%s' is not a folder", resolved))
	}
	if rmErr := os.RemoveAll(resolved); rmErr != nil {
		return types.Err(fmt.Sprintf("Failed to delete folder: %v", rmErr))
	}
	return types.OK(map[string]interface{}{
		"path":    resolved,
		"deleted": true,
	})
}

func (d *Dispatcher) moveFile(params map[string]interface{}) *types.CommandResult {
	source, destination, denied := d.gateTransfer(params)
	if denied != nil {
		return denied
	}

	if mvErr := os.Rename(source, destination); mvErr != nil {
		return types.Err(fmt.Sprintf("Failed to move file: %v", mvErr))
	}
	return types.OK(map[string]interface{}{
		"source":      source,
		"destination": destination,
	})
}

func (d *Dispatcher) copyFile(params map[string]interface{}) *types.CommandResult {
	source, destination, denied := d.gateTransfer(params)
	if denied != nil {
		return denied
	}

	if copyErr := copyRegularFile(source, destination); copyErr != nil {
		return types.Err(fmt.Sprintf("Failed to copy file: %v", copyErr))
	}
	return types.OK(map[string]interface{}{
		"source":      source,
		"destination": destination,
	})
}

// gatePath resolves and security-checks one path parameter. The second return
// is non-nil when the action must stop with that error result.
func (d *Dispatcher) gatePath(raw string) (string, *types.CommandResult) {
	resolved, err := d.validator.Resolve(raw)
	if err != nil {
		return "", types.Err(fmt.Sprintf("Path validation failed: %v", err))
	}
	if !d.validator.IsSafe(raw) {
		return "", types.Err(fmt.Sprintf("Path validation failed: '%s' is not allowed", raw))
	}
	return resolved, nil
}

// gateTransfer applies the same gate to both endpoints of a move or copy and
// enforces source-exists / destination-absent before any bytes move.
func (d *Dispatcher) gateTransfer(params map[string]interface{}) (string, string, *types.CommandResult) {
	rawSource, err := stringParam(params, "source")
	if err != nil {
		return "", "", types.Err(err.Error())
	}
	rawDestination, err := stringParam(params, "destination")
	if err != nil {
		return "", "", types.Err(err.Error())
	}

	source, denied := d.gatePath(rawSource)
	if denied != nil {
		return "", "", denied
	}
	destination, denied := d.gatePath(rawDestination)
	if denied != nil {
		return "", "", denied
	}

	info, statErr := os.Stat(source)
	if statErr != nil {
		return "", "", types.Err(fmt.Sprintf("Source file not found: %s", source))
	}
	if info.IsDir() {
		return "", "", types.Err(fmt.Sprintf("'%s' is a folder, not a file", source))
	}
	if _, statErr := os.Stat(destination); statErr == nil {
		return "", "", types.Err(fmt.Sprintf("Destination already exists: %s", destination))
	}
	return source, destination, nil
}

func copyRegularFile(source, destination string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(destination)
		return err
	}
	return out.Close()
}
