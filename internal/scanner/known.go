package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ayvor/assistant/core/internal/shared/types"
)

// knownApp resolves a high-value application through its vendor's install
// layout instead of a directory walk. Either a list of literal candidate
// paths, or a versioned layout (parent dir whose lexicographically greatest
// subfolder holds the binary), as Discord and Squirrel-style installers do.
type knownApp struct {
	id       string
	name     string
	category types.Category
	aliases  []string
	args     []string

	paths []string // literal candidates, first existing wins

	versionedDir    string // parent containing one subfolder per release
	versionedPrefix string // subfolder name prefix, e.g. "app-"
	binary          string // expected binary inside the chosen subfolder
}

func knownApps() []knownApp {
	programFiles := envOr("ProgramFiles", `C:\Program Files`)
	programFilesX86 := envOr("ProgramFiles(x86)", `C:\Program Files (x86)`)
	localAppData := envOr("LOCALAPPDATA", "")
	roamingAppData := envOr("APPDATA", "")

	return []knownApp{
		{
			id: "known-steam", name: "Steam", category: types.CategoryGames,
			paths: []string{
				filepath.Join(programFilesX86, "Steam", "steam.exe"),
				filepath.Join(programFiles, "Steam", "steam.exe"),
			},
		},
		{
			id: "known-discord", name: "Discord", category: types.CategoryCommunication,
			versionedDir:    filepath.Join(localAppData, "Discord"),
			versionedPrefix: "app-",
			binary:          "Discord.exe",
		},
		{
			id: "known-spotify", name: "Spotify", category: types.CategoryEntertainment,
			paths: []string{filepath.Join(roamingAppData, "Spotify", "Spotify.exe")},
		},
		{
			id: "known-telegram", name: "Telegram", category: types.CategoryCommunication,
			paths: []string{filepath.Join(roamingAppData, "Telegram Desktop", "Telegram.exe")},
		},
		{
			id: "known-vscode", name: "Visual Studio Code", category: types.CategoryDevelopment,
			aliases: []string{"vs code", "vscode"},
			paths: []string{
				filepath.Join(localAppData, "Programs", "Microsoft VS Code", "Code.exe"),
				filepath.Join(programFiles, "Microsoft VS Code", "Code.exe"),
			},
		},
		{
			id: "known-chrome", name: "Google Chrome", category: types.CategoryBrowser,
			paths: []string{
				filepath.Join(programFiles, "Google", "Chrome", "Application", "chrome.exe"),
				filepath.Join(programFilesX86, "Google", "Chrome", "Application", "chrome.exe"),
			},
		},
		{
			id: "known-firefox", name: "Firefox", category: types.CategoryBrowser,
			paths: []string{
				filepath.Join(programFiles, "Mozilla Firefox", "firefox.exe"),
				filepath.Join(programFilesX86, "Mozilla Firefox", "firefox.exe"),
			},
		},
		{
			id: "known-epic", name: "Epic Games Launcher", category: types.CategoryGames,
			aliases: []string{"epic", "epic games"},
			paths: []string{
				filepath.Join(programFilesX86, "Epic Games", "Launcher", "Portal", "Binaries", "Win32", "EpicGamesLauncher.exe"),
			},
		},
	}
}

// resolveKnownApps returns descriptors for every known app whose install was
// found on this machine. Misses are silent: absence of a vendor install is
// not an error.
func resolveKnownApps() []types.AppDescriptor {
	now := time.Now().UTC()
	var out []types.AppDescriptor
	for _, ka := range knownApps() {
		path, ok := ka.resolve()
		if !ok {
			continue
		}
		fileName := filepath.Base(path)
		out = append(out, types.AppDescriptor{
			ID:                 ka.id,
			Name:               ka.name,
			ExecutablePath:     path,
			ExecutableFileName: fileName,
			Category:           ka.category,
			Aliases:            buildAliases(ka.name, fileName, ka.aliases...),
			LaunchArguments:    ka.args,
			DiscoveredAt:       now,
		})
	}
	return out
}

func (ka knownApp) resolve() (string, bool) {
	for _, p := range ka.paths {
		if fileExists(p) {
			return p, true
		}
	}
	if ka.versionedDir != "" {
		if p, ok := resolveVersioned(ka.versionedDir, ka.versionedPrefix, ka.binary); ok {
			return p, true
		}
	}
	return "", false
}

// resolveVersioned picks the lexicographically greatest matching subfolder of
// dir and verifies the expected binary exists inside it.
func resolveVersioned(dir, prefix, binary string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var versions []string
	for _, e := range entries {
		if e.IsDir() && (prefix == "" || hasFoldPrefix(e.Name(), prefix)) {
			versions = append(versions, e.Name())
		}
	}
	if len(versions) == 0 {
		return "", false
	}
	sort.Strings(versions)

	// Newest first; a half-deleted release folder may lack the binary.
	for i := len(versions) - 1; i >= 0; i-- {
		candidate := filepath.Join(dir, versions[i], binary)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func hasFoldPrefix(name, prefix string) bool {
	return len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix)
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
