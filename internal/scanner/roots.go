package scanner

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// libraryPathRE tolerantly matches `"path" "<value>"` pairs in Valve's KeyValues
// text format. The format nests blocks, but only the path rows matter here.
var libraryPathRE = regexp.MustCompile(`(?i)"path"\s+"((?:[^"\\]|\\.)*)"`)

// conventionalGameDirs are top-level folder names probed on every fixed,
// ready drive. Vendors and users put libraries here by convention.
var conventionalGameDirs = []string{
	"Games",
	"SteamLibrary",
	"Epic Games",
	"GOG Games",
	"Riot Games",
	"Battle.net",
}

// scanRoots assembles the directory set the scanner walks: fixed program
// directories, a deliberately narrow list of per-vendor profile subfolders,
// Steam library roots declared in libraryfolders.vdf, and conventional game
// folders on each fixed drive. Only directories that exist are returned.
func scanRoots() []string {
	var candidates []string

	candidates = append(candidates,
		envOr("ProgramFiles", `C:\Program Files`),
		envOr("ProgramFiles(x86)", `C:\Program Files (x86)`),
	)

	// Curated, not the whole profile tree: scanning all of AppData costs
	// minutes on a lived-in machine.
	if local := os.Getenv("LOCALAPPDATA"); local != "" {
		candidates = append(candidates,
			filepath.Join(local, "Programs"),
			filepath.Join(local, "Discord"),
			filepath.Join(local, "WhatsApp"),
		)
	}
	if roaming := os.Getenv("APPDATA"); roaming != "" {
		candidates = append(candidates,
			filepath.Join(roaming, "Spotify"),
			filepath.Join(roaming, "Telegram Desktop"),
			filepath.Join(roaming, "Zoom", "bin"),
		)
	}

	candidates = append(candidates, steamLibraryRoots()...)

	for _, drive := range fixedDrives() {
		for _, dir := range conventionalGameDirs {
			candidates = append(candidates, filepath.Join(drive, dir))
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	var roots []string
	for _, c := range candidates {
		key := strings.ToLower(filepath.Clean(c))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if dirExists(c) {
			roots = append(roots, c)
		}
	}
	return roots
}

// steamLibraryRoots reads Steam's library manifest and returns the existing
// game directories it declares.
func steamLibraryRoots() []string {
	var roots []string
	for _, steamDir := range []string{
		filepath.Join(envOr("ProgramFiles(x86)", `C:\Program Files (x86)`), "Steam"),
		filepath.Join(envOr("ProgramFiles", `C:\Program Files`), "Steam"),
	} {
		manifest := filepath.Join(steamDir, "steamapps", "libraryfolders.vdf")
		data, err := os.ReadFile(manifest)
		if err != nil {
			continue
		}
		for _, lib := range parseLibraryFolders(data) {
			if common := filepath.Join(lib, "steamapps", "common"); dirExists(common) {
				roots = append(roots, common)
			} else if dirExists(lib) {
				roots = append(roots, lib)
			}
		}
	}
	return roots
}

// parseLibraryFolders extracts library paths from libraryfolders.vdf content,
// normalizing the escaped backslashes of the KeyValues format.
func parseLibraryFolders(data []byte) []string {
	var paths []string
	for _, m := range libraryPathRE.FindAllStringSubmatch(string(data), -1) {
		p := strings.ReplaceAll(m[1], `\\`, `\`)
		p = strings.TrimSpace(p)
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
