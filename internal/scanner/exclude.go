package scanner

import "strings"

// excludedNameFragments reject binaries that are installed alongside an
// application but are not the application: installers, uninstallers,
// updaters, crash handlers, background services, launch helpers, overlays,
// and error reporters.
var excludedNameFragments = []string{
	"unins",
	"setup",
	"install",
	"updater",
	"update",
	"repair",
	"crashhandler",
	"crashpad",
	"crashreport",
	"errorreport",
	"bugreport",
	"bugsplat",
	"helper",
	"service",
	"daemon",
	"watchdog",
	"overlay",
	"launcher_helper",
	"redist",
	"vcredist",
	"dxsetup",
	"cleanup",
	"elevate",
}

// excludedDirNames are directory names skipped during the walk. These hold
// caches and support data, never user-launchable binaries.
var excludedDirNames = map[string]struct{}{
	"cache":      {},
	"caches":     {},
	"temp":       {},
	"tmp":        {},
	"log":        {},
	"logs":       {},
	"data":       {},
	"crashes":    {},
	"dumps":      {},
	"resources":  {},
	"locales":    {},
	"node_modules": {},
}

// isExcludedExecutable reports whether the file name matches the exclusion
// heuristics. Matching is case-insensitive on the stem.
func isExcludedExecutable(fileName string) bool {
	stem := strings.ToLower(strings.TrimSuffix(fileName, executableExt))
	for _, frag := range excludedNameFragments {
		if strings.Contains(stem, frag) {
			return true
		}
	}
	return false
}

// isExcludedDir reports whether a directory name is on the skip list.
func isExcludedDir(dirName string) bool {
	_, ok := excludedDirNames[strings.ToLower(dirName)]
	return ok
}
