package winbridge

import (
	"strings"

	"github.com/ayvor/assistant/core/internal/shared/types"
)

// WindowInfo describes one top-level window and its owning process.
type WindowInfo struct {
	Handle      uintptr
	Title       string
	PID         int32
	ProcessName string
}

// ScoreWeights are the window-matching weights. Heuristic and tunable policy,
// not a contract; the defaults favor process identity over title text.
type ScoreWeights struct {
	ExactProcess     int
	ProcessSubstring int
	TitleSubstring   int
	ProductAlias     int
}

// DefaultScoreWeights returns the stock weights.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		ExactProcess:     100,
		ProcessSubstring: 50,
		TitleSubstring:   30,
		ProductAlias:     80,
	}
}

// productProcessAliases maps well-known product names (as users say them) to
// the process that actually owns the windows.
var productProcessAliases = map[string]string{
	"chrome":        "chrome.exe",
	"google chrome": "chrome.exe",
	"хром":          "chrome.exe",
	"firefox":       "firefox.exe",
	"edge":          "msedge.exe",
	"telegram":      "telegram.exe",
	"телеграм":      "telegram.exe",
	"discord":       "discord.exe",
	"дискорд":       "discord.exe",
	"steam":         "steam.exe",
	"стим":          "steam.exe",
	"spotify":       "spotify.exe",
	"vs code":       "code.exe",
	"vscode":        "code.exe",
	"word":          "winword.exe",
	"excel":         "excel.exe",
	"notepad":       "notepad.exe",
	"блокнот":       "notepad.exe",
	"explorer":      "explorer.exe",
	"проводник":     "explorer.exe",
}

// NameResolver turns a free-text application reference into a descriptor.
// Satisfied by the registry manager.
type NameResolver interface {
	Find(query string) (types.AppDescriptor, bool)
}

// Locator scores enumerated windows against a query.
type Locator struct {
	resolver NameResolver
	weights  ScoreWeights
}

// NewLocator creates a locator. resolver may be nil; matching then runs on
// the raw query text only.
func NewLocator(resolver NameResolver) *Locator {
	return &Locator{resolver: resolver, weights: DefaultScoreWeights()}
}

// Locate finds the best-scoring window for query among the machine's
// top-level windows. Minimized and background windows are included.
func (l *Locator) Locate(query string) (WindowInfo, error) {
	windows, err := topLevelWindows()
	if err != nil {
		return WindowInfo{}, err
	}
	best, ok := l.best(windows, query)
	if !ok {
		return WindowInfo{}, ErrNoWindow
	}
	return best, nil
}

// best keeps the highest positively scoring candidate.
func (l *Locator) best(windows []WindowInfo, query string) (WindowInfo, bool) {
	expectedProc := ""
	if l.resolver != nil {
		if app, ok := l.resolver.Find(query); ok {
			expectedProc = app.ExecutableFileName
		}
	}

	bestScore := 0
	var best WindowInfo
	for _, w := range windows {
		if score := l.score(w, query, expectedProc); score > bestScore {
			bestScore, best = score, w
		}
	}
	return best, bestScore > 0
}

func (l *Locator) score(w WindowInfo, query, expectedProc string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}
	proc := strings.ToLower(w.ProcessName)
	procStem := strings.TrimSuffix(proc, ".exe")
	title := strings.ToLower(w.Title)

	score := 0
	if expectedProc != "" && proc == strings.ToLower(expectedProc) {
		score += l.weights.ExactProcess
	}
	if procStem != "" && (strings.Contains(procStem, q) || strings.Contains(q, procStem)) {
		score += l.weights.ProcessSubstring
	}
	if strings.Contains(title, q) {
		score += l.weights.TitleSubstring
	}
	if alias, ok := productProcessAliases[q]; ok && proc == alias {
		score += l.weights.ProductAlias
	}
	return score
}
