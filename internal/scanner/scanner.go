package scanner

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayvor/assistant/core/internal/shared/types"
)

// executableExt is the launchable-binary extension the walk collects.
const executableExt = ".exe"

// DefaultMaxDepth bounds the walk below each scan root.
const DefaultMaxDepth = 3

// Options controls a Scanner.
type Options struct {
	// Roots overrides the discovered scan-root set when non-empty.
	Roots []string
	// DisableKnownApps skips the known-exact-path table.
	DisableKnownApps bool
	// DisableSystemApps skips the static system-app table.
	DisableSystemApps bool
}

// Scanner discovers installed applications.
type Scanner struct {
	log  *zap.Logger
	opts Options
}

// New creates a scanner. A nil logger is replaced with a no-op one.
func New(log *zap.Logger, opts Options) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{log: log, opts: opts}
}

// Scan walks all roots in parallel up to maxDepth directory levels and
// returns the merged descriptor set: known-exact-path apps first, then system
// apps, then scanned results deduplicated by executable path.
func (s *Scanner) Scan(ctx context.Context, maxDepth int) []types.AppDescriptor {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	started := time.Now()

	var result []types.AppDescriptor
	if !s.opts.DisableKnownApps {
		result = append(result, resolveKnownApps()...)
	}
	if !s.opts.DisableSystemApps {
		result = append(result, SystemApps()...)
	}

	roots := s.opts.Roots
	if len(roots) == 0 {
		roots = scanRoots()
	}

	var (
		mu      sync.Mutex
		scanned []types.AppDescriptor
		wg      sync.WaitGroup
	)
	for _, root := range roots {
		wg.Add(1)
		go func(root string) {
			defer wg.Done()
			found := s.walkRoot(ctx, root, maxDepth)
			mu.Lock()
			scanned = append(scanned, found...)
			mu.Unlock()
			s.log.Debug("scan root complete",
				zap.String("root", root),
				zap.Int("found", len(found)),
			)
		}(root)
	}
	wg.Wait()

	// Dedup by resolved path, never by name: one binary can carry several
	// display aliases, and known-exact-path entries take priority.
	seen := make(map[string]struct{}, len(result)+len(scanned))
	for _, d := range result {
		if d.ExecutablePath != "" {
			seen[pathKey(d.ExecutablePath)] = struct{}{}
		}
	}
	for _, d := range scanned {
		key := pathKey(d.ExecutablePath)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, d)
	}

	s.log.Info("application scan finished",
		zap.Int("roots", len(roots)),
		zap.Int("applications", len(result)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return result
}

// walkRoot scans a single root depth-first. Unreadable directories are
// skipped silently; their siblings are still visited.
func (s *Scanner) walkRoot(ctx context.Context, root string, maxDepth int) []types.AppDescriptor {
	var (
		mu    sync.Mutex
		found []types.AppDescriptor
	)

	conf := fastwalk.Config{NumWorkers: 1}
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if err != nil {
			// Permission denial or racing delete: drop this entry, keep
			// scanning siblings.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if isExcludedDir(d.Name()) || depthOf(root, path) >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !strings.EqualFold(filepath.Ext(name), executableExt) || isExcludedExecutable(name) {
			return nil
		}

		desc := describeExecutable(path)
		mu.Lock()
		found = append(found, desc)
		mu.Unlock()
		return nil
	})
	if err != nil {
		s.log.Debug("scan root unreadable", zap.String("root", root), zap.Error(err))
	}
	return found
}

// describeExecutable builds a descriptor for a discovered binary, preferring
// the embedded version metadata for the display name.
func describeExecutable(path string) types.AppDescriptor {
	fileName := filepath.Base(path)
	name, ok := displayNameFromMetadata(path)
	if !ok || strings.TrimSpace(name) == "" {
		name = humanizeStem(fileName)
	}

	return types.AppDescriptor{
		ID:                 "app-" + uuid.NewString(),
		Name:               name,
		ExecutablePath:     path,
		ExecutableFileName: fileName,
		Category:           classify(name, fileName),
		Aliases:            buildAliases(name, fileName),
		DiscoveredAt:       time.Now().UTC(),
	}
}

// humanizeStem turns "epic-games_launcher.exe" into "Epic Games Launcher".
func humanizeStem(fileName string) string {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	stem = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(stem)

	words := strings.Fields(stem)
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

// depthOf counts directory levels of path below root; direct children are 1.
func depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func pathKey(path string) string {
	return strings.ToLower(filepath.Clean(path))
}
