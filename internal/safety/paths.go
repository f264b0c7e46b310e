package safety

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"
)

// maxPathLength matches the extended Windows path limit.
const maxPathLength = 32767

var envTokenRE = regexp.MustCompile(`%([A-Za-z0-9_()]+)%`)

// invalidChars are rejected anywhere in a resolved path. A '%' that survives
// expansion means an unresolvable environment token.
const invalidChars = "<>|\"?*%\x00"

// Validator checks paths against an immutable deny list. The zero value is
// unusable; construct with New or Default.
type Validator struct {
	denied []string // normalized prefixes
}

// New creates a validator denying the given directory roots.
func New(denyList []string) *Validator {
	v := &Validator{denied: make([]string, 0, len(denyList))}
	for _, d := range denyList {
		if n := normalize(d); n != "" {
			v.denied = append(v.denied, n)
		}
	}
	return v
}

// Default returns a validator loaded with the OS and program-installation
// directories of the current machine.
func Default() *Validator {
	return New(defaultDenyList())
}

func defaultDenyList() []string {
	// Windows system roots are denied on every platform: paths arrive from a
	// remote orchestrator and must validate the same way everywhere.
	list := []string{
		envOr("SystemRoot", `C:\Windows`),
		envOr("ProgramFiles", `C:\Program Files`),
		envOr("ProgramFiles(x86)", `C:\Program Files (x86)`),
		envOr("ProgramData", `C:\ProgramData`),
	}
	if runtime.GOOS != "windows" {
		list = append(list,
			"/bin", "/boot", "/dev", "/etc", "/lib", "/proc", "/sbin", "/sys",
			"/usr", "/var", "/System", "/Library",
		)
	}
	return list
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// IsSafe reports whether the path may be read, written, or executed. It never
// returns an error: anything that cannot be resolved is unsafe.
func (v *Validator) IsSafe(path string) bool {
	resolved, err := v.Resolve(path)
	if err != nil {
		return false
	}

	norm := normalize(resolved)
	if isBareRoot(norm) {
		return false
	}
	for _, d := range v.denied {
		if norm == d || strings.HasPrefix(norm, d+"/") {
			return false
		}
	}
	return true
}

// Resolve expands environment tokens and produces an absolute, lexically
// cleaned path. Windows-style paths (drive letter or UNC) are handled on any
// host so remotely submitted paths validate deterministically.
func (v *Validator) Resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path is empty")
	}
	if len(path) > maxPathLength {
		return "", fmt.Errorf("path exceeds maximum length")
	}

	expanded := envTokenRE.ReplaceAllStringFunc(path, func(tok string) string {
		name := tok[1 : len(tok)-1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return tok // left in place, caught by the invalid-character check
	})

	if strings.ContainsAny(expanded, invalidCharsFor(expanded)) {
		return "", fmt.Errorf("path contains invalid characters")
	}
	if !isAbs(expanded) {
		return "", fmt.Errorf("path is not absolute: %s", path)
	}

	return clean(expanded), nil
}

// invalidCharsFor exempts the drive-colon position from the check set; every
// other colon or reserved character disqualifies the path.
func invalidCharsFor(path string) string {
	if isDrivePath(path) {
		return invalidChars
	}
	return invalidChars + ":"
}

func isDrivePath(path string) bool {
	if len(path) < 2 {
		return false
	}
	c := path[0]
	ok := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	return ok && path[1] == ':' && !strings.Contains(path[2:], ":")
}

func isAbs(path string) bool {
	if isDrivePath(path) {
		return len(path) == 2 || path[2] == '\\' || path[2] == '/'
	}
	return strings.HasPrefix(path, "/") || strings.HasPrefix(path, `\\`)
}

// clean lexically normalizes separators and resolves "." / ".." components
// without touching the filesystem.
func clean(path string) string {
	unified := strings.ReplaceAll(path, `\`, "/")

	var prefix string
	switch {
	case isDrivePath(unified):
		prefix = strings.ToUpper(unified[:2])
		unified = unified[2:]
	case strings.HasPrefix(unified, "//"):
		prefix = "//"
		unified = unified[2:]
	}

	parts := strings.Split(unified, "/")
	stack := make([]string, 0, len(parts))
	for _, p := range parts {
		switch p {
		case "", ".":
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, p)
		}
	}

	joined := prefix + "/" + strings.Join(stack, "/")
	if len(stack) == 0 {
		joined = prefix + "/"
	}
	return joined
}

// normalize lowercases a cleaned path for case-insensitive comparison and
// trims the trailing separator.
func normalize(path string) string {
	n := strings.ToLower(clean(path))
	if len(n) > 1 {
		n = strings.TrimSuffix(n, "/")
	}
	return n
}

// isBareRoot matches "c:" style drive roots and the filesystem root itself.
func isBareRoot(norm string) bool {
	if norm == "/" || norm == "" {
		return true
	}
	return len(norm) == 2 && norm[1] == ':'
}
