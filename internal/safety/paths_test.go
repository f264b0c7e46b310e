package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func windowsValidator() *Validator {
	return New([]string{
		`C:\Windows`,
		`C:\Program Files`,
		`C:\Program Files (x86)`,
		`C:\ProgramData`,
	})
}

func TestIsSafeDeniedRoots(t *testing.T) {
	v := windowsValidator()

	tests := []struct {
		name string
		path string
		safe bool
	}{
		{"user desktop", `C:\Users\X\Desktop\T`, true},
		{"user documents nested", `C:\Users\X\Documents\Projects\notes.txt`, true},
		{"secondary drive", `D:\Games\Steam`, true},
		{"windows dir itself", `C:\Windows`, false},
		{"nested under windows", `C:\Windows\System32\T`, false},
		{"program files", `C:\Program Files\App`, false},
		{"program files x86", `C:\Program Files (x86)\App`, false},
		{"programdata", `C:\ProgramData\cache`, false},
		{"case insensitive", `c:\WINDOWS\system32`, false},
		{"forward slashes", `C:/Windows/System32`, false},
		{"bare drive root", `C:\`, false},
		{"bare drive root no slash", `C:`, false},
		{"other bare drive root", `D:\`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.safe, v.IsSafe(tt.path), "path %q", tt.path)
		})
	}
}

func TestIsSafeFailsClosed(t *testing.T) {
	v := windowsValidator()

	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"relative", `Desktop\T`},
		{"invalid characters", `C:\Users\X\doc<ument>.txt`},
		{"wildcard", `C:\Users\X\*.txt`},
		{"unresolvable env token", `%NO_SUCH_AYVOR_VAR%\file.txt`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, v.IsSafe(tt.path))
		})
	}
}

func TestIsSafeTraversalOutOfDeniedRoot(t *testing.T) {
	v := windowsValidator()

	// Lexical cleaning runs before the deny check, so dot-dot segments cannot
	// smuggle a path into or out of a denied root.
	assert.False(t, v.IsSafe(`C:\Users\X\..\..\Windows\System32`))
	assert.True(t, v.IsSafe(`C:\Windows\..\Users\X\Desktop`))
}

func TestResolveExpandsEnvTokens(t *testing.T) {
	t.Setenv("AYVOR_TEST_HOME", `C:\Users\Tester`)

	v := windowsValidator()
	resolved, err := v.Resolve(`%AYVOR_TEST_HOME%\Desktop\note.txt`)
	require.NoError(t, err)
	assert.Equal(t, "C:/Users/Tester/Desktop/note.txt", resolved)
	assert.True(t, v.IsSafe(`%AYVOR_TEST_HOME%\Desktop\note.txt`))
}

func TestResolveRejectsOverlongPaths(t *testing.T) {
	v := windowsValidator()

	long := `C:\` + string(make([]byte, maxPathLength))
	_, err := v.Resolve(long)
	assert.Error(t, err)
}

func TestDefaultValidatorDeniesSomething(t *testing.T) {
	v := Default()
	require.NotEmpty(t, v.denied)
	assert.False(t, v.IsSafe("/"))
}
