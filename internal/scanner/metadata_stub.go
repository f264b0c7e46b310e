//go:build !windows

package scanner

// displayNameFromMetadata is Windows-only; elsewhere the file stem is used.
func displayNameFromMetadata(string) (string, bool) {
	return "", false
}
