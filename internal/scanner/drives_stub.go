//go:build !windows

package scanner

// fixedDrives has nothing to enumerate off Windows; scan roots come from the
// environment-derived directories only.
func fixedDrives() []string {
	return nil
}
