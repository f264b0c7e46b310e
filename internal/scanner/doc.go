// Package scanner discovers installed applications. It combines three sources:
// a short table of known-exact-path apps (resolved through literal or
// versioned install layouts), a static table of OS-bundled system utilities,
// and a parallel depth-bounded walk over program directories, curated profile
// subfolders, and dynamically discovered game-library roots.
//
// A scan never fails outright: unreadable roots and directories contribute
// nothing and their siblings are still visited. Partial results are the norm.
package scanner
