// Package safety decides whether filesystem paths may be touched by remote
// commands. It is a pure deny-list: paths under OS or program-installation
// directories (and bare drive roots) are rejected, everything else is allowed,
// so newly created user directories work without configuration.
//
// Any path that fails to resolve is treated as unsafe (fail-closed).
package safety
