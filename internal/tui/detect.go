// Package tui renders the interactive probe view and decides when it is
// appropriate to do so.
package tui

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether the probe may render an animated terminal
// view. False when:
//   - RODOOD_DB_NON_INTERACTIVE=1 is set
//   - CI is set (CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - stdin or stderr is not a terminal
func IsInteractive() bool {
	if os.Getenv("RODOOD_DB_NON_INTERACTIVE") == "1" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	// The view renders on stderr, keeping stdout machine-parseable.
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return false
	}
	return true
}
