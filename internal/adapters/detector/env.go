// Package detector decides how toolchain processes are attached to the terminal.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how the executor wires child process output.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModePTY runs the toolchain in a pseudo-terminal so it keeps colors and progress bars.
	ModePTY
	// ModePipe runs the toolchain with plain pipes, keeping stdout and stderr apart.
	ModePipe
)

// DetectEnvironment returns the recommended output mode based on the environment.
// It checks if stdout is a TTY and if CI environment variables are set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // fd fits in int

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePipe
	}
	return ModePTY
}

// ResolveMode applies the user's --output-mode flag to auto-detection.
// userFlag should be one of: "auto", "pty", "pipe", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "pty":
		return ModePTY
	case "pipe", "ci":
		return ModePipe
	default:
		return autoDetected
	}
}

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModePTY:
		return "pty"
	case ModePipe:
		return "pipe"
	default:
		return "auto"
	}
}
