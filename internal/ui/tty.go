package ui

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrCancelled is returned when the user cancels a prompt.
var ErrCancelled = errors.New("operation cancelled by user")

// TTYDetector reports whether output goes to a real terminal. Overridable
// for tests.
type TTYDetector func() bool

var defaultTTYDetector TTYDetector = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var ttyDetector = defaultTTYDetector

// IsTTY returns true when stdout is a terminal.
func IsTTY() bool {
	return ttyDetector()
}

// SetTTYDetector overrides TTY detection, mainly for tests. Passing nil
// restores the default. Returns a function restoring the previous detector.
func SetTTYDetector(detector TTYDetector) func() {
	prev := ttyDetector
	if detector == nil {
		ttyDetector = defaultTTYDetector
	} else {
		ttyDetector = detector
	}
	return func() { ttyDetector = prev }
}

// defaultOutput is where UI helpers write. Overridable for tests.
var defaultOutput io.Writer = os.Stdout

// SetDefaultOutput overrides the default output writer, mainly for tests.
// Passing nil restores os.Stdout. Returns a function restoring the previous
// writer.
func SetDefaultOutput(w io.Writer) func() {
	prev := defaultOutput
	if w == nil {
		defaultOutput = os.Stdout
	} else {
		defaultOutput = w
	}
	return func() { defaultOutput = prev }
}
