package util

import (
	"os"

	"github.com/fatih/color"
)

func isCharDevice(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// IsTTY returns true if stdout is a terminal.
func IsTTY() bool {
	return isCharDevice(os.Stdout)
}

// IsStderrTTY returns true if stderr is a terminal. The dev server uses it
// to decide whether log lines get colors.
func IsStderrTTY() bool {
	return isCharDevice(os.Stderr)
}

// InitColor configures color output based on flags and terminal detection.
func InitColor(noColor bool) {
	if noColor || !IsTTY() {
		color.NoColor = true
	}
}
