// Package ui provides color output helpers for the larder CLI. Colors are
// disabled automatically when output is not a TTY or NO_COLOR is set.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	red   = color.New(color.FgRed)
	green = color.New(color.FgGreen)
	dim   = color.New(color.Faint)
)

// InitColors configures global color output based on the noColor flag.
func InitColors(noColor bool) {
	if noColor {
		color.NoColor = true
	}
}

// Errorf prints a red error line to stderr.
func Errorf(format string, args ...any) {
	red.Fprint(os.Stderr, "Error: ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Successf prints a green confirmation line to stdout.
func Successf(format string, args ...any) {
	green.Fprint(os.Stdout, "✓ ")
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}

// Dimf prints a faint detail line to stdout.
func Dimf(format string, args ...any) {
	dim.Fprintf(os.Stdout, format+"\n", args...)
}
