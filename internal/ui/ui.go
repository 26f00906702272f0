// Package ui prints CLI progress and results. Output goes to stdout;
// colors are suppressed when NO_COLOR is set.
package ui

import (
	"fmt"
	"os"
	"strings"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

func paint(color, s string) string {
	if os.Getenv("NO_COLOR") != "" {
		return s
	}
	return color + s + colorReset
}

// Headerf prints a section header.
func Headerf(format string, args ...any) {
	title := fmt.Sprintf(format, args...)
	line := strings.Repeat("=", len(title)+4)
	fmt.Println(paint(colorBold+colorBlue, line))
	fmt.Println(paint(colorBold+colorBlue, "  "+title))
	fmt.Println(paint(colorBold+colorBlue, line))
}

// Stepf prints a step in progress.
func Stepf(format string, args ...any) {
	fmt.Printf("%s %s\n", paint(colorCyan, "▶"), fmt.Sprintf(format, args...))
}

// Successf prints a success message.
func Successf(format string, args ...any) {
	fmt.Printf("%s %s\n", paint(colorGreen, "✓"), fmt.Sprintf(format, args...))
}

// Errorf prints an error message.
func Errorf(format string, args ...any) {
	fmt.Printf("%s %s\n", paint(colorRed, "✗"), fmt.Sprintf(format, args...))
}

// Warnf prints a warning message.
func Warnf(format string, args ...any) {
	fmt.Printf("%s %s\n", paint(colorYellow, "⚠"), fmt.Sprintf(format, args...))
}

// Infof prints an indented informational message.
func Infof(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
