package util

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

/*
   references:
   - https://no-color.org/
   - https://github.com/sitkevij/no_color
*/

const (
	fallbackWidth  = 120
	fallbackHeight = 32
)

// IsTerminal checks if stdout is a terminal using go-isatty
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// IsInteractive is true when both ends of the session are a terminal,
// which the full-screen browser needs
func IsInteractive() bool {
	return IsTerminal() && isatty.IsTerminal(os.Stdin.Fd())
}

// ShouldUseColors determines if coloured output should be used
func ShouldUseColors() bool {
	if noColor := os.Getenv("NO_COLOR"); noColor != "" {
		return false
	}

	if forceColor := os.Getenv("FORCE_COLOR"); forceColor != "" {
		return forceColor != "0"
	}

	if holoColors := os.Getenv("HOLOCRON_FORCE_COLORS"); holoColors != "" {
		return strings.ToLower(holoColors) == "true"
	}

	return IsTerminal()
}

// TerminalSize returns the stdout dimensions, falling back to a sane default
// when stdout is redirected
func TerminalSize() (width, height int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}
