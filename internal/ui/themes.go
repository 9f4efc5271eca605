// Package ui holds the color themes shared by the CLI and error reporting.
// Escape sequences are derived from fatih/color attributes so that the
// themes follow the same palette as the rest of the terminal tooling, and
// color is disabled whenever fatih/color detects a non-color environment.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Theme is a set of ANSI escape sequences, one per role.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

// escape renders a single SGR attribute.
func escape(attr color.Attribute) string {
	return fmt.Sprintf("\x1b[%dm", attr)
}

var (
	// DarkTheme uses the bright palette for dark backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   escape(color.FgHiBlue),
		Secondary: escape(color.FgHiCyan),
		Success:   escape(color.FgHiGreen),
		Warning:   escape(color.FgHiYellow),
		Error:     escape(color.FgHiRed),
		Info:      escape(color.FgHiMagenta),
		Bold:      escape(color.Bold),
		Underline: escape(color.Underline),
		Reset:     escape(color.Reset),
	}

	// LightTheme uses the normal-intensity palette for light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   escape(color.FgBlue),
		Secondary: escape(color.FgCyan),
		Success:   escape(color.FgGreen),
		Warning:   escape(color.FgYellow),
		Error:     escape(color.FgRed),
		Info:      escape(color.FgMagenta),
		Bold:      escape(color.Bold),
		Underline: escape(color.Underline),
		Reset:     escape(color.Reset),
	}

	// NoColorTheme disables all styling.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme; tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates "dark", "light" or "none". Unknown names select dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme selects NoColorTheme when noColor is set, when NO_COLOR is
// present in the environment, or when fatih/color has disabled color (dumb
// terminal or stdout not a TTY). Otherwise it selects DarkTheme.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if _, exists := os.LookupEnv("NO_COLOR"); noColor || exists || color.NoColor {
		currentTheme = NoColorTheme
		color.NoColor = true
		return
	}
	currentTheme = DarkTheme
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the column count of w, or fallback when w is not a
// terminal.
func TerminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
