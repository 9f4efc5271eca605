package ui

// Shorthands returning escape codes from the current theme.

func ColorReset() string     { return GetCurrentTheme().Reset }
func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Secondary }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }

// Paint wraps s in code and a reset, or returns s unchanged when code is
// empty.
func Paint(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + ColorReset()
}

// ColorProvider exposes the current theme to packages that only need a
// couple of colors and must not import ui's callers, such as apperrors.
type ColorProvider struct{}

func (ColorProvider) Yellow() string { return ColorYellow() }
func (ColorProvider) Reset() string  { return ColorReset() }
