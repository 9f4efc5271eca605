package ui

import (
	"bytes"
	"os"
	"testing"
)

func TestThemesUseSGRSequences(t *testing.T) {
	t.Parallel()
	if DarkTheme.Primary != "\x1b[94m" || DarkTheme.Reset != "\x1b[0m" {
		t.Errorf("unexpected dark theme codes %q %q", DarkTheme.Primary, DarkTheme.Reset)
	}
	if LightTheme.Error != "\x1b[31m" || LightTheme.Bold != "\x1b[1m" {
		t.Errorf("unexpected light theme codes %q %q", LightTheme.Error, LightTheme.Bold)
	}
	if NoColorTheme.Primary != "" || NoColorTheme.Reset != "" {
		t.Error("no-color theme must be empty")
	}
}

// Theme tests mutate global state and run sequentially.

func TestSetTheme(t *testing.T) {
	original := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(original) })

	tests := []struct {
		name string
		want string
	}{
		{"light", "light"},
		{"none", "none"},
		{"dark", "dark"},
		{"solarized", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) selected %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitThemeNoColor(t *testing.T) {
	original := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(original) })

	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("InitTheme(true) selected %q", GetCurrentTheme().Name)
	}
	if ColorGreen() != "" || Paint(ColorGreen(), "ok") != "ok" {
		t.Error("color helpers should be empty without color")
	}
}

func TestInitThemeNoColorEnv(t *testing.T) {
	original := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(original) })
	t.Setenv("NO_COLOR", "1")

	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR should disable colors, got %q", GetCurrentTheme().Name)
	}
}

func TestPaintAndProvider(t *testing.T) {
	original := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(original) })
	SetCurrentTheme(DarkTheme)

	if got := Paint(ColorRed(), "x"); got != DarkTheme.Error+"x"+DarkTheme.Reset {
		t.Errorf("Paint = %q", got)
	}
	var p ColorProvider
	if p.Yellow() != DarkTheme.Warning || p.Reset() != DarkTheme.Reset {
		t.Error("ColorProvider should follow the current theme")
	}
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("a regular file is not a terminal")
	}
	if got := TerminalWidth(f, 80); got != 80 {
		t.Errorf("TerminalWidth fallback = %d", got)
	}
}
