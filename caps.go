package minterm

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
)

// DetectCapabilities determines terminal capabilities for a process writing
// to os.Stdout. Returns conservative defaults when detection fails.
func DetectCapabilities() Capabilities {
	return DetectCapabilitiesFromFd(os.Stdout.Fd())
}

// DetectCapabilitiesFromFd determines terminal capabilities for the device
// behind the given output descriptor. Interactive features (mouse, scroll
// regions) are only reported when that descriptor is a terminal.
func DetectCapabilitiesFromFd(fd uintptr) Capabilities {
	interactive := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return detectCapabilities(interactive)
}

// detectCapabilities reads the environment signals shared by every output
// device the process might write to.
func detectCapabilities(interactive bool) Capabilities {
	caps := Capabilities{
		Colors:        ColorDepth16, // Safe default for most terminals
		TrueColor:     false,
		Mouse:         interactive,
		ScrollRegion:  interactive,
		ReliableWidth: !runewidth.IsEastAsian(),
	}

	// Explicit true color indicators override everything else.
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		caps.Colors = ColorDepthTrue
		caps.TrueColor = true
	}

	// Terminal emulators known to support true color.
	if os.Getenv("WT_SESSION") != "" || // Windows Terminal
		os.Getenv("ITERM_SESSION_ID") != "" || // iTerm2
		os.Getenv("KITTY_WINDOW_ID") != "" || // Kitty
		os.Getenv("KONSOLE_VERSION") != "" || // Konsole
		os.Getenv("WEZTERM_EXECUTABLE") != "" || // WezTerm
		os.Getenv("VTE_VERSION") != "" { // VTE-based (GNOME Terminal, Tilix, ...)
		caps.Colors = ColorDepthTrue
		caps.TrueColor = true
	}

	term := strings.ToLower(os.Getenv("TERM"))

	// Colored underlines (SGR 58) are only reliably implemented by a
	// handful of emulators.
	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_EXECUTABLE") != "" ||
		os.Getenv("VTE_VERSION") != "" ||
		strings.Contains(term, "kitty") ||
		strings.Contains(term, "wezterm") {
		caps.UnderlineColor = true
	}

	// Synchronized updates (DEC private mode 2026).
	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_EXECUTABLE") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("VTE_VERSION") != "" ||
		strings.Contains(term, "kitty") ||
		strings.Contains(term, "wezterm") ||
		strings.Contains(term, "alacritty") ||
		strings.Contains(term, "foot") {
		caps.SyncUpdate = true
	}

	if caps.TrueColor {
		return caps
	}

	switch {
	case term == "dumb" || term == "":
		caps.Colors = ColorDepthNone
		caps.Mouse = false
		caps.ScrollRegion = false
		caps.UnderlineColor = false
		caps.SyncUpdate = false
	case strings.Contains(term, "truecolor"):
		caps.Colors = ColorDepthTrue
		caps.TrueColor = true
	case strings.Contains(term, "256color"):
		caps.Colors = ColorDepth256
	}

	return caps
}

// SupportsColor reports whether the terminal can render the given color
// as-is.
func (c Capabilities) SupportsColor(color Color) bool {
	switch color.Kind() {
	case ColorUnset, ColorReset:
		return true
	case ColorBasic:
		return c.Colors >= ColorDepth16
	case ColorIndexed:
		return c.Colors >= ColorDepth256
	case ColorRGB:
		return c.TrueColor
	}
	return false
}

// EffectiveColor returns the color to emit given the capability snapshot.
// Unsupported RGB colors are approximated to the 256 palette; unsupported
// palette colors fall back to the terminal default.
func (c Capabilities) EffectiveColor(color Color) Color {
	if c.SupportsColor(color) {
		return color
	}

	switch color.Kind() {
	case ColorRGB:
		if c.Colors >= ColorDepth16 {
			return color.ToIndexed()
		}
		return ResetColor()
	case ColorIndexed, ColorBasic:
		if c.Colors < ColorDepth16 {
			return ResetColor()
		}
		return color
	default:
		return color
	}
}

// String returns a human-readable description of the capabilities.
func (c Capabilities) String() string {
	var parts []string

	switch c.Colors {
	case ColorDepthNone:
		parts = append(parts, "no-color")
	case ColorDepth16:
		parts = append(parts, "16-color")
	case ColorDepth256:
		parts = append(parts, "256-color")
	case ColorDepthTrue:
		parts = append(parts, "true-color")
	}

	if c.UnderlineColor {
		parts = append(parts, "underline-color")
	}
	if c.SyncUpdate {
		parts = append(parts, "sync-update")
	}
	if c.Mouse {
		parts = append(parts, "mouse")
	}
	if c.ScrollRegion {
		parts = append(parts, "scroll-region")
	}
	if c.ReliableWidth {
		parts = append(parts, "reliable-width")
	}

	return strings.Join(parts, ", ")
}
