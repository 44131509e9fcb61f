package minterm

import (
	"errors"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorKind distinguishes between color representations.
type ColorKind uint8

const (
	// ColorUnset is the zero value: the style leaves this channel untouched.
	ColorUnset ColorKind = iota
	// ColorReset selects the terminal's configured default color.
	ColorReset
	// ColorBasic is one of the 16 standard ANSI colors (index 0-15).
	ColorBasic
	// ColorIndexed is an entry in the 256-color palette (index 0-255).
	ColorIndexed
	// ColorRGB is a 24-bit true color.
	ColorRGB
)

// Color is a terminal color. The zero value means "no color set", which a
// Style uses to leave the inherited color alone. Equality is structural.
type Color struct {
	kind ColorKind
	// For Basic/Indexed: idx holds the palette index.
	// For RGB: r, g, b hold the components.
	idx     uint8
	r, g, b uint8
}

// ResetColor returns a Color selecting the terminal default.
func ResetColor() Color {
	return Color{kind: ColorReset}
}

// BasicColor returns one of the 16 standard ANSI colors.
// Panics if index > 15; that is a caller bug, not an environmental condition.
func BasicColor(index uint8) Color {
	if index > 15 {
		panic(fmt.Sprintf("minterm: basic color index %d out of range 0-15", index))
	}
	return Color{kind: ColorBasic, idx: index}
}

// IndexedColor returns an entry from the 256-color palette.
func IndexedColor(index uint8) Color {
	return Color{kind: ColorIndexed, idx: index}
}

// RGBColor returns a 24-bit true color.
func RGBColor(r, g, b uint8) Color {
	return Color{kind: ColorRGB, r: r, g: g, b: b}
}

// HexColor parses a hex color string into an RGB Color.
// Supported formats: "#RRGGBB" and "#RGB".
func HexColor(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	switch len(hex) {
	case 3:
		// Expand each nibble: #abc -> #aabbcc
		var expanded strings.Builder
		for i := 0; i < 3; i++ {
			expanded.WriteByte(hex[i])
			expanded.WriteByte(hex[i])
		}
		hex = expanded.String()
	case 6:
	default:
		return Color{}, errors.New("invalid hex color format: expected #RGB or #RRGGBB")
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return RGBColor(r, g, b), nil
}

// Kind returns the ColorKind of this color.
func (c Color) Kind() ColorKind {
	return c.kind
}

// IsSet reports whether the color carries a value (including Reset).
func (c Color) IsSet() bool {
	return c.kind != ColorUnset
}

// Basic returns the ANSI 16-color index.
// Panics if the color is not a basic color.
func (c Color) Basic() uint8 {
	if c.kind != ColorBasic {
		panic("minterm: Color.Basic() called on non-basic color")
	}
	return c.idx
}

// Index returns the 256-palette index.
// Panics if the color is neither basic nor indexed.
func (c Color) Index() uint8 {
	if c.kind != ColorBasic && c.kind != ColorIndexed {
		panic("minterm: Color.Index() called on non-palette color")
	}
	return c.idx
}

// RGB returns the red, green, and blue components.
// Panics if the color is not an RGB color.
func (c Color) RGB() (r, g, b uint8) {
	if c.kind != ColorRGB {
		panic("minterm: Color.RGB() called on non-RGB color")
	}
	return c.r, c.g, c.b
}

// Equal reports whether both colors are structurally identical.
func (c Color) Equal(other Color) bool {
	if c.kind != other.kind {
		return false
	}
	switch c.kind {
	case ColorUnset, ColorReset:
		return true
	case ColorBasic, ColorIndexed:
		return c.idx == other.idx
	case ColorRGB:
		return c.r == other.r && c.g == other.g && c.b == other.b
	}
	return false
}

// String returns a short debug representation.
func (c Color) String() string {
	switch c.kind {
	case ColorUnset:
		return "unset"
	case ColorReset:
		return "reset"
	case ColorBasic:
		return fmt.Sprintf("basic:%d", c.idx)
	case ColorIndexed:
		return fmt.Sprintf("idx:%d", c.idx)
	case ColorRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.r, c.g, c.b)
	}
	return "unknown"
}

// ToIndexed approximates an RGB color to the nearest 256-palette entry using
// the 6x6x6 color cube (16-231) plus the grayscale ramp (232-255).
// Non-RGB colors are returned unchanged.
func (c Color) ToIndexed() Color {
	if c.kind != ColorRGB {
		return c
	}

	r, g, b := c.r, c.g, c.b

	if r == g && g == b {
		// Grayscale ramp, with cube black/white at the extremes.
		if r < 8 {
			return IndexedColor(16)
		}
		if r > 248 {
			return IndexedColor(231)
		}
		return IndexedColor(uint8(232 + (int(r)-8)*24/240))
	}

	ri := int(r) * 5 / 255
	gi := int(g) * 5 / 255
	bi := int(b) * 5 / 255
	return IndexedColor(uint8(16 + 36*ri + 6*gi + bi))
}

// Standard ANSI colors (basic 8).
var (
	Black   = BasicColor(0)
	Red     = BasicColor(1)
	Green   = BasicColor(2)
	Yellow  = BasicColor(3)
	Blue    = BasicColor(4)
	Magenta = BasicColor(5)
	Cyan    = BasicColor(6)
	White   = BasicColor(7)
)

// Bright ANSI colors (high-intensity variants).
var (
	BrightBlack   = BasicColor(8)
	BrightRed     = BasicColor(9)
	BrightGreen   = BasicColor(10)
	BrightYellow  = BasicColor(11)
	BrightBlue    = BasicColor(12)
	BrightMagenta = BasicColor(13)
	BrightCyan    = BasicColor(14)
	BrightWhite   = BasicColor(15)
)

// basic16RGB maps ANSI colors 0-15 to typical RGB values.
// Actual values vary by terminal.
var basic16RGB = [16][3]uint8{
	{0, 0, 0},       // 0: Black
	{205, 49, 49},   // 1: Red
	{13, 188, 121},  // 2: Green
	{229, 229, 16},  // 3: Yellow
	{36, 114, 200},  // 4: Blue
	{188, 63, 188},  // 5: Magenta
	{17, 168, 205},  // 6: Cyan
	{229, 229, 229}, // 7: White
	{102, 102, 102}, // 8: Bright Black (Gray)
	{241, 76, 76},   // 9: Bright Red
	{35, 209, 139},  // 10: Bright Green
	{245, 245, 67},  // 11: Bright Yellow
	{59, 142, 234},  // 12: Bright Blue
	{214, 112, 214}, // 13: Bright Magenta
	{41, 184, 219},  // 14: Bright Cyan
	{255, 255, 255}, // 15: Bright White
}

// RGBValues returns the red, green, and blue components of any color.
// Palette colors are approximated; unset and reset report (0, 0, 0).
func (c Color) RGBValues() (r, g, b uint8) {
	switch c.kind {
	case ColorRGB:
		return c.r, c.g, c.b
	case ColorBasic:
		rgb := basic16RGB[c.idx]
		return rgb[0], rgb[1], rgb[2]
	case ColorIndexed:
		idx := c.idx
		if idx < 16 {
			rgb := basic16RGB[idx]
			return rgb[0], rgb[1], rgb[2]
		}
		if idx < 232 {
			// 6x6x6 cube: index = 16 + 36r + 6g + b with components 0-5.
			idx -= 16
			cube := func(v uint8) uint8 {
				if v == 0 {
					return 0
				}
				return 55 + v*40
			}
			return cube(idx / 36), cube((idx % 36) / 6), cube(idx % 6)
		}
		gray := 8 + (idx-232)*10
		return gray, gray, gray
	}
	return 0, 0, 0
}

// colorfulValue converts the color to a colorful.Color for color math.
func (c Color) colorfulValue() colorful.Color {
	r, g, b := c.RGBValues()
	return colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
}

// Luminance returns the perceptual lightness of the color in [0, 1]
// (CIE L*a*b* lightness). Unset and reset colors report 0.
func (c Color) Luminance() float64 {
	if c.kind == ColorUnset || c.kind == ColorReset {
		return 0
	}
	l, _, _ := c.colorfulValue().Lab()
	return l
}

// IsLight reports whether the color is perceptually light.
// Unset and reset colors are assumed dark.
func (c Color) IsLight() bool {
	return c.Luminance() > 0.5
}
