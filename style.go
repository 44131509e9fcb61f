package minterm

// Modifier is a bitset of text rendering modifiers.
type Modifier uint16

const (
	// ModNone represents no modifiers.
	ModNone Modifier = 0
	// ModBold makes text bold/bright. Mutually exclusive with ModDim at the
	// terminal level: one SGR code (22) cancels both.
	ModBold Modifier = 1 << iota
	// ModDim makes text dimmed/faint.
	ModDim
	// ModItalic makes text italic.
	ModItalic
	// ModUnderline underlines the text.
	ModUnderline
	// ModBlink makes text blink (rarely supported).
	ModBlink
	// ModInvert swaps foreground and background colors.
	ModInvert
	// ModHidden conceals the text.
	ModHidden
	// ModStrikethrough draws a line through the text.
	ModStrikethrough
)

// Has reports whether every bit of o is set in m.
func (m Modifier) Has(o Modifier) bool {
	return m&o == o
}

// Union returns the set union of m and o.
func (m Modifier) Union(o Modifier) Modifier {
	return m | o
}

// Diff returns the set difference m \ o.
func (m Modifier) Diff(o Modifier) Modifier {
	return m &^ o
}

// Style describes how a cell is rendered: optional foreground, background,
// and underline colors plus modifier sets to add and to remove. The zero
// value is the identity style: patching with it changes nothing.
type Style struct {
	Fg        Color
	Bg        Color
	Underline Color
	Add       Modifier
	Remove    Modifier
}

// NewStyle returns the identity style.
func NewStyle() Style {
	return Style{}
}

// Foreground returns a copy of the style with the given foreground color.
func (s Style) Foreground(c Color) Style {
	s.Fg = c
	return s
}

// Background returns a copy of the style with the given background color.
func (s Style) Background(c Color) Style {
	s.Bg = c
	return s
}

// UnderlineColor returns a copy of the style with the given underline color.
func (s Style) UnderlineColor(c Color) Style {
	s.Underline = c
	return s
}

// AddModifiers returns a copy of the style that turns the given modifiers on.
func (s Style) AddModifiers(m Modifier) Style {
	s.Add |= m
	s.Remove &^= m
	return s
}

// RemoveModifiers returns a copy of the style that turns the given modifiers off.
func (s Style) RemoveModifiers(m Modifier) Style {
	s.Remove |= m
	s.Add &^= m
	return s
}

// Bold returns a copy of the style with the bold modifier added.
func (s Style) Bold() Style { return s.AddModifiers(ModBold) }

// Dim returns a copy of the style with the dim modifier added.
func (s Style) Dim() Style { return s.AddModifiers(ModDim) }

// Italic returns a copy of the style with the italic modifier added.
func (s Style) Italic() Style { return s.AddModifiers(ModItalic) }

// Underlined returns a copy of the style with the underline modifier added.
func (s Style) Underlined() Style { return s.AddModifiers(ModUnderline) }

// Blink returns a copy of the style with the blink modifier added.
func (s Style) Blink() Style { return s.AddModifiers(ModBlink) }

// Invert returns a copy of the style with the invert modifier added.
func (s Style) Invert() Style { return s.AddModifiers(ModInvert) }

// Hidden returns a copy of the style with the hidden modifier added.
func (s Style) Hidden() Style { return s.AddModifiers(ModHidden) }

// Strikethrough returns a copy of the style with the strikethrough modifier added.
func (s Style) Strikethrough() Style { return s.AddModifiers(ModStrikethrough) }

// Patch overlays incoming onto s: set colors in incoming override, and the
// add/remove modifier sets are unioned independently. This lets a style be
// an incremental overlay over an inherited style without knowing the full
// inherited state. Patching with the identity style is a no-op; patching the
// identity style with x yields x.
func (s Style) Patch(incoming Style) Style {
	if incoming.Fg.IsSet() {
		s.Fg = incoming.Fg
	}
	if incoming.Bg.IsSet() {
		s.Bg = incoming.Bg
	}
	if incoming.Underline.IsSet() {
		s.Underline = incoming.Underline
	}
	s.Add |= incoming.Add
	s.Remove |= incoming.Remove
	return s
}

// Modifiers returns the effective modifier set: added bits minus removed bits.
func (s Style) Modifiers() Modifier {
	return s.Add &^ s.Remove
}

// Equal reports whether both styles are identical.
func (s Style) Equal(other Style) bool {
	return s.Fg.Equal(other.Fg) &&
		s.Bg.Equal(other.Bg) &&
		s.Underline.Equal(other.Underline) &&
		s.Add == other.Add &&
		s.Remove == other.Remove
}

// DiffModifiers returns the modifier bits turned on and turned off when
// moving from one effective modifier set to another.
func DiffModifiers(from, to Modifier) (added, removed Modifier) {
	return to.Diff(from), from.Diff(to)
}
