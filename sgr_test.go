package minterm

import (
	"reflect"
	"testing"
)

func fullCaps() Capabilities {
	return Capabilities{
		Colors:         ColorDepthTrue,
		TrueColor:      true,
		UnderlineColor: true,
	}
}

func TestTransitionStyle_Identity(t *testing.T) {
	styles := []Style{
		NewStyle(),
		NewStyle().Foreground(Red).Bold(),
		NewStyle().UnderlineColor(RGBColor(1, 2, 3)).Underlined(),
	}
	for _, s := range styles {
		if frags := TransitionStyle(s, s, fullCaps(), false); frags != nil {
			t.Errorf("TransitionStyle(x, x) = %v, want nil", frags)
		}
	}
}

func TestTransitionStyle_Colors(t *testing.T) {
	type tc struct {
		from, to Style
		caps     Capabilities
		want     []string
	}

	tests := map[string]tc{
		"basic foreground": {
			from: NewStyle(),
			to:   NewStyle().Foreground(Red),
			caps: fullCaps(),
			want: []string{"\x1b[31m"},
		},
		"bright basic maps modulo 8": {
			from: NewStyle(),
			to:   NewStyle().Foreground(BrightRed),
			caps: fullCaps(),
			want: []string{"\x1b[31m"},
		},
		"indexed foreground": {
			from: NewStyle(),
			to:   NewStyle().Foreground(IndexedColor(200)),
			caps: fullCaps(),
			want: []string{"\x1b[38;5;200m"},
		},
		"rgb foreground": {
			from: NewStyle(),
			to:   NewStyle().Foreground(RGBColor(10, 20, 30)),
			caps: fullCaps(),
			want: []string{"\x1b[38;2;10;20;30m"},
		},
		"basic background": {
			from: NewStyle(),
			to:   NewStyle().Background(Blue),
			caps: fullCaps(),
			want: []string{"\x1b[44m"},
		},
		"rgb background": {
			from: NewStyle(),
			to:   NewStyle().Background(RGBColor(1, 2, 3)),
			caps: fullCaps(),
			want: []string{"\x1b[48;2;1;2;3m"},
		},
		"foreground to default via reset": {
			from: NewStyle().Foreground(Red),
			to:   NewStyle().Foreground(ResetColor()),
			caps: fullCaps(),
			want: []string{"\x1b[39m"},
		},
		"foreground to unset emits default": {
			from: NewStyle().Foreground(Red),
			to:   NewStyle(),
			caps: fullCaps(),
			want: []string{"\x1b[39m"},
		},
		"background to unset emits default": {
			from: NewStyle().Background(Blue),
			to:   NewStyle(),
			caps: fullCaps(),
			want: []string{"\x1b[49m"},
		},
		"both colors": {
			from: NewStyle(),
			to:   NewStyle().Foreground(Red).Background(Blue),
			caps: fullCaps(),
			want: []string{"\x1b[31m", "\x1b[44m"},
		},
		"rgb degrades to indexed without truecolor": {
			from: NewStyle(),
			to:   NewStyle().Foreground(RGBColor(255, 0, 0)),
			caps: Capabilities{Colors: ColorDepth256},
			want: []string{"\x1b[38;5;196m"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := TransitionStyle(tt.from, tt.to, tt.caps, false)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TransitionStyle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransitionStyle_UnderlineColor(t *testing.T) {
	type tc struct {
		from, to Style
		caps     Capabilities
		fallback bool
		want     []string
	}

	tests := map[string]tc{
		"supported rgb": {
			from: NewStyle(),
			to:   NewStyle().UnderlineColor(RGBColor(1, 2, 3)),
			caps: fullCaps(),
			want: []string{"\x1b[58;2;1;2;3m"},
		},
		"supported indexed": {
			from: NewStyle(),
			to:   NewStyle().UnderlineColor(IndexedColor(99)),
			caps: fullCaps(),
			want: []string{"\x1b[58;5;99m"},
		},
		"supported clear": {
			from: NewStyle().UnderlineColor(Red),
			to:   NewStyle(),
			caps: fullCaps(),
			want: []string{"\x1b[59m"},
		},
		"unsupported maps to foreground": {
			from:     NewStyle(),
			to:       NewStyle().UnderlineColor(RGBColor(1, 2, 3)),
			caps:     Capabilities{Colors: ColorDepthTrue, TrueColor: true},
			fallback: true,
			want:     []string{"\x1b[38;2;1;2;3m"},
		},
		"unsupported dropped": {
			from: NewStyle(),
			to:   NewStyle().UnderlineColor(RGBColor(1, 2, 3)),
			caps: Capabilities{Colors: ColorDepthTrue, TrueColor: true},
			want: nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := TransitionStyle(tt.from, tt.to, tt.caps, tt.fallback)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TransitionStyle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransitionStyle_Modifiers(t *testing.T) {
	type tc struct {
		from, to Style
		want     []string
	}

	tests := map[string]tc{
		"turn bold on": {
			from: NewStyle(),
			to:   NewStyle().Bold(),
			want: []string{"\x1b[1m"},
		},
		"turn bold off resets intensity": {
			from: NewStyle().Bold(),
			to:   NewStyle(),
			want: []string{"\x1b[22m"},
		},
		"bold off keeps dim": {
			from: Style{Add: ModBold | ModDim},
			to:   Style{Add: ModDim},
			want: []string{"\x1b[22m", "\x1b[2m"},
		},
		"dim off keeps bold": {
			from: Style{Add: ModBold | ModDim},
			to:   Style{Add: ModBold},
			want: []string{"\x1b[22m", "\x1b[1m"},
		},
		"italic off uses dedicated reset": {
			from: NewStyle().Italic(),
			to:   NewStyle(),
			want: []string{"\x1b[23m"},
		},
		"removals precede additions": {
			from: NewStyle().Strikethrough(),
			to:   NewStyle().Italic(),
			want: []string{"\x1b[29m", "\x1b[3m"},
		},
		"canonical order within additions": {
			from: NewStyle(),
			to:   NewStyle().Strikethrough().Italic().Underlined(),
			want: []string{"\x1b[3m", "\x1b[4m", "\x1b[9m"},
		},
		"bold swap to italic": {
			from: NewStyle().Bold(),
			to:   NewStyle().Italic(),
			want: []string{"\x1b[22m", "\x1b[3m"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := TransitionStyle(tt.from, tt.to, fullCaps(), false)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TransitionStyle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransitionStyle_ColorsBeforeModifiers(t *testing.T) {
	got := TransitionStyle(NewStyle(), NewStyle().Foreground(Red).Bold(), fullCaps(), false)
	want := []string{"\x1b[31m", "\x1b[1m"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TransitionStyle = %q, want %q", got, want)
	}
}

func TestCompressSGR(t *testing.T) {
	type tc struct {
		input []string
		want  []string
	}

	tests := map[string]tc{
		"merges simple codes": {
			input: []string{"\x1b[1m", "\x1b[3m"},
			want:  []string{"\x1b[1;3m"},
		},
		"preserves first-seen order": {
			input: []string{"\x1b[31m", "\x1b[44m", "\x1b[1m"},
			want:  []string{"\x1b[31;44;1m"},
		},
		"deduplicates": {
			input: []string{"\x1b[1m", "\x1b[1;3m"},
			want:  []string{"\x1b[1;3m"},
		},
		"indexed color blocks merge": {
			input: []string{"\x1b[38;5;200m", "\x1b[1m"},
			want:  []string{"\x1b[38;5;200m", "\x1b[1m"},
		},
		"truecolor blocks merge": {
			input: []string{"\x1b[1m", "\x1b[48;2;1;2;3m"},
			want:  []string{"\x1b[1m", "\x1b[48;2;1;2;3m"},
		},
		"underline color blocks merge": {
			input: []string{"\x1b[58;5;99m", "\x1b[4m"},
			want:  []string{"\x1b[58;5;99m", "\x1b[4m"},
		},
		"single fragment unchanged": {
			input: []string{"\x1b[1m"},
			want:  []string{"\x1b[1m"},
		},
		"empty unchanged": {
			input: nil,
			want:  nil,
		},
		"non sgr fragment blocks merge": {
			input: []string{"\x1b[1m", "\x1b[2J"},
			want:  []string{"\x1b[1m", "\x1b[2J"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := CompressSGR(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CompressSGR(%q) = %q, want %q", tt.input, got, tt.want)
			}
			again := CompressSGR(got)
			if !reflect.DeepEqual(again, got) {
				t.Errorf("CompressSGR not idempotent: %q then %q", got, again)
			}
		})
	}
}

// Feeding a compiled transition through a minimal SGR interpreter must land
// on the target style, treating unset and reset colors as equivalent
// terminal defaults.
func TestTransitionStyle_RoundTrip(t *testing.T) {
	styles := []Style{
		NewStyle(),
		NewStyle().Foreground(Red),
		NewStyle().Foreground(IndexedColor(120)).Background(RGBColor(9, 8, 7)),
		NewStyle().Bold().Italic(),
		Style{Add: ModDim | ModStrikethrough},
		NewStyle().Foreground(Blue).Bold().Underlined(),
		NewStyle().UnderlineColor(IndexedColor(45)),
	}

	for _, from := range styles {
		for _, to := range styles {
			frags := CompressSGR(TransitionStyle(from, to, fullCaps(), false))
			got := applySGR(normalizeStyle(from), frags)
			want := normalizeStyle(to)
			if !got.Equal(want) {
				t.Errorf("round trip %+v -> %+v via %q landed on %+v", from, to, frags, got)
			}
		}
	}
}

// normalizeStyle rewrites unset colors as explicit resets so round-trip
// comparison matches what a terminal actually tracks.
func normalizeStyle(s Style) Style {
	if !s.Fg.IsSet() {
		s.Fg = ResetColor()
	}
	if !s.Bg.IsSet() {
		s.Bg = ResetColor()
	}
	if !s.Underline.IsSet() {
		s.Underline = ResetColor()
	}
	s.Add = s.Modifiers()
	s.Remove = ModNone
	return s
}

// applySGR interprets SGR fragments the way a terminal would, mutating a
// tracked style.
func applySGR(s Style, frags []string) Style {
	for _, frag := range frags {
		body := frag[2 : len(frag)-1]
		toks := splitParams(body)
		for i := 0; i < len(toks); i++ {
			switch toks[i] {
			case 1:
				s.Add = s.Add.Union(ModBold)
			case 2:
				s.Add = s.Add.Union(ModDim)
			case 3:
				s.Add = s.Add.Union(ModItalic)
			case 4:
				s.Add = s.Add.Union(ModUnderline)
			case 5:
				s.Add = s.Add.Union(ModBlink)
			case 7:
				s.Add = s.Add.Union(ModInvert)
			case 8:
				s.Add = s.Add.Union(ModHidden)
			case 9:
				s.Add = s.Add.Union(ModStrikethrough)
			case 22:
				s.Add = s.Add.Diff(ModBold | ModDim)
			case 23:
				s.Add = s.Add.Diff(ModItalic)
			case 24:
				s.Add = s.Add.Diff(ModUnderline)
			case 25:
				s.Add = s.Add.Diff(ModBlink)
			case 27:
				s.Add = s.Add.Diff(ModInvert)
			case 28:
				s.Add = s.Add.Diff(ModHidden)
			case 29:
				s.Add = s.Add.Diff(ModStrikethrough)
			case 39:
				s.Fg = ResetColor()
			case 49:
				s.Bg = ResetColor()
			case 59:
				s.Underline = ResetColor()
			case 38, 48, 58:
				introducer := toks[i]
				var c Color
				if toks[i+1] == 5 {
					c = IndexedColor(uint8(toks[i+2]))
					i += 2
				} else {
					c = RGBColor(uint8(toks[i+2]), uint8(toks[i+3]), uint8(toks[i+4]))
					i += 4
				}
				switch introducer {
				case 38:
					s.Fg = c
				case 48:
					s.Bg = c
				default:
					s.Underline = c
				}
			default:
				n := toks[i]
				switch {
				case n >= 30 && n <= 37:
					s.Fg = BasicColor(uint8(n - 30))
				case n >= 40 && n <= 47:
					s.Bg = BasicColor(uint8(n - 40))
				}
			}
		}
	}
	return s
}

func splitParams(body string) []int {
	var out []int
	n := 0
	for i := 0; i <= len(body); i++ {
		if i == len(body) || body[i] == ';' {
			out = append(out, n)
			n = 0
			continue
		}
		n = n*10 + int(body[i]-'0')
	}
	return out
}
