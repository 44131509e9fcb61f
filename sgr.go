package minterm

import (
	"strconv"
	"strings"
)

// SGRReset is the full style-reset control code.
const SGRReset = "\x1b[0m"

// sgr wraps raw parameter text in a CSI ... m control code.
func sgr(params string) string {
	return "\x1b[" + params + "m"
}

// fgParams returns the SGR parameter list selecting a foreground color.
// Basic colors use the classic 30-37 codes (index modulo 8); indexed colors
// the 38;5 form; RGB the 38;2 form; reset the default code 39.
func fgParams(c Color) string {
	switch c.Kind() {
	case ColorReset:
		return "39"
	case ColorBasic:
		return strconv.Itoa(30 + int(c.Basic()%8))
	case ColorIndexed:
		return "38;5;" + strconv.Itoa(int(c.Index()))
	case ColorRGB:
		r, g, b := c.RGB()
		return "38;2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b))
	}
	return ""
}

// bgParams mirrors fgParams with the background color codes.
func bgParams(c Color) string {
	switch c.Kind() {
	case ColorReset:
		return "49"
	case ColorBasic:
		return strconv.Itoa(40 + int(c.Basic()%8))
	case ColorIndexed:
		return "48;5;" + strconv.Itoa(int(c.Index()))
	case ColorRGB:
		r, g, b := c.RGB()
		return "48;2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b))
	}
	return ""
}

// underlineParams returns the SGR 58/59 parameter list for an underline
// color. There is no basic-color underline code, so basic indices degrade
// to the 58;5 palette form.
func underlineParams(c Color) string {
	switch c.Kind() {
	case ColorReset:
		return "59"
	case ColorBasic, ColorIndexed:
		return "58;5;" + strconv.Itoa(int(c.Index()))
	case ColorRGB:
		r, g, b := c.RGB()
		return "58;2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b))
	}
	return ""
}

// modifierCodes lists set/reset SGR codes per modifier bit in the canonical
// emission order.
var modifierCodes = []struct {
	mod   Modifier
	set   int
	reset int
}{
	{ModBold, 1, 22},
	{ModDim, 2, 22},
	{ModItalic, 3, 23},
	{ModUnderline, 4, 24},
	{ModBlink, 5, 25},
	{ModInvert, 7, 27},
	{ModHidden, 8, 28},
	{ModStrikethrough, 9, 29},
}

// TransitionStyle compiles the control codes a terminal must receive to
// move from one style to another, as a list of independent SGR fragments.
// Identical styles produce nothing. The capability snapshot drives color
// degradation; mapUnderlineToForeground controls what happens to underline
// colors on terminals without SGR 58 support: when true the color is
// emitted as a foreground color (recoloring the glyph as a side effect),
// when false the change is dropped.
func TransitionStyle(from, to Style, caps Capabilities, mapUnderlineToForeground bool) []string {
	if from.Equal(to) {
		return nil
	}

	var frags []string

	if !from.Fg.Equal(to.Fg) {
		if to.Fg.IsSet() {
			if p := fgParams(caps.EffectiveColor(to.Fg)); p != "" {
				frags = append(frags, sgr(p))
			}
		} else if from.Fg.IsSet() {
			frags = append(frags, sgr("39"))
		}
	}

	if !from.Bg.Equal(to.Bg) {
		if to.Bg.IsSet() {
			if p := bgParams(caps.EffectiveColor(to.Bg)); p != "" {
				frags = append(frags, sgr(p))
			}
		} else if from.Bg.IsSet() {
			frags = append(frags, sgr("49"))
		}
	}

	if !from.Underline.Equal(to.Underline) {
		switch {
		case caps.UnderlineColor:
			if to.Underline.IsSet() {
				if p := underlineParams(caps.EffectiveColor(to.Underline)); p != "" {
					frags = append(frags, sgr(p))
				}
			} else if from.Underline.IsSet() {
				frags = append(frags, sgr("59"))
			}
		case mapUnderlineToForeground:
			if to.Underline.IsSet() {
				if p := fgParams(caps.EffectiveColor(to.Underline)); p != "" {
					frags = append(frags, sgr(p))
				}
			}
		}
	}

	fromMods, toMods := from.Modifiers(), to.Modifiers()
	if fromMods != toMods {
		added, removed := DiffModifiers(fromMods, toMods)

		// Turning off either bold or dim requires resetting both with
		// SGR 22, then re-applying whichever the target still wants.
		if removed.Has(ModBold) || removed.Has(ModDim) {
			frags = append(frags, sgr("22"))
			if toMods.Has(ModBold) {
				frags = append(frags, sgr("1"))
			}
			if toMods.Has(ModDim) {
				frags = append(frags, sgr("2"))
			}
			added = added.Diff(ModBold | ModDim)
			removed = removed.Diff(ModBold | ModDim)
		}

		// Removals before additions, in canonical bit order.
		for _, mc := range modifierCodes {
			if removed.Has(mc.mod) {
				frags = append(frags, sgr(strconv.Itoa(mc.reset)))
			}
		}
		for _, mc := range modifierCodes {
			if added.Has(mc.mod) {
				frags = append(frags, sgr(strconv.Itoa(mc.set)))
			}
		}
	}

	return frags
}

// CompressSGR merges adjacent simple SGR fragments into a single control
// code carrying the union of their parameters in first-seen order with
// duplicates removed. A fragment is simple when its parameter list is
// purely numeric; the extended color introducers 38/48/58 carry structured
// multi-part parameter lists and make the whole sequence non-mergeable, in
// which case the input is returned unmodified. Fewer than two fragments
// are returned unchanged. The transformation is pure and idempotent.
func CompressSGR(frags []string) []string {
	if len(frags) < 2 {
		return frags
	}

	var params []string
	seen := make(map[string]bool, len(frags))
	for _, frag := range frags {
		toks, ok := simpleSGRParams(frag)
		if !ok {
			return frags
		}
		for _, tok := range toks {
			if !seen[tok] {
				seen[tok] = true
				params = append(params, tok)
			}
		}
	}

	return []string{sgr(strings.Join(params, ";"))}
}

// simpleSGRParams splits an SGR fragment into its parameter tokens,
// reporting false for anything that is not a mergeable simple code.
func simpleSGRParams(frag string) ([]string, bool) {
	body, ok := strings.CutPrefix(frag, "\x1b[")
	if !ok {
		return nil, false
	}
	body, ok = strings.CutSuffix(body, "m")
	if !ok || body == "" {
		return nil, false
	}

	toks := strings.Split(body, ";")
	for _, tok := range toks {
		if tok == "" {
			return nil, false
		}
		for i := 0; i < len(tok); i++ {
			if tok[i] < '0' || tok[i] > '9' {
				return nil, false
			}
		}
		if tok == "38" || tok == "48" || tok == "58" {
			return nil, false
		}
	}
	return toks, true
}
