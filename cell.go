package minterm

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cell is one screen position: a grapheme cluster plus its resolved style.
// Wide glyphs (CJK, emoji) occupy two columns; the first cell holds the
// cluster, the following cell is a continuation with an empty symbol.
type Cell struct {
	// Symbol is the grapheme cluster displayed at this position.
	// Empty for continuation cells.
	Symbol string
	// Style is the resolved rendering style.
	Style Style
	// Width is the display width in columns (1 or 2; 0 for continuation).
	Width uint8

	// skip marks cells the diff engine decided need no re-emission.
	// Transient within one draw cycle; never part of cell equality.
	skip bool
}

// NewCell creates a cell for the given grapheme cluster with automatic
// width measurement. An empty symbol yields a continuation cell.
func NewCell(symbol string, style Style) Cell {
	return Cell{
		Symbol: symbol,
		Style:  style,
		Width:  uint8(SymbolWidth(symbol)),
	}
}

// BlankCell returns the canonical empty cell: a single space with the
// identity style.
func BlankCell() Cell {
	return Cell{Symbol: " ", Width: 1}
}

// continuationCell returns the filler placed behind a wide glyph.
func continuationCell(style Style) Cell {
	return Cell{Style: style, Width: 0, skip: true}
}

// IsContinuation reports whether this cell is the trailing column of a
// wide glyph.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// Skipped reports whether the cell is marked as needing no re-emission.
func (c Cell) Skipped() bool {
	return c.skip
}

// SetSkip sets or clears the transient skip marker.
func (c *Cell) SetSkip(skip bool) {
	c.skip = skip
}

// Equal reports whether both cells render identically.
// The transient skip marker does not participate.
func (c Cell) Equal(other Cell) bool {
	return c.Symbol == other.Symbol && c.Width == other.Width && c.Style.Equal(other.Style)
}

// SymbolWidth returns the display width of a grapheme cluster in columns,
// clamped to 2. Empty input reports 0.
func SymbolWidth(symbol string) int {
	if symbol == "" {
		return 0
	}
	w := runewidth.StringWidth(symbol)
	if w < 1 {
		w = 1
	}
	if w > 2 {
		w = 2
	}
	return w
}

// Graphemes splits a string into its grapheme clusters.
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}
	clusters := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	return clusters
}
