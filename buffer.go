package minterm

import (
	"fmt"
	"strings"
)

// Buffer is a fixed-size 2D grid of cells representing one full screen
// snapshot. Indexed access outside the grid is a caller contract violation
// and panics; it is never silently clamped.
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer allocates a buffer of blank cells (single space, identity style).
// Negative dimensions are treated as zero.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	cells := make([]Cell, width*height)
	blank := BlankCell()
	for i := range cells {
		cells[i] = blank
	}

	return &Buffer{
		cells:  cells,
		width:  width,
		height: height,
	}
}

// Width returns the buffer width in columns.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in rows.
func (b *Buffer) Height() int {
	return b.height
}

// Size returns the buffer dimensions (width, height).
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// index converts (x, y) to a flat index. Panics when out of range.
func (b *Buffer) index(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(fmt.Sprintf("minterm: buffer access (%d, %d) out of range %dx%d", x, y, b.width, b.height))
	}
	return y*b.width + x
}

// Cell returns the cell at (x, y). Panics when out of range.
func (b *Buffer) Cell(x, y int) Cell {
	return b.cells[b.index(x, y)]
}

// SetCell stores a cell at (x, y). Panics when out of range.
func (b *Buffer) SetCell(x, y int, c Cell) {
	b.cells[b.index(x, y)] = c
}

// Clear resets every cell to blank in place, preserving dimensions.
func (b *Buffer) Clear() {
	blank := BlankCell()
	for i := range b.cells {
		b.cells[i] = blank
	}
}

// SetSymbol places a single grapheme cluster at (x, y), handling wide glyphs
// and cleanup of any overlapped wide glyph. Writes that fall outside the
// grid are dropped; this is clipping, not indexed access.
func (b *Buffer) SetSymbol(x, y int, symbol string, style Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}

	width := SymbolWidth(symbol)
	current := b.Cell(x, y)

	// Writing over a continuation clears the wide glyph it belongs to.
	if current.IsContinuation() {
		b.clearWideGlyphAt(x, y)
	}

	// Writing over the head of a wide glyph clears its continuation.
	if current.Width == 2 && x+1 < b.width {
		b.SetCell(x+1, y, BlankCell())
	}

	// A wide glyph landing next to another wide glyph clears the neighbor.
	if width == 2 && x+1 < b.width {
		next := b.Cell(x+1, y)
		if next.Width == 2 || next.IsContinuation() {
			b.clearWideGlyphAt(x+1, y)
		}
	}

	// A wide glyph that cannot fit in the last column degrades to a space.
	if width == 2 && x+1 >= b.width {
		b.SetCell(x, y, NewCell(" ", style))
		return
	}

	b.SetCell(x, y, NewCell(symbol, style))
	if width == 2 {
		b.SetCell(x+1, y, continuationCell(style))
	}
}

// clearWideGlyphAt blanks the wide glyph covering (x, y), including its
// other column.
func (b *Buffer) clearWideGlyphAt(x, y int) {
	cell := b.Cell(x, y)
	blank := BlankCell()

	if cell.IsContinuation() {
		if x > 0 {
			b.SetCell(x-1, y, blank)
		}
		b.SetCell(x, y, blank)
	} else if cell.Width == 2 {
		b.SetCell(x, y, blank)
		if x+1 < b.width {
			b.SetCell(x+1, y, blank)
		}
	}
}

// SetString writes a string starting at (x, y), splitting it into grapheme
// clusters. Returns the total display width consumed. Stops at the right
// edge without wrapping.
func (b *Buffer) SetString(x, y int, s string, style Style) int {
	if y < 0 || y >= b.height {
		return 0
	}

	total := 0
	curX := x

	for _, cluster := range Graphemes(s) {
		if curX >= b.width {
			break
		}
		width := SymbolWidth(cluster)
		if curX < 0 {
			// Cluster sits before the visible area.
			curX += width
			continue
		}
		if width == 2 && curX+1 >= b.width {
			break
		}

		b.SetSymbol(curX, y, cluster, style)
		curX += width
		total += width
	}

	return total
}

// Fill fills the given region with a grapheme cluster and style.
// The region is clipped to the buffer bounds.
func (b *Buffer) Fill(x, y, width, height int, symbol string, style Style) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+width, b.width), min(y+height, b.height)
	glyphWidth := SymbolWidth(symbol)

	for row := y0; row < y1; row++ {
		for col := x0; col < x1; {
			if glyphWidth == 2 && col+1 >= x1 {
				// Wide glyph does not fit in the remaining span.
				b.SetSymbol(col, row, " ", style)
				col++
				continue
			}
			b.SetSymbol(col, row, symbol, style)
			col += glyphWidth
		}
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Buffer{cells: cells, width: b.width, height: b.height}
}

// String renders the buffer content for debugging. Rows are separated by
// newlines; continuation cells are elided.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			cell := b.cells[y*b.width+x]
			if cell.IsContinuation() {
				continue
			}
			if cell.Symbol == "" {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(cell.Symbol)
			}
		}
		if y < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// StringTrimmed returns the buffer content with trailing spaces removed from
// each line.
func (b *Buffer) StringTrimmed() string {
	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
