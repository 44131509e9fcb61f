package minterm

// Frame is the write-capable view over the current buffer handed to drawing
// logic for the duration of one draw cycle. It must not be retained past
// the cycle; every method panics once the cycle has ended.
type Frame struct {
	buf *Buffer
}

func (f *Frame) buffer() *Buffer {
	if f.buf == nil {
		panic("minterm: frame used outside its draw cycle")
	}
	return f.buf
}

// Size returns the frame dimensions (width, height).
func (f *Frame) Size() (width, height int) {
	return f.buffer().Size()
}

// Cell returns the cell at (x, y). Panics when out of range.
func (f *Frame) Cell(x, y int) Cell {
	return f.buffer().Cell(x, y)
}

// SetCell stores a cell at (x, y). Panics when out of range.
func (f *Frame) SetCell(x, y int, c Cell) {
	f.buffer().SetCell(x, y, c)
}

// SetSymbol places a single grapheme cluster at (x, y).
// Writes outside the frame are clipped.
func (f *Frame) SetSymbol(x, y int, symbol string, style Style) {
	f.buffer().SetSymbol(x, y, symbol, style)
}

// SetString writes a string starting at (x, y) and returns the display
// width consumed. Stops at the right edge without wrapping.
func (f *Frame) SetString(x, y int, s string, style Style) int {
	return f.buffer().SetString(x, y, s, style)
}

// SetStringGradient writes a string with a gradient applied to the
// foreground per grapheme cluster. Returns the display width consumed.
func (f *Frame) SetStringGradient(x, y int, s string, g Gradient, base Style) int {
	buf := f.buffer()
	if y < 0 || y >= buf.Height() {
		return 0
	}

	clusters := Graphemes(s)
	total := 0
	curX := x

	for i, cluster := range clusters {
		if curX >= buf.Width() {
			break
		}
		width := SymbolWidth(cluster)
		if curX < 0 {
			curX += width
			continue
		}
		if width == 2 && curX+1 >= buf.Width() {
			break
		}

		t := 0.0
		if len(clusters) > 1 {
			t = float64(i) / float64(len(clusters)-1)
		}
		buf.SetSymbol(curX, y, cluster, base.Foreground(g.At(t)))
		curX += width
		total += width
	}

	return total
}

// Fill fills a region with a grapheme cluster and style, clipped to the
// frame bounds.
func (f *Frame) Fill(x, y, width, height int, symbol string, style Style) {
	f.buffer().Fill(x, y, width, height, symbol, style)
}

// FillGradient fills a region's background with a gradient, clipped to the
// frame bounds.
func (f *Frame) FillGradient(x, y, width, height int, g Gradient, base Style) {
	buf := f.buffer()
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+width, buf.Width()), min(y+height, buf.Height())

	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			t := g.position(col-x, row-y, width, height)
			buf.SetSymbol(col, row, " ", base.Background(g.At(t)))
		}
	}
}

// Clear resets every cell in the frame to blank.
func (f *Frame) Clear() {
	f.buffer().Clear()
}

// invalidate detaches the frame from its buffer at the end of the cycle.
func (f *Frame) invalidate() {
	f.buf = nil
}
