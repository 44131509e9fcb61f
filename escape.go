package minterm

import "strconv"

// escBuilder efficiently builds ANSI escape sequences into a reusable
// pre-allocated buffer.
type escBuilder struct {
	buf []byte
}

// newEscBuilder creates an escape sequence builder with the given capacity.
func newEscBuilder(capacity int) *escBuilder {
	return &escBuilder{
		buf: make([]byte, 0, capacity),
	}
}

// Reset clears the buffer for reuse.
func (e *escBuilder) Reset() {
	e.buf = e.buf[:0]
}

// Bytes returns the built sequence.
func (e *escBuilder) Bytes() []byte {
	return e.buf
}

// writeCSI writes the Control Sequence Introducer (ESC [).
func (e *escBuilder) writeCSI() {
	e.buf = append(e.buf, '\x1b', '[')
}

// writeInt appends an integer in decimal.
func (e *escBuilder) writeInt(n int) {
	e.buf = strconv.AppendInt(e.buf, int64(n), 10)
}

// MoveTo moves the cursor to (x, y). Coordinates are 0-indexed; ANSI
// sequences are 1-indexed.
func (e *escBuilder) MoveTo(x, y int) {
	e.writeCSI()
	e.writeInt(y + 1)
	e.buf = append(e.buf, ';')
	e.writeInt(x + 1)
	e.buf = append(e.buf, 'H')
}

// ClearScreen clears the visible screen (ESC[2J).
func (e *escBuilder) ClearScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '2', 'J')
}

// ClearToEndOfScreen clears from the cursor to the end of the screen.
func (e *escBuilder) ClearToEndOfScreen() {
	e.writeCSI()
	e.buf = append(e.buf, 'J')
}

// ClearLine clears the entire current line.
func (e *escBuilder) ClearLine() {
	e.writeCSI()
	e.buf = append(e.buf, '2', 'K')
}

// HideCursor makes the cursor invisible.
func (e *escBuilder) HideCursor() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '5', 'l')
}

// ShowCursor makes the cursor visible.
func (e *escBuilder) ShowCursor() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '5', 'h')
}

// SetScrollRegion restricts scrolling to rows top..bottom (0-indexed,
// inclusive) via DECSTBM.
func (e *escBuilder) SetScrollRegion(top, bottom int) {
	e.writeCSI()
	e.writeInt(top + 1)
	e.buf = append(e.buf, ';')
	e.writeInt(bottom + 1)
	e.buf = append(e.buf, 'r')
}

// ResetScrollRegion restores scrolling to the full screen.
func (e *escBuilder) ResetScrollRegion() {
	e.writeCSI()
	e.buf = append(e.buf, 'r')
}

// ScrollUp scrolls the scroll region up by n lines (ESC[nS).
func (e *escBuilder) ScrollUp(n int) {
	if n <= 0 {
		return
	}
	e.writeCSI()
	e.writeInt(n)
	e.buf = append(e.buf, 'S')
}

// ScrollDown scrolls the scroll region down by n lines (ESC[nT).
func (e *escBuilder) ScrollDown(n int) {
	if n <= 0 {
		return
	}
	e.writeCSI()
	e.writeInt(n)
	e.buf = append(e.buf, 'T')
}

// BeginSyncUpdate starts a synchronized update block (CSI ?2026h).
// Terminals that don't support it ignore the sequence.
func (e *escBuilder) BeginSyncUpdate() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '0', '2', '6', 'h')
}

// EndSyncUpdate ends a synchronized update block.
func (e *escBuilder) EndSyncUpdate() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '0', '2', '6', 'l')
}

// WriteString appends a string verbatim.
func (e *escBuilder) WriteString(s string) {
	e.buf = append(e.buf, s...)
}
