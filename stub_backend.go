package minterm

import (
	"bytes"
	"strings"
)

// StubBackend is a deterministic in-memory Backend for testing. It applies
// draws to an internal grid, records raw writes in emission order, and lets
// tests script the reported size, capabilities, and query answers.
type StubBackend struct {
	width, height int
	cells         []Cell
	caps          Capabilities

	output  bytes.Buffer // raw writes and glyphs, in emission order
	draws   []DrawUpdate
	flushes int
	clears  int

	cursor       Position
	cursorHidden bool
	disposeCount int

	defaultColors DefaultColors

	// Err, when set, is returned by Draw, WriteRaw, Flush, and Clear to
	// simulate a broken terminal connection.
	Err error
}

var _ Backend = (*StubBackend)(nil)

// NewStubBackend creates a stub with the given dimensions and permissive
// default capabilities (true color, underline color, scroll regions).
func NewStubBackend(width, height int) *StubBackend {
	s := &StubBackend{
		caps: Capabilities{
			Colors:         ColorDepthTrue,
			TrueColor:      true,
			UnderlineColor: true,
			Mouse:          true,
			ScrollRegion:   true,
			ReliableWidth:  true,
		},
	}
	s.resize(width, height)
	return s
}

func (s *StubBackend) resize(width, height int) {
	s.width, s.height = width, height
	s.cells = make([]Cell, width*height)
	blank := BlankCell()
	for i := range s.cells {
		s.cells[i] = blank
	}
}

// SetSize changes the size the stub reports, clearing its grid.
// Use to script resize scenarios between draw cycles.
func (s *StubBackend) SetSize(width, height int) {
	s.resize(width, height)
}

// SetCaps overrides the capability snapshot.
func (s *StubBackend) SetCaps(caps Capabilities) {
	s.caps = caps
}

// SetDefaultColors scripts the answer to QueryDefaultColors.
func (s *StubBackend) SetDefaultColors(colors DefaultColors) {
	s.defaultColors = colors
}

// Caps returns the capability snapshot.
func (s *StubBackend) Caps() Capabilities {
	return s.caps
}

// Draw applies the updates to the internal grid and appends each glyph to
// the recorded output. Updates with negative coordinates are ignored.
func (s *StubBackend) Draw(updates []DrawUpdate) error {
	if s.Err != nil {
		return s.Err
	}
	for _, u := range updates {
		if u.X < 0 || u.Y < 0 {
			continue
		}
		s.draws = append(s.draws, u)
		if u.X < s.width && u.Y < s.height {
			s.cells[u.Y*s.width+u.X] = u.Cell
		}
		if !u.Cell.IsContinuation() {
			symbol := u.Cell.Symbol
			if symbol == "" {
				symbol = " "
			}
			s.output.WriteString(symbol)
		}
	}
	return nil
}

// WriteRaw appends the sequence to the recorded output verbatim.
func (s *StubBackend) WriteRaw(p []byte) error {
	if s.Err != nil {
		return s.Err
	}
	s.output.Write(p)
	return nil
}

// Flush counts flushes.
func (s *StubBackend) Flush() error {
	if s.Err != nil {
		return s.Err
	}
	s.flushes++
	return nil
}

// HideCursor marks the cursor hidden.
func (s *StubBackend) HideCursor() {
	s.cursorHidden = true
}

// ShowCursor marks the cursor visible.
func (s *StubBackend) ShowCursor() {
	s.cursorHidden = false
}

// CursorPosition returns the tracked cursor position.
func (s *StubBackend) CursorPosition() (Position, error) {
	return s.cursor, nil
}

// SetCursorPosition moves the tracked cursor.
func (s *StubBackend) SetCursorPosition(pos Position) error {
	s.cursor = pos
	return nil
}

// Clear blanks the grid and homes the cursor.
func (s *StubBackend) Clear(mode ClearMode) error {
	if s.Err != nil {
		return s.Err
	}
	s.clears++
	if mode == ClearAll {
		blank := BlankCell()
		for i := range s.cells {
			s.cells[i] = blank
		}
		s.cursor = Position{}
	}
	return nil
}

// AppendLines records scrolled lines as newlines in the output.
func (s *StubBackend) AppendLines(count int) error {
	if s.Err != nil {
		return s.Err
	}
	for i := 0; i < count; i++ {
		s.output.WriteByte('\n')
	}
	return nil
}

// Size returns the scripted dimensions.
func (s *StubBackend) Size() (width, height int) {
	return s.width, s.height
}

// WindowSize returns the scripted dimensions without pixel metadata.
func (s *StubBackend) WindowSize() WindowSize {
	return WindowSize{Columns: s.width, Rows: s.height}
}

// ScrollRegionUp is a no-op recording nothing.
func (s *StubBackend) ScrollRegionUp(r Region, count int) error {
	return nil
}

// ScrollRegionDown is a no-op recording nothing.
func (s *StubBackend) ScrollRegionDown(r Region, count int) error {
	return nil
}

// BeginSyncUpdate records the synchronized-update opener when the
// capability is present.
func (s *StubBackend) BeginSyncUpdate() error {
	if s.Err != nil {
		return s.Err
	}
	if s.caps.SyncUpdate {
		s.output.WriteString("\x1b[?2026h")
	}
	return nil
}

// EndSyncUpdate records the synchronized-update closer when the capability
// is present.
func (s *StubBackend) EndSyncUpdate() error {
	if s.Err != nil {
		return s.Err
	}
	if s.caps.SyncUpdate {
		s.output.WriteString("\x1b[?2026l")
	}
	return nil
}

// QueryDefaultColors returns the scripted answer.
func (s *StubBackend) QueryDefaultColors() DefaultColors {
	return s.defaultColors
}

// Dispose counts calls and restores cursor visibility.
func (s *StubBackend) Dispose() {
	s.disposeCount++
	s.cursorHidden = false
}

// --- Test helpers ---

// Output returns everything emitted so far: raw sequences interleaved with
// glyphs, in order.
func (s *StubBackend) Output() string {
	return s.output.String()
}

// ResetOutput clears the recorded output and draw list between cycles.
func (s *StubBackend) ResetOutput() {
	s.output.Reset()
	s.draws = nil
}

// Draws returns the recorded draw updates.
func (s *StubBackend) Draws() []DrawUpdate {
	return s.draws
}

// Flushes returns the number of Flush calls.
func (s *StubBackend) Flushes() int {
	return s.flushes
}

// DisposeCount returns the number of Dispose calls.
func (s *StubBackend) DisposeCount() int {
	return s.disposeCount
}

// IsCursorHidden reports the tracked cursor visibility.
func (s *StubBackend) IsCursorHidden() bool {
	return s.cursorHidden
}

// CellAt returns the grid cell at (x, y), or a zero Cell out of bounds.
func (s *StubBackend) CellAt(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{}
	}
	return s.cells[y*s.width+x]
}

// String renders the grid for snapshot assertions. Rows are separated by
// newlines; continuation cells are elided.
func (s *StubBackend) String() string {
	var sb strings.Builder
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			cell := s.cells[y*s.width+x]
			if cell.IsContinuation() {
				continue
			}
			if cell.Symbol == "" {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(cell.Symbol)
			}
		}
		if y < s.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
