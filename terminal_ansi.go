package minterm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/minterm/minterm/internal/logger"
)

// ANSIBackend implements Backend for any terminal emulator that speaks
// ANSI escape sequences. Output is buffered until Flush.
type ANSIBackend struct {
	out   *bufio.Writer
	outFd int  // file descriptor for size queries
	hasFd bool // whether out is backed by a real file
	in    *os.File

	caps Capabilities
	esc  *escBuilder
	log  *logger.Logger

	// Cursor tracking lets Draw skip redundant repositioning for
	// consecutive cells. WriteRaw is assumed not to move the cursor;
	// callers writing cursor-moving sequences raw must follow with
	// SetCursorPosition.
	cursorValid      bool
	cursorX, cursorY int

	disposed bool
}

var _ Backend = (*ANSIBackend)(nil)

// ANSIOption configures an ANSIBackend at construction.
type ANSIOption func(*ANSIBackend)

// WithBackendCapabilities overrides the auto-detected capability snapshot.
func WithBackendCapabilities(caps Capabilities) ANSIOption {
	return func(t *ANSIBackend) {
		t.caps = caps
	}
}

// WithBackendLogger attaches a diagnostic logger. The logger must not write
// to the render output stream.
func WithBackendLogger(log *logger.Logger) ANSIOption {
	return func(t *ANSIBackend) {
		t.log = log
	}
}

// NewANSIBackend creates a backend writing to out, typically os.Stdout.
// in is the terminal input stream used for device queries; it may be nil,
// in which case queries degrade to their fallbacks. Capabilities are
// detected once, here, against the output stream actually written to.
func NewANSIBackend(out io.Writer, in *os.File, opts ...ANSIOption) *ANSIBackend {
	t := &ANSIBackend{
		out: bufio.NewWriterSize(out, 4096),
		in:  in,
		esc: newEscBuilder(512),
	}
	if f, ok := out.(*os.File); ok {
		t.outFd = int(f.Fd())
		t.hasFd = true
		t.caps = DetectCapabilitiesFromFd(f.Fd())
	} else {
		t.caps = detectCapabilities(false)
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log.Debug("ansi backend ready: " + t.caps.String())
	return t
}

// Caps returns the capability snapshot fixed at construction.
func (t *ANSIBackend) Caps() Capabilities {
	return t.caps
}

// Draw positions the cursor and writes each update's grapheme. Updates with
// negative coordinates and wide-glyph continuations are ignored.
func (t *ANSIBackend) Draw(updates []DrawUpdate) error {
	for _, u := range updates {
		if u.X < 0 || u.Y < 0 {
			continue
		}
		if u.Cell.IsContinuation() {
			continue
		}

		if !t.cursorValid || u.Y != t.cursorY || u.X != t.cursorX {
			t.esc.Reset()
			t.esc.MoveTo(u.X, u.Y)
			if _, err := t.out.Write(t.esc.Bytes()); err != nil {
				return fmt.Errorf("position cursor: %w", err)
			}
		}

		symbol := u.Cell.Symbol
		if symbol == "" {
			symbol = " "
		}
		if _, err := t.out.WriteString(symbol); err != nil {
			return fmt.Errorf("write glyph: %w", err)
		}

		width := int(u.Cell.Width)
		if width < 1 {
			width = 1
		}
		t.cursorValid = true
		t.cursorX = u.X + width
		t.cursorY = u.Y
	}
	return nil
}

// WriteRaw writes a pre-formed control or text sequence verbatim.
func (t *ANSIBackend) WriteRaw(p []byte) error {
	if _, err := t.out.Write(p); err != nil {
		return fmt.Errorf("write raw sequence: %w", err)
	}
	return nil
}

// Flush delivers buffered output to the device.
func (t *ANSIBackend) Flush() error {
	if err := t.out.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// HideCursor makes the cursor invisible. Failures are swallowed.
func (t *ANSIBackend) HideCursor() {
	t.esc.Reset()
	t.esc.HideCursor()
	t.out.Write(t.esc.Bytes())
	t.out.Flush()
}

// ShowCursor makes the cursor visible. Failures are swallowed.
func (t *ANSIBackend) ShowCursor() {
	t.esc.Reset()
	t.esc.ShowCursor()
	t.out.Write(t.esc.Bytes())
	t.out.Flush()
}

// SetCursorPosition moves the device cursor.
func (t *ANSIBackend) SetCursorPosition(pos Position) error {
	t.esc.Reset()
	t.esc.MoveTo(pos.X, pos.Y)
	if _, err := t.out.Write(t.esc.Bytes()); err != nil {
		return fmt.Errorf("set cursor position: %w", err)
	}
	t.cursorValid = true
	t.cursorX, t.cursorY = pos.X, pos.Y
	return nil
}

// Clear erases screen content per the given mode.
func (t *ANSIBackend) Clear(mode ClearMode) error {
	t.esc.Reset()
	switch mode {
	case ClearAll:
		t.esc.WriteString(SGRReset)
		t.esc.MoveTo(0, 0)
		t.esc.ClearScreen()
		t.esc.MoveTo(0, 0)
		t.cursorValid = true
		t.cursorX, t.cursorY = 0, 0
	case ClearToEnd:
		t.esc.ClearToEndOfScreen()
	case ClearLine:
		t.esc.ClearLine()
	}
	if _, err := t.out.Write(t.esc.Bytes()); err != nil {
		return fmt.Errorf("clear screen: %w", err)
	}
	return nil
}

// AppendLines scrolls content up by emitting count newlines.
func (t *ANSIBackend) AppendLines(count int) error {
	if count <= 0 {
		return nil
	}
	if _, err := t.out.WriteString(strings.Repeat("\n", count)); err != nil {
		return fmt.Errorf("append lines: %w", err)
	}
	t.cursorValid = false
	return nil
}

// Size returns the visible terminal dimensions, falling back to 80x24 when
// the device cannot be queried.
func (t *ANSIBackend) Size() (width, height int) {
	if !t.hasFd {
		return 80, 24
	}
	w, h, err := term.GetSize(t.outFd)
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// WindowSize returns the size plus pixel metadata where the platform
// reports it.
func (t *ANSIBackend) WindowSize() WindowSize {
	if t.hasFd {
		if ws, err := queryWindowSize(t.outFd); err == nil {
			return ws
		}
	}
	w, h := t.Size()
	return WindowSize{Columns: w, Rows: h}
}

// ScrollRegionUp scrolls rows r.Top..r.Bottom up by count lines.
// No-op when the scroll-region capability is absent.
func (t *ANSIBackend) ScrollRegionUp(r Region, count int) error {
	return t.scrollRegion(r, count, false)
}

// ScrollRegionDown scrolls rows r.Top..r.Bottom down by count lines.
// No-op when the scroll-region capability is absent.
func (t *ANSIBackend) ScrollRegionDown(r Region, count int) error {
	return t.scrollRegion(r, count, true)
}

func (t *ANSIBackend) scrollRegion(r Region, count int, down bool) error {
	if !t.caps.ScrollRegion || count <= 0 {
		return nil
	}
	t.esc.Reset()
	t.esc.SetScrollRegion(r.Top, r.Bottom)
	if down {
		t.esc.ScrollDown(count)
	} else {
		t.esc.ScrollUp(count)
	}
	t.esc.ResetScrollRegion()
	if _, err := t.out.Write(t.esc.Bytes()); err != nil {
		return fmt.Errorf("scroll region: %w", err)
	}
	t.cursorValid = false
	return nil
}

// BeginSyncUpdate opens a synchronized-update block (DEC mode 2026) so the
// terminal holds presentation until the block closes. No-op when the
// capability is absent.
func (t *ANSIBackend) BeginSyncUpdate() error {
	if !t.caps.SyncUpdate {
		return nil
	}
	t.esc.Reset()
	t.esc.BeginSyncUpdate()
	if _, err := t.out.Write(t.esc.Bytes()); err != nil {
		return fmt.Errorf("begin synchronized update: %w", err)
	}
	return nil
}

// EndSyncUpdate closes a synchronized-update block, releasing the held
// frame. No-op when the capability is absent.
func (t *ANSIBackend) EndSyncUpdate() error {
	if !t.caps.SyncUpdate {
		return nil
	}
	t.esc.Reset()
	t.esc.EndSyncUpdate()
	if _, err := t.out.Write(t.esc.Bytes()); err != nil {
		return fmt.Errorf("end synchronized update: %w", err)
	}
	return nil
}

// Dispose releases the backend, restoring cursor visibility. Idempotent.
func (t *ANSIBackend) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.out.WriteString(SGRReset)
	t.esc.Reset()
	t.esc.ShowCursor()
	t.out.Write(t.esc.Bytes())
	t.out.Flush()
	t.log.Debug("ansi backend disposed")
}
