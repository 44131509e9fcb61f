package minterm

import (
	"fmt"
	"strings"

	"github.com/minterm/minterm/internal/logger"
)

// Screen owns the previous/current buffer pair and runs draw cycles against
// a Backend. One Draw call runs one full cycle: size the buffers, let the
// caller populate the current buffer through a Frame, reconcile the diff
// against the device, and swap.
//
// Screen is not safe for concurrent use; callers serialize draw cycles.
type Screen struct {
	backend Backend
	prev    *Buffer
	cur     *Buffer
	log     *logger.Logger

	// mapUnderlineToForeground degrades underline colors to foreground
	// colors on backends without SGR 58 support instead of dropping them.
	mapUnderlineToForeground bool

	disposed bool
}

// ScreenOption configures a Screen at construction.
type ScreenOption func(*Screen)

// WithLogger attaches a diagnostic logger.
func WithLogger(log *logger.Logger) ScreenOption {
	return func(s *Screen) {
		s.log = log
	}
}

// WithUnderlineFallback makes unsupported underline colors degrade to
// foreground colors, accepting the visible side effect of recoloring the
// glyph. Without it the change is silently dropped.
func WithUnderlineFallback() ScreenOption {
	return func(s *Screen) {
		s.mapUnderlineToForeground = true
	}
}

// NewScreen creates a screen over the given backend, allocating the buffer
// pair at the backend's reported size and hiding the cursor for the
// screen's lifetime. Close restores it.
func NewScreen(backend Backend, opts ...ScreenOption) *Screen {
	width, height := backend.Size()
	s := &Screen{
		backend: backend,
		prev:    NewBuffer(width, height),
		cur:     NewBuffer(width, height),
	}
	for _, opt := range opts {
		opt(s)
	}
	backend.HideCursor()
	s.log.Debug(fmt.Sprintf("screen ready at %dx%d", width, height))
	return s
}

// Size returns the current buffer dimensions.
func (s *Screen) Size() (width, height int) {
	return s.cur.Size()
}

// Backend returns the backend the screen renders to.
func (s *Screen) Backend() Backend {
	return s.backend
}

// Draw runs one full draw cycle. The render callback populates the current
// buffer through the frame; the frame is only valid for the duration of
// the callback. Backend write failures abort the cycle and are returned;
// the caller decides whether the terminal connection is worth retrying.
//
// Calling Draw on a disposed screen is a contract violation and panics.
func (s *Screen) Draw(render func(*Frame)) error {
	if s.disposed {
		panic("minterm: draw on disposed screen")
	}

	// Sizing: a size change is a resize event. Both buffers restart
	// blank, which forfeits diff savings for exactly one cycle.
	width, height := s.backend.Size()
	if width != s.cur.width || height != s.cur.height {
		s.prev = NewBuffer(width, height)
		s.cur = NewBuffer(width, height)
		if err := s.backend.Clear(ClearAll); err != nil {
			return fmt.Errorf("clear after resize: %w", err)
		}
		s.log.Debug(fmt.Sprintf("resized to %dx%d", width, height))
	}

	// Rendering: caller populates the current buffer.
	frame := &Frame{buf: s.cur}
	render(frame)
	frame.invalidate()

	// Reconciling: one running style is threaded through the whole
	// cycle so consecutive cells with equal styles emit nothing.
	caps := s.backend.Caps()
	running := NewStyle()
	styled := false

	// Cycles with changes are bracketed in a synchronized update so the
	// terminal presents them as one frame instead of a visible trickle.
	segments := Diff(s.prev, s.cur)
	syncing := caps.SyncUpdate && len(segments) > 0
	if syncing {
		if err := s.backend.BeginSyncUpdate(); err != nil {
			return err
		}
	}

	for _, seg := range segments {
		for i, cell := range seg.Cells {
			if cell.Skipped() {
				continue
			}

			frags := CompressSGR(TransitionStyle(running, cell.Style, caps, s.mapUnderlineToForeground))
			if len(frags) > 0 {
				if err := s.backend.WriteRaw([]byte(strings.Join(frags, ""))); err != nil {
					return fmt.Errorf("write style transition: %w", err)
				}
				styled = true
			}
			running = cell.Style

			update := DrawUpdate{X: seg.Col + i, Y: seg.Row, Cell: cell}
			if err := s.backend.Draw([]DrawUpdate{update}); err != nil {
				return fmt.Errorf("draw cell (%d, %d): %w", update.X, update.Y, err)
			}
		}
	}

	// Finalizing: one full reset iff any transition was emitted, so the
	// device never leaks style state across cycles.
	if styled {
		if err := s.backend.WriteRaw([]byte(SGRReset)); err != nil {
			return fmt.Errorf("write style reset: %w", err)
		}
	}
	if syncing {
		if err := s.backend.EndSyncUpdate(); err != nil {
			return err
		}
	}
	if err := s.backend.Flush(); err != nil {
		return err
	}

	// Swapping: the buffers exchange roles and the new current buffer
	// (last cycle's previous) is cleared in place for reuse.
	s.prev, s.cur = s.cur, s.prev
	s.cur.Clear()
	return nil
}

// Close disposes the screen and its backend, restoring cursor visibility.
// Idempotent; safe to call from any state.
func (s *Screen) Close() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.backend.Dispose()
	s.log.Debug("screen closed")
}
