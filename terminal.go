package minterm

// ColorCapability describes the level of color support in a terminal.
type ColorCapability int

const (
	// ColorDepthNone indicates a monochrome terminal.
	ColorDepthNone ColorCapability = iota
	// ColorDepth16 indicates basic 16-color support.
	ColorDepth16
	// ColorDepth256 indicates 256-color palette support.
	ColorDepth256
	// ColorDepthTrue indicates 24-bit true color support.
	ColorDepthTrue
)

// Capabilities is an immutable snapshot of what a backend can do,
// captured once at backend construction.
type Capabilities struct {
	// Colors is the color depth level.
	Colors ColorCapability
	// TrueColor indicates 24-bit RGB color support.
	TrueColor bool
	// UnderlineColor indicates support for colored underlines (SGR 58/59).
	UnderlineColor bool
	// SyncUpdate indicates synchronized-update support (DEC mode 2026).
	SyncUpdate bool
	// Mouse indicates mouse event reporting support.
	Mouse bool
	// ScrollRegion indicates scroll region (DECSTBM) support.
	ScrollRegion bool
	// ReliableWidth indicates glyph width measurement can be trusted.
	ReliableWidth bool
}

// Position is a zero-indexed cursor position.
type Position struct {
	X, Y int
}

// WindowSize is a terminal size report with optional pixel metadata.
type WindowSize struct {
	Columns, Rows int
	// PixelWidth and PixelHeight are zero when the backend cannot
	// measure the window in pixels.
	PixelWidth, PixelHeight int
}

// ClearMode selects how much of the screen Clear erases.
type ClearMode int

const (
	// ClearAll erases the whole screen and homes the cursor.
	ClearAll ClearMode = iota
	// ClearToEnd erases from the cursor to the end of the screen.
	ClearToEnd
	// ClearLine erases the current line.
	ClearLine
)

// Region is an inclusive range of rows used for scroll regions.
type Region struct {
	Top, Bottom int
}

// DrawUpdate is one positioned cell for Backend.Draw.
type DrawUpdate struct {
	X, Y int
	Cell Cell
}

// DefaultColors carries the terminal-reported default colors.
// A channel that could not be probed is left unset.
type DefaultColors struct {
	Foreground Color
	Background Color
}

// Backend is the contract every concrete terminal adapter implements.
// It is the only boundary the rendering core depends on; the core never
// inspects the concrete adapter.
//
// Write and flush failures indicate a broken terminal connection and are
// propagated. Probe operations (Size, WindowSize, QueryDefaultColors)
// degrade to fallbacks instead of failing.
type Backend interface {
	// Caps returns the capability snapshot fixed at construction.
	Caps() Capabilities

	// Draw positions the cursor and writes each update's grapheme.
	// Updates with negative coordinates are ignored.
	Draw(updates []DrawUpdate) error

	// WriteRaw writes a pre-formed control or text sequence verbatim.
	WriteRaw(p []byte) error

	// Flush delivers any buffered output to the device.
	Flush() error

	// HideCursor and ShowCursor toggle cursor visibility.
	// Failures are swallowed; visibility is cosmetic.
	HideCursor()
	ShowCursor()

	// CursorPosition reports the device cursor position.
	CursorPosition() (Position, error)

	// SetCursorPosition moves the device cursor.
	SetCursorPosition(pos Position) error

	// Clear erases screen content per the given mode.
	Clear(mode ClearMode) error

	// AppendLines scrolls content up by emitting count newlines.
	AppendLines(count int) error

	// Size returns the visible width and height in cells, falling back
	// to 80x24 when the device cannot be queried.
	Size() (width, height int)

	// WindowSize returns the size plus optional pixel metadata.
	WindowSize() WindowSize

	// ScrollRegionUp and ScrollRegionDown scroll a row region.
	// No-ops when the capability is absent.
	ScrollRegionUp(r Region, count int) error
	ScrollRegionDown(r Region, count int) error

	// BeginSyncUpdate and EndSyncUpdate bracket a batch of writes so the
	// terminal presents them as one frame. No-ops when the capability is
	// absent.
	BeginSyncUpdate() error
	EndSyncUpdate() error

	// QueryDefaultColors probes the terminal's default foreground and
	// background. Best-effort: unanswered queries yield unset colors.
	QueryDefaultColors() DefaultColors

	// Dispose releases the backend. Idempotent; restores cursor visibility.
	Dispose()
}
