package minterm

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

// The terminal may never answer an in-band query (pipes, headless
// sessions), so responses are awaited with a hard budget polled in small
// increments instead of a single blocking read.
const (
	queryTimeout = 100 * time.Millisecond
	queryPoll    = 5 * time.Millisecond
)

// QueryDefaultColors probes the terminal for its default foreground and
// background colors via OSC 10/11. Best-effort: any failure leaves the
// corresponding color unset.
func (t *ANSIBackend) QueryDefaultColors() DefaultColors {
	if t.in == nil {
		return DefaultColors{}
	}

	state, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		t.log.Debug("default color query skipped: " + err.Error())
		return DefaultColors{}
	}
	defer term.Restore(int(t.in.Fd()), state)

	return DefaultColors{
		Foreground: t.queryOSCColor(10),
		Background: t.queryOSCColor(11),
	}
}

// queryOSCColor sends one OSC color query and parses whatever arrives
// before the timeout.
func (t *ANSIBackend) queryOSCColor(code int) Color {
	if err := t.WriteRaw([]byte(fmt.Sprintf("\x1b]%d;?\a", code))); err != nil {
		return Color{}
	}
	if err := t.Flush(); err != nil {
		return Color{}
	}
	return ParseOSCColor(t.readQueryResponse(isOSCTerminated))
}

// CursorPosition reports the device cursor position via the CSI 6n cursor
// position report.
func (t *ANSIBackend) CursorPosition() (Position, error) {
	if t.in == nil {
		return Position{}, fmt.Errorf("cursor position: no input stream")
	}

	state, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return Position{}, fmt.Errorf("cursor position: %w", err)
	}
	defer term.Restore(int(t.in.Fd()), state)

	if err := t.WriteRaw([]byte("\x1b[6n")); err != nil {
		return Position{}, err
	}
	if err := t.Flush(); err != nil {
		return Position{}, err
	}

	resp := t.readQueryResponse(func(resp []byte) bool {
		return len(resp) > 0 && resp[len(resp)-1] == 'R'
	})
	return parseCursorReport(resp)
}

// readQueryResponse accumulates bytes from the input stream until done
// reports a terminator, or the timeout budget elapses with whatever was
// read so far (possibly nothing).
func (t *ANSIBackend) readQueryResponse(done func([]byte) bool) []byte {
	deadline := time.Now().Add(queryTimeout)
	var resp []byte
	buf := make([]byte, 1)

	for time.Now().Before(deadline) {
		step := time.Now().Add(queryPoll)
		if step.After(deadline) {
			step = deadline
		}
		t.in.SetReadDeadline(step)

		n, err := t.in.Read(buf)
		if err != nil {
			if os.IsTimeout(err) {
				continue
			}
			break
		}
		if n == 0 {
			continue
		}
		resp = append(resp, buf[0])
		if done(resp) {
			break
		}
	}

	t.in.SetReadDeadline(time.Time{})
	return resp
}

// isOSCTerminated reports whether an OSC response ends with the BEL
// terminator or the two-byte ESC \ string terminator.
func isOSCTerminated(resp []byte) bool {
	if len(resp) == 0 {
		return false
	}
	if resp[len(resp)-1] == '\a' {
		return true
	}
	return len(resp) >= 2 && resp[len(resp)-2] == '\x1b' && resp[len(resp)-1] == '\\'
}

// ParseOSCColor extracts a color from an OSC color-report payload of the
// form "...rgb:RRRR/GGGG/BBBB...". Terminals commonly report 16 bits per
// channel; only the most significant byte of each channel is kept. Any
// parse failure yields an unset color, never an error: the query is
// inherently best-effort.
func ParseOSCColor(resp []byte) Color {
	i := bytes.Index(resp, []byte("rgb:"))
	if i < 0 {
		return Color{}
	}
	payload := string(resp[i+len("rgb:"):])

	// Trim the response terminator and anything after it.
	if j := strings.IndexAny(payload, "\a\x1b"); j >= 0 {
		payload = payload[:j]
	}

	parts := strings.Split(payload, "/")
	if len(parts) != 3 {
		return Color{}
	}

	var channels [3]uint8
	for i, part := range parts {
		v, err := strconv.ParseUint(part, 16, 16)
		if err != nil {
			return Color{}
		}
		// Short components ("ff") still parse as 16-bit values; the
		// high byte is what the 8-bit channel keeps.
		channels[i] = uint8(v >> 8)
	}
	return RGBColor(channels[0], channels[1], channels[2])
}

// parseCursorReport parses a CSI cursor position report "ESC[{row};{col}R"
// into a zero-indexed Position.
func parseCursorReport(resp []byte) (Position, error) {
	s := string(resp)
	start := strings.LastIndex(s, "\x1b[")
	if start < 0 || !strings.HasSuffix(s, "R") {
		return Position{}, fmt.Errorf("malformed cursor report %q", resp)
	}
	body := s[start+2 : len(s)-1]
	row, col, ok := strings.Cut(body, ";")
	if !ok {
		return Position{}, fmt.Errorf("malformed cursor report %q", resp)
	}
	y, err := strconv.Atoi(row)
	if err != nil {
		return Position{}, fmt.Errorf("malformed cursor report %q", resp)
	}
	x, err := strconv.Atoi(col)
	if err != nil {
		return Position{}, fmt.Errorf("malformed cursor report %q", resp)
	}
	return Position{X: x - 1, Y: y - 1}, nil
}
