package minterm

import (
	"testing"
)

func TestEscBuilder(t *testing.T) {
	type tc struct {
		build func(*escBuilder)
		want  string
	}

	tests := map[string]tc{
		"move to origin": {
			build: func(e *escBuilder) { e.MoveTo(0, 0) },
			want:  "\x1b[1;1H",
		},
		"move converts to one indexed": {
			build: func(e *escBuilder) { e.MoveTo(9, 4) },
			want:  "\x1b[5;10H",
		},
		"clear screen": {
			build: func(e *escBuilder) { e.ClearScreen() },
			want:  "\x1b[2J",
		},
		"clear to end of screen": {
			build: func(e *escBuilder) { e.ClearToEndOfScreen() },
			want:  "\x1b[J",
		},
		"clear line": {
			build: func(e *escBuilder) { e.ClearLine() },
			want:  "\x1b[2K",
		},
		"hide cursor": {
			build: func(e *escBuilder) { e.HideCursor() },
			want:  "\x1b[?25l",
		},
		"show cursor": {
			build: func(e *escBuilder) { e.ShowCursor() },
			want:  "\x1b[?25h",
		},
		"scroll region": {
			build: func(e *escBuilder) { e.SetScrollRegion(2, 10) },
			want:  "\x1b[3;11r",
		},
		"reset scroll region": {
			build: func(e *escBuilder) { e.ResetScrollRegion() },
			want:  "\x1b[r",
		},
		"scroll up": {
			build: func(e *escBuilder) { e.ScrollUp(3) },
			want:  "\x1b[3S",
		},
		"scroll up zero is noop": {
			build: func(e *escBuilder) { e.ScrollUp(0) },
			want:  "",
		},
		"scroll down": {
			build: func(e *escBuilder) { e.ScrollDown(2) },
			want:  "\x1b[2T",
		},
		"sync update bracket": {
			build: func(e *escBuilder) {
				e.BeginSyncUpdate()
				e.EndSyncUpdate()
			},
			want: "\x1b[?2026h\x1b[?2026l",
		},
		"chained sequences": {
			build: func(e *escBuilder) {
				e.MoveTo(0, 0)
				e.WriteString("hi")
			},
			want: "\x1b[1;1Hhi",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newEscBuilder(64)
			tt.build(e)
			if got := string(e.Bytes()); got != tt.want {
				t.Errorf("built %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscBuilder_Reset(t *testing.T) {
	e := newEscBuilder(16)
	e.MoveTo(3, 3)
	e.Reset()
	if len(e.Bytes()) != 0 {
		t.Errorf("Reset left %q in the buffer", e.Bytes())
	}
	e.ClearLine()
	if got := string(e.Bytes()); got != "\x1b[2K" {
		t.Errorf("reuse after Reset built %q", got)
	}
}
