package minterm

import (
	"testing"
)

func TestDiff_Identical(t *testing.T) {
	prev := NewBuffer(5, 3)
	cur := NewBuffer(5, 3)
	prev.SetString(0, 0, "same", NewStyle())
	cur.SetString(0, 0, "same", NewStyle())

	if segs := Diff(prev, cur); len(segs) != 0 {
		t.Errorf("Diff of identical buffers = %d segments, want 0", len(segs))
	}
	for x := 0; x < 5; x++ {
		if !cur.Cell(x, 0).Skipped() {
			t.Errorf("cell (%d, 0) not marked skip", x)
		}
	}
}

func TestDiff_MismatchedDimensionsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Diff of mismatched buffers should panic")
		}
	}()
	Diff(NewBuffer(5, 3), NewBuffer(5, 4))
}

func TestDiff_SingleRun(t *testing.T) {
	prev := NewBuffer(10, 1)
	cur := NewBuffer(10, 1)
	cur.SetString(2, 0, "abc", NewStyle())

	segs := Diff(prev, cur)
	if len(segs) != 1 {
		t.Fatalf("Diff = %d segments, want 1", len(segs))
	}
	seg := segs[0]
	if seg.Row != 0 || seg.Col != 2 || seg.Len() != 3 {
		t.Fatalf("segment = row %d col %d len %d, want row 0 col 2 len 3", seg.Row, seg.Col, seg.Len())
	}
	for i, want := range []string{"a", "b", "c"} {
		if seg.Cells[i].Symbol != want {
			t.Errorf("seg.Cells[%d] = %q, want %q", i, seg.Cells[i].Symbol, want)
		}
	}
}

func TestDiff_SplitsOnUnchangedGap(t *testing.T) {
	prev := NewBuffer(10, 1)
	cur := NewBuffer(10, 1)
	cur.SetSymbol(1, 0, "a", NewStyle())
	cur.SetSymbol(2, 0, "b", NewStyle())
	cur.SetSymbol(6, 0, "c", NewStyle())

	segs := Diff(prev, cur)
	if len(segs) != 2 {
		t.Fatalf("Diff = %d segments, want 2", len(segs))
	}
	if segs[0].Col != 1 || segs[0].Len() != 2 {
		t.Errorf("first segment = col %d len %d, want col 1 len 2", segs[0].Col, segs[0].Len())
	}
	if segs[1].Col != 6 || segs[1].Len() != 1 {
		t.Errorf("second segment = col %d len %d, want col 6 len 1", segs[1].Col, segs[1].Len())
	}
}

func TestDiff_NeverSpansRows(t *testing.T) {
	prev := NewBuffer(3, 2)
	cur := NewBuffer(3, 2)
	// Changes at the end of row 0 and the start of row 1 must stay separate.
	cur.SetSymbol(2, 0, "x", NewStyle())
	cur.SetSymbol(0, 1, "y", NewStyle())

	segs := Diff(prev, cur)
	if len(segs) != 2 {
		t.Fatalf("Diff = %d segments, want 2", len(segs))
	}
	if segs[0].Row != 0 || segs[1].Row != 1 {
		t.Errorf("segment rows = %d, %d, want 0, 1", segs[0].Row, segs[1].Row)
	}
}

func TestDiff_StyleOnlyChange(t *testing.T) {
	prev := NewBuffer(4, 1)
	cur := NewBuffer(4, 1)
	prev.SetString(0, 0, "ab", NewStyle())
	cur.SetString(0, 0, "ab", NewStyle().Bold())

	segs := Diff(prev, cur)
	if len(segs) != 1 || segs[0].Len() != 2 {
		t.Fatalf("style-only change produced %v, want one 2-cell segment", segs)
	}
}

func TestDiff_RunToRowEnd(t *testing.T) {
	prev := NewBuffer(4, 1)
	cur := NewBuffer(4, 1)
	cur.SetString(2, 0, "xy", NewStyle())

	segs := Diff(prev, cur)
	if len(segs) != 1 {
		t.Fatalf("Diff = %d segments, want 1", len(segs))
	}
	if segs[0].Col != 2 || segs[0].Len() != 2 {
		t.Errorf("segment = col %d len %d, want col 2 len 2", segs[0].Col, segs[0].Len())
	}
}

// Applying every segment to a copy of the previous buffer must reproduce
// the current buffer exactly.
func TestDiff_SegmentsReproduceCurrent(t *testing.T) {
	prev := NewBuffer(8, 4)
	cur := NewBuffer(8, 4)

	prev.SetString(0, 0, "old line", NewStyle())
	prev.SetString(0, 2, "keep", NewStyle().Dim())

	cur.SetString(0, 0, "new text", NewStyle().Bold())
	cur.SetString(0, 2, "keep", NewStyle().Dim())
	cur.SetString(3, 3, "tail", NewStyle().Foreground(Red))

	applied := prev.Clone()
	for _, seg := range Diff(prev, cur) {
		for i, cell := range seg.Cells {
			applied.SetCell(seg.Col+i, seg.Row, cell)
		}
	}

	w, h := cur.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !applied.Cell(x, y).Equal(cur.Cell(x, y)) {
				t.Errorf("cell (%d, %d) = %+v, want %+v", x, y, applied.Cell(x, y), cur.Cell(x, y))
			}
		}
	}
}

func TestDiff_SkipMarking(t *testing.T) {
	prev := NewBuffer(4, 1)
	cur := NewBuffer(4, 1)
	cur.SetSymbol(1, 0, "x", NewStyle())

	Diff(prev, cur)

	for x := 0; x < 4; x++ {
		wantSkip := x != 1
		if got := cur.Cell(x, 0).Skipped(); got != wantSkip {
			t.Errorf("cell (%d, 0) skip = %v, want %v", x, got, wantSkip)
		}
	}
}
