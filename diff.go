package minterm

import "fmt"

// Segment is a contiguous run of changed cells on one row. It borrows the
// current buffer's cells and is only valid within the draw cycle that
// produced it.
type Segment struct {
	// Row is the row index of the run.
	Row int
	// Col is the starting column of the run.
	Col int
	// Cells covers the run in column order.
	Cells []Cell
}

// Len returns the number of cells in the segment.
func (s Segment) Len() int {
	return len(s.Cells)
}

// Diff compares two same-sized buffers and returns the changed regions in
// row-major, column-ascending order. A cell is changed when its symbol or
// style differs between the buffers; contiguous changed cells within a row
// form one segment, which bounds cursor repositioning per row. Unchanged
// cells in cur are marked skip.
//
// Passing buffers of different dimensions is a contract violation and panics.
func Diff(prev, cur *Buffer) []Segment {
	if prev.width != cur.width || prev.height != cur.height {
		panic(fmt.Sprintf("minterm: diff of mismatched buffers %dx%d vs %dx%d",
			prev.width, prev.height, cur.width, cur.height))
	}

	var segments []Segment
	for y := 0; y < cur.height; y++ {
		runStart := -1
		for x := 0; x < cur.width; x++ {
			i := y*cur.width + x
			if cur.cells[i].Equal(prev.cells[i]) {
				cur.cells[i].skip = true
				if runStart >= 0 {
					segments = append(segments, Segment{
						Row:   y,
						Col:   runStart,
						Cells: cur.cells[y*cur.width+runStart : i],
					})
					runStart = -1
				}
				continue
			}
			if runStart < 0 {
				runStart = x
			}
		}
		if runStart >= 0 {
			segments = append(segments, Segment{
				Row:   y,
				Col:   runStart,
				Cells: cur.cells[y*cur.width+runStart : (y+1)*cur.width],
			})
		}
	}
	return segments
}
