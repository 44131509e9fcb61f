//go:build windows

package minterm

import (
	"golang.org/x/term"
)

// queryWindowSize reads the window size. The Windows console has no pixel
// metadata, so those fields stay zero.
func queryWindowSize(fd int) (WindowSize, error) {
	w, h, err := term.GetSize(fd)
	if err != nil {
		return WindowSize{}, err
	}
	return WindowSize{Columns: w, Rows: h}, nil
}
