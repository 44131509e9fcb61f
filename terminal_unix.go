//go:build unix

package minterm

import (
	"golang.org/x/sys/unix"
)

// queryWindowSize reads the window size, including pixel metadata when the
// terminal reports it.
func queryWindowSize(fd int) (WindowSize, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return WindowSize{}, err
	}
	return WindowSize{
		Columns:     int(ws.Col),
		Rows:        int(ws.Row),
		PixelWidth:  int(ws.Xpixel),
		PixelHeight: int(ws.Ypixel),
	}, nil
}
