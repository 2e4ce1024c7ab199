package app

import (
	"io"
	"os"
)

const ttyPath = "/dev/tty"

// TerminalBell opens the controlling terminal for the completion bell. Stdout
// belongs to the renderer, so a write there could land mid-frame. Falls back
// to stderr when there is no terminal; the returned closer is a no-op then.
func TerminalBell() (io.Writer, io.Closer) {
	return openBell(ttyPath)
}

func openBell(path string) (io.Writer, io.Closer) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return os.Stderr, io.NopCloser(nil)
	}
	return f, f
}
