package report

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ColorEnabled reports whether w is a terminal that should receive ANSI
// colors. NO_COLOR disables colors regardless of the terminal.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
