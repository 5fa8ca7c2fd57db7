package terminal

import (
	"io"
	"os"

	"github.com/labstack/gommon/color"
	"github.com/mattn/go-isatty"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/domain"
)

// palette colours screen text. It is a no-op when the output is not a
// terminal or colours were turned off.
type palette struct {
	c *color.Color
}

func newPalette(w io.Writer, noColor bool) palette {
	c := color.New()
	c.SetOutput(w)
	if noColor || !IsTerminal(w) {
		c.Disable()
	}
	return palette{c: c}
}

func (p palette) tone(t domain.Tone, s string) string {
	switch t {
	case domain.ToneSuccess:
		return p.c.Green(s)
	case domain.ToneWarning:
		return p.c.Yellow(s)
	case domain.ToneDanger:
		return p.c.Red(s)
	}
	return s
}

func (p palette) bold(s string) string  { return p.c.Bold(s) }
func (p palette) dim(s string) string   { return p.c.Grey(s) }
func (p palette) title(s string) string { return p.c.Cyan(p.c.Bold(s)) }

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
