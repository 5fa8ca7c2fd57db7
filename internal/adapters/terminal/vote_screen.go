package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/domain"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/ports"
)

// VoteScreen draws the three vote buttons and the feedback line. It must
// only be used from the UI goroutine.
type VoteScreen struct {
	out     io.Writer
	colors  palette
	clear   bool
	enabled bool
	message string
	kind    ports.MessageKind
}

func NewVoteScreen(out io.Writer, noColor bool) *VoteScreen {
	return &VoteScreen{
		out:     out,
		colors:  newPalette(out, noColor),
		clear:   IsTerminal(out),
		enabled: true,
	}
}

func (s *VoteScreen) SetControlsEnabled(enabled bool) {
	s.enabled = enabled
	s.Draw()
}

func (s *VoteScreen) ShowMessage(kind ports.MessageKind, text string) {
	s.kind = kind
	s.message = text
	s.Draw()
}

func (s *VoteScreen) HideMessage() {
	s.message = ""
	s.Draw()
}

func (s *VoteScreen) buttons() string {
	parts := make([]string, 0, len(domain.Categories))
	for i, c := range domain.Categories {
		label := fmt.Sprintf("[%d] %s %s", i+1, c.Emoji(), c.Label())
		if s.enabled {
			label = s.colors.tone(c.Tone(), label)
		} else {
			label = s.colors.dim(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "    ")
}

func (s *VoteScreen) Draw() {
	var b strings.Builder
	if s.clear {
		b.WriteString(clearScreen)
	}
	b.WriteString(s.colors.title("Como avalia o nosso atendimento?"))
	b.WriteString("\r\n\r\n")
	b.WriteString(s.buttons())
	b.WriteString("\r\n\r\n")
	if s.message != "" {
		if s.kind == ports.MessageSuccess {
			b.WriteString(s.colors.tone(domain.ToneSuccess, s.message))
		} else {
			b.WriteString(s.colors.tone(domain.ToneDanger, s.message))
		}
	}
	b.WriteString("\r\n")
	io.WriteString(s.out, b.String())
}

const clearScreen = "\033[H\033[2J"
