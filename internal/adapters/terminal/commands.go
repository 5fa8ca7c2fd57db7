package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/ports"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrQuit           = errors.New("quit")
)

const commandHelp = "filter <ini> <fim> | clear | today | week | p | n | compare <d1> <d2> | excel | txt | confirm | cancel | q"

// Dashboard is the set of operator actions the command line can drive.
type Dashboard interface {
	ApplyFilters(start, end string)
	ClearFilters()
	ShowToday()
	ShowLast7Days()
	PreviousPage()
	NextPage()
	CompareDays(day1, day2 string)
	ExportSpreadsheet()
	OpenExportDialog()
	CloseExportDialog()
	ConfirmExport()
	BackdropClicked()
}

// ParseCommand turns one input line into a dashboard action. Missing
// arguments are passed on as empty strings so the dashboard can reject them
// with its own alerts.
func ParseCommand(line string) (func(Dashboard), error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	arg := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	switch strings.ToLower(fields[0]) {
	case "filter", "f":
		start, end := arg(1), arg(2)
		return func(d Dashboard) { d.ApplyFilters(start, end) }, nil
	case "clear":
		return Dashboard.ClearFilters, nil
	case "today", "hoje":
		return Dashboard.ShowToday, nil
	case "week", "7":
		return Dashboard.ShowLast7Days, nil
	case "prev", "p":
		return Dashboard.PreviousPage, nil
	case "next", "n":
		return Dashboard.NextPage, nil
	case "compare", "c":
		d1, d2 := arg(1), arg(2)
		return func(d Dashboard) { d.CompareDays(d1, d2) }, nil
	case "excel":
		return Dashboard.ExportSpreadsheet, nil
	case "txt":
		return Dashboard.OpenExportDialog, nil
	case "confirm":
		return Dashboard.ConfirmExport, nil
	case "cancel":
		return Dashboard.CloseExportDialog, nil
	case "esc":
		return Dashboard.BackdropClicked, nil
	case "quit", "q", "exit":
		return nil, ErrQuit
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
}

// ReadCommands parses lines from in and posts each action onto the UI
// goroutine through dispatcher. It returns when in is exhausted, ctx is
// done or the operator quits.
func ReadCommands(ctx context.Context, in io.Reader, dispatcher ports.Dispatcher, screen *DashboardScreen, dashboard Dashboard, log logrus.FieldLogger) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		action, err := ParseCommand(scanner.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			log.WithError(err).Debug("ignoring input")
			dispatcher.Post(func() { screen.Alert(err.Error()) })
			continue
		}
		if action == nil {
			continue
		}
		dispatcher.Post(func() {
			screen.DismissAlert()
			action(dashboard)
		})
	}
	return scanner.Err()
}
