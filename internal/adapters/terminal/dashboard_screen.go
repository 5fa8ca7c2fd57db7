package terminal

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/domain"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/ports"
)

// DashboardScreen keeps the last state pushed by the dashboard controller
// and redraws the whole frame on every change. It must only be used from
// the UI goroutine.
type DashboardScreen struct {
	out    io.Writer
	colors palette
	charts *Charts
	clear  bool

	header     string
	inputs     domain.DateInputs
	overview   ports.Overview
	percents   [3]string
	table      ports.Table
	pagination ports.PaginationView
	comparison *ports.ComparisonView
	dialog     bool
	alert      string

	comparisonFirst bool
}

func NewDashboardScreen(out io.Writer, charts *Charts, noColor bool) *DashboardScreen {
	return &DashboardScreen{
		out:    out,
		colors: newPalette(out, noColor),
		charts: charts,
		clear:  IsTerminal(out),
	}
}

// NewDashboardCharts builds a chart renderer coloured like the screen.
func NewDashboardCharts(out io.Writer, noColor bool) *Charts {
	return NewCharts(newPalette(out, noColor))
}

func (s *DashboardScreen) SetHeaderDate(text string) {
	s.header = text
	s.Draw()
}

func (s *DashboardScreen) SetInputs(inputs domain.DateInputs) {
	s.inputs = inputs
	s.Draw()
}

func (s *DashboardScreen) SetOverview(overview ports.Overview) {
	s.overview = overview
	for i, c := range overview.Categories {
		if c.Percent != "" {
			s.percents[i] = c.Percent
		}
	}
	s.Draw()
}

func (s *DashboardScreen) SetTable(table ports.Table) {
	s.table = table
	s.Draw()
}

func (s *DashboardScreen) SetPagination(p ports.PaginationView) {
	s.pagination = p
	s.Draw()
}

func (s *DashboardScreen) ShowComparison(c ports.ComparisonView) {
	s.comparison = &c
	s.Draw()
}

func (s *DashboardScreen) HideComparison() {
	s.comparison = nil
	s.comparisonFirst = false
	s.Draw()
}

func (s *DashboardScreen) SetExportDialog(open bool) {
	s.dialog = open
	s.Draw()
}

func (s *DashboardScreen) Alert(message string) {
	s.alert = message
	s.Draw()
	io.WriteString(s.out, "\a")
}

// DismissAlert clears the alert line, like closing a browser alert box.
func (s *DashboardScreen) DismissAlert() {
	if s.alert == "" {
		return
	}
	s.alert = ""
	s.Draw()
}

func (s *DashboardScreen) ScrollToTop() {
	s.comparisonFirst = false
	s.Draw()
}

func (s *DashboardScreen) ScrollToComparison() {
	s.comparisonFirst = s.comparison != nil
	s.Draw()
}

func (s *DashboardScreen) Draw() {
	var b strings.Builder
	if s.clear {
		b.WriteString(clearScreen)
	}
	b.WriteString(s.Render())
	io.WriteString(s.out, b.String())
}

// Render returns the current frame without terminal control sequences.
func (s *DashboardScreen) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n\n", s.colors.title("Dashboard de Satisfação"), s.header)

	if s.comparisonFirst {
		s.writeComparison(&b)
	}

	s.writeFilters(&b)
	s.writeOverview(&b)
	s.writeCharts(&b)
	s.writeTable(&b)
	s.writePagination(&b)

	if !s.comparisonFirst {
		s.writeComparison(&b)
	}

	if s.dialog {
		s.writeDialog(&b)
	}
	if s.alert != "" {
		fmt.Fprintf(&b, "\n%s %s\n", s.colors.tone(domain.ToneDanger, "!"), s.colors.bold(s.alert))
	}
	b.WriteString("\n" + s.colors.dim(commandHelp) + "\n")
	return b.String()
}

func (s *DashboardScreen) writeFilters(b *strings.Builder) {
	fmt.Fprintf(b, "Período: %s até %s\n\n", orDash(s.inputs.Start), orDash(s.inputs.End))
}

func (s *DashboardScreen) writeOverview(b *strings.Builder) {
	fmt.Fprintf(b, "%s %d\n", s.colors.bold("Total:"), s.overview.Total)
	for i, c := range s.overview.Categories {
		if !c.Category.Valid() {
			continue
		}
		line := fmt.Sprintf("  %s %-17s %5d", c.Category.Emoji(), c.Category.Label(), c.Count)
		if s.percents[i] != "" {
			line += "  " + s.percents[i]
		}
		b.WriteString(s.colors.tone(c.Category.Tone(), line) + "\n")
	}
	b.WriteString("\n")
}

func (s *DashboardScreen) writeCharts(b *strings.Builder) {
	if s.charts == nil {
		return
	}
	sections := []struct {
		title string
		slot  ports.ChartSlot
	}{
		{"Distribuição", ports.SlotDistribution},
		{"Por dia da semana", ports.SlotWeekday},
		{"Evolução diária", ports.SlotTrend},
	}
	for _, sec := range sections {
		text := s.charts.Rendered(sec.slot)
		if text == "" {
			continue
		}
		fmt.Fprintf(b, "%s\n%s\n", s.colors.bold(sec.title), text)
	}
}

func (s *DashboardScreen) writeTable(b *strings.Builder) {
	b.WriteString(s.colors.bold("Últimas avaliações") + "\n")
	if len(s.table.Rows) == 0 {
		if s.table.Placeholder != "" {
			b.WriteString("  " + s.colors.dim(s.table.Placeholder) + "\n")
		}
		b.WriteString("\n")
		return
	}

	w := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tAvaliação\tData\tHora\tDia")
	for _, r := range s.table.Rows {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", r.ID, s.colors.tone(r.Tone, r.Badge), r.Date, r.Time, r.Weekday)
	}
	w.Flush()
	b.WriteString("\n")
}

func (s *DashboardScreen) writePagination(b *strings.Builder) {
	p := s.pagination
	if !p.Visible {
		return
	}
	prev, next := "[p] Anterior", "[n] Próxima"
	if !p.PrevEnabled {
		prev = s.colors.dim(prev)
	}
	if !p.NextEnabled {
		next = s.colors.dim(next)
	}
	fmt.Fprintf(b, "%s  Página %d de %d (%d registos)  %s\n\n", prev, p.CurrentPage, p.TotalPages, p.TotalRecords, next)
}

func (s *DashboardScreen) writeComparison(b *strings.Builder) {
	if s.comparison == nil {
		return
	}
	b.WriteString(s.colors.bold("Comparação") + "\n")
	w := tabwriter.NewWriter(b, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "  \t%s\t%s\n", s.comparison.Day1.Label, s.comparison.Day2.Label)
	fmt.Fprintf(w, "  Total\t%d\t%d\n", s.comparison.Day1.Total, s.comparison.Day2.Total)
	for i, c := range domain.Categories {
		fmt.Fprintf(w, "  %s %s\t%s\t%s\n", c.Emoji(), c.Label(),
			comparisonCell(s.comparison.Day1.Counts[i]),
			comparisonCell(s.comparison.Day2.Counts[i]))
	}
	w.Flush()
	b.WriteString("\n")
}

func (s *DashboardScreen) writeDialog(b *strings.Builder) {
	b.WriteString(s.colors.title("Exportar relatório (.txt)") + "\n")
	fmt.Fprintf(b, "  Período: %s até %s\n", orDash(s.inputs.Start), orDash(s.inputs.End))
	b.WriteString("  confirm: exportar   cancel: fechar\n")
}

func comparisonCell(c ports.CategoryCount) string {
	if c.Percent == "" {
		return fmt.Sprintf("%d", c.Count)
	}
	return fmt.Sprintf("%d (%s)", c.Count, c.Percent)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
