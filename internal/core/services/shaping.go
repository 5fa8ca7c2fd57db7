package services

import (
	"fmt"

	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/domain"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/ports"
)

const (
	tableColumns     = 5
	emptyTableText   = "Nenhuma avaliação registada ainda."
	trendLabelLayout = "02/01"
	dateLabelLayout  = "02/01/2006"
)

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func formatPercent(part, whole int) string {
	return fmt.Sprintf("%.1f%%", percent(part, whole))
}

// buildOverview leaves Percent empty when total is zero.
func buildOverview(total int, counts map[domain.Category]int) ports.Overview {
	o := ports.Overview{Total: total}
	for i, c := range domain.Categories {
		o.Categories[i] = ports.CategoryCount{Category: c, Count: counts[c]}
		if total > 0 {
			o.Categories[i].Percent = formatPercent(counts[c], total)
		}
	}
	return o
}

// distributionSegments computes tooltip percentages against the sum of the
// segments, not the overview total.
func distributionSegments(counts map[domain.Category]int) []ports.Segment {
	sum := 0
	for _, c := range domain.Categories {
		sum += counts[c]
	}

	segments := make([]ports.Segment, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		v := counts[c]
		segments = append(segments, ports.Segment{
			Label:   c.Label(),
			Value:   v,
			Tooltip: fmt.Sprintf("%s: %d (%.1f%%)", c.Label(), v, percent(v, sum)),
		})
	}
	return segments
}

func weekdayBars(counts map[string]int) [7]ports.Bar {
	var bars [7]ports.Bar
	for i, name := range domain.Weekdays {
		bars[i] = ports.Bar{Label: name, Value: counts[name]}
	}
	return bars
}

func trendPoints(series []domain.DailyCount) []ports.Point {
	points := make([]ports.Point, len(series))
	for i, d := range series {
		points[i] = ports.Point{Label: d.Date.Format(trendLabelLayout), Value: d.Count}
	}
	return points
}

func buildTable(entries []domain.Entry) ports.Table {
	t := ports.Table{Columns: tableColumns}
	if len(entries) == 0 {
		t.Placeholder = emptyTableText
		return t
	}

	t.Rows = make([]ports.TableRow, len(entries))
	for i, e := range entries {
		t.Rows[i] = ports.TableRow{
			ID:      "#" + string(e.ID),
			Badge:   e.Satisfaction.Emoji() + " " + e.Satisfaction.Label(),
			Tone:    e.Satisfaction.Tone(),
			Date:    e.Date.Format(dateLabelLayout),
			Time:    e.Time,
			Weekday: e.Weekday,
		}
	}
	return t
}

// buildPagination trusts the server's page numbers over the local ones.
func buildPagination(p domain.Pagination) ports.PaginationView {
	return ports.PaginationView{
		CurrentPage:  p.CurrentPage,
		TotalPages:   p.TotalPages,
		TotalRecords: p.TotalRecords,
		Visible:      p.TotalPages > 1,
		PrevEnabled:  p.CurrentPage != 1,
		NextEnabled:  p.CurrentPage != p.TotalPages,
	}
}

func comparisonColumn(prefix string, day domain.DayStats) ports.ComparisonColumn {
	col := ports.ComparisonColumn{
		Label: prefix + day.Date.String(),
		Total: day.Total,
	}
	for i, c := range domain.Categories {
		col.Counts[i] = ports.CategoryCount{Category: c, Count: day.Distribution[c]}
	}
	return col
}

func buildComparison(resp *domain.ComparisonResponse) ports.ComparisonView {
	return ports.ComparisonView{
		Day1: comparisonColumn("Dia 1: ", resp.Day1),
		Day2: comparisonColumn("Dia 2: ", resp.Day2),
	}
}

func headerDate(d domain.Date) string {
	return fmt.Sprintf("%s, %s", domain.WeekdayName(d.Weekday()), d.Format(dateLabelLayout))
}
