package terminal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/ports"
)

var ErrSlotInUse = errors.New("chart slot in use")

const (
	barWidth    = 30
	trendHeight = 8
)

// Charts keeps one rendered chart per slot, as text.
type Charts struct {
	colors palette
	slots  map[ports.ChartSlot]string
}

func NewCharts(colors palette) *Charts {
	return &Charts{colors: colors, slots: make(map[ports.ChartSlot]string)}
}

func (c *Charts) Rendered(slot ports.ChartSlot) string {
	return c.slots[slot]
}

func (c *Charts) Destroy(slot ports.ChartSlot) {
	delete(c.slots, slot)
}

func (c *Charts) place(slot ports.ChartSlot, text string) error {
	if _, ok := c.slots[slot]; ok {
		return fmt.Errorf("%w: %s", ErrSlotInUse, slot)
	}
	c.slots[slot] = text
	return nil
}

func (c *Charts) RenderDistribution(segments []ports.Segment) error {
	max := 0
	for _, s := range segments {
		if s.Value > max {
			max = s.Value
		}
	}

	var b strings.Builder
	for _, s := range segments {
		fmt.Fprintf(&b, "%-18s %s %s\n", s.Label, bar(s.Value, max), s.Tooltip)
	}
	return c.place(ports.SlotDistribution, b.String())
}

func (c *Charts) RenderWeekdayBars(bars [7]ports.Bar) error {
	max := 0
	for _, day := range bars {
		if day.Value > max {
			max = day.Value
		}
	}

	var b strings.Builder
	for _, day := range bars {
		fmt.Fprintf(&b, "%-8s %s %d\n", day.Label, bar(day.Value, max), day.Value)
	}
	return c.place(ports.SlotWeekday, b.String())
}

func (c *Charts) RenderTrend(points []ports.Point) error {
	switch len(points) {
	case 0:
		return c.place(ports.SlotTrend, c.colors.dim("sem dados")+"\n")
	case 1:
		return c.place(ports.SlotTrend, fmt.Sprintf("%s: %d\n", points[0].Label, points[0].Value))
	}

	series := make([]float64, len(points))
	for i, p := range points {
		series[i] = float64(p.Value)
	}
	plot := asciigraph.Plot(series,
		asciigraph.Height(trendHeight),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("%s → %s", points[0].Label, points[len(points)-1].Label)),
	)
	return c.place(ports.SlotTrend, plot+"\n")
}

func bar(value, max int) string {
	if max <= 0 || value <= 0 {
		return strings.Repeat("·", barWidth)
	}
	filled := value * barWidth / max
	if filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat("·", barWidth-filled)
}
