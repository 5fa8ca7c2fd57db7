package ports

import "github.com/vncsmyrnk/satisfaction-kiosk/internal/core/domain"

type ChartSlot string

const (
	SlotDistribution ChartSlot = "satisfacaoChart"
	SlotWeekday      ChartSlot = "diaSemanaChart"
	SlotTrend        ChartSlot = "evolucaoDiariaChart"
)

type Segment struct {
	Label   string
	Value   int
	Tooltip string
}

type Bar struct {
	Label string
	Value int
}

type Point struct {
	Label string
	Value int
}

// ChartRenderer draws charts into fixed slots. A slot must be destroyed
// before it is rendered again.
type ChartRenderer interface {
	RenderDistribution(segments []Segment) error
	RenderWeekdayBars(bars [7]Bar) error
	RenderTrend(points []Point) error
	Destroy(slot ChartSlot)
}

type CategoryCount struct {
	Category domain.Category
	Count    int
	// Percent is empty when the total is zero; the view keeps whatever it
	// showed before.
	Percent string
}

type Overview struct {
	Total      int
	Categories [3]CategoryCount
}

type TableRow struct {
	ID      string
	Badge   string
	Tone    domain.Tone
	Date    string
	Time    string
	Weekday string
}

type Table struct {
	Rows        []TableRow
	Placeholder string
	Columns     int
}

type PaginationView struct {
	CurrentPage  int
	TotalPages   int
	TotalRecords int
	Visible      bool
	PrevEnabled  bool
	NextEnabled  bool
}

type ComparisonColumn struct {
	Label  string
	Total  int
	Counts [3]CategoryCount
}

type ComparisonView struct {
	Day1 ComparisonColumn
	Day2 ComparisonColumn
}

type DashboardView interface {
	SetHeaderDate(text string)
	SetInputs(inputs domain.DateInputs)
	SetOverview(overview Overview)
	SetTable(table Table)
	SetPagination(p PaginationView)
	ShowComparison(c ComparisonView)
	HideComparison()
	SetExportDialog(open bool)
	Alert(message string)
	ScrollToTop()
	ScrollToComparison()
}

// Downloader saves a payload client-side under the given file name.
type Downloader interface {
	Save(name string, data []byte) error
}

// Navigator hands a URL to the browser for a full navigation.
type Navigator interface {
	Navigate(url string) error
}
