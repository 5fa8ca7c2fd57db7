package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/domain"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/ports"
)

type fakeAPI struct {
	votes         []domain.VoteRequest
	voteErr       error
	statsQueries  []domain.StatsQuery
	statsResp     *domain.StatsResponse
	statsErr      error
	compareCalls  [][2]domain.Date
	compareResp   *domain.ComparisonResponse
	compareErr    error
	exportReqs    []domain.ExportRequest
	exportData    []byte
	exportErr     error
	spreadsheetAt string
}

func (f *fakeAPI) CastVote(_ context.Context, category domain.Category) error {
	f.votes = append(f.votes, domain.VoteRequest{Satisfaction: category})
	return f.voteErr
}

func (f *fakeAPI) Stats(_ context.Context, query domain.StatsQuery) (*domain.StatsResponse, error) {
	f.statsQueries = append(f.statsQueries, query)
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.statsResp, nil
}

func (f *fakeAPI) Compare(_ context.Context, day1, day2 domain.Date) (*domain.ComparisonResponse, error) {
	f.compareCalls = append(f.compareCalls, [2]domain.Date{day1, day2})
	if f.compareErr != nil {
		return nil, f.compareErr
	}
	return f.compareResp, nil
}

func (f *fakeAPI) ExportText(_ context.Context, req domain.ExportRequest) ([]byte, error) {
	f.exportReqs = append(f.exportReqs, req)
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return f.exportData, nil
}

func (f *fakeAPI) SpreadsheetURL() string {
	return f.spreadsheetAt
}

// manualDispatcher runs posted functions immediately, as the test goroutine
// plays the UI goroutine. Background work waits until Drain.
type manualDispatcher struct {
	pending []func()
}

func (d *manualDispatcher) Post(fn func()) { fn() }
func (d *manualDispatcher) Go(fn func())   { d.pending = append(d.pending, fn) }

func (d *manualDispatcher) Drain() {
	for len(d.pending) > 0 {
		fn := d.pending[0]
		d.pending = d.pending[1:]
		fn()
	}
}

type manualTimer struct {
	at      time.Time
	every   time.Duration
	fn      func()
	stopped bool
	seq     int
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualScheduler struct {
	now    time.Time
	timers []*manualTimer
	seq    int
}

func newManualScheduler(now time.Time) *manualScheduler {
	return &manualScheduler{now: now}
}

func (s *manualScheduler) Now() time.Time { return s.now }

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) ports.Timer {
	return s.add(d, 0, fn)
}

func (s *manualScheduler) Every(d time.Duration, fn func()) ports.Timer {
	return s.add(d, d, fn)
}

func (s *manualScheduler) add(d, every time.Duration, fn func()) *manualTimer {
	s.seq++
	t := &manualTimer{at: s.now.Add(d), every: every, fn: fn, seq: s.seq}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward, firing due timers in time order.
func (s *manualScheduler) Advance(d time.Duration) {
	end := s.now.Add(d)
	for {
		next := s.nextDue(end)
		if next == nil {
			break
		}
		s.now = next.at
		if next.every > 0 {
			next.at = next.at.Add(next.every)
		} else {
			next.stopped = true
		}
		next.fn()
	}
	s.now = end
}

func (s *manualScheduler) nextDue(end time.Time) *manualTimer {
	var due []*manualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.at.After(end) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}

func (s *manualScheduler) active() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

type voteViewEvent struct {
	enabled *bool
	kind    ports.MessageKind
	text    string
	hidden  bool
}

type fakeVoteView struct {
	enabled        bool
	messageVisible bool
	message        string
	kind           ports.MessageKind
	events         []voteViewEvent
}

func newFakeVoteView() *fakeVoteView {
	return &fakeVoteView{enabled: true}
}

func (v *fakeVoteView) SetControlsEnabled(enabled bool) {
	v.enabled = enabled
	v.events = append(v.events, voteViewEvent{enabled: &enabled})
}

func (v *fakeVoteView) ShowMessage(kind ports.MessageKind, text string) {
	v.messageVisible = true
	v.kind = kind
	v.message = text
	v.events = append(v.events, voteViewEvent{kind: kind, text: text})
}

func (v *fakeVoteView) HideMessage() {
	v.messageVisible = false
	v.events = append(v.events, voteViewEvent{hidden: true})
}

type fakeDashboardView struct {
	header           string
	inputs           domain.DateInputs
	overview         ports.Overview
	overviewCalls    int
	table            ports.Table
	pagination       ports.PaginationView
	comparison       *ports.ComparisonView
	comparisonHidden int
	dialogOpen       bool
	alerts           []string
	scrolledTop      int
	scrolledCompare  int
}

func (v *fakeDashboardView) SetHeaderDate(text string)            { v.header = text }
func (v *fakeDashboardView) SetInputs(inputs domain.DateInputs)   { v.inputs = inputs }
func (v *fakeDashboardView) SetTable(table ports.Table)           { v.table = table }
func (v *fakeDashboardView) SetPagination(p ports.PaginationView) { v.pagination = p }
func (v *fakeDashboardView) SetExportDialog(open bool)            { v.dialogOpen = open }
func (v *fakeDashboardView) Alert(message string)                 { v.alerts = append(v.alerts, message) }
func (v *fakeDashboardView) ScrollToTop()                         { v.scrolledTop++ }
func (v *fakeDashboardView) ScrollToComparison()                  { v.scrolledCompare++ }

func (v *fakeDashboardView) SetOverview(o ports.Overview) {
	v.overview = o
	v.overviewCalls++
}

func (v *fakeDashboardView) ShowComparison(c ports.ComparisonView) {
	v.comparison = &c
}

func (v *fakeDashboardView) HideComparison() {
	v.comparison = nil
	v.comparisonHidden++
}

var errSlotBusy = errors.New("slot already has a chart")

type fakeCharts struct {
	live         map[ports.ChartSlot]bool
	segments     []ports.Segment
	bars         [7]ports.Bar
	points       []ports.Point
	destroyCalls int
}

func newFakeCharts() *fakeCharts {
	return &fakeCharts{live: make(map[ports.ChartSlot]bool)}
}

func (c *fakeCharts) claim(slot ports.ChartSlot) error {
	if c.live[slot] {
		return errSlotBusy
	}
	c.live[slot] = true
	return nil
}

func (c *fakeCharts) RenderDistribution(segments []ports.Segment) error {
	c.segments = segments
	return c.claim(ports.SlotDistribution)
}

func (c *fakeCharts) RenderWeekdayBars(bars [7]ports.Bar) error {
	c.bars = bars
	return c.claim(ports.SlotWeekday)
}

func (c *fakeCharts) RenderTrend(points []ports.Point) error {
	c.points = points
	return c.claim(ports.SlotTrend)
}

func (c *fakeCharts) Destroy(slot ports.ChartSlot) {
	c.destroyCalls++
	delete(c.live, slot)
}

type fakeDownloader struct {
	saved map[string][]byte
	err   error
}

func (d *fakeDownloader) Save(name string, data []byte) error {
	if d.err != nil {
		return d.err
	}
	if d.saved == nil {
		d.saved = make(map[string][]byte)
	}
	d.saved[name] = data
	return nil
}

type fakeNavigator struct {
	visited []string
}

func (n *fakeNavigator) Navigate(url string) error {
	n.visited = append(n.visited, url)
	return nil
}
