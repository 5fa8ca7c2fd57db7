package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/domain"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/ports"
)

const (
	RefreshInterval   = 30 * time.Second
	DateCheckInterval = 60 * time.Second
)

const (
	alertBothDates      = "Por favor, selecione ambas as datas!"
	alertStartAfterEnd  = "A data inicial não pode ser maior que a data final!"
	alertInvalidDate    = "Por favor, informe as datas no formato AAAA-MM-DD!"
	alertBothDays       = "Por favor, selecione ambos os dias para comparar!"
	alertSameDay        = "Por favor, selecione dias diferentes!"
	alertCompareFailed  = "Erro ao comparar dias!"
	alertCompareRejects = "Erro ao carregar comparação: "
	alertExportFailed   = "Erro ao exportar o arquivo!"
)

// DashboardController keeps the statistics screen in sync with the backend
// under the current filters. All methods must run on the UI goroutine.
type DashboardController struct {
	api        ports.SurveyAPI
	view       ports.DashboardView
	charts     ports.ChartRenderer
	downloader ports.Downloader
	navigator  ports.Navigator
	dispatcher ports.Dispatcher
	scheduler  ports.Scheduler
	log        logrus.FieldLogger

	filter     domain.FilterState
	inputs     domain.DateInputs
	totalPages int
	loadedDay  domain.Date
	dialogOpen bool

	refreshTimer   ports.Timer
	dateCheckTimer ports.Timer
}

type DashboardDeps struct {
	API        ports.SurveyAPI
	View       ports.DashboardView
	Charts     ports.ChartRenderer
	Downloader ports.Downloader
	Navigator  ports.Navigator
	Dispatcher ports.Dispatcher
	Scheduler  ports.Scheduler
	Log        logrus.FieldLogger
}

func NewDashboardController(deps DashboardDeps) *DashboardController {
	return &DashboardController{
		api:        deps.API,
		view:       deps.View,
		charts:     deps.Charts,
		downloader: deps.Downloader,
		navigator:  deps.Navigator,
		dispatcher: deps.Dispatcher,
		scheduler:  deps.Scheduler,
		log:        deps.Log,
	}
}

func (c *DashboardController) Filter() domain.FilterState { return c.filter }
func (c *DashboardController) Inputs() domain.DateInputs  { return c.inputs }

// Start shows today's statistics and starts the periodic refresh and the
// date rollover check.
func (c *DashboardController) Start() {
	c.reset()
	c.refreshTimer = c.scheduler.Every(RefreshInterval, c.loadStats)
	c.dateCheckTimer = c.scheduler.Every(DateCheckInterval, c.checkDateRollover)
}

// Stop cancels the repeating tasks. Requests already in flight still land.
func (c *DashboardController) Stop() {
	if c.refreshTimer != nil {
		c.refreshTimer.Stop()
		c.refreshTimer = nil
	}
	if c.dateCheckTimer != nil {
		c.dateCheckTimer.Stop()
		c.dateCheckTimer = nil
	}
}

func (c *DashboardController) today() domain.Date {
	return domain.DateOf(c.scheduler.Now())
}

// reset rebuilds the whole view as on a fresh page load.
func (c *DashboardController) reset() {
	today := c.today()
	c.loadedDay = today
	c.view.SetHeaderDate(headerDate(today))

	c.inputs = domain.DateInputs{Start: today.String(), End: today.String()}
	c.view.SetInputs(c.inputs)
	c.filter = domain.TodayFilter(today)

	c.view.HideComparison()
	c.dialogOpen = false
	c.view.SetExportDialog(false)

	c.loadStats()
}

func (c *DashboardController) checkDateRollover() {
	if today := c.today(); !today.Equal(c.loadedDay) {
		c.log.WithFields(logrus.Fields{
			"previous": c.loadedDay.String(),
			"today":    today.String(),
		}).Info("date changed, reloading dashboard")
		c.reset()
	}
}

// SetDateInputs records the range fields without applying them.
func (c *DashboardController) SetDateInputs(start, end string) {
	c.inputs.Start = start
	c.inputs.End = end
	c.view.SetInputs(c.inputs)
}

func (c *DashboardController) ApplyFilters(start, end string) {
	c.SetDateInputs(start, end)

	s, e, err := domain.ValidateRange(start, end)
	switch {
	case errors.Is(err, domain.ErrBothDatesRequired):
		c.view.Alert(alertBothDates)
		return
	case errors.Is(err, domain.ErrStartAfterEnd):
		c.view.Alert(alertStartAfterEnd)
		return
	case err != nil:
		c.view.Alert(alertInvalidDate)
		return
	}

	c.filter = domain.FilterState{Start: s, End: e, Page: 1}
	c.loadStats()
}

func (c *DashboardController) ClearFilters() {
	c.inputs = domain.DateInputs{}
	c.view.SetInputs(c.inputs)
	c.view.HideComparison()

	c.filter = domain.FilterState{Page: 1}
	c.loadStats()
}

func (c *DashboardController) ShowToday() {
	today := c.today()
	c.setRange(today, today)
}

func (c *DashboardController) ShowLast7Days() {
	today := c.today()
	c.setRange(today.AddDays(-7), today)
}

func (c *DashboardController) setRange(start, end domain.Date) {
	c.SetDateInputs(start.String(), end.String())
	c.filter = domain.FilterState{Start: start, End: end, Page: 1}
	c.loadStats()
}

func (c *DashboardController) PreviousPage() {
	if c.filter.Page <= 1 {
		return
	}
	c.filter.Page--
	c.loadStats()
	c.view.ScrollToTop()
}

func (c *DashboardController) NextPage() {
	if c.filter.Page >= c.totalPages {
		return
	}
	c.filter.Page++
	c.loadStats()
	c.view.ScrollToTop()
}

func (c *DashboardController) loadStats() {
	query := c.filter.Query()
	c.dispatcher.Go(func() {
		resp, err := c.api.Stats(context.Background(), query)
		c.dispatcher.Post(func() {
			c.statsLoaded(query, resp, err)
		})
	})
}

// statsLoaded renders a stats payload. Failures are only logged so an
// unattended screen is never covered by an error.
func (c *DashboardController) statsLoaded(query domain.StatsQuery, resp *domain.StatsResponse, err error) {
	if err != nil {
		entry := c.log.WithError(err).WithField("page", query.Page)
		if errors.Is(err, domain.ErrRequestRejected) {
			entry.Error("failed to load statistics")
		} else {
			entry.Error("connection error while loading statistics")
		}
		return
	}

	c.view.SetOverview(buildOverview(resp.Total, resp.Satisfaction))
	c.renderCharts(resp)
	c.view.SetTable(buildTable(resp.RecentEntries))

	c.totalPages = resp.Pagination.TotalPages
	c.view.SetPagination(buildPagination(resp.Pagination))
}

func (c *DashboardController) renderCharts(resp *domain.StatsResponse) {
	c.charts.Destroy(ports.SlotDistribution)
	if err := c.charts.RenderDistribution(distributionSegments(resp.Satisfaction)); err != nil {
		c.log.WithError(err).Warn("failed to render distribution chart")
	}

	c.charts.Destroy(ports.SlotWeekday)
	if err := c.charts.RenderWeekdayBars(weekdayBars(resp.DayOfWeek)); err != nil {
		c.log.WithError(err).Warn("failed to render weekday chart")
	}

	c.charts.Destroy(ports.SlotTrend)
	if err := c.charts.RenderTrend(trendPoints(resp.DailySeries)); err != nil {
		c.log.WithError(err).Warn("failed to render trend chart")
	}
}

func (c *DashboardController) CompareDays(day1, day2 string) {
	c.inputs.Compare1 = day1
	c.inputs.Compare2 = day2
	c.view.SetInputs(c.inputs)

	d1, d2, err := domain.ValidateComparison(day1, day2)
	switch {
	case errors.Is(err, domain.ErrBothDaysRequired):
		c.view.Alert(alertBothDays)
		return
	case errors.Is(err, domain.ErrSameDay):
		c.view.Alert(alertSameDay)
		return
	case err != nil:
		c.view.Alert(alertInvalidDate)
		return
	}

	c.dispatcher.Go(func() {
		resp, err := c.api.Compare(context.Background(), d1, d2)
		c.dispatcher.Post(func() {
			c.comparisonLoaded(resp, err)
		})
	})
}

func (c *DashboardController) comparisonLoaded(resp *domain.ComparisonResponse, err error) {
	if err != nil {
		c.log.WithError(err).Error("failed to compare days")
		var rejected *domain.StatusError
		if errors.As(err, &rejected) {
			c.view.Alert(alertCompareRejects + rejected.Message)
			return
		}
		c.view.Alert(alertCompareFailed)
		return
	}

	c.view.ShowComparison(buildComparison(resp))
	c.view.ScrollToComparison()
}

// ExportSpreadsheet hands the download URL to the browser. Server errors
// show up as the browser's own error page.
func (c *DashboardController) ExportSpreadsheet() {
	url := c.api.SpreadsheetURL()
	if err := c.navigator.Navigate(url); err != nil {
		c.log.WithError(err).WithField("url", url).Error("failed to open spreadsheet export")
	}
}

func (c *DashboardController) OpenExportDialog() {
	c.dialogOpen = true
	c.view.SetExportDialog(true)
}

func (c *DashboardController) CloseExportDialog() {
	c.dialogOpen = false
	c.view.SetExportDialog(false)
}

func (c *DashboardController) ExportDialogOpen() bool { return c.dialogOpen }

// BackdropClicked closes the export dialog, like a click outside it.
func (c *DashboardController) BackdropClicked() {
	if c.dialogOpen {
		c.CloseExportDialog()
	}
}

// ConfirmExport posts the current date inputs and saves the returned text.
func (c *DashboardController) ConfirmExport() {
	req := domain.ExportRequest{Start: c.inputs.Start, End: c.inputs.End}
	name := "avaliacoes_" + c.today().String() + ".txt"

	c.dispatcher.Go(func() {
		data, err := c.api.ExportText(context.Background(), req)
		c.dispatcher.Post(func() {
			c.exportFinished(name, data, err)
		})
	})
}

func (c *DashboardController) exportFinished(name string, data []byte, err error) {
	if err == nil {
		err = c.downloader.Save(name, data)
	}
	if err != nil {
		c.log.WithError(err).Error("failed to export text report")
		c.view.Alert(alertExportFailed)
		return
	}
	c.log.WithField("file", name).Info("text report exported")
	c.CloseExportDialog()
}
