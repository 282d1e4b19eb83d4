package ui

import (
	"image/color"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/tartampluch/go-gymtrack/internal/engine"
)

// ShowMainWindow displays the calendar and squad tabs.
// If the window is already open, it requests focus.
func (app *GymTrackApp) ShowMainWindow() {
	if app.MainWindow != nil {
		app.MainWindow.RequestFocus()
		return
	}

	slog.Info(config.LogMsgOpenWin, config.LogKeyComponent, config.CompUI)

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinMain))
	app.MainWindow = w
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))

	app.personal = newPersonalView(app)
	app.squads = newSquadsView(app)

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon(app.GetMsg(config.TKeyTabPersonal), theme.CalendarIcon(), app.personal.content),
		container.NewTabItemWithIcon(app.GetMsg(config.TKeyTabSquads), theme.AccountIcon(), app.squads.content),
	)
	w.SetContent(tabs)

	w.SetOnClosed(func() {
		app.MainWindow = nil
		app.personal = nil
		app.squads = nil
	})

	app.personal.refresh()
	go app.squads.reload()
	w.Show()
}

// -----------------------------------------------------------------------------
// Personal tab
// -----------------------------------------------------------------------------

// personalView is the month calendar, the toggle button and the weekly chart.
type personalView struct {
	app *GymTrackApp

	month    engine.Date // any day of the focus month
	selected engine.Date

	title    *widget.Label
	weekdays *fyne.Container
	grid     *fyne.Container
	toggle   *widget.Button
	thisWeek *widget.Label
	chart    *fyne.Container
	content  fyne.CanvasObject
}

func newPersonalView(app *GymTrackApp) *personalView {
	today := engine.Today(app.clock())
	v := &personalView{
		app:      app,
		month:    today,
		selected: today,
	}

	v.title = widget.NewLabel("")
	v.title.Alignment = fyne.TextAlignCenter
	v.title.TextStyle = fyne.TextStyle{Bold: true}

	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { v.shiftMonth(-1) })
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { v.shiftMonth(1) })
	home := widget.NewButtonWithIcon("", theme.HomeIcon(), func() {
		today := engine.Today(app.clock())
		v.month, v.selected = today, today
		v.refresh()
	})
	nav := container.NewBorder(nil, nil, prev, container.NewHBox(home, next), v.title)

	v.weekdays = container.NewGridWithColumns(config.DaysPerWeek)
	v.grid = container.NewGridWithColumns(config.DaysPerWeek)

	v.toggle = widget.NewButtonWithIcon("", theme.ConfirmIcon(), func() {
		d := v.selected
		go func() { _ = app.toggleVisit(d) }()
	})
	v.toggle.Importance = widget.HighImportance

	v.thisWeek = widget.NewLabel("")
	v.chart = container.NewHBox()
	chartTitle := widget.NewLabel(app.GetMsg(config.TKeyChartTitle))
	chartTitle.TextStyle = fyne.TextStyle{Italic: true}

	v.content = container.NewVBox(
		nav,
		v.weekdays,
		v.grid,
		v.toggle,
		v.thisWeek,
		widget.NewSeparator(),
		chartTitle,
		container.NewHScroll(v.chart),
	)
	return v
}

func (v *personalView) shiftMonth(n int) {
	v.month = engine.ShiftMonth(v.month, n)
	v.refresh()
}

// refresh recomputes every derived view from the session. It must run on
// the fyne event loop.
func (v *personalView) refresh() {
	app := v.app
	today := engine.Today(app.clock())
	s, err := app.Session()

	ws := app.weekStartPref()
	var cells []engine.CalendarCell
	if err == nil {
		ws = s.WeekStart()
		cells = s.MonthGrid(v.month, v.selected)
	} else {
		cells = engine.BuildMonthGrid(v.month, engine.GridOptions{WeekStart: ws, Today: today, Selected: v.selected})
	}

	v.title.SetText(app.monthTitle(v.month))

	order := engine.WeekdayOrder(ws)
	headers := make([]fyne.CanvasObject, 0, len(order))
	for _, wd := range order {
		l := widget.NewLabel(app.weekdayName(wd))
		l.Alignment = fyne.TextAlignCenter
		headers = append(headers, l)
	}
	v.weekdays.Objects = headers
	v.weekdays.Refresh()

	buttons := make([]fyne.CanvasObject, 0, len(cells))
	for _, c := range cells {
		cell := c
		b := widget.NewButton(cellLabel(cell), func() {
			v.selected = cell.Date
			if !cell.InFocusMonth {
				v.month = cell.Date
			}
			v.refresh()
		})
		b.Importance = cellImportance(cell)
		buttons = append(buttons, b)
	}
	v.grid.Objects = buttons
	v.grid.Refresh()

	has := err == nil && s.Has(v.selected)
	v.toggle.SetText(app.toggleLabel(v.selected, has))
	if has {
		v.toggle.SetIcon(theme.DeleteIcon())
	} else {
		v.toggle.SetIcon(theme.ConfirmIcon())
	}
	if err != nil || v.selected.IsZero() || (!has && v.selected.After(today)) {
		v.toggle.Disable()
	} else {
		v.toggle.Enable()
	}

	count := 0
	var buckets []engine.WeeklyBucket
	if err == nil {
		count = s.VisitsThisWeek()
		buckets = s.WeeklyChart(app.chartSpanPref())
	}
	v.thisWeek.SetText(app.thisWeekLabel(count))

	v.chart.Objects = chartBars(buckets)
	v.chart.Refresh()
}

// toggleLabel is the text of the confirm/remove button for d.
func (app *GymTrackApp) toggleLabel(d engine.Date, has bool) string {
	if d.IsZero() {
		return app.GetMsg(config.TKeyNoDateSelected)
	}
	key := config.TKeyBtnConfirm
	if has {
		key = config.TKeyBtnRemove
	}
	return app.GetMsg(key) + " (" + app.dateLabel(d) + ")"
}

// toggleVisit confirms or removes the visit on d and reports the outcome.
func (app *GymTrackApp) toggleVisit(d engine.Date) error {
	s, err := app.Session()
	if err != nil {
		app.notifyError(err)
		return err
	}
	var has bool
	err = app.withReauth(s, func() error {
		var terr error
		has, terr = s.Toggle(app.Ctx, d)
		return terr
	})
	if err != nil {
		app.notifyError(err)
		return err
	}

	key := config.TKeyNotifRemoved
	if has {
		key = config.TKeyNotifConfirmed
	}
	app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(key)))
	return nil
}

// cellLabel is the day number, marked when the cell is today.
func cellLabel(c engine.CalendarCell) string {
	label := strconv.Itoa(c.Date.Day())
	if c.IsToday {
		label = config.MarkToday + label
	}
	if c.HasVisit {
		label += " " + config.MarkVisited
	}
	return label
}

// cellImportance highlights visits and the selection, and dims padding days.
func cellImportance(c engine.CalendarCell) widget.Importance {
	switch {
	case c.IsSelected:
		return widget.HighImportance
	case c.HasVisit:
		return widget.SuccessImportance
	case !c.InFocusMonth:
		return widget.LowImportance
	default:
		return widget.MediumImportance
	}
}

// barHeights scales bucket counts to the chart height. Non-empty weeks get
// at least the minimum height so they stay visible.
func barHeights(buckets []engine.WeeklyBucket) []float32 {
	peak := engine.MaxCount(buckets)
	out := make([]float32, len(buckets))
	if peak == 0 {
		return out
	}
	for i, b := range buckets {
		if b.Count == 0 {
			continue
		}
		h := float32(b.Count) / float32(peak) * config.ChartMaxHeight
		out[i] = max(h, config.ChartMinBarHeight)
	}
	return out
}

// chartBars draws one bottom-aligned bar per bucket.
func chartBars(buckets []engine.WeeklyBucket) []fyne.CanvasObject {
	heights := barHeights(buckets)
	fill := theme.Color(theme.ColorNamePrimary)

	objs := make([]fyne.CanvasObject, 0, len(heights)+1)

	// Keeps the chart height constant when all bars are short.
	axis := canvas.NewRectangle(color.Transparent)
	axis.SetMinSize(fyne.NewSize(0, config.ChartMaxHeight))
	objs = append(objs, axis)

	for _, h := range heights {
		bar := canvas.NewRectangle(fill)
		bar.SetMinSize(fyne.NewSize(config.ChartBarWidth, h))
		objs = append(objs, container.NewBorder(nil, bar, nil, nil))
	}
	return objs
}
