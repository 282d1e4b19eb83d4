package ui

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/tartampluch/go-gymtrack/internal/engine"
	"github.com/tartampluch/go-gymtrack/internal/session"
)

// squadsView renders the weekly attendance table of the selected squad.
// Fields are only touched on the fyne event loop; fetches run in goroutines
// and hand their results back through fyne.Do.
type squadsView struct {
	app *GymTrackApp

	squads []engine.Squad
	ref    engine.Date
	view   session.SquadView

	selector  *widget.Select
	weekLabel *widget.Label
	champion  *widget.Label
	status    *widget.Label
	table     *widget.Table
	content   fyne.CanvasObject
}

func squadLog() *slog.Logger {
	return slog.With(config.LogKeyComponent, config.CompUISquad)
}

func newSquadsView(app *GymTrackApp) *squadsView {
	v := &squadsView{app: app, ref: engine.Today(app.clock())}

	v.selector = widget.NewSelect(nil, func(string) {
		i := v.selector.SelectedIndex()
		if i < 0 || i >= len(v.squads) {
			return
		}
		id := v.squads[i].ID
		app.Preferences.SetString(config.PrefLastSquad, id)
		go v.load(id, v.ref)
	})
	v.selector.PlaceHolder = app.GetMsg(config.TKeyLblSquad)

	v.weekLabel = widget.NewLabel("")
	v.weekLabel.Alignment = fyne.TextAlignCenter
	v.champion = widget.NewLabel("")
	v.champion.TextStyle = fyne.TextStyle{Bold: true}
	v.status = widget.NewLabel("")

	v.table = widget.NewTable(
		func() (int, int) {
			return len(v.view.Week.Members), config.SquadColCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.CellPlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(squadCellText(v.view.Week, id.Row, id.Col))
		},
	)
	v.table.ShowHeaderRow = true
	v.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabel(config.CellPlaceholder)
	}
	v.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		o.(*widget.Label).SetText(v.headerText(id.Col))
	}
	v.table.OnSelected = func(id widget.TableCellID) {
		defer v.table.UnselectAll()
		if id.Col >= config.SquadColFirst && id.Col < config.SquadColTotal {
			v.showAttendees(v.view.Week.Days[id.Col-config.SquadColFirst])
		}
	}
	v.table.SetColumnWidth(config.SquadColName, config.ColWidthMember)
	for c := config.SquadColFirst; c < config.SquadColTotal; c++ {
		v.table.SetColumnWidth(c, config.ColWidthDay)
	}
	v.table.SetColumnWidth(config.SquadColTotal, config.ColWidthTotal)

	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { v.shiftWeek(-1) })
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { v.shiftWeek(1) })
	refresh := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() { go v.reload() })
	create := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnNewSquad), theme.ContentAddIcon(), v.promptCreate)
	join := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnJoinSquad), theme.LoginIcon(), v.promptJoin)

	top := container.NewVBox(
		container.NewBorder(nil, nil, nil, container.NewHBox(refresh, create, join), v.selector),
		container.NewBorder(nil, nil, prev, next, v.weekLabel),
		v.champion,
		v.status,
	)
	v.content = container.NewBorder(top, nil, nil, nil, v.table)
	v.render()
	return v
}

// reload fetches the member's squads and reselects the last one.
func (v *squadsView) reload() {
	s, err := v.app.Session()
	if err != nil {
		return
	}
	squads, err := s.Squads(v.app.Ctx)
	if err != nil {
		squadLog().Warn(config.MsgRequestFailed, config.LogKeyError, err)
		v.app.notifyError(err)
		return
	}

	fyne.Do(func() {
		v.squads = squads
		names := make([]string, len(squads))
		for i, sq := range squads {
			names[i] = sq.Name
		}
		v.selector.SetOptions(names)

		if len(squads) == 0 {
			v.view = session.SquadView{Empty: true}
			v.render()
			return
		}
		idx := squadIndex(squads, v.app.Preferences.String(config.PrefLastSquad))
		if idx == v.selector.SelectedIndex() {
			go v.load(squads[idx].ID, v.ref)
			return
		}
		v.selector.SetSelectedIndex(idx)
	})
}

// squadIndex returns the position of id in squads, or 0.
func squadIndex(squads []engine.Squad, id string) int {
	for i, sq := range squads {
		if sq.ID == id {
			return i
		}
	}
	return 0
}

// load fetches the roster week around ref of squadID. Results of a squad
// that is no longer selected are dropped. ref is passed by the caller since
// load runs off the event loop.
func (v *squadsView) load(squadID string, ref engine.Date) {
	s, err := v.app.Session()
	if err != nil {
		return
	}
	view, err := s.SelectSquad(v.app.Ctx, squadID, ref)
	if errors.Is(err, session.ErrStale) {
		return
	}
	if err != nil {
		squadLog().Warn(config.MsgRequestFailed, config.LogKeySquad, squadID, config.LogKeyError, err)
		v.app.notifyError(err)
		return
	}
	fyne.Do(func() {
		v.view = view
		v.render()
	})
}

func (v *squadsView) shiftWeek(n int) {
	v.ref = v.ref.AddDays(n * config.DaysPerWeek)
	if id := v.currentSquad(); id != "" {
		go v.load(id, v.ref)
		return
	}
	v.render()
}

func (v *squadsView) currentSquad() string {
	i := v.selector.SelectedIndex()
	if i < 0 || i >= len(v.squads) {
		return ""
	}
	return v.squads[i].ID
}

// render updates labels and the table from v.view.
func (v *squadsView) render() {
	app := v.app
	week := engine.WeekOf(v.ref, app.weekStartPref())
	if !v.view.Week.Week.IsEmpty() {
		week = v.view.Week.Week
	}
	v.weekLabel.SetText(app.msgOr(config.TKeyFormatWeek,
		map[string]any{"Start": app.dateLabel(week.Start), "End": app.dateLabel(week.End)}, nil,
		"%s - %s", week.Start, week.End))

	switch {
	case len(v.squads) == 0:
		v.status.SetText(app.GetMsg(config.TKeyNoSquads))
	case v.view.Empty:
		v.status.SetText(app.GetMsg(config.TKeyEmptyRoster))
	default:
		v.status.SetText("")
	}

	if champ, ok := v.view.Week.Champion(); ok {
		v.champion.SetText(app.msgOr(config.TKeyLblChampion,
			map[string]any{"Name": champ.Member.Name, "Count": champ.Count()}, nil,
			config.FallbackChampion, champ.Member.Name, champ.Count()))
	} else {
		v.champion.SetText(app.GetMsg(config.TKeyNoChampion))
	}
	v.table.Refresh()
}

// headerText labels the member, day and total columns.
func (v *squadsView) headerText(col int) string {
	switch {
	case col == config.SquadColName:
		return v.app.GetMsg(config.TKeyColMember)
	case col == config.SquadColTotal:
		return v.app.GetMsg(config.TKeyColTotal)
	case col >= config.SquadColFirst && col < config.SquadColTotal:
		d := v.view.Week.Days[col-config.SquadColFirst]
		if d.IsZero() {
			wd := engine.WeekdayOrder(v.app.weekStartPref())[col-config.SquadColFirst]
			return v.app.weekdayName(wd)
		}
		return v.app.weekdayName(d.Weekday()) + " " + strconv.Itoa(d.Day())
	}
	return ""
}

// squadCellText renders one body cell of the roster table.
func squadCellText(week engine.RosterWeek, row, col int) string {
	if row < 0 || row >= len(week.Members) {
		return ""
	}
	m := week.Members[row]
	switch {
	case col == config.SquadColName:
		if row == week.ChampionIndex {
			return config.MarkChampion + m.Member.Name
		}
		return m.Member.Name
	case col == config.SquadColTotal:
		return strconv.Itoa(m.Count())
	case col >= config.SquadColFirst && col < config.SquadColTotal:
		if m.Row[col-config.SquadColFirst] {
			return config.MarkVisited
		}
		return config.MarkMissed
	}
	return ""
}

// attendeeNames lists the members present on d, one per line.
func attendeeNames(members []engine.Member) string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return strings.Join(names, "\n")
}

// showAttendees opens a dialog listing who went to the gym on d.
func (v *squadsView) showAttendees(d engine.Date) {
	if v.app.MainWindow == nil {
		return
	}
	title := v.app.msgOr(config.TKeyWinAttendees, map[string]any{"Date": v.app.dateLabel(d)}, nil, "%s", d)
	body := attendeeNames(v.view.AttendeesOn(d))
	if body == "" {
		body = v.app.GetMsg(config.TKeyNoAttendees)
	}
	dialog.ShowInformation(title, body, v.app.MainWindow)
}

// promptCreate asks for a squad name and creates it.
func (v *squadsView) promptCreate() {
	entry := widget.NewEntry()
	v.prompt(config.TKeyBtnNewSquad, config.TKeyLblSquadName, entry, func() {
		app := v.app
		s, err := app.Session()
		if err != nil {
			app.notifyError(err)
			return
		}
		sq, err := s.CreateSquad(app.Ctx, entry.Text)
		if err != nil {
			app.notifyError(err)
			return
		}
		app.Preferences.SetString(config.PrefLastSquad, sq.ID)
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifSquadNew)))
		v.reload()
	})
}

// promptJoin asks for a squad id and joins it.
func (v *squadsView) promptJoin() {
	entry := widget.NewEntry()
	v.prompt(config.TKeyBtnJoinSquad, config.TKeyLblSquadID, entry, func() {
		app := v.app
		s, err := app.Session()
		if err != nil {
			app.notifyError(err)
			return
		}
		id := strings.TrimSpace(entry.Text)
		if err := s.JoinSquad(app.Ctx, id); err != nil {
			app.notifyError(err)
			return
		}
		app.Preferences.SetString(config.PrefLastSquad, id)
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifJoined)))
		v.reload()
	})
}

// prompt shows a one-field form and runs onOK in a goroutine when confirmed
// with a non-blank value.
func (v *squadsView) prompt(titleKey, labelKey string, entry *widget.Entry, onOK func()) {
	if v.app.MainWindow == nil {
		return
	}
	items := []*widget.FormItem{widget.NewFormItem(v.app.GetMsg(labelKey), entry)}
	dialog.ShowForm(v.app.GetMsg(titleKey), v.app.GetMsg(config.TKeyBtnSave), v.app.GetMsg(config.TKeyBtnCancel),
		items, func(ok bool) {
			if ok && strings.TrimSpace(entry.Text) != "" {
				go onOK()
			}
		}, v.app.MainWindow)
}
