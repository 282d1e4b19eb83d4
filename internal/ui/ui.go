package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/tartampluch/go-gymtrack/internal/engine"
	"github.com/tartampluch/go-gymtrack/internal/export"
	"github.com/tartampluch/go-gymtrack/internal/remote"
	"github.com/tartampluch/go-gymtrack/internal/server"
	"github.com/tartampluch/go-gymtrack/internal/session"
	"github.com/zalando/go-keyring"
)

// FacadeFactory builds the remote facade from the current preferences.
type FacadeFactory func(prefs fyne.Preferences) (remote.Facade, error)

// GymTrackApp encapsulates the UI state, preferences, and background logic.
type GymTrackApp struct {
	App         fyne.App
	Window      fyne.Window // settings
	MainWindow  fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server     *server.FeedServer
	Exporter   *export.Exporter
	NewFacade  FacadeFactory
	Clock      engine.Clock // Injected clock for testability
	sessionMut sync.Mutex
	session    *session.Session

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayOpenItem     *fyne.MenuItem
	TrayRefreshItem  *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	personal *personalView
	squads   *squadsView
}

// NewGymTrackApp constructs the application and wires dependencies.
func NewGymTrackApp(a fyne.App, ctx context.Context, srv *server.FeedServer) *GymTrackApp {
	a.SetIcon(theme.CalendarIcon())

	app := &GymTrackApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		NewFacade:          FacadeFromPreferences,
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
	}
	app.Exporter = &export.Exporter{Clock: app.clock(), FormatSummary: app.buildSummaryFormatter()}
	return app
}

// Run launches the application services and the main UI loop.
func (app *GymTrackApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyPort, app.Server.Port,
			config.LogKeyComponent, config.CompUI)

		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	go app.backgroundWorker()
	app.ShowMainWindow()
	app.App.Run()
}

func (app *GymTrackApp) clock() engine.Clock {
	if app.Clock == nil {
		return engine.RealClock{}
	}
	return app.Clock
}

// watchPreferences monitors changes to settings to trigger immediate updates.
func (app *GymTrackApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

// setupTrayMenu constructs the system tray menu.
func (app *GymTrackApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowMainWindow()
	})

	app.TrayOpenItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuOpen), func() {
		app.ShowMainWindow()
	})

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		go app.performSync(true)
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayOpenItem,
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *GymTrackApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayOpenItem.Label = app.GetMsg(config.TKeyMenuOpen)
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// refreshInterval reads the refresh preference. Zero disables the ticker.
func (app *GymTrackApp) refreshInterval() time.Duration {
	val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
	if val < 0 {
		val = config.DefaultRefreshMin
	}
	return time.Duration(val) * time.Minute
}

// backgroundWorker manages the periodic synchronization schedule.
func (app *GymTrackApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.performSync(false)

	currentDuration := app.refreshInterval()
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	if currentDuration > 0 {
		ticker.Reset(currentDuration)
	} else {
		ticker.Stop()
	}

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, currentDuration)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			newDuration := app.refreshInterval()
			if newDuration != currentDuration {
				log.Info(config.MsgUpdateSync, config.LogKeyOld, currentDuration, config.LogKeyNew, newDuration)
				currentDuration = newDuration
				if currentDuration > 0 {
					ticker.Reset(currentDuration)
				} else {
					ticker.Stop()
				}
			}

		case <-ticker.C:
			app.performSync(false)
		}
	}
}

// -----------------------------------------------------------------------------
// Session & facade
// -----------------------------------------------------------------------------

// FacadeFromPreferences builds the HTTP client, wrapped by the vCard roster
// when the local roster mode is selected.
func FacadeFromPreferences(prefs fyne.Preferences) (remote.Facade, error) {
	username := prefs.String(config.PrefUsername)
	backendURL := prefs.StringWithFallback(config.PrefBackendURL, config.DefaultBackendURL)

	var client *remote.HTTPClient
	if backendURL != "" {
		c, err := remote.NewHTTPClient(backendURL, remote.KeyringTokens{Username: username})
		if err != nil {
			return nil, err
		}
		client = c
	}

	switch prefs.StringWithFallback(config.PrefRosterMode, config.RosterModeRemote) {
	case config.RosterModeLocal:
		local := &remote.LocalRoster{Path: prefs.String(config.PrefVCardPath)}
		if client != nil {
			local.Remote = client
		}
		return local, nil
	case config.RosterModeRemote:
		if client == nil {
			return nil, errors.New(config.ErrBackendURLEmpty)
		}
		return client, nil
	default:
		return nil, errors.New(config.ErrModeUnsupport)
	}
}

// authenticator finds the sign-in capable client behind f.
func authenticator(f remote.Facade) (remote.Authenticator, bool) {
	if a, ok := f.(remote.Authenticator); ok {
		return a, true
	}
	if l, ok := f.(*remote.LocalRoster); ok && l.Remote != nil {
		a, ok := l.Remote.(remote.Authenticator)
		return a, ok
	}
	return nil, false
}

// weekStartPref reads the configured first day of the week.
func (app *GymTrackApp) weekStartPref() time.Weekday {
	ws := app.Preferences.IntWithFallback(config.PrefWeekStart, int(config.DefaultWeekStart))
	if ws < int(time.Sunday) || ws > int(time.Saturday) {
		return config.DefaultWeekStart
	}
	return time.Weekday(ws)
}

// chartWeeksPref reads the chart length, clamped to the supported range.
func (app *GymTrackApp) chartWeeksPref() int {
	n := app.Preferences.IntWithFallback(config.PrefChartWeeks, config.DefaultChartWeeks)
	return min(max(n, config.MinChartWeeks), config.MaxChartWeeks)
}

func (app *GymTrackApp) chartMonthsPref() int {
	n := app.Preferences.IntWithFallback(config.PrefChartMonths, config.DefaultChartMonths)
	return min(max(n, config.MinChartMonths), config.MaxChartMonths)
}

// chartSpanPref is the chart window in the unit picked in the settings.
func (app *GymTrackApp) chartSpanPref() engine.ChartSpan {
	if app.Preferences.String(config.PrefChartUnit) == config.ChartUnitMonths {
		return engine.ChartSpan{Months: app.chartMonthsPref()}
	}
	return engine.ChartSpan{Weeks: app.chartWeeksPref()}
}

// Session returns the current session, building it on first use.
func (app *GymTrackApp) Session() (*session.Session, error) {
	app.sessionMut.Lock()
	defer app.sessionMut.Unlock()
	if app.session != nil {
		return app.session, nil
	}

	memberID := app.Preferences.String(config.PrefMemberID)
	if memberID == "" {
		return nil, errors.New(config.ErrMemberUnknown)
	}
	facade, err := app.NewFacade(app.Preferences)
	if err != nil {
		return nil, err
	}

	s := session.New(facade, memberID,
		session.WithClock(app.clock()),
		session.WithWeekStart(app.weekStartPref()))
	s.OnChange(func() { app.onSessionChange(s) })
	app.session = s
	return s, nil
}

// resetSession drops the session so the next sync rebuilds it from the
// preferences.
func (app *GymTrackApp) resetSession() {
	app.sessionMut.Lock()
	app.session = nil
	app.sessionMut.Unlock()
}

// onSessionChange republishes everything derived from the visit store.
func (app *GymTrackApp) onSessionChange(s *session.Session) {
	app.publishFeeds(s)
	app.updateTrayStatus(s.VisitsThisWeek())
	if app.personal != nil {
		fyne.Do(app.personal.refresh)
	}
}

// reauthenticate signs in again with the password stored in the keyring and
// keeps the new token for later requests.
func (app *GymTrackApp) reauthenticate(ctx context.Context, f remote.Facade) error {
	auth, ok := authenticator(f)
	if !ok {
		return errors.New(config.ErrNoAuthSupport)
	}
	username := app.Preferences.String(config.PrefUsername)
	password, err := keyring.Get(config.KeyringService, username)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyUser, username,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
		return err
	}

	slog.Info(config.MsgReauth, config.LogKeyUser, username, config.LogKeyComponent, config.CompUI)
	creds, err := auth.SignIn(ctx, username, password)
	if err != nil {
		return err
	}
	return app.storeCredentials(creds)
}

// storeCredentials persists the member id and the bearer token.
func (app *GymTrackApp) storeCredentials(creds remote.Credentials) error {
	app.Preferences.SetString(config.PrefMemberID, creds.MemberID)
	app.Preferences.SetString(config.PrefDisplayName, creds.Username)
	return remote.KeyringTokens{Username: creds.Username}.Store(creds.Token)
}

// withReauth runs op, signing in again and retrying once when the token
// was rejected. The first error is kept when signing in fails.
func (app *GymTrackApp) withReauth(s *session.Session, op func() error) error {
	err := op()
	if !errors.Is(err, remote.ErrAuth) {
		return err
	}
	if rerr := app.reauthenticate(app.Ctx, s.Facade()); rerr != nil {
		return err
	}
	return op()
}

// hydrate loads the member's visits.
func (app *GymTrackApp) hydrate(s *session.Session) error {
	return app.withReauth(s, func() error { return s.Hydrate(app.Ctx) })
}

// performSync reloads the visits, then refreshes the feeds and the tray.
func (app *GymTrackApp) performSync(manual bool) {
	slog.Info(config.MsgSyncReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifStart)))
	}

	s, err := app.Session()
	if err == nil {
		err = app.hydrate(s)
	}
	if err != nil {
		slog.Error(config.MsgSyncFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleSyncError, app.GetMsg(config.TKeyNotifError)))
		}
		app.updateTrayStatus(-1)
		return
	}

	// Hydrate already notified listeners, which published the feeds.
	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifSuccess)))
	}
	if app.squads != nil {
		go app.squads.reload()
	}
}

// publishFeeds renders the calendar and the weekly summary into the feed server.
func (app *GymTrackApp) publishFeeds(s *session.Session) {
	log := slog.With(config.LogKeyComponent, config.CompUI)
	app.Exporter.Clock = app.clock()

	ics, err := app.Exporter.VisitsICS(s.MemberID(), s.All())
	if err != nil {
		log.Error(config.ErrICalEncode, config.LogKeyError, err)
	} else {
		app.Server.UpdateCalendar(ics)
	}

	summary := app.Exporter.BuildSummary(s.MemberID(), engine.VisitDates(s.All()), app.chartSpanPref(), s.WeekStart())
	data, err := export.SummaryJSON(summary)
	if err != nil {
		log.Error(config.ErrSummaryEncode, config.LogKeyError, err)
		return
	}
	app.Server.UpdateSummary(data)
}

// updateTrayStatus shows how many visits the member logged this week.
func (app *GymTrackApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	var label string
	switch {
	case count < 0:
		label = config.FallbackTrayError
	case count == 0:
		label = app.msgOr(config.TKeyTrayStatusZero, nil, nil, config.FallbackTrayDefault, 0)
	default:
		label = app.msgOr(config.TKeyTrayStatus, map[string]any{"Count": count}, count, config.FallbackTrayDefault, count)
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// buildSummaryFormatter returns a closure that localizes the event summary.
func (app *GymTrackApp) buildSummaryFormatter() func(engine.Date) string {
	return func(engine.Date) string {
		msg := app.GetMsg(config.TKeyEvtSummary)
		if msg == config.TKeyEvtSummary || msg == "" {
			return config.FallbackSummary
		}
		return msg
	}
}

// notifyError turns a facade error into a localized notification.
func (app *GymTrackApp) notifyError(err error) {
	app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(errorKey(err))))
}

// errorKey picks the message for a facade error. The future-date message
// is matched on text because the backend only reports it in the body.
func errorKey(err error) string {
	var key string
	switch remote.KindOf(err) {
	case remote.KindValidation:
		key = config.TKeyNotifInvalid
		if strings.Contains(err.Error(), config.ErrFutureVisit) {
			key = config.TKeyNotifFuture
		}
	case remote.KindAuth:
		key = config.TKeyNotifAuth
	case remote.KindNetwork:
		key = config.TKeyNotifNetwork
	default:
		key = config.TKeyNotifError
	}
	return key
}
