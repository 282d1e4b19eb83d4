package ui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/tartampluch/go-gymtrack/internal/engine"
	"github.com/tartampluch/go-gymtrack/internal/remote"
	"github.com/tartampluch/go-gymtrack/internal/server"
	"github.com/zalando/go-keyring"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFacade simulates the backend client using testify/mock.
type MockFacade struct {
	mock.Mock
}

func (m *MockFacade) FetchVisits(ctx context.Context, memberID string) ([]engine.Visit, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engine.Visit), args.Error(1)
}

func (m *MockFacade) AddVisit(ctx context.Context, memberID string, date engine.Date) error {
	return m.Called(ctx, memberID, date).Error(0)
}

func (m *MockFacade) RemoveVisit(ctx context.Context, memberID string, date engine.Date) error {
	return m.Called(ctx, memberID, date).Error(0)
}

func (m *MockFacade) FetchRoster(ctx context.Context, groupID string) ([]engine.Member, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engine.Member), args.Error(1)
}

func (m *MockFacade) FetchGroupVisits(ctx context.Context, groupID string, start, end engine.Date) ([]engine.Visit, error) {
	args := m.Called(ctx, groupID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engine.Visit), args.Error(1)
}

func (m *MockFacade) FetchSquads(ctx context.Context, memberID string) ([]engine.Squad, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engine.Squad), args.Error(1)
}

func (m *MockFacade) SignUp(ctx context.Context, username, password string) (remote.Credentials, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(remote.Credentials), args.Error(1)
}

func (m *MockFacade) SignIn(ctx context.Context, username, password string) (remote.Credentials, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(remote.Credentials), args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// MockTray implements minimal system tray functionality for headless testing.
type MockTray struct {
	Menu *fyne.Menu
}

func (m *MockTray) SetSystemTrayMenu(menu *fyne.Menu) {
	m.Menu = menu
}

func (m *MockTray) SetSystemTrayIcon(icon fyne.Resource) {}
func (m *MockTray) SetSystemTrayWindow(w fyne.Window)    {}
func (m *MockTray) Run()                                 {}
func (m *MockTray) Quit()                                {}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

// Thursday, in a week that starts on Sunday 2025-10-12.
var testNow = time.Date(2025, 10, 16, 10, 0, 0, 0, time.UTC)

func testToday() engine.Date {
	return engine.DateOf(testNow)
}

// setupTestApp initializes a headless Fyne app signed in as member m-1.
func setupTestApp(t *testing.T) (*GymTrackApp, *MockFacade, *MockTray) {
	keyring.MockInit()
	a := test.NewApp()

	// Port "0" is never bound: tests drive the handler directly.
	srv := server.NewFeedServer("0")
	facade := new(MockFacade)
	mockTray := &MockTray{}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := NewGymTrackApp(a, ctx, srv)
	app.Tray = mockTray
	app.Clock = MockClock{CurrentTime: testNow}
	app.NewFacade = func(fyne.Preferences) (remote.Facade, error) { return facade, nil }

	app.SetupI18n()
	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()
	app.Preferences.SetString(config.PrefMemberID, "m-1")
	app.Preferences.SetString(config.PrefUsername, "ryan")

	return app, facade, mockTray
}

func serve(t *testing.T, app *GymTrackApp, route string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	app.Server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, route, nil))
	return rec
}

// -----------------------------------------------------------------------------
// Localization Tests
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app, _, _ := setupTestApp(t)

	assert.Equal(t, "Settings...", app.GetMsg(config.TKeyMenuSettings))

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	assert.Equal(t, "Paramètres...", app.GetMsg(config.TKeyMenuSettings))
}

func TestLocalization_SupportedLanguages(t *testing.T) {
	app, _, _ := setupTestApp(t)
	assert.ElementsMatch(t, []string{"en", "fr"}, app.SupportedLanguages)
}

func TestLocalization_CalendarLabels(t *testing.T) {
	app, _, _ := setupTestApp(t)
	d := engine.NewDate(2025, time.October, 16)

	assert.Equal(t, "October 2025", app.monthTitle(d))
	assert.Equal(t, "Sun", app.weekdayName(time.Sunday))
	assert.Equal(t, "Oct 16, 2025", app.dateLabel(d))
	assert.Equal(t, "1 visit this week", app.thisWeekLabel(1))
	assert.Equal(t, "3 visits this week", app.thisWeekLabel(3))

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	assert.Equal(t, "octobre 2025", app.monthTitle(d))
	assert.Equal(t, "16/10/2025", app.dateLabel(d))
}

func TestLocalization_MissingKeyFallsBack(t *testing.T) {
	app, _, _ := setupTestApp(t)
	assert.Equal(t, "nope", app.GetMsg("nope"))
	assert.Equal(t, "fallback 7", app.msgOr("nope", nil, nil, "fallback %d", 7))
}

func TestLocalization_SummaryFormatter(t *testing.T) {
	app, _, _ := setupTestApp(t)
	formatter := app.buildSummaryFormatter()
	assert.Equal(t, "Gym visit", formatter(testToday()))

	app.Localizer = nil
	assert.Equal(t, config.FallbackSummary, formatter(testToday()))
}

// -----------------------------------------------------------------------------
// Configuration & Preferences Tests
// -----------------------------------------------------------------------------

func TestConfiguration_WorkerSignal(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.watchPreferences()

	signalReceived := make(chan bool)
	go func() {
		select {
		case key := <-app.configChan:
			signalReceived <- key == config.PrefInterval
		case <-time.After(500 * time.Millisecond):
			signalReceived <- false
		}
	}()

	app.Preferences.SetInt(config.PrefInterval, 120)

	assert.True(t, <-signalReceived, "Changing interval should notify background worker")
}

func TestConfiguration_RefreshInterval(t *testing.T) {
	app, _, _ := setupTestApp(t)

	assert.Equal(t, time.Duration(config.DefaultRefreshMin)*time.Minute, app.refreshInterval())

	app.Preferences.SetInt(config.PrefInterval, 0)
	assert.Zero(t, app.refreshInterval(), "0 disables the ticker")

	app.Preferences.SetInt(config.PrefInterval, -3)
	assert.Equal(t, time.Duration(config.DefaultRefreshMin)*time.Minute, app.refreshInterval())
}

func TestConfiguration_WeekPreferences(t *testing.T) {
	app, _, _ := setupTestApp(t)

	assert.Equal(t, config.DefaultWeekStart, app.weekStartPref())
	app.Preferences.SetInt(config.PrefWeekStart, int(time.Monday))
	assert.Equal(t, time.Monday, app.weekStartPref())
	app.Preferences.SetInt(config.PrefWeekStart, 9)
	assert.Equal(t, config.DefaultWeekStart, app.weekStartPref())

	assert.Equal(t, config.DefaultChartWeeks, app.chartWeeksPref())
	app.Preferences.SetInt(config.PrefChartWeeks, 1)
	assert.Equal(t, config.MinChartWeeks, app.chartWeeksPref())
	app.Preferences.SetInt(config.PrefChartWeeks, 1000)
	assert.Equal(t, config.MaxChartWeeks, app.chartWeeksPref())
}

func TestConfiguration_ChartSpan(t *testing.T) {
	app, facade, _ := setupTestApp(t)
	facade.On("FetchVisits", mock.Anything, mock.Anything).Return([]engine.Visit{}, nil).Maybe()

	assert.Equal(t, engine.ChartSpan{Weeks: config.DefaultChartWeeks}, app.chartSpanPref())

	app.Preferences.SetString(config.PrefChartUnit, config.ChartUnitMonths)
	assert.Equal(t, engine.ChartSpan{Months: config.DefaultChartMonths}, app.chartSpanPref())
	app.Preferences.SetInt(config.PrefChartMonths, 99)
	assert.Equal(t, engine.ChartSpan{Months: config.MaxChartMonths}, app.chartSpanPref())

	sw := app.newSettingsWidgets()
	assert.Equal(t, 1, sw.unitSelect.SelectedIndex())
	v, ok := sw.entryWeeks.IntValue()
	require.True(t, ok)
	assert.Equal(t, config.MaxChartMonths, v)

	sw.unitSelect.SetSelectedIndex(0)
	sw.entryWeeks.SetIntValue(8)
	app.saveSettings(sw)
	assert.Equal(t, engine.ChartSpan{Weeks: 8}, app.chartSpanPref())
}

func TestValidatePort(t *testing.T) {
	app, _, _ := setupTestApp(t)

	assert.NoError(t, app.validatePort("18081"))
	assert.EqualError(t, app.validatePort(""), "Port is required")
	assert.EqualError(t, app.validatePort("abc"), "Port must be a number")
	assert.EqualError(t, app.validatePort("70000"), "Port must be between 1 and 65535")
	assert.EqualError(t, app.validatePort("0"), "Port must be between 1 and 65535")
}

// -----------------------------------------------------------------------------
// Session Tests
// -----------------------------------------------------------------------------

func TestSession_RequiresMember(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefMemberID, "")

	_, err := app.Session()
	assert.EqualError(t, err, config.ErrMemberUnknown)
}

func TestSession_IsCachedUntilReset(t *testing.T) {
	app, _, _ := setupTestApp(t)
	calls := 0
	app.NewFacade = func(fyne.Preferences) (remote.Facade, error) {
		calls++
		return new(MockFacade), nil
	}

	s1, err := app.Session()
	require.NoError(t, err)
	s2, err := app.Session()
	require.NoError(t, err)
	assert.Same(t, s1, s2)
	assert.Equal(t, 1, calls)

	app.Preferences.SetInt(config.PrefWeekStart, int(time.Monday))
	app.resetSession()
	s3, err := app.Session()
	require.NoError(t, err)
	assert.NotSame(t, s1, s3)
	assert.Equal(t, time.Monday, s3.WeekStart())
	assert.Equal(t, 2, calls)
}

func TestSession_FacadeError(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.NewFacade = func(fyne.Preferences) (remote.Facade, error) {
		return nil, errors.New(config.ErrBackendURLEmpty)
	}
	_, err := app.Session()
	assert.EqualError(t, err, config.ErrBackendURLEmpty)
}

// -----------------------------------------------------------------------------
// Sync Logic Integration Tests
// -----------------------------------------------------------------------------

func TestPerformSync_Success(t *testing.T) {
	app, facade, mockTray := setupTestApp(t)
	app.setupTrayMenu()

	today := testToday()
	facade.On("FetchVisits", mock.Anything, "m-1").Return([]engine.Visit{
		{MemberID: "m-1", Date: today},
		{MemberID: "m-1", Date: today.AddDays(-2)},
		{MemberID: "m-1", Date: today.AddDays(-30)},
	}, nil)

	app.performSync(true)

	facade.AssertExpectations(t)
	require.NotNil(t, mockTray.Menu)
	assert.Equal(t, "2 visits this week", app.TrayStatusItem.Label)

	rec := serve(t, app, config.RouteCalendar)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "BEGIN:VEVENT")
	assert.Contains(t, rec.Body.String(), "Gym visit")

	rec = serve(t, app, config.RouteSummary)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"thisWeek":2`)
	assert.Contains(t, rec.Body.String(), `"memberId":"m-1"`)
}

func TestPerformSync_Failure(t *testing.T) {
	app, facade, _ := setupTestApp(t)
	app.setupTrayMenu()

	facade.On("FetchVisits", mock.Anything, "m-1").
		Return(nil, remote.NewError(remote.KindNetwork, "FetchVisits", errors.New("connection refused")))

	app.performSync(true)

	facade.AssertExpectations(t)
	assert.Equal(t, config.FallbackTrayError, app.TrayStatusItem.Label)
}

func TestPerformSync_UnknownMemberIsEmpty(t *testing.T) {
	app, facade, _ := setupTestApp(t)
	app.setupTrayMenu()

	facade.On("FetchVisits", mock.Anything, "m-1").
		Return(nil, remote.NewError(remote.KindNotFound, "FetchVisits", errors.New("no such user")))

	app.performSync(false)

	assert.Equal(t, "No visits this week yet", app.TrayStatusItem.Label)
}

func TestPerformSync_Reauthenticates(t *testing.T) {
	app, facade, _ := setupTestApp(t)
	app.setupTrayMenu()
	require.NoError(t, keyring.Set(config.KeyringService, "ryan", "secret1"))

	today := testToday()
	facade.On("FetchVisits", mock.Anything, "m-1").
		Return(nil, remote.NewError(remote.KindAuth, "FetchVisits", errors.New("expired"))).Once()
	facade.On("SignIn", mock.Anything, "ryan", "secret1").
		Return(remote.Credentials{MemberID: "m-1", Username: "ryan", Token: "fresh"}, nil).Once()
	facade.On("FetchVisits", mock.Anything, "m-1").
		Return([]engine.Visit{{MemberID: "m-1", Date: today}}, nil).Once()

	app.performSync(false)

	facade.AssertExpectations(t)
	assert.Equal(t, "1 visit this week", app.TrayStatusItem.Label)

	tok, err := remote.KeyringTokens{Username: "ryan"}.Token()
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
}

func TestPerformSync_ReauthWithoutPassword(t *testing.T) {
	app, facade, _ := setupTestApp(t)
	app.setupTrayMenu()
	app.Preferences.SetString(config.PrefUsername, "nobody")

	facade.On("FetchVisits", mock.Anything, "m-1").
		Return(nil, remote.NewError(remote.KindAuth, "FetchVisits", errors.New("expired"))).Once()

	app.performSync(false)

	facade.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, config.FallbackTrayError, app.TrayStatusItem.Label)
}

func TestTrayStatusUpdate_Logic(t *testing.T) {
	app, _, mockTray := setupTestApp(t)
	app.setupTrayMenu()

	app.updateTrayStatus(-1)
	assert.Equal(t, config.FallbackTrayError, app.TrayStatusItem.Label)

	app.updateTrayStatus(0)
	assert.Equal(t, "No visits this week yet", app.TrayStatusItem.Label, "Should use explicit zero string")

	app.updateTrayStatus(10)
	assert.Equal(t, "10 visits this week", app.TrayStatusItem.Label)

	assert.NotNil(t, mockTray.Menu)
}

func TestRefreshTrayMenu_Language(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.setupTrayMenu()
	assert.Equal(t, "Settings...", app.TraySettingsItem.Label)

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	assert.Equal(t, "Paramètres...", app.TraySettingsItem.Label)
}

// -----------------------------------------------------------------------------
// Visit toggling
// -----------------------------------------------------------------------------

func TestToggleVisit(t *testing.T) {
	app, facade, _ := setupTestApp(t)
	app.setupTrayMenu()
	today := testToday()

	facade.On("FetchVisits", mock.Anything, "m-1").Return([]engine.Visit{}, nil)
	facade.On("AddVisit", mock.Anything, "m-1", today).Return(nil).Once()
	facade.On("RemoveVisit", mock.Anything, "m-1", today).Return(nil).Once()
	app.performSync(false)

	require.NoError(t, app.toggleVisit(today))
	s, err := app.Session()
	require.NoError(t, err)
	assert.True(t, s.Has(today))
	assert.Equal(t, "1 visit this week", app.TrayStatusItem.Label)

	require.NoError(t, app.toggleVisit(today))
	assert.False(t, s.Has(today))
	assert.Equal(t, "No visits this week yet", app.TrayStatusItem.Label)

	facade.AssertExpectations(t)
}

func TestToggleVisit_FutureRejected(t *testing.T) {
	app, facade, _ := setupTestApp(t)
	tomorrow := testToday().AddDays(1)

	err := app.toggleVisit(tomorrow)
	assert.ErrorIs(t, err, remote.ErrValidation)
	facade.AssertNotCalled(t, "AddVisit", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleVisit_RollbackOnFailure(t *testing.T) {
	app, facade, _ := setupTestApp(t)
	app.setupTrayMenu()
	today := testToday()

	facade.On("AddVisit", mock.Anything, "m-1", today).
		Return(remote.NewError(remote.KindNetwork, "AddVisit", errors.New("offline")))

	err := app.toggleVisit(today)
	assert.ErrorIs(t, err, remote.ErrNetwork)

	s, serr := app.Session()
	require.NoError(t, serr)
	assert.False(t, s.Has(today))
	assert.Equal(t, "No visits this week yet", app.TrayStatusItem.Label)
}

func TestToggleVisit_Reauthenticates(t *testing.T) {
	app, facade, _ := setupTestApp(t)
	app.setupTrayMenu()
	require.NoError(t, keyring.Set(config.KeyringService, "ryan", "secret1"))
	today := testToday()

	facade.On("AddVisit", mock.Anything, "m-1", today).
		Return(remote.NewError(remote.KindAuth, "AddVisit", errors.New("expired"))).Once()
	facade.On("SignIn", mock.Anything, "ryan", "secret1").
		Return(remote.Credentials{MemberID: "m-1", Username: "ryan", Token: "fresh"}, nil).Once()
	facade.On("AddVisit", mock.Anything, "m-1", today).Return(nil).Once()

	require.NoError(t, app.toggleVisit(today))

	facade.AssertExpectations(t)
	s, err := app.Session()
	require.NoError(t, err)
	assert.True(t, s.Has(today), "the retried confirm sticks")
	assert.Equal(t, "1 visit this week", app.TrayStatusItem.Label)
}

func TestToggleVisit_ReauthFailsKeepsError(t *testing.T) {
	app, facade, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefUsername, "nobody")
	today := testToday()

	facade.On("AddVisit", mock.Anything, "m-1", today).
		Return(remote.NewError(remote.KindAuth, "AddVisit", errors.New("expired"))).Once()

	err := app.toggleVisit(today)
	assert.ErrorIs(t, err, remote.ErrAuth)
	facade.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
	facade.AssertNumberOfCalls(t, "AddVisit", 1)
}

// -----------------------------------------------------------------------------
// Main window
// -----------------------------------------------------------------------------

func TestMainWindow_PersonalTabWithoutSession(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefMemberID, "")

	app.ShowMainWindow()
	t.Cleanup(func() {
		if app.MainWindow != nil {
			app.MainWindow.Close()
		}
	})
	require.NotNil(t, app.personal)
	v := app.personal

	assert.Equal(t, "October 2025", v.title.Text)
	assert.Len(t, v.weekdays.Objects, config.DaysPerWeek)
	// Sunday 2025-09-28 through Saturday 2025-11-01.
	assert.Len(t, v.grid.Objects, 35)
	assert.True(t, v.toggle.Disabled(), "No session means nothing to toggle")
	assert.Equal(t, "0 visits this week", v.thisWeek.Text)

	v.shiftMonth(1)
	assert.Equal(t, "November 2025", v.title.Text)
	v.shiftMonth(-2)
	assert.Equal(t, "September 2025", v.title.Text)

	// A second call focuses the same window.
	w := app.MainWindow
	app.ShowMainWindow()
	assert.Same(t, w, app.MainWindow)
}

func TestMainWindow_SelectPaddingDayMovesMonth(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefMemberID, "")
	app.ShowMainWindow()
	t.Cleanup(func() {
		if app.MainWindow != nil {
			app.MainWindow.Close()
		}
	})
	v := app.personal

	first, ok := v.grid.Objects[0].(interface{ Tapped(*fyne.PointEvent) })
	require.True(t, ok)
	first.Tapped(&fyne.PointEvent{})

	assert.Equal(t, engine.NewDate(2025, time.September, 28), v.selected)
	assert.Equal(t, "September 2025", v.title.Text)
}

// -----------------------------------------------------------------------------
// Settings
// -----------------------------------------------------------------------------

func TestSignIn_SignUpStoresCredentials(t *testing.T) {
	app, facade, _ := setupTestApp(t)
	facade.On("SignUp", mock.Anything, "ana", "hunter22").
		Return(remote.Credentials{MemberID: "m-9", Username: "ana", Token: "tok-9"}, nil).Once()

	require.NoError(t, app.signIn("ana", "hunter22", true))

	facade.AssertExpectations(t)
	assert.Equal(t, "m-9", app.Preferences.String(config.PrefMemberID))
	assert.Equal(t, "ana", app.Preferences.String(config.PrefDisplayName))
	tok, err := remote.KeyringTokens{Username: "ana"}.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-9", tok)
}

func TestSignIn_Rejected(t *testing.T) {
	app, facade, _ := setupTestApp(t)
	facade.On("SignIn", mock.Anything, "ryan", "wrong").
		Return(remote.Credentials{}, remote.NewError(remote.KindAuth, "SignIn", errors.New("bad credentials")))

	err := app.signIn("ryan", "wrong", false)
	assert.ErrorIs(t, err, remote.ErrAuth)
	assert.Equal(t, "m-1", app.Preferences.String(config.PrefMemberID), "A failed sign-in keeps the current member")
}

func TestSaveSettings(t *testing.T) {
	app, facade, _ := setupTestApp(t)
	facade.On("FetchVisits", mock.Anything, mock.Anything).Return([]engine.Visit{}, nil).Maybe()

	sw := app.newSettingsWidgets()
	assert.Equal(t, "ryan", sw.userEntry.Text)
	assert.Equal(t, int(config.DefaultWeekStart), sw.weekSelect.SelectedIndex())

	sw.userEntry.SetText("  ana ")
	sw.passEntry.SetText("")
	sw.weekSelect.SetSelectedIndex(int(time.Monday))
	sw.entryWeeks.SetIntValue(500)
	sw.entryInterval.SetText("")
	sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeLocal))
	sw.pathEntry.SetText("/tmp/squad.vcf")

	app.saveSettings(sw)

	assert.Equal(t, "ana", app.Preferences.String(config.PrefUsername))
	assert.Empty(t, app.Preferences.String(config.PrefMemberID), "Switching account forgets the member id")
	assert.Equal(t, time.Monday, app.weekStartPref())
	assert.Equal(t, config.MaxChartWeeks, app.chartWeeksPref())
	assert.Zero(t, app.refreshInterval(), "Empty interval disables the refresh")
	assert.Equal(t, config.RosterModeLocal, app.Preferences.String(config.PrefRosterMode))
	assert.Equal(t, "/tmp/squad.vcf", app.Preferences.String(config.PrefVCardPath))
}
