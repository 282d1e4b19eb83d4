package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/tartampluch/go-gymtrack/internal/remote"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	modeSelect    *widget.Select
	urlEntry      *widget.Entry
	userEntry     *widget.Entry
	passEntry     *widget.Entry
	signUpCheck   *widget.Check
	pathEntry     *widget.Entry
	weekSelect    *widget.Select
	entryWeeks    *NumericalEntry
	unitSelect    *widget.Select
	entryInterval *NumericalEntry
	entryPort     *NumericalEntry
}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *GymTrackApp) ShowSettingsWindow() {
	if app.Window != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.Window.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	sw := app.newSettingsWidgets()

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	accountCard := app.buildAccountCard(sw)
	rosterCard := app.buildRosterCard(w, sw, onLayoutChange)
	generalCard := app.buildGeneralCard(sw)

	saveAction := func() {
		// Only the Port field blocks saving when invalid.
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		accountCard,
		rosterCard,
		generalCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.Window = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets creates the inputs pre-filled from the preferences.
func (app *GymTrackApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.StringWithFallback(config.PrefBackendURL, config.DefaultBackendURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	// Pre-fill the password from secure storage.
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}
	sw.signUpCheck = widget.NewCheck(app.GetMsg(config.TKeyChkSignUp), nil)

	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeRemote),
		app.GetMsg(config.TKeyModeLocal),
	}, nil)

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefVCardPath))

	days := make([]string, 0, config.DaysPerWeek)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		days = append(days, app.weekdayName(wd))
	}
	sw.weekSelect = widget.NewSelect(days, nil)
	sw.weekSelect.SetSelectedIndex(int(app.weekStartPref()))

	sw.entryWeeks = NewNumericalEntry()
	sw.unitSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyUnitWeeks),
		app.GetMsg(config.TKeyUnitMonths),
	}, nil)
	if span := app.chartSpanPref(); span.Months > 0 {
		sw.entryWeeks.SetIntValue(span.Months)
		sw.unitSelect.SetSelectedIndex(1)
	} else {
		sw.entryWeeks.SetIntValue(span.Weeks)
		sw.unitSelect.SetSelectedIndex(0)
	}

	// Empty or "0" disables the refresh, so no validator.
	sw.entryInterval = NewNumericalEntry()
	sw.entryInterval.SetIntValue(app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin))

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	return sw
}

// validatePort requires a number between MinPort and MaxPort.
func (app *GymTrackApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// buildAccountCard holds the backend URL and the credentials.
func (app *GymTrackApp) buildAccountCard(sw *settingsWidgets) *widget.Card {
	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)

	form := widget.NewForm(
		itemURL,
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry),
	)
	return widget.NewCard(app.GetMsg(config.TKeyLblAccount), "", container.NewVBox(form, sw.signUpCheck))
}

// buildRosterCard selects between the backend roster and a local vCard file.
func (app *GymTrackApp) buildRosterCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	updateVis := func(mode string) {
		if mode == app.GetMsg(config.TKeyModeLocal) {
			localForm.Show()
		} else {
			localForm.Hide()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}
	sw.modeSelect.OnChanged = updateVis

	if app.Preferences.String(config.PrefRosterMode) == config.RosterModeLocal {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeLocal))
	} else {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeRemote))
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblRoster), "", container.NewVBox(sw.modeSelect, localForm))
}

// buildGeneralCard groups language, calendar and feed options.
func (app *GymTrackApp) buildGeneralCard(sw *settingsWidgets) *widget.Card {
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	widInterval := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblMinutes)), sw.entryInterval)
	itemInterval := widget.NewFormItem(app.GetMsg(config.TKeyLblRefresh), widInterval)
	itemInterval.HintText = app.GetMsg(config.TKeyHelpInterval)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	form := widget.NewForm(
		itemLang,
		widget.NewFormItem(app.GetMsg(config.TKeyLblWeekStart), sw.weekSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblChartWeeks),
			container.NewBorder(nil, nil, nil, sw.unitSelect, sw.entryWeeks)),
		itemInterval,
		itemPort,
	)
	return widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", form)
}

// saveSettings persists the data, then signs in and resyncs in the background.
func (app *GymTrackApp) saveSettings(sw *settingsWidgets) {
	slog.Info("Saving preferences", config.LogKeyComponent, config.CompUISet)

	mode := config.RosterModeRemote
	if sw.modeSelect.Selected == app.GetMsg(config.TKeyModeLocal) {
		mode = config.RosterModeLocal
	}

	username := strings.TrimSpace(sw.userEntry.Text)
	if username != app.Preferences.String(config.PrefUsername) {
		// Another account: the old member id no longer applies.
		app.Preferences.SetString(config.PrefMemberID, "")
	}

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefRosterMode, mode)
	app.Preferences.SetString(config.PrefBackendURL, strings.TrimSpace(sw.urlEntry.Text))
	app.Preferences.SetString(config.PrefUsername, username)
	app.Preferences.SetString(config.PrefVCardPath, sw.pathEntry.Text)

	// Save the password only if provided.
	if username != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, username, sw.passEntry.Text); err != nil {
			slog.Error("Failed to save credentials to keyring", config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	if i := sw.weekSelect.SelectedIndex(); i >= 0 {
		app.Preferences.SetInt(config.PrefWeekStart, i)
	}
	months := sw.unitSelect.SelectedIndex() == 1
	if months {
		app.Preferences.SetString(config.PrefChartUnit, config.ChartUnitMonths)
	} else {
		app.Preferences.SetString(config.PrefChartUnit, config.ChartUnitWeeks)
	}
	if n, ok := sw.entryWeeks.IntValue(); ok {
		if months {
			app.Preferences.SetInt(config.PrefChartMonths, min(max(n, config.MinChartMonths), config.MaxChartMonths))
		} else {
			app.Preferences.SetInt(config.PrefChartWeeks, min(max(n, config.MinChartWeeks), config.MaxChartWeeks))
		}
	}

	// Empty or 0 disables the refresh.
	if i, ok := sw.entryInterval.IntValue(); ok && i > 0 {
		app.Preferences.SetInt(config.PrefInterval, i)
	} else {
		app.Preferences.SetInt(config.PrefInterval, config.DisabledInterval)
		slog.Info("Auto-refresh disabled via settings", config.LogKeyComponent, config.CompUISet)
	}

	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	app.resetSession()

	signUp := sw.signUpCheck.Checked
	password := sw.passEntry.Text
	go func() {
		if username != "" && password != "" {
			if err := app.signIn(username, password, signUp); err != nil {
				app.notifyError(err)
			}
		}
		app.performSync(true)
	}()
}

// signIn exchanges the credentials for a token, creating the account first
// when signUp is set.
func (app *GymTrackApp) signIn(username, password string, signUp bool) error {
	facade, err := app.NewFacade(app.Preferences)
	if err != nil {
		return err
	}
	auth, ok := authenticator(facade)
	if !ok {
		return errors.New(config.ErrNoAuthSupport)
	}

	var creds remote.Credentials
	if signUp {
		creds, err = auth.SignUp(app.Ctx, username, password)
	} else {
		creds, err = auth.SignIn(app.Ctx, username, password)
	}
	if err != nil {
		return err
	}
	if err := app.storeCredentials(creds); err != nil {
		return err
	}
	app.resetSession()
	app.App.SendNotification(fyne.NewNotification(config.AppName,
		app.msgOr(config.TKeyNotifSignedIn, map[string]any{"Name": creds.Username}, nil, "%s", creds.Username)))
	return nil
}
