package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/tartampluch/go-gymtrack/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n initializes the translation bundle and detects available languages.
func (app *GymTrackApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detectedLangs []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	app.SupportedLanguages = detectedLangs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator based on the user's language preference.
func (app *GymTrackApp) UpdateLocalizer() {
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	if lang == "" {
		lang = config.DefaultLanguage
	}
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang)
}

// GetMsg translates key, returning the key itself when it is missing.
func (app *GymTrackApp) GetMsg(key string) string {
	return app.GetMsgData(key, nil, nil)
}

// GetMsgData translates key with template data. A non-nil count selects the
// plural form.
func (app *GymTrackApp) GetMsgData(key string, data map[string]any, count any) string {
	if app.Localizer == nil {
		return key
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
		PluralCount:  count,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// msgOr translates key and falls back to a formatted default when missing.
func (app *GymTrackApp) msgOr(key string, data map[string]any, count any, fallback string, args ...any) string {
	msg := app.GetMsgData(key, data, count)
	if msg == key || msg == "" {
		return fmt.Sprintf(fallback, args...)
	}
	return msg
}

// weekdayName is the short localized name of wd.
func (app *GymTrackApp) weekdayName(wd time.Weekday) string {
	key := config.TKeyWeekdayPrefix + strconv.Itoa(int(wd))
	if msg := app.GetMsg(key); msg != key {
		return msg
	}
	return wd.String()[:3]
}

// monthTitle renders "October 2025" in the current language.
func (app *GymTrackApp) monthTitle(d engine.Date) string {
	key := config.TKeyMonthPrefix + strconv.Itoa(int(d.Month()))
	month := app.GetMsg(key)
	if month == key {
		month = d.Month().String()
	}
	return app.msgOr(config.TKeyFormatMonth,
		map[string]any{"Month": month, "Year": d.Year()}, nil,
		"%s %d", month, d.Year())
}

// dateLabel formats d with the localized short date layout.
func (app *GymTrackApp) dateLabel(d engine.Date) string {
	layout := app.GetMsg(config.TKeyFormatDate)
	if layout == config.TKeyFormatDate {
		layout = config.DateLayout
	}
	return d.Format(layout)
}

// thisWeekLabel is the pluralized "N visits this week" text.
func (app *GymTrackApp) thisWeekLabel(n int) string {
	return app.msgOr(config.TKeyThisWeek, map[string]any{"Count": n}, n, config.FallbackThisWeek, n)
}
