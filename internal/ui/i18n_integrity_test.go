package ui_test

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-gymtrack/internal/config"
)

// translationKeys lists every key referenced from Go code.
func translationKeys() []string {
	keys := []string{
		config.TKeyWinTitle,
		config.TKeyWinMain,
		config.TKeyMenuOpen,
		config.TKeyMenuRefresh,
		config.TKeyMenuSettings,
		config.TKeyTrayStatus,
		config.TKeyTrayStatusZero,
		config.TKeyNotifStart,
		config.TKeyNotifSuccess,
		config.TKeyNotifError,
		config.TKeyNotifConfirmed,
		config.TKeyNotifRemoved,
		config.TKeyNotifFuture,
		config.TKeyNotifInvalid,
		config.TKeyNotifNetwork,
		config.TKeyNotifAuth,
		config.TKeyNotifSignedIn,
		config.TKeyNotifSquadNew,
		config.TKeyNotifJoined,
		config.TKeyModeRemote,
		config.TKeyModeLocal,
		config.TKeyLblLanguage,
		config.TKeyHelpLanguage,
		config.TKeyLblMinutes,
		config.TKeyLblRefresh,
		config.TKeyHelpInterval,
		config.TKeyLblPort,
		config.TKeyHelpPort,
		config.TKeyLblGeneral,
		config.TKeyLblWeekStart,
		config.TKeyLblChartWeeks,
		config.TKeyUnitWeeks,
		config.TKeyUnitMonths,
		config.TKeyBtnSave,
		config.TKeyBtnCancel,
		config.TKeyLblFooter,
		config.TKeyBtnBrowse,
		config.TKeyLblURL,
		config.TKeyHelpURL,
		config.TKeyLblUser,
		config.TKeyLblPass,
		config.TKeyLblAccount,
		config.TKeyLblRoster,
		config.TKeyChkSignUp,
		config.TKeyTabPersonal,
		config.TKeyBtnConfirm,
		config.TKeyBtnRemove,
		config.TKeyThisWeek,
		config.TKeyChartTitle,
		config.TKeyFormatMonth,
		config.TKeyNoDateSelected,
		config.TKeyTabSquads,
		config.TKeyLblSquad,
		config.TKeyNoSquads,
		config.TKeyEmptyRoster,
		config.TKeyColMember,
		config.TKeyColTotal,
		config.TKeyLblChampion,
		config.TKeyNoChampion,
		config.TKeyWinAttendees,
		config.TKeyNoAttendees,
		config.TKeyBtnNewSquad,
		config.TKeyBtnJoinSquad,
		config.TKeyLblSquadName,
		config.TKeyLblSquadID,
		config.TKeyFormatWeek,
		config.TKeyEvtSummary,
		config.TKeyFormatDate,
		config.TKeyErrPortReq,
		config.TKeyErrPortNum,
		config.TKeyErrPortRange,
	}
	for m := 1; m <= 12; m++ {
		keys = append(keys, fmt.Sprintf("%s%d", config.TKeyMonthPrefix, m))
	}
	for wd := 0; wd < config.DaysPerWeek; wd++ {
		keys = append(keys, fmt.Sprintf("%s%d", config.TKeyWeekdayPrefix, wd))
	}
	return keys
}

func loadLocale(t *testing.T, lang string) map[string]any {
	t.Helper()
	content, err := os.ReadFile("locales/active." + lang + ".json")
	require.NoError(t, err, "Must load active.%s.json", lang)

	var m map[string]any
	require.NoError(t, json.Unmarshal(content, &m), "JSON must be valid")
	return m
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in each locale file, and that the locales agree with each other.
func TestI18nIntegrity(t *testing.T) {
	defined := make(map[string]bool)
	for _, k := range translationKeys() {
		defined[k] = true
	}

	en := loadLocale(t, "en")
	fr := loadLocale(t, "fr")

	for key := range defined {
		assert.Containsf(t, en, key, "Key '%s' is missing in active.en.json", key)
		assert.Containsf(t, fr, key, "Key '%s' is missing in active.fr.json", key)
	}

	for key := range en {
		if strings.HasPrefix(key, "_") {
			continue
		}
		assert.Containsf(t, fr, key, "Key '%s' has no French translation", key)
		if !defined[key] {
			t.Logf("Warning: Key '%s' exists in JSON but is not checked in the test suite (might be unused)", key)
		}
	}
}

// TestI18nPluralForms checks that counted messages carry both forms.
func TestI18nPluralForms(t *testing.T) {
	for _, lang := range []string{"en", "fr"} {
		m := loadLocale(t, lang)
		for _, key := range []string{config.TKeyTrayStatus, config.TKeyThisWeek} {
			forms, ok := m[key].(map[string]any)
			require.Truef(t, ok, "%s/%s must be a plural object", lang, key)
			assert.Contains(t, forms, "one")
			assert.Contains(t, forms, "other")
		}
	}
}
