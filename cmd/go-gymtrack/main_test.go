package main

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-gymtrack/internal/config"
)

func TestApplyBackendOverride(t *testing.T) {
	a := test.NewApp()
	prefs := a.Preferences()
	prefs.SetString(config.PrefBackendURL, "http://old.example")

	assert.NoError(t, applyBackendOverride(prefs, ""))
	assert.Equal(t, "http://old.example", prefs.String(config.PrefBackendURL), "Empty flag keeps the stored URL")

	assert.NoError(t, applyBackendOverride(prefs, "https://gym.example/api"))
	assert.Equal(t, "https://gym.example/api", prefs.String(config.PrefBackendURL))

	assert.Error(t, applyBackendOverride(prefs, "ftp://gym.example"))
	assert.Equal(t, "https://gym.example/api", prefs.String(config.PrefBackendURL), "Rejected URLs are not saved")
}
