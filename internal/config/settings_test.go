package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app, nil)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()

	// Falls back to the platform default
	settings := NewSettings(app, nil)
	assert.NotEmpty(t, settings.GetDownloadDirectory())

	// Config value beats the platform default
	settings = NewSettings(app, &Config{DownloadDir: "/configured"})
	assert.Equal(t, "/configured", settings.GetDownloadDirectory())

	// User choice beats both
	settings.SetDownloadDirectory("/custom/downloads")
	assert.Equal(t, "/custom/downloads", settings.GetDownloadDirectory())
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app, nil)

	assert.Equal(t, DefaultLanguage, settings.GetLanguage())

	settings.SetLanguage("ru")
	assert.Equal(t, "ru", settings.GetLanguage())
}

func TestGetLanguageOptions(t *testing.T) {
	settings := NewSettings(test.NewApp(), nil)
	options := settings.GetLanguageOptions()

	for _, lang := range []string{"system", "en", "ru"} {
		_, exists := options[lang]
		assert.True(t, exists, "language option %q", lang)
	}
	assert.Len(t, options, 3)
}
