package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/vivid-downloader/internal/platform"
)

// Settings keys for Fyne preferences
const (
	PrefDownloadDir = "download_directory"
	PrefLanguage    = "app_language"
)

// DefaultLanguage follows the system locale
const DefaultLanguage = "system"

// Settings manages user preferences of the GUI
type Settings struct {
	app      fyne.App
	defaults *Config
}

// NewSettings creates a new settings manager. defaults may be nil.
func NewSettings(app fyne.App, defaults *Config) *Settings {
	if defaults == nil {
		defaults = &Config{}
	}
	return &Settings{app: app, defaults: defaults}
}

// GetDownloadDirectory returns the preferred download directory: the user's
// choice, then the configured one, then the platform default.
func (s *Settings) GetDownloadDirectory() string {
	if dir := s.app.Preferences().String(PrefDownloadDir); dir != "" {
		return dir
	}
	if s.defaults.DownloadDir != "" {
		return s.defaults.DownloadDir
	}
	dir, err := platform.DefaultDownloadDir()
	if err != nil {
		return ""
	}
	return dir
}

// SetDownloadDirectory stores the download directory; it applies on next start
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(PrefDownloadDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	return s.app.Preferences().StringWithFallback(PrefLanguage, DefaultLanguage)
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(PrefLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}
