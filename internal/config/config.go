package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppName is used for the config directory, file name and env prefix
const AppName = "vivid"

// Configuration keys
const (
	KeyDownloadDir      = "download.dir"
	KeyProgressInterval = "download.progress_interval"
	KeyFallbackFormat   = "download.fallback_format"
	KeyAnalysisTimeout  = "analysis.timeout"
	KeyNativePlaylists  = "analysis.native_playlists"
	KeyYTDLPInstall     = "ytdlp.install"
	KeyLogLevel         = "log.level"
	KeyLogJSON          = "log.json"
	KeyLogFile          = "log.file"
)

// Default values
const (
	DefaultProgressInterval = 500 * time.Millisecond
	DefaultAnalysisTimeout  = 60 * time.Second
	DefaultFallbackFormat   = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	DefaultLogLevel         = "info"
)

// Defaults maps every key to its factory value
var Defaults = map[string]any{
	KeyDownloadDir:      "",
	KeyProgressInterval: DefaultProgressInterval,
	KeyFallbackFormat:   DefaultFallbackFormat,
	KeyAnalysisTimeout:  DefaultAnalysisTimeout,
	KeyNativePlaylists:  true,
	KeyYTDLPInstall:     false,
	KeyLogLevel:         DefaultLogLevel,
	KeyLogJSON:          false,
	KeyLogFile:          "",
}

// EnvKeyReplacer turns "download.dir" into "DOWNLOAD_DIR"
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Config is the resolved process configuration
type Config struct {
	DownloadDir      string
	ProgressInterval time.Duration
	FallbackFormat   string
	AnalysisTimeout  time.Duration
	NativePlaylists  bool
	InstallYTDLP     bool
	Log              LogConfig
}

// LogConfig configures the logger
type LogConfig struct {
	Level string
	JSON  bool
	File  string
}

// Default returns the configuration made of Defaults and the environment,
// ignoring any config file. Invalid environment values are replaced by
// Defaults.
func Default() *Config {
	cfg := decode(NewViper())
	if cfg.Validate() != nil {
		return decode(withDefaults(viper.New()))
	}
	return cfg
}

// NewViper returns a viper instance with defaults and VIVID_* env bindings
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()
	return withDefaults(v)
}

func withDefaults(v *viper.Viper) *viper.Viper {
	v.SetTypeByDefaultValue(true)
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}
	return v
}

// Dir returns the configuration directory, e.g. ~/.config/vivid
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, AppName)
}

// Load reads configFile, or vivid.toml from Dir when configFile is empty, and
// returns the resolved configuration. A missing default file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("toml")
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := decode(v)
	return cfg, cfg.Validate()
}

func decode(v *viper.Viper) *Config {
	return &Config{
		DownloadDir:      strings.TrimSpace(v.GetString(KeyDownloadDir)),
		ProgressInterval: v.GetDuration(KeyProgressInterval),
		FallbackFormat:   strings.TrimSpace(v.GetString(KeyFallbackFormat)),
		AnalysisTimeout:  v.GetDuration(KeyAnalysisTimeout),
		NativePlaylists:  v.GetBool(KeyNativePlaylists),
		InstallYTDLP:     v.GetBool(KeyYTDLPInstall),
		Log: LogConfig{
			Level: v.GetString(KeyLogLevel),
			JSON:  v.GetBool(KeyLogJSON),
			File:  strings.TrimSpace(v.GetString(KeyLogFile)),
		},
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.ProgressInterval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyProgressInterval, c.ProgressInterval)
	}
	if c.AnalysisTimeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyAnalysisTimeout, c.AnalysisTimeout)
	}
	if c.FallbackFormat == "" {
		return fmt.Errorf("%s must not be empty", KeyFallbackFormat)
	}
	return nil
}
