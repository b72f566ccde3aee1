// Package config loads application configuration. Process-wide options come
// from viper (defaults, VIVID_* environment, optional TOML file, CLI flags);
// the GUI keeps user choices in fyne preferences on top of them.
package config
