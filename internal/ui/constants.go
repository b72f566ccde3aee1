package ui

import "time"

// Icons
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
)

// Layout sizing
const (
	WindowWidth  float32 = 720
	WindowHeight float32 = 640

	QualitySelectWidth float32 = 200
	StatusLabelWidth   float32 = 120

	// Touch target minimum size (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
)

// Notification behavior
const (
	NotificationAutoHide = 5 * time.Second
)
