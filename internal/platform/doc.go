package platform

// Package platform contains OS integration: the default download directory
// (Android aware), directory creation, revealing a folder in the system file
// manager and poking the Android media scanner.
