// Package ui contains the Fyne user interface. It renders the download queue
// and forwards user actions to the controller; all strings go through
// Localization.
package ui
