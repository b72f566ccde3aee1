package controller

import "github.com/ytget/vivid-downloader/internal/model"

// Listener renders controller output
type Listener interface {
	// OnQueueChanged receives a snapshot of all entries, oldest first
	OnQueueChanged(entries []*model.QueueEntry)
	OnNotification(message string)
	OnError(message string)
}

// Dispatcher runs fn on the UI thread
type Dispatcher func(fn func())

// Inline runs fn on the calling goroutine
func Inline(fn func()) { fn() }

type nopListener struct{}

func (nopListener) OnQueueChanged([]*model.QueueEntry) {}
func (nopListener) OnNotification(string)              {}
func (nopListener) OnError(string)                     {}
