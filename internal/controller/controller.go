package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ytget/vivid-downloader/internal/analysis"
	"github.com/ytget/vivid-downloader/internal/download"
	"github.com/ytget/vivid-downloader/internal/model"
	"github.com/ytget/vivid-downloader/internal/queue"
	"github.com/ytget/vivid-downloader/internal/worker"
)

// User facing messages
const (
	MsgNothingSelected  = "No items selected for download"
	MsgStartingDownload = "Starting download of %d item(s)"
	MsgCannotClear      = "Cannot clear queue while downloading"
	MsgQueueCleared     = "Queue cleared"
	MsgAllSelected      = "All items selected"
)

// Analyzer is the part of the analysis worker the controller drives
type Analyzer interface {
	Start(ctx context.Context, url string) error
	Busy() bool
}

// Controller implements the operations the user interface triggers
type Controller struct {
	ctx        context.Context
	store      *queue.Store
	analyzer   Analyzer
	downloader download.Downloader
	events     <-chan model.Event
	dispatch   Dispatcher
	log        logrus.FieldLogger

	mu       sync.RWMutex
	listener Listener

	pumpOnce sync.Once
	done     chan struct{}
}

// Option configures a Controller
type Option func(*Controller)

// WithDispatcher sets how events reach the UI thread, Inline by default
func WithDispatcher(d Dispatcher) Option {
	return func(c *Controller) {
		if d != nil {
			c.dispatch = d
		}
	}
}

// WithListener sets the renderer
func WithListener(l Listener) Option {
	return func(c *Controller) {
		c.SetListener(l)
	}
}

// WithLogger sets the logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a controller. events must be the channel both workers report
// on. The store learns about running downloads from downloader. ctx bounds
// the lifetime of the workers started by the controller.
func New(ctx context.Context, store *queue.Store, analyzer Analyzer, downloader download.Downloader, events <-chan model.Event, opts ...Option) *Controller {
	c := &Controller{
		ctx:        ctx,
		store:      store,
		analyzer:   analyzer,
		downloader: downloader,
		events:     events,
		dispatch:   Inline,
		log:        logrus.StandardLogger(),
		listener:   nopListener{},
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", "controller")
	store.SetBusyReporter(downloader)
	return c
}

// SetListener replaces the renderer
func (c *Controller) SetListener(l Listener) {
	if l == nil {
		l = nopListener{}
	}
	c.mu.Lock()
	c.listener = l
	c.mu.Unlock()
}

// Store returns the queue the controller manages
func (c *Controller) Store() *queue.Store {
	return c.store
}

// Start launches the event pump. It runs until the context is cancelled or
// the events channel is closed; Done is closed afterwards.
func (c *Controller) Start() {
	c.pumpOnce.Do(func() {
		go c.pump()
	})
}

// Done is closed when the event pump has stopped
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

func (c *Controller) pump() {
	defer close(c.done)
	for {
		select {
		case <-c.ctx.Done():
			return
		case ev, ok := <-c.events:
			if !ok {
				return
			}
			c.dispatch(func() { c.apply(ev) })
		}
	}
}

// apply runs on the UI thread
func (c *Controller) apply(ev model.Event) {
	log := c.log.WithField("event", ev.Kind)

	switch ev.Kind {
	case model.EventEntriesResolved:
		if err := c.store.AddEntries(ev.Entries...); err != nil {
			log.WithError(err).Warn("some entries were not added")
		}
		c.notify(ev.Message)
		c.queueChanged()

	case model.EventAnalysisFailed:
		c.listenerRef().OnError(ev.Message)

	case model.EventEntryProgress:
		if !c.store.UpdateStatus(ev.EntryID, ev.Status, ev.Progress) {
			log.WithField("entry", ev.EntryID).Debug("progress for unknown entry")
			return
		}
		if ev.Status == model.EntryStatusError {
			c.store.SetError(ev.EntryID, ev.Message)
		}
		if ev.OutputPath != "" {
			c.store.SetOutputPath(ev.EntryID, ev.OutputPath)
		}
		c.queueChanged()

	case model.EventBatchStarted, model.EventBatchFinished:
		c.notify(ev.Message)
		c.queueChanged()

	case model.EventNotification:
		c.notify(ev.Message)

	default:
		log.Warn("unhandled event")
	}
}

// OnAnalyzeRequested starts analyzing url. Blank input and requests made
// while an analysis runs are ignored.
func (c *Controller) OnAnalyzeRequested(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return analysis.ErrEmptyURL
	}
	if err := c.analyzer.Start(c.ctx, url); err != nil {
		if errors.Is(err, worker.ErrBusy) {
			c.log.WithField("url", url).Debug("analysis in progress, request ignored")
		}
		return err
	}
	c.notify(analysis.MsgAnalyzing)
	return nil
}

// OnDownloadRequested downloads a snapshot of the selected entries, oldest
// first. A request made while a batch runs is ignored.
func (c *Controller) OnDownloadRequested() error {
	if c.downloader.Busy() {
		c.log.Debug("download in progress, request ignored")
		return worker.ErrBusy
	}

	selected := c.store.Selected()
	if len(selected) == 0 {
		c.notify(MsgNothingSelected)
		return download.ErrNothingSelected
	}

	if err := c.downloader.Start(c.ctx, selected); err != nil {
		if errors.Is(err, worker.ErrBusy) {
			c.log.Debug("download in progress, request ignored")
		}
		return err
	}
	c.notify(fmt.Sprintf(MsgStartingDownload, len(selected)))
	return nil
}

// OnItemSelectionChanged marks an entry for download or unmarks it
func (c *Controller) OnItemSelectionChanged(id string, selected bool) {
	if c.store.SetSelected(id, selected) {
		c.queueChanged()
	}
}

// OnSelectAll selects every entry
func (c *Controller) OnSelectAll() {
	c.store.SelectAll()
	c.notify(MsgAllSelected)
	c.queueChanged()
}

// OnClear empties the queue unless a download is running
func (c *Controller) OnClear() error {
	if err := c.store.Clear(); err != nil {
		if errors.Is(err, worker.ErrBusy) {
			c.notify(MsgCannotClear)
		}
		return err
	}
	c.notify(MsgQueueCleared)
	c.queueChanged()
	return nil
}

// OnFormatChosen sets the format an entry will be downloaded in
func (c *Controller) OnFormatChosen(id, label string) error {
	if err := c.store.SetChosenFormat(id, label); err != nil {
		c.log.WithError(err).WithField("entry", id).Warn("format not applied")
		return err
	}
	c.queueChanged()
	return nil
}

func (c *Controller) listenerRef() Listener {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.listener
}

func (c *Controller) notify(msg string) {
	if msg != "" {
		c.listenerRef().OnNotification(msg)
	}
}

func (c *Controller) queueChanged() {
	c.listenerRef().OnQueueChanged(c.store.Entries())
}
