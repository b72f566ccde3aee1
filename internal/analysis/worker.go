package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ytget/vivid-downloader/internal/extractor"
	"github.com/ytget/vivid-downloader/internal/model"
	"github.com/ytget/vivid-downloader/internal/worker"
)

// ErrEmptyURL is returned for blank analyze requests
var ErrEmptyURL = errors.New("empty url")

// User facing messages
const (
	MsgAnalyzing       = "Analyzing URL..."
	MsgNoVideos        = "No videos found"
	MsgAddedFormat     = "Added %d video(s) to queue"
	MsgFailedToAnalyze = "Failed to analyze URL: %s"
)

// Worker resolves URLs into queue entries, one analysis at a time
type Worker struct {
	extractor extractor.Extractor
	events    chan<- model.Event
	log       logrus.FieldLogger

	gate worker.Gate
	wg   sync.WaitGroup
}

// NewWorker creates an analysis worker that reports on events
func NewWorker(ex extractor.Extractor, events chan<- model.Event, log logrus.FieldLogger) *Worker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Worker{
		extractor: ex,
		events:    events,
		log:       log.WithField("component", "analysis"),
	}
}

// Busy reports whether an analysis is running
func (w *Worker) Busy() bool {
	return w.gate.Busy()
}

// State returns the worker state
func (w *Worker) State() worker.State {
	return w.gate.State()
}

// Start analyzes url in the background. A request made while another analysis
// runs is dropped with worker.ErrBusy.
func (w *Worker) Start(ctx context.Context, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return ErrEmptyURL
	}
	if err := w.gate.TryStart(); err != nil {
		w.log.WithField("url", url).Debug("analysis already running, request ignored")
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.gate.Finish()
		w.run(ctx, url)
	}()
	return nil
}

// Wait blocks until the background analysis, if any, has finished
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context, url string) {
	entries, err := w.Resolve(ctx, url)
	if err != nil {
		w.log.WithError(err).WithField("url", url).Error("analysis failed")
		w.emit(ctx, model.Event{
			Kind:    model.EventAnalysisFailed,
			Message: fmt.Sprintf(MsgFailedToAnalyze, err.Error()),
			Err:     err,
		})
		return
	}

	if len(entries) == 0 {
		w.emit(ctx, model.Event{Kind: model.EventNotification, Message: MsgNoVideos})
		return
	}

	w.log.WithFields(logrus.Fields{"url": url, "entries": len(entries)}).Info("analysis completed")
	w.emit(ctx, model.Event{
		Kind:    model.EventEntriesResolved,
		Entries: entries,
		Message: fmt.Sprintf(MsgAddedFormat, len(entries)),
	})
}

// Resolve turns url into queue entries without touching the worker state.
// Playlists produce one format-less entry per child; a single item is
// resolved again in full mode to obtain its formats.
func (w *Worker) Resolve(ctx context.Context, url string) ([]*model.QueueEntry, error) {
	shallow, err := w.extractor.Resolve(ctx, url, true)
	if err != nil {
		return nil, err
	}

	if shallow.IsPlaylist() {
		entries := make([]*model.QueueEntry, 0, len(shallow.Entries))
		for _, media := range shallow.Entries {
			entries = append(entries, model.NewQueueEntry(media.Title, media.Uploader, nil, media.Source()))
		}
		return entries, nil
	}

	full, err := w.extractor.Resolve(ctx, url, false)
	if err != nil {
		return nil, err
	}
	media := full.Media
	if full.IsPlaylist() {
		// the full pass disagreed with the shallow one; trust the shallow record
		media = shallow.Media
	}

	entry := model.NewQueueEntry(media.Title, media.Uploader, BuildFormats(media.Formats), media.Source())
	return []*model.QueueEntry{entry}, nil
}

func (w *Worker) emit(ctx context.Context, ev model.Event) {
	if w.events == nil {
		return
	}
	select {
	case w.events <- ev:
	case <-ctx.Done():
		w.log.WithField("event", ev.Kind).Warn("dropping event after shutdown")
	}
}
