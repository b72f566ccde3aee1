package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ytget/vivid-downloader/internal/extractor"
	"github.com/ytget/vivid-downloader/internal/model"
	"github.com/ytget/vivid-downloader/internal/worker"
)

// FallbackSelector asks for the best mp4+m4a pair, then the best mp4, then anything.
const FallbackSelector = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"

// User facing messages
const (
	MsgBatchCompleted = "Downloads completed"
)

// ErrNothingSelected is returned when a batch is started without entries
var ErrNothingSelected = errors.New("no items selected for download")

// BatchResult summarizes a finished batch
type BatchResult struct {
	Completed int
	Failed    int
}

// Service is the download worker
type Service struct {
	extractor   extractor.Extractor
	downloadDir string
	fallback    string
	events      chan<- model.Event
	onComplete  func(path string)
	log         logrus.FieldLogger

	gate worker.Gate
	wg   sync.WaitGroup
}

// Option configures a Service
type Option func(*Service)

// WithFallbackSelector overrides FallbackSelector
func WithFallbackSelector(selector string) Option {
	return func(s *Service) {
		if selector != "" {
			s.fallback = selector
		}
	}
}

// WithCompletionHook registers a function called with the output path of
// every completed entry whose path is known.
func WithCompletionHook(fn func(path string)) Option {
	return func(s *Service) {
		s.onComplete = fn
	}
}

// WithLogger sets the logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a download worker writing into downloadDir and reporting on events
func NewService(ex extractor.Extractor, downloadDir string, events chan<- model.Event, opts ...Option) *Service {
	s := &Service{
		extractor:   ex,
		downloadDir: downloadDir,
		fallback:    FallbackSelector,
		events:      events,
		log:         logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("component", "download")
	return s
}

// DownloadDirectory returns the directory files are written to
func (s *Service) DownloadDirectory() string {
	return s.downloadDir
}

// Busy reports whether a batch is in flight
func (s *Service) Busy() bool {
	return s.gate.Busy()
}

// State returns the worker state
func (s *Service) State() worker.State {
	return s.gate.State()
}

// Start downloads entries in the background. entries must already be a
// snapshot; the worker never looks at the queue again.
func (s *Service) Start(ctx context.Context, entries []*model.QueueEntry) error {
	if len(entries) == 0 {
		return ErrNothingSelected
	}
	if err := s.gate.TryStart(); err != nil {
		s.log.Debug("batch already running, request ignored")
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runBatch(ctx, entries)
	}()
	return nil
}

// Run downloads entries and blocks until the batch is done
func (s *Service) Run(ctx context.Context, entries []*model.QueueEntry) (BatchResult, error) {
	if len(entries) == 0 {
		return BatchResult{}, ErrNothingSelected
	}
	if err := s.gate.TryStart(); err != nil {
		return BatchResult{}, err
	}
	return s.runBatch(ctx, entries), nil
}

// Wait blocks until a background batch has finished
func (s *Service) Wait() {
	s.wg.Wait()
}

// runBatch owns the gate: it releases it before announcing the end of the batch.
func (s *Service) runBatch(ctx context.Context, entries []*model.QueueEntry) BatchResult {
	var result BatchResult
	s.log.WithField("entries", len(entries)).Info("batch started")

	for _, entry := range entries {
		if s.downloadEntry(ctx, entry) {
			result.Completed++
		} else {
			result.Failed++
		}
	}

	s.gate.Finish()
	s.log.WithFields(logrus.Fields{"completed": result.Completed, "failed": result.Failed}).Info("batch finished")
	s.emit(ctx, model.Event{Kind: model.EventBatchFinished, Message: MsgBatchCompleted})
	return result
}

// downloadEntry downloads one entry and reports whether it completed
func (s *Service) downloadEntry(ctx context.Context, entry *model.QueueEntry) bool {
	log := s.log.WithFields(logrus.Fields{"entry": entry.ID, "title": entry.Title})
	s.emit(ctx, progressEvent(entry.ID, model.EntryStatusStarting, 0))

	tracker := &progressTracker{}
	req := extractor.DownloadRequest{
		URL:            entry.Source.URL,
		Selector:       s.SelectorFor(entry),
		OutputTemplate: s.OutputTemplate(entry),
	}

	err := s.extractor.Download(ctx, req, func(update model.ProgressUpdate) {
		if ev, ok := tracker.observe(entry.ID, update); ok {
			s.emit(ctx, ev)
		}
	})
	if err != nil {
		log.WithError(err).Error("download failed")
		ev := progressEvent(entry.ID, model.EntryStatusError, 0)
		ev.Message = err.Error()
		ev.Err = err
		s.emit(ctx, ev)
		return false
	}

	if ev, ok := tracker.complete(entry.ID); ok {
		s.emit(ctx, ev)
	}
	if path := tracker.outputPath(); path != "" && s.onComplete != nil {
		s.onComplete(path)
	}
	log.Info("download completed")
	return true
}

// SelectorFor returns the format selector for entry: the chosen format's id,
// or the fallback when the choice is Best or no longer matches a format.
func (s *Service) SelectorFor(entry *model.QueueEntry) string {
	if entry.ChosenFormat != model.BestFormat {
		if f, ok := entry.FormatByLabel(entry.ChosenFormat); ok && f.ID != "" {
			return f.ID
		}
	}
	return s.fallback
}

// OutputTemplate places the file under the download directory, named after
// the title plus a short entry id so same-titled items do not collide.
func (s *Service) OutputTemplate(entry *model.QueueEntry) string {
	return filepath.Join(s.downloadDir, fmt.Sprintf("%%(title)s - [%s].%%(ext)s", entry.ShortID()))
}

func (s *Service) emit(ctx context.Context, ev model.Event) {
	if s.events == nil {
		return
	}
	select {
	case s.events <- ev:
	case <-ctx.Done():
		s.log.WithField("event", ev.Kind).Warn("dropping event after shutdown")
	}
}

func progressEvent(id string, status model.EntryStatus, progress float64) model.Event {
	return model.Event{
		Kind:     model.EventEntryProgress,
		EntryID:  id,
		Status:   status,
		Progress: progress,
	}
}
