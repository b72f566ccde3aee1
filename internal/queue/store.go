package queue

import (
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"

	"github.com/ytget/vivid-downloader/internal/model"
	"github.com/ytget/vivid-downloader/internal/worker"
)

var (
	// ErrNoFormats is returned when picking a quality for an entry without formats
	ErrNoFormats = errors.New("entry has no selectable formats")

	// ErrUnknownFormat is returned when the label matches none of the entry formats
	ErrUnknownFormat = errors.New("unknown format")

	// ErrNotFound is returned when an entry ID is not in the queue
	ErrNotFound = errors.New("entry not found")

	// ErrDuplicateID is returned when an added entry reuses an existing ID
	ErrDuplicateID = errors.New("duplicate entry id")
)

// BusyReporter tells the store whether a download batch is running.
type BusyReporter interface {
	Busy() bool
}

// Store holds queue entries in insertion order
type Store struct {
	mu      sync.RWMutex
	entries []*model.QueueEntry
	index   map[string]*model.QueueEntry
	busy    BusyReporter
}

// NewStore creates an empty store. busy may be nil, in which case Clear never
// reports ErrBusy.
func NewStore(busy BusyReporter) *Store {
	return &Store{
		index: make(map[string]*model.QueueEntry),
		busy:  busy,
	}
}

// SetBusyReporter replaces the download state source consulted by Clear
func (s *Store) SetBusyReporter(busy BusyReporter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = busy
}

// AddEntries appends entries in input order. Existing entries are never removed.
// Entries whose ID is already present are skipped and reported.
func (s *Store) AddEntries(entries ...*model.QueueEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		if _, exists := s.index[entry.ID]; exists {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateID, entry.ID))
			continue
		}
		e := entry.Clone()
		s.entries = append(s.entries, e)
		s.index[e.ID] = e
	}
	return errors.Join(errs...)
}

// SetSelected toggles the selection flag. It returns false if id is unknown.
func (s *Store) SetSelected(id string, selected bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.index[id]
	if !ok {
		return false
	}
	entry.Selected = selected
	return true
}

// SelectAll marks every entry as selected
func (s *Store) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		entry.Selected = true
	}
}

// SetChosenFormat picks the quality label used for the next download of id.
func (s *Store) SetChosenFormat(id, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !entry.HasFormats() {
		return ErrNoFormats
	}
	if label != model.BestFormat {
		if _, ok := entry.FormatByLabel(label); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownFormat, label)
		}
	}
	entry.ChosenFormat = label
	return nil
}

// Clear empties the store. It fails with worker.ErrBusy while a download batch runs.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy != nil && s.busy.Busy() {
		return worker.ErrBusy
	}
	s.entries = nil
	s.index = make(map[string]*model.QueueEntry)
	return nil
}

// UpdateStatus mutates one entry. Unknown ids are dropped silently since the
// entry may have been cleared while its download event was in flight.
//
// Progress never goes backwards while an entry keeps downloading, and a
// completed entry is pinned to 100.
func (s *Store) UpdateStatus(id string, status model.EntryStatus, progress float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.index[id]
	if !ok {
		return false
	}

	switch status {
	case model.EntryStatusCompleted:
		progress = 100
	case model.EntryStatusDownloading:
		if entry.Status == model.EntryStatusDownloading && progress < entry.Progress {
			progress = entry.Progress
		}
	case model.EntryStatusError:
		progress = entry.Progress
	}

	entry.Status = status
	entry.Progress = clampPercent(progress)
	if status != model.EntryStatusError {
		entry.LastError = ""
	}
	return true
}

// SetError marks an entry failed and records the message
func (s *Store) SetError(id, message string) bool {
	if !s.UpdateStatus(id, model.EntryStatusError, 0) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.index[id]; ok {
		entry.LastError = message
	}
	return true
}

// SetOutputPath records the file the collaborator wrote for id
func (s *Store) SetOutputPath(id, path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.index[id]
	if !ok {
		return false
	}
	entry.OutputPath = path
	return true
}

// Get returns a copy of the entry
func (s *Store) Get(id string) (*model.QueueEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return entry.Clone(), true
}

// Entries returns copies of all entries, oldest first
func (s *Store) Entries() []*model.QueueEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Map(s.entries, func(e *model.QueueEntry, _ int) *model.QueueEntry {
		return e.Clone()
	})
}

// Selected returns copies of the selected entries, oldest first. The result
// is a snapshot: later selection changes do not affect it.
func (s *Store) Selected() []*model.QueueEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.FilterMap(s.entries, func(e *model.QueueEntry, _ int) (*model.QueueEntry, bool) {
		if !e.Selected {
			return nil, false
		}
		return e.Clone(), true
	})
}

// Len returns the number of entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
