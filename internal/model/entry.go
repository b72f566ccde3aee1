package model

import (
	"slices"

	"github.com/google/uuid"
)

// BestFormat is the sentinel label meaning "let the fallback selector decide".
const BestFormat = "Best"

// Defaults applied when the extractor leaves descriptive fields empty
const (
	DefaultTitle    = "Untitled"
	DefaultUploader = "Unknown"
)

// shortIDLength is how many characters of the entry ID go into file names
const shortIDLength = 8

// Format describes one selectable encoded stream of a media item
type Format struct {
	Label    string // e.g. "720p (mp4) - 12.3 MiB"
	ID       string // collaborator format identifier
	Height   int    // vertical resolution, 0 if unknown
	Ext      string
	FileSize int64 // bytes, 0 if unknown
}

// SourceRecord keeps what the collaborator needs to download the entry later.
type SourceRecord struct {
	URL       string
	MediaID   string
	Extractor string
}

// QueueEntry represents a single media item in the download queue
type QueueEntry struct {
	ID           string
	Title        string
	Uploader     string
	Selected     bool
	Status       EntryStatus
	Progress     float64 // 0 to 100
	Formats      []Format
	ChosenFormat string
	Source       SourceRecord
	LastError    string // last download error, if any
	OutputPath   string // file reported by the collaborator
}

// NewQueueEntry creates a selected, queued entry with a fresh ID.
func NewQueueEntry(title, uploader string, formats []Format, source SourceRecord) *QueueEntry {
	if title == "" {
		title = DefaultTitle
	}
	if uploader == "" {
		uploader = DefaultUploader
	}
	return &QueueEntry{
		ID:           uuid.NewString(),
		Title:        title,
		Uploader:     uploader,
		Selected:     true,
		Status:       EntryStatusQueued,
		Formats:      formats,
		ChosenFormat: BestFormat,
		Source:       source,
	}
}

// HasFormats reports whether a quality can be picked for the entry
func (e *QueueEntry) HasFormats() bool {
	return len(e.Formats) > 0
}

// FormatByLabel returns the format with the given label
func (e *QueueEntry) FormatByLabel(label string) (Format, bool) {
	for _, f := range e.Formats {
		if f.Label == label {
			return f, true
		}
	}
	return Format{}, false
}

// ShortID returns a short prefix of the entry ID, used to keep same-titled files apart.
func (e *QueueEntry) ShortID() string {
	if len(e.ID) <= shortIDLength {
		return e.ID
	}
	return e.ID[:shortIDLength]
}

// StatusText returns the status line shown for the entry
func (e *QueueEntry) StatusText() string {
	return e.Status.Text(e.Progress)
}

// Clone returns a deep copy safe to hand to another goroutine.
func (e *QueueEntry) Clone() *QueueEntry {
	c := *e
	c.Formats = slices.Clone(e.Formats)
	return &c
}
