package model

import "fmt"

// EntryStatus represents the state of a queue entry
type EntryStatus string

const (
	// EntryStatusQueued means the entry was added and never started
	EntryStatusQueued EntryStatus = "Queued"

	// EntryStatusStarting means the download worker picked the entry up
	EntryStatusStarting EntryStatus = "Starting"

	// EntryStatusDownloading means bytes are flowing
	EntryStatusDownloading EntryStatus = "Downloading"

	// EntryStatusCompleted means the collaborator reported the file as finished
	EntryStatusCompleted EntryStatus = "Completed"

	// EntryStatusError means the download for this entry failed
	EntryStatusError EntryStatus = "Error"
)

// String returns the string representation of EntryStatus
func (s EntryStatus) String() string {
	return string(s)
}

// IsActive returns true if the entry is being processed by the download worker
func (s EntryStatus) IsActive() bool {
	return s == EntryStatusStarting || s == EntryStatusDownloading
}

// IsFinished returns true if the entry reached a terminal state
func (s EntryStatus) IsFinished() bool {
	return s == EntryStatusCompleted || s == EntryStatusError
}

// Text returns the human readable status shown next to an entry.
func (s EntryStatus) Text(progress float64) string {
	switch s {
	case EntryStatusStarting:
		return "Starting..."
	case EntryStatusDownloading:
		return fmt.Sprintf("Downloading %d%%", int(progress))
	default:
		return string(s)
	}
}
