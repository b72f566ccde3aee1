package model

// EventKind enumerates the events workers send to the controller
type EventKind int

const (
	EventEntriesResolved EventKind = iota
	EventAnalysisFailed
	EventEntryProgress
	EventBatchStarted
	EventBatchFinished
	EventNotification
)

// String returns a short name for logs
func (k EventKind) String() string {
	switch k {
	case EventEntriesResolved:
		return "entries_resolved"
	case EventAnalysisFailed:
		return "analysis_failed"
	case EventEntryProgress:
		return "entry_progress"
	case EventBatchStarted:
		return "batch_started"
	case EventBatchFinished:
		return "batch_finished"
	case EventNotification:
		return "notification"
	default:
		return "unknown"
	}
}

// Event is a state change produced on a worker goroutine. It is applied to the
// queue on the UI thread.
type Event struct {
	Kind       EventKind
	Entries    []*QueueEntry // EventEntriesResolved
	EntryID    string        // EventEntryProgress
	Status     EntryStatus
	Progress   float64
	OutputPath string
	Message    string // notification text or error detail
	Err        error
}
