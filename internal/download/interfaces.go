package download

import (
	"context"

	"github.com/ytget/vivid-downloader/internal/model"
)

// Downloader defines the interface for the download worker.
type Downloader interface {
	// Start downloads entries in the background, in the given order
	Start(ctx context.Context, entries []*model.QueueEntry) error

	// Run downloads entries and blocks until the batch is done
	Run(ctx context.Context, entries []*model.QueueEntry) (BatchResult, error)

	// Busy reports whether a batch is in flight
	Busy() bool

	// Wait blocks until a background batch has finished
	Wait()

	// DownloadDirectory returns the directory files are written to
	DownloadDirectory() string
}
