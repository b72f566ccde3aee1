package extractor

import (
	"context"

	"github.com/ytget/vivid-downloader/internal/model"
)

// Extractor resolves URLs into media records and downloads them.
type Extractor interface {
	// Resolve inspects url. In shallow mode playlists are not expanded into
	// full per-item metadata and formats are usually missing.
	Resolve(ctx context.Context, url string, shallow bool) (*model.Resolved, error)

	// Download fetches req.URL, blocking until the transfer ends. onProgress
	// may be called zero or more times from the calling goroutine or another one.
	Download(ctx context.Context, req DownloadRequest, onProgress func(model.ProgressUpdate)) error
}

// DownloadRequest describes a single download call
type DownloadRequest struct {
	URL            string
	Selector       string // format selector expression
	OutputTemplate string // yt-dlp output template, absolute
}
