// Package testsupport holds fakes shared by package tests.
package testsupport

import (
	"context"
	"fmt"
	"sync"

	"github.com/ytget/vivid-downloader/internal/extractor"
	"github.com/ytget/vivid-downloader/internal/model"
)

// ResolveCall records one Resolve invocation
type ResolveCall struct {
	URL     string
	Shallow bool
}

// FakeExtractor is a scriptable extractor.Extractor
type FakeExtractor struct {
	Shallow     map[string]*model.Resolved
	Full        map[string]*model.Resolved
	ResolveErr  map[string]error
	DownloadErr map[string]error

	// Progress lists the updates reported per URL. URLs without a script get
	// DefaultProgress.
	Progress map[string][]model.ProgressUpdate

	// Release, when set, makes every Download wait for a value before returning
	Release chan struct{}

	mu        sync.Mutex
	resolves  []ResolveCall
	downloads []extractor.DownloadRequest
}

// DefaultProgress is a plain 0 → 50 → 100 → finished transfer
var DefaultProgress = []model.ProgressUpdate{
	{Status: model.ProgressDownloading, DownloadedBytes: 0, TotalBytes: 100},
	{Status: model.ProgressDownloading, DownloadedBytes: 50, TotalBytes: 100},
	{Status: model.ProgressDownloading, DownloadedBytes: 100, TotalBytes: 100},
	{Status: model.ProgressFinished, DownloadedBytes: 100, TotalBytes: 100, Filename: "/tmp/out.mp4"},
}

// NewFakeExtractor returns an empty fake
func NewFakeExtractor() *FakeExtractor {
	return &FakeExtractor{
		Shallow:     make(map[string]*model.Resolved),
		Full:        make(map[string]*model.Resolved),
		ResolveErr:  make(map[string]error),
		DownloadErr: make(map[string]error),
		Progress:    make(map[string][]model.ProgressUpdate),
	}
}

// Resolve returns the scripted result for url
func (f *FakeExtractor) Resolve(ctx context.Context, url string, shallow bool) (*model.Resolved, error) {
	f.mu.Lock()
	f.resolves = append(f.resolves, ResolveCall{URL: url, Shallow: shallow})
	f.mu.Unlock()

	if err, ok := f.ResolveErr[url]; ok {
		return nil, err
	}
	results := f.Full
	if shallow {
		results = f.Shallow
	}
	if r, ok := results[url]; ok {
		return r, nil
	}
	return nil, &extractor.ExtractionError{URL: url, Message: fmt.Sprintf("Unsupported URL: %s", url)}
}

// Download replays the scripted progress for req.URL
func (f *FakeExtractor) Download(ctx context.Context, req extractor.DownloadRequest, onProgress func(model.ProgressUpdate)) error {
	f.mu.Lock()
	f.downloads = append(f.downloads, req)
	f.mu.Unlock()

	if f.Release != nil {
		select {
		case <-f.Release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err, ok := f.DownloadErr[req.URL]; ok {
		return err
	}

	steps, ok := f.Progress[req.URL]
	if !ok {
		steps = DefaultProgress
	}
	if onProgress != nil {
		for _, step := range steps {
			onProgress(step)
		}
	}
	return nil
}

// ResolveCalls returns the recorded Resolve calls
func (f *FakeExtractor) ResolveCalls() []ResolveCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ResolveCall(nil), f.resolves...)
}

// Downloads returns the recorded download requests in call order
func (f *FakeExtractor) Downloads() []extractor.DownloadRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]extractor.DownloadRequest(nil), f.downloads...)
}

// DownloadedURLs returns the URLs passed to Download in call order
func (f *FakeExtractor) DownloadedURLs() []string {
	reqs := f.Downloads()
	urls := make([]string, 0, len(reqs))
	for _, r := range reqs {
		urls = append(urls, r.URL)
	}
	return urls
}

// Playlist builds a shallow playlist result from titles; each child URL is
// base + "/" + title.
func Playlist(base string, titles ...string) *model.Resolved {
	r := &model.Resolved{Kind: model.ResolvedPlaylist, Title: base}
	for _, t := range titles {
		r.Entries = append(r.Entries, model.ResolvedMedia{
			ID:       t,
			Title:    t,
			Uploader: "uploader",
			URL:      base + "/" + t,
		})
	}
	return r
}

// Single builds a single-media result
func Single(url, title string, formats ...model.StreamFormat) *model.Resolved {
	return &model.Resolved{
		Kind:  model.ResolvedSingle,
		Title: title,
		Media: model.ResolvedMedia{ID: title, Title: title, Uploader: "uploader", URL: url, Formats: formats},
	}
}
