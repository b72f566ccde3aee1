package download

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/vivid-downloader/internal/model"
)

func TestProgressTracker_IgnoresUnknownTotals(t *testing.T) {
	tracker := &progressTracker{}
	_, ok := tracker.observe("id", model.ProgressUpdate{Status: model.ProgressDownloading, DownloadedBytes: 10})
	assert.False(t, ok)
}

func TestProgressTracker_FinishedStreamDoesNotComplete(t *testing.T) {
	tracker := &progressTracker{}

	ev, ok := tracker.observe("id", model.ProgressUpdate{Status: model.ProgressDownloading, DownloadedBytes: 1, TotalBytes: 4})
	require.True(t, ok)
	assert.InDelta(t, 25, ev.Progress, 0.001)

	// video stream done
	ev, ok = tracker.observe("id", model.ProgressUpdate{Status: model.ProgressFinished, Filename: "/x/clip.f137.mp4"})
	require.True(t, ok)
	assert.Equal(t, model.EntryStatusDownloading, ev.Status)
	assert.InDelta(t, 100, ev.Progress, 0.001)

	// audio stream starts over and must not move the entry backwards
	_, ok = tracker.observe("id", model.ProgressUpdate{Status: model.ProgressDownloading, DownloadedBytes: 1, TotalBytes: 2, Filename: "/x/clip.f140.m4a"})
	assert.False(t, ok)
	_, ok = tracker.observe("id", model.ProgressUpdate{Status: model.ProgressFinished, Filename: "/x/clip.f140.m4a"})
	assert.False(t, ok)

	ev, ok = tracker.complete("id")
	require.True(t, ok)
	assert.Equal(t, model.EntryStatusCompleted, ev.Status)
	assert.Equal(t, "/x/clip.mp4", ev.OutputPath)

	_, ok = tracker.complete("id")
	assert.False(t, ok)
	_, ok = tracker.observe("id", model.ProgressUpdate{Status: model.ProgressDownloading, DownloadedBytes: 1, TotalBytes: 2})
	assert.False(t, ok)
}

func TestProgressTracker_PrefersFinalFilename(t *testing.T) {
	tracker := &progressTracker{}
	tracker.observe("id", model.ProgressUpdate{Status: model.ProgressFinished, Filename: "/x/clip.mp4"})
	tracker.observe("id", model.ProgressUpdate{Status: model.ProgressFinished, Filename: "/x/clip.f251.webm"})

	assert.Equal(t, "/x/clip.mp4", tracker.outputPath())
}

func TestProgressTracker_NoFilename(t *testing.T) {
	tracker := &progressTracker{}
	ev, ok := tracker.complete("id")
	require.True(t, ok)
	assert.Empty(t, ev.OutputPath)
}
