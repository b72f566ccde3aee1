package download

import (
	"regexp"
	"sync"

	"github.com/ytget/vivid-downloader/internal/model"
)

// streamSuffix matches the ".f137" part yt-dlp adds to the streams it merges
// afterwards, e.g. "clip.f137.mp4".
var streamSuffix = regexp.MustCompile(`\.f[0-9]+(\.[^./\\]+)$`)

// progressTracker turns raw progress updates of one entry into events. It
// drops updates that would move progress backwards. A finished signal only
// ends one stream; the entry completes when the download call returns.
type progressTracker struct {
	mu        sync.Mutex
	last      float64
	completed bool
	path      string
	stream    string
}

func (t *progressTracker) observe(id string, update model.ProgressUpdate) (model.Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.remember(update.Filename)
	if t.completed {
		return model.Event{}, false
	}

	percent, ok := update.Percent()
	if update.Status == model.ProgressFinished {
		percent, ok = 100, true
	}
	if !ok || percent < t.last || (percent == t.last && t.last > 0) {
		return model.Event{}, false
	}
	t.last = percent
	return progressEvent(id, model.EntryStatusDownloading, percent), true
}

func (t *progressTracker) remember(filename string) {
	switch {
	case filename == "":
	case streamSuffix.MatchString(filename):
		t.stream = filename
	default:
		t.path = filename
	}
}

// complete marks the entry done after a successful return
func (t *progressTracker) complete(id string) (model.Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.completed {
		return model.Event{}, false
	}
	t.completed = true
	t.last = 100
	ev := progressEvent(id, model.EntryStatusCompleted, 100)
	ev.OutputPath = t.outputPathLocked()
	return ev, true
}

func (t *progressTracker) outputPath() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.outputPathLocked()
}

// outputPathLocked prefers a final file name. Without one, the merged name
// is derived from the last stream file by dropping its format suffix.
func (t *progressTracker) outputPathLocked() string {
	if t.path != "" {
		return t.path
	}
	if t.stream != "" {
		return streamSuffix.ReplaceAllString(t.stream, "$1")
	}
	return ""
}
