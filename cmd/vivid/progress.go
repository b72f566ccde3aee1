package main

import (
	"fmt"
	"sync"

	"github.com/fatih/color"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/ytget/vivid-downloader/internal/controller"
	"github.com/ytget/vivid-downloader/internal/download"
	"github.com/ytget/vivid-downloader/internal/model"
)

const barNameWidth = 40

// progressListener renders queue updates as one progress bar per entry
type progressListener struct {
	progress *mpb.Progress
	done     chan struct{}
	doneOnce sync.Once

	mu       sync.Mutex
	bars     map[string]*mpb.Bar
	finished map[string]bool
	errors   []string
}

var _ controller.Listener = (*progressListener)(nil)

func newProgressListener(progress *mpb.Progress, entries []*model.QueueEntry) *progressListener {
	l := &progressListener{
		progress: progress,
		done:     make(chan struct{}),
		bars:     make(map[string]*mpb.Bar, len(entries)),
		finished: make(map[string]bool, len(entries)),
	}
	for _, e := range entries {
		l.bars[e.ID] = progress.AddBar(100,
			mpb.PrependDecorators(
				decor.Name(truncate(e.Title, barNameWidth), decor.WC{W: barNameWidth + 1, C: decor.DindentRight}),
			),
			mpb.AppendDecorators(
				decor.OnAbort(decor.OnComplete(decor.Percentage(decor.WC{W: 5}), "done"), "failed"),
			),
		)
	}
	return l
}

func (l *progressListener) OnQueueChanged(entries []*model.QueueEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range entries {
		bar, ok := l.bars[e.ID]
		if !ok || l.finished[e.ID] {
			continue
		}
		switch e.Status {
		case model.EntryStatusDownloading:
			bar.SetCurrent(int64(e.Progress))
		case model.EntryStatusCompleted:
			bar.SetCurrent(100)
			l.finished[e.ID] = true
		case model.EntryStatusError:
			bar.Abort(false)
			l.finished[e.ID] = true
			l.errors = append(l.errors, fmt.Sprintf("%s: %s", e.Title, e.LastError))
		}
	}
}

func (l *progressListener) OnNotification(message string) {
	if message == download.MsgBatchCompleted {
		l.doneOnce.Do(func() { close(l.done) })
	}
}

func (l *progressListener) OnError(message string) {
	fmt.Fprintln(l.progress, color.RedString(message))
}

// abortAll stops bars that never finished
func (l *progressListener) abortAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, bar := range l.bars {
		if !l.finished[id] {
			bar.Abort(false)
			l.finished[id] = true
		}
	}
}

func (l *progressListener) failed() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.errors...)
}
