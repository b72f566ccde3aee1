package ui

import (
	"context"
	"testing"

	"fyne.io/fyne/v2/test"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/vivid-downloader/internal/analysis"
	"github.com/ytget/vivid-downloader/internal/config"
	"github.com/ytget/vivid-downloader/internal/controller"
	"github.com/ytget/vivid-downloader/internal/download"
	"github.com/ytget/vivid-downloader/internal/model"
	"github.com/ytget/vivid-downloader/internal/queue"
	"github.com/ytget/vivid-downloader/internal/testsupport"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"https://www.youtube.com/watch?v=abc", false},
		{"http://example.com/video", false},
		{"ftp://example.com/video", true},
		{"youtube.com/watch?v=abc", true},
		{"https://", true},
	}

	for _, tt := range tests {
		err := validateURL(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
		} else {
			assert.NoError(t, err, tt.input)
		}
	}
}

func TestNewestFirst(t *testing.T) {
	a, b, c := &model.QueueEntry{ID: "a"}, &model.QueueEntry{ID: "b"}, &model.QueueEntry{ID: "c"}
	entries := []*model.QueueEntry{a, b, c}

	rows := newestFirst(entries)

	assert.Equal(t, []*model.QueueEntry{c, b, a}, rows)
	assert.Equal(t, a, entries[0], "input order is untouched")
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "line one line two", cleanText(" line one\r\nline two\n"))
}

func TestRootUI_RendersQueue(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	window := app.NewWindow("test")

	log, _ := logtest.NewNullLogger()
	fake := testsupport.NewFakeExtractor()
	events := make(chan model.Event, 16)
	store := queue.NewStore(nil)
	ctrl := controller.New(context.Background(), store,
		analysis.NewWorker(fake, events, log),
		download.NewService(fake, "/downloads", events, download.WithLogger(log)),
		events, controller.WithLogger(log))

	ui := NewRootUI(window, ctrl, config.NewSettings(app, nil), "/downloads", log)
	assert.Empty(t, ui.rows)
	assert.Equal(t, "Items: 0", ui.countLabel.Text)

	first := model.NewQueueEntry("first", "u", nil, model.SourceRecord{URL: "https://example.com/1"})
	second := model.NewQueueEntry("second", "u", nil, model.SourceRecord{URL: "https://example.com/2"})
	require.NoError(t, store.AddEntries(first, second))

	ctrl.OnSelectAll()

	require.Len(t, ui.rows, 2)
	assert.Equal(t, "second", ui.rows[0].Title)
	assert.True(t, ui.rows[0].Selected)
	assert.Equal(t, "Items: 2", ui.countLabel.Text)
	assert.Equal(t, controller.MsgAllSelected, ui.notificationLabel.Text)
	assert.True(t, ui.notificationContainer.Visible())
}

func TestRootUI_OnError(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	window := app.NewWindow("test")

	fake := testsupport.NewFakeExtractor()
	events := make(chan model.Event)
	ctrl := controller.New(context.Background(), queue.NewStore(nil),
		analysis.NewWorker(fake, events, nil),
		download.NewService(fake, "/downloads", events), events)
	ui := NewRootUI(window, ctrl, config.NewSettings(app, nil), "/downloads", nil)

	ui.OnNotification(analysis.MsgAnalyzing)
	assert.True(t, ui.notificationSpinner.Visible())

	ui.OnError("Failed to analyze URL: boom")
	assert.False(t, ui.notificationContainer.Visible())
}
