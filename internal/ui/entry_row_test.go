package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/vivid-downloader/internal/model"
)

func sampleEntry() *model.QueueEntry {
	formats := []model.Format{
		{Label: "1080p (mp4)", ID: "137", Height: 1080},
		{Label: "720p (mp4)", ID: "22", Height: 720},
	}
	return model.NewQueueEntry("Title\nwith break", "Uploader", formats, model.SourceRecord{URL: "https://example.com/v"})
}

func TestQualityOptions(t *testing.T) {
	assert.Equal(t, []string{"Best", "1080p (mp4)", "720p (mp4)"}, qualityOptions(sampleEntry()))
	assert.Equal(t, []string{"Best"}, qualityOptions(&model.QueueEntry{}))
}

func TestEntryRow_UpdateDoesNotFireCallbacks(t *testing.T) {
	test.NewTempApp(t)

	var toggles, formats int
	row := NewEntryRow(NewLocalization(),
		func(string, bool) { toggles++ },
		func(string, string) { formats++ },
	)

	entry := sampleEntry()
	entry.Selected = true
	entry.ChosenFormat = "720p (mp4)"
	row.Update(entry)

	assert.Zero(t, toggles)
	assert.Zero(t, formats)
	assert.True(t, row.check.Checked)
	assert.Equal(t, "Title with break", row.title.Text)
	assert.Equal(t, "Uploader · Queued", row.details.Text)
	assert.Equal(t, "720p (mp4)", row.quality.Selected)
	assert.False(t, row.quality.Disabled())
}

func TestEntryRow_UserActions(t *testing.T) {
	test.NewTempApp(t)

	var toggledID, formatLabel string
	var toggledTo bool
	row := NewEntryRow(NewLocalization(),
		func(id string, selected bool) { toggledID, toggledTo = id, selected },
		func(_ string, label string) { formatLabel = label },
	)
	entry := sampleEntry()
	row.Update(entry)

	assert.True(t, row.check.Checked)
	row.check.SetChecked(false)
	assert.Equal(t, entry.ID, toggledID)
	assert.False(t, toggledTo)

	row.quality.SetSelected("1080p (mp4)")
	assert.Equal(t, "1080p (mp4)", formatLabel)
}

func TestEntryRow_StatusDetails(t *testing.T) {
	test.NewTempApp(t)
	row := NewEntryRow(NewLocalization(), nil, nil)

	entry := sampleEntry()
	entry.Status = model.EntryStatusDownloading
	entry.Progress = 42
	row.Update(entry)
	assert.Equal(t, "Uploader · Downloading 42%", row.details.Text)
	assert.Equal(t, 42.0, row.progress.Value)
	assert.True(t, row.quality.Disabled())

	entry.Status = model.EntryStatusError
	entry.LastError = "HTTP Error 403"
	row.Update(entry)
	assert.Equal(t, "Uploader · Error: HTTP Error 403", row.details.Text)

	noFormats := model.NewQueueEntry("t", "u", nil, model.SourceRecord{})
	row.Update(noFormats)
	assert.True(t, row.quality.Disabled())
}
