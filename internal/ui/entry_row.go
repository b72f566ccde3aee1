package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/samber/lo"

	"github.com/ytget/vivid-downloader/internal/model"
)

// EntryRow renders one queue entry: selection box, title, uploader and
// status, quality picker and progress bar. Rows are recycled by the list, so
// the entry they show changes through Update.
type EntryRow struct {
	widget.BaseWidget

	localization *Localization
	entryID      string
	updating     bool

	check    *widget.Check
	title    *widget.Label
	details  *widget.Label
	quality  *widget.Select
	progress *widget.ProgressBar

	onToggle func(id string, selected bool)
	onFormat func(id, label string)
}

// NewEntryRow creates an empty row
func NewEntryRow(localization *Localization, onToggle func(id string, selected bool), onFormat func(id, label string)) *EntryRow {
	r := &EntryRow{
		localization: localization,
		onToggle:     onToggle,
		onFormat:     onFormat,
	}
	r.ExtendBaseWidget(r)

	r.check = widget.NewCheck("", func(selected bool) {
		if r.updating || r.entryID == "" || r.onToggle == nil {
			return
		}
		r.onToggle(r.entryID, selected)
	})

	r.title = widget.NewLabel("")
	r.title.TextStyle = fyne.TextStyle{Bold: true}
	r.title.Truncation = fyne.TextTruncateEllipsis

	r.details = widget.NewLabel("")
	r.details.Truncation = fyne.TextTruncateEllipsis

	r.quality = widget.NewSelect(nil, func(label string) {
		if r.updating || r.entryID == "" || r.onFormat == nil {
			return
		}
		r.onFormat(r.entryID, label)
	})

	r.progress = widget.NewProgressBar()
	r.progress.Max = 100

	return r
}

// CreateRenderer lays the row out
func (r *EntryRow) CreateRenderer() fyne.WidgetRenderer {
	qualityBox := container.NewGridWrap(fyne.NewSize(QualitySelectWidth, MinTouchTargetSize), r.quality)
	text := container.NewVBox(r.title, r.details)
	top := container.NewBorder(nil, nil, r.check, qualityBox, text)
	return widget.NewSimpleRenderer(container.NewVBox(top, r.progress, layout.NewSpacer()))
}

// Update shows entry in the row
func (r *EntryRow) Update(entry *model.QueueEntry) {
	r.updating = true
	defer func() { r.updating = false }()

	r.entryID = entry.ID
	r.check.SetChecked(entry.Selected)
	r.title.SetText(cleanText(entry.Title))
	r.details.SetText(r.detailsText(entry))

	r.quality.Options = qualityOptions(entry)
	r.quality.SetSelected(entry.ChosenFormat)
	if entry.HasFormats() && !entry.Status.IsActive() {
		r.quality.Enable()
	} else {
		r.quality.Disable()
	}

	r.progress.SetValue(entry.Progress)
}

func (r *EntryRow) detailsText(entry *model.QueueEntry) string {
	status := entry.StatusText()
	switch entry.Status {
	case model.EntryStatusQueued:
		status = r.localization.GetText(KeyQueued)
	case model.EntryStatusError:
		status = r.localization.GetText(KeyError)
		if entry.LastError != "" {
			status += ": " + cleanText(entry.LastError)
		}
	}
	return cleanText(entry.Uploader) + MiddleDotSeparator + status
}

// qualityOptions lists Best followed by the entry's format labels
func qualityOptions(entry *model.QueueEntry) []string {
	return append([]string{model.BestFormat}, lo.Map(entry.Formats, func(f model.Format, _ int) string {
		return f.Label
	})...)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// cleanText keeps titles on one line
func cleanText(s string) string {
	return strings.TrimSpace(lineBreaks.Replace(s))
}
