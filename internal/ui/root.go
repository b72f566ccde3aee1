package ui

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/ytget/vivid-downloader/internal/analysis"
	"github.com/ytget/vivid-downloader/internal/config"
	"github.com/ytget/vivid-downloader/internal/controller"
	"github.com/ytget/vivid-downloader/internal/model"
	"github.com/ytget/vivid-downloader/internal/platform"
)

// RootUI is the main window. It implements controller.Listener; every method
// runs on the UI thread.
type RootUI struct {
	window       fyne.Window
	ctrl         *controller.Controller
	settings     *config.Settings
	localization *Localization
	downloadDir  string
	log          logrus.FieldLogger

	urlEntry     *widget.Entry
	analyzeBtn   *widget.Button
	downloadBtn  *widget.Button
	selectAllBtn *widget.Button
	clearBtn     *widget.Button
	openBtn      *widget.Button
	countLabel   *widget.Label
	list         *widget.List

	// newest first
	rows []*model.QueueEntry

	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
	notificationSeq       int
}

var _ controller.Listener = (*RootUI)(nil)

// NewRootUI builds the window content and registers itself as the
// controller's listener. downloadDir is the directory resolved at startup.
func NewRootUI(window fyne.Window, ctrl *controller.Controller, settings *config.Settings, downloadDir string, log logrus.FieldLogger) *RootUI {
	if log == nil {
		log = logrus.StandardLogger()
	}

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		ctrl:         ctrl,
		settings:     settings,
		localization: localization,
		downloadDir:  downloadDir,
		log:          log.WithField("component", "ui"),
	}

	ui.setupUI()
	ctrl.SetListener(ui)
	ui.OnQueueChanged(ctrl.Store().Entries())
	return ui
}

func (ui *RootUI) setupUI() {
	ui.createMenu()
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.Validator = validateURL
	ui.urlEntry.OnSubmitted = func(string) { ui.onAnalyzeClick() }

	ui.analyzeBtn = widget.NewButton(ui.localization.GetText(KeyAnalyze), ui.onAnalyzeClick)
	ui.analyzeBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil, settingsBtn, ui.analyzeBtn, ui.urlEntry)

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Truncation = fyne.TextTruncateEllipsis
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewBorder(nil, nil, ui.notificationSpinner, nil, ui.notificationLabel)
	ui.notificationContainer.Hide()

	ui.list = widget.NewList(
		func() int { return len(ui.rows) },
		func() fyne.CanvasObject {
			return NewEntryRow(ui.localization, ui.ctrl.OnItemSelectionChanged, ui.onFormatChosen)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(ui.rows) {
				return
			}
			if row, ok := obj.(*EntryRow); ok {
				row.Update(ui.rows[id])
			}
		},
	)

	ui.downloadBtn = widget.NewButton(ui.localization.GetText(KeyDownloadSelected), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.selectAllBtn = widget.NewButton(ui.localization.GetText(KeySelectAll), ui.ctrl.OnSelectAll)
	ui.clearBtn = widget.NewButton(ui.localization.GetText(KeyClear), func() { _ = ui.ctrl.OnClear() })
	ui.openBtn = widget.NewButton(IconFolder+" "+ui.localization.GetText(KeyOpenFolder), ui.onOpenFolder)
	ui.countLabel = widget.NewLabel("")

	actions := container.NewHBox(ui.selectAllBtn, ui.clearBtn, ui.openBtn)
	bottomPanel := container.NewBorder(nil, nil, ui.countLabel, ui.downloadBtn, actions)

	content := container.NewBorder(
		container.NewVBox(topPanel, ui.notificationContainer),
		bottomPanel,
		nil,
		nil,
		ui.list,
	)
	ui.window.SetContent(content)
}

func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langItem := fyne.NewMenuItem(name, func() { ui.onLanguageChange(code) })
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.analyzeBtn.SetText(ui.localization.GetText(KeyAnalyze))
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownloadSelected))
	ui.selectAllBtn.SetText(ui.localization.GetText(KeySelectAll))
	ui.clearBtn.SetText(ui.localization.GetText(KeyClear))
	ui.openBtn.SetText(IconFolder + " " + ui.localization.GetText(KeyOpenFolder))
	ui.countLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyItemsCount), len(ui.rows)))
	ui.list.Refresh()
}

// validateURL accepts empty input and absolute http(s) URLs
func validateURL(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("URL must start with http:// or https://")
	}
	if parsed.Host == "" {
		return errors.New("URL has no host")
	}
	return nil
}

func (ui *RootUI) onAnalyzeClick() {
	text := cleanText(ui.urlEntry.Text)
	if text == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterURL), false)
		return
	}
	if err := validateURL(text); err != nil {
		ui.showNotification(ui.localization.GetText(KeyInvalidURL)+": "+err.Error(), false)
		return
	}

	if err := ui.ctrl.OnAnalyzeRequested(text); err != nil {
		ui.log.WithError(err).Debug("analyze request not started")
		return
	}
	ui.urlEntry.SetText("")
}

func (ui *RootUI) onDownloadClick() {
	if err := ui.ctrl.OnDownloadRequested(); err != nil {
		ui.log.WithError(err).Debug("download request not started")
	}
}

func (ui *RootUI) onFormatChosen(id, label string) {
	if err := ui.ctrl.OnFormatChosen(id, label); err != nil {
		ui.list.Refresh()
	}
}

func (ui *RootUI) onOpenFolder() {
	if err := platform.OpenDirectory(ui.downloadDir); err != nil {
		ui.log.WithError(err).Warn("open download folder")
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningDir), err), ui.window)
	}
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window).Show()
}

// OnQueueChanged renders the queue, newest entries on top
func (ui *RootUI) OnQueueChanged(entries []*model.QueueEntry) {
	ui.rows = newestFirst(entries)
	ui.countLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyItemsCount), len(ui.rows)))
	ui.list.Refresh()
}

// OnNotification shows a transient message under the URL field
func (ui *RootUI) OnNotification(message string) {
	ui.showNotification(ui.localization.Message(message), message == analysis.MsgAnalyzing)
}

// OnError shows message in a dialog
func (ui *RootUI) OnError(message string) {
	ui.hideNotification()
	dialog.ShowError(errors.New(message), ui.window)
}

func newestFirst(entries []*model.QueueEntry) []*model.QueueEntry {
	rows := slices.Clone(entries)
	slices.Reverse(rows)
	return rows
}

// showNotification displays message and hides it after NotificationAutoHide
// unless a newer message replaced it. A spinning notification stays until
// the next one.
func (ui *RootUI) showNotification(message string, spinning bool) {
	ui.notificationSeq++
	seq := ui.notificationSeq

	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
	} else {
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()

	if spinning {
		return
	}
	time.AfterFunc(NotificationAutoHide, func() {
		fyne.Do(func() {
			if ui.notificationSeq == seq {
				ui.hideNotification()
			}
		})
	})
}

func (ui *RootUI) hideNotification() {
	ui.notificationSeq++
	ui.notificationSpinner.Hide()
	ui.notificationContainer.Hide()
}
