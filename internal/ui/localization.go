package ui

import (
	"github.com/ytget/vivid-downloader/internal/analysis"
	"github.com/ytget/vivid-downloader/internal/controller"
	"github.com/ytget/vivid-downloader/internal/download"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyAnalyze           = "analyze"
	KeyDownloadSelected  = "download_selected"
	KeySelectAll         = "select_all"
	KeyClear             = "clear"
	KeyOpenFolder        = "open_folder"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyEnterURL          = "enter_url"
	KeyInvalidURL        = "invalid_url"
	KeyPleaseEnterURL    = "please_enter_url"
	KeySettingsSaved     = "settings_saved"
	KeyItemsCount        = "items_count"
	KeyQueued            = "queued"
	KeyError             = "error"
	KeyErrorOpeningDir   = "error_opening_dir"

	// controller and worker notifications
	KeyAnalyzing       = "analyzing"
	KeyNoVideos        = "no_videos"
	KeyNothingSelected = "nothing_selected"
	KeyCannotClear     = "cannot_clear"
	KeyQueueCleared    = "queue_cleared"
	KeyAllSelected     = "all_selected"
	KeyBatchCompleted  = "batch_completed"
)

// messageKeys maps fixed notification texts to their translation keys
var messageKeys = map[string]string{
	analysis.MsgAnalyzing:         KeyAnalyzing,
	analysis.MsgNoVideos:          KeyNoVideos,
	controller.MsgNothingSelected: KeyNothingSelected,
	controller.MsgCannotClear:     KeyCannotClear,
	controller.MsgQueueCleared:    KeyQueueCleared,
	controller.MsgAllSelected:     KeyAllSelected,
	download.MsgBatchCompleted:    KeyBatchCompleted,
}

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" and unknown codes keep English.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if text, found := l.texts[l.currentLanguage][key]; found {
		return text
	}
	if text, found := l.texts["en"][key]; found {
		return text
	}
	return key
}

// Message translates a notification produced by the controller. Messages
// carrying dynamic parts are shown as they are.
func (l *Localization) Message(msg string) string {
	if key, ok := messageKeys[msg]; ok {
		return l.GetText(key)
	}
	return msg
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Vivid Downloader",
		KeyAnalyze:           "Analyze",
		KeyDownloadSelected:  "Download Selected",
		KeySelectAll:         "Select All",
		KeyClear:             "Clear",
		KeyOpenFolder:        "Open Folder",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Download Directory",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyEnterURL:          "Paste a video or playlist URL",
		KeyInvalidURL:        "Invalid URL",
		KeyPleaseEnterURL:    "Please enter a URL",
		KeySettingsSaved:     "Settings saved. The download directory applies after restart.",
		KeyItemsCount:        "Items: %d",
		KeyQueued:            "Queued",
		KeyError:             "Error",
		KeyErrorOpeningDir:   "Error opening folder",

		KeyAnalyzing:       "Analyzing URL...",
		KeyNoVideos:        "No videos found",
		KeyNothingSelected: "No items selected for download",
		KeyCannotClear:     "Cannot clear queue while downloading",
		KeyQueueCleared:    "Queue cleared",
		KeyAllSelected:     "All items selected",
		KeyBatchCompleted:  "Downloads completed",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Vivid Загрузчик",
		KeyAnalyze:           "Анализ",
		KeyDownloadSelected:  "Скачать выбранное",
		KeySelectAll:         "Выбрать все",
		KeyClear:             "Очистить",
		KeyOpenFolder:        "Открыть папку",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyDownloadDirectory: "Папка загрузки",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyEnterURL:          "Вставьте ссылку на видео или плейлист",
		KeyInvalidURL:        "Неверный URL",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL",
		KeySettingsSaved:     "Настройки сохранены. Папка загрузки применится после перезапуска.",
		KeyItemsCount:        "Элементов: %d",
		KeyQueued:            "В очереди",
		KeyError:             "Ошибка",
		KeyErrorOpeningDir:   "Ошибка открытия папки",

		KeyAnalyzing:       "Анализ ссылки...",
		KeyNoVideos:        "Видео не найдены",
		KeyNothingSelected: "Ничего не выбрано для загрузки",
		KeyCannotClear:     "Нельзя очистить очередь во время загрузки",
		KeyQueueCleared:    "Очередь очищена",
		KeyAllSelected:     "Все элементы выбраны",
		KeyBatchCompleted:  "Загрузки завершены",
	}
}
