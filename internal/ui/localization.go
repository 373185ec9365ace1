package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyDownload          = "download"
	KeyCancel            = "cancel"
	KeySettings          = "settings"
	KeyLanguage          = "language"
	KeyURLs              = "urls"
	KeyEnterURLs         = "enter_urls"
	KeyClipStart         = "clip_start"
	KeyClipEnd           = "clip_end"
	KeyTimestampHint     = "timestamp_hint"
	KeyQualityPreset     = "quality_preset"
	KeyFormat            = "format"
	KeyDownloadDirectory = "download_directory"
	KeyBrowse            = "browse"
	KeySave              = "save"
	KeySettingsSaved     = "settings_saved"
	KeyExpandPlaylists   = "expand_playlists"
	KeyRevealOnComplete  = "reveal_on_complete"
	KeyKeepHistory       = "keep_history"
	KeyYTDLPPath         = "ytdlp_path"
	KeyRestartRequired   = "restart_required"
	KeyReady             = "ready"
	KeyExpanding         = "expanding"
	KeyDownloadingItem   = "downloading_item"
	KeyCancelling        = "cancelling"
	KeyETA               = "eta"
	KeyDownloadFailed    = "download_failed"
	KeyBatchFinished     = "batch_finished"
	KeyBatchSummary      = "batch_summary"
	KeyBatchCancelled    = "batch_cancelled"
	KeyBatchRunning      = "batch_running"
	KeyLowDiskSpace      = "low_disk_space"
	KeyWarning           = "warning"
	KeyInvalidInput      = "invalid_input"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyChooseOutputDir   = "choose_output_dir"
	KeyInvalidTimestamp  = "invalid_timestamp"
	KeyInvalidClip       = "invalid_clip"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
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
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
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
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations.
// Format strings take: downloading_item (index, total, url), download_failed
// (url, error), batch_summary (completed, total, failed).
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YT Batch Downloader",
		KeyDownload:          "Download",
		KeyCancel:            "Cancel",
		KeySettings:          "Settings",
		KeyLanguage:          "Language",
		KeyURLs:              "URLs (one per line)",
		KeyEnterURLs:         "https://youtube.com/watch?v=...",
		KeyClipStart:         "Clip start",
		KeyClipEnd:           "Clip end",
		KeyTimestampHint:     "HH:MM:SS or mm:ss",
		KeyQualityPreset:     "Quality",
		KeyFormat:            "Format",
		KeyDownloadDirectory: "Output folder",
		KeyBrowse:            "Browse",
		KeySave:              "Save",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyExpandPlaylists:   "Expand playlists into videos",
		KeyRevealOnComplete:  "Open output folder when done",
		KeyKeepHistory:       "Keep download history",
		KeyYTDLPPath:         "yt-dlp executable",
		KeyRestartRequired:   "Some changes take effect after restart.",
		KeyReady:             "Ready",
		KeyExpanding:         "Expanding playlists...",
		KeyDownloadingItem:   "Downloading %d/%d: %s",
		KeyCancelling:        "Cancelling...",
		KeyETA:               "ETA %s",
		KeyDownloadFailed:    "Failed to download %s\n\n%v",
		KeyBatchFinished:     "Batch finished",
		KeyBatchSummary:      "Completed %d of %d, failed %d.",
		KeyBatchCancelled:    "Batch cancelled",
		KeyBatchRunning:      "A batch is already running",
		KeyLowDiskSpace:      "Less than %s free in the output folder",
		KeyWarning:           "Warning",
		KeyInvalidInput:      "Invalid input",
		KeyPleaseEnterURL:    "Please enter at least one URL",
		KeyChooseOutputDir:   "Please choose an output folder",
		KeyInvalidTimestamp:  "Clip times must be HH:MM:SS or mm:ss",
		KeyInvalidClip:       "Clip end must be after clip start",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YT Пакетный загрузчик",
		KeyDownload:          "Скачать",
		KeyCancel:            "Отмена",
		KeySettings:          "Настройки",
		KeyLanguage:          "Язык",
		KeyURLs:              "Ссылки (по одной в строке)",
		KeyClipStart:         "Начало фрагмента",
		KeyClipEnd:           "Конец фрагмента",
		KeyTimestampHint:     "ЧЧ:ММ:СС или мм:сс",
		KeyQualityPreset:     "Качество",
		KeyFormat:            "Формат",
		KeyDownloadDirectory: "Папка загрузки",
		KeyBrowse:            "Обзор",
		KeySave:              "Сохранить",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyExpandPlaylists:   "Раскрывать плейлисты",
		KeyRevealOnComplete:  "Открывать папку по завершении",
		KeyKeepHistory:       "Вести историю загрузок",
		KeyYTDLPPath:         "Исполняемый файл yt-dlp",
		KeyRestartRequired:   "Часть изменений вступит в силу после перезапуска.",
		KeyReady:             "Готово",
		KeyExpanding:         "Раскрытие плейлистов...",
		KeyDownloadingItem:   "Загрузка %d/%d: %s",
		KeyCancelling:        "Отмена...",
		KeyETA:               "Осталось %s",
		KeyDownloadFailed:    "Не удалось скачать %s\n\n%v",
		KeyBatchFinished:     "Пакет завершён",
		KeyBatchSummary:      "Скачано %d из %d, ошибок %d.",
		KeyBatchCancelled:    "Пакет отменён",
		KeyBatchRunning:      "Пакет уже выполняется",
		KeyLowDiskSpace:      "В папке загрузки свободно меньше %s",
		KeyWarning:           "Предупреждение",
		KeyInvalidInput:      "Неверные данные",
		KeyPleaseEnterURL:    "Пожалуйста, введите хотя бы одну ссылку",
		KeyChooseOutputDir:   "Пожалуйста, выберите папку загрузки",
		KeyInvalidTimestamp:  "Время фрагмента: ЧЧ:ММ:СС или мм:сс",
		KeyInvalidClip:       "Конец фрагмента должен быть позже начала",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "YT Batch Downloader",
		KeyDownload:          "Baixar",
		KeyCancel:            "Cancelar",
		KeySettings:          "Configurações",
		KeyLanguage:          "Idioma",
		KeyURLs:              "URLs (uma por linha)",
		KeyClipStart:         "Início do trecho",
		KeyClipEnd:           "Fim do trecho",
		KeyTimestampHint:     "HH:MM:SS ou mm:ss",
		KeyQualityPreset:     "Qualidade",
		KeyFormat:            "Formato",
		KeyDownloadDirectory: "Pasta de saída",
		KeyBrowse:            "Navegar",
		KeySave:              "Salvar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyExpandPlaylists:   "Expandir playlists em vídeos",
		KeyRevealOnComplete:  "Abrir a pasta ao concluir",
		KeyKeepHistory:       "Manter histórico de downloads",
		KeyYTDLPPath:         "Executável do yt-dlp",
		KeyRestartRequired:   "Algumas alterações valem após reiniciar.",
		KeyReady:             "Pronto",
		KeyExpanding:         "Expandindo playlists...",
		KeyDownloadingItem:   "Baixando %d/%d: %s",
		KeyCancelling:        "Cancelando...",
		KeyETA:               "Restante %s",
		KeyDownloadFailed:    "Falha ao baixar %s\n\n%v",
		KeyBatchFinished:     "Lote concluído",
		KeyBatchSummary:      "Concluídos %d de %d, falhas %d.",
		KeyBatchCancelled:    "Lote cancelado",
		KeyBatchRunning:      "Já existe um lote em andamento",
		KeyLowDiskSpace:      "Menos de %s livres na pasta de saída",
		KeyWarning:           "Aviso",
		KeyInvalidInput:      "Entrada inválida",
		KeyPleaseEnterURL:    "Digite pelo menos uma URL",
		KeyChooseOutputDir:   "Escolha uma pasta de saída",
		KeyInvalidTimestamp:  "O trecho deve ser HH:MM:SS ou mm:ss",
		KeyInvalidClip:       "O fim do trecho deve ser depois do início",
	}
}
