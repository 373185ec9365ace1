package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyQualityLabel       = "quality_label"
	KeyFormat             = "format"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
	KeyExpandPlaylists    = "expand_playlists"
	KeyHistoryEnabled     = "history_enabled"
	KeyYTDLPPath          = "ytdlp_path"
)

// Default values
const (
	DefaultFormat             = model.FormatVideo
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
	DefaultExpandPlaylists    = false
	DefaultHistoryEnabled     = true
	FallbackDownloadDir       = "downloads"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackDownloadDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetQualityLabel returns the last selected quality preset label.
// Labels that are no longer known fall back to the default.
func (s *Settings) GetQualityLabel() string {
	label := s.app.Preferences().String(KeyQualityLabel)
	if _, err := model.LookupQuality(label); err != nil {
		return model.DefaultQualityLabel
	}
	return label
}

// SetQualityLabel stores the quality preset label
func (s *Settings) SetQualityLabel(label string) {
	s.app.Preferences().SetString(KeyQualityLabel, label)
}

// GetFormat returns the last selected output format
func (s *Settings) GetFormat() model.Format {
	format, err := model.ParseFormat(s.app.Preferences().String(KeyFormat))
	if err != nil {
		return DefaultFormat
	}
	return format
}

// SetFormat stores the output format
func (s *Settings) SetFormat(format model.Format) {
	s.app.Preferences().SetString(KeyFormat, string(format))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to open the output folder after a batch
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to open the output folder after a batch
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetExpandPlaylists returns whether playlist URLs are expanded before a batch
func (s *Settings) GetExpandPlaylists() bool {
	return s.app.Preferences().BoolWithFallback(KeyExpandPlaylists, DefaultExpandPlaylists)
}

func (s *Settings) SetExpandPlaylists(expand bool) {
	s.app.Preferences().SetBool(KeyExpandPlaylists, expand)
}

// GetHistoryEnabled returns whether outcomes are written to the history store
func (s *Settings) GetHistoryEnabled() bool {
	return s.app.Preferences().BoolWithFallback(KeyHistoryEnabled, DefaultHistoryEnabled)
}

func (s *Settings) SetHistoryEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeyHistoryEnabled, enabled)
}

// GetYTDLPPath returns the yt-dlp executable; empty means "yt-dlp" on PATH
func (s *Settings) GetYTDLPPath() string {
	return s.app.Preferences().String(KeyYTDLPPath)
}

func (s *Settings) SetYTDLPPath(path string) {
	s.app.Preferences().SetString(KeyYTDLPPath, path)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
