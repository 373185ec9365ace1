package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/yt-batch/internal/model"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetDownloadDirectory()
	if dir == "" {
		t.Error("Download directory should not be empty")
	}

	customDir := "/custom/downloads"
	settings.SetDownloadDirectory(customDir)

	retrievedDir := settings.GetDownloadDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, retrievedDir)
	}
}

func TestQualityLabel(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetQualityLabel(); got != model.DefaultQualityLabel {
		t.Errorf("Expected default quality %s, got %s", model.DefaultQualityLabel, got)
	}

	settings.SetQualityLabel("480p")
	if got := settings.GetQualityLabel(); got != "480p" {
		t.Errorf("Expected quality 480p, got %s", got)
	}

	// Unknown labels fall back to the default
	settings.SetQualityLabel("8K")
	if got := settings.GetQualityLabel(); got != model.DefaultQualityLabel {
		t.Errorf("Expected fallback to %s, got %s", model.DefaultQualityLabel, got)
	}
}

func TestFormat(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetFormat(); got != DefaultFormat {
		t.Errorf("Expected default format %s, got %s", DefaultFormat, got)
	}

	settings.SetFormat(model.FormatAudio)
	if got := settings.GetFormat(); got != model.FormatAudio {
		t.Errorf("Expected format Audio, got %s", got)
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("ru")
	if settings.GetLanguage() != "ru" {
		t.Errorf("Expected language ru, got %s", settings.GetLanguage())
	}
}

func TestBoolSettings(t *testing.T) {
	tests := []struct {
		name     string
		get      func(*Settings) bool
		set      func(*Settings, bool)
		fallback bool
	}{
		{"auto reveal", (*Settings).GetAutoRevealOnComplete, (*Settings).SetAutoRevealOnComplete, DefaultAutoRevealComplete},
		{"expand playlists", (*Settings).GetExpandPlaylists, (*Settings).SetExpandPlaylists, DefaultExpandPlaylists},
		{"history", (*Settings).GetHistoryEnabled, (*Settings).SetHistoryEnabled, DefaultHistoryEnabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := NewSettings(test.NewApp())

			if got := tt.get(settings); got != tt.fallback {
				t.Errorf("Expected default %v, got %v", tt.fallback, got)
			}

			tt.set(settings, !tt.fallback)
			if got := tt.get(settings); got != !tt.fallback {
				t.Errorf("Expected %v after set, got %v", !tt.fallback, got)
			}
		})
	}
}

func TestYTDLPPath(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if got := settings.GetYTDLPPath(); got != "" {
		t.Errorf("Expected empty default path, got %s", got)
	}

	settings.SetYTDLPPath("/opt/bin/yt-dlp")
	if got := settings.GetYTDLPPath(); got != "/opt/bin/yt-dlp" {
		t.Errorf("Expected custom path, got %s", got)
	}
}

func TestGetLanguageOptions(t *testing.T) {
	settings := NewSettings(test.NewApp())
	options := settings.GetLanguageOptions()

	for _, code := range []string{"system", "en", "ru", "pt"} {
		if _, ok := options[code]; !ok {
			t.Errorf("Missing language option %s", code)
		}
	}
}
