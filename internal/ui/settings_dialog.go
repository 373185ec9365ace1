package ui

import (
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-batch/internal/config"
)

// SettingsDialog edits the preferences that are not part of the main form
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	languageSelect *widget.Select
	expandCheck    *widget.Check
	revealCheck    *widget.Check
	historyCheck   *widget.Check
	ytdlpEntry     *widget.Entry

	// display name -> language code
	languageCodes map[string]string
}

// NewSettingsDialog creates a new settings dialog. onSaved runs on the UI
// thread after the values were stored.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.languageCodes = make(map[string]string)
	var languageNames []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	sd.expandCheck = widget.NewCheck(l.GetText(KeyExpandPlaylists), nil)
	sd.revealCheck = widget.NewCheck(l.GetText(KeyRevealOnComplete), nil)
	sd.historyCheck = widget.NewCheck(l.GetText(KeyKeepHistory), nil)

	sd.ytdlpEntry = widget.NewEntry()
	sd.ytdlpEntry.SetPlaceHolder("yt-dlp")

	hint := widget.NewLabel(l.GetText(KeyRestartRequired))
	hint.Importance = widget.LowImportance
	hint.Wrapping = fyne.TextWrapWord

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyLanguage)+":"),
		sd.languageSelect,
		widget.NewSeparator(),
		sd.expandCheck,
		sd.revealCheck,
		sd.historyCheck,
		widget.NewSeparator(),
		widget.NewLabel(l.GetText(KeyYTDLPPath)+":"),
		sd.ytdlpEntry,
		hint,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
			break
		}
	}
	sd.expandCheck.SetChecked(sd.settings.GetExpandPlaylists())
	sd.revealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
	sd.historyCheck.SetChecked(sd.settings.GetHistoryEnabled())
	sd.ytdlpEntry.SetText(sd.settings.GetYTDLPPath())
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
	sd.settings.SetExpandPlaylists(sd.expandCheck.Checked)
	sd.settings.SetAutoRevealOnComplete(sd.revealCheck.Checked)
	sd.settings.SetHistoryEnabled(sd.historyCheck.Checked)
	sd.settings.SetYTDLPPath(strings.TrimSpace(sd.ytdlpEntry.Text))

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
