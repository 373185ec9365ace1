package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ytget/yt-batch/internal/config"
	"github.com/ytget/yt-batch/internal/download"
	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
)

// BatchStarter starts a batch in the background
type BatchStarter interface {
	Start(ctx context.Context, batch *model.Batch) (*download.Job, error)
}

// URLExpander replaces playlist URLs with the URLs of their videos
type URLExpander interface {
	Expand(ctx context.Context, urls []string) []string
}

// Option configures the RootUI
type Option func(*RootUI)

// WithExpander enables playlist expansion when the preference is on
func WithExpander(e URLExpander) Option {
	return func(ui *RootUI) {
		ui.expander = e
	}
}

// WithLogger sets the UI logger
func WithLogger(l *slog.Logger) Option {
	return func(ui *RootUI) {
		if l != nil {
			ui.logger = l
		}
	}
}

// WithFolderOpener replaces the function used to reveal the output folder
func WithFolderOpener(open func(string) error) Option {
	return func(ui *RootUI) {
		ui.openFolder = open
	}
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	downloader   BatchStarter
	expander     URLExpander
	logger       *slog.Logger
	openFolder   func(string) error

	// Form
	urlsLabel      *widget.Label
	urlEntry       *widget.Entry
	clipStartLabel *widget.Label
	startEntry     *widget.Entry
	clipEndLabel   *widget.Label
	endEntry       *widget.Entry
	qualityLabel   *widget.Label
	qualitySelect  *widget.Select
	formatLabel    *widget.Label
	formatRadio    *widget.RadioGroup
	outputLabel    *widget.Label
	outputEntry    *widget.Entry
	browseBtn      *widget.Button
	downloadBtn    *widget.Button
	cancelBtn      *widget.Button
	settingsBtn    *widget.Button
	progressBar    *widget.ProgressBar
	statusLabel    *widget.Label

	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	outputDir string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, downloader BatchStarter, opts ...Option) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		downloader:   downloader,
		logger:       slog.Default(),
		openFolder:   platform.OpenFolder,
	}
	for _, opt := range opts {
		opt(ui)
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	l := ui.localization

	ui.createMenu()

	ui.urlsLabel = widget.NewLabel(l.GetText(KeyURLs))
	ui.urlEntry = widget.NewMultiLineEntry()
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURLs))
	ui.urlEntry.SetMinRowsVisible(URLBoxMinRows)

	ui.clipStartLabel = widget.NewLabel(l.GetText(KeyClipStart))
	ui.startEntry = widget.NewEntry()
	ui.startEntry.SetPlaceHolder(l.GetText(KeyTimestampHint))
	ui.clipEndLabel = widget.NewLabel(l.GetText(KeyClipEnd))
	ui.endEntry = widget.NewEntry()
	ui.endEntry.SetPlaceHolder(l.GetText(KeyTimestampHint))

	ui.qualityLabel = widget.NewLabel(l.GetText(KeyQualityPreset))
	ui.qualitySelect = widget.NewSelect(model.QualityLabels(), nil)
	ui.qualitySelect.SetSelected(ui.settings.GetQualityLabel())

	ui.formatLabel = widget.NewLabel(l.GetText(KeyFormat))
	formats := make([]string, 0, 2)
	for _, f := range model.Formats() {
		formats = append(formats, string(f))
	}
	ui.formatRadio = widget.NewRadioGroup(formats, nil)
	ui.formatRadio.Horizontal = true
	ui.formatRadio.Required = true
	ui.formatRadio.SetSelected(string(ui.settings.GetFormat()))

	ui.outputLabel = widget.NewLabel(l.GetText(KeyDownloadDirectory))
	ui.outputEntry = widget.NewEntry()
	ui.outputEntry.SetText(ui.settings.GetDownloadDirectory())
	ui.browseBtn = widget.NewButton(l.GetText(KeyBrowse), ui.onBrowseDirectory)

	ui.downloadBtn = widget.NewButton(l.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton(l.GetText(KeyCancel), ui.onCancelClick)
	ui.cancelBtn.Disable()
	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Max = ProgressMax
	ui.progressBar.TextFormatter = func() string {
		return fmt.Sprintf(ProgressLabelFormat, ui.progressBar.Value)
	}
	ui.statusLabel = widget.NewLabel(l.GetText(KeyReady))
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis

	clipRow := container.New(
		layout.NewGridLayoutWithColumns(4),
		ui.clipStartLabel, ui.startEntry,
		ui.clipEndLabel, ui.endEntry,
	)
	optionsForm := container.New(
		layout.NewFormLayout(),
		ui.qualityLabel, ui.qualitySelect,
		ui.formatLabel, ui.formatRadio,
		ui.outputLabel, container.NewBorder(nil, nil, nil, ui.browseBtn, ui.outputEntry),
	)
	buttons := container.NewBorder(nil, nil, ui.settingsBtn, container.NewHBox(ui.cancelBtn, ui.downloadBtn))

	bottom := container.NewVBox(
		clipRow,
		optionsForm,
		widget.NewSeparator(),
		ui.progressBar,
		ui.statusLabel,
		buttons,
	)

	content := container.NewBorder(
		ui.urlsLabel, // top
		bottom,       // bottom
		nil,          // left
		nil,          // right
		ui.urlEntry,  // center
	)

	ui.window.SetContent(container.NewPadded(content))
	ui.logger.Debug("UI setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	openItem := fyne.NewMenuItem(IconFolder+" "+ui.localization.GetText(KeyDownloadDirectory), func() {
		ui.revealFolder(ui.outputEntry.Text)
	})

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	languageItem := fyne.NewMenuItem(ui.localization.GetText(KeyLanguage), nil)
	languageItem.ChildMenu = languageMenu

	fileMenu := fyne.NewMenu(ui.localization.GetText(KeyAppTitle), openItem, settingsItem, languageItem)
	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization

	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.urlsLabel.SetText(l.GetText(KeyURLs))
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURLs))
	ui.clipStartLabel.SetText(l.GetText(KeyClipStart))
	ui.clipEndLabel.SetText(l.GetText(KeyClipEnd))
	ui.startEntry.SetPlaceHolder(l.GetText(KeyTimestampHint))
	ui.endEntry.SetPlaceHolder(l.GetText(KeyTimestampHint))
	ui.qualityLabel.SetText(l.GetText(KeyQualityPreset))
	ui.formatLabel.SetText(l.GetText(KeyFormat))
	ui.outputLabel.SetText(l.GetText(KeyDownloadDirectory))
	ui.browseBtn.SetText(l.GetText(KeyBrowse))
	ui.downloadBtn.SetText(l.GetText(KeyDownload))
	ui.cancelBtn.SetText(l.GetText(KeyCancel))
	if !ui.Running() {
		ui.statusLabel.SetText(l.GetText(KeyReady))
	}
}

// onBrowseDirectory opens the native folder picker
func (ui *RootUI) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.outputEntry.SetText(uri.Path())
	}, ui.window)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	}).Show()
}

// snapshot reads the form fields
func (ui *RootUI) snapshot() FormInput {
	return FormInput{
		URLText:      ui.urlEntry.Text,
		ClipStart:    ui.startEntry.Text,
		ClipEnd:      ui.endEntry.Text,
		QualityLabel: ui.qualitySelect.Selected,
		Format:       ui.formatRadio.Selected,
		OutputDir:    ui.outputEntry.Text,
	}
}

// onDownloadClick validates the form and starts a batch
func (ui *RootUI) onDownloadClick() {
	if ui.Running() {
		ui.showWarning(ui.localization.GetText(KeyBatchRunning))
		return
	}

	urls, opts, err := ui.snapshot().BatchInput()
	if err != nil {
		ui.logger.Info("form rejected", slog.Any("error", err))
		ui.showWarning(ui.localization.GetText(validationTextKey(err)))
		return
	}

	if err := platform.CreateDirectoryIfNotExists(opts.OutputDir); err != nil {
		ui.showError(err)
		return
	}

	ui.settings.SetQualityLabel(opts.Quality.Label)
	ui.settings.SetFormat(opts.Format)
	ui.settings.SetDownloadDirectory(opts.OutputDir)

	ctx, cancel := context.WithCancel(context.Background())
	ui.setRunning(true, cancel, opts.OutputDir)

	go ui.runBatch(ctx, urls, opts)
}

// runBatch prepares and starts the batch off the UI thread, then pumps its
// events back onto the UI thread until the job is over
func (ui *RootUI) runBatch(ctx context.Context, urls []string, opts model.BatchOptions) {
	if low, free, err := platform.IsLowOnSpace(ctx, opts.OutputDir); err != nil {
		ui.logger.Warn("failed to check free space", slog.Any("error", err))
	} else if low {
		ui.logger.Warn("low disk space", slog.String("output_dir", opts.OutputDir), slog.Uint64("free_bytes", free))
		fyne.Do(func() {
			ui.statusLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyLowDiskSpace), formatBytes(platform.LowSpaceThreshold)))
		})
	}

	if ui.expander != nil && ui.settings.GetExpandPlaylists() {
		fyne.Do(func() { ui.statusLabel.SetText(ui.localization.GetText(KeyExpanding)) })
		urls = ui.expander.Expand(ctx, urls)
	}

	batch, err := model.NewBatch(urls, opts)
	if err == nil {
		var job *download.Job
		job, err = ui.downloader.Start(ctx, batch)
		if err == nil {
			ui.pumpEvents(job)
			return
		}
	}

	ui.logger.Error("failed to start batch", slog.Any("error", err))
	fyne.Do(func() {
		ui.resetForm()
		if errors.Is(err, download.ErrBatchRunning) {
			ui.showWarning(ui.localization.GetText(KeyBatchRunning))
			return
		}
		ui.showError(err)
	})
}

// pumpEvents drains the job's event stream
func (ui *RootUI) pumpEvents(job *download.Job) {
	for ev := range job.Events() {
		fyne.Do(func() {
			ui.handleEvent(ev)
		})
	}
}

// handleEvent renders one batch event; it must run on the UI thread
func (ui *RootUI) handleEvent(ev model.Event) {
	l := ui.localization

	switch ev.Kind {
	case model.EventItemStarted:
		ui.progressBar.SetValue(0)
		ui.statusLabel.SetText(fmt.Sprintf(l.GetText(KeyDownloadingItem), ev.Index+1, ev.Total, shorten(ev.URL, StatusURLMaxRunes)))

	case model.EventProgress:
		ui.progressBar.SetValue(ev.Progress.Percent)
		status := fmt.Sprintf(l.GetText(KeyDownloadingItem), ev.Index+1, ev.Total, shorten(ev.URL, StatusURLMaxRunes))
		if ev.Progress.Speed != "" {
			status += MiddleDotSeparator + ev.Progress.Speed
		}
		if ev.Progress.ETA != "" {
			status += MiddleDotSeparator + fmt.Sprintf(l.GetText(KeyETA), ev.Progress.ETA)
		}
		ui.statusLabel.SetText(status)

	case model.EventItemCompleted:
		ui.progressBar.SetValue(ProgressMax)

	case model.EventItemFailed:
		// The batch keeps going while the dialog is open
		ui.showError(downloadFailure(l, ev))

	case model.EventBatchFinished:
		ui.finishBatch(ev.Result)
	}
}

// finishBatch re-enables the form and reports the outcome
func (ui *RootUI) finishBatch(result *model.BatchResult) {
	l := ui.localization
	outputDir := ui.currentOutputDir()
	ui.resetForm()

	if result == nil {
		return
	}

	if result.Cancelled() {
		dialog.ShowInformation(l.GetText(KeyBatchCancelled),
			fmt.Sprintf(l.GetText(KeyBatchSummary), result.Completed(), len(result.Items), len(result.Failed())), ui.window)
		return
	}

	dialog.ShowInformation(l.GetText(KeyBatchFinished),
		fmt.Sprintf(l.GetText(KeyBatchSummary), result.Completed(), len(result.Items), len(result.Failed())), ui.window)

	if result.Completed() > 0 && ui.settings.GetAutoRevealOnComplete() {
		ui.revealFolder(outputDir)
	}
}

// onCancelClick stops the running batch
func (ui *RootUI) onCancelClick() {
	ui.mu.Lock()
	cancel := ui.cancel
	ui.mu.Unlock()

	if cancel == nil {
		return
	}
	ui.cancelBtn.Disable()
	ui.statusLabel.SetText(ui.localization.GetText(KeyCancelling))
	cancel()
}

// Running reports whether a batch is in progress
func (ui *RootUI) Running() bool {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.running
}

func (ui *RootUI) currentOutputDir() string {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.outputDir
}

// setRunning toggles the form between idle and busy; UI thread only
func (ui *RootUI) setRunning(running bool, cancel context.CancelFunc, outputDir string) {
	if running {
		ui.downloadBtn.Disable()
		ui.cancelBtn.Enable()
	} else {
		ui.downloadBtn.Enable()
		ui.cancelBtn.Disable()
	}

	ui.mu.Lock()
	defer ui.mu.Unlock()
	if !running && ui.cancel != nil {
		ui.cancel()
	}
	ui.running = running
	ui.cancel = cancel
	ui.outputDir = outputDir
}

// resetForm returns the controls to the idle state
func (ui *RootUI) resetForm() {
	ui.progressBar.SetValue(0)
	ui.statusLabel.SetText(ui.localization.GetText(KeyReady))
	ui.setRunning(false, nil, "")
}

// revealFolder opens dir in the file manager without blocking the UI
func (ui *RootUI) revealFolder(dir string) {
	if strings.TrimSpace(dir) == "" || ui.openFolder == nil {
		return
	}
	go func() {
		if err := ui.openFolder(dir); err != nil {
			ui.logger.Warn("failed to open folder", slog.String("path", dir), slog.Any("error", err))
		}
	}()
}

func (ui *RootUI) showWarning(message string) {
	dialog.ShowInformation(ui.localization.GetText(KeyWarning), message, ui.window)
}

func (ui *RootUI) showError(err error) {
	dialog.ShowError(err, ui.window)
}

// downloadFailure is the localized error shown for a failed URL
func downloadFailure(l *Localization, ev model.Event) error {
	return goerr.New(fmt.Sprintf(l.GetText(KeyDownloadFailed), ev.URL, ev.Err),
		goerr.V("url", ev.URL), goerr.V("batch_id", ev.BatchID))
}

// shorten truncates s to limit runes
func shorten(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + EllipsisSuffix
}

// formatBytes renders a byte count with a binary unit
func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.0f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
