package ui

// Package ui contains the Fyne-based desktop form for batch downloads.
// It turns the form into an immutable batch, starts it on the download
// service and renders the job's event stream on the UI thread. All UI
// strings are localized via Localization.
