package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// QualityPreset maps a human readable label to a yt-dlp format selector
type QualityPreset struct {
	Label string
	Code  string
}

// Format selects between keeping the video or extracting audio only
type Format string

const (
	FormatVideo Format = "Video"
	FormatAudio Format = "Audio"
)

// DefaultQualityLabel is the preset selected on first launch
const DefaultQualityLabel = "Best Quality"

// Input errors
var (
	ErrUnknownQuality = goerr.New("unknown quality preset")
	ErrUnknownFormat  = goerr.New("unknown format")
)

// qualityPresets is the fixed label -> format code table, in display order.
var qualityPresets = []QualityPreset{
	{Label: "Best Quality", Code: "bestvideo+bestaudio"},
	{Label: "1440p (2K)", Code: "137+bestaudio"},
	{Label: "1080p (HD)", Code: "22+bestaudio"},
	{Label: "720p (HD)", Code: "18"},
	{Label: "480p", Code: "135"},
	{Label: "360p", Code: "134"},
	{Label: "240p", Code: "133"},
}

// QualityLabels returns preset labels in display order
func QualityLabels() []string {
	labels := make([]string, 0, len(qualityPresets))
	for _, p := range qualityPresets {
		labels = append(labels, p.Label)
	}
	return labels
}

// LookupQuality finds a preset by its label
func LookupQuality(label string) (QualityPreset, error) {
	for _, p := range qualityPresets {
		if p.Label == label {
			return p, nil
		}
	}
	return QualityPreset{}, goerr.Wrap(ErrUnknownQuality, "lookup quality", goerr.V("label", label))
}

// Formats returns the selectable formats
func Formats() []Format {
	return []Format{FormatVideo, FormatAudio}
}

// ParseFormat parses a format name case-insensitively
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "video":
		return FormatVideo, nil
	case "audio":
		return FormatAudio, nil
	}
	return "", goerr.Wrap(ErrUnknownFormat, "parse format", goerr.V("format", s))
}
