package ui

import (
	"errors"
	"strings"

	"github.com/ytget/yt-batch/internal/model"
)

// FormInput is a snapshot of the form fields taken when Download is pressed
type FormInput struct {
	URLText      string
	ClipStart    string
	ClipEnd      string
	QualityLabel string
	Format       string
	OutputDir    string
}

// BatchInput turns the snapshot into the URL list and the immutable batch
// options. Nothing is started when an error is returned.
func (in FormInput) BatchInput() ([]string, model.BatchOptions, error) {
	urls := model.ParseURLList(in.URLText)
	if len(urls) == 0 {
		return nil, model.BatchOptions{}, model.ErrNoURLs
	}

	quality, err := model.LookupQuality(in.QualityLabel)
	if err != nil {
		return nil, model.BatchOptions{}, err
	}
	format, err := model.ParseFormat(in.Format)
	if err != nil {
		return nil, model.BatchOptions{}, err
	}

	opts := model.BatchOptions{
		Quality:   quality,
		Format:    format,
		Clip:      model.Clip{Start: strings.TrimSpace(in.ClipStart), End: strings.TrimSpace(in.ClipEnd)},
		OutputDir: strings.TrimSpace(in.OutputDir),
	}
	if err := opts.Validate(); err != nil {
		return nil, model.BatchOptions{}, err
	}

	return urls, opts, nil
}

// validationTextKey maps a form error to the localized warning shown to the user
func validationTextKey(err error) string {
	switch {
	case errors.Is(err, model.ErrNoURLs):
		return KeyPleaseEnterURL
	case errors.Is(err, model.ErrNoOutputDir):
		return KeyChooseOutputDir
	case errors.Is(err, model.ErrInvalidTimestamp):
		return KeyInvalidTimestamp
	case errors.Is(err, model.ErrInvalidClip):
		return KeyInvalidClip
	case errors.Is(err, model.ErrUnknownQuality):
		return KeyQualityPreset
	default:
		return KeyInvalidInput
	}
}
