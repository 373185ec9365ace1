package ui

import (
	"errors"
	"testing"

	"github.com/ytget/yt-batch/internal/model"
)

func validInput() FormInput {
	return FormInput{
		URLText:      "https://youtu.be/a\n\n  https://youtu.be/b  \n# skipped\n",
		QualityLabel: "720p (HD)",
		Format:       string(model.FormatAudio),
		OutputDir:    "/tmp/out",
	}
}

func TestFormInput_BatchInput(t *testing.T) {
	urls, opts, err := validInput().BatchInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(urls) != 2 || urls[0] != "https://youtu.be/a" || urls[1] != "https://youtu.be/b" {
		t.Errorf("unexpected urls: %v", urls)
	}
	if opts.Quality.Code != "18" {
		t.Errorf("expected quality code 18, got %s", opts.Quality.Code)
	}
	if opts.Format != model.FormatAudio {
		t.Errorf("expected Audio, got %s", opts.Format)
	}
	if opts.Clip.IsSet() {
		t.Error("expected no clip")
	}
}

func TestFormInput_BatchInputErrors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*FormInput)
		wantErr error
		wantKey string
	}{
		{
			name:    "no urls",
			modify:  func(in *FormInput) { in.URLText = " \n # only a comment\n" },
			wantErr: model.ErrNoURLs,
			wantKey: KeyPleaseEnterURL,
		},
		{
			name:    "no output dir",
			modify:  func(in *FormInput) { in.OutputDir = "  " },
			wantErr: model.ErrNoOutputDir,
			wantKey: KeyChooseOutputDir,
		},
		{
			name: "malformed timestamp",
			modify: func(in *FormInput) {
				in.ClipStart = "1:2:3:4"
				in.ClipEnd = "00:00:20"
			},
			wantErr: model.ErrInvalidTimestamp,
			wantKey: KeyInvalidTimestamp,
		},
		{
			name: "end before start",
			modify: func(in *FormInput) {
				in.ClipStart = "00:01:00"
				in.ClipEnd = "00:00:30"
			},
			wantErr: model.ErrInvalidClip,
			wantKey: KeyInvalidClip,
		},
		{
			name:    "unknown quality",
			modify:  func(in *FormInput) { in.QualityLabel = "8K" },
			wantErr: model.ErrUnknownQuality,
			wantKey: KeyQualityPreset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(&in)

			_, _, err := in.BatchInput()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if key := validationTextKey(err); key != tt.wantKey {
				t.Errorf("expected text key %s, got %s", tt.wantKey, key)
			}
		})
	}
}

func TestFormInput_HalfClipIgnored(t *testing.T) {
	in := validInput()
	in.ClipStart = "00:00:10"

	_, opts, err := in.BatchInput()
	if err != nil {
		t.Fatalf("half clip must not be an error: %v", err)
	}
	if opts.Clip.Section() != "" {
		t.Errorf("expected no section, got %s", opts.Clip.Section())
	}
}
