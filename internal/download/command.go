package download

import (
	"path/filepath"

	"github.com/ytget/yt-batch/internal/model"
)

// yt-dlp flags and values
const (
	FormatFlag         = "-f"
	OutputFlag         = "-o"
	MergeFormatFlag    = "--merge-output-format"
	MergeFormatMP4     = "mp4"
	NoOverwritesFlag   = "--no-overwrites"
	ExtractAudioFlag   = "--extract-audio"
	AudioFormatFlag    = "--audio-format"
	AudioFormatMP3     = "mp3"
	SectionsFlag       = "--download-sections"
	UpdateFlag         = "-U"
	OutputNameTemplate = "%(title).70s.%(ext)s"
)

// OutputTemplate returns the yt-dlp output template for a directory:
// the title truncated to 70 characters followed by the real extension.
func OutputTemplate(outputDir string) string {
	return filepath.Join(outputDir, OutputNameTemplate)
}

// BuildArgs builds the yt-dlp argument list for a single request.
// The clip section is emitted only when both ends are set.
func BuildArgs(req model.DownloadRequest) []string {
	args := []string{
		req.URL,
		FormatFlag, req.Quality.Code,
		OutputFlag, OutputTemplate(req.OutputDir),
	}

	if req.Format == model.FormatVideo {
		args = append(args, MergeFormatFlag, MergeFormatMP4)
	}

	args = append(args, NoOverwritesFlag)

	if req.Format == model.FormatAudio {
		args = append(args, ExtractAudioFlag, AudioFormatFlag, AudioFormatMP3)
	}

	if section := req.Clip.Section(); section != "" {
		args = append(args, SectionsFlag, section)
	}

	return args
}
