package download

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/ytget/yt-batch/internal/model"
)

// Progress line markers
const (
	DownloadMarker = "[download]"
	PercentMarker  = "%"
)

var (
	speedRegex = regexp.MustCompile(`\bat\s+(\S+/s)`)
	etaRegex   = regexp.MustCompile(`\bETA\s+([0-9:]+)`)
)

// ParseProgress extracts the percentage from a yt-dlp progress line such as
// "[download]  42.5% of 10.00MiB at 1.20MiB/s ETA 00:07".
//
// The line must contain "[download]" and "%"; the last whitespace separated
// token before the first "%" is parsed as the percentage. ok is false when
// the line does not match or the value is not a number within 0..100.
func ParseProgress(line string) (p model.Progress, ok bool) {
	if !strings.Contains(line, DownloadMarker) {
		return model.Progress{}, false
	}
	idx := strings.Index(line, PercentMarker)
	if idx < 0 {
		return model.Progress{}, false
	}

	fields := strings.Fields(line[:idx])
	if len(fields) == 0 {
		return model.Progress{}, false
	}
	percent, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil || percent < 0 || percent > 100 {
		return model.Progress{}, false
	}

	p.Percent = percent
	if m := speedRegex.FindStringSubmatch(line); len(m) > 1 {
		p.Speed = m[1]
	}
	if m := etaRegex.FindStringSubmatch(line); len(m) > 1 {
		p.ETA = m[1]
	}
	return p, true
}

// scanOutputLines is a bufio.SplitFunc that splits on '\n' and on bare '\r'.
// yt-dlp redraws its progress line with carriage returns when it is not
// asked for --newline output.
func scanOutputLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		// Treat "\r\n" as a single break
		if data[i] == '\r' {
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if !atEOF {
				// Need one more byte to tell "\r" from "\r\n"
				return 0, nil, nil
			}
		}
		return i + 1, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
