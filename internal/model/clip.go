package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrInvalidTimestamp = goerr.New("invalid timestamp")
	ErrInvalidClip      = goerr.New("clip end must be after clip start")
)

// Clip is an optional time range passed to yt-dlp as a download section.
// Start and End are kept as entered ("HH:MM:SS" or "mm:ss").
type Clip struct {
	Start string
	End   string
}

// IsSet reports whether both ends of the range are filled in.
// A half-filled clip is treated as no clip at all.
func (c Clip) IsSet() bool {
	return strings.TrimSpace(c.Start) != "" && strings.TrimSpace(c.End) != ""
}

// Section returns the yt-dlp section expression "*start-end", or "" when
// the clip is not set.
func (c Clip) Section() string {
	if !c.IsSet() {
		return ""
	}
	return "*" + strings.TrimSpace(c.Start) + "-" + strings.TrimSpace(c.End)
}

// Validate checks both timestamps and their order. An unset clip is valid.
func (c Clip) Validate() error {
	if !c.IsSet() {
		return nil
	}

	start, err := ParseTimestamp(c.Start)
	if err != nil {
		return err
	}
	end, err := ParseTimestamp(c.End)
	if err != nil {
		return err
	}
	if end <= start {
		return goerr.Wrap(ErrInvalidClip, "validate clip",
			goerr.V("start", c.Start), goerr.V("end", c.End))
	}
	return nil
}

// MaxClipHours bounds the hours of a timestamp
const MaxClipHours = 99

// ParseTimestamp parses "HH:MM:SS" or "mm:ss" into a duration.
// In the three-part form minutes must be below 60; seconds always are.
func ParseTimestamp(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, goerr.Wrap(ErrInvalidTimestamp, "expected HH:MM:SS or mm:ss", goerr.V("value", s))
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return 0, goerr.Wrap(ErrInvalidTimestamp, "non-numeric component", goerr.V("value", s))
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, goerr.Wrap(ErrInvalidTimestamp, err.Error(), goerr.V("value", s))
		}
		nums[i] = n
	}

	var h, m, sec int
	if len(nums) == 3 {
		h, m, sec = nums[0], nums[1], nums[2]
		if m >= 60 {
			return 0, goerr.Wrap(ErrInvalidTimestamp, "minutes out of range", goerr.V("value", s))
		}
	} else {
		m, sec = nums[0], nums[1]
	}
	if h > MaxClipHours || m > (MaxClipHours+1)*60-1 {
		return 0, goerr.Wrap(ErrInvalidTimestamp, "timestamp too large", goerr.V("value", s))
	}
	if sec >= 60 {
		return 0, goerr.Wrap(ErrInvalidTimestamp, "seconds out of range", goerr.V("value", s))
	}

	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}
