package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDuration renders d as m:ss, or h:mm:ss from one hour up.
// Fractions of a second are dropped; negative durations get a leading '-'.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%d:%02d", sign, m, s)
}

// maxClockSeconds is the largest whole-second count a time.Duration holds.
const maxClockSeconds = int64(1<<63-1) / int64(time.Second)

// ParseClock parses "ss", "m:ss" or "h:mm:ss".
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.Split(s, ":")
	if len(parts) == 0 || len(parts) > 3 || s == "" {
		return 0, fmt.Errorf("invalid clock %q", s)
	}

	var total int64
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid clock %q: bad field %q", s, p)
		}
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("invalid clock %q: field %q out of range", s, p)
		}
		if n > maxClockSeconds || total > (maxClockSeconds-n)/60 {
			return 0, fmt.Errorf("invalid clock %q: too large", s)
		}
		total = total*60 + n
	}

	d := time.Duration(total) * time.Second
	if neg {
		d = -d
	}
	return d, nil
}
