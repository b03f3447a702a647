// Package timespec parses and formats ffmpeg-style time values.
package timespec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseError reports a time string that matches none of the accepted shapes.
type ParseError struct {
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid time format %q", e.Value)
}

// Parse converts a time string to seconds. Accepted shapes:
//
//	plain seconds ("600", "12.5")
//	MM:SS[.fraction] ("10:30")
//	HH:MM:SS[.fraction] ("1:02:03.5")
func Parse(value string) (float64, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, &ParseError{Value: value}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, &ParseError{Value: value}
	}

	seconds, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil {
		return 0, &ParseError{Value: value}
	}
	minutes, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return 0, &ParseError{Value: value}
	}
	total := float64(minutes)*60 + seconds
	if len(parts) == 3 {
		hours, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, &ParseError{Value: value}
		}
		total += float64(hours) * 3600
	}
	return total, nil
}

// Format renders seconds as HH:MM:SS, appending milliseconds only when the
// value is fractional. The value is rounded to millisecond precision first
// so a rounded-up fraction carries into the next second instead of printing
// a seconds field of 60. Negative values clamp to zero.
func Format(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	ms := int64(math.Round(seconds * 1000))
	total := ms / 1000
	frac := ms % 1000
	hh := total / 3600
	mm := (total % 3600) / 60
	ss := total % 60
	if frac > 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", hh, mm, ss, frac)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hh, mm, ss)
}

// Window computes the duration of the [start, end) interval. The result must
// be strictly positive.
func Window(start, end string) (float64, error) {
	s, err := Parse(start)
	if err != nil {
		return 0, err
	}
	e, err := Parse(end)
	if err != nil {
		return 0, err
	}
	d := e - s
	if d <= 0 {
		return 0, fmt.Errorf("end time %q must be greater than start time %q", end, start)
	}
	return d, nil
}
