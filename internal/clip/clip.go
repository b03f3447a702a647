// Package clip builds ffmpeg argument lists for clip extraction.
package clip

import (
	"errors"
	"fmt"
	"strings"

	"github.com/clipset/clipset/internal/timespec"
	"golang.org/x/text/language"
)

// ValidationError reports conflicting or incomplete request parameters. The
// CLI maps it to the usage exit code; no subprocess is spawned.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Request describes one clip extraction. Time values keep the user's
// original spelling; they are validated up front and passed to ffmpeg
// verbatim where possible.
type Request struct {
	Input    string
	Start    string
	End      string
	Duration string
	Output   string
}

// Validate checks the request invariants: start is required, and exactly one
// of end/duration is set. All time values must parse, and an end time must
// lie strictly after the start.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Input) == "" {
		return ValidationError("input file is required")
	}
	if strings.TrimSpace(r.Start) == "" {
		return ValidationError("start time is required")
	}
	if _, err := timespec.Parse(r.Start); err != nil {
		return err
	}
	switch {
	case r.End == "" && r.Duration == "":
		return ValidationError("either an end time or a duration is required")
	case r.End != "" && r.Duration != "":
		return ValidationError("end time and duration are mutually exclusive")
	case r.Duration != "":
		d, err := timespec.Parse(r.Duration)
		if err != nil {
			return err
		}
		if d <= 0 {
			return ValidationError("duration must be greater than zero")
		}
	default:
		if _, err := timespec.Window(r.Start, r.End); err != nil {
			return asUsage(err)
		}
	}
	return nil
}

// asUsage classifies window-resolution failures: parse errors pass through,
// a non-positive window becomes a validation error.
func asUsage(err error) error {
	var perr *timespec.ParseError
	if errors.As(err, &perr) {
		return err
	}
	return ValidationError(err.Error())
}

// ValidateLang checks that an audio language selector is a parseable
// language code. The literal lowercased tag is what gets matched against the
// container metadata: container tags are ISO 639-2/B, which does not always
// round-trip through BCP 47 (chi vs zho), so the tag is not rewritten.
func ValidateLang(tag string) (string, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if _, err := language.Parse(tag); err != nil {
		return "", ValidationError(fmt.Sprintf("invalid audio language tag %q", tag))
	}
	return tag, nil
}
