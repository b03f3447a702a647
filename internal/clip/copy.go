package clip

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/clipset/clipset/internal/timespec"
)

// MapMode selects which streams the lossless extractor keeps.
type MapMode int

const (
	// MapAll copies every stream from the input (-map 0). Default.
	MapAll MapMode = iota
	// MapDefault keeps only ffmpeg's default-selected streams (no -map).
	MapDefault
	// MapAudioTrack keeps the first video stream plus one chosen audio track.
	MapAudioTrack
)

// CopyFlags mirrors the raw CLI flags of the lossless extractor.
type CopyFlags struct {
	FastSeek       bool
	AccurateSeek   bool
	MapAll         bool
	MainOnly       bool
	AudioIndex     int // -1 when unset
	AudioLang      string
	KeepTimestamps bool
}

// CopyOptions is the resolved, conflict-free form of CopyFlags.
type CopyOptions struct {
	AccurateSeek   bool
	Map            MapMode
	AudioIndex     int
	AudioLang      string
	KeepTimestamps bool
}

// Resolve validates flag combinations and produces CopyOptions. Fast seek
// and copying all streams are the defaults.
func (f CopyFlags) Resolve() (CopyOptions, error) {
	if f.FastSeek && f.AccurateSeek {
		return CopyOptions{}, ValidationError("choose only one of --fast-seek or --accurate-seek")
	}
	if f.AudioIndex < -1 {
		return CopyOptions{}, ValidationError("--audio-index must be >= 0")
	}
	if f.AudioIndex >= 0 && f.AudioLang != "" {
		return CopyOptions{}, ValidationError("choose only one of --audio-index or --audio-lang")
	}

	audioChosen := f.AudioIndex >= 0 || f.AudioLang != ""
	mapAll := !f.MainOnly
	if f.MapAll {
		mapAll = true
	}
	if mapAll && audioChosen {
		// -map 0 would keep every audio track anyway, contradicting the choice.
		return CopyOptions{}, ValidationError("--audio-index/--audio-lang cannot be used with --map-all")
	}

	opts := CopyOptions{
		AccurateSeek:   f.AccurateSeek,
		AudioIndex:     f.AudioIndex,
		KeepTimestamps: f.KeepTimestamps,
	}
	switch {
	case mapAll:
		opts.Map = MapAll
	case audioChosen:
		opts.Map = MapAudioTrack
		if f.AudioLang != "" {
			lang, err := ValidateLang(f.AudioLang)
			if err != nil {
				return CopyOptions{}, err
			}
			opts.AudioLang = lang
		}
	default:
		opts.Map = MapDefault
	}
	return opts, nil
}

// BuildCopyArgs constructs the ffmpeg argument list for the lossless
// stream-copy extractor. The trim is always expressed as -t <duration> so the
// emitted clip length equals end-start even when a fast seek snaps the start
// to an earlier keyframe.
func BuildCopyArgs(r Request, opts CopyOptions) ([]string, error) {
	trim := r.Duration
	if trim == "" {
		d, err := timespec.Window(r.Start, r.End)
		if err != nil {
			return nil, asUsage(err)
		}
		trim = timespec.Format(d)
	}

	args := []string{"-hide_banner"}

	// Fast seek places -ss before -i: keyframe-aligned but cheap. Accurate
	// seek places it after the input.
	if !opts.AccurateSeek {
		args = append(args, "-ss", r.Start)
	}
	// Regenerate missing/odd timestamps; reduces timestamp trouble on copy.
	args = append(args, "-fflags", "+genpts", "-i", r.Input)
	if opts.AccurateSeek {
		args = append(args, "-ss", r.Start)
	}

	args = append(args, "-t", trim)

	switch opts.Map {
	case MapAll:
		args = append(args, "-map", "0")
	case MapAudioTrack:
		args = append(args, "-map", "0:v:0")
		if opts.AudioLang != "" {
			args = append(args, "-map", "0:a:m:language:"+opts.AudioLang)
		} else {
			args = append(args, "-map", fmt.Sprintf("0:a:%d", opts.AudioIndex))
		}
	}

	args = append(args, "-c", "copy")
	if !opts.KeepTimestamps {
		args = append(args, "-reset_timestamps", "1")
	}
	args = append(args, "-avoid_negative_ts", "make_zero")

	out := r.Output
	if out == "" {
		out = DefaultCopyOutput(r)
	}
	return append(args, "-y", out), nil
}

// DefaultCopyOutput derives an output path next to the input, tagged with the
// sanitized time window and keeping the input container extension.
func DefaultCopyOutput(r Request) string {
	var tag string
	if r.Duration != "" {
		tag = sanitizeTag(r.Start) + "_d" + sanitizeTag(r.Duration)
	} else {
		tag = sanitizeTag(r.Start) + "_to_" + sanitizeTag(r.End)
	}

	ext := filepath.Ext(r.Input)
	if ext == "" {
		ext = ".mkv"
	}
	stem := strings.TrimSuffix(filepath.Base(r.Input), ext)
	name := fmt.Sprintf("%s_clip_%s%s", stem, tag, ext)
	return filepath.Join(filepath.Dir(r.Input), name)
}

// sanitizeTag makes a time string safe for use inside a file name.
func sanitizeTag(s string) string {
	replacer := strings.NewReplacer(":", "-", " ", "", "/", "-", "\\", "-")
	return replacer.Replace(strings.TrimSpace(s))
}
