// Package ffprobe provides a typed wrapper around ffprobe stream reports.
package ffprobe

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/clipset/clipset/internal/ports"
)

// Report is the parsed output of an ffprobe inspection.
type Report struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index          int               `json:"index"`
	CodecName      string            `json:"codec_name"`
	CodecType      string            `json:"codec_type"`
	PixFmt         string            `json:"pix_fmt"`
	ColorSpace     string            `json:"color_space"`
	ColorPrimaries string            `json:"color_primaries"`
	ColorTransfer  string            `json:"color_transfer"`
	Tags           map[string]string `json:"tags"`
}

// Format captures container-level metadata.
type Format struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

// Inspect executes ffprobe against the provided path and parses the report.
func Inspect(ctx context.Context, runner ports.ToolRunner, binary, path string) (Report, error) {
	if strings.TrimSpace(path) == "" {
		return Report{}, errors.New("ffprobe inspect: empty path")
	}
	out, err := runner.Output(ctx, binary,
		"-v", "error",
		"-hide_banner",
		"-show_format",
		"-show_streams",
		"-of", "json",
		"--", path,
	)
	if err != nil {
		return Report{}, fmt.Errorf("ffprobe inspect %s: %w", path, err)
	}
	return Parse(out)
}

// Parse decodes a probe report. JSON output is decoded structurally; when the
// payload is not JSON (builds that ignore the output-format flag), the
// sectioned [STREAM] writer format is scanned instead.
func Parse(out []byte) (Report, error) {
	var r Report
	if err := json.Unmarshal(out, &r); err == nil {
		return r, nil
	}
	return parseSections(out), nil
}

// parseSections scans ffprobe's default sectioned writer output: repeated
// [STREAM]...[/STREAM] blocks of key=value lines. Lines without "=" are
// ignored; blocks missing their closing marker are dropped.
func parseSections(out []byte) Report {
	var r Report
	var attrs map[string]string

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "[STREAM]":
			attrs = make(map[string]string)
		case line == "[/STREAM]":
			if attrs != nil {
				r.Streams = append(r.Streams, streamFromAttrs(attrs))
				attrs = nil
			}
		case attrs != nil && strings.Contains(line, "="):
			key, value, _ := strings.Cut(line, "=")
			attrs[key] = value
		}
	}
	return r
}

func streamFromAttrs(attrs map[string]string) Stream {
	s := Stream{
		CodecName:      attrs["codec_name"],
		CodecType:      attrs["codec_type"],
		PixFmt:         attrs["pix_fmt"],
		ColorSpace:     attrs["color_space"],
		ColorPrimaries: attrs["color_primaries"],
		ColorTransfer:  attrs["color_transfer"],
	}
	if idx, err := strconv.Atoi(attrs["index"]); err == nil {
		s.Index = idx
	}
	for key, value := range attrs {
		name, ok := strings.CutPrefix(key, "TAG:")
		if !ok {
			continue
		}
		if s.Tags == nil {
			s.Tags = make(map[string]string)
		}
		s.Tags[name] = value
	}
	return s
}

// FirstVideoStream returns the first stream whose codec type is video.
func (r Report) FirstVideoStream() (Stream, bool) {
	for _, s := range r.Streams {
		if strings.EqualFold(s.CodecType, "video") {
			return s, true
		}
	}
	return Stream{}, false
}

// IsHDR classifies the stream as HDR when both the color space and color
// primaries report a bt2020 variant. Streams missing either attribute are
// treated as SDR; probe output frequently omits color metadata.
func (s Stream) IsHDR() bool {
	return strings.Contains(s.ColorSpace, "bt2020") &&
		strings.Contains(s.ColorPrimaries, "bt2020")
}
