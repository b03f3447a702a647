package clip

import (
	"strconv"

	"github.com/clipset/clipset/internal/config"
)

// BuildEncodeArgs constructs the ffmpeg argument list for the re-encoding
// extractor. The seek flag goes before the input; an explicit duration wins
// over an end time because a duration is unambiguous while an end time
// combined with a snapped start could drift. When hdr is set the tonemap
// filter chain is inserted ahead of the encoding parameters.
func BuildEncodeArgs(r Request, hdr bool, enc config.Encode) []string {
	args := []string{"-ss", r.Start, "-i", r.Input}

	if r.Duration != "" {
		args = append(args, "-t", r.Duration)
	} else {
		args = append(args, "-to", r.End)
	}

	if hdr {
		args = append(args, "-vf", enc.TonemapFilter)
	}

	args = append(args,
		"-c:v", enc.VideoCodec,
		"-preset", enc.Preset,
		"-crf", strconv.Itoa(enc.CRF),
		"-pix_fmt", enc.PixelFormat,
		"-c:a", enc.AudioCodec,
		"-b:a", enc.AudioBitrate,
	)

	out := r.Output
	if out == "" {
		out = enc.DefaultOutput
	}
	return append(args, out)
}
