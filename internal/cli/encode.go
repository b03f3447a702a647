package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clipset/clipset/internal/clip"
	"github.com/clipset/clipset/internal/config"
	"github.com/clipset/clipset/internal/ffprobe"
)

func newEncodeCommand(a *app) *cobra.Command {
	var req clip.Request
	var (
		preset       string
		crf          int
		audioBitrate string
		tonemap      string
	)

	cmd := &cobra.Command{
		Use:   "encode <input>",
		Short: "Extract a clip, re-encoding with HDR tonemapping when needed",
		Long: "Extract a clip from a video file and re-encode it. The input is probed\n" +
			"first; when the video stream carries bt2020 color metadata the configured\n" +
			"tonemap filter is applied so the clip plays correctly on SDR displays.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Input = args[0]
			if err := req.Validate(); err != nil {
				return err
			}

			enc := a.cfg.Encode
			if cmd.Flags().Changed("preset") {
				enc.Preset = preset
			}
			if cmd.Flags().Changed("crf") {
				enc.CRF = crf
			}
			if cmd.Flags().Changed("audio-bitrate") {
				enc.AudioBitrate = audioBitrate
			}
			if cmd.Flags().Changed("tonemap") {
				enc.TonemapFilter = tonemap
			}

			return runEncode(cmd.Context(), a, req, enc)
		},
	}

	cmd.Flags().StringVarP(&req.Start, "start", "s", "", "Start time (seconds or [HH:]MM:SS[.fraction])")
	cmd.Flags().StringVarP(&req.End, "end", "e", "", "End time (mutually exclusive with --duration)")
	cmd.Flags().StringVarP(&req.Duration, "duration", "d", "", "Clip duration (mutually exclusive with --end)")
	cmd.Flags().StringVarP(&req.Output, "output", "o", "", "Output file (default: output.mp4)")
	cmd.Flags().StringVar(&preset, "preset", "", "x264 preset override")
	cmd.Flags().IntVar(&crf, "crf", 0, "Quality factor override (0-51)")
	cmd.Flags().StringVar(&audioBitrate, "audio-bitrate", "", "Audio bitrate override")
	cmd.Flags().StringVar(&tonemap, "tonemap", "", "Tonemap filter chain override")

	return cmd
}

func runEncode(ctx context.Context, a *app, req clip.Request, enc config.Encode) error {
	ffprobeBin, err := a.runner.LookPath(a.cfg.Tools.FFprobe)
	if err != nil {
		return err
	}
	ffmpegBin, err := a.runner.LookPath(a.cfg.Tools.FFmpeg)
	if err != nil {
		return err
	}

	report, err := ffprobe.Inspect(ctx, a.runner, ffprobeBin, req.Input)
	if err != nil {
		return err
	}
	video, ok := report.FirstVideoStream()
	if !ok {
		return fmt.Errorf("no video stream found in %s", req.Input)
	}

	hdr := video.IsHDR()
	if hdr {
		a.log.Info("HDR source detected, tonemapping to SDR",
			"color_space", video.ColorSpace,
			"color_primaries", video.ColorPrimaries)
	}

	args := clip.BuildEncodeArgs(req, hdr, enc)
	a.log.Info("extracting clip", "command", ffmpegBin+" "+strings.Join(args, " "))
	return a.runner.Run(ctx, ffmpegBin, args...)
}
