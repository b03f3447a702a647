package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/clipset/clipset/internal/clip"
)

func newCopyCommand(a *app) *cobra.Command {
	var req clip.Request
	flags := clip.CopyFlags{AudioIndex: -1}

	cmd := &cobra.Command{
		Use:   "copy <input>",
		Short: "Extract a clip without re-encoding (lossless stream copy)",
		Long: "Extract a clip using ffmpeg stream copy, preserving the original\n" +
			"codecs. Cutting is typically keyframe-aligned: the start may snap to the\n" +
			"nearest previous keyframe. The trim is always expressed as a duration so\n" +
			"the clip length stays end-start regardless of seek mode.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Input = args[0]
			if err := req.Validate(); err != nil {
				return err
			}
			// -1 doubles as the unset sentinel, so an explicitly-set
			// negative index has to be caught at the flag level
			if cmd.Flags().Changed("audio-index") && flags.AudioIndex < 0 {
				return clip.ValidationError("--audio-index must be >= 0")
			}
			opts, err := flags.Resolve()
			if err != nil {
				return err
			}

			ffmpegBin, err := a.runner.LookPath(a.cfg.Tools.FFmpeg)
			if err != nil {
				return err
			}
			ffArgs, err := clip.BuildCopyArgs(req, opts)
			if err != nil {
				return err
			}
			a.log.Info("extracting clip (stream copy)", "command", ffmpegBin+" "+strings.Join(ffArgs, " "))
			return a.runner.Run(cmd.Context(), ffmpegBin, ffArgs...)
		},
	}

	cmd.Flags().StringVarP(&req.Start, "start", "s", "", "Start time (seconds or [HH:]MM:SS[.fraction])")
	cmd.Flags().StringVarP(&req.End, "end", "e", "", "End time (mutually exclusive with --duration)")
	cmd.Flags().StringVarP(&req.Duration, "duration", "d", "", "Clip duration (mutually exclusive with --end)")
	cmd.Flags().StringVarP(&req.Output, "output", "o", "", "Output file (default: <input>_clip_<window>.<ext>)")
	cmd.Flags().BoolVar(&flags.FastSeek, "fast-seek", false, "Seek before the input: fast, keyframe-aligned (default)")
	cmd.Flags().BoolVar(&flags.AccurateSeek, "accurate-seek", false, "Seek after the input: slower, closer to the requested start")
	cmd.Flags().BoolVar(&flags.MapAll, "map-all", false, "Copy all streams (default)")
	cmd.Flags().BoolVar(&flags.MainOnly, "main-only", false, "Keep only ffmpeg's default-selected streams")
	cmd.Flags().IntVar(&flags.AudioIndex, "audio-index", -1, "With --main-only, keep one audio track by 0-based index")
	cmd.Flags().StringVar(&flags.AudioLang, "audio-lang", "", "With --main-only, keep one audio track by language tag, e.g. ita")
	cmd.Flags().BoolVar(&flags.KeepTimestamps, "keep-timestamps", false, "Do not reset stream timestamps to zero")

	return cmd
}
