package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clipset/clipset/internal/audioconv"
)

func newAudioCommand(a *app) *cobra.Command {
	var (
		bitrate   string
		sourceExt string
		targetExt string
	)

	cmd := &cobra.Command{
		Use:   "audio <input-dir> <output-dir>",
		Short: "Batch-convert lossless audio files to a lossy format",
		Long: "Walk the input directory tree and convert every matching audio file,\n" +
			"mirroring the directory structure under the output root. Metadata and\n" +
			"embedded cover art are preserved. Existing targets are skipped, and a\n" +
			"failed file does not abort the rest of the batch.",
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			audioCfg := a.cfg.Audio
			if cmd.Flags().Changed("bitrate") {
				audioCfg.Bitrate = bitrate
			}
			if cmd.Flags().Changed("source-ext") {
				audioCfg.SourceExt = sourceExt
			}
			if cmd.Flags().Changed("target-ext") {
				audioCfg.TargetExt = targetExt
			}

			ffmpegBin, err := a.runner.LookPath(a.cfg.Tools.FFmpeg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			conv := audioconv.New(a.runner, a.log, audioconv.Options{
				InputDir:  args[0],
				OutputDir: args[1],
				SourceExt: audioCfg.SourceExt,
				TargetExt: audioCfg.TargetExt,
				Bitrate:   audioCfg.Bitrate,
				FFmpeg:    ffmpegBin,
			})
			sum, err := conv.Run(ctx)
			printSummary(cmd.OutOrStdout(), sum)
			return err
		},
	}

	cmd.Flags().StringVar(&bitrate, "bitrate", "", "Target audio bitrate (default: 320k)")
	cmd.Flags().StringVar(&sourceExt, "source-ext", "", "Source file extension (default: flac)")
	cmd.Flags().StringVar(&targetExt, "target-ext", "", "Target file extension (default: mp3)")

	return cmd
}

func printSummary(w io.Writer, sum audioconv.Summary) {
	if stdoutIsTerminal() {
		fmt.Fprintln(w, renderSummaryTable(sum))
	} else {
		fmt.Fprintf(w, "converted=%d skipped=%d failed=%d\n", sum.Converted, sum.Skipped, sum.Failed)
	}
	for _, f := range sum.Failures {
		fmt.Fprintf(w, "failed: %s\n", f)
	}
}
