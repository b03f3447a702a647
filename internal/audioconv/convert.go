// Package audioconv converts a directory tree of lossless audio files to a
// lossy target format, mirroring the directory structure.
package audioconv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/clipset/clipset/internal/ports"
)

// Options configures a batch conversion run.
type Options struct {
	InputDir  string
	OutputDir string
	SourceExt string // without the dot, e.g. "flac"
	TargetExt string // without the dot, e.g. "mp3"
	Bitrate   string
	FFmpeg    string
}

// Summary reports the outcome of a batch run.
type Summary struct {
	Converted int
	Skipped   int
	Failed    int
	Failures  []string // input paths whose conversion failed
}

// Converter walks an input tree and transcodes matching files through the
// injected runner.
type Converter struct {
	runner ports.ToolRunner
	log    *slog.Logger
	opts   Options
}

func New(runner ports.ToolRunner, log *slog.Logger, opts Options) *Converter {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{runner: runner, log: log, opts: opts}
}

// Run converts every file under InputDir whose extension matches SourceExt
// (case-insensitive) into a mirrored path under OutputDir. Existing targets
// are skipped. A failed conversion removes its partial output and the run
// continues; a canceled context removes the in-flight partial output and the
// run stops.
func (c *Converter) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	info, err := os.Stat(c.opts.InputDir)
	if err != nil {
		return sum, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return sum, fmt.Errorf("input %s is not a directory", c.opts.InputDir)
	}

	srcExt := "." + strings.ToLower(strings.TrimPrefix(c.opts.SourceExt, "."))
	dstExt := "." + strings.TrimPrefix(c.opts.TargetExt, ".")

	walkErr := filepath.WalkDir(c.opts.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), srcExt) {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, err := filepath.Rel(c.opts.InputDir, path)
		if err != nil {
			return err
		}
		out := filepath.Join(c.opts.OutputDir, strings.TrimSuffix(rel, filepath.Ext(rel))+dstExt)

		if _, err := os.Stat(out); err == nil {
			c.log.Info("skipping, target exists", "input", rel)
			sum.Skipped++
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}

		c.log.Info("converting", "input", rel, "bitrate", c.opts.Bitrate)
		if err := c.convertOne(ctx, path, out); err != nil {
			c.removePartial(out)
			if ctx.Err() != nil {
				// Interrupt: the in-flight partial is cleaned up, then the
				// cancellation terminates the whole batch.
				return ctx.Err()
			}
			c.log.Error("conversion failed", "input", rel, "error", err)
			sum.Failed++
			sum.Failures = append(sum.Failures, path)
			return nil
		}
		sum.Converted++
		return nil
	})

	if walkErr != nil {
		return sum, walkErr
	}
	return sum, nil
}

func (c *Converter) convertOne(ctx context.Context, in, out string) error {
	args := []string{
		"-i", in,
		"-map", "0:a",
		"-map", "0:v?", // attached cover art, when present
		"-map_metadata", "0",
		"-c:v", "copy",
		"-disposition:v", "attached_pic",
		"-b:a", c.opts.Bitrate,
		"-y", out,
	}
	return c.runner.Run(ctx, c.opts.FFmpeg, args...)
}

// removePartial is best-effort: an unexpected error leaves the partial file
// behind, which the skip-if-exists check will then treat as done, so warn.
func (c *Converter) removePartial(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		c.log.Warn("could not remove partial output", "path", path, "error", err)
	}
}
