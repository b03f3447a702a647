package ports

import (
	"context"
	"fmt"
	"strings"
)

// ToolRunner abstracts execution of the external media tools (ffmpeg,
// ffprobe) so tests can substitute an invocation recorder instead of
// spawning real processes.
type ToolRunner interface {
	// Run executes the tool, streaming its stdout to the caller's stdout
	// and capturing stderr for diagnostics. It blocks until the tool exits.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes the tool and returns its captured stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// LookPath resolves an executable name against the search path.
	LookPath(name string) (string, error)
}

// ExitError reports a tool that ran but exited non-zero. Code is forwarded
// as the process exit code of the invoking command.
type ExitError struct {
	Name   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Name, e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\n" + s
	}
	return msg
}
