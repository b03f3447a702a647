package exectool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/clipset/clipset/internal/ports"
)

// Adapter runs external tools via os/exec.
type Adapter struct {
	log    *slog.Logger
	stdout io.Writer
}

func New(log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{log: log, stdout: os.Stdout}
}

func (a *Adapter) Run(ctx context.Context, name string, args ...string) error {
	a.log.Debug("exec", "tool", name, "args", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = a.stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return &ports.ExitError{Name: name, Code: exitErr.ExitCode(), Stderr: stderr.String()}
	}
	return fmt.Errorf("run %s: %w", name, err)
}

func (a *Adapter) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	a.log.Debug("exec", "tool", name, "args", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return out, &ports.ExitError{Name: name, Code: exitErr.ExitCode(), Stderr: string(exitErr.Stderr)}
	}
	return out, fmt.Errorf("run %s: %w", name, err)
}

func (a *Adapter) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", name, err)
	}
	return path, nil
}

var _ ports.ToolRunner = (*Adapter)(nil)
