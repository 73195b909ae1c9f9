// Package execute runs yt-dlp subprocesses.
package execute

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"ytproxy/internal/domain/consts"
	"ytproxy/internal/domain/errconsts"
	"ytproxy/internal/models"
	"ytproxy/internal/utils/logging"

	"github.com/alessio/shellescape"
)

// Executor runs yt-dlp to completion and captures its output.
type Executor interface {
	Run(ctx context.Context, args []string) (*models.InvocationResult, error)
}

// Ytdlp invokes the yt-dlp binary with an explicit argument vector, never through a shell.
type Ytdlp struct {
	Bin string
	Dir string
}

// NewYtdlp returns an executor for the binary, run from dir.
func NewYtdlp(bin, dir string) *Ytdlp {
	return &Ytdlp{Bin: bin, Dir: dir}
}

// Command builds a configured command.
//
// The child gets its own process group and cancelling ctx SIGKILLs the whole group.
func (y *Ytdlp) Command(ctx context.Context, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, y.Bin, args...)
	cmd.Dir = y.Dir

	// Allow for binaries in the working directory
	if errors.Is(cmd.Err, exec.ErrDot) {
		cmd.Err = nil
	}

	setProcGroup(cmd)
	cmd.Cancel = func() error {
		return killGroup(cmd)
	}
	cmd.WaitDelay = consts.ProcessWaitDelay

	logging.D(1, "Built yt-dlp command: %s", shellescape.QuoteCommand(cmd.Args))
	return cmd
}

// Run executes yt-dlp and waits for it to exit.
//
// A non-zero exit is not an error, it is reported through the result. Errors are
// returned when the process cannot start or ctx ends first.
func (y *Ytdlp) Run(ctx context.Context, args []string) (*models.InvocationResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := y.Command(ctx, args)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf(errconsts.YTDLPFailure, err)
		}
	}

	return &models.InvocationResult{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}, nil
}
