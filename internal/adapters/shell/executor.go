// Package shell implements the command runner of spec.md §4.2: it spawns a
// single external command directly (no shell interpretation), bounded by
// the job limiter, and reports a copy-pastable rendering of the command on
// both success-path logging and failure.
//
// Grounded on the teacher's shell.Executor (internal/adapters/shell/executor.go):
// kept is the os/exec-based spawn and the logger-facing wiring; dropped is
// the Nix-hermetic environment merge (resolveEnvironment/lookPath), since
// maek's toolchains are plain PATH-resolved compilers (spec.md §6) and
// there is no hermetic environment factory in this module's scope.
package shell

import (
	"context"
	"os"
	"os/exec"

	"maek/internal/core/domain"
	"maek/internal/core/ports"
	"maek/internal/engine/limiter"
)

var _ ports.Runner = (*Runner)(nil)

// Runner implements ports.Runner, bounding concurrent command execution to
// the job limiter's capacity (spec.md §4.3).
type Runner struct {
	logger  ports.Logger
	limiter *limiter.Limiter
}

// New creates a Runner that gates every command through limit.
func New(logger ports.Logger, limit *limiter.Limiter) *Runner {
	return &Runner{logger: logger, limiter: limit}
}

// Run implements ports.Runner.
func (r *Runner) Run(ctx context.Context, command []string, label string) error {
	return r.limiter.Run(ctx, func(ctx context.Context) error {
		return r.run(ctx, command, label)
	})
}

func (r *Runner) run(ctx context.Context, command []string, label string) error {
	rendered := Render(command)
	r.logger.Info(label + ": " + rendered)

	if len(command) == 0 {
		return domain.CommandFailedError(errEmptyCommand, rendered, -1)
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...) //nolint:gosec // command comes from the build description
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = nil

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return domain.CommandFailedError(err, rendered, exitCode)
	}
	return nil
}

var errEmptyCommand = commandError("empty command vector")

type commandError string

func (e commandError) Error() string { return string(e) }
