package pdfpage

import (
	"context"
	"os/exec"
)

// CommandExecutor abstracts running external commands so tests can mock
// pdfinfo and ghostscript execution.
type CommandExecutor interface {
	// Run executes a command and returns its standard output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	// RunCombined executes a command and returns its combined standard
	// output and standard error.
	RunCombined(ctx context.Context, name string, args ...string) ([]byte, error)
}

type defaultExecutor struct{}

func (defaultExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (defaultExecutor) RunCombined(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
