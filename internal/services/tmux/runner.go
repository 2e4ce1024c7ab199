package tmux

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CommandRunner abstracts command execution for testing
type CommandRunner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// ExecRunner runs tmux through os/exec
type ExecRunner struct {
	// Binary defaults to "tmux"
	Binary string
	// Timeout applies when ctx carries no deadline; defaults to 5s
	Timeout time.Duration
}

// Run executes one tmux command and returns its stdout. A failing command's
// stderr is folded into the error.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		timeout := r.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	binary := r.Binary
	if binary == "" {
		binary = "tmux"
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return string(out), fmt.Errorf("%w: %s", err, msg)
		}
		return string(out), err
	}
	return string(out), nil
}
