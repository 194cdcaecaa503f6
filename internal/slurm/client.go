// Package slurm wraps the cluster's Slurm command-line tools for job
// submission, inspection and cancellation.
package slurm

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Client abstracts the Slurm operations the CLI and MCP handlers need, so
// they can be tested without a scheduler.
type Client interface {
	// Submit runs a full launch command through the shell and returns its
	// combined stdout (the launch summary plus the sbatch confirmation).
	Submit(ctx context.Context, command string) (string, error)
	// Show returns the one-line scontrol record for a job.
	Show(ctx context.Context, jobID string) (string, error)
	// Cancel stops a job via scancel.
	Cancel(ctx context.Context, jobID string) error
}

// CLI is the real Client, shelling out to bash/scontrol/scancel.
type CLI struct{}

// NewCLI creates a Slurm command-line client.
func NewCLI() *CLI {
	return &CLI{}
}

func (c *CLI) Submit(ctx context.Context, command string) (string, error) {
	return run(ctx, "bash", "-c", command)
}

func (c *CLI) Show(ctx context.Context, jobID string) (string, error) {
	return run(ctx, "scontrol", "show", "job", jobID, "--oneliner")
}

func (c *CLI) Cancel(ctx context.Context, jobID string) error {
	_, err := run(ctx, "scancel", jobID)
	return err
}

func run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running scheduler command", "name", name, "args", args)
	if err := cmd.Run(); err != nil {
		return stdout.String(), fmt.Errorf("%s failed: %w: %s",
			name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
