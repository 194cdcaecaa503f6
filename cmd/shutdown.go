package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vectorinstitute/vec-inf/internal/slurm"
)

func newShutdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shutdown <slurm-job-id>",
		Short: "Cancel a launched model's Slurm job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := args[0]
			if err := slurm.NewCLI().Cancel(cmd.Context(), jobID); err != nil {
				return fmt.Errorf("failed to cancel job %s: %w", jobID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Shutting down model with Slurm job ID: %s\n", jobID)
			return nil
		},
	}
}
