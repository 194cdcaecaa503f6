package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vectorinstitute/vec-inf/internal/slurm"
	"github.com/vectorinstitute/vec-inf/internal/status"
)

func newStatusCmd() *cobra.Command {
	var (
		logDir   string
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:   "status <slurm-job-id>",
		Short: "Report the status of a launched model",
		Long: `Query Slurm for the job and derive a normalized status from the scheduler
state and the job's log files: PENDING, LAUNCHING, READY, FAILED,
SHUTDOWN or UNAVAILABLE.

Status inference never fails on malformed scheduler output or missing log
files; it degrades to UNAVAILABLE so the command stays usable in a
polling loop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := args[0]

			raw, err := slurm.NewCLI().Show(cmd.Context(), jobID)
			if err != nil {
				// The engine turns empty output into an UNAVAILABLE record.
				slog.Debug("scontrol query failed", "job_id", jobID, "error", err)
			}

			record := status.NewEngine(logDir).Infer(jobID, raw)

			if jsonMode {
				out, err := record.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Model Status (Job ID: %s)\n", jobID)
			fmt.Fprintln(cmd.OutOrStdout(), record.Table())
			return nil
		},
	}

	cmd.Flags().StringVar(&logDir, "log-dir", "", "Directory holding the job's log files (default: ./logs)")
	cmd.Flags().BoolVar(&jsonMode, "json-mode", false, "Print the status record as JSON")

	return cmd
}
