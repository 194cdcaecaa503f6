package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vectorinstitute/vec-inf/internal/callback"
)

func newNotifyCmd() *cobra.Command {
	var (
		baseURL     string
		callbackURL string
		jobID       string
		interval    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Report a ready model endpoint to a telemetry receiver",
		Long: `Poll an OpenAI-compatible endpoint until it lists at least one model, then
POST the Slurm job ID, model list and base URL to the callback URL.

Intended to run inside the batch job after the server starts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL == "" {
				return fmt.Errorf("--openai-base-url is required")
			}
			if callbackURL == "" {
				return fmt.Errorf("--callback-url is required")
			}
			if jobID == "" {
				jobID = os.Getenv("SLURM_JOB_ID")
			}

			reporter := callback.NewReporter(callback.Config{
				BaseURL:     baseURL,
				CallbackURL: callbackURL,
				JobID:       jobID,
				Interval:    interval,
			})
			return reporter.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&baseURL, "openai-base-url", "", "OpenAI-compatible base URL of the served model, including /v1")
	cmd.Flags().StringVar(&callbackURL, "callback-url", "", "URL receiving the telemetry POST")
	cmd.Flags().StringVar(&jobID, "job-id", "", "Slurm job ID (default: $SLURM_JOB_ID)")
	cmd.Flags().DurationVar(&interval, "interval", 10*time.Second, "Polling interval")

	return cmd
}
