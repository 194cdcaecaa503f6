package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vec-inf",
	Short: "Launch and monitor LLM inference servers on a Slurm cluster",
	Long: `vec-inf launches OpenAI-compatible inference servers for configured models
as Slurm batch jobs and reports their lifecycle status. Model launch
parameters come from a YAML registry and can be overridden per launch;
job status is inferred from scheduler state and the job's log files.

It can also expose launch/status/list/shutdown as MCP tools ('vec-inf serve')
for agent-driven cluster access.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
}

var (
	buildCommit = "unknown"
	buildDate   = "unknown"
)

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// SetBuildInfo sets the commit and build date for the version command.
func SetBuildInfo(commit, date string) {
	buildCommit = commit
	buildDate = date
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "vec-inf version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLaunchCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newShutdownCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newNotifyCmd())
	rootCmd.AddCommand(newServeCmd())

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("model-config", "", "Path to the model configuration YAML (default: embedded registry)")
}
