package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vectorinstitute/vec-inf/internal/launch"
	"github.com/vectorinstitute/vec-inf/internal/slurm"
)

func newLaunchCmd() *cobra.Command {
	var (
		numGPUs             int
		numNodes            int
		maxModelLen         int
		vocabSize           int
		partition           string
		qos                 string
		timeLimit           string
		dataType            string
		venv                string
		logDir              string
		pipelineParallelism string
		enforceEager        string
		tunnel              bool
		jsonMode            bool
		script              string
	)

	cmd := &cobra.Command{
		Use:   "launch <model-name>",
		Short: "Launch a model inference server as a Slurm batch job",
		Long: `Compile the launch command for a configured model and submit it to Slurm.

Launch parameters come from the model registry; any flag set here overrides
the configured default, including flipping configured booleans.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := loadModelStore(cmd)
			if err != nil {
				return fmt.Errorf("failed to load model configuration: %w", err)
			}

			overrides := make(map[string]any)
			setIf := func(flag, key string, value any) {
				if cmd.Flags().Changed(flag) {
					overrides[key] = value
				}
			}
			setIf("num-gpus", "num_gpus", numGPUs)
			setIf("num-nodes", "num_nodes", numNodes)
			setIf("max-model-len", "max_model_len", maxModelLen)
			setIf("vocab-size", "vocab_size", vocabSize)
			setIf("partition", "partition", partition)
			setIf("qos", "qos", qos)
			setIf("time", "time", timeLimit)
			setIf("data-type", "data_type", dataType)
			setIf("venv", "venv", venv)
			setIf("log-dir", "log_dir", logDir)
			setIf("pipeline-parallelism", "pipeline_parallelism", pipelineParallelism)
			setIf("enforce-eager", "enforce_eager", enforceEager)
			if tunnel {
				overrides["enable_cloudflare_tunnel"] = true
			}

			compiler := launch.NewCompiler(store, resolveLaunchScript(script))
			command, err := compiler.Compile(args[0], overrides)
			if err != nil {
				return err
			}
			slog.Debug("compiled launch command", "command", command)

			out, err := slurm.NewCLI().Submit(ctx, command)
			if err != nil {
				return fmt.Errorf("failed to submit launch command: %w", err)
			}

			jobID, lines := launch.ParseSubmission(out)
			if jsonMode {
				summary, err := launch.FormatSummaryJSON(jobID, lines)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), summary)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), launch.FormatSummaryTable(jobID, lines))
			return nil
		},
	}

	cmd.Flags().IntVar(&numGPUs, "num-gpus", 0, "Number of GPUs per node")
	cmd.Flags().IntVar(&numNodes, "num-nodes", 0, "Number of nodes")
	cmd.Flags().IntVar(&maxModelLen, "max-model-len", 0, "Model context length")
	cmd.Flags().IntVar(&vocabSize, "vocab-size", 0, "Vocabulary size")
	cmd.Flags().StringVar(&partition, "partition", "", "Slurm partition")
	cmd.Flags().StringVar(&qos, "qos", "", "Slurm quality-of-service")
	cmd.Flags().StringVar(&timeLimit, "time", "", "Job time limit (e.g. 08:00:00)")
	cmd.Flags().StringVar(&dataType, "data-type", "", "Model data type")
	cmd.Flags().StringVar(&venv, "venv", "", "Virtual environment / container backend")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "Directory for job logs")
	cmd.Flags().StringVar(&pipelineParallelism, "pipeline-parallelism", "", "Enable pipeline parallelism (true/false)")
	cmd.Flags().StringVar(&enforceEager, "enforce-eager", "", "Enforce eager execution (true/false)")
	cmd.Flags().BoolVar(&tunnel, "enable-cloudflare-tunnel", false, "Establish a Cloudflare tunnel to the served model")
	cmd.Flags().BoolVar(&jsonMode, "json-mode", false, "Print the launch summary as JSON")
	cmd.Flags().StringVar(&script, "launch-script", "", "Path to launch_server.sh (default: next to the vec-inf binary)")

	return cmd
}
