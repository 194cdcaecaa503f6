package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vectorinstitute/vec-inf/internal/render"
)

func newListCmd() *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:   "list [model-name]",
		Short: "List configured models, or the launch configuration of one model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadModelStore(cmd)
			if err != nil {
				return fmt.Errorf("failed to load model configuration: %w", err)
			}

			if len(args) == 1 {
				cfg, err := store.Get(args[0])
				if err != nil {
					return err
				}

				if jsonMode {
					out := map[string]any{"model_name": cfg.ModelName}
					for _, p := range cfg.Params {
						out[p.Name] = p.Value
					}
					data, err := json.Marshal(out)
					if err != nil {
						return fmt.Errorf("failed to marshal model config: %w", err)
					}
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return nil
				}

				rows := [][]string{{"model_name", cfg.ModelName}}
				for _, p := range cfg.Params {
					rows = append(rows, []string{p.Name, fmt.Sprint(p.Value)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), render.KV("Model Config", "Value", rows))
				return nil
			}

			models := store.List()
			if len(models) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No models configured.")
				return nil
			}

			if jsonMode {
				names := make([]string, 0, len(models))
				for _, m := range models {
					names = append(names, m.ModelName)
				}
				data, err := json.Marshal(names)
				if err != nil {
					return fmt.Errorf("failed to marshal model names: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Available models:\n\n")
			for _, m := range models {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", m.ModelName)
				if family, ok := m.Lookup("model_family"); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "    Family: %v\n", family)
				}
				if gpus, ok := m.Lookup("num_gpus"); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "    GPUs: %v\n", gpus)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonMode, "json-mode", false, "Print as JSON")

	return cmd
}
