package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vectorinstitute/vec-inf/internal/config"
)

// loadModelStore loads the model registry from the --model-config flag,
// the VEC_INF_MODEL_CONFIG environment variable, or the embedded default
// registry, in that order.
func loadModelStore(cmd *cobra.Command) (*config.Store, error) {
	path, _ := cmd.Flags().GetString("model-config")
	if path == "" {
		path = os.Getenv("VEC_INF_MODEL_CONFIG")
	}
	return config.Load(path)
}

// resolveLaunchScript returns the path of the external launch shell
// script: the explicit flag value, the VEC_INF_LAUNCH_SCRIPT environment
// variable, or launch_server.sh next to the running binary.
func resolveLaunchScript(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("VEC_INF_LAUNCH_SCRIPT"); v != "" {
		return v
	}
	exe, err := os.Executable()
	if err != nil {
		return "launch_server.sh"
	}
	return filepath.Join(filepath.Dir(exe), "launch_server.sh")
}
