package server

import (
	"github.com/vectorinstitute/vec-inf/internal/config"
	"github.com/vectorinstitute/vec-inf/internal/launch"
	"github.com/vectorinstitute/vec-inf/internal/slurm"
)

// ServerContext holds shared dependencies for MCP tool handlers.
type ServerContext struct {
	Models   *config.Store
	Slurm    slurm.Client
	Compiler *launch.Compiler
	LogDir   string // log directory searched during status inference
}
