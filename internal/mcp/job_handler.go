package mcp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/vectorinstitute/vec-inf/internal/launch"
	"github.com/vectorinstitute/vec-inf/internal/server"
	"github.com/vectorinstitute/vec-inf/internal/status"
)

func registerJobTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// launch_model
	launchTool := mcp.NewTool("launch_model",
		mcp.WithDescription("Launch an inference server for a configured model as a Slurm batch job. Returns the Slurm job ID and the launch summary."),
		mcp.WithString("model_name",
			mcp.Required(),
			mcp.Description("Name of the model as listed in the model configuration"),
		),
		mcp.WithNumber("num_gpus",
			mcp.Description("Override the number of GPUs per node"),
		),
		mcp.WithNumber("num_nodes",
			mcp.Description("Override the number of nodes"),
		),
		mcp.WithNumber("max_model_len",
			mcp.Description("Override the model context length"),
		),
		mcp.WithString("partition",
			mcp.Description("Override the Slurm partition"),
		),
		mcp.WithString("qos",
			mcp.Description("Override the Slurm quality-of-service"),
		),
		mcp.WithString("time",
			mcp.Description("Override the job time limit (e.g. '08:00:00')"),
		),
		mcp.WithString("data_type",
			mcp.Description("Override the model data type"),
		),
		mcp.WithString("venv",
			mcp.Description("Override the virtual environment / container backend"),
		),
		mcp.WithString("log_dir",
			mcp.Description("Override the log directory"),
		),
		mcp.WithString("pipeline_parallelism",
			mcp.Description("Override pipeline parallelism ('true' or 'false')"),
		),
		mcp.WithString("enforce_eager",
			mcp.Description("Override eager execution ('true' or 'false')"),
		),
		mcp.WithBoolean("enable_cloudflare_tunnel",
			mcp.Description("Establish a Cloudflare tunnel to the served model"),
		),
	)
	s.AddTool(launchTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleLaunchModel(ctx, request, sc)
	})

	// model_status
	statusTool := mcp.NewTool("model_status",
		mcp.WithDescription("Report the normalized status of a launched model: PENDING, LAUNCHING, READY, FAILED, SHUTDOWN or UNAVAILABLE, plus endpoint URLs."),
		mcp.WithString("slurm_job_id",
			mcp.Required(),
			mcp.Description("Slurm job ID returned by launch_model"),
		),
		mcp.WithString("log_dir",
			mcp.Description("Log directory to inspect (defaults to the server's configured directory)"),
		),
	)
	s.AddTool(statusTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleModelStatus(ctx, request, sc)
	})

	// shutdown_model
	shutdownTool := mcp.NewTool("shutdown_model",
		mcp.WithDescription("Cancel a launched model's Slurm job"),
		mcp.WithString("slurm_job_id",
			mcp.Required(),
			mcp.Description("Slurm job ID to cancel"),
		),
	)
	s.AddTool(shutdownTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleShutdownModel(ctx, request, sc)
	})

	return nil
}

// launchOverrideKeys are the tool arguments forwarded to the launch
// compiler as overrides, keyed by their launch parameter name.
var launchOverrideKeys = []string{
	"num_gpus",
	"num_nodes",
	"max_model_len",
	"partition",
	"qos",
	"time",
	"data_type",
	"venv",
	"log_dir",
	"pipeline_parallelism",
	"enforce_eager",
	"enable_cloudflare_tunnel",
}

func handleLaunchModel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	modelName, ok := args["model_name"].(string)
	if !ok || modelName == "" {
		return mcp.NewToolResultError("model_name is required"), nil
	}

	overrides := make(map[string]any)
	for _, key := range launchOverrideKeys {
		if v, ok := args[key]; ok && v != nil {
			if f, isNum := v.(float64); isNum {
				overrides[key] = int(f)
				continue
			}
			overrides[key] = v
		}
	}

	command, err := sc.Compiler.Compile(modelName, overrides)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compile launch command: %v", err)), nil
	}

	out, err := sc.Slurm.Submit(ctx, command)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to submit job: %v", err)), nil
	}

	jobID, lines := launch.ParseSubmission(out)
	summary, err := launch.FormatSummaryJSON(jobID, lines)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to format launch summary: %v", err)), nil
	}
	return mcp.NewToolResultText(summary), nil
}

func handleModelStatus(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	jobID, ok := jobIDArg(request)
	if !ok {
		return mcp.NewToolResultError("slurm_job_id is required"), nil
	}

	logDir := sc.LogDir
	if dir, ok := request.GetArguments()["log_dir"].(string); ok && dir != "" {
		logDir = dir
	}

	// Status inference degrades to UNAVAILABLE on query failures rather
	// than erroring, so the tool stays usable in a polling loop.
	raw, err := sc.Slurm.Show(ctx, jobID)
	if err != nil {
		raw = ""
	}

	record := status.NewEngine(logDir).Infer(jobID, raw)
	out, err := record.JSON()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to format status: %v", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

func handleShutdownModel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	jobID, ok := jobIDArg(request)
	if !ok {
		return mcp.NewToolResultError("slurm_job_id is required"), nil
	}

	if err := sc.Slurm.Cancel(ctx, jobID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to cancel job: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Shutting down model with Slurm job ID %s", jobID)), nil
}

// jobIDArg accepts the job ID as a string or, for lenient clients, a
// number.
func jobIDArg(request mcp.CallToolRequest) (string, bool) {
	switch v := request.GetArguments()["slurm_job_id"].(type) {
	case string:
		return v, v != ""
	case float64:
		return strconv.Itoa(int(v)), true
	default:
		return "", false
	}
}
