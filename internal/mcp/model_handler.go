package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/vectorinstitute/vec-inf/internal/config"
	"github.com/vectorinstitute/vec-inf/internal/server"
)

func registerModelTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listTool := mcp.NewTool("list_models",
		mcp.WithDescription("List the models available for launch, or the full launch configuration of one model"),
		mcp.WithString("model_name",
			mcp.Description("Show the configuration of this model only"),
		),
	)
	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListModels(ctx, request, sc)
	})

	return nil
}

func handleListModels(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if name, ok := request.GetArguments()["model_name"].(string); ok && name != "" {
		cfg, err := sc.Models.Get(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		data, err := json.MarshalIndent(modelJSON(cfg), "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal model config: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}

	models := sc.Models.List()
	out := make([]map[string]any, 0, len(models))
	for i := range models {
		out = append(out, modelJSON(&models[i]))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal model list: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func modelJSON(cfg *config.ModelConfig) map[string]any {
	m := map[string]any{"model_name": cfg.ModelName}
	for _, p := range cfg.Params {
		m[p.Name] = p.Value
	}
	return m
}
