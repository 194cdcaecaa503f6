// Package callback reports a served model's endpoint and model list to an
// external telemetry receiver once the OpenAI-compatible API is ready.
package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Config configures a Reporter.
type Config struct {
	// BaseURL is the OpenAI-compatible base URL, including /v1.
	BaseURL string
	// CallbackURL receives the telemetry POST.
	CallbackURL string
	// JobID is the Slurm job serving the model.
	JobID string
	// Interval between readiness polls (default 10s).
	Interval time.Duration
	// HTTPClient used for the telemetry POST (default http.DefaultClient).
	HTTPClient *http.Client
}

// Reporter polls a model endpoint until it lists at least one model, then
// posts {job id, model list, base URL} to the callback URL.
type Reporter struct {
	cfg Config
	api *openai.Client
}

// NewReporter creates a Reporter for the given endpoint and callback.
func NewReporter(cfg Config) *Reporter {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}

	apiCfg := openai.DefaultConfig("not-needed")
	apiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Reporter{
		cfg: cfg,
		api: openai.NewClientWithConfig(apiCfg),
	}
}

// ModelList returns the models served at the base URL, or nil when the
// API is not ready. Connection errors, bad statuses and malformed bodies
// all read as "not ready" rather than failures.
func (r *Reporter) ModelList(ctx context.Context) []openai.Model {
	list, err := r.api.ListModels(ctx)
	if err != nil {
		slog.Debug("model list not available", "base_url", r.cfg.BaseURL, "error", err)
		return nil
	}
	return list.Models
}

// Run polls until the model list is non-empty, then sends the telemetry
// payload. It returns once the POST completes or ctx is cancelled.
func (r *Reporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		if models := r.ModelList(ctx); len(models) > 0 {
			slog.Info("model endpoint ready", "base_url", r.cfg.BaseURL, "models", len(models))
			return r.post(ctx, models)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

type payload struct {
	SlurmJobID string         `json:"slurm_job_id"`
	ModelList  []openai.Model `json:"model_list"`
	APIBaseURL string         `json:"api_base_url"`
}

func (r *Reporter) post(ctx context.Context, models []openai.Model) error {
	body, err := json.Marshal(payload{
		SlurmJobID: r.cfg.JobID,
		ModelList:  models,
		APIBaseURL: r.cfg.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telemetry payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.CallbackURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build telemetry request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("telemetry POST failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("telemetry receiver returned %s", resp.Status)
	}

	slog.Info("telemetry sent", "callback_url", r.cfg.CallbackURL)
	return nil
}
