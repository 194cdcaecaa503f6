package status

import (
	"encoding/json"
	"fmt"

	"github.com/vectorinstitute/vec-inf/internal/render"
)

// recordJSON is the wire form of a Record. Reason fields appear only when
// populated.
type recordJSON struct {
	SlurmJobID    string `json:"slurm_job_id"`
	ModelName     string `json:"model_name"`
	Status        Status `json:"status"`
	BaseURL       string `json:"base_url"`
	TunnelURL     string `json:"cloudflare_url"`
	PendingReason string `json:"pending_reason,omitempty"`
	FailedReason  string `json:"failed_reason,omitempty"`
}

// JSON renders the record as a flat JSON object.
func (r *Record) JSON() (string, error) {
	data, err := json.Marshal(recordJSON{
		SlurmJobID:    r.JobID,
		ModelName:     r.ModelName,
		Status:        r.Status,
		BaseURL:       r.BaseURL,
		TunnelURL:     r.TunnelURL,
		PendingReason: r.PendingReason,
		FailedReason:  r.FailedReason,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal status record: %w", err)
	}
	return string(data), nil
}

// Table renders the record as a two-column table, reasons appended only
// when populated.
func (r *Record) Table() string {
	rows := [][]string{
		{"Model Name", r.ModelName},
		{"Status", string(r.Status)},
		{"Base URL", r.BaseURL},
		{"Cloudflare URL", r.TunnelURL},
	}
	if r.PendingReason != "" {
		rows = append(rows, []string{"Pending Reason", r.PendingReason})
	}
	if r.FailedReason != "" {
		rows = append(rows, []string{"Failed Reason", r.FailedReason})
	}
	return render.KV("Property", "Value", rows)
}
