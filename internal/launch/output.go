package launch

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vectorinstitute/vec-inf/internal/render"
)

// ParseSubmission extracts the Slurm job ID and the launch summary lines
// from the combined output of launch_server.sh. The job ID is the final
// whitespace token ("Submitted batch job <id>"); everything before that
// line is the summary printed by the script.
func ParseSubmission(output string) (jobID string, lines []string) {
	tokens := strings.Split(output, " ")
	jobID = strings.TrimSpace(tokens[len(tokens)-1])

	all := strings.Split(output, "\n")
	if len(all) >= 2 {
		lines = all[:len(all)-2]
	}
	return jobID, lines
}

// FormatSummaryJSON renders the launch summary as a flat JSON object.
// Summary lines of the form "Key Name: value" become lower_snake_case
// keys; lines without a separator are skipped.
func FormatSummaryJSON(jobID string, lines []string) (string, error) {
	out := map[string]string{"slurm_job_id": jobID}
	for _, line := range lines {
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		key = strings.ReplaceAll(strings.ToLower(key), " ", "_")
		out[key] = value
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to marshal launch summary: %w", err)
	}
	return string(data), nil
}

// FormatSummaryTable renders the launch summary as a two-column table.
func FormatSummaryTable(jobID string, lines []string) string {
	rows := [][]string{{"Slurm Job ID", jobID}}
	for _, line := range lines {
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		rows = append(rows, []string{key, value})
	}
	return render.KV("Job Config", "Value", rows)
}
