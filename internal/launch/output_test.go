package launch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const submissionOutput = "Model Name: test-model\n" +
	"Partition: a40\n" +
	"Num GPUs: 2\n" +
	"Submitted batch job 123456\n"

func TestParseSubmission(t *testing.T) {
	jobID, lines := ParseSubmission(submissionOutput)

	assert.Equal(t, "123456", jobID)
	assert.Equal(t, []string{
		"Model Name: test-model",
		"Partition: a40",
		"Num GPUs: 2",
	}, lines)
}

func TestParseSubmissionBareConfirmation(t *testing.T) {
	jobID, lines := ParseSubmission("Submitted batch job 42\n")
	assert.Equal(t, "42", jobID)
	assert.Empty(t, lines)
}

func TestFormatSummaryJSON(t *testing.T) {
	jobID, lines := ParseSubmission(submissionOutput)

	out, err := FormatSummaryJSON(jobID, lines)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, map[string]string{
		"slurm_job_id": "123456",
		"model_name":   "test-model",
		"partition":    "a40",
		"num_gpus":     "2",
	}, got)
}

func TestFormatSummaryJSONSkipsMalformedLines(t *testing.T) {
	out, err := FormatSummaryJSON("7", []string{"no separator here", "Venv: singularity"})
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]string{
		"slurm_job_id": "7",
		"venv":         "singularity",
	}, got)
}

func TestFormatSummaryTable(t *testing.T) {
	jobID, lines := ParseSubmission(submissionOutput)

	table := FormatSummaryTable(jobID, lines)
	assert.Contains(t, table, "Slurm Job ID")
	assert.Contains(t, table, "123456")
	assert.Contains(t, table, "Model Name")
	assert.Contains(t, table, "test-model")
}
