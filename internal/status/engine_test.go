package status

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawStatus builds a scontrol-style one-liner with JobName and JobState
// at their contractual token positions (1 and 9).
func rawStatus(name, state string) string {
	return fmt.Sprintf("JobId=42 JobName=%s UserId=user(1000) GroupId=group(1000) "+
		"MCS_label=N/A Priority=1000 Nice=0 Account=vector QOS=m2 JobState=%s "+
		"Reason=None Dependency=(null)", name, state)
}

func writeLog(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRunningWithReadyMarker(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "foo.42.out", "INFO starting engine\nServer address: http://host:1234\n")

	rec := NewEngine(dir).Infer("42", rawStatus("foo", "RUNNING"))

	assert.Equal(t, Ready, rec.Status)
	assert.Equal(t, "foo", rec.ModelName)
	assert.Equal(t, "http://host:1234", rec.BaseURL)
	assert.Equal(t, "UNAVAILABLE", rec.TunnelURL)
	assert.Empty(t, rec.FailedReason)
}

func TestRunningReadyWithTunnelURL(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "foo.42.out", "Server address: http://host:1234\n")
	writeLog(t, dir, "foo.42.tunnel_url", "waiting for tunnel...\nhttps://foo.trycloudflare.com\n\n")

	rec := NewEngine(dir).Infer("42", rawStatus("foo", "RUNNING"))

	assert.Equal(t, Ready, rec.Status)
	// Only the last non-blank line of the tunnel file is authoritative.
	assert.Equal(t, "https://foo.trycloudflare.com", rec.TunnelURL)
}

func TestRunningWithoutOutputLog(t *testing.T) {
	rec := NewEngine(t.TempDir()).Infer("42", rawStatus("foo", "RUNNING"))

	assert.Equal(t, Launching, rec.Status)
	assert.Equal(t, "UNAVAILABLE", rec.BaseURL)
}

func TestRunningWithoutMarker(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "foo.42.out", "INFO loading weights\n")

	rec := NewEngine(dir).Infer("42", rawStatus("foo", "RUNNING"))
	assert.Equal(t, Launching, rec.Status)
}

func TestLaunchingEscalatesToFailedOnErrorLog(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "foo.42.err", "RuntimeError: boom\n")

	rec := NewEngine(dir).Infer("42", rawStatus("foo", "RUNNING"))

	assert.Equal(t, Failed, rec.Status)
	assert.Equal(t, "Error in model initialization", rec.FailedReason)
}

func TestErrorKeywordsAreCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "foo.42.err", "Caught EXCEPTION while binding socket\n")

	rec := NewEngine(dir).Infer("42", rawStatus("foo", "RUNNING"))
	assert.Equal(t, Failed, rec.Status)
}

func TestBenignStderrStaysLaunching(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "foo.42.err", "downloading shard 3/4\n")

	rec := NewEngine(dir).Infer("42", rawStatus("foo", "RUNNING"))
	assert.Equal(t, Launching, rec.Status)
	assert.Empty(t, rec.FailedReason)
}

func TestReadyIgnoresErrorLog(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "foo.42.out", "Server address: http://host:1234\n")
	writeLog(t, dir, "foo.42.err", "error: transient warmup failure\n")

	// The stderr scan only runs while the server is not yet ready.
	rec := NewEngine(dir).Infer("42", rawStatus("foo", "RUNNING"))
	assert.Equal(t, Ready, rec.Status)
}

func TestPendingWithReason(t *testing.T) {
	raw := "JobId=42 JobName=foo UserId=user(1000) GroupId=group(1000) " +
		"MCS_label=N/A Priority=1000 Nice=0 Account=vector QOS=m2 JobState=PENDING " +
		"Reason=Resources unavailable Dependency=(null)"

	rec := NewEngine(t.TempDir()).Infer("42", raw)

	assert.Equal(t, Pending, rec.Status)
	// The reason truncates at the first space, not at field boundaries.
	assert.Equal(t, "Resources", rec.PendingReason)
}

func TestPendingWithoutReason(t *testing.T) {
	raw := "JobId=42 JobName=foo UserId=user(1000) GroupId=group(1000) " +
		"MCS_label=N/A Priority=1000 Nice=0 Account=vector QOS=m2 JobState=PENDING"

	rec := NewEngine(t.TempDir()).Infer("42", raw)

	assert.Equal(t, Pending, rec.Status)
	assert.Empty(t, rec.PendingReason)
}

func TestTerminalStatesResolveToShutdown(t *testing.T) {
	for _, state := range []string{"CANCELLED", "COMPLETED", "FAILED", "TIMEOUT"} {
		t.Run(state, func(t *testing.T) {
			rec := NewEngine(t.TempDir()).Infer("42", rawStatus("foo", state))
			assert.Equal(t, Shutdown, rec.Status)
			assert.Empty(t, rec.PendingReason)
			assert.Empty(t, rec.FailedReason)
		})
	}
}

func TestUnrecognizedStateFallsBackToUnavailable(t *testing.T) {
	rec := NewEngine(t.TempDir()).Infer("42", rawStatus("foo", "COMPLETING"))
	assert.Equal(t, Unavailable, rec.Status)
	assert.Equal(t, "COMPLETING", rec.State)
}

func TestMalformedOutputNeverPanics(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"garbage", "slurm_load_jobs error: Invalid job id specified"},
		{"truncated", "JobId=42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewEngine(t.TempDir()).Infer("42", tt.raw)
			assert.Equal(t, "UNAVAILABLE", rec.ModelName)
			assert.Equal(t, "UNAVAILABLE", rec.State)
			assert.Equal(t, Unavailable, rec.Status)
		})
	}
}

func TestInferIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "foo.42.out", "Server address: http://host:1234\n")
	writeLog(t, dir, "foo.42.tunnel_url", "https://foo.trycloudflare.com\n")
	raw := rawStatus("foo", "RUNNING")

	e := NewEngine(dir)
	first := e.Infer("42", raw)
	second := e.Infer("42", raw)

	assert.Equal(t, first, second)
}
