package status

// Positional token indexes for scontrol show job --oneliner output. These
// are the fallback contract when the named key=value form is unavailable.
const (
	jobNamePos  = 1
	jobStatePos = 9
)

// Engine derives a normalized status record from one scheduler query.
// It never returns an error: malformed input, unknown native states and
// missing log files all degrade to defined fallback values, so a polling
// caller keeps working through transient gaps.
type Engine struct {
	logDir string
}

// NewEngine creates an Engine reading log artifacts from logDir. An empty
// logDir defaults to ./logs.
func NewEngine(logDir string) *Engine {
	if logDir == "" {
		logDir = "logs"
	}
	return &Engine{logDir: logDir}
}

// Infer builds a fresh Record from the raw scontrol output for jobID.
// Identical input text and filesystem state always yield an identical
// record.
func (e *Engine) Infer(jobID, raw string) *Record {
	rec := baseRecord(jobID, raw)

	switch rec.State {
	case "RUNNING":
		applyRunning(rec, inspectLogs(e.logDir, rec.ModelName, jobID))
	case "PENDING":
		rec.Status = Pending
		rec.PendingReason = pendingReason(raw)
	case "CANCELLED", "COMPLETED", "FAILED", "TIMEOUT":
		rec.Status = Shutdown
	default:
		rec.Status = Unavailable
	}

	return rec
}

// baseRecord extracts the job name and native state from the raw text.
// When either extraction fails, both fall back to UNAVAILABLE rather than
// surfacing a parse error.
func baseRecord(jobID, raw string) *Record {
	r := parseJobRecord(raw)
	name, okName := r.field("JobName", jobNamePos)
	state, okState := r.field("JobState", jobStatePos)
	if !okName || !okState {
		name = string(Unavailable)
		state = string(Unavailable)
	}

	return &Record{
		JobID:     jobID,
		ModelName: name,
		Status:    Unavailable,
		BaseURL:   string(Unavailable),
		TunnelURL: string(Unavailable),
		State:     state,
	}
}

// applyRunning resolves a natively-RUNNING job into READY, LAUNCHING or
// FAILED based on the log checks.
func applyRunning(rec *Record, c logChecks) {
	if c.ready {
		rec.Status = Ready
		if c.baseURL != "" {
			rec.BaseURL = c.baseURL
		}
		if c.tunnelURL != "" {
			rec.TunnelURL = c.tunnelURL
		}
		return
	}

	rec.Status = Launching
	if c.errFound {
		rec.Status = Failed
		rec.FailedReason = failedReason
	}
}
