// Package status derives a normalized job status record from raw Slurm
// scontrol output and the job's on-disk log artifacts.
package status

// Status is the normalized job lifecycle status, distinct from Slurm's
// native state vocabulary.
type Status string

const (
	// Unavailable is the initial default and the fallback for any
	// unrecognized scheduler state.
	Unavailable Status = "UNAVAILABLE"
	Pending     Status = "PENDING"
	Launching   Status = "LAUNCHING"
	Ready       Status = "READY"
	Failed      Status = "FAILED"
	Shutdown    Status = "SHUTDOWN"
)

// failedReason is the fixed human-readable reason attached when startup
// errors are found in the job's stderr log.
const failedReason = "Error in model initialization"

// Record is the result of one status inference. It is rebuilt from
// scratch on every query and never cached across polls.
type Record struct {
	JobID     string
	ModelName string
	Status    Status

	// BaseURL is the served model's OpenAI-compatible endpoint, parsed
	// from the job's stdout log once the server reports ready.
	BaseURL string

	// TunnelURL is the externally reachable reverse-tunnel address, if a
	// tunnel was established for the job.
	TunnelURL string

	// State is Slurm's own state string, kept for display alongside the
	// normalized status.
	State string

	PendingReason string
	FailedReason  string
}
