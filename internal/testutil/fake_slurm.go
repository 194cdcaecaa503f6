// Package testutil provides shared test helpers.
package testutil

import "context"

// FakeSlurmClient is a configurable fake for slurm.Client used across
// test packages.
type FakeSlurmClient struct {
	// SubmitOutput is returned from Submit; SubmitErr takes precedence.
	SubmitOutput string
	SubmitErr    error

	// ShowOutput is returned from Show; ShowErr takes precedence.
	ShowOutput string
	ShowErr    error

	CancelErr error

	// LastCommand and LastJobID record the most recent call arguments.
	LastCommand string
	LastJobID   string

	SubmitCalls int
	ShowCalls   int
	CancelCalls int
}

func (f *FakeSlurmClient) Submit(_ context.Context, command string) (string, error) {
	f.SubmitCalls++
	f.LastCommand = command
	return f.SubmitOutput, f.SubmitErr
}

func (f *FakeSlurmClient) Show(_ context.Context, jobID string) (string, error) {
	f.ShowCalls++
	f.LastJobID = jobID
	return f.ShowOutput, f.ShowErr
}

func (f *FakeSlurmClient) Cancel(_ context.Context, jobID string) error {
	f.CancelCalls++
	f.LastJobID = jobID
	return f.CancelErr
}
