package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldByName(t *testing.T) {
	r := parseJobRecord("JobId=42 JobName=foo JobState=RUNNING")

	name, ok := r.field("JobName", 1)
	require.True(t, ok)
	assert.Equal(t, "foo", name)

	// Named lookup works even when the token position disagrees with the
	// positional contract.
	state, ok := r.field("JobState", 9)
	require.True(t, ok)
	assert.Equal(t, "RUNNING", state)
}

func TestFieldPositionalFallback(t *testing.T) {
	// No token is keyed JobName or JobState; the positional contract
	// (tokens 1 and 9) still applies.
	r := parseJobRecord("f0=0 f1=foo f2=2 f3=3 f4=4 f5=5 f6=6 f7=7 f8=8 f9=RUNNING")

	name, ok := r.field("JobName", 1)
	require.True(t, ok)
	assert.Equal(t, "foo", name)

	state, ok := r.field("JobState", 9)
	require.True(t, ok)
	assert.Equal(t, "RUNNING", state)
}

func TestFieldMissing(t *testing.T) {
	r := parseJobRecord("JobId=42")

	_, ok := r.field("JobName", 1)
	assert.False(t, ok)

	_, ok = r.field("JobState", 9)
	assert.False(t, ok)
}

func TestFieldFirstOccurrenceWins(t *testing.T) {
	r := parseJobRecord("JobName=first JobName=second")

	name, ok := r.field("JobName", 1)
	require.True(t, ok)
	assert.Equal(t, "first", name)
}

func TestPendingReason(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "single word reason",
			raw:  "JobState=PENDING Reason=Priority Dependency=(null)",
			want: "Priority",
		},
		{
			name: "reason truncates at first space",
			raw:  "JobState=PENDING Reason=Resources unavailable ",
			want: "Resources",
		},
		{
			name: "no marker",
			raw:  "JobState=PENDING Dependency=(null)",
			want: "",
		},
		{
			name: "no trailing whitespace",
			raw:  "JobState=PENDING Reason=Nodes",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pendingReason(tt.raw))
		})
	}
}
