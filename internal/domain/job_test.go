package domain

import (
	"testing"
	"time"
)

func TestJobStatusTerminal(t *testing.T) {
	tests := []struct {
		status   JobStatus
		expected bool
	}{
		{JobStatusPending, false},
		{JobStatusInProgress, false},
		{JobStatusCompleted, true},
		{JobStatusError, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.expected {
			t.Errorf("Terminal(%s) = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestJobETA(t *testing.T) {
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		status   JobStatus
		progress int
		elapsed  time.Duration
		expected int
	}{
		{
			name:     "no progress yet",
			status:   JobStatusInProgress,
			progress: 0,
			elapsed:  10 * time.Second,
			expected: 0,
		},
		{
			name:     "halfway mirrors elapsed",
			status:   JobStatusInProgress,
			progress: 50,
			elapsed:  10 * time.Second,
			expected: 10,
		},
		{
			name:     "quarter done projects three times elapsed",
			status:   JobStatusInProgress,
			progress: 25,
			elapsed:  10 * time.Second,
			expected: 30,
		},
		{
			name:     "nearly done shrinks toward zero",
			status:   JobStatusInProgress,
			progress: 95,
			elapsed:  95 * time.Second,
			expected: 5,
		},
		{
			name:     "completed job reports zero",
			status:   JobStatusCompleted,
			progress: 100,
			elapsed:  time.Minute,
			expected: 0,
		},
		{
			name:     "pending job reports zero",
			status:   JobStatusPending,
			progress: 0,
			elapsed:  time.Minute,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &Job{
				Status:    tt.status,
				Progress:  tt.progress,
				StartedAt: started,
			}
			if got := job.ETA(started.Add(tt.elapsed)); got != tt.expected {
				t.Errorf("ETA = %d, want %d", got, tt.expected)
			}
		})
	}
}
