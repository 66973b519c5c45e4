package service

import (
	"testing"
	"time"

	"github.com/questgen-flow/backend/internal/domain"
)

func TestJobRegistry_CreateAndSnapshot(t *testing.T) {
	r := NewJobRegistry()
	r.Create("job-1")

	job, err := r.Snapshot("job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != domain.JobStatusPending {
		t.Errorf("expected pending status, got %s", job.Status)
	}
	if job.Step != domain.StepSplit {
		t.Errorf("expected step %d, got %d", domain.StepSplit, job.Step)
	}
	if job.Progress != 0 {
		t.Errorf("expected progress 0, got %d", job.Progress)
	}
	if job.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

func TestJobRegistry_UnknownJob(t *testing.T) {
	r := NewJobRegistry()

	if _, err := r.Snapshot("missing"); err != ErrJobNotFound {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
	if _, err := r.Done("missing"); err != ErrJobNotFound {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}

func TestJobRegistry_ProgressNeverDecreases(t *testing.T) {
	r := NewJobRegistry()
	r.Create("job-1")

	r.Update("job-1", domain.JobStatusInProgress, 40, domain.StepBatchFill, "filling")
	r.Update("job-1", domain.JobStatusInProgress, 20, domain.StepBatchFill, "late update")

	job, _ := r.Snapshot("job-1")
	if job.Progress != 40 {
		t.Errorf("expected progress to hold at 40, got %d", job.Progress)
	}
	if len(job.Logs) != 2 {
		t.Errorf("expected both log entries kept, got %d", len(job.Logs))
	}
}

func TestJobRegistry_TerminalStatesAbsorb(t *testing.T) {
	r := NewJobRegistry()
	r.Create("job-1")

	r.Update("job-1", domain.JobStatusCompleted, 100, domain.StepFinalize, "done")
	r.Update("job-1", domain.JobStatusInProgress, 50, domain.StepBatchFill, "too late")
	r.Fail("job-1", "also too late")
	r.SetExcelFile("job-1", "exports/late.xlsx")

	job, _ := r.Snapshot("job-1")
	if job.Status != domain.JobStatusCompleted {
		t.Errorf("expected completed, got %s", job.Status)
	}
	if job.Progress != 100 {
		t.Errorf("expected progress 100, got %d", job.Progress)
	}
	if job.Error != "" {
		t.Errorf("expected no error on completed job, got %q", job.Error)
	}
	if job.ExcelFile != "" {
		t.Errorf("expected no excel file recorded after completion, got %q", job.ExcelFile)
	}
}

func TestJobRegistry_FailClosesDone(t *testing.T) {
	r := NewJobRegistry()
	r.Create("job-1")

	done, err := r.Done("job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-done:
		t.Fatal("done channel closed before terminal state")
	default:
	}

	r.Fail("job-1", "upstream exploded")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("done channel not closed after Fail")
	}

	job, _ := r.Snapshot("job-1")
	if job.Status != domain.JobStatusError {
		t.Errorf("expected error status, got %s", job.Status)
	}
	if job.Error != "upstream exploded" {
		t.Errorf("expected failure message kept, got %q", job.Error)
	}
}

func TestJobRegistry_SnapshotIsolation(t *testing.T) {
	r := NewJobRegistry()
	r.Create("job-1")
	r.SetQuestions("job-1", []domain.Question{
		{
			ID:            1,
			Text:          "q",
			Options:       map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"},
			CorrectAnswer: "A",
			Explanation:   "e",
		},
	}, []string{"Biology"})

	snap, _ := r.Snapshot("job-1")
	snap.Questions[0].Options["A"] = "mutated"
	snap.Questions[0].CorrectAnswer = "D"
	snap.Topics[0] = "mutated"
	snap.Logs = append(snap.Logs, "mutated")

	fresh, _ := r.Snapshot("job-1")
	if fresh.Questions[0].Options["A"] != "a" {
		t.Error("snapshot option mutation leaked into the registry")
	}
	if fresh.Questions[0].CorrectAnswer != "A" {
		t.Error("snapshot answer mutation leaked into the registry")
	}
	if fresh.Topics[0] != "Biology" {
		t.Error("snapshot topic mutation leaked into the registry")
	}
}
