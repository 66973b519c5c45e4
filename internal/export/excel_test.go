package export

import (
	"testing"

	"github.com/questgen-flow/backend/internal/domain"
)

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:   1,
			Text: "What is the capital of France?",
			Options: map[string]string{
				"A": "London", "B": "Berlin", "C": "Paris", "D": "Madrid",
			},
			CorrectAnswer: "C",
			Explanation:   "Paris has been the capital since 987.",
			Topic:         "Geography",
		},
		{
			ID:   2,
			Text: "Which organelle produces ATP?",
			Options: map[string]string{
				"A": "Nucleus", "B": "Mitochondria", "C": "Ribosome", "D": "Golgi",
			},
			CorrectAnswer: "B",
			Explanation:   "Mitochondria are the site of cellular respiration.",
			Topic:         "Biology",
		},
	}
}

func TestBuildWorkbook(t *testing.T) {
	f, err := BuildWorkbook(sampleQuestions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Questions" {
		t.Fatalf("expected single sheet %q, got %v", "Questions", sheets)
	}

	rows, err := f.GetRows("Questions")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 data rows, got %d", len(rows))
	}

	if rows[0][0] != "ID" || rows[0][1] != "Question" || rows[0][6] != "Correct Answer" {
		t.Errorf("unexpected header row: %v", rows[0])
	}

	first := rows[1]
	if first[0] != "1" {
		t.Errorf("expected ID 1, got %q", first[0])
	}
	if first[1] != "What is the capital of France?" {
		t.Errorf("unexpected question text: %q", first[1])
	}
	if first[4] != "Paris" {
		t.Errorf("expected option C in column 5, got %q", first[4])
	}
	if first[6] != "C" {
		t.Errorf("expected correct answer C, got %q", first[6])
	}

	second := rows[2]
	if second[8] != "Biology" {
		t.Errorf("expected topic in last column, got %q", second[8])
	}
}

func TestBuildWorkbook_Empty(t *testing.T) {
	f, err := BuildWorkbook(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Questions")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected only the header row, got %d rows", len(rows))
	}
}

func TestExportKey(t *testing.T) {
	if got := ExportKey("abc-123"); got != "exports/abc-123.xlsx" {
		t.Errorf("ExportKey = %q, want %q", got, "exports/abc-123.xlsx")
	}
}
