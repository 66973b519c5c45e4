package domain

import "testing"

func validQuestion() Question {
	return Question{
		ID:   1,
		Text: "What is the capital of France?",
		Options: map[string]string{
			"A": "London", "B": "Berlin", "C": "Paris", "D": "Madrid",
		},
		CorrectAnswer: "C",
		Explanation:   "Paris is the capital.",
		Topic:         "Geography",
	}
}

func TestQuestionValid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Question)
		expected bool
	}{
		{
			name:     "well-formed question",
			mutate:   func(q *Question) {},
			expected: true,
		},
		{
			name:     "empty question text",
			mutate:   func(q *Question) { q.Text = "" },
			expected: false,
		},
		{
			name:     "missing option letter",
			mutate:   func(q *Question) { delete(q.Options, "D") },
			expected: false,
		},
		{
			name: "extra option letter",
			mutate: func(q *Question) {
				q.Options["E"] = "Rome"
				delete(q.Options, "A")
			},
			expected: false,
		},
		{
			name:     "answer not among options",
			mutate:   func(q *Question) { q.CorrectAnswer = "E" },
			expected: false,
		},
		{
			name:     "nil options",
			mutate:   func(q *Question) { q.Options = nil },
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(&q)
			if got := q.Valid(); got != tt.expected {
				t.Errorf("Valid() = %v, want %v", got, tt.expected)
			}
		})
	}
}
