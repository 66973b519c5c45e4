package service

import "testing"

func TestOverlapRatio(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{
			name:     "identical texts",
			a:        "what is the powerhouse of the cell",
			b:        "what is the powerhouse of the cell",
			expected: 1.0,
		},
		{
			name:     "case and order insensitive",
			a:        "The Cell Powerhouse",
			b:        "powerhouse cell the",
			expected: 1.0,
		},
		{
			name:     "disjoint texts",
			a:        "alpha beta gamma",
			b:        "delta epsilon zeta",
			expected: 0.0,
		},
		{
			name:     "both empty",
			a:        "",
			b:        "",
			expected: 0.0,
		},
		{
			name:     "one empty",
			a:        "something",
			b:        "",
			expected: 0.0,
		},
		{
			name:     "half overlap against larger set",
			a:        "one two",
			b:        "one two three four",
			expected: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlapRatio(tt.a, tt.b); got != tt.expected {
				t.Errorf("overlapRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestIsDuplicate(t *testing.T) {
	accepted := []string{
		"What is the primary function of mitochondria in eukaryotic cells today",
		"Which organelle synthesizes proteins",
	}

	tests := []struct {
		name      string
		candidate string
		expected  bool
	}{
		{
			name:      "near-identical rewording is a duplicate",
			candidate: "What is the primary function of mitochondria in eukaryotic cells",
			expected:  true,
		},
		{
			name:      "different topic is not a duplicate",
			candidate: "When did the French Revolution begin",
			expected:  false,
		},
		{
			name:      "shared words below threshold are kept",
			candidate: "What is the capital of France",
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicate(tt.candidate, accepted); got != tt.expected {
				t.Errorf("IsDuplicate(%q) = %v, want %v", tt.candidate, got, tt.expected)
			}
		})
	}
}

func TestIsDuplicate_ThresholdIsExclusive(t *testing.T) {
	// 10-word accepted text; candidate shares exactly the same set minus
	// nothing but against an 11-word candidate: ratio 10/11 ≈ 0.909 > 0.85.
	accepted := []string{"a1 a2 a3 a4 a5 a6 a7 a8 a9 a10"}

	over := "a1 a2 a3 a4 a5 a6 a7 a8 a9 a10 extra"
	if !IsDuplicate(over, accepted) {
		t.Error("ratio above threshold should be a duplicate")
	}

	// 17 shared of 20: 0.85 exactly, strict comparison keeps it.
	var shared, candidate string
	for i := 0; i < 20; i++ {
		shared += " w" + string(rune('a'+i))
	}
	accepted = []string{shared}
	for i := 0; i < 17; i++ {
		candidate += " w" + string(rune('a'+i))
	}
	candidate += " n1 n2 n3"
	if IsDuplicate(candidate, accepted) {
		t.Error("ratio equal to threshold should not be a duplicate")
	}
}

func TestIsDuplicate_EmptyAccepted(t *testing.T) {
	if IsDuplicate("anything at all", nil) {
		t.Error("no accepted questions means nothing is a duplicate")
	}
}
