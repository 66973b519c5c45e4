package service

import (
	"strings"
	"testing"
)

func TestSplitText_ShortTextSingleChunk(t *testing.T) {
	text := "Just one small paragraph."

	chunks := SplitText(text)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("expected chunk to equal input, got %q", chunks[0])
	}
}

func TestSplitText_ParagraphsNeverBroken(t *testing.T) {
	// 30 paragraphs of ~300 chars each: multiple chunks, no paragraph split
	para := strings.Repeat("lorem ipsum ", 25) // 300 chars
	paragraphs := make([]string, 30)
	for i := range paragraphs {
		paragraphs[i] = para
	}
	text := strings.Join(paragraphs, "\n\n")

	chunks := SplitText(text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		for _, p := range strings.Split(chunk, "\n\n") {
			if p != para {
				t.Errorf("chunk %d contains a broken paragraph: %q", i, p)
			}
		}
	}
}

func TestSplitText_RoundTrip(t *testing.T) {
	text := strings.Join([]string{
		"First paragraph about mitochondria.",
		strings.Repeat("x", 1500),
		strings.Repeat("y", 1500),
		"Closing remarks.",
	}, "\n\n")

	chunks := SplitText(text)

	if got := strings.Join(chunks, "\n\n"); got != text {
		t.Error("joining chunks with the paragraph separator should reproduce the input")
	}
}

func TestSplitText_OversizedParagraphOwnChunk(t *testing.T) {
	big := strings.Repeat("z", 5000)
	text := "small intro\n\n" + big + "\n\nsmall outro"

	chunks := SplitText(text)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[1] != big {
		t.Error("oversized paragraph should become its own chunk")
	}
	if len(chunks[0]) > maxChunkChars || len(chunks[2]) > maxChunkChars {
		t.Error("surrounding chunks should respect the size bound")
	}
}

func TestSplitText_EmptyInput(t *testing.T) {
	chunks := SplitText("")

	// Split of "" yields one empty paragraph, which becomes one empty chunk.
	if len(chunks) != 1 || chunks[0] != "" {
		t.Errorf("expected single empty chunk, got %v", chunks)
	}
}

func TestSampleChunks(t *testing.T) {
	tests := []struct {
		name       string
		chunkCount int
		target     int
		expected   []int
	}{
		{
			name:       "small target spreads over three points",
			chunkCount: 10,
			target:     10,
			expected:   []int{0, 5, 9},
		},
		{
			name:       "small target but too few chunks",
			chunkCount: 2,
			target:     10,
			expected:   []int{0},
		},
		{
			name:       "large target spreads over five points",
			chunkCount: 20,
			target:     50,
			expected:   []int{0, 5, 10, 15, 19},
		},
		{
			name:       "large target but too few chunks",
			chunkCount: 4,
			target:     80,
			expected:   []int{0},
		},
		{
			name:       "mid-range target falls back to first chunk",
			chunkCount: 10,
			target:     30,
			expected:   []int{0},
		},
		{
			name:       "single chunk",
			chunkCount: 1,
			target:     5,
			expected:   []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SampleChunks(tt.chunkCount, tt.target)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("index %d: expected %d, got %d", i, tt.expected[i], got[i])
				}
			}
		})
	}
}
