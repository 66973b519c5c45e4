package service

import "strings"

// maxChunkChars bounds the size of a single chunk sent to the LLM.
const maxChunkChars = 2000

// paragraphSeparator is the blank-line boundary used to split source text.
const paragraphSeparator = "\n\n"

// SplitText splits raw document text into paragraph-respecting chunks of at
// most maxChunkChars characters. Paragraphs are never broken apart: a
// single paragraph longer than the bound becomes its own oversized chunk.
// Joining the returned chunks with the paragraph separator reproduces the
// original paragraph sequence.
func SplitText(text string) []string {
	paragraphs := strings.Split(text, paragraphSeparator)

	var chunks []string
	var current []string
	currentLength := 0

	for _, para := range paragraphs {
		paraLength := len(para)
		if currentLength+paraLength <= maxChunkChars {
			current = append(current, para)
			currentLength += paraLength
		} else {
			if len(current) > 0 {
				chunks = append(chunks, strings.Join(current, paragraphSeparator))
			}
			current = []string{para}
			currentLength = paraLength
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, paragraphSeparator))
	}

	return chunks
}

// SampleChunks picks the chunk indices used for the initial generation
// pass so early coverage spans the document instead of just its start.
// The first returned index is the primary chunk that seeds the working
// set. Policy, first match wins:
//   - target <= 20 with at least 3 chunks: first, middle, last
//   - target >= 50 with at least 5 chunks: five evenly spaced points
//   - otherwise: the first chunk only
func SampleChunks(chunkCount, targetQuestions int) []int {
	switch {
	case targetQuestions <= 20 && chunkCount >= 3:
		return []int{0, chunkCount / 2, chunkCount - 1}
	case targetQuestions >= 50 && chunkCount >= 5:
		return []int{0, chunkCount / 4, chunkCount / 2, 3 * chunkCount / 4, chunkCount - 1}
	default:
		return []int{0}
	}
}
