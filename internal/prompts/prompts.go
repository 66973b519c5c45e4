// Package prompts centralizes the LLM prompt templates used by the
// generation pipeline.
package prompts

import "fmt"

// generationPromptTemplate asks for a JSON array of exam questions built
// strictly from the provided excerpt. Placeholders: question count,
// excerpt, language (x3), count again.
const generationPromptTemplate = `You are a knowledgeable teacher preparing an exam ONLY on the information contained in the given book excerpt.
Your goal is to create exactly %d high-quality multiple-choice questions that faithfully test a reader's knowledge of the material. No trivia outside the scope of the book.
Distribute the questions so they reflect content from the beginning, middle and end of the text.

Use the following text as your only source material:
%s

For each question, provide:
1. Question (in %s)
2. 4 options (A, B, C, D) in %s
3. Correct answer (A, B, C, or D)
4. Explanation (in %s)
5. Topic (brief)

IMPORTANT RULES:
- Do NOT ask meta-questions about the author or document structure, only knowledge that would reasonably appear on a test for this material.
- Keep language clear and precise.
- Ensure questions are well-distributed over the text section provided.
- Produce exactly %d items.

Format the response EXACTLY as this JSON array:
[
  {
    "question": "...",
    "options": {"A": "...", "B": "...", "C": "...", "D": "..."},
    "correct_answer": "A",
    "explanation": "...",
    "topic": "..."
  }
]`

// GenerationPrompt renders the question generation prompt for one chunk.
func GenerationPrompt(context, language string, count int) string {
	return fmt.Sprintf(generationPromptTemplate, count, context, language, language, language, count)
}

// TranslationPrompt renders the explanation translation prompt.
func TranslationPrompt(text, sourceLanguage, targetLanguage string) string {
	return fmt.Sprintf("Translate this explanation from %s to %s. Output only the translated text:\n\n%s",
		sourceLanguage, targetLanguage, text)
}
