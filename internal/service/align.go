package service

import (
	"regexp"
	"strings"

	"github.com/questgen-flow/backend/internal/domain"
)

// letterTokenPattern matches a standalone answer letter. Only uppercase
// letters count: lowercasing first would turn the English article "a" into
// a false match.
var letterTokenPattern = regexp.MustCompile(`\b([ABCD])\b`)

// AlignAnswers cross-checks each question's stated correct answer against
// the content of its own explanation and overwrites the answer when they
// disagree. Two heuristics are tried in order: the text of an option
// appearing verbatim inside the explanation, then a standalone A/B/C/D
// token. If neither matches, the question is left untouched. This step
// never fails; it only ever rewrites correct_answer to another valid
// option letter.
func AlignAnswers(questions []domain.Question) {
	for i := range questions {
		q := &questions[i]
		if len(q.Options) == 0 {
			continue
		}

		explanation := strings.ToLower(q.Explanation)

		matched := ""
		for _, letter := range domain.OptionLetters {
			text, ok := q.Options[letter]
			if !ok || text == "" {
				continue
			}
			if strings.Contains(explanation, strings.ToLower(text)) {
				matched = letter
				break
			}
		}

		if matched == "" {
			if m := letterTokenPattern.FindStringSubmatch(q.Explanation); m != nil {
				matched = m[1]
			}
		}

		if matched == "" || matched == q.CorrectAnswer {
			continue
		}
		if _, ok := q.Options[matched]; !ok {
			continue
		}
		q.CorrectAnswer = matched
	}
}
