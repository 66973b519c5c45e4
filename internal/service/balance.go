package service

import (
	"math/rand"

	"github.com/questgen-flow/backend/internal/domain"
)

// skewTrigger is the fraction of the total question count above which a
// single answer letter counts as overrepresented.
const skewTrigger = 0.3

// swapAttempts caps how many candidate letters are tried per question.
const swapAttempts = 5

// BalanceAnswers reduces skew in the distribution of correct-answer
// letters. When one letter holds more than 30% of the answers, questions
// are reassigned letters drawn from a weighted pool favoring the less used
// ones; the option texts of the old and new letters are swapped so the
// truthfully correct text stays correct. Best effort only: the result is
// guaranteed to stay structurally valid, not to land under the threshold.
// The random source is injected so tests can be deterministic.
func BalanceAnswers(questions []domain.Question, rng *rand.Rand) {
	if len(questions) <= 1 {
		return
	}

	counts := map[string]int{"A": 0, "B": 0, "C": 0, "D": 0}
	for i := range questions {
		counts[questions[i].CorrectAnswer]++
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if float64(maxCount) <= float64(len(questions))*skewTrigger {
		return
	}

	// Letters with higher current counts get fewer replacement chances.
	var pool []string
	for _, letter := range domain.OptionLetters {
		for i := 0; i < 4-counts[letter]; i++ {
			pool = append(pool, letter)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	for i := range questions {
		q := &questions[i]

		swapped := false
		for attempts := 0; attempts < swapAttempts && len(pool) > 0; attempts++ {
			candidate := pool[0]
			pool = pool[1:]
			if trySwap(q, candidate) {
				swapped = true
				break
			}
		}

		if !swapped {
			for attempts := 0; attempts < swapAttempts; attempts++ {
				candidate := domain.OptionLetters[rng.Intn(len(domain.OptionLetters))]
				if trySwap(q, candidate) {
					break
				}
			}
		}
	}
}

// trySwap moves the question's correct answer to the candidate letter by
// swapping the two option texts. Returns false when the candidate is the
// current answer or not a valid option.
func trySwap(q *domain.Question, candidate string) bool {
	if candidate == q.CorrectAnswer {
		return false
	}
	if _, ok := q.Options[candidate]; !ok {
		return false
	}
	current := q.CorrectAnswer
	q.Options[current], q.Options[candidate] = q.Options[candidate], q.Options[current]
	q.CorrectAnswer = candidate
	return true
}
