package main

import "sync"

// Round holds one category's worth of questions and the answers both
// players have submitted so far. Answers are keyed by display name and
// append-only; the completion predicate counts submissions, so a
// player signalling done early simply waits for the other.
type Round struct {
	mu        sync.Mutex
	category  Category
	questions []Question
	answers   map[string][]Answer
}

func newRound(category Category, questions []Question) *Round {
	return &Round{
		category:  category,
		questions: append([]Question(nil), questions...),
		answers:   make(map[string][]Answer, 2),
	}
}

func (r *Round) Category() Category {
	return r.category
}

func (r *Round) Questions() []Question {
	return append([]Question(nil), r.questions...)
}

// recordAnswer appends unconditionally; there is no bounds check
// against the question count and no deduplication of repeated
// submissions for the same question index.
func (r *Round) recordAnswer(player string, answer Answer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.answers[player] = append(r.answers[player], answer)
}

// isComplete holds once exactly two players have each submitted as
// many answers as there are questions. It stays true under repeated
// evaluation, and a round with no questions is never complete.
func (r *Round) isComplete() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.questions) == 0 || len(r.answers) != 2 {
		return false
	}
	for _, submitted := range r.answers {
		if len(submitted) != len(r.questions) {
			return false
		}
	}
	return true
}

// result scores every player who submitted answers this round.
func (r *Round) result() RoundResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	scores := make(map[string]int, len(r.answers))
	for player, submitted := range r.answers {
		scores[player] = scoreAnswers(r.questions, submitted)
	}

	return RoundResult{Scores: scores}
}
