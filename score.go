package main

// RoundResult is an immutable snapshot of one round's per-player
// scores, keyed by display name.
type RoundResult struct {
	Scores map[string]int `json:"scores"`
}

// GameResult carries final totals and the winner's name; an empty
// Winner means the game was a tie.
type GameResult struct {
	Scores map[string]int `json:"scores"`
	Winner string         `json:"winner,omitempty"`
}

// scoreAnswers counts answers whose selection matches the correct
// option of the question they point at. A timed-out answer (noAnswer)
// never matches, and an answer for an index outside the question list
// is ignored rather than trusted.
func scoreAnswers(questions []Question, answers []Answer) int {
	score := 0
	for _, answer := range answers {
		if answer.QuestionIndex < 0 || answer.QuestionIndex >= len(questions) {
			continue
		}
		if answer.SelectedOption == questions[answer.QuestionIndex].CorrectIndex() {
			score++
		}
	}
	return score
}

// gameResult sums both players' round scores across all played rounds.
// The strictly higher total wins; equal totals are a tie.
func gameResult(player1, player2 string, rounds []*Round) GameResult {
	totals := map[string]int{
		player1: 0,
		player2: 0,
	}

	for _, round := range rounds {
		if round == nil {
			continue
		}
		for player, score := range round.result().Scores {
			totals[player] += score
		}
	}

	winner := ""
	switch {
	case totals[player1] > totals[player2]:
		winner = player1
	case totals[player2] > totals[player1]:
		winner = player2
	}

	return GameResult{Scores: totals, Winner: winner}
}

// forfeitResult awards the opponent the win outright: the forfeiting
// player scores 0 and the opponent 1, regardless of rounds played.
func forfeitResult(forfeiter, opponent string) GameResult {
	return GameResult{
		Scores: map[string]int{
			opponent:  1,
			forfeiter: 0,
		},
		Winner: opponent,
	}
}
