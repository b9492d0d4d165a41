package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestionSet() []Question {
	return []Question{
		newQuestion("Q0", []string{"a", "b", "c", "d"}, 2),
		newQuestion("Q1", []string{"a", "b", "c", "d"}, 0),
	}
}

func TestRound_IsComplete(t *testing.T) {
	round := newRound(CategoryHistory, twoQuestionSet())

	assert.False(t, round.isComplete(), "no answers yet")

	round.recordAnswer("alice", Answer{QuestionIndex: 0, SelectedOption: 2})
	round.recordAnswer("alice", Answer{QuestionIndex: 1, SelectedOption: 0})
	assert.False(t, round.isComplete(), "only one player has submitted")

	round.recordAnswer("bob", Answer{QuestionIndex: 0, SelectedOption: 1})
	assert.False(t, round.isComplete(), "second player one answer short")

	round.recordAnswer("bob", Answer{QuestionIndex: 1, SelectedOption: 3})
	assert.True(t, round.isComplete())
	assert.True(t, round.isComplete(), "stays true under repeated evaluation")
}

func TestRound_EmptyQuestionListNeverComplete(t *testing.T) {
	round := newRound(CategoryMath, nil)

	round.recordAnswer("alice", Answer{})
	round.recordAnswer("bob", Answer{})

	assert.False(t, round.isComplete())
}

func TestRound_Scoring(t *testing.T) {
	tests := map[string]struct {
		answers []Answer
		want    int
	}{
		"both correct": {
			answers: []Answer{{0, 2}, {1, 0}},
			want:    2,
		},
		"one wrong": {
			answers: []Answer{{0, 2}, {1, 1}},
			want:    1,
		},
		"one timed out": {
			answers: []Answer{{0, noAnswer}, {1, 0}},
			want:    1,
		},
		"all timed out": {
			answers: []Answer{{0, noAnswer}, {1, noAnswer}},
			want:    0,
		},
		"order does not matter": {
			answers: []Answer{{1, 0}, {0, 2}},
			want:    2,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			round := newRound(CategoryHistory, twoQuestionSet())
			for _, a := range tc.answers {
				round.recordAnswer("alice", a)
			}

			result := round.result()
			assert.Equal(t, tc.want, result.Scores["alice"])
		})
	}
}

func TestRound_ResultScoresBothPlayers(t *testing.T) {
	round := newRound(CategoryHistory, twoQuestionSet())

	round.recordAnswer("alice", Answer{QuestionIndex: 0, SelectedOption: 2})
	round.recordAnswer("alice", Answer{QuestionIndex: 1, SelectedOption: 0})
	round.recordAnswer("bob", Answer{QuestionIndex: 0, SelectedOption: 1})
	round.recordAnswer("bob", Answer{QuestionIndex: 1, SelectedOption: 0})

	require.True(t, round.isComplete())

	result := round.result()
	assert.Equal(t, map[string]int{"alice": 2, "bob": 1}, result.Scores)
}

func TestRound_QuestionsReturnsCopy(t *testing.T) {
	round := newRound(CategoryHistory, twoQuestionSet())

	questions := round.Questions()
	questions[0] = newQuestion("tampered", []string{"x", "y"}, 0)

	assert.Equal(t, "Q0", round.Questions()[0].Text())
}

func TestQuestion_OptionsReturnsCopy(t *testing.T) {
	q := newQuestion("Q", []string{"a", "b"}, 0)

	options := q.Options()
	options[0] = "tampered"

	assert.Equal(t, []string{"a", "b"}, q.Options())
}
