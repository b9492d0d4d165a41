package main

// Question is one multiple-choice question. The correct option index
// never leaves the server; clients only ever see text and options.
type Question struct {
	text         string
	options      []string
	correctIndex int
}

func newQuestion(text string, options []string, correctIndex int) Question {
	return Question{
		text:         text,
		options:      append([]string(nil), options...),
		correctIndex: correctIndex,
	}
}

func (q Question) Text() string {
	return q.text
}

// Options returns a copy so callers cannot reorder or rewrite the
// option list out from under scoring.
func (q Question) Options() []string {
	return append([]string(nil), q.options...)
}

func (q Question) CorrectIndex() int {
	return q.correctIndex
}

// noAnswer marks an answer submitted on the player's behalf when their
// presentation-layer timer expired before they picked an option.
const noAnswer = -1

// Answer records a player's selection for one question of the current
// round. SelectedOption is noAnswer when the timer ran out.
type Answer struct {
	QuestionIndex  int `json:"question_index"`
	SelectedOption int `json:"selected_option"`
}
