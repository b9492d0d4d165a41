package main

// Wire message types. Every message is a flat JSON object with a
// "type" tag; inbound messages all decode into ClientMessage, outbound
// messages each have their own struct.

// Messages coming from clients
type ClientMessage struct {
	Type           string `json:"type"`               // "login", "category_selected", "answer", "round_complete", "forfeit"
	Name           string `json:"name,omitempty"`     // login
	Category       string `json:"category,omitempty"` // category_selected
	QuestionIndex  int    `json:"question_index"`     // answer
	SelectedOption int    `json:"selected_option"`    // answer; -1 when the client's timer expired
}

// GameStartMessage tells both players they have been matched.
type GameStartMessage struct {
	Type                 string `json:"type"` // "game_start"
	Opponent             string `json:"opponent"`
	Rounds               int    `json:"rounds"`
	QuestionsPerRound    int    `json:"questions_per_round"`
	AnswerTimeoutSeconds int    `json:"answer_timeout_seconds"`
}

// CategoryChoicesMessage is sent only to the round's chooser.
type CategoryChoicesMessage struct {
	Type       string     `json:"type"` // "category_choices"
	Categories []Category `json:"categories"`
}

// WaitMessage tells the non-chooser to sit tight.
type WaitMessage struct {
	Type    string `json:"type"` // "wait"
	Message string `json:"message"`
}

// QuestionView is the client-visible slice of a question; the correct
// option index stays server-side.
type QuestionView struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// RoundStartMessage broadcasts the round's question list to both players.
type RoundStartMessage struct {
	Type      string         `json:"type"` // "round_start"
	Questions []QuestionView `json:"questions"`
}

// RoundResultMessage broadcasts one round's scores.
type RoundResultMessage struct {
	Type   string         `json:"type"` // "round_result"
	Scores map[string]int `json:"scores"`
}

// GameEndMessage broadcasts final totals; Winner is empty on a tie.
type GameEndMessage struct {
	Type   string         `json:"type"` // "game_end"
	Scores map[string]int `json:"scores"`
	Winner string         `json:"winner,omitempty"`
}

// NoticeMessage is sent to a single client, e.g. on a display-name
// collision at login.
type NoticeMessage struct {
	Type    string `json:"type"`            // "notice"
	Field   string `json:"field,omitempty"` // "name" for login rejections
	Message string `json:"message"`
}

func questionViews(questions []Question) []QuestionView {
	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, QuestionView{
			Text:    q.Text(),
			Options: q.Options(),
		})
	}
	return views
}
