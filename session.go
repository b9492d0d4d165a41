package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type sessionState int

const (
	stateAwaitingCategory sessionState = iota
	stateRoundActive
	stateRoundComplete
	stateGameEnded
	stateForfeited
)

func (s sessionState) String() string {
	switch s {
	case stateAwaitingCategory:
		return "awaiting_category"
	case stateRoundActive:
		return "round_active"
	case stateRoundComplete:
		return "round_complete"
	case stateGameEnded:
		return "game_ended"
	case stateForfeited:
		return "forfeited"
	}
	return "unknown"
}

// gameSession drives one matched pair through the full game. All
// state transitions run under the session's own mutex, so the two
// player goroutines feeding it messages serialize here and nowhere
// else; independent games never contend.
type gameSession struct {
	id       string
	cfg      *Config
	bank     *QuestionBank
	registry *sessionRegistry

	mu           sync.Mutex
	player1      *player
	player2      *player
	rounds       []*Round
	currentRound int
	player1Turn  bool
	state        sessionState
	lastActive   time.Time
}

func newGameSession(cfg *Config, bank *QuestionBank, registry *sessionRegistry, player1, player2 *player) *gameSession {
	return &gameSession{
		id:          uuid.NewString(),
		cfg:         cfg,
		bank:        bank,
		registry:    registry,
		player1:     player1,
		player2:     player2,
		rounds:      make([]*Round, cfg.rounds),
		player1Turn: true,
		state:       stateAwaitingCategory,
		lastActive:  time.Now(),
	}
}

func (s *gameSession) terminalLocked() bool {
	return s.state == stateGameEnded || s.state == stateForfeited
}

func (s *gameSession) lastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastActive
}

// expire silences a session the reaper has already dropped from the
// registry. No result is broadcast: by the time a session idles out,
// nobody is listening.
func (s *gameSession) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminalLocked() {
		return
	}

	logf(s.cfg, "GAMES: Game %s expired after idling in state %s", s.id, s.state)
	s.state = stateGameEnded
}

// start announces the match to both players and opens category
// selection for round one. It runs on its own goroutine, so a forfeit
// can already have landed; a terminal session must not come back to
// life.
func (s *gameSession) start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminalLocked() {
		logf(s.cfg, "GAMES: Not starting game %s, already %s", s.id, s.state)
		return
	}

	logf(s.cfg, "GAMES: Starting game %s between %q and %q", s.id, s.player1.name, s.player2.name)

	s.sendTo(s.player1, GameStartMessage{
		Type:                 "game_start",
		Opponent:             s.player2.name,
		Rounds:               len(s.rounds),
		QuestionsPerRound:    s.cfg.questionsPerRound,
		AnswerTimeoutSeconds: int(s.cfg.answerTimeout.Seconds()),
	})
	s.sendTo(s.player2, GameStartMessage{
		Type:                 "game_start",
		Opponent:             s.player1.name,
		Rounds:               len(s.rounds),
		QuestionsPerRound:    s.cfg.questionsPerRound,
		AnswerTimeoutSeconds: int(s.cfg.answerTimeout.Seconds()),
	})

	s.requestCategoryLocked()
}

// handleMessage dispatches one inbound message from a player's read
// goroutine. Unknown types are logged and dropped.
func (s *gameSession) handleMessage(p *player, msg ClientMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()

	switch msg.Type {
	case "category_selected":
		s.handleCategorySelectedLocked(p, msg.Category)
	case "answer":
		s.handleAnswerLocked(p, Answer{
			QuestionIndex:  msg.QuestionIndex,
			SelectedOption: msg.SelectedOption,
		})
	case "round_complete":
		s.handleRoundCompleteLocked(p)
	case "forfeit":
		s.handleForfeitLocked(p)
	default:
		logf(s.cfg, "GAMES: Unexpected message type %q from %q in game %s", msg.Type, p.name, s.id)
	}
}

func (s *gameSession) chooserLocked() *player {
	if s.player1Turn {
		return s.player1
	}
	return s.player2
}

func (s *gameSession) opponentOf(p *player) *player {
	if p == s.player1 {
		return s.player2
	}
	return s.player1
}

// requestCategoryLocked opens category selection for the current
// round: the chooser gets four candidates, the other player a notice
// to wait.
func (s *gameSession) requestCategoryLocked() {
	if s.terminalLocked() {
		return
	}

	s.state = stateAwaitingCategory
	chooser := s.chooserLocked()

	s.sendTo(chooser, CategoryChoicesMessage{
		Type:       "category_choices",
		Categories: randomCategories(),
	})
	s.sendTo(s.opponentOf(chooser), WaitMessage{
		Type:    "wait",
		Message: chooser.name + " is choosing a category.",
	})
}

func (s *gameSession) handleCategorySelectedLocked(p *player, raw string) {
	if s.state != stateAwaitingCategory {
		logf(s.cfg, "GAMES: Ignoring category selection from %q in state %s", p.name, s.state)
		return
	}
	if p != s.chooserLocked() {
		logf(s.cfg, "GAMES: Ignoring category selection from non-chooser %q in game %s", p.name, s.id)
		return
	}

	category, ok := parseCategory(raw)
	if !ok {
		logf(s.cfg, "GAMES: Ignoring invalid category %q from %q in game %s", raw, p.name, s.id)
		return
	}

	questions := s.bank.QuestionsFor(category, s.cfg.questionsPerRound)
	s.rounds[s.currentRound] = newRound(category, questions)
	s.state = stateRoundActive

	logf(s.cfg, "GAMES: Round %d of game %s starting with %d %s questions",
		s.currentRound+1, s.id, len(questions), category)

	s.broadcastLocked(RoundStartMessage{
		Type:      "round_start",
		Questions: questionViews(questions),
	})
}

func (s *gameSession) handleAnswerLocked(p *player, answer Answer) {
	if s.state != stateRoundActive {
		logf(s.cfg, "GAMES: Ignoring answer from %q in state %s", p.name, s.state)
		return
	}

	s.rounds[s.currentRound].recordAnswer(p.name, answer)
	logf(s.cfg, "GAMES: Recorded answer from %q for question %d in game %s",
		p.name, answer.QuestionIndex, s.id)
}

// handleRoundCompleteLocked re-evaluates the completion predicate on
// every signal, since a signal can arrive before the sender's (or the
// other player's) last answer. Once the round completes, the state
// change guarantees the result broadcast happens exactly once;
// re-entrant signals land in stateRoundComplete and fall through the
// state guard as no-ops.
func (s *gameSession) handleRoundCompleteLocked(p *player) {
	if s.state != stateRoundActive {
		logf(s.cfg, "GAMES: Ignoring round-complete from %q in state %s", p.name, s.state)
		return
	}

	round := s.rounds[s.currentRound]
	if !round.isComplete() {
		logf(s.cfg, "GAMES: Waiting for other player after round-complete from %q in game %s", p.name, s.id)
		return
	}

	logf(s.cfg, "GAMES: Round %d of game %s complete", s.currentRound+1, s.id)

	s.broadcastLocked(RoundResultMessage{
		Type:   "round_result",
		Scores: round.result().Scores,
	})

	s.player1Turn = !s.player1Turn
	s.state = stateRoundComplete
	s.currentRound++

	// The settle delay runs on a timer so neither read goroutine
	// blocks; the callback retakes the lock and checks that a forfeit
	// did not land in the meantime.
	time.AfterFunc(s.cfg.settleDelay, s.advance)
}

// advance continues play after the settle delay: the next round's
// category selection, or the final result if all rounds are done.
func (s *gameSession) advance() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateRoundComplete {
		return
	}

	s.lastActive = time.Now()

	if s.currentRound < len(s.rounds) {
		s.requestCategoryLocked()
		return
	}

	s.endLocked(gameResult(s.player1.name, s.player2.name, s.rounds), stateGameEnded)
}

// handleForfeitLocked ends the game immediately from any live state,
// awarding the opponent the win. No further round result is sent for
// an interrupted round.
func (s *gameSession) handleForfeitLocked(p *player) {
	if s.terminalLocked() {
		return
	}

	logf(s.cfg, "GAMES: %q forfeited game %s", p.name, s.id)
	s.endLocked(forfeitResult(p.name, s.opponentOf(p).name), stateForfeited)
}

func (s *gameSession) endLocked(result GameResult, terminal sessionState) {
	s.broadcastLocked(GameEndMessage{
		Type:   "game_end",
		Scores: result.Scores,
		Winner: result.Winner,
	})
	s.state = terminal
	s.registry.remove(s.id)

	logf(s.cfg, "GAMES: Game %s over (%s), winner: %q", s.id, terminal, result.Winner)
}

// broadcastLocked sends to both players. A failed send to one player
// never suppresses the send to the other.
func (s *gameSession) broadcastLocked(msg any) {
	s.sendTo(s.player1, msg)
	s.sendTo(s.player2, msg)
}

func (s *gameSession) sendTo(p *player, msg any) {
	if err := p.conn.send(msg); err != nil {
		logf(s.cfg, "GAMES: Send to %q failed in game %s: %v", p.name, s.id, err)
	}
}
