package main

import (
	"sync"
	"time"
)

// sender is the one-way contract a session needs from a player's
// connection. Sends may fail once the peer is gone; the session logs
// and carries on.
type sender interface {
	send(msg any) error
}

// player is a registered participant: a unique display name plus the
// connection to reach them on. Sessions reference players, they never
// own them.
type player struct {
	name string
	conn sender
}

// matchQueue is the FIFO of players waiting for an opponent. The two
// longest-waiting players are always paired together.
type matchQueue struct {
	mu      sync.Mutex
	waiting []*player
}

func newMatchQueue() *matchQueue {
	return &matchQueue{}
}

func (q *matchQueue) enqueue(p *player) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.waiting = append(q.waiting, p)
}

// tryDequeuePair atomically removes and returns the two players at the
// head of the queue, or reports false if fewer than two are waiting.
func (q *matchQueue) tryDequeuePair() (*player, *player, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.waiting) < 2 {
		return nil, nil, false
	}

	first, second := q.waiting[0], q.waiting[1]
	q.waiting = append(q.waiting[:0], q.waiting[2:]...)

	return first, second, true
}

// remove drops a disconnecting player from the queue, if still queued.
func (q *matchQueue) remove(p *player) {
	q.mu.Lock()
	defer q.mu.Unlock()

	dst := q.waiting[:0]
	for _, waiting := range q.waiting {
		if waiting == p {
			continue
		}
		dst = append(dst, waiting)
	}
	q.waiting = dst
}

func (q *matchQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.waiting)
}

// sessionRegistry is the process-wide set of active sessions, keyed by
// session ID. Players hold the ID and resolve it here, so a player
// record never points directly at a session.
type sessionRegistry struct {
	cfg      *Config
	mu       sync.Mutex
	sessions map[string]*gameSession
}

func newSessionRegistry(cfg *Config) *sessionRegistry {
	r := &sessionRegistry{
		cfg:      cfg,
		sessions: make(map[string]*gameSession),
	}
	if cfg.sessionTimeout > 0 {
		go r.reaperLoop()
	}
	return r
}

// reaperLoop periodically expires sessions that have been idle longer
// than the session timeout, so games abandoned mid-play do not pile up
// in the registry. Idle checks happen outside the registry lock; a
// session ending normally takes its own lock first and then this one.
func (r *sessionRegistry) reaperLoop() {
	ticker := time.NewTicker(r.cfg.sessionTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-r.cfg.sessionTimeout)

		r.mu.Lock()
		candidates := make([]*gameSession, 0, len(r.sessions))
		for _, session := range r.sessions {
			candidates = append(candidates, session)
		}
		r.mu.Unlock()

		for _, session := range candidates {
			if session.lastActivity().Before(cutoff) {
				r.remove(session.id)
				go session.expire()
			}
		}
	}
}

func (r *sessionRegistry) add(s *gameSession) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.id] = s
}

func (r *sessionRegistry) get(id string) *gameSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sessions[id]
}

func (r *sessionRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
}
