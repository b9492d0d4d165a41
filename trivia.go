// Duelbox trivia duel
//
// Two players are matched first-come-first-served and play a fixed
// number of rounds. Each round, one player (alternating, starting with
// whoever queued first) picks from four candidate categories; both
// players then answer the same question set and signal when done. The
// server scores every round, pauses briefly so clients can show the
// result, and announces a winner (or a tie) after the last round. A
// forfeit at any point hands the opponent the win on the spot.

package main

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// client is one connected websocket peer: an outbound buffered channel
// drained by the write pump, and a read pump that feeds inbound
// messages to the matchmaker or the player's current session.
type client struct {
	cfg  *Config
	conn *websocket.Conn

	mu        sync.Mutex
	out       chan any
	closed    bool
	sessionID string

	// name and self are set once at login, by the read goroutine.
	name string
	self *player
}

// send queues a message for the write pump. It fails once the client
// is closed or its buffer is full, so a dead peer never blocks a game.
func (c *client) send(msg any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errors.New("connection closed")
	}

	select {
	case c.out <- msg:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.out)
}

func (c *client) setSessionID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessionID = id
}

func (c *client) currentSessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sessionID
}

func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.out {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// readPump delivers inbound messages in arrival order. The first
// accepted message must be a login; everything after that goes to the
// player's session, if they are in one.
func (c *client) readPump(srv *triviaServer) {
	defer func() {
		srv.disconnect(c)
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		if c.name == "" {
			if msg.Type != "login" {
				logf(c.cfg, "GAMES: Dropping %q message from unregistered client", msg.Type)
				continue
			}
			srv.register(c, msg.Name)
			continue
		}

		if msg.Type == "login" {
			logf(c.cfg, "GAMES: Ignoring repeat login from %q", c.name)
			continue
		}

		session := srv.sessions.get(c.currentSessionID())
		if session == nil {
			logf(c.cfg, "GAMES: No current game for player %q", c.name)
			continue
		}

		session.handleMessage(c.self, msg)
	}
}

// triviaServer holds the process-wide matchmaking state: the name
// registry, the waiting queue, and the active-session registry, each
// behind its own narrow lock so registration never contends with play.
type triviaServer struct {
	cfg      *Config
	bank     *QuestionBank
	queue    *matchQueue
	sessions *sessionRegistry

	mu    sync.Mutex
	names map[string]*client
}

func newTriviaServer(cfg *Config, bank *QuestionBank) *triviaServer {
	return &triviaServer{
		cfg:      cfg,
		bank:     bank,
		queue:    newMatchQueue(),
		sessions: newSessionRegistry(cfg),
		names:    make(map[string]*client),
	}
}

// register claims the display name and enters the player into the
// queue. Empty and already-taken names are rejected with a notice sent
// only to the offending client, which may retry with another login.
func (srv *triviaServer) register(c *client, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		_ = c.send(NoticeMessage{
			Type:    "notice",
			Field:   "name",
			Message: "A display name is required to play.",
		})
		return
	}

	srv.mu.Lock()
	if _, taken := srv.names[name]; taken {
		srv.mu.Unlock()
		_ = c.send(NoticeMessage{
			Type:    "notice",
			Field:   "name",
			Message: "That name is already taken. Please choose a different name.",
		})
		return
	}
	srv.names[name] = c
	srv.mu.Unlock()

	c.name = name
	c.self = &player{name: name, conn: c}

	// Acknowledged before enqueueing so the client knows the name stuck.
	_ = c.send(WaitMessage{
		Type:    "wait",
		Message: "Waiting for an opponent.",
	})

	srv.queue.enqueue(c.self)
	logf(srv.cfg, "GAMES: Player %q joined the queue (waiting: %d)", name, srv.queue.size())

	srv.tryMatch()
}

// tryMatch pairs waiting players two at a time, in queue order, and
// starts a session per pair.
func (srv *triviaServer) tryMatch() {
	for {
		first, second, ok := srv.queue.tryDequeuePair()
		if !ok {
			return
		}

		session := newGameSession(srv.cfg, srv.bank, srv.sessions, first, second)
		srv.sessions.add(session)

		for _, p := range []*player{first, second} {
			if c, ok := p.conn.(*client); ok {
				c.setSessionID(session.id)
			}
		}

		logf(srv.cfg, "GAMES: Matched %q vs %q in game %s", first.name, second.name, session.id)
		go session.start()
	}
}

// disconnect is best-effort cleanup when a read pump exits: release
// the name, leave the queue, stop the write pump. An in-progress
// session is not torn down; its next send to this player fails fast
// and is logged there.
func (srv *triviaServer) disconnect(c *client) {
	if c.name != "" {
		srv.mu.Lock()
		delete(srv.names, c.name)
		srv.mu.Unlock()

		logf(srv.cfg, "GAMES: Player %q disconnected", c.name)
	}

	if c.self != nil {
		srv.queue.remove(c.self)
	}

	c.close()
}

func serveWS(cfg *Config, srv *triviaServer) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "SERVE: Websocket upgrade failed for %s: %v", realIP(r), err)
			return
		}

		c := &client{
			cfg:  cfg,
			conn: conn,
			out:  make(chan any, 8),
		}

		go c.writePump()
		c.readPump(srv)
	}
}

func serveTriviaPage(cfg *Config, path string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		io.WriteString(w, newPage("duelbox trivia", "Connect a duelbox client to "+cfg.prefix+path+"/ws"))
	}
}

// qrHandler generates a PNG QR code for the join URL, so a second
// player can be pulled in from a phone.
func qrHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	path := strings.TrimSuffix(r.URL.Path, "/qr")

	url := scheme + "://" + r.Host + path

	const qrSize = 320
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// registerTriviaGame sets up routes so that:
//   - $path       → landing page
//   - $path/ws    → the game websocket
//   - $path/qr    → PNG QR code for the join URL
func registerTriviaGame(cfg *Config, path string, mux *httprouter.Router) {
	bank := newQuestionBank(cfg, cfg.questionsFile)
	srv := newTriviaServer(cfg, bank)

	mux.GET(cfg.prefix+path, serveTriviaPage(cfg, path))

	mux.GET(cfg.prefix+path+"/ws", serveWS(cfg, srv))

	mux.GET(cfg.prefix+path+"/qr", qrHandler)
}
