package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/peterkuimelis/swipecity/internal/game"
	gamelog "github.com/peterkuimelis/swipecity/internal/log"
	swipenet "github.com/peterkuimelis/swipecity/internal/net"
)

//go:embed static
var staticFiles embed.FS

// Options configures the web server.
type Options struct {
	Catalog      []*game.Card
	Ledger       game.LedgerConfig
	Seed         int64  // 0 for random; each socket gets its own engine
	ArtDir       string // card images served under /art/; empty disables
	TransitionMS int    // card-off/card-in animation length the page uses
}

// HelloMessage is the first message on every socket.
type HelloMessage struct {
	Type         string `json:"type"`
	Session      string `json:"session"`
	TransitionMS int    `json:"transition_ms"`
}

// SessionInfo is the JSON representation of a live socket for /api/sessions.
type SessionInfo struct {
	ID        string    `json:"id"`
	Started   time.Time `json:"started"`
	Decisions int       `json:"decisions"`
	Over      bool      `json:"over"`
}

type session struct {
	id      string
	started time.Time
	engine  *game.Engine
}

// Server is the swipecity web UI server.
type Server struct {
	opts   Options
	lookup swipenet.CardLookup
	mux    *http.ServeMux

	mu       sync.Mutex
	sessions map[string]*session
}

// NewServer creates a new web server.
func NewServer(opts Options) *Server {
	if opts.TransitionMS <= 0 {
		opts.TransitionMS = 300
	}
	s := &Server{
		opts:     opts,
		lookup:   swipenet.CatalogLookup(opts.Catalog),
		mux:      http.NewServeMux(),
		sessions: make(map[string]*session),
	}
	s.setupRoutes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	// Embedded static files
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.Copy(w, f)
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	if s.opts.ArtDir != "" {
		s.mux.Handle("GET /art/", http.StripPrefix("/art/", http.FileServer(http.Dir(s.opts.ArtDir))))
	}

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/sessions", s.handleSessions)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Encode response: %v", err)
	}
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := game.NewCatalog(s.opts.Catalog).ByTag(r.URL.Query().Get("tag"))
	views := make([]*swipenet.CardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, swipenet.NewCardView(c))
	}
	writeJSON(w, views)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	live := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		live = append(live, sess)
	}
	s.mu.Unlock()

	// Engines are queried without s.mu: a socket stuck in a write holds its
	// engine lock.
	infos := make([]SessionInfo, 0, len(live))
	for _, sess := range live {
		infos = append(infos, SessionInfo{
			ID:        sess.id,
			Started:   sess.started,
			Decisions: sess.engine.Decisions(),
			Over:      sess.engine.Over(),
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Started.Before(infos[j].Started) })
	writeJSON(w, infos)
}

// writeTimeout bounds a single event write to a browser. A timed-out write
// closes the socket.
const writeTimeout = 5 * time.Second

// wsObserver forwards engine events to a browser.
type wsObserver struct {
	ctx    context.Context
	conn   *websocket.Conn
	lookup swipenet.CardLookup
}

func (o *wsObserver) Notify(event gamelog.GameEvent) {
	ctx, cancel := context.WithTimeout(o.ctx, writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, o.conn, swipenet.EventMessage(event, o.lookup)); err != nil && o.ctx.Err() == nil {
		log.Printf("WebSocket write error: %v", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	engine, err := game.NewEngine(game.Config{
		Catalog: s.opts.Catalog,
		Ledger:  s.opts.Ledger,
		Seed:    s.opts.Seed,
	})
	if err != nil {
		wsConn.Close(websocket.StatusInternalError, "could not create game")
		return
	}

	sess := &session{id: uuid.NewString(), started: time.Now(), engine: engine}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess.id)
		s.mu.Unlock()
	}()
	log.Printf("Session %s opened from %s", sess.id, r.RemoteAddr)

	hello := HelloMessage{Type: "hello", Session: sess.id, TransitionMS: s.opts.TransitionMS}
	if err := wsjson.Write(ctx, wsConn, hello); err != nil {
		return
	}

	engine.Subscribe(&wsObserver{ctx: ctx, conn: wsConn, lookup: s.lookup})
	if err := engine.Start(); err != nil {
		_ = wsjson.Write(ctx, wsConn, swipenet.ServerMessage{Type: swipenet.MsgError, Error: err.Error()})
		wsConn.Close(websocket.StatusNormalClosure, "no cards")
		return
	}

	for {
		var msg swipenet.ClientMessage
		if err := wsjson.Read(ctx, wsConn, &msg); err != nil {
			if websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
				log.Printf("Session %s read error: %v", sess.id, err)
			}
			return
		}

		quit, err := swipenet.HandleClientMessage(engine, msg)
		if quit {
			log.Printf("Session %s closed after %d decisions", sess.id, engine.Decisions())
			wsConn.Close(websocket.StatusNormalClosure, "game ended")
			return
		}
		if err != nil {
			if err := wsjson.Write(ctx, wsConn, swipenet.ServerMessage{Type: swipenet.MsgError, Error: err.Error()}); err != nil {
				return
			}
		}
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
