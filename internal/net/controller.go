package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/peterkuimelis/swipecity/internal/game"
	"github.com/peterkuimelis/swipecity/internal/log"
)

// NetworkObserver implements game.Observer over a connection. Every engine
// event is forwarded as a ServerMessage.
type NetworkObserver struct {
	conn   net.Conn
	enc    *json.Encoder
	lookup CardLookup
	mu     sync.Mutex
	err    error // first write failure; later sends are skipped
}

// NewNetworkObserver creates an observer writing to the given connection.
func NewNetworkObserver(conn net.Conn, lookup CardLookup) *NetworkObserver {
	return &NetworkObserver{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		lookup: lookup,
	}
}

// Notify implements game.Observer.
func (no *NetworkObserver) Notify(event log.GameEvent) {
	_ = no.Send(EventMessage(event, no.lookup))
}

// Send writes a message to the client.
func (no *NetworkObserver) Send(msg ServerMessage) error {
	no.mu.Lock()
	defer no.mu.Unlock()
	if no.err != nil {
		return no.err
	}
	if err := no.enc.Encode(msg); err != nil {
		no.err = fmt.Errorf("send %s: %w", msg.Type, err)
	}
	return no.err
}

// Err returns the first write failure, if any.
func (no *NetworkObserver) Err() error {
	no.mu.Lock()
	defer no.mu.Unlock()
	return no.err
}

// SessionConfig holds what each connected player's engine is built from.
type SessionConfig struct {
	Catalog []*game.Card
	Ledger  game.LedgerConfig
	Seed    int64 // 0 for random
	Logger  func() log.EventLogger
}

// HandleClientMessage applies one client intent to the engine. quit is set
// when the client ends the session.
func HandleClientMessage(engine *game.Engine, msg ClientMessage) (quit bool, err error) {
	switch msg.Type {
	case MsgSwipe:
		return false, engine.SubmitDecision(msg.Right)
	case MsgAck:
		return false, engine.TransitionComplete()
	case MsgRestart:
		return false, engine.Restart()
	case MsgQuit:
		return true, nil
	}
	return false, fmt.Errorf("unknown message type %q", msg.Type)
}

// ServeConn plays one game session over conn until the client quits, the
// connection drops, or ctx is cancelled.
func ServeConn(ctx context.Context, conn net.Conn, cfg SessionConfig) error {
	var logger log.EventLogger
	if cfg.Logger != nil {
		logger = cfg.Logger()
	}
	engine, err := game.NewEngine(game.Config{
		Catalog: cfg.Catalog,
		Ledger:  cfg.Ledger,
		Logger:  logger,
		Seed:    cfg.Seed,
	})
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	obs := NewNetworkObserver(conn, CatalogLookup(cfg.Catalog))
	engine.Subscribe(obs)

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := engine.Start(); err != nil {
		_ = obs.Send(ServerMessage{Type: MsgError, Error: err.Error()})
		return fmt.Errorf("start game: %w", err)
	}

	dec := json.NewDecoder(conn)
	for {
		if err := obs.Err(); err != nil {
			return err
		}
		var msg ClientMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("recv: %w", err)
		}

		quit, opErr := HandleClientMessage(engine, msg)
		if quit {
			return nil
		}
		if opErr != nil {
			if err := obs.Send(ServerMessage{Type: MsgError, Error: opErr.Error()}); err != nil {
				return err
			}
		}
	}
}
