package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/swipecity/internal/game"
	"github.com/peterkuimelis/swipecity/internal/log"
	swipenet "github.com/peterkuimelis/swipecity/internal/net"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []swipenet.EventView `json:"events"`
	State    *swipenet.StateView  `json:"state,omitempty"`
	GameOver bool                 `json:"game_over"`
	Result   string               `json:"result,omitempty"`
	Seed     int64                `json:"seed,omitempty"`
}

// GameSession holds the state of a single MCP game session.
type GameSession struct {
	engine *game.Engine
	seed   int64

	mu     sync.Mutex
	events []swipenet.EventView
}

// NewGameSession builds an engine over the catalog and starts the first game.
func NewGameSession(cards []*game.Card, ledger game.LedgerConfig, seed int64) (*GameSession, error) {
	engine, err := game.NewEngine(game.Config{
		Catalog: cards,
		Ledger:  ledger,
		Logger:  log.NewMemoryLogger(),
		Seed:    seed,
	})
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	sess := &GameSession{engine: engine, seed: seed}
	engine.Subscribe(&eventCollector{session: sess})
	if err := engine.Start(); err != nil {
		return nil, fmt.Errorf("start game: %w", err)
	}
	return sess, nil
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev swipenet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []swipenet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}

// Swipe submits a decision and completes the transition at once; an agent
// has no animation to wait for.
func (s *GameSession) Swipe(isRight bool) (*ToolResponse, error) {
	if err := s.engine.SubmitDecision(isRight); err != nil {
		return nil, err
	}
	if !s.engine.Over() {
		if err := s.engine.TransitionComplete(); err != nil {
			return nil, err
		}
	}
	return s.response(), nil
}

// Restart begins a new game in the same session.
func (s *GameSession) Restart() (*ToolResponse, error) {
	if err := s.engine.Restart(); err != nil {
		return nil, err
	}
	return s.response(), nil
}

// AddCard puts a card into the deck of the running game.
func (s *GameSession) AddCard(card *game.Card) (*ToolResponse, error) {
	if !s.engine.AddCard(card) {
		return nil, fmt.Errorf("card %q is already in the deck", card.ID)
	}
	return s.response(), nil
}

// RemoveCard takes the card with the given ID out of the deck.
func (s *GameSession) RemoveCard(id string) (*ToolResponse, error) {
	for _, card := range s.engine.Catalog() {
		if card.ID == id {
			s.engine.RemoveCard(card)
			return s.response(), nil
		}
	}
	return nil, fmt.Errorf("card %q: %w", id, game.ErrNotFound)
}

// response drains the event buffer and snapshots the engine.
func (s *GameSession) response() *ToolResponse {
	resp := &ToolResponse{
		Events:   s.drainEvents(),
		State:    swipenet.BuildStateView(s.engine),
		GameOver: s.engine.Over(),
		Result:   s.engine.Result(),
		Seed:     s.seed,
	}
	// Ensure events is never null in JSON
	if resp.Events == nil {
		resp.Events = []swipenet.EventView{}
	}
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
