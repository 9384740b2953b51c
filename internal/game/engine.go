package game

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/peterkuimelis/swipecity/internal/log"
)

// Observer receives every event the engine emits. Notify runs synchronously
// on the goroutine that drove the engine and must not call back into it.
type Observer interface {
	Notify(event log.GameEvent)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(event log.GameEvent)

func (f ObserverFunc) Notify(event log.GameEvent) {
	f(event)
}

// Config holds configuration for creating a new engine.
type Config struct {
	Catalog   []*Card // card definitions; duplicates by ID are dropped
	Ledger    LedgerConfig
	Logger    log.EventLogger
	Seed      int64 // RNG seed (0 for random)
	NoShuffle bool  // keep catalog order (for deterministic tests)
}

// Engine orchestrates decisions: impacts go to the ledger, the deck moves on,
// and presentation must acknowledge each card transition before the next
// decision is accepted.
type Engine struct {
	mu        sync.Mutex
	ledger    *Ledger
	deck      *Deck
	catalog   *Catalog
	logger    log.EventLogger
	observers []Observer
	noShuffle bool

	state     State
	started   bool
	over      bool
	decisions int
	result    string
}

// NewEngine creates a new engine from the given config.
func NewEngine(cfg Config) (*Engine, error) {
	ledger, err := NewLedger(cfg.Ledger)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	catalog := NewCatalog(cfg.Catalog)
	e := &Engine{
		ledger:    ledger,
		deck:      NewDeck(catalog.Cards(), rand.New(rand.NewSource(seed))),
		catalog:   catalog,
		logger:    logger,
		noShuffle: cfg.NoShuffle,
	}
	ledger.Subscribe(ObserverFunc(e.emit))
	return e, nil
}

// Subscribe registers an observer for all subsequent events.
func (e *Engine) Subscribe(o Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, o)
}

// emit stamps the event with the current round and fans it out.
// Must be called with mu held.
func (e *Engine) emit(event log.GameEvent) {
	event.Round = e.decisions
	e.logger.Log(event)
	for _, o := range e.observers {
		o.Notify(event)
	}
}

// Start shuffles the deck and shows the first card.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return fmt.Errorf("%w: engine already started", ErrInvalidState)
	}
	if e.deck.Len() == 0 {
		e.logger.Log(log.NewNoCardsEvent())
		return ErrNoCards
	}
	e.shuffle()
	e.started = true
	e.state = StateIdle

	e.emit(log.NewResourcesUpdatedEvent(e.ledger.values()))
	return e.showCurrent()
}

func (e *Engine) shuffle() {
	if e.noShuffle {
		e.deck.Rewind()
		return
	}
	e.deck.Shuffle()
}

// showCurrent emits ShowCard for the card at the deck position.
// Must be called with mu held.
func (e *Engine) showCurrent() error {
	card, err := e.deck.Current()
	if err != nil {
		e.logger.Log(log.NewNoCardsEvent())
		return err
	}
	e.emit(log.NewShowCardEvent(card.ID, card.Title))
	return nil
}

// SubmitDecision applies the chosen side of the current card. It is only
// accepted while Idle; rejected calls change nothing and emit nothing.
func (e *Engine) SubmitDecision(isRight bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case !e.started:
		return fmt.Errorf("%w: engine not started", ErrInvalidState)
	case e.over:
		return fmt.Errorf("%w: game is over", ErrInvalidState)
	case e.state == StateTransitioning:
		return fmt.Errorf("%w: decision submitted while transitioning", ErrInvalidState)
	}

	card, err := e.deck.Current()
	if err != nil {
		e.logger.Log(log.NewNoCardsEvent())
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	chosen := card.Choice(isRight)
	e.decisions++
	e.emit(log.NewDecisionEvent(card.ID, card.Title, isRight, chosen.Label))

	for _, imp := range chosen.Impacts {
		e.ledger.Update(imp.Resource, imp.Delta)
	}

	// Terminal check sees the ledger after every cascade of this decision.
	if r, ok := e.ledger.TerminalResource(); ok {
		e.over = true
		e.result = fmt.Sprintf("%s after %d decisions", GameOverReason(r), e.decisions)
		e.emit(log.NewGameOverEvent(e.result))
		return nil
	}

	reshuffled, err := e.deck.Advance()
	if err != nil {
		e.logger.Log(log.NewNoCardsEvent())
		return err
	}
	if reshuffled {
		e.emit(log.NewShuffleEvent(e.deck.Len()))
	}

	e.state = StateTransitioning
	return e.showCurrent()
}

// TransitionComplete is called by presentation once the card-off/card-in
// transition has finished. It returns the engine to Idle.
func (e *Engine) TransitionComplete() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateTransitioning {
		return fmt.Errorf("%w: no transition in flight", ErrInvalidState)
	}
	e.state = StateIdle
	e.emit(log.NewReadyEvent())
	return nil
}

// Restart resets the resources, reshuffles the deck and shows the first card.
func (e *Engine) Restart() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.deck.Len() == 0 {
		e.logger.Log(log.NewNoCardsEvent())
		return ErrNoCards
	}

	e.decisions = 0
	e.over = false
	e.result = ""
	e.state = StateIdle
	e.started = true

	e.emit(log.NewRestartEvent())
	e.ledger.Reset()
	e.shuffle()
	if !e.noShuffle {
		e.emit(log.NewShuffleEvent(e.deck.Len()))
	}
	return e.showCurrent()
}

// --- Read-only accessors ---

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Started() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started
}

// Over reports whether a resource has reached a boundary.
func (e *Engine) Over() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.over
}

// Result describes how the reign ended; empty while playing.
func (e *Engine) Result() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// Decisions returns the number of decisions accepted since the last (re)start.
func (e *Engine) Decisions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.decisions
}

// Current returns the card on display.
func (e *Engine) Current() (*Card, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deck.Current()
}

// Snapshot returns a copy of all resources.
func (e *Engine) Snapshot() []Resource {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Snapshot()
}

// Catalog returns the card definitions the deck was built from.
func (e *Engine) Catalog() []*Card {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.Cards()
}

// AddCard puts a new card into the deck and catalog.
func (e *Engine) AddCard(card *Card) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.catalog.Add(card) {
		return false
	}
	return e.deck.Add(card)
}

// RemoveCard takes a card out of the deck and catalog. Removing the card on
// display shows the card that takes its place.
func (e *Engine) RemoveCard(card *Card) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.catalog.Remove(card) {
		return false
	}
	before, _ := e.deck.Current()
	if !e.deck.Remove(card) {
		return false
	}
	if !e.started || e.over {
		return true
	}
	after, err := e.deck.Current()
	if err != nil {
		e.logger.Log(log.NewNoCardsEvent())
		return true
	}
	if after != before {
		e.emit(log.NewShowCardEvent(after.ID, after.Title))
	}
	return true
}
