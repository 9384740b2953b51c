package game

import (
	"testing"

	"github.com/peterkuimelis/swipecity/internal/log"
	"github.com/stretchr/testify/require"
)

// recorder is an Observer that keeps every notification for assertions.
type recorder struct {
	log.MemoryLogger
}

func (r *recorder) Notify(event log.GameEvent) {
	r.Log(event)
}

// testCard builds a card with the given impacts on each side.
func testCard(id string, left, right []Impact) *Card {
	return &Card{
		ID:    id,
		Title: id,
		Left:  Choice{Label: "no", Impacts: left},
		Right: Choice{Label: "yes", Impacts: right},
	}
}

// makeCards builds n cards with no impacts.
func makeCards(n int) []*Card {
	cards := make([]*Card, n)
	for i := range cards {
		cards[i] = testCard(string(rune('a'+i)), nil, nil)
	}
	return cards
}

// ledgerWith returns a default-bounded ledger with custom starting values.
func ledgerWith(t *testing.T, values map[ResourceType]int) *Ledger {
	t.Helper()
	cfg := DefaultLedgerConfig()
	for i := range cfg.Resources {
		if v, ok := values[cfg.Resources[i].Type]; ok {
			cfg.Resources[i].Initial = v
		}
	}
	l, err := NewLedger(cfg)
	require.NoError(t, err)
	return l
}

// newTestEngine starts a deterministic engine over the given cards.
func newTestEngine(t *testing.T, cards []*Card, values map[ResourceType]int) (*Engine, *recorder) {
	t.Helper()
	cfg := DefaultLedgerConfig()
	for i := range cfg.Resources {
		if v, ok := values[cfg.Resources[i].Type]; ok {
			cfg.Resources[i].Initial = v
		}
	}
	e, err := NewEngine(Config{Catalog: cards, Ledger: cfg, Seed: 1, NoShuffle: true})
	require.NoError(t, err)

	rec := &recorder{}
	e.Subscribe(rec)
	require.NoError(t, e.Start())
	return e, rec
}
