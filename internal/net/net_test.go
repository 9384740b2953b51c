package net

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/peterkuimelis/swipecity/internal/game"
	"github.com/peterkuimelis/swipecity/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crashCard() *game.Card {
	return &game.Card{
		ID:    "crash",
		Title: "Market Crash",
		Left:  game.Choice{Label: "Ride it out"},
		Right: game.Choice{Label: "Bail out the banks", Impacts: []game.Impact{
			{Resource: game.Economy, Delta: -60},
		}},
	}
}

func testSession() SessionConfig {
	return SessionConfig{
		Catalog: []*game.Card{crashCard()},
		Ledger:  game.DefaultLedgerConfig(),
		Seed:    1,
		Logger:  func() log.EventLogger { return log.NewMemoryLogger() },
	}
}

// readUntil decodes messages until one of the wanted type arrives.
func readUntil(t *testing.T, dec *json.Decoder, want string) (ServerMessage, []ServerMessage) {
	t.Helper()
	var seen []ServerMessage
	for {
		var msg ServerMessage
		require.NoError(t, dec.Decode(&msg))
		seen = append(seen, msg)
		if msg.Type == want {
			return msg, seen
		}
	}
}

func TestServeConnPlaysAGame(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	done := make(chan error, 1)
	go func() { done <- ServeConn(context.Background(), server, testSession()) }()

	dec := json.NewDecoder(client)
	enc := json.NewEncoder(client)

	msg, seen := readUntil(t, dec, MsgShowCard)
	require.NotNil(t, msg.Card)
	assert.Equal(t, "crash", msg.Card.ID)
	assert.Equal(t, []string{"Economy"}, msg.Card.Right.Affects)
	assert.Empty(t, msg.Card.Left.Affects)
	assert.Equal(t, MsgResources, seen[0].Type)
	assert.Len(t, seen[0].Resources, game.ResourceCount)

	// A harmless swipe cycles the single-card deck.
	require.NoError(t, enc.Encode(ClientMessage{Type: MsgSwipe}))
	_, seen = readUntil(t, dec, MsgShowCard)
	assert.Equal(t, MsgNotify, seen[0].Type)
	assert.Equal(t, "Decision", seen[0].Event.Type)

	// Swiping again before the transition is acknowledged is rejected.
	require.NoError(t, enc.Encode(ClientMessage{Type: MsgSwipe, Right: true}))
	msg, _ = readUntil(t, dec, MsgError)
	assert.Contains(t, msg.Error, "transitioning")

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgAck}))
	readUntil(t, dec, MsgReady)

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgSwipe, Right: true}))
	msg, seen = readUntil(t, dec, MsgGameOver)
	assert.Contains(t, msg.Result, "Economy collapsed to 0")
	var changed []string
	for _, m := range seen {
		if m.Type == MsgResource {
			changed = append(changed, m.Resource.Name)
		}
	}
	assert.Equal(t, []string{"Economy", "Happiness"}, changed)

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgRestart}))
	msg, _ = readUntil(t, dec, MsgShowCard)
	assert.Equal(t, "crash", msg.Card.ID)

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgQuit}))
	assert.NoError(t, <-done)
}

func TestServeConnUnknownMessage(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	go func() { _ = ServeConn(context.Background(), server, testSession()) }()

	dec := json.NewDecoder(client)
	readUntil(t, dec, MsgShowCard)
	require.NoError(t, json.NewEncoder(client).Encode(ClientMessage{Type: "dance"}))
	msg, _ := readUntil(t, dec, MsgError)
	assert.Contains(t, msg.Error, "dance")
}

func TestServeConnEmptyCatalog(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	cfg := testSession()
	cfg.Catalog = nil
	done := make(chan error, 1)
	go func() { done <- ServeConn(context.Background(), server, cfg) }()

	msg, _ := readUntil(t, json.NewDecoder(client), MsgError)
	assert.Contains(t, msg.Error, "no cards")
	assert.ErrorIs(t, <-done, game.ErrNoCards)
}

func TestClientAgainstServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	srv := &Server{Session: testSession(), Out: io.Discard}
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ctx, ln) }()

	conn, err := net.DialTimeout("tcp", ln.Addr().String(), time.Second)
	require.NoError(t, err)
	defer conn.Close()

	var out bytes.Buffer
	input := strings.NewReader("sideways\nr\nn\n")
	require.NoError(t, NewClient(conn, input, &out).RunREPL(ctx))

	text := out.String()
	assert.Contains(t, text, "Market Crash")
	assert.Contains(t, text, "Enter l or r")
	assert.Contains(t, text, "GAME OVER")
	assert.Contains(t, text, "Economy collapsed to 0")

	cancel()
	assert.NoError(t, <-served)
}

func TestEventMessageFallsBackForUnknownCards(t *testing.T) {
	msg := EventMessage(log.NewShowCardEvent("ghost", "Ghost"), CatalogLookup(nil))
	require.NotNil(t, msg.Card)
	assert.Equal(t, "ghost", msg.Card.ID)

	msg = EventMessage(log.NewShuffleEvent(3), CatalogLookup(nil))
	assert.Equal(t, MsgNotify, msg.Type)
	assert.Equal(t, "Shuffle", msg.Event.Type)
}
