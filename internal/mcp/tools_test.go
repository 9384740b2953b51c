package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/peterkuimelis/swipecity/internal/game"
	swipenet "github.com/peterkuimelis/swipecity/internal/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, cards ...*game.Card) {
	t.Helper()
	SetCatalog(cards)
	SetLedgerConfig(game.DefaultLedgerConfig())
	t.Cleanup(func() {
		sessionMu.Lock()
		activeSession = nil
		sessionMu.Unlock()
		SetCatalog(game.DefaultCatalog())
	})
}

func request(args map[string]any) mcp.CallToolRequest {
	var r mcp.CallToolRequest
	r.Params.Arguments = args
	return r
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func decode(t *testing.T, res *mcp.CallToolResult) ToolResponse {
	t.Helper()
	require.False(t, res.IsError, textOf(t, res))
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &resp))
	return resp
}

func crashCard() *game.Card {
	return &game.Card{
		ID:    "crash",
		Title: "Market Crash",
		Tags:  []string{"economy"},
		Left:  game.Choice{Label: "Ride it out"},
		Right: game.Choice{Label: "Bail out the banks", Impacts: []game.Impact{
			{Resource: game.Economy, Delta: -60},
		}},
	}
}

func TestToolsRequireAGame(t *testing.T) {
	setup(t, crashCard())
	ctx := context.Background()

	res, err := handleGetGameState(ctx, request(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = handleSwipe(ctx, request(map[string]any{"direction": "left"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = handleRestart(ctx, request(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestPlayThroughTools(t *testing.T) {
	setup(t, crashCard())
	ctx := context.Background()

	res, err := handleStartGame(ctx, request(map[string]any{"seed": 7}))
	require.NoError(t, err)
	resp := decode(t, res)
	assert.Equal(t, int64(7), resp.Seed)
	require.NotNil(t, resp.State)
	require.NotNil(t, resp.State.Card)
	assert.Equal(t, "crash", resp.State.Card.ID)
	assert.Len(t, resp.State.Resources, game.ResourceCount)
	assert.False(t, resp.GameOver)

	res, err = handleSwipe(ctx, request(map[string]any{"direction": "up"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	// Left is harmless and leaves the engine ready for the next decision.
	res, err = handleSwipe(ctx, request(map[string]any{"direction": "left"}))
	require.NoError(t, err)
	resp = decode(t, res)
	assert.Equal(t, "Idle", resp.State.State)
	assert.Equal(t, 1, resp.State.Decisions)

	res, err = handleSwipe(ctx, request(map[string]any{"direction": "right"}))
	require.NoError(t, err)
	resp = decode(t, res)
	assert.True(t, resp.GameOver)
	assert.Contains(t, resp.Result, "Economy collapsed to 0")
	var types []string
	for _, ev := range resp.Events {
		types = append(types, ev.Type)
	}
	assert.Contains(t, types, "ResourceChanged")
	assert.Contains(t, types, "GameOver")

	res, err = handleSwipe(ctx, request(map[string]any{"direction": "left"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "restart")

	res, err = handleRestart(ctx, request(nil))
	require.NoError(t, err)
	resp = decode(t, res)
	assert.False(t, resp.GameOver)
	assert.Equal(t, 0, resp.State.Decisions)

	res, err = handleGetGameState(ctx, request(nil))
	require.NoError(t, err)
	resp = decode(t, res)
	assert.NotNil(t, resp.Events)
	assert.Empty(t, resp.Events, "events were drained by restart")
}

func TestStartGameWithNoCards(t *testing.T) {
	setup(t)
	res, err := handleStartGame(context.Background(), request(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestListCards(t *testing.T) {
	setup(t, crashCard(), game.SolarFarm())
	ctx := context.Background()

	res, err := handleListCards(ctx, request(map[string]any{"tag": "energy"}))
	require.NoError(t, err)
	var views []swipenet.CardView
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "solar_farm", views[0].ID)

	res, err = handleListCards(ctx, request(nil))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &views))
	assert.Len(t, views, 2)
}

func TestStartGameReportsSeed(t *testing.T) {
	setup(t, game.DefaultCatalog()...)
	ctx := context.Background()

	res, err := handleStartGame(ctx, request(nil))
	require.NoError(t, err)
	first := decode(t, res)
	require.NotZero(t, first.Seed, "a random seed is still reported")

	res, err = handleStartGame(ctx, request(map[string]any{"seed": first.Seed}))
	require.NoError(t, err)
	again := decode(t, res)
	assert.Equal(t, first.Seed, again.Seed)
	assert.Equal(t, first.State.Card.ID, again.State.Card.ID)
}

func TestAddAndRemoveCardTools(t *testing.T) {
	setup(t, crashCard())
	ctx := context.Background()

	res, err := handleAddCard(ctx, request(map[string]any{"id": "solar_farm"}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "needs a running game")

	_, err = handleStartGame(ctx, request(map[string]any{"seed": 1}))
	require.NoError(t, err)

	res, err = handleAddCard(ctx, request(map[string]any{"id": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = handleAddCard(ctx, request(map[string]any{"id": "solar_farm"}))
	require.NoError(t, err)
	resp := decode(t, res)
	assert.Equal(t, "crash", resp.State.Card.ID)

	res, err = handleAddCard(ctx, request(map[string]any{"id": "solar_farm"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	// Removing the card on display puts the next one in front of the agent.
	res, err = handleRemoveCard(ctx, request(map[string]any{"id": "crash"}))
	require.NoError(t, err)
	resp = decode(t, res)
	assert.Equal(t, "solar_farm", resp.State.Card.ID)
	require.NotEmpty(t, resp.Events)
	last := resp.Events[len(resp.Events)-1]
	assert.Equal(t, "ShowCard", last.Type)
	assert.Equal(t, "solar_farm", last.Card)

	res, err = handleRemoveCard(ctx, request(map[string]any{"id": "crash"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "not found")
}
