package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/peterkuimelis/swipecity/internal/game"
	swipenet "github.com/peterkuimelis/swipecity/internal/net"
)

var (
	// sessionMu guards activeSession; tool calls may arrive concurrently.
	sessionMu sync.Mutex

	// activeSession is the singleton game session (one per stdio process).
	activeSession *GameSession

	// catalog and ledgerConfig are what start_game builds engines from, set by main.
	catalog      = game.DefaultCatalog()
	ledgerConfig = game.DefaultLedgerConfig()
)

// SetCatalog sets the cards new sessions draw from.
func SetCatalog(cards []*game.Card) {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	catalog = cards
}

// SetLedgerConfig sets the resource bounds and cascade table for new sessions.
func SetLedgerConfig(cfg game.LedgerConfig) {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	ledgerConfig = cfg
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(swipeTool(), handleSwipe)
	s.AddTool(restartTool(), handleRestart)
	s.AddTool(getGameStateTool(), handleGetGameState)
	s.AddTool(listCardsTool(), handleListCards)
	s.AddTool(addCardTool(), handleAddCard)
	s.AddTool(removeCardTool(), handleRemoveCard)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new reign as mayor of Swipe City. Returns the first card and the four resources "+
			"(Economy, Technology, Environment, Happiness). The reign ends as soon as any resource hits its minimum or maximum. "+
			"Replaces any game already running."),
		mcp.WithNumber("seed", mcp.Description("Optional RNG seed for a reproducible deck order (0 or omitted for random). "+
			"The seed in use is returned either way.")),
	)
}

func swipeTool() mcp.Tool {
	return mcp.NewTool("swipe",
		mcp.WithDescription("Decide on the card on display. 'left' takes the card's left choice, 'right' its right choice. "+
			"Returns the events the decision caused, including cascades, and the next card."),
		mcp.WithString("direction", mcp.Required(), mcp.Enum("left", "right"), mcp.Description("Which side of the card to choose")),
	)
}

func restartTool() mcp.Tool {
	return mcp.NewTool("restart",
		mcp.WithDescription("Reset all resources, reshuffle the deck and start a new reign."),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current card, resources, and accumulated events without making a decision. Read-only."),
	)
}

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List the card definitions in the deck. Impacts are hidden; each side lists the resources it touches."),
		mcp.WithString("tag", mcp.Description("Only list cards carrying this tag")),
	)
}

func addCardTool() mcp.Tool {
	return mcp.NewTool("add_card",
		mcp.WithDescription("Shuffle a built-in card into the running game's deck. Cards already in the deck are rejected."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Built-in card ID, e.g. 'solar_farm'")),
	)
}

func removeCardTool() mcp.Tool {
	return mcp.NewTool("remove_card",
		mcp.WithDescription("Take a card out of the running game's deck. Removing the card on display shows the next one."),
		mcp.WithString("id", mcp.Required(), mcp.Description("ID of a card in the deck")),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	seed := int64(request.GetInt("seed", 0))
	if seed == 0 {
		seed = rand.Int63()
	}
	sess, err := NewGameSession(catalog, ledgerConfig, seed)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	activeSession = sess

	return mcp.NewToolResultText(respondJSON(sess.response())), nil
}

func handleSwipe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	var isRight bool
	switch dir := request.GetString("direction", ""); dir {
	case "left":
	case "right":
		isRight = true
	default:
		return mcp.NewToolResultErrorf("Invalid direction %q. Must be 'left' or 'right'.", dir), nil
	}

	resp, err := activeSession.Swipe(isRight)
	if errors.Is(err, game.ErrInvalidState) && activeSession.engine.Over() {
		return mcp.NewToolResultError("The reign is over. Use restart to play again."), nil
	}
	if err != nil {
		return mcp.NewToolResultErrorf("Swipe rejected: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	resp, err := activeSession.Restart()
	if err != nil {
		return mcp.NewToolResultErrorf("Restart failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	return mcp.NewToolResultText(respondJSON(activeSession.response())), nil
}

func handleListCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionMu.Lock()
	cards := game.NewCatalog(catalog)
	if activeSession != nil {
		cards = game.NewCatalog(activeSession.engine.Catalog())
	}
	sessionMu.Unlock()

	var views []*swipenet.CardView
	for _, c := range cards.ByTag(request.GetString("tag", "")) {
		views = append(views, swipenet.NewCardView(c))
	}
	if views == nil {
		views = []*swipenet.CardView{}
	}

	data, err := json.Marshal(views)
	if err != nil {
		return mcp.NewToolResultErrorf("marshal error: %v", err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleAddCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	card, err := game.LookupCard(request.GetString("id", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Unknown card: %v", err), nil
	}
	resp, err := activeSession.AddCard(card)
	if err != nil {
		return mcp.NewToolResultErrorf("Add rejected: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleRemoveCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	resp, err := activeSession.RemoveCard(request.GetString("id", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Remove rejected: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
