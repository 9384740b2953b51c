package net

import (
	"github.com/peterkuimelis/swipecity/internal/game"
	"github.com/peterkuimelis/swipecity/internal/log"
)

// Message types for the JSON protocol over TCP and WebSocket.

// Server → client message types.
const (
	MsgShowCard  = "show_card"
	MsgResource  = "resource"
	MsgResources = "resources"
	MsgGameOver  = "game_over"
	MsgReady     = "ready"
	MsgNotify    = "notify"
	MsgError     = "error"
)

// Client → server message types.
const (
	MsgSwipe   = "swipe"
	MsgAck     = "ack"
	MsgRestart = "restart"
	MsgQuit    = "quit"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "show_card"
	Card *CardView `json:"card,omitempty"`

	// For "resource"
	Resource *ResourceView `json:"resource,omitempty"`

	// For "resources"
	Resources []ResourceView `json:"resources,omitempty"`

	Round int `json:"round,omitempty"`

	// For "game_over"
	Result string `json:"result,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Round   int    `json:"round"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// CardView is a card as the player sees it. Impact magnitudes stay hidden;
// each side only lists the resources it touches.
type CardView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Image       string     `json:"image,omitempty"`
	Left        ChoiceView `json:"left"`
	Right       ChoiceView `json:"right"`
}

// ChoiceView is one side of a card.
type ChoiceView struct {
	Label   string   `json:"label"`
	Affects []string `json:"affects,omitempty"`
}

// ResourceView is one resource counter.
type ResourceView struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Old   int    `json:"old,omitempty"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

// StateView is a full snapshot of one session.
type StateView struct {
	Card      *CardView      `json:"card,omitempty"`
	Resources []ResourceView `json:"resources"`
	Decisions int            `json:"decisions"`
	State     string         `json:"state"`
	Over      bool           `json:"over"`
	Result    string         `json:"result,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "swipe"
	Right bool `json:"right,omitempty"`
}

// --- Views ---

// NewCardView builds the player-facing view of a card.
func NewCardView(c *game.Card) *CardView {
	if c == nil {
		return nil
	}
	return &CardView{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Image:       c.Image,
		Left:        newChoiceView(c.Left),
		Right:       newChoiceView(c.Right),
	}
}

func newChoiceView(ch game.Choice) ChoiceView {
	cv := ChoiceView{Label: ch.Label}
	seen := make(map[game.ResourceType]bool)
	for _, imp := range ch.Impacts {
		if imp.Delta == 0 || seen[imp.Resource] {
			continue
		}
		seen[imp.Resource] = true
		cv.Affects = append(cv.Affects, imp.Resource.String())
	}
	return cv
}

// ResourceViews converts an event snapshot to views.
func ResourceViews(values []log.ResourceValue) []ResourceView {
	out := make([]ResourceView, 0, len(values))
	for _, v := range values {
		out = append(out, ResourceView{Name: v.Name, Value: v.Value, Min: v.Min, Max: v.Max})
	}
	return out
}

// BuildStateView snapshots an engine. It locks the engine, so it must not be
// called from inside an observer.
func BuildStateView(e *game.Engine) *StateView {
	sv := &StateView{
		Resources: ResourceViews(game.ResourceValues(e.Snapshot())),
		Decisions: e.Decisions(),
		State:     e.State().String(),
		Over:      e.Over(),
		Result:    e.Result(),
	}
	if e.Started() {
		if card, err := e.Current(); err == nil {
			sv.Card = NewCardView(card)
		}
	}
	return sv
}

// CardLookup resolves a card ID to its definition.
type CardLookup func(id string) (*game.Card, bool)

// CatalogLookup returns a CardLookup over a fixed set of cards.
func CatalogLookup(cards []*game.Card) CardLookup {
	c := game.NewCatalog(cards)
	return c.Lookup
}

// EventMessage translates an engine event to the wire message a client
// receives for it.
func EventMessage(event log.GameEvent, lookup CardLookup) ServerMessage {
	switch event.Type {
	case log.EventShowCard:
		msg := ServerMessage{Type: MsgShowCard, Round: event.Round}
		if card, ok := lookup(event.Card); ok {
			msg.Card = NewCardView(card)
		} else {
			msg.Card = &CardView{ID: event.Card, Title: event.Card}
		}
		return msg
	case log.EventResourceChanged:
		return ServerMessage{
			Type:     MsgResource,
			Round:    event.Round,
			Resource: &ResourceView{Name: event.Resource, Old: event.Old, Value: event.Value},
		}
	case log.EventResourcesUpdated:
		return ServerMessage{Type: MsgResources, Round: event.Round, Resources: ResourceViews(event.Resources)}
	case log.EventGameOver:
		return ServerMessage{Type: MsgGameOver, Round: event.Round, Result: event.Details}
	case log.EventReady:
		return ServerMessage{Type: MsgReady, Round: event.Round}
	}
	return ServerMessage{
		Type: MsgNotify,
		Event: &EventView{
			Round:   event.Round,
			Type:    event.Type.String(),
			Card:    event.Card,
			Details: event.Details,
		},
	}
}
