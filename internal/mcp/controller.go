package mcp

import (
	"github.com/peterkuimelis/swipecity/internal/log"
	"github.com/peterkuimelis/swipecity/internal/net"
)

// eventCollector implements game.Observer by buffering events until the
// next tool call drains them. Per-resource changes are folded into the
// batch snapshot, so only the decision-level story reaches the agent.
type eventCollector struct {
	session *GameSession
}

// Notify implements game.Observer.
func (c *eventCollector) Notify(event log.GameEvent) {
	switch event.Type {
	case log.EventResourcesUpdated, log.EventReady:
		return
	}
	c.session.appendEvent(net.EventView{
		Round:   event.Round,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	})
}
