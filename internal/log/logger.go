package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Reset drops all recorded events. The sequence counter keeps running.
func (l *MemoryLogger) Reset() {
	l.events = nil
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	kind := e.Type.String()
	// Pad type to 16 chars for alignment
	for len(kind) < 16 {
		kind += " "
	}
	return fmt.Sprintf("R%-3d %s| %s", e.Round, kind, e.Details)
}

// FormatResources renders a snapshot as "Economy 50 | Technology 48 | ...".
func FormatResources(values []ResourceValue) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%s %d", v.Name, v.Value))
	}
	return strings.Join(parts, " | ")
}

// --- Helper constructors for common events ---

func NewResourceChangedEvent(name string, oldValue, newValue int) GameEvent {
	return GameEvent{
		Type:     EventResourceChanged,
		Resource: name,
		Old:      oldValue,
		Value:    newValue,
		Details:  fmt.Sprintf("%s: %d → %d", name, oldValue, newValue),
	}
}

func NewResourcesUpdatedEvent(values []ResourceValue) GameEvent {
	return GameEvent{
		Type:      EventResourcesUpdated,
		Resources: values,
		Details:   FormatResources(values),
	}
}

func NewShowCardEvent(cardID, title string) GameEvent {
	return GameEvent{
		Type:    EventShowCard,
		Card:    cardID,
		Details: fmt.Sprintf("Next card: %s", title),
	}
}

func NewDecisionEvent(cardID, title string, isRight bool, label string) GameEvent {
	side := "left"
	if isRight {
		side = "right"
	}
	return GameEvent{
		Type:    EventDecision,
		Card:    cardID,
		Details: fmt.Sprintf("Swiped %s on %s (%s)", side, title, label),
	}
}

func NewGameOverEvent(reason string) GameEvent {
	return GameEvent{
		Type:    EventGameOver,
		Details: fmt.Sprintf("Game over: %s", reason),
	}
}

func NewShuffleEvent(cards int) GameEvent {
	return GameEvent{
		Type:    EventShuffle,
		Details: fmt.Sprintf("Deck reshuffled (%d cards)", cards),
	}
}

func NewReadyEvent() GameEvent {
	return GameEvent{
		Type:    EventReady,
		Details: "Ready for next decision",
	}
}

func NewRestartEvent() GameEvent {
	return GameEvent{
		Type:    EventRestart,
		Details: "Game restarted",
	}
}

func NewNoCardsEvent() GameEvent {
	return GameEvent{
		Type:    EventNoCards,
		Details: "No cards available to show",
	}
}
