package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventResourceChanged EventType = iota
	EventResourcesUpdated
	EventShowCard
	EventGameOver
	EventDecision
	EventShuffle
	EventReady   // transition acknowledged, engine accepts the next decision
	EventRestart
	EventNoCards // deck empty when a card was requested
)

func (e EventType) String() string {
	switch e {
	case EventResourceChanged:
		return "ResourceChanged"
	case EventResourcesUpdated:
		return "ResourcesUpdated"
	case EventShowCard:
		return "ShowCard"
	case EventGameOver:
		return "GameOver"
	case EventDecision:
		return "Decision"
	case EventShuffle:
		return "Shuffle"
	case EventReady:
		return "Ready"
	case EventRestart:
		return "Restart"
	case EventNoCards:
		return "NoCards"
	default:
		return "Unknown"
	}
}

// ResourceValue is one resource's state at the time of an event.
type ResourceValue struct {
	Name  string
	Value int
	Min   int
	Max   int
}

// GameEvent represents a single observable event in a reign.
type GameEvent struct {
	Seq       int             // monotonic sequence number
	Round     int             // decisions accepted so far in this reign
	Type      EventType       // event type
	Resource  string          // resource name (ResourceChanged)
	Old       int             // value before the change (ResourceChanged)
	Value     int             // value after the change (ResourceChanged)
	Card      string          // card id (ShowCard, Decision)
	Resources []ResourceValue // full snapshot (ResourcesUpdated)
	Details   string          // human-readable detail string
}
