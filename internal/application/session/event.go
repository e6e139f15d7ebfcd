package session

// EventType names a session event
type EventType string

const (
	EventTransition EventType = "transition"
	EventOutcome    EventType = "outcome"
	EventFuel       EventType = "fuel"
)

// Event is published to listeners as the session advances.
// From/To are set for transitions, Outcome for outcomes and Fuel for fuel steps.
type Event struct {
	Type      EventType `json:"type"`
	Frame     int       `json:"frame"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
	Fuel      float64   `json:"fuel"`
	Lives     int       `json:"lives"`
	Hitpoints int       `json:"hitpoints"`
	Lamps     int       `json:"lamps"`
}

// Listener receives session events
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(event Event)

// OnEvent calls f
func (f ListenerFunc) OnEvent(event Event) { f(event) }

// dispatcher fans events out per type
type dispatcher struct {
	listeners map[EventType][]Listener
}

func newDispatcher() *dispatcher {
	return &dispatcher{listeners: make(map[EventType][]Listener)}
}

func (d *dispatcher) subscribe(listener Listener, types ...EventType) {
	if len(types) == 0 {
		types = []EventType{EventTransition, EventOutcome, EventFuel}
	}
	for _, t := range types {
		d.listeners[t] = append(d.listeners[t], listener)
	}
}

func (d *dispatcher) dispatch(event Event) {
	for _, l := range d.listeners[event.Type] {
		l.OnEvent(event)
	}
}
