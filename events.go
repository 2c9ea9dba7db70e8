package jiggle

import "github.com/go-gl/mathgl/mgl64"

const (
	HIT EventType = iota
	RAGE_CHANGED
	EXPLODE
	RESPAWN_START
	RESPAWN_DONE
	SETTLE
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// HitEvent fires when a smack lands on a surface.
type HitEvent struct {
	Point     mgl64.Vec3
	Intensity float64
}

func (e HitEvent) Type() EventType { return HIT }

// RageEvent fires whenever the rage level changes from a hit.
type RageEvent struct {
	Level float64
}

func (e RageEvent) Type() EventType { return RAGE_CHANGED }

// ExplodeEvent fires once when rage reaches the threshold.
type ExplodeEvent struct{}

func (e ExplodeEvent) Type() EventType { return EXPLODE }

// RespawnStartEvent fires when the particle burst completes and the
// re-entry animation begins.
type RespawnStartEvent struct{}

func (e RespawnStartEvent) Type() EventType { return RESPAWN_START }

// RespawnDoneEvent fires when the object is back at rest and
// interactive again.
type RespawnDoneEvent struct{}

func (e RespawnDoneEvent) Type() EventType { return RESPAWN_DONE }

// SettleEvent fires when wobble motion drops under the settle
// threshold and the object returns to idle floating.
type SettleEvent struct{}

func (e SettleEvent) Type() EventType { return SETTLE }

// EventListener - callback for events
type EventListener func(event Event)

// Events buffers notifications during a tick and delivers them at
// flush, fire-and-forget: listeners are sinks (audio, UI meters) the
// simulation never waits on.
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 64),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// emit buffers an event for the next flush.
func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
