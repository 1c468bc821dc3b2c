package match

import "github.com/go-gl/mathgl/mgl64"

type EventType int

const (
	EventReady EventType = iota
	EventStart
	EventPitch
	EventCalledStrike
	EventBall
	EventSwingMiss
	EventFoul
	EventContact
	EventStrikeout
	EventOut
	EventAdvance
	EventRun
	EventHomeRun
	EventHalfOver
)

type Event struct {
	Type    EventType
	Message string
	Runs    int        // runs credited by this event
	At      mgl64.Vec2 // field position for ball and fielding events
	Tick    int
}

type EventHandler func(Event)

// EventBus fans match events out to presentation glue (audio, verbose logs).
type EventBus struct {
	handlers map[EventType][]EventHandler
	all      []EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	eb.all = append(eb.all, fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
	for _, fn := range eb.all {
		fn(e)
	}
}

// EventLog is the append-only message sink shown beside the field.
// Older lines fall off once capacity is reached.
type EventLog struct {
	lines []string
	cap   int
}

func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = 1
	}
	return &EventLog{cap: capacity}
}

func (l *EventLog) Append(s string) {
	l.lines = append(l.lines, s)
	if over := len(l.lines) - l.cap; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
}

// Lines returns up to n lines, most recent first. n <= 0 returns all.
func (l *EventLog) Lines(n int) []string {
	if n <= 0 || n > len(l.lines) {
		n = len(l.lines)
	}
	out := make([]string, 0, n)
	for i := len(l.lines) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.lines[i])
	}
	return out
}

// Latest returns the most recent line, or "" if the log is empty.
func (l *EventLog) Latest() string {
	if len(l.lines) == 0 {
		return ""
	}
	return l.lines[len(l.lines)-1]
}

func (l *EventLog) Len() int { return len(l.lines) }

func (l *EventLog) Clear() { l.lines = l.lines[:0] }
