package core

import "time"

// Event is a notification emitted by a game's core loop.
// The set of events is closed: only types in this package implement it.
type Event interface {
	gameEvent()
}

// CommandIssued is emitted when a reaction game asks for a new command.
type CommandIssued struct {
	Command string
	Round   int
	Limit   time.Duration
}

// ScoreChanged is emitted whenever the score increases.
type ScoreChanged struct {
	Score int
	Delta int
}

// GameEnded is emitted once per run when the game is over.
type GameEnded struct {
	Score        int
	HighScore    int
	NewHighScore bool
	Reason       string
}

// TimerTick reports the remaining response time of the outstanding command.
type TimerTick struct {
	Remaining time.Duration
	Limit     time.Duration
}

// PlayerHit is emitted when the player loses a strike.
type PlayerHit struct {
	Strikes    int
	MaxStrikes int
}

// LevelUp is emitted when the difficulty level increases.
type LevelUp struct {
	Level int
	Speed float64
}

// StateChanged is emitted on game state machine transitions.
type StateChanged struct {
	From, To string
}

func (CommandIssued) gameEvent() {}
func (ScoreChanged) gameEvent()  {}
func (GameEnded) gameEvent()     {}
func (TimerTick) gameEvent()     {}
func (PlayerHit) gameEvent()     {}
func (LevelUp) gameEvent()       {}
func (StateChanged) gameEvent()  {}

// EventBus is an observer list. Not safe for concurrent use: games publish
// from the single simulation goroutine.
type EventBus struct {
	next int
	subs []subscriber
}

type subscriber struct {
	id int
	fn func(Event)
}

// Subscribe registers fn and returns a function that removes it.
func (b *EventBus) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.next++
	id := b.next
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to every subscriber in subscription order.
func (b *EventBus) Publish(e Event) {
	for _, s := range append([]subscriber(nil), b.subs...) {
		s.fn(e)
	}
}

// EventRecorder buffers events between Drain calls. Games use it to return
// the events of one Step in StepResult.
type EventRecorder struct {
	events []Event
}

// Record appends e. Its signature matches EventBus.Subscribe.
func (r *EventRecorder) Record(e Event) {
	r.events = append(r.events, e)
}

// Drain returns the buffered events and empties the buffer.
func (r *EventRecorder) Drain() []Event {
	out := r.events
	r.events = nil
	return out
}
