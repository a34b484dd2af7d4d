package meteor

import "time"

// Event is a notification from the session to its presentation layer.
// Events are delivered synchronously, in the order the state changed.
type Event interface {
	event()
}

// Listener receives session events.
type Listener func(Event)

// EntityCreated is emitted when an entity enters the registry.
type EntityCreated struct {
	Kind Kind
	ID   EntityID
	X, Y float64
}

func (EntityCreated) event() {}

// EntityDestroyed is emitted when an entity leaves the registry.
type EntityDestroyed struct {
	Kind   Kind
	ID     EntityID
	Reason DestroyReason
}

func (EntityDestroyed) event() {}

// PowerUpChanged is emitted when a power-up starts or expires.
type PowerUpChanged struct {
	Active    bool
	Kind      PowerUpKind
	Remaining time.Duration
}

func (PowerUpChanged) event() {}

// StrikesChanged is emitted after every strike.
type StrikesChanged struct {
	Strikes int
}

func (StrikesChanged) event() {}

// SessionEnded is emitted once, when the strike limit is reached.
type SessionEnded struct {
	FinalScore time.Duration
}

func (SessionEnded) event() {}

// BulletFired is emitted for every shot, manual or automatic.
type BulletFired struct {
	ID EntityID
}

func (BulletFired) event() {}

// GroundRaised is emitted when the ground steps up.
type GroundRaised struct {
	Steps   int
	GroundY float64
}

func (GroundRaised) event() {}

// DifficultyChanged is emitted when the meteor spawn interval shrinks.
type DifficultyChanged struct {
	Interval time.Duration
}

func (DifficultyChanged) event() {}

// DestroyReason tells listeners why an entity went away.
type DestroyReason int

const (
	ReasonStrike    DestroyReason = iota // Meteor hit the player
	ReasonShot                           // Meteor or bullet consumed by a bullet hit
	ReasonCollected                      // Pickup collected by the player
	ReasonOffscreen                      // Left the play area
	ReasonReset                          // Cleared by a session reset
)

// String returns a short name for the reason.
func (r DestroyReason) String() string {
	switch r {
	case ReasonStrike:
		return "strike"
	case ReasonShot:
		return "shot"
	case ReasonCollected:
		return "collected"
	case ReasonOffscreen:
		return "offscreen"
	case ReasonReset:
		return "reset"
	default:
		return "unknown"
	}
}
