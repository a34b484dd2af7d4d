package meteor

import (
	"math"
	"time"
)

// EntityID identifies an entity for the lifetime of a session. IDs are never reused.
type EntityID uint64

// Kind is the variant tag of an entity.
type Kind int

const (
	KindPlayer Kind = iota
	KindMeteor
	KindBullet
	KindGun
	KindSecretBox
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindMeteor:
		return "meteor"
	case KindBullet:
		return "bullet"
	case KindGun:
		return "gun"
	case KindSecretBox:
		return "secret_box"
	default:
		return "unknown"
	}
}

// Body is the kinematic part shared by every entity.
// X and Y are the centre of the hitbox.
type Body struct {
	X, Y   float64
	VX, VY float64 // pixels per second
	W, H   float64
}

// Bounds returns the top-left corner and size of the hitbox.
func (b Body) Bounds() (x, y, w, h float64) {
	return b.X - b.W/2, b.Y - b.H/2, b.W, b.H
}

// MeteorState holds the fields that only meteors carry.
type MeteorState struct {
	Zigzag bool
	StartX float64
	Hit    bool // Set once the meteor has been resolved
}

// Entity is a tagged variant: Meteor is non-nil only for KindMeteor.
type Entity struct {
	ID        EntityID
	Kind      Kind
	Body      Body
	CreatedAt time.Duration
	Meteor    *MeteorState
}

// SpawnParams describes a new entity.
type SpawnParams struct {
	Body   Body
	At     time.Duration // Spawn time on the session clock
	Zigzag bool          // Meteors only
}

// ZigzagX is the horizontal position of a zigzagging meteor that started at
// startX, age after it spawned. It depends on elapsed time only, never on
// how many frames were rendered.
func ZigzagX(startX float64, age time.Duration, amplitude, frequency float64) float64 {
	ms := float64(age) / float64(time.Millisecond)
	return startX + math.Sin(ms*0.001*frequency)*amplitude
}
