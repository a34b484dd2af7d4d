package meteor

import "time"

// PowerUpKind identifies the power-up currently held by the player.
type PowerUpKind int

const (
	PowerUpNone PowerUpKind = iota
	PowerUpGun
)

// String returns the name of the power-up.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpNone:
		return "none"
	case PowerUpGun:
		return "gun"
	default:
		return "unknown"
	}
}

// PowerUpState is the single power-up slot. While Active, no further
// power-ups spawn or can be collected.
type PowerUpState struct {
	Active    bool
	Kind      PowerUpKind
	Remaining time.Duration
}

// Activate fills the slot for duration d.
func (p *PowerUpState) Activate(kind PowerUpKind, d time.Duration) {
	p.Active = true
	p.Kind = kind
	p.Remaining = d
}

// Advance counts the slot down and reports whether it expired during dt.
func (p *PowerUpState) Advance(dt time.Duration) bool {
	if !p.Active || dt <= 0 {
		return false
	}
	p.Remaining -= dt
	if p.Remaining > 0 {
		return false
	}
	p.Clear()
	return true
}

// Clear empties the slot.
func (p *PowerUpState) Clear() {
	*p = PowerUpState{}
}

// Armed reports whether the player currently holds the gun.
func (p PowerUpState) Armed() bool {
	return p.Active && p.Kind == PowerUpGun
}
