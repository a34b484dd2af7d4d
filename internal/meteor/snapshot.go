package meteor

import "time"

// Snapshot is a plain copy of the session state for replays, logging and
// tests. Two runs with the same seed and dt sequence produce snapshots that
// are reflect.DeepEqual.
type Snapshot struct {
	Ticks         uint64
	Elapsed       time.Duration
	State         string
	Strikes       int
	FinalScore    time.Duration
	SpawnInterval time.Duration
	PowerUp       PowerUpState
	HitActive     bool
	GroundY       float64
	Stats         Stats
	Entities      []EntitySnapshot
}

// EntitySnapshot is the state of one entity.
type EntitySnapshot struct {
	ID        EntityID
	Kind      string
	X, Y      float64
	VX, VY    float64
	CreatedAt time.Duration
	Hit       bool
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Ticks:         s.ticks,
		Elapsed:       s.Elapsed(),
		State:         s.state.String(),
		Strikes:       s.stats.Strikes,
		FinalScore:    s.finalScore,
		SpawnInterval: s.difficulty.Interval(),
		PowerUp:       s.powerUp,
		HitActive:     s.HitActive(),
		GroundY:       s.ground.Top(),
		Stats:         s.stats,
		Entities:      make([]EntitySnapshot, 0, s.registry.Len()),
	}

	s.registry.ForEach(func(e *Entity) {
		es := EntitySnapshot{
			ID:        e.ID,
			Kind:      e.Kind.String(),
			X:         e.Body.X,
			Y:         e.Body.Y,
			VX:        e.Body.VX,
			VY:        e.Body.VY,
			CreatedAt: e.CreatedAt,
		}
		if e.Meteor != nil {
			es.Hit = e.Meteor.Hit
		}
		snap.Entities = append(snap.Entities, es)
	})

	return snap
}
