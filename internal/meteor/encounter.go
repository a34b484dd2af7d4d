package meteor

// Outcome is the result of resolving an overlap.
type Outcome int

const (
	OutcomeNone       Outcome = iota // Nothing happened
	OutcomeStrike                    // A meteor hit the player
	OutcomeGunPickup                 // The player collected a gun
	OutcomeBoxPickup                 // The player collected a secret box
	OutcomeBulletKill                // A bullet destroyed a meteor
)

// String returns the name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeStrike:
		return "strike"
	case OutcomeGunPickup:
		return "gun_pickup"
	case OutcomeBoxPickup:
		return "box_pickup"
	case OutcomeBulletKill:
		return "bullet_kill"
	default:
		return "unknown"
	}
}

// Resolver turns overlap reports into state changes on its session.
// Every rule checks that both entities are still alive (and, for meteors,
// not yet hit), so repeated or stale reports are harmless.
type Resolver struct {
	s *Session
}

// Resolve handles an overlap between a and b, in either order.
func (r Resolver) Resolve(a, b EntityID) Outcome {
	s := r.s
	if s.state != StatePlaying || a == b {
		return OutcomeNone
	}
	ea, ok := s.registry.Get(a)
	if !ok {
		return OutcomeNone
	}
	eb, ok := s.registry.Get(b)
	if !ok {
		return OutcomeNone
	}

	// Order the pair so the lower kind comes first: player < meteor < bullet < pickups.
	if ea.Kind > eb.Kind {
		ea, eb = eb, ea
	}

	switch {
	case ea.Kind == KindPlayer && eb.Kind == KindMeteor:
		return r.strike(eb)
	case ea.Kind == KindPlayer && eb.Kind == KindGun:
		return r.pickupGun(eb)
	case ea.Kind == KindPlayer && eb.Kind == KindSecretBox:
		return r.pickupSecretBox(eb)
	case ea.Kind == KindMeteor && eb.Kind == KindBullet:
		return r.shoot(eb, ea)
	}
	return OutcomeNone
}

func (r Resolver) strike(m *Entity) Outcome {
	if m.Meteor == nil || m.Meteor.Hit {
		return OutcomeNone
	}
	s := r.s
	m.Meteor.Hit = true
	s.registry.Destroy(m.ID, ReasonStrike)

	s.stats.Strikes++
	s.emit(StrikesChanged{Strikes: s.stats.Strikes})

	if s.stats.Strikes >= s.cfg.StrikeLimit {
		s.end()
		return OutcomeStrike
	}

	if p, ok := s.registry.Get(s.playerID); ok {
		p.Body.VX = -p.Body.VX
	}
	s.hitRemaining = s.cfg.Player.HitDuration
	return OutcomeStrike
}

func (r Resolver) pickupGun(g *Entity) Outcome {
	s := r.s
	if s.powerUp.Active {
		return OutcomeNone
	}
	s.registry.Destroy(g.ID, ReasonCollected)
	s.powerUp.Activate(PowerUpGun, s.cfg.PowerUps.GunDuration)
	s.stats.GunPickups++
	s.emit(PowerUpChanged{Active: true, Kind: PowerUpGun, Remaining: s.powerUp.Remaining})
	return OutcomeGunPickup
}

// pickupSecretBox removes the box. Opening it grants nothing yet.
func (r Resolver) pickupSecretBox(b *Entity) Outcome {
	s := r.s
	if s.powerUp.Active {
		return OutcomeNone
	}
	s.registry.Destroy(b.ID, ReasonCollected)
	s.stats.BoxPickups++
	return OutcomeBoxPickup
}

func (r Resolver) shoot(bullet, m *Entity) Outcome {
	if m.Meteor == nil || m.Meteor.Hit {
		return OutcomeNone
	}
	s := r.s
	m.Meteor.Hit = true
	s.registry.Destroy(bullet.ID, ReasonShot)
	s.registry.Destroy(m.ID, ReasonShot)
	s.stats.MeteorsShot++
	return OutcomeBulletKill
}
