package meteor

import (
	"math/rand"
	"time"
)

// SpawnScheduler owns the meteor, gun and secret box timers and creates the
// entities they call for.
type SpawnScheduler struct {
	cfg       Config
	rng       *rand.Rand
	registry  *Registry
	powerUp   *PowerUpState
	meteor    SpawnTimer
	gun       SpawnTimer
	secretBox SpawnTimer
}

// NewSpawnScheduler creates a scheduler spawning into registry.
// Power-up spawns are suppressed while powerUp is active.
func NewSpawnScheduler(cfg Config, seed int64, registry *Registry, powerUp *PowerUpState) *SpawnScheduler {
	s := &SpawnScheduler{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		registry: registry,
		powerUp:  powerUp,
	}
	s.Reset(cfg.Difficulty.InitialInterval)
	return s
}

// Reset restarts all three timers with the given meteor interval.
func (s *SpawnScheduler) Reset(meteorInterval time.Duration) {
	s.meteor = NewSpawnTimer(meteorInterval)
	s.gun = NewSpawnTimer(s.cfg.PowerUps.GunSpawnInterval)
	s.secretBox = NewSpawnTimer(s.cfg.PowerUps.SecretBoxSpawnInterval)
}

// SetMeteorInterval changes the meteor period without touching its progress.
func (s *SpawnScheduler) SetMeteorInterval(d time.Duration) {
	s.meteor.Interval = d
}

// Timers returns copies of the meteor, gun and secret box timers.
func (s *SpawnScheduler) Timers() (meteor, gun, secretBox SpawnTimer) {
	return s.meteor, s.gun, s.secretBox
}

// Advance fires every timer that came due during dt.
func (s *SpawnScheduler) Advance(dt, now time.Duration) {
	for range s.meteor.Advance(dt) {
		s.SpawnMeteor(now)
	}
	for range s.gun.Advance(dt) {
		s.SpawnGun(now)
	}
	for range s.secretBox.Advance(dt) {
		s.SpawnSecretBox(now)
	}
}

// SpawnMeteor drops a meteor at a random column with a random fall speed.
func (s *SpawnScheduler) SpawnMeteor(now time.Duration) EntityID {
	mc := s.cfg.Meteors
	x := s.between(mc.Inset, s.cfg.World.Width-mc.Inset)
	vy := s.between(mc.MinSpeed, mc.MaxSpeed)

	return s.registry.Spawn(KindMeteor, SpawnParams{
		Body:   Body{X: x, Y: mc.SpawnY, VY: vy, W: mc.Size, H: mc.Size},
		At:     now,
		Zigzag: mc.Zigzag,
	})
}

// SpawnGun drops a gun pickup. It does nothing while a power-up is active.
func (s *SpawnScheduler) SpawnGun(now time.Duration) (EntityID, bool) {
	return s.spawnPickup(KindGun, s.cfg.PowerUps.GunFallSpeed, now)
}

// SpawnSecretBox drops a secret box. It does nothing while a power-up is active.
func (s *SpawnScheduler) SpawnSecretBox(now time.Duration) (EntityID, bool) {
	return s.spawnPickup(KindSecretBox, s.cfg.PowerUps.SecretBoxFallSpeed, now)
}

func (s *SpawnScheduler) spawnPickup(kind Kind, speed float64, now time.Duration) (EntityID, bool) {
	if s.powerUp.Active {
		return 0, false
	}
	pc := s.cfg.PowerUps
	x := s.between(pc.Inset, s.cfg.World.Width-pc.Inset)

	id := s.registry.Spawn(kind, SpawnParams{
		Body: Body{X: x, Y: s.cfg.Meteors.SpawnY, VY: speed, W: pc.PickupSize, H: pc.PickupSize},
		At:   now,
	})
	return id, true
}

// between returns a random whole number in [lo, hi]. Spawn positions and
// speeds are always integral.
func (s *SpawnScheduler) between(lo, hi float64) float64 {
	a, b := int(lo), int(hi)
	if b <= a {
		return float64(a)
	}
	return float64(a + s.rng.Intn(b-a+1))
}
