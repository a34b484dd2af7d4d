// Package meteor implements the simulation core of Dodge the Meteor: the
// spawn timers, the difficulty ramp, power-ups, entity motion and collision
// outcomes. It has no rendering, input or collision-detection code. A host
// loop drives it through Tick, OnOverlap and OnPointerDown and watches it
// through events.
package meteor

import (
	"fmt"
	"time"
)

// State is the lifecycle state of a session.
type State int

const (
	StatePlaying State = iota
	StateEnded
)

// String returns the name of the state.
func (s State) String() string {
	if s == StateEnded {
		return "ended"
	}
	return "playing"
}

// Stats are the counters of the current run.
type Stats struct {
	Strikes        int
	MeteorsSpawned int
	MeteorsShot    int
	MeteorsDodged  int // Fell past the bottom without hitting anything
	GunPickups     int
	BoxPickups     int
	Shots          int
}

// Session is one game from start to game over. It is not safe for concurrent use.
type Session struct {
	cfg  Config
	seed int64

	clock      Clock
	registry   *Registry
	difficulty *DifficultyController
	spawner    *SpawnScheduler
	resolver   Resolver
	powerUp    PowerUpState
	autoFire   SpawnTimer
	ground     Ground

	listeners []Listener

	state        State
	stats        Stats
	startTime    time.Duration
	finalScore   time.Duration
	playerID     EntityID
	hitRemaining time.Duration
	firstPending bool // The first meteor drops on the first tick
	ticks        uint64
}

// NewSession validates cfg and starts a session seeded with seed.
func NewSession(cfg Config, seed int64) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{cfg: cfg, seed: seed}
	s.registry = NewRegistry(s.emit)
	s.difficulty = NewDifficultyController(cfg.Difficulty)
	s.spawner = NewSpawnScheduler(cfg, seed, s.registry, &s.powerUp)
	s.resolver = Resolver{s: s}
	s.Reset()
	return s, nil
}

// MustNewSession is NewSession for configs known to be valid.
func MustNewSession(cfg Config, seed int64) *Session {
	s, err := NewSession(cfg, seed)
	if err != nil {
		panic(fmt.Sprintf("meteor: %v", err))
	}
	return s
}

// Subscribe registers a listener for session events.
func (s *Session) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Reset starts a fresh run: no strikes, initial spawn interval, empty
// power-up slot and a registry holding only a new player.
// The random stream continues, so consecutive runs differ.
func (s *Session) Reset() {
	s.registry.Clear(ReasonReset)
	s.clock.Reset()
	s.difficulty.Reset()
	s.spawner.Reset(s.difficulty.Interval())
	s.powerUp.Clear()
	s.autoFire = NewSpawnTimer(s.cfg.PowerUps.AutoFireInterval)
	s.ground = NewGround(s.cfg.Ground, s.cfg.World.Height)

	s.state = StatePlaying
	s.stats = Stats{}
	s.startTime = s.clock.Now()
	s.finalScore = 0
	s.hitRemaining = 0
	s.firstPending = true
	s.ticks = 0

	pc := s.cfg.Player
	s.playerID = s.registry.Spawn(KindPlayer, SpawnParams{
		Body: Body{
			X:  s.cfg.World.Width / 2,
			Y:  s.ground.Top() - pc.Height/2,
			VX: pc.WalkSpeed,
			W:  pc.Width,
			H:  pc.Height,
		},
		At: s.clock.Now(),
	})
}

// Tick advances the simulation by dt. It does nothing once the session ended.
func (s *Session) Tick(dt time.Duration) {
	if s.state != StatePlaying {
		return
	}
	if dt < 0 {
		dt = 0
	}
	s.ticks++
	s.clock.Advance(dt)
	now := s.clock.Now()

	s.movePlayer(dt)
	s.registry.Integrate(dt)

	if s.firstPending {
		s.firstPending = false
		s.spawnMeteor(now)
	}

	if s.difficulty.Advance(dt) > 0 {
		s.spawner.SetMeteorInterval(s.difficulty.Interval())
		s.emit(DifficultyChanged{Interval: s.difficulty.Interval()})
	}

	before := s.registry.Count(KindMeteor)
	s.spawner.Advance(dt, now)
	s.stats.MeteorsSpawned += max(0, s.registry.Count(KindMeteor)-before)

	// Shots due before the gun expires still fire when dt spans the expiry.
	armed := time.Duration(0)
	if s.powerUp.Armed() {
		armed = min(dt, s.powerUp.Remaining)
	}
	for range s.autoFire.Advance(armed) {
		s.fire()
	}
	s.autoFire.Advance(dt - armed)
	if s.powerUp.Advance(dt) {
		s.emit(PowerUpChanged{Active: false, Kind: PowerUpNone})
	}

	if s.hitRemaining > 0 {
		s.hitRemaining = max(0, s.hitRemaining-dt)
	}

	for range s.ground.Advance(dt) {
		s.raiseGround()
	}

	s.registry.UpdateZigzag(now, s.cfg.Meteors.ZigzagAmplitude, s.cfg.Meteors.ZigzagFrequency)
	fallen := s.registry.PruneOffscreen(s.cfg.World.Height)
	s.stats.MeteorsDodged += fallen[KindMeteor]
}

// OnOverlap reports that the hitboxes of a and b intersect.
func (s *Session) OnOverlap(a, b EntityID) Outcome {
	return s.resolver.Resolve(a, b)
}

// OnPointerDown shoots if the gun is held, then turns the player around.
func (s *Session) OnPointerDown() {
	if s.state != StatePlaying {
		return
	}
	if s.powerUp.Armed() {
		s.fire()
	}
	if p, ok := s.registry.Get(s.playerID); ok {
		p.Body.VX = -p.Body.VX
	}
}

// SpawnGun drops a gun pickup now, unless a power-up is active.
func (s *Session) SpawnGun() (EntityID, bool) {
	return s.spawner.SpawnGun(s.clock.Now())
}

// SpawnSecretBox drops a secret box now, unless a power-up is active.
func (s *Session) SpawnSecretBox() (EntityID, bool) {
	return s.spawner.SpawnSecretBox(s.clock.Now())
}

// SpawnMeteor drops a meteor now.
func (s *Session) SpawnMeteor() EntityID {
	return s.spawnMeteor(s.clock.Now())
}

func (s *Session) spawnMeteor(now time.Duration) EntityID {
	s.stats.MeteorsSpawned++
	return s.spawner.SpawnMeteor(now)
}

// fire spawns a bullet at the player's muzzle.
func (s *Session) fire() {
	p, ok := s.registry.Get(s.playerID)
	if !ok {
		return
	}
	pc := s.cfg.PowerUps
	id := s.registry.Spawn(KindBullet, SpawnParams{
		Body: Body{
			X:  p.Body.X + pc.MuzzleOffsetX,
			Y:  p.Body.Y + pc.MuzzleOffsetY,
			VY: -pc.BulletSpeed,
			W:  pc.BulletWidth,
			H:  pc.BulletHeight,
		},
		At: s.clock.Now(),
	})
	s.stats.Shots++
	s.emit(BulletFired{ID: id})
}

// movePlayer walks the player and turns it around at the walls.
func (s *Session) movePlayer(dt time.Duration) {
	p, ok := s.registry.Get(s.playerID)
	if !ok {
		return
	}
	b := &p.Body
	b.X += b.VX * dt.Seconds()

	left, right := b.W/2, s.cfg.World.Width-b.W/2
	if (b.X <= left && b.VX < 0) || (b.X >= right && b.VX > 0) {
		b.VX = -b.VX
	}
	b.X = min(max(b.X, left), right)
}

func (s *Session) raiseGround() {
	steps, moved := s.ground.Raise()
	if moved == 0 {
		return
	}
	if p, ok := s.registry.Get(s.playerID); ok {
		p.Body.Y -= moved
	}
	s.emit(GroundRaised{Steps: steps, GroundY: s.ground.Top()})
}

func (s *Session) end() {
	s.state = StateEnded
	s.finalScore = s.Elapsed()
	s.emit(SessionEnded{FinalScore: s.finalScore})
}

func (s *Session) emit(ev Event) {
	for _, l := range s.listeners {
		l(ev)
	}
}

// Config returns the session's tuning.
func (s *Session) Config() Config { return s.cfg }

// Seed returns the seed the session was created with.
func (s *Session) Seed() int64 { return s.seed }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Strikes returns the number of strikes taken this run.
func (s *Session) Strikes() int { return s.stats.Strikes }

// Stats returns the run counters.
func (s *Session) Stats() Stats { return s.stats }

// PowerUp returns the power-up slot.
func (s *Session) PowerUp() PowerUpState { return s.powerUp }

// SpawnInterval returns the current meteor spawn interval.
func (s *Session) SpawnInterval() time.Duration { return s.difficulty.Interval() }

// Now returns the session clock.
func (s *Session) Now() time.Duration { return s.clock.Now() }

// Elapsed returns the time survived so far.
func (s *Session) Elapsed() time.Duration { return s.clock.Now() - s.startTime }

// FinalScore returns the survival time at game over, or zero while playing.
func (s *Session) FinalScore() time.Duration { return s.finalScore }

// Registry exposes the live entities.
func (s *Session) Registry() *Registry { return s.registry }

// PlayerID returns the ID of the current player entity.
func (s *Session) PlayerID() EntityID { return s.playerID }

// Player returns a copy of the player entity.
func (s *Session) Player() Entity {
	if p, ok := s.registry.Get(s.playerID); ok {
		return *p
	}
	return Entity{}
}

// HitActive reports whether the player is in the post-strike hit state.
func (s *Session) HitActive() bool { return s.hitRemaining > 0 }

// GroundY returns the Y coordinate of the ground's top edge.
func (s *Session) GroundY() float64 { return s.ground.Top() }

// Ticks returns how many times Tick ran while playing.
func (s *Session) Ticks() uint64 { return s.ticks }
