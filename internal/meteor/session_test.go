package meteor

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func newTestSession(t *testing.T, mutate func(*Config)) *Session {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewSession(cfg, 42)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

// liveMeteors returns the IDs of meteors that can still strike.
func liveMeteors(s *Session) []EntityID {
	var ids []EntityID
	s.Registry().ForEachOfKind(KindMeteor, func(e *Entity) {
		if !e.Meteor.Hit {
			ids = append(ids, e.ID)
		}
	})
	return ids
}

func TestFirstTickSpawnsMeteor(t *testing.T) {
	s := newTestSession(t, nil)

	if n := s.Registry().Count(KindMeteor); n != 0 {
		t.Fatalf("expected no meteors before the first tick, got %d", n)
	}

	s.Tick(0)

	if n := s.Registry().Count(KindMeteor); n != 1 {
		t.Errorf("Tick(0) should spawn the first meteor, got %d meteors", n)
	}

	// The immediate spawn happens once per run
	s.Tick(0)
	if n := s.Registry().Count(KindMeteor); n != 1 {
		t.Errorf("second Tick(0) should not spawn again, got %d meteors", n)
	}
}

func TestMeteorStrikesOnce(t *testing.T) {
	s := newTestSession(t, nil)
	s.Tick(0)

	meteors := liveMeteors(s)
	if len(meteors) != 1 {
		t.Fatalf("expected 1 meteor, got %d", len(meteors))
	}
	m := meteors[0]

	if got := s.OnOverlap(s.PlayerID(), m); got != OutcomeStrike {
		t.Fatalf("first overlap = %v, expected strike", got)
	}
	if got := s.OnOverlap(s.PlayerID(), m); got != OutcomeNone {
		t.Errorf("second overlap = %v, expected none", got)
	}
	if got := s.OnOverlap(m, s.PlayerID()); got != OutcomeNone {
		t.Errorf("reversed overlap = %v, expected none", got)
	}

	if s.Strikes() != 1 {
		t.Errorf("Strikes() = %d, expected 1", s.Strikes())
	}
	if _, ok := s.Registry().Get(m); ok {
		t.Error("struck meteor should be destroyed")
	}
}

func TestStrikeReversesPlayerAndEntersHitState(t *testing.T) {
	s := newTestSession(t, nil)
	s.Tick(0)

	before := s.Player().Body.VX
	s.OnOverlap(s.PlayerID(), liveMeteors(s)[0])

	if got := s.Player().Body.VX; got != -before {
		t.Errorf("player VX = %v, expected %v", got, -before)
	}
	if !s.HitActive() {
		t.Fatal("player should be in the hit state after a strike")
	}

	s.Tick(999 * time.Millisecond)
	if !s.HitActive() {
		t.Error("hit state should last the full hit duration")
	}
	s.Tick(time.Millisecond)
	if s.HitActive() {
		t.Error("hit state should end after the hit duration")
	}
}

func TestSessionEndsOnStrikeLimit(t *testing.T) {
	s := newTestSession(t, nil)

	var ended []SessionEnded
	s.Subscribe(func(ev Event) {
		if e, ok := ev.(SessionEnded); ok {
			ended = append(ended, e)
		}
	})

	for i := 1; i <= 3; i++ {
		s.Tick(500 * time.Millisecond)
		m := s.SpawnMeteor()
		if got := s.OnOverlap(s.PlayerID(), m); got != OutcomeStrike {
			t.Fatalf("strike %d: outcome = %v", i, got)
		}

		wantState := StatePlaying
		if i == 3 {
			wantState = StateEnded
		}
		if s.State() != wantState {
			t.Errorf("after strike %d state = %v, expected %v", i, s.State(), wantState)
		}
	}

	if len(ended) != 1 {
		t.Fatalf("expected exactly one SessionEnded event, got %d", len(ended))
	}
	if ended[0].FinalScore != 1500*time.Millisecond {
		t.Errorf("FinalScore = %v, expected 1.5s", ended[0].FinalScore)
	}

	// Ended sessions ignore further input
	ticks := s.Ticks()
	s.Tick(time.Second)
	s.OnPointerDown()
	if s.Ticks() != ticks {
		t.Error("Tick should be a no-op once the session ended")
	}
	if got := s.OnOverlap(s.PlayerID(), s.SpawnMeteor()); got != OutcomeNone {
		t.Errorf("overlap after game over = %v, expected none", got)
	}
	if s.Strikes() != 3 {
		t.Errorf("Strikes() = %d after game over, expected 3", s.Strikes())
	}
}

func TestThreeStrikeRun(t *testing.T) {
	s := newTestSession(t, nil)

	s.Tick(0)
	meteor0 := liveMeteors(s)[0]
	if s.OnOverlap(s.PlayerID(), meteor0) != OutcomeStrike || s.Strikes() != 1 {
		t.Fatalf("expected first strike, strikes = %d", s.Strikes())
	}

	gun, ok := s.SpawnGun()
	if !ok {
		t.Fatal("SpawnGun() should succeed with no active power-up")
	}
	if got := s.OnOverlap(s.PlayerID(), gun); got != OutcomeGunPickup {
		t.Fatalf("gun overlap = %v, expected gun pickup", got)
	}
	pu := s.PowerUp()
	if !pu.Active || pu.Kind != PowerUpGun || pu.Remaining != 10*time.Second {
		t.Fatalf("PowerUp() = %+v, expected active gun with 10s", pu)
	}

	s.Tick(10 * time.Second)
	if s.PowerUp().Active {
		t.Fatal("gun should expire after 10s")
	}

	meteors := liveMeteors(s)
	if len(meteors) < 2 {
		t.Fatalf("expected at least 2 meteors after 10s, got %d", len(meteors))
	}
	s.OnOverlap(s.PlayerID(), meteors[0])
	if s.State() != StatePlaying {
		t.Fatal("two strikes should not end the session")
	}
	s.OnOverlap(meteors[1], s.PlayerID())

	if s.State() != StateEnded {
		t.Fatalf("state = %v after third strike, expected ended", s.State())
	}
	if s.FinalScore() != 10*time.Second {
		t.Errorf("FinalScore() = %v, expected 10s", s.FinalScore())
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	s := newTestSession(t, nil)

	s.Tick(0)
	gun, _ := s.SpawnGun()
	s.OnOverlap(s.PlayerID(), gun)
	s.Tick(3 * time.Second)
	for range 3 {
		s.OnOverlap(s.PlayerID(), s.SpawnMeteor())
	}
	if s.State() != StateEnded {
		t.Fatalf("setup: state = %v, expected ended", s.State())
	}

	s.Reset()

	if s.State() != StatePlaying {
		t.Errorf("state = %v after reset", s.State())
	}
	if s.Strikes() != 0 {
		t.Errorf("Strikes() = %d after reset", s.Strikes())
	}
	if s.SpawnInterval() != 2000*time.Millisecond {
		t.Errorf("SpawnInterval() = %v after reset", s.SpawnInterval())
	}
	if s.PowerUp().Active {
		t.Error("power-up should be cleared by reset")
	}
	if n := s.Registry().Len(); n != 1 {
		t.Errorf("registry holds %d entities after reset, expected only the player", n)
	}
	if s.Player().Kind != KindPlayer {
		t.Error("reset should spawn a new player")
	}
	if s.Elapsed() != 0 || s.FinalScore() != 0 {
		t.Errorf("Elapsed() = %v, FinalScore() = %v after reset", s.Elapsed(), s.FinalScore())
	}
	if s.Stats() != (Stats{}) {
		t.Errorf("Stats() = %+v after reset", s.Stats())
	}
}

func TestPowerUpMutualExclusion(t *testing.T) {
	s := newTestSession(t, nil)

	gun1, _ := s.SpawnGun()
	gun2, _ := s.SpawnGun()
	box, _ := s.SpawnSecretBox()

	if got := s.OnOverlap(s.PlayerID(), gun1); got != OutcomeGunPickup {
		t.Fatalf("gun pickup = %v", got)
	}

	n := s.Registry().Len()
	if _, ok := s.SpawnGun(); ok {
		t.Error("SpawnGun() should be suppressed while a power-up is active")
	}
	if _, ok := s.SpawnSecretBox(); ok {
		t.Error("SpawnSecretBox() should be suppressed while a power-up is active")
	}
	if s.Registry().Len() != n {
		t.Errorf("registry grew from %d to %d", n, s.Registry().Len())
	}

	if got := s.OnOverlap(s.PlayerID(), gun2); got != OutcomeNone {
		t.Errorf("second gun pickup = %v, expected none", got)
	}
	if got := s.OnOverlap(s.PlayerID(), box); got != OutcomeNone {
		t.Errorf("box pickup during power-up = %v, expected none", got)
	}
	if _, ok := s.Registry().Get(gun2); !ok {
		t.Error("ignored gun should stay in play")
	}
	if _, ok := s.Registry().Get(box); !ok {
		t.Error("ignored box should stay in play")
	}
}

func TestTimedPowerUpSpawnsAreSuppressed(t *testing.T) {
	s := newTestSession(t, nil)
	gun, _ := s.SpawnGun()
	s.OnOverlap(s.PlayerID(), gun)

	// Gun timer (5s) comes due while the gun is held
	s.Tick(5 * time.Second)
	if n := s.Registry().Count(KindGun); n != 0 {
		t.Errorf("gun timer should not spawn while armed, got %d guns", n)
	}
}

func TestSecretBoxPickup(t *testing.T) {
	s := newTestSession(t, nil)
	box, ok := s.SpawnSecretBox()
	if !ok {
		t.Fatal("SpawnSecretBox() failed")
	}

	if got := s.OnOverlap(box, s.PlayerID()); got != OutcomeBoxPickup {
		t.Fatalf("box overlap = %v", got)
	}
	if _, ok := s.Registry().Get(box); ok {
		t.Error("collected box should be destroyed")
	}
	if s.PowerUp().Active {
		t.Error("secret box grants no power-up")
	}
	if s.Stats().BoxPickups != 1 {
		t.Errorf("BoxPickups = %d", s.Stats().BoxPickups)
	}
}

func TestBulletKillsMeteorWithoutStrike(t *testing.T) {
	s := newTestSession(t, nil)
	s.Tick(0)
	m := liveMeteors(s)[0]

	gun, _ := s.SpawnGun()
	s.OnOverlap(s.PlayerID(), gun)
	vx := s.Player().Body.VX
	s.OnPointerDown()

	if n := s.Registry().Count(KindBullet); n != 1 {
		t.Fatalf("pointer down while armed should fire, got %d bullets", n)
	}
	if s.Player().Body.VX != -vx {
		t.Error("pointer down should reverse the player")
	}

	var bullet EntityID
	s.Registry().ForEachOfKind(KindBullet, func(e *Entity) { bullet = e.ID })

	if got := s.OnOverlap(bullet, m); got != OutcomeBulletKill {
		t.Fatalf("bullet overlap = %v", got)
	}
	if s.Strikes() != 0 {
		t.Errorf("bullet kill should not strike, strikes = %d", s.Strikes())
	}
	if s.Registry().Count(KindBullet) != 0 || s.Registry().Count(KindMeteor) != 0 {
		t.Error("bullet and meteor should both be destroyed")
	}
	if got := s.OnOverlap(s.PlayerID(), m); got != OutcomeNone {
		t.Errorf("player overlap with shot meteor = %v", got)
	}
}

func TestPointerDownWithoutGun(t *testing.T) {
	s := newTestSession(t, nil)
	vx := s.Player().Body.VX

	s.OnPointerDown()

	if s.Registry().Count(KindBullet) != 0 {
		t.Error("unarmed pointer down should not fire")
	}
	if s.Player().Body.VX != -vx {
		t.Errorf("VX = %v, expected %v", s.Player().Body.VX, -vx)
	}
}

func TestAutoFireWhileArmed(t *testing.T) {
	s := newTestSession(t, nil)
	gun, _ := s.SpawnGun()
	s.OnOverlap(s.PlayerID(), gun)

	s.Tick(time.Second)
	if n := s.Registry().Count(KindBullet); n != 1 {
		t.Fatalf("expected 1 auto-fired bullet, got %d", n)
	}

	// The first bullet flies off the top and is pruned; a new one is fired
	s.Tick(time.Second)
	if n := s.Registry().Count(KindBullet); n != 1 {
		t.Errorf("expected 1 live bullet, got %d", n)
	}
	if s.Stats().Shots != 2 {
		t.Errorf("Shots = %d, expected 2", s.Stats().Shots)
	}
}

func TestAutoFireAcrossExpiryMatchesFrameSteps(t *testing.T) {
	armedSession := func() *Session {
		s := newTestSession(t, nil)
		gun, _ := s.SpawnGun()
		s.OnOverlap(s.PlayerID(), gun)
		return s
	}

	stepped := armedSession()
	for range 500 {
		stepped.Tick(20 * time.Millisecond)
	}
	jumped := armedSession()
	jumped.Tick(10 * time.Second)

	if stepped.Stats().Shots == 0 {
		t.Fatal("frame-stepped run should fire while armed")
	}
	if got, want := jumped.Stats().Shots, stepped.Stats().Shots; got != want {
		t.Errorf("Shots after one 10s tick = %d, expected %d as with 20ms frames", got, want)
	}
	for _, s := range []*Session{stepped, jumped} {
		if s.PowerUp().Active {
			t.Error("gun should have expired after 10s")
		}
	}
}

func TestGroundRisesByPattern(t *testing.T) {
	s := newTestSession(t, nil)
	startGround := s.GroundY()
	startPlayer := s.Player().Body.Y

	var raised []GroundRaised
	s.Subscribe(func(ev Event) {
		if e, ok := ev.(GroundRaised); ok {
			raised = append(raised, e)
		}
	})

	s.Tick(5 * time.Second)
	if got := s.GroundY(); got != startGround-32 {
		t.Errorf("after first rise GroundY = %v, expected %v", got, startGround-32)
	}
	s.Tick(5 * time.Second)
	if got := s.GroundY(); got != startGround-48 {
		t.Errorf("after second rise GroundY = %v, expected %v", got, startGround-48)
	}
	if got := s.Player().Body.Y; got != startPlayer-48 {
		t.Errorf("player Y = %v, expected %v", got, startPlayer-48)
	}

	if len(raised) != 2 || raised[0].Steps != 2 || raised[1].Steps != 1 {
		t.Errorf("GroundRaised events = %+v", raised)
	}
}

func TestGroundStopsAtCeiling(t *testing.T) {
	s := newTestSession(t, func(c *Config) {
		c.Ground.Ceiling = 600
	})

	for range 10 {
		s.Tick(5 * time.Second)
		for _, id := range liveMeteors(s) {
			s.Registry().Destroy(id, ReasonOffscreen)
		}
	}
	if got := s.GroundY(); got != 600 {
		t.Errorf("GroundY = %v, expected ceiling 600", got)
	}
}

func TestPlayerBouncesOffWalls(t *testing.T) {
	s := newTestSession(t, nil)

	s.Tick(2 * time.Second)

	p := s.Player()
	if p.Body.VX >= 0 {
		t.Errorf("player should turn around at the right wall, VX = %v", p.Body.VX)
	}
	right := s.Config().World.Width - p.Body.W/2
	if p.Body.X != right {
		t.Errorf("player X = %v, expected clamp at %v", p.Body.X, right)
	}
}

func TestDifficultyFeedsMeteorTimer(t *testing.T) {
	s := newTestSession(t, nil)

	s.Tick(3 * time.Second)

	if got := s.SpawnInterval(); got != 2000*time.Millisecond-3*40*time.Millisecond {
		t.Errorf("SpawnInterval() = %v", got)
	}
	meteor, _, _ := s.spawner.Timers()
	if meteor.Interval != s.SpawnInterval() {
		t.Errorf("meteor timer interval = %v, expected %v", meteor.Interval, s.SpawnInterval())
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	steps := []time.Duration{
		0, 16 * time.Millisecond, 17 * time.Millisecond, 33 * time.Millisecond,
		250 * time.Millisecond, time.Second, 5 * time.Millisecond,
	}

	run := func() Snapshot {
		s := MustNewSession(DefaultConfig(), 7)
		for i := range 400 {
			s.Tick(steps[i%len(steps)])
			if i%50 == 0 {
				s.OnPointerDown()
			}
			if i%90 == 0 {
				if gun, ok := s.SpawnGun(); ok {
					s.OnOverlap(s.PlayerID(), gun)
				}
			}
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs with the same seed and inputs diverged")
	}
	if len(a.Entities) < 2 {
		t.Errorf("expected a populated world, got %d entities", len(a.Entities))
	}
}

func TestSessionEvents(t *testing.T) {
	s := newTestSession(t, nil)

	var events []Event
	s.Subscribe(func(ev Event) { events = append(events, ev) })

	s.Tick(0)
	m := liveMeteors(s)[0]
	s.OnOverlap(s.PlayerID(), m)

	want := []Event{
		EntityCreated{Kind: KindMeteor, ID: m},
		EntityDestroyed{Kind: KindMeteor, ID: m, Reason: ReasonStrike},
		StrikesChanged{Strikes: 1},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, expected %d: %+v", len(events), len(want), events)
	}

	created, ok := events[0].(EntityCreated)
	if !ok || created.Kind != KindMeteor || created.ID != m {
		t.Errorf("events[0] = %+v", events[0])
	}
	if events[1] != want[1] {
		t.Errorf("events[1] = %+v, expected %+v", events[1], want[1])
	}
	if events[2] != want[2] {
		t.Errorf("events[2] = %+v, expected %+v", events[2], want[2])
	}
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PowerUps.GunDuration = -time.Second

	_, err := NewSession(cfg, 1)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewSession() error = %v, expected ErrInvalidConfig", err)
	}
}
