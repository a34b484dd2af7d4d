package dodge

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/meteor-arcade/internal/core"
	"github.com/vovakirdan/meteor-arcade/internal/meteor"
	"github.com/vovakirdan/meteor-arcade/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 50, Seed: seed}
}

func newGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(testRuntime(seed))
	return g
}

// strikeOut drives the session to its strike limit.
func strikeOut(g *Game) {
	s := g.Session()
	for s.State() != meteor.StateEnded {
		id := s.SpawnMeteor()
		s.OnOverlap(s.PlayerID(), id)
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatalf("game %q not registered", ID)
	}
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.Title() != "Dodge the Meteor" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestStepAdvancesLogicalTime(t *testing.T) {
	g := newGame(t, 1)

	for range 50 {
		g.Step(core.NewInputFrame())
	}

	if got := g.Session().Elapsed(); got != time.Second {
		t.Errorf("Elapsed() = %v after 50 ticks", got)
	}
	if g.State().Score != 1000 {
		t.Errorf("Score = %d ms, expected 1000", g.State().Score)
	}
	if g.Session().Registry().Count(meteor.KindMeteor) == 0 {
		t.Error("no meteor after the first second")
	}
}

func TestTickRateSetsStep(t *testing.T) {
	g := New()
	rt := testRuntime(1)
	rt.TickRate = 20
	g.Reset(rt)

	g.Step(core.NewInputFrame())

	if got := g.Session().Elapsed(); got != 50*time.Millisecond {
		t.Errorf("Elapsed() = %v, expected 50ms", got)
	}
}

func TestPauseFreezesSession(t *testing.T) {
	g := newGame(t, 1)
	g.Step(core.NewInputFrame())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	before := g.Session().Snapshot()
	for range 30 {
		g.Step(core.NewInputFrame())
	}
	if !reflect.DeepEqual(before, g.Session().Snapshot()) {
		t.Error("session changed while paused")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestTapWithoutGunFiresNothing(t *testing.T) {
	g := newGame(t, 1)
	tap := core.NewInputFrame()
	tap.Set(core.ActionTap)

	g.Step(tap)

	if n := g.Session().Registry().Count(meteor.KindBullet); n != 0 {
		t.Errorf("bullets = %d without a gun", n)
	}
}

func TestGameOverFreezesScore(t *testing.T) {
	g := newGame(t, 1)
	for range 75 {
		g.Step(core.NewInputFrame())
	}
	strikeOut(g)

	state := g.Step(core.NewInputFrame()).State
	if !state.GameOver {
		t.Fatal("game should be over")
	}
	if state.Score != 1500 {
		t.Errorf("Score = %d, expected 1500", state.Score)
	}

	for range 30 {
		g.Step(core.NewInputFrame())
	}
	if g.State().Score != 1500 {
		t.Errorf("Score moved to %d after game over", g.State().Score)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() meteor.Snapshot {
		g := newGame(t, 777)
		for i := range 600 {
			in := core.NewInputFrame()
			if i%20 == 0 {
				in.Set(core.ActionTap)
			}
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Session().Snapshot()
	}

	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs produced different sessions")
	}
}

func TestResetRestarts(t *testing.T) {
	g := newGame(t, 3)
	for range 120 {
		g.Step(core.NewInputFrame())
	}
	strikeOut(g)
	first := g.Session()

	g.Reset(testRuntime(3))

	if g.Session() != first {
		t.Error("same seed should reuse the session")
	}
	if g.State().GameOver || g.State().Score != 0 || g.Session().Strikes() != 0 {
		t.Errorf("state after reset = %+v", g.State())
	}

	g.Reset(testRuntime(4))
	if g.Session() == first || g.Session().Seed() != 4 {
		t.Error("a new seed should start a new session")
	}
}

func TestListenersReceiveEvents(t *testing.T) {
	var ended, other int
	countEnded := func(n *int) meteor.Listener {
		return func(ev meteor.Event) {
			if _, ok := ev.(meteor.SessionEnded); ok {
				(*n)++
			}
		}
	}

	g := newGame(t, 5)
	g.Subscribe(countEnded(&ended))
	bystander := newGame(t, 5)
	bystander.Subscribe(countEnded(&other))

	strikeOut(g)
	if ended != 1 {
		t.Errorf("SessionEnded delivered %d times", ended)
	}
	if other != 0 {
		t.Errorf("another game's listener saw %d SessionEnded events", other)
	}

	// A new seed builds a new session; the listener follows it
	g.Reset(testRuntime(6))
	strikeOut(g)
	if ended != 2 {
		t.Errorf("after reseeding SessionEnded delivered %d times, expected 2", ended)
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, 1)
	g.Step(core.NewInputFrame())

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()

	for _, want := range []string{"Time: 0.0s", "Strikes: ···", "Every 2.00s", string(PlayerChar), string(GroundTop)} {
		if !strings.Contains(out, want) {
			t.Errorf("screen missing %q:\n%s", want, out)
		}
	}

	for range 3 * 50 {
		g.Step(core.NewInputFrame())
	}
	strikeOut(g)
	g.Render(scr)
	out = scr.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Score: 3s") {
		t.Errorf("game over screen:\n%s", out)
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	t.Cleanup(func() { SetDifficultyPreset("") })

	SetDifficultyPreset("fixed")
	g := newGame(t, 1)
	if g.Session().Config().Difficulty.Enabled {
		t.Error("fixed preset should disable the ramp")
	}

	SetDifficultyPreset("bogus")
	g = newGame(t, 2)
	if !g.Session().Config().Difficulty.Enabled {
		t.Error("unknown preset should keep the loaded ramp")
	}
}
