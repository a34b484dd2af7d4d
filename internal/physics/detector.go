// Package physics finds overlapping hitboxes with a resolv spatial grid and
// feeds them to a meteor session.
package physics

import (
	"cmp"
	"slices"
	"sync"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/meteor-arcade/internal/meteor"
)

// cellSize is the edge of a broad-phase grid cell in world pixels.
const cellSize = 32

// margin extends the grid past every side of the world so entities that are
// partly offscreen still collide.
const margin = 96.0

// resolv keeps shared scratch state at package level, so shape queries of
// different detectors must not overlap in time.
var resolvMu sync.Mutex

var (
	tagPlayer = resolv.NewTag("player")
	tagMeteor = resolv.NewTag("meteor")
	tagBullet = resolv.NewTag("bullet")
	tagPickup = resolv.NewTag("pickup")
)

// Pair is two entities whose hitboxes overlap. A is the lower ID.
type Pair struct {
	A, B meteor.EntityID
}

// Detector mirrors the entities of a session into a resolv space.
type Detector struct {
	space  *resolv.Space
	shapes map[meteor.EntityID]resolv.IShape
	owners map[resolv.IShape]meteor.EntityID
}

// NewDetector creates a detector for a world of the given size.
func NewDetector(world meteor.WorldConfig) *Detector {
	w := int(world.Width + 2*margin)
	h := int(world.Height + 2*margin)
	return &Detector{
		space:  resolv.NewSpace(w, h, cellSize, cellSize),
		shapes: make(map[meteor.EntityID]resolv.IShape),
		owners: make(map[resolv.IShape]meteor.EntityID),
	}
}

// Sync adds shapes for new entities, moves the live ones and drops shapes
// whose entity is gone.
func (d *Detector) Sync(reg *meteor.Registry) {
	resolvMu.Lock()
	defer resolvMu.Unlock()

	for id, sh := range d.shapes {
		if _, ok := reg.Get(id); !ok {
			d.space.Remove(sh)
			delete(d.shapes, id)
			delete(d.owners, sh)
		}
	}

	reg.ForEach(func(e *meteor.Entity) {
		sh, ok := d.shapes[e.ID]
		if !ok {
			x, y, w, h := e.Body.Bounds()
			rect := resolv.NewRectangleTopLeft(x+margin, y+margin, w, h)
			rect.Tags().Set(tagFor(e.Kind))
			d.space.Add(rect)
			sh = rect
			d.shapes[e.ID] = sh
			d.owners[sh] = e.ID
		}
		sh.SetPosition(e.Body.X+margin, e.Body.Y+margin)
	})
}

// Len returns the number of tracked shapes.
func (d *Detector) Len() int {
	return len(d.shapes)
}

// Pairs returns every overlap the game cares about: the player against
// meteors and pickups, and bullets against meteors. The grid narrows the
// candidates; hitboxes are then compared directly, so a box lying wholly
// inside another one still counts. Pairs are sorted so resolution order does
// not depend on grid iteration order.
func (d *Detector) Pairs(reg *meteor.Registry) []Pair {
	resolvMu.Lock()
	defer resolvMu.Unlock()

	var pairs []Pair
	collect := func(e *meteor.Entity, against resolv.Tags) {
		sh, ok := d.shapes[e.ID]
		if !ok {
			return
		}
		sh.SelectTouchingCells(0).FilterShapes().ByTags(against).ForEach(func(other resolv.IShape) bool {
			id, ok := d.owners[other]
			if !ok || id == e.ID {
				return true
			}
			if o, ok := reg.Get(id); ok && Overlaps(e.Body, o.Body) {
				pairs = append(pairs, newPair(e.ID, id))
			}
			return true
		})
	}

	reg.ForEachOfKind(meteor.KindPlayer, func(e *meteor.Entity) {
		collect(e, tagMeteor)
		collect(e, tagPickup)
	})
	reg.ForEachOfKind(meteor.KindBullet, func(e *meteor.Entity) {
		collect(e, tagMeteor)
	})

	slices.SortFunc(pairs, func(a, b Pair) int {
		if a.A != b.A {
			return cmp.Compare(a.A, b.A)
		}
		return cmp.Compare(a.B, b.B)
	})
	return slices.Compact(pairs)
}

// Overlaps reports whether two hitboxes share any area. Touching edges do
// not count.
func Overlaps(a, b meteor.Body) bool {
	ax, ay, aw, ah := a.Bounds()
	bx, by, bw, bh := b.Bounds()
	return ax < bx+bw && bx < ax+aw && ay < by+bh && by < ay+ah
}

// Step syncs with the session, then reports every overlap to it and
// returns the outcomes that changed something.
func (d *Detector) Step(s *meteor.Session) []meteor.Outcome {
	d.Sync(s.Registry())

	var outcomes []meteor.Outcome
	for _, p := range d.Pairs(s.Registry()) {
		if o := s.OnOverlap(p.A, p.B); o != meteor.OutcomeNone {
			outcomes = append(outcomes, o)
		}
	}

	d.Sync(s.Registry())
	return outcomes
}

// Reset removes every shape.
func (d *Detector) Reset() {
	resolvMu.Lock()
	defer resolvMu.Unlock()

	for id, sh := range d.shapes {
		d.space.Remove(sh)
		delete(d.shapes, id)
		delete(d.owners, sh)
	}
}

func tagFor(k meteor.Kind) resolv.Tags {
	switch k {
	case meteor.KindPlayer:
		return tagPlayer
	case meteor.KindMeteor:
		return tagMeteor
	case meteor.KindBullet:
		return tagBullet
	default:
		return tagPickup
	}
}

func newPair(a, b meteor.EntityID) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}
