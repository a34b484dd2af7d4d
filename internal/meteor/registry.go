package meteor

import "time"

// offscreenMargin is how far past the play area an entity may travel before it is pruned.
const offscreenMargin = 50

// Registry owns every live entity of a session. Iteration follows spawn
// order so that replays visit entities identically.
type Registry struct {
	nextID   EntityID
	entities []*Entity
	index    map[EntityID]*Entity
	notify   func(Event)
}

// NewRegistry creates an empty registry. notify may be nil.
func NewRegistry(notify func(Event)) *Registry {
	return &Registry{
		entities: make([]*Entity, 0, 32),
		index:    make(map[EntityID]*Entity),
		notify:   notify,
	}
}

// Spawn adds an entity and returns its ID.
func (r *Registry) Spawn(kind Kind, p SpawnParams) EntityID {
	r.nextID++
	e := &Entity{
		ID:        r.nextID,
		Kind:      kind,
		Body:      p.Body,
		CreatedAt: p.At,
	}
	if kind == KindMeteor {
		e.Meteor = &MeteorState{Zigzag: p.Zigzag, StartX: p.Body.X}
	}
	r.entities = append(r.entities, e)
	r.index[e.ID] = e

	r.emit(EntityCreated{Kind: kind, ID: e.ID, X: e.Body.X, Y: e.Body.Y})
	return e.ID
}

// Destroy removes an entity. It returns false if the entity was already gone.
func (r *Registry) Destroy(id EntityID, reason DestroyReason) bool {
	e, ok := r.index[id]
	if !ok {
		return false
	}
	delete(r.index, id)
	for i, other := range r.entities {
		if other.ID == id {
			r.entities = append(r.entities[:i], r.entities[i+1:]...)
			break
		}
	}

	r.emit(EntityDestroyed{Kind: e.Kind, ID: id, Reason: reason})
	return true
}

// Get returns the live entity with the given ID.
func (r *Registry) Get(id EntityID) (*Entity, bool) {
	e, ok := r.index[id]
	return e, ok
}

// ForEachOfKind calls fn for every live entity of the given kind.
// fn must not spawn or destroy entities.
func (r *Registry) ForEachOfKind(kind Kind, fn func(*Entity)) {
	for _, e := range r.entities {
		if e.Kind == kind {
			fn(e)
		}
	}
}

// ForEach calls fn for every live entity in spawn order.
func (r *Registry) ForEach(fn func(*Entity)) {
	for _, e := range r.entities {
		fn(e)
	}
}

// Count returns the number of live entities of a kind.
func (r *Registry) Count(kind Kind) int {
	n := 0
	for _, e := range r.entities {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// Clear destroys every entity.
func (r *Registry) Clear(reason DestroyReason) {
	ids := make([]EntityID, 0, len(r.entities))
	for _, e := range r.entities {
		ids = append(ids, e.ID)
	}
	for _, id := range ids {
		r.Destroy(id, reason)
	}
}

// Integrate moves every non-player entity along its velocity.
func (r *Registry) Integrate(dt time.Duration) {
	secs := dt.Seconds()
	for _, e := range r.entities {
		if e.Kind == KindPlayer {
			continue
		}
		e.Body.X += e.Body.VX * secs
		e.Body.Y += e.Body.VY * secs
	}
}

// UpdateZigzag places every zigzagging meteor at its sinusoidal offset for now.
func (r *Registry) UpdateZigzag(now time.Duration, amplitude, frequency float64) {
	for _, e := range r.entities {
		if e.Kind != KindMeteor || e.Meteor == nil || !e.Meteor.Zigzag {
			continue
		}
		e.Body.X = ZigzagX(e.Meteor.StartX, now-e.CreatedAt, amplitude, frequency)
	}
}

// PruneOffscreen destroys bullets that left through the top and falling
// entities that dropped past the bottom. It returns the destroyed falling
// entities by kind.
func (r *Registry) PruneOffscreen(height float64) map[Kind]int {
	var gone []*Entity
	for _, e := range r.entities {
		switch e.Kind {
		case KindBullet:
			if e.Body.Y < -offscreenMargin {
				gone = append(gone, e)
			}
		case KindMeteor, KindGun, KindSecretBox:
			if e.Body.Y > height+offscreenMargin {
				gone = append(gone, e)
			}
		}
	}

	var fallen map[Kind]int
	for _, e := range gone {
		if e.Kind != KindBullet {
			if fallen == nil {
				fallen = make(map[Kind]int)
			}
			fallen[e.Kind]++
		}
		r.Destroy(e.ID, ReasonOffscreen)
	}
	return fallen
}

func (r *Registry) emit(ev Event) {
	if r.notify != nil {
		r.notify(ev)
	}
}
