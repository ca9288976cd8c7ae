// Package catalog is an in-memory, thread-safe store of tracked orbital
// objects. TLE-backed objects get their ECI state refreshed via SGP4; the
// resulting snapshot seeds regime counts and conjunction screening for the
// simulation core.
package catalog

import (
	"fmt"
	"sort"
	"sync"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/space-traffic-simulator/core"
	"github.com/signalsfoundry/space-traffic-simulator/model"
)

// EventType indicates what kind of change happened in the catalog.
type EventType int

const (
	EventObjectUpdated EventType = iota
)

// Event is emitted to subscribers when an object's state changes.
type Event struct {
	Type   EventType
	Object Object
}

// Object is one tracked item: identity, physical parameters, the TLE that
// drives its motion, and its last computed ECI state.
type Object struct {
	ID   string
	Name string

	Line1, Line2 string // TLE; empty for objects with a fixed state
	Params       model.SatelliteParameters

	State     model.StateVector
	UpdatedAt time.Time

	sat    satellite.Satellite
	hasSat bool
}

// Catalog stores tracked objects keyed by ID.
type Catalog struct {
	mu sync.RWMutex

	objects map[string]*Object
	subs    map[int]func(Event)
	nextSub int
}

// New constructs an empty catalog.
func New() *Catalog {
	return &Catalog{
		objects: make(map[string]*Object),
		subs:    make(map[int]func(Event)),
	}
}

// Add registers a new object. It returns an error if the ID already exists.
// Objects with TLE lines are propagated by SGP4 on every UpdateStates call;
// objects without keep whatever State they were added with.
func (c *Catalog) Add(o *Object) error {
	if o == nil || o.ID == "" {
		return fmt.Errorf("catalog: object with non-empty ID is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.objects[o.ID]; exists {
		return fmt.Errorf("catalog: object with ID %q already exists", o.ID)
	}
	if o.Line1 != "" && o.Line2 != "" {
		o.sat = satellite.TLEToSat(o.Line1, o.Line2, satellite.GravityWGS72)
		o.hasSat = true
	}
	c.objects[o.ID] = o
	return nil
}

// Get returns the object with the given ID, or nil if not found.
func (c *Catalog) Get(id string) *Object {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.objects[id]
}

// List returns a snapshot slice of all objects, ordered by ID.
func (c *Catalog) List() []*Object {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]*Object, 0, len(c.objects))
	for _, o := range c.objects {
		res = append(res, o)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

// Len returns the number of tracked objects.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.objects)
}

// UpdateStates propagates every TLE-backed object to simTime with SGP4 and
// notifies subscribers. go-satellite works in kilometres; states are stored
// in metres.
func (c *Catalog) UpdateStates(simTime time.Time) {
	year, month, day := simTime.Date()
	hour, min, sec := simTime.Clock()

	c.mu.Lock()
	var events []Event
	for _, o := range c.objects {
		if !o.hasSat {
			continue
		}
		pos, vel := satellite.Propagate(o.sat, year, int(month), day, hour, min, sec)
		const kmToM = 1000.0
		o.State = model.StateVector{
			Position: r3.Vec{X: pos.X * kmToM, Y: pos.Y * kmToM, Z: pos.Z * kmToM},
			Velocity: r3.Vec{X: vel.X * kmToM, Y: vel.Y * kmToM, Z: vel.Z * kmToM},
		}
		o.UpdatedAt = simTime
		events = append(events, Event{Type: EventObjectUpdated, Object: *o})
	}
	subs := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	// Notify subscribers outside the lock to avoid deadlocks.
	for _, sub := range subs {
		for _, ev := range events {
			sub(ev)
		}
	}
}

// Subscribe registers a callback for catalog events. It returns an
// unsubscribe function; callbacks are keyed by ID, so subscribers can come
// and go in any order.
func (c *Catalog) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// RegimeCounts classifies every object by altitude and returns a traffic
// snapshot with the per-regime object counts filled in. Congestion and
// collision probability are left for the caller to supply.
func (c *Catalog) RegimeCounts() model.OrbitalRegimeState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var state model.OrbitalRegimeState
	for _, o := range c.objects {
		altKm := (o.State.Radius() - core.EarthRadiusM) / 1000
		switch core.ClassifyRegime(altKm) {
		case model.RegimeLEO:
			state.ObjectsInLEO++
		case model.RegimeMEO:
			state.ObjectsInMEO++
		case model.RegimeGEO:
			state.ObjectsInGEO++
		}
	}
	return state
}

// Conjunction is a screened object pair with its estimated collision
// probability at the last update.
type Conjunction struct {
	ObjectA, ObjectB string
	SeparationM      float64
	Probability      float64
}

// ScreenConjunctions evaluates every object pair against the pairwise
// collision estimator and returns those at or above minProbability, most
// probable first. Quadratic in catalog size; intended for the modest
// catalogs of a single simulation run.
func (c *Catalog) ScreenConjunctions(minProbability float64) []Conjunction {
	objects := c.List()

	var found []Conjunction
	for i := 0; i < len(objects); i++ {
		for j := i + 1; j < len(objects); j++ {
			a, b := objects[i], objects[j]
			p := core.PairwiseCollisionProbability(a.State, b.State)
			if p < minProbability || p == 0 {
				continue
			}
			found = append(found, Conjunction{
				ObjectA:     a.ID,
				ObjectB:     b.ID,
				SeparationM: r3.Norm(r3.Sub(a.State.Position, b.State.Position)),
				Probability: p,
			})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Probability > found[j].Probability })
	return found
}
