package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/solarsim/internal/catalog"
	"github.com/san-kum/solarsim/internal/dynamo"
	"go.uber.org/zap"
)

// DefaultTimestep is one day in seconds.
const DefaultTimestep = 86400.0

// kmToM converts catalog kilometres (and km/s) to metres (and m/s).
const kmToM = 1000.0

// Options tune a System. The zero value gives a one-day, single-threaded
// system with logging disabled.
type Options struct {
	Timestep float64 // seconds per step
	Workers  int     // goroutines for force accumulation; <= 1 means sequential
	Logger   *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Timestep <= 0 {
		o.Timestep = DefaultTimestep
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// System owns a fixed set of bodies keyed by name. Only Step mutates them.
// A System is not safe for concurrent use.
type System struct {
	name     string
	bodies   map[string]*Body
	order    []*Body // sorted by name
	forces   []dynamo.Vec3
	timestep float64
	workers  int
	steps    int
	log      *zap.Logger
}

// NewSystem builds one body per catalog entry, converting kilometres to
// metres for position, velocity and radius.
func NewSystem(name string, cat catalog.Catalog, opts Options) *System {
	bodies := make([]*Body, 0, len(cat))
	for bodyName, e := range cat {
		bodies = append(bodies, NewBody(
			bodyName,
			e.Radius*kmToM,
			e.Mass,
			e.Axis,
			dynamo.V3(e.Pos).Scale(kmToM),
			dynamo.V3(e.Velo).Scale(kmToM),
			e.Color,
		))
	}
	return newSystem(name, bodies, opts)
}

// NewSystemFromBodies builds a system from bodies already in SI units. Nil
// bodies, repeated names and non-positive masses are rejected. The
// system takes ownership of the bodies; callers must not mutate them
// afterwards.
func NewSystemFromBodies(name string, bodies []*Body, opts Options) (*System, error) {
	seen := make(map[string]bool, len(bodies))
	for i, b := range bodies {
		if b == nil {
			return nil, fmt.Errorf("physics: body %d is nil", i)
		}
		if seen[b.Name] {
			return nil, fmt.Errorf("physics: duplicate body name %q", b.Name)
		}
		if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
			return nil, fmt.Errorf("%w: body %q has mass %g", dynamo.ErrParameterBounds, b.Name, b.Mass)
		}
		seen[b.Name] = true
	}
	return newSystem(name, bodies, opts), nil
}

func newSystem(name string, bodies []*Body, opts Options) *System {
	opts = opts.withDefaults()

	s := &System{
		name:     name,
		bodies:   make(map[string]*Body, len(bodies)),
		order:    make([]*Body, len(bodies)),
		forces:   make([]dynamo.Vec3, len(bodies)),
		timestep: opts.Timestep,
		workers:  opts.Workers,
		log:      opts.Logger.With(zap.String("system", name)),
	}
	copy(s.order, bodies)
	sort.Slice(s.order, func(i, j int) bool { return s.order[i].Name < s.order[j].Name })
	for _, b := range s.order {
		s.bodies[b.Name] = b
		s.log.Debug("body created", zap.String("body", b.Name), zap.Float64("mass", b.Mass))
	}
	return s
}

// Step advances every body by one timestep.
//
// Phase 1 sums other.Attraction(b) for every body b against the current,
// unmodified positions. Phase 2 applies the semi-implicit Euler update using
// those sums. An error from phase 1 is returned as is and the system is left
// untouched.
func (s *System) Step() error {
	if err := s.accumulate(); err != nil {
		return err
	}
	s.integrate()
	s.steps++
	return nil
}

func (s *System) accumulate() error {
	return dynamo.ParallelFor(len(s.order), s.workers, func(i int) error {
		target := s.order[i]
		var net dynamo.Vec3
		for _, other := range s.order {
			if other == target {
				continue
			}
			f, err := other.Attraction(target)
			if err != nil {
				return err
			}
			net = net.Add(f)
		}
		s.forces[i] = net
		return nil
	})
}

func (s *System) integrate() {
	dt := s.timestep
	for i, b := range s.order {
		b.Velocity = b.Velocity.Add(s.forces[i].Div(b.Mass).Scale(dt))
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
	}
}

func (s *System) Name() string { return s.name }

func (s *System) Len() int { return len(s.order) }

// Timestep is the fixed step size in seconds.
func (s *System) Timestep() float64 { return s.timestep }

// Steps is the number of completed steps.
func (s *System) Steps() int { return s.steps }

// Elapsed is the simulated time in seconds.
func (s *System) Elapsed() float64 { return float64(s.steps) * s.timestep }

// Names returns body names in sorted order.
func (s *System) Names() []string {
	names := make([]string, len(s.order))
	for i, b := range s.order {
		names[i] = b.Name
	}
	return names
}

// Body returns a copy of the named body.
func (s *System) Body(name string) (BodyState, bool) {
	b, ok := s.bodies[name]
	if !ok {
		return BodyState{}, false
	}
	return b.State(), true
}

// Snapshot returns a copy of every body, sorted by name.
func (s *System) Snapshot() []BodyState {
	out := make([]BodyState, len(s.order))
	for i, b := range s.order {
		out[i] = b.State()
	}
	return out
}
