package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/solarsim/internal/catalog"
	"github.com/san-kum/solarsim/internal/dynamo"
	"github.com/san-kum/solarsim/internal/physics"
)

func pair(sep float64) []physics.BodyState {
	return []physics.BodyState{
		{Name: "a", Mass: 1e24, Position: dynamo.Vec3{}, Velocity: dynamo.Vec3{Y: -10}},
		{Name: "b", Mass: 1e24, Position: dynamo.Vec3{X: sep}, Velocity: dynamo.Vec3{Y: 10}},
	}
}

func TestEnergy(t *testing.T) {
	m := NewEnergy()
	if m.Value() != 0 {
		t.Error("expected zero before any observation")
	}

	bodies := pair(1e9)
	m.Observe(0, 0, bodies)

	ke := 2 * 0.5 * 1e24 * 100
	pe := -physics.G * 1e24 * 1e24 / 1e9
	if math.Abs(m.Value()-(ke+pe)) > 1e-9*math.Abs(ke+pe) {
		t.Errorf("expected energy %g, got %g", ke+pe, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()

	m.Observe(0, 0, pair(1e9))
	if m.Value() != 0 {
		t.Errorf("expected no drift after one sample, got %g", m.Value())
	}

	m.Observe(1, 1, pair(2e9))
	if m.Value() <= 0 {
		t.Error("expected drift after separation changed")
	}
	peak := m.Value()

	m.Observe(2, 2, pair(1e9))
	if m.Value() != peak {
		t.Error("drift should keep its maximum")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestMomentumDrift(t *testing.T) {
	m := NewMomentumDrift()
	bodies := pair(1e9)
	m.Observe(0, 0, bodies)

	bodies[0].Velocity.Y = 0
	m.Observe(1, 1, bodies)

	// total momentum moved by 1e25 against a scale of 2e25
	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected drift 0.5, got %g", m.Value())
	}
}

func TestMomentumDrift_SolarSystem(t *testing.T) {
	sys := physics.NewSystem("solar", catalog.Builtin(), physics.Options{})
	m := NewMomentumDrift()
	m.Observe(0, 0, sys.Snapshot())

	for i := 1; i <= 100; i++ {
		if err := sys.Step(); err != nil {
			t.Fatal(err)
		}
		m.Observe(i, sys.Elapsed(), sys.Snapshot())
	}
	if m.Value() > 1e-9 {
		t.Errorf("momentum drift too large: %g", m.Value())
	}
}

func TestClosestApproach(t *testing.T) {
	c := NewClosestApproach()
	if !math.IsInf(c.Value(), 1) {
		t.Error("expected +Inf before any observation")
	}

	c.Observe(0, 0, pair(5e9))
	c.Observe(1, 1, pair(2e9))
	c.Observe(2, 2, pair(3e9))

	if c.Value() != 2e9 {
		t.Errorf("expected 2e9, got %g", c.Value())
	}
	a, b, step := c.Pair()
	if a != "a" || b != "b" || step != 1 {
		t.Errorf("unexpected pair %s %s at %d", a, b, step)
	}

	c.Reset()
	if !math.IsInf(c.Value(), 1) {
		t.Error("expected +Inf after reset")
	}
}
