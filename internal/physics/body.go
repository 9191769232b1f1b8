package physics

import (
	"github.com/san-kum/solarsim/internal/dynamo"
)

// G is the gravitational constant in m³ kg⁻¹ s⁻².
const G = 6.67428e-11

// Body is a point mass. Radius, AxialTilt and Color only matter for display.
type Body struct {
	Name      string
	Position  dynamo.Vec3 // m
	Velocity  dynamo.Vec3 // m/s
	Mass      float64     // kg, must be positive
	Radius    float64     // m
	AxialTilt float64     // degrees
	Color     [3]float64  // RGB in [0,1]
}

// NewBody stores its arguments as given. The caller guarantees mass > 0.
func NewBody(name string, radius, mass, axialTilt float64, position, velocity dynamo.Vec3, color [3]float64) *Body {
	return &Body{
		Name:      name,
		Position:  position,
		Velocity:  velocity,
		Mass:      mass,
		Radius:    radius,
		AxialTilt: axialTilt,
		Color:     color,
	}
}

// Attraction returns the gravitational force b exerts on other, pointing from
// other toward b. It fails with a *SelfAttractionError when other is b and
// with a *CollisionError when the two are at zero separation.
func (b *Body) Attraction(other *Body) (dynamo.Vec3, error) {
	if b == other {
		return dynamo.Vec3{}, &SelfAttractionError{Body: b.Name}
	}

	r := b.Position.Sub(other.Position)
	dist := r.Norm()
	if dist == 0 {
		return dynamo.Vec3{}, &CollisionError{A: b.Name, B: other.Name}
	}

	// mass product first: keeps A→B and B→A exact negations of each other
	f := G * (b.Mass * other.Mass) / (dist * dist)
	return r.Scale(f / dist), nil
}

// Momentum returns m·v.
func (b *Body) Momentum() dynamo.Vec3 {
	return b.Velocity.Scale(b.Mass)
}

func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.Dot(b.Velocity)
}

// State returns a copy of the body's current values.
func (b *Body) State() BodyState {
	return BodyState{
		Name:      b.Name,
		Position:  b.Position,
		Velocity:  b.Velocity,
		Mass:      b.Mass,
		Radius:    b.Radius,
		AxialTilt: b.AxialTilt,
		Color:     b.Color,
	}
}

func (b *Body) String() string { return b.Name }

// BodyState is a read-only copy of a body handed to renderers and recorders.
type BodyState struct {
	Name      string
	Position  dynamo.Vec3
	Velocity  dynamo.Vec3
	Mass      float64
	Radius    float64
	AxialTilt float64
	Color     [3]float64
}
