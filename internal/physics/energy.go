package physics

import (
	"math"

	"github.com/san-kum/solarsim/internal/dynamo"
)

// TotalMomentum returns the sum of m·v over bodies.
func TotalMomentum(bodies []BodyState) dynamo.Vec3 {
	var p dynamo.Vec3
	for _, b := range bodies {
		p = p.Add(b.Velocity.Scale(b.Mass))
	}
	return p
}

// MomentumScale returns the sum of |m·v|, a reference magnitude for relative
// momentum drift when the total itself is near zero.
func MomentumScale(bodies []BodyState) float64 {
	sum := 0.0
	for _, b := range bodies {
		sum += b.Velocity.Scale(b.Mass).Norm()
	}
	return sum
}

// TotalEnergy returns kinetic plus pairwise gravitational potential energy.
func TotalEnergy(bodies []BodyState) float64 {
	ke := 0.0
	pe := 0.0

	for i := range bodies {
		bi := bodies[i]
		ke += 0.5 * bi.Mass * bi.Velocity.Dot(bi.Velocity)

		for j := i + 1; j < len(bodies); j++ {
			r := bodies[j].Position.Sub(bi.Position).Norm()
			if r == 0 {
				return math.Inf(-1)
			}
			pe -= G * bi.Mass * bodies[j].Mass / r
		}
	}

	return ke + pe
}

// ClosestPair returns the two bodies with the smallest separation. With fewer
// than two bodies it returns empty names and +Inf.
func ClosestPair(bodies []BodyState) (a, b string, dist float64) {
	dist = math.Inf(1)
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			d := bodies[j].Position.Sub(bodies[i].Position).Norm()
			if d < dist {
				a, b, dist = bodies[i].Name, bodies[j].Name, d
			}
		}
	}
	return a, b, dist
}
