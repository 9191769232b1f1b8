package metrics

import (
	"math"

	"github.com/san-kum/solarsim/internal/physics"
)

// ClosestApproach records the smallest separation between any two bodies
// seen over a run, and which pair it was.
type ClosestApproach struct {
	name    string
	minDist float64
	a, b    string
	step    int
}

func NewClosestApproach() *ClosestApproach {
	return &ClosestApproach{
		name:    "closest_approach",
		minDist: math.Inf(1),
	}
}

func (c *ClosestApproach) Name() string {
	return c.name
}

func (c *ClosestApproach) Observe(step int, _ float64, bodies []physics.BodyState) {
	a, b, d := physics.ClosestPair(bodies)
	if d < c.minDist {
		c.minDist, c.a, c.b, c.step = d, a, b, step
	}
}

// Value is the minimum separation in metres, +Inf if no pair was seen.
func (c *ClosestApproach) Value() float64 {
	return c.minDist
}

// Pair returns the names of the closest pair and the step it was seen on.
func (c *ClosestApproach) Pair() (a, b string, step int) {
	return c.a, c.b, c.step
}

func (c *ClosestApproach) Reset() {
	c.minDist = math.Inf(1)
	c.a, c.b = "", ""
	c.step = 0
}
