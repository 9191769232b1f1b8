// Package dynamo provides the numeric primitives shared by the simulation:
//
//   - [Vec3]: 3-component value type for positions, velocities and forces
//   - [ParallelFor]: bounded fan-out over an index range with error propagation
//   - sentinel errors for invalid simulation state
//
// # Example
//
//	r := a.Position.Sub(b.Position)
//	d := r.Norm()
//	f := r.Scale(gm1m2 / (d * d * d))
//
// Vec3 values are immutable; every operation returns a new value.
package dynamo
