// Package physics implements the gravitational core of the simulation.
//
//   - [Body]: a point mass with display attributes and one pure operation,
//     [Body.Attraction]
//   - [System]: owns a fixed set of bodies and advances them with
//     [System.Step], a direct O(n²) force sum followed by a semi-implicit
//     (symplectic) Euler update
//
// # Step Phases
//
// Step runs in two strictly ordered phases. Phase 1 computes the net force on
// every body from the current positions without mutating anything. Phase 2
// applies v += F/m·dt and then x += v·dt to every body. A failure in phase 1
// leaves the system exactly as it was. Phase 2 is plain arithmetic and cannot
// fail, but a non-finite force still propagates into every body it touches;
// drivers that care check [BodyState] values after each step.
//
// Forces on each body are summed in name order, so the result of a step does
// not depend on the order bodies were added, bit for bit.
//
// # Energy Conservation
//
// Use [TotalMomentum] and [TotalEnergy] on a [System.Snapshot] to monitor
// drift:
//
//	before := physics.TotalMomentum(sys.Snapshot())
//	if err := sys.Step(); err != nil {
//		var ce *physics.CollisionError
//		if errors.As(err, &ce) {
//			log.Printf("%s and %s collided", ce.A, ce.B)
//		}
//		return err
//	}
//	after := physics.TotalMomentum(sys.Snapshot())
package physics
