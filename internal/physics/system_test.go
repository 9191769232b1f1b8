package physics_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/solarsim/internal/catalog"
	"github.com/san-kum/solarsim/internal/dynamo"
	"github.com/san-kum/solarsim/internal/physics"
)

// bodiesFromCatalog converts catalog entries to SI bodies in the given order.
func bodiesFromCatalog(cat catalog.Catalog, names []string) []*physics.Body {
	out := make([]*physics.Body, 0, len(names))
	for _, name := range names {
		e := cat[name]
		out = append(out, physics.NewBody(name, e.Radius*1000, e.Mass, e.Axis,
			dynamo.V3(e.Pos).Scale(1000), dynamo.V3(e.Velo).Scale(1000), e.Color))
	}
	return out
}

func twoBody() (*physics.System, error) {
	sun := physics.NewBody("a", 6.957e8, sunMass, 0, dynamo.Vec3{}, dynamo.Vec3{}, [3]float64{1, 1, 0})
	earth := physics.NewBody("b", 6.371e6, earthMass, 0, dynamo.Vec3{X: au}, dynamo.Vec3{Y: 29780}, [3]float64{0, 0, 1})
	return physics.NewSystemFromBodies("two-body", []*physics.Body{sun, earth}, physics.Options{})
}

func stepN(sys *physics.System, n int) {
	for i := 0; i < n; i++ {
		Expect(sys.Step()).To(Succeed())
	}
}

var _ = Describe("System", func() {
	Describe("NewSystem from the builtin catalog", func() {
		var sys *physics.System

		BeforeEach(func() {
			sys = physics.NewSystem("solar", catalog.Builtin(), physics.Options{})
		})

		It("creates exactly eleven bodies with positive mass", func() {
			Expect(sys.Len()).To(Equal(11))
			snap := sys.Snapshot()
			Expect(snap).To(HaveLen(11))
			for _, b := range snap {
				Expect(b.Mass).To(BeNumerically(">", 0), b.Name)
			}
		})

		It("puts the sun exactly at the origin", func() {
			sun, ok := sys.Body("sun")
			Expect(ok).To(BeTrue())
			Expect(sun.Position).To(Equal(dynamo.Vec3{}))
			Expect(sun.Velocity).To(Equal(dynamo.Vec3{}))
		})

		It("converts kilometres to metres", func() {
			entry := catalog.Builtin()["earth"]
			earth, ok := sys.Body("earth")
			Expect(ok).To(BeTrue())
			Expect(earth.Position.X).To(Equal(entry.Pos[0] * 1000))
			Expect(earth.Velocity.Y).To(Equal(entry.Velo[1] * 1000))
			Expect(earth.Radius).To(Equal(entry.Radius * 1000))
			Expect(earth.AxialTilt).To(Equal(entry.Axis))
			Expect(earth.Color).To(Equal(entry.Color))
		})

		It("enumerates bodies in stable name order", func() {
			Expect(sys.Names()).To(Equal(catalog.Builtin().Names()))
			for i, b := range sys.Snapshot() {
				Expect(b.Name).To(Equal(sys.Names()[i]))
			}
		})

		It("reports unknown bodies", func() {
			_, ok := sys.Body("vulcan")
			Expect(ok).To(BeFalse())
		})

		It("uses a one day timestep", func() {
			Expect(sys.Timestep()).To(Equal(86400.0))
			stepN(sys, 3)
			Expect(sys.Steps()).To(Equal(3))
			Expect(sys.Elapsed()).To(Equal(3 * 86400.0))
		})

		It("hands out copies that cannot mutate the system", func() {
			earth, _ := sys.Body("earth")
			earth.Position = dynamo.Vec3{}
			snap := sys.Snapshot()
			snap[0].Mass = -1

			again, _ := sys.Body("earth")
			Expect(again.Position).NotTo(Equal(dynamo.Vec3{}))
			Expect(sys.Snapshot()[0].Mass).To(BeNumerically(">", 0))
		})
	})

	Describe("NewSystemFromBodies", func() {
		It("rejects duplicate names", func() {
			a := body("x", 1, dynamo.Vec3{})
			b := body("x", 1, dynamo.Vec3{X: 1})
			_, err := physics.NewSystemFromBodies("dup", []*physics.Body{a, b}, physics.Options{})
			Expect(err).To(HaveOccurred())
		})

		It("rejects non-positive masses", func() {
			for _, m := range []float64{0, -1, math.NaN()} {
				_, err := physics.NewSystemFromBodies("m", []*physics.Body{body("a", m, dynamo.Vec3{})}, physics.Options{})
				Expect(err).To(MatchError(dynamo.ErrParameterBounds))
			}
		})

		It("rejects nil bodies", func() {
			_, err := physics.NewSystemFromBodies("nil", []*physics.Body{nil}, physics.Options{})
			Expect(err).To(HaveOccurred())
		})

		It("honours a custom timestep", func() {
			sys, err := physics.NewSystemFromBodies("t", []*physics.Body{body("a", 1, dynamo.Vec3{})},
				physics.Options{Timestep: 3600})
			Expect(err).NotTo(HaveOccurred())
			Expect(sys.Timestep()).To(Equal(3600.0))
		})
	})

	Describe("Step", func() {
		It("moves a lone body in a straight line", func() {
			b := physics.NewBody("drifter", 1, 1, 0, dynamo.Vec3{X: 1}, dynamo.Vec3{X: 2, Y: -1}, [3]float64{})
			sys, err := physics.NewSystemFromBodies("lone", []*physics.Body{b}, physics.Options{Timestep: 10})
			Expect(err).NotTo(HaveOccurred())

			stepN(sys, 2)
			got, _ := sys.Body("drifter")
			Expect(got.Position).To(Equal(dynamo.Vec3{X: 41, Y: -20}))
			Expect(got.Velocity).To(Equal(dynamo.Vec3{X: 2, Y: -1}))
		})

		It("advances a two-body orbit by v·dt plus a curvature correction toward the primary", func() {
			sys, err := twoBody()
			Expect(err).NotTo(HaveOccurred())

			Expect(sys.Step()).To(Succeed())

			dt := physics.DefaultTimestep
			a, _ := sys.Body("a")
			b, _ := sys.Body("b")

			// tangential motion is pure v·dt
			Expect(b.Position.Y).To(Equal(29780 * dt))
			Expect(b.Position.Z).To(BeZero())

			// radial correction is a·dt² toward the primary
			accB := physics.G * sunMass / (au * au)
			correction := au - b.Position.X
			Expect(correction).To(BeNumerically(">", 0))
			Expect(correction).To(BeNumerically("~", accB*dt*dt, accB*dt*dt*1e-6))
			Expect(correction).To(BeNumerically("<", 0.05*b.Position.Y))

			// the primary barely moves, in proportion to the mass ratio
			Expect(a.Position.X).To(BeNumerically(">", 0))
			Expect(a.Position.Y).To(BeZero())
			Expect(a.Position.X / correction).To(BeNumerically("~", earthMass/sunMass, earthMass/sunMass*1e-6))
			Expect(a.Position.Norm()).To(BeNumerically("<", 1e-5*b.Position.Sub(dynamo.Vec3{X: au}).Norm()))
		})

		It("conserves total momentum of a closed two-body system", func() {
			sys, err := twoBody()
			Expect(err).NotTo(HaveOccurred())

			p0 := physics.TotalMomentum(sys.Snapshot())
			scale := physics.MomentumScale(sys.Snapshot())
			for i := 0; i < 1000; i++ {
				Expect(sys.Step()).To(Succeed())
				drift := physics.TotalMomentum(sys.Snapshot()).Sub(p0).Norm() / scale
				Expect(drift).To(BeNumerically("<", 1e-6), "step %d", i)
			}
		})

		It("is independent of the order bodies were supplied in", func() {
			cat := catalog.Builtin()
			canonical := cat.Names()

			ref, err := physics.NewSystemFromBodies("ref", bodiesFromCatalog(cat, canonical), physics.Options{})
			Expect(err).NotTo(HaveOccurred())
			stepN(ref, 25)
			want := ref.Snapshot()

			rng := rand.New(rand.NewSource(7))
			for trial := 0; trial < 5; trial++ {
				names := append([]string(nil), canonical...)
				rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

				sys, err := physics.NewSystemFromBodies("perm", bodiesFromCatalog(cat, names), physics.Options{})
				Expect(err).NotTo(HaveOccurred())
				stepN(sys, 25)
				Expect(sys.Snapshot()).To(Equal(want), "order %v", names)
			}

			fromMap := physics.NewSystem("map", cat, physics.Options{})
			stepN(fromMap, 25)
			Expect(fromMap.Snapshot()).To(Equal(want))
		})

		It("gives the same result with parallel force accumulation", func() {
			seq := physics.NewSystem("seq", catalog.Builtin(), physics.Options{})
			par := physics.NewSystem("par", catalog.Builtin(), physics.Options{Workers: 4})

			stepN(seq, 50)
			stepN(par, 50)
			Expect(par.Snapshot()).To(Equal(seq.Snapshot()))
		})

		DescribeTable("leaves the system untouched when a collision is detected",
			func(workers int) {
				a := physics.NewBody("a", 1, earthMass, 0, dynamo.Vec3{X: au}, dynamo.Vec3{Y: 1}, [3]float64{})
				b := physics.NewBody("b", 1, earthMass, 0, dynamo.Vec3{X: au}, dynamo.Vec3{Y: -1}, [3]float64{})
				c := physics.NewBody("c", 1, sunMass, 0, dynamo.Vec3{}, dynamo.Vec3{}, [3]float64{})
				sys, err := physics.NewSystemFromBodies("crash", []*physics.Body{c, b, a}, physics.Options{Workers: workers})
				Expect(err).NotTo(HaveOccurred())

				before := sys.Snapshot()
				err = sys.Step()
				Expect(err).To(MatchError(physics.ErrCollision))
				Expect(sys.Snapshot()).To(Equal(before))
				Expect(sys.Steps()).To(BeZero())

				// the failure is sticky: nothing resolves it
				Expect(sys.Step()).To(MatchError(physics.ErrCollision))
			},
			Entry("sequential", 1),
			Entry("parallel", 3),
		)

		It("stops at a collision reached through integration", func() {
			// masses small enough that gravity vanishes next to v·dt, so the
			// bodies coast onto the same point after one step
			a := physics.NewBody("a", 1, 1e-30, 0, dynamo.Vec3{X: -1}, dynamo.Vec3{X: 1}, [3]float64{})
			b := physics.NewBody("b", 1, 1e-30, 0, dynamo.Vec3{X: 1}, dynamo.Vec3{X: -1}, [3]float64{})
			sys, err := physics.NewSystemFromBodies("head-on", []*physics.Body{a, b}, physics.Options{Timestep: 1})
			Expect(err).NotTo(HaveOccurred())

			Expect(sys.Step()).To(Succeed())
			landed := sys.Snapshot()
			Expect(landed[0].Position).To(Equal(landed[1].Position))

			Expect(sys.Step()).To(MatchError(physics.ErrCollision))
			Expect(sys.Snapshot()).To(Equal(landed))
			Expect(sys.Steps()).To(Equal(1))
		})
	})
})

var _ = Describe("diagnostics", func() {
	It("sums momentum and finds the closest pair", func() {
		bodies := []physics.BodyState{
			{Name: "a", Mass: 2, Velocity: dynamo.Vec3{X: 1}},
			{Name: "b", Mass: 1, Velocity: dynamo.Vec3{X: -2}, Position: dynamo.Vec3{X: 10}},
			{Name: "c", Mass: 1, Position: dynamo.Vec3{X: 11}},
		}

		Expect(physics.TotalMomentum(bodies)).To(Equal(dynamo.Vec3{}))
		Expect(physics.MomentumScale(bodies)).To(Equal(4.0))

		a, b, d := physics.ClosestPair(bodies)
		Expect([]string{a, b}).To(Equal([]string{"b", "c"}))
		Expect(d).To(Equal(1.0))
	})

	It("computes total energy of a bound pair as negative", func() {
		sys, err := twoBody()
		Expect(err).NotTo(HaveOccurred())
		Expect(physics.TotalEnergy(sys.Snapshot())).To(BeNumerically("<", 0))
	})
})
