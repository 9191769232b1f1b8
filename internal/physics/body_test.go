package physics_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/solarsim/internal/dynamo"
	"github.com/san-kum/solarsim/internal/physics"
)

const (
	sunMass   = 1.989e30
	earthMass = 5.972e24
	au        = 1.496e11
)

func body(name string, mass float64, pos dynamo.Vec3) *physics.Body {
	return physics.NewBody(name, 1, mass, 0, pos, dynamo.Vec3{}, [3]float64{1, 1, 1})
}

var _ = Describe("Body", func() {
	Describe("NewBody", func() {
		It("stores every field as given", func() {
			b := physics.NewBody("earth", 6.371e6, earthMass, 23.439,
				dynamo.Vec3{X: 1, Y: 2, Z: 3}, dynamo.Vec3{X: 4, Y: 5, Z: 6}, [3]float64{0, 0, 1})

			Expect(b.Name).To(Equal("earth"))
			Expect(b.Radius).To(Equal(6.371e6))
			Expect(b.Mass).To(Equal(earthMass))
			Expect(b.AxialTilt).To(Equal(23.439))
			Expect(b.Position).To(Equal(dynamo.Vec3{X: 1, Y: 2, Z: 3}))
			Expect(b.Velocity).To(Equal(dynamo.Vec3{X: 4, Y: 5, Z: 6}))
			Expect(b.Color).To(Equal([3]float64{0, 0, 1}))
		})
	})

	Describe("Attraction", func() {
		It("points from the other body toward the receiver", func() {
			sun := body("sun", sunMass, dynamo.Vec3{})
			earth := body("earth", earthMass, dynamo.Vec3{X: au})

			f, err := sun.Attraction(earth)
			Expect(err).NotTo(HaveOccurred())

			expected := physics.G * sunMass * earthMass / (au * au)
			Expect(f.X).To(BeNumerically("~", -expected, expected*1e-12))
			Expect(f.Y).To(BeZero())
			Expect(f.Z).To(BeZero())
		})

		It("follows the inverse square law", func() {
			a := body("a", 1e20, dynamo.Vec3{})
			near := body("near", 1e20, dynamo.Vec3{X: 1e9})
			far := body("far", 1e20, dynamo.Vec3{X: 2e9})

			fNear, err := a.Attraction(near)
			Expect(err).NotTo(HaveOccurred())
			fFar, err := a.Attraction(far)
			Expect(err).NotTo(HaveOccurred())

			Expect(fNear.Norm() / fFar.Norm()).To(BeNumerically("~", 4.0, 1e-12))
		})

		DescribeTable("satisfies Newton's third law exactly",
			func(pa, pb dynamo.Vec3, ma, mb float64) {
				a := body("a", ma, pa)
				b := body("b", mb, pb)

				fab, err := a.Attraction(b)
				Expect(err).NotTo(HaveOccurred())
				fba, err := b.Attraction(a)
				Expect(err).NotTo(HaveOccurred())

				Expect(fab).To(Equal(fba.Neg()))
			},
			Entry("sun and earth", dynamo.Vec3{}, dynamo.Vec3{X: au}, sunMass, earthMass),
			Entry("off-axis", dynamo.Vec3{X: 1.3e10, Y: -7e9, Z: 2e8}, dynamo.Vec3{X: -4e9, Y: 3.3e10, Z: -1e9}, 3.302e23, 4.8685e24),
			Entry("tiny separation", dynamo.Vec3{X: 1}, dynamo.Vec3{X: 1, Y: 1e-3}, 7.349e22, 5.97219e24),
			Entry("equal masses", dynamo.Vec3{Z: -5e11}, dynamo.Vec3{Z: 5e11}, 1e27, 1e27),
		)

		DescribeTable("rejects attraction to itself at any position",
			func(pos dynamo.Vec3) {
				a := body("a", earthMass, pos)

				_, err := a.Attraction(a)
				Expect(err).To(MatchError(physics.ErrSelfAttraction))

				var selfErr *physics.SelfAttractionError
				Expect(errors.As(err, &selfErr)).To(BeTrue())
				Expect(selfErr.Body).To(Equal("a"))
			},
			Entry("origin", dynamo.Vec3{}),
			Entry("one AU", dynamo.Vec3{X: au}),
			Entry("far away", dynamo.Vec3{X: -3e12, Y: 4e12, Z: 1}),
		)

		It("uses identity, not name, to detect self attraction", func() {
			a := body("twin", earthMass, dynamo.Vec3{})
			b := body("twin", earthMass, dynamo.Vec3{X: au})

			_, err := a.Attraction(b)
			Expect(err).NotTo(HaveOccurred())
		})

		It("fails with a collision when two distinct bodies coincide", func() {
			a := body("a", sunMass, dynamo.Vec3{X: 5, Y: 6, Z: 7})
			b := body("b", earthMass, dynamo.Vec3{X: 5, Y: 6, Z: 7})

			f, err := a.Attraction(b)
			Expect(err).To(MatchError(physics.ErrCollision))
			Expect(err).NotTo(MatchError(physics.ErrSelfAttraction))
			Expect(f).To(Equal(dynamo.Vec3{}))

			var collision *physics.CollisionError
			Expect(errors.As(err, &collision)).To(BeTrue())
			Expect(collision.A).To(Equal("a"))
			Expect(collision.B).To(Equal("b"))

			_, err = b.Attraction(a)
			Expect(err).To(MatchError(physics.ErrCollision))
		})

		It("does not modify either body", func() {
			a := body("a", sunMass, dynamo.Vec3{X: 1})
			b := body("b", earthMass, dynamo.Vec3{X: au})
			before := []physics.BodyState{a.State(), b.State()}

			_, err := a.Attraction(b)
			Expect(err).NotTo(HaveOccurred())
			Expect([]physics.BodyState{a.State(), b.State()}).To(Equal(before))
		})
	})

	Describe("derived quantities", func() {
		It("computes momentum and kinetic energy", func() {
			b := physics.NewBody("b", 1, 2, 0, dynamo.Vec3{}, dynamo.Vec3{X: 3, Y: 4}, [3]float64{})

			Expect(b.Momentum()).To(Equal(dynamo.Vec3{X: 6, Y: 8}))
			Expect(b.KineticEnergy()).To(Equal(25.0))
		})
	})
})
