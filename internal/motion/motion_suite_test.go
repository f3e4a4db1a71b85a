package motion_test

import (
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wobble/internal/motion"
)

func TestMotion(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Motion Suite")
}

var _ = Describe("generators", func() {
	DescribeTable("every behaviour restarts after Reset",
		func(name string) {
			gen, err := motion.NewRegistry().Get(name, motion.DefaultParams())
			Expect(err).NotTo(HaveOccurred())

			first := make([]motion.Transform, 50)
			for i := range first {
				first[i] = gen.Next()
			}
			gen.Reset()
			for i := range first {
				Expect(gen.Next()).To(Equal(first[i]))
			}
		},
		Entry("bounce", "bounce"),
		Entry("orbit-cw", "orbit-cw"),
		Entry("orbit-ccw", "orbit-ccw"),
		Entry("orbit-cw-mirrored", "orbit-cw-mirrored"),
		Entry("orbit-ccw-mirrored", "orbit-ccw-mirrored"),
		Entry("spin-cw", "spin-cw"),
		Entry("spin-ccw", "spin-ccw"),
	)

	Describe("spin", func() {
		It("moves by exactly one degree per tick", func() {
			for _, dir := range []motion.Direction{motion.Clockwise, motion.CounterClockwise} {
				s := motion.NewSpin(dir)
				prev := s.Next().Angle
				for i := 0; i < 1000; i++ {
					cur := s.Next().Angle
					d := math.Mod(cur-prev+motion.FullTurn, motion.FullTurn)
					if dir == motion.CounterClockwise {
						d = motion.FullTurn - d
					}
					Expect(d).To(BeNumerically("==", 1))
					prev = cur
				}
			}
		})
	})

	Describe("orbit", func() {
		It("keeps every offset on the circle", func() {
			o := motion.NewOrbit(4, 3, motion.Clockwise, motion.Standard)
			for i := 0; i < 360; i++ {
				t := o.Next()
				Expect(math.Hypot(t.DX, t.DY)).To(BeNumerically("~", 4, 1e-9))
				Expect(t.Angle).To(BeZero())
			}
		})

		It("mirrors the standard offsets", func() {
			std := motion.NewOrbit(4, 5, motion.CounterClockwise, motion.Standard)
			mir := motion.NewOrbit(4, 5, motion.CounterClockwise, motion.Mirrored)
			for i := 0; i < 72; i++ {
				a, b := std.Next(), mir.Next()
				Expect(b.DX).To(BeNumerically("~", -a.DX, 1e-12))
				Expect(b.DY).To(BeNumerically("~", -a.DY, 1e-12))
			}
		})
	})

	Describe("bounce", func() {
		It("only writes a vertical offset", func() {
			tri := motion.NewTriangle(0, 1, 30, 1)
			for i := 0; i < 120; i++ {
				t := tri.Next()
				Expect(t.DX).To(BeZero())
				Expect(t.Angle).To(BeZero())
				Expect(t.DY).To(BeNumerically("<=", 0))
				Expect(t.DY).To(BeNumerically(">=", -30))
			}
		})
	})
})
