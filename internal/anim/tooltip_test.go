package anim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/agemap/internal/anim"
)

var _ = Describe("Tooltip", func() {
	var tip *anim.Tooltip

	BeforeEach(func() {
		tip = anim.NewTooltip()
	})

	It("snaps into place on the first show", func() {
		tip.Show(40, 12, "Titled in 1923")

		x, y := tip.Position()
		Expect(x).To(Equal(40))
		Expect(y).To(Equal(12))
		Expect(tip.Visible()).To(BeTrue())
		Expect(tip.Text()).To(Equal("Titled in 1923"))
	})

	It("glides toward a retarget while visible", func() {
		tip.Show(0, 0, "a")
		tip.Show(100, 0, "b")

		x, _ := tip.Position()
		Expect(x).To(Equal(0))
		Expect(tip.Text()).To(Equal("b"))

		Expect(tip.Tick()).To(BeTrue())
		x, _ = tip.Position()
		Expect(x).To(Equal(10))
	})

	It("converges and snaps exactly onto the target", func() {
		tip.Show(0, 0, "a")
		tip.Show(100, 0, "a")

		calls := 0
		for {
			calls++
			if !tip.Tick() {
				break
			}
			Expect(calls).To(BeNumerically("<", 100))
		}

		Expect(calls).To(Equal(44))
		x, y := tip.Position()
		Expect(x).To(Equal(100))
		Expect(y).To(Equal(0))
	})

	It("keeps easing while either axis remains beyond the snap radius", func() {
		tip.Show(0, 0, "a")
		tip.Show(0, 40, "a")

		Expect(tip.Tick()).To(BeTrue())
	})

	It("is settled once on target", func() {
		tip.Show(25, 25, "a")
		Expect(tip.Tick()).To(BeFalse())
	})

	It("snaps again after hide and show", func() {
		tip.Show(0, 0, "a")
		tip.Show(100, 0, "a")
		tip.Tick()
		tip.Hide()
		Expect(tip.Visible()).To(BeFalse())

		tip.Show(60, 5, "c")
		x, y := tip.Position()
		Expect(x).To(Equal(60))
		Expect(y).To(Equal(5))
		Expect(tip.Tick()).To(BeFalse())
	})

	It("retains position and text while hidden", func() {
		tip.Show(10, 20, "hello")
		tip.Hide()

		x, y := tip.Position()
		Expect(x).To(Equal(10))
		Expect(y).To(Equal(20))
		Expect(tip.Text()).To(Equal("hello"))
	})
})
