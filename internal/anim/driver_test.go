package anim_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/agemap/internal/anim"
)

var _ = Describe("NextValue", func() {
	It("advances in half-year steps", func() {
		Expect(anim.NextValue(1880)).To(Equal(1880.5))
		Expect(anim.NextValue(1880.5)).To(Equal(1881.0))
	})

	It("holds the upper bound for one tick before wrapping", func() {
		Expect(anim.NextValue(2016.5)).To(Equal(2017.0))
	})

	It("wraps once the value passes the upper bound", func() {
		Expect(anim.NextValue(2017.0)).To(Equal(anim.WrapMin))
		Expect(anim.NextValue(2017.3)).To(Equal(anim.WrapMin))
	})
})

var _ = Describe("Driver", func() {
	var (
		clock  *anim.ManualClock
		driver *anim.Driver
	)

	BeforeEach(func() {
		clock = anim.NewManualClock()
		driver = anim.New(time.Millisecond, clock)
	})

	It("reports each advanced value on a frame edge", func() {
		values := make(chan float64, 16)
		h := driver.Start(1950, func(v float64) { values <- v })
		defer h.Stop()

		clock.Advance()
		Eventually(values).Should(Receive(Equal(1950.5)))
		clock.Advance()
		Eventually(values).Should(Receive(Equal(1951.0)))
	})

	It("wraps across the upper bound while running", func() {
		values := make(chan float64, 16)
		h := driver.Start(2016.5, func(v float64) { values <- v })
		defer h.Stop()

		clock.Advance()
		Eventually(values).Should(Receive(Equal(2017.0)))
		clock.Advance()
		Eventually(values).Should(Receive(Equal(anim.WrapMin)))
	})

	It("fires at most one callback after an immediate stop", func() {
		values := make(chan float64, 16)
		h := driver.Start(2000, func(v float64) { values <- v })
		h.Stop()
		clock.Advance()

		Eventually(h.Done()).Should(BeClosed())
		Expect(len(values)).To(BeNumerically("<=", 1))
	})

	It("closes Done and reports not running after Stop", func() {
		h := driver.Start(1950, func(float64) {})
		h.Stop()

		Eventually(h.Done()).Should(BeClosed())
		Expect(h.Running()).To(BeFalse())
	})

	It("tolerates repeated Stop", func() {
		h := driver.Start(1950, func(float64) {})
		h.Stop()
		h.Stop()
		Eventually(h.Done()).Should(BeClosed())
	})
})
