package anim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/agemap/internal/anim"
)

var _ = Describe("Debouncer", func() {
	var d *anim.Debouncer

	BeforeEach(func() {
		d = &anim.Debouncer{}
	})

	It("dispatches immediately when idle", func() {
		l, ok := d.Submit(3, 4)
		Expect(ok).To(BeTrue())
		Expect(l.X).To(Equal(3))
		Expect(l.Y).To(Equal(4))
	})

	It("queues while a lookup is in flight", func() {
		_, ok := d.Submit(1, 1)
		Expect(ok).To(BeTrue())

		_, ok = d.Submit(2, 2)
		Expect(ok).To(BeFalse())
	})

	It("dispatches only the latest queued submission", func() {
		first, _ := d.Submit(1, 1)
		d.Submit(2, 2)
		d.Submit(3, 3)

		next, ok := d.Finish()
		Expect(ok).To(BeTrue())
		Expect(next.X).To(Equal(3))
		Expect(d.Stale(first)).To(BeTrue())
		Expect(d.Stale(next)).To(BeFalse())

		_, ok = d.Finish()
		Expect(ok).To(BeFalse())
	})

	It("goes idle once the stream drains", func() {
		d.Submit(1, 1)
		_, ok := d.Finish()
		Expect(ok).To(BeFalse())

		l, ok := d.Submit(9, 9)
		Expect(ok).To(BeTrue())
		Expect(d.Stale(l)).To(BeFalse())
	})
})
