package staticvec

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// dropRecorder remembers every element the vector reports as destroyed.
type dropRecorder struct {
	dropped []int
	pushed  []int
}

func (d *dropRecorder) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosVecPush:
		d.pushed = append(d.pushed, ctx.Item.(int))
	case HookPosVecDrop:
		d.dropped = append(d.dropped, ctx.Item.(int))
	}
}

var _ = Describe("Vector", func() {
	var (
		v *Vector[int]
	)

	BeforeEach(func() {
		v = New[int]("Vec", 3)
	})

	It("should start empty", func() {
		Expect(v.Empty()).To(BeTrue())
		Expect(v.Size()).To(Equal(0))
		Expect(v.Capacity()).To(Equal(3))
		Expect(v.Name()).To(Equal("Vec"))
	})

	It("should push until full, then report OutOfSpace", func() {
		Expect(v.PushBack(1)).To(Equal(NoError))
		Expect(v.PushBack(2)).To(Equal(NoError))
		Expect(v.PushBack(3)).To(Equal(NoError))
		Expect(v.Size()).To(Equal(3))

		Expect(v.PushBack(4)).To(Equal(OutOfSpace))
		Expect(v.Size()).To(Equal(3))
		Expect(v.Data()).To(Equal([]int{1, 2, 3}))
	})

	It("should keep size within capacity at every step", func() {
		for i := 0; i < 10; i++ {
			v.PushBack(i)
			Expect(v.Size()).To(BeNumerically("<=", v.Capacity()))
		}
		Expect(v.Capacity()).To(Equal(3))
	})

	It("should make a pushed value retrievable at the back", func() {
		v.PushBack(7)
		Expect(*v.At(v.Size() - 1)).To(Equal(7))
		Expect(*v.BackIf()).To(Equal(7))
	})

	It("should pop the last element", func() {
		v.PushBack(1)
		v.PushBack(2)

		Expect(v.PopBack()).To(Equal(NoError))
		Expect(v.Size()).To(Equal(1))
		Expect(*v.BackIf()).To(Equal(1))
	})

	It("should report Empty when popping an empty vector", func() {
		Expect(v.PopBack()).To(Equal(Empty))
		Expect(v.Size()).To(Equal(0))
	})

	It("should clear", func() {
		v.PushBack(1)
		v.PushBack(2)

		v.Clear()

		Expect(v.Empty()).To(BeTrue())
		Expect(v.Size()).To(Equal(0))
		Expect(v.Capacity()).To(Equal(3))
	})

	It("should allow reuse after clearing", func() {
		v.PushBack(1)
		v.Clear()

		Expect(v.PushBack(9)).To(Equal(NoError))
		Expect(*v.FrontIf()).To(Equal(9))
	})

	Describe("checked access", func() {
		It("should return nil for everything on an empty vector", func() {
			Expect(v.FrontIf()).To(BeNil())
			Expect(v.BackIf()).To(BeNil())
			Expect(v.AtIf(0)).To(BeNil())
		})

		It("should return non-nil exactly within the live range", func() {
			v.PushBack(10)
			v.PushBack(20)

			Expect(v.AtIf(0)).NotTo(BeNil())
			Expect(v.AtIf(1)).NotTo(BeNil())
			Expect(v.AtIf(2)).To(BeNil())
			Expect(*v.AtIf(1)).To(Equal(20))
		})

		It("should tolerate wildly out-of-range positions", func() {
			v.PushBack(1)

			Expect(v.AtIf(-1)).To(BeNil())
			Expect(v.AtIf(1 << 30)).To(BeNil())
			Expect(v.AtIf(v.Capacity() + 1000)).To(BeNil())
		})

		It("should see front and back once occupied", func() {
			v.PushBack(10)
			v.PushBack(20)

			Expect(*v.FrontIf()).To(Equal(10))
			Expect(*v.BackIf()).To(Equal(20))
		})
	})

	Describe("unchecked access", func() {
		It("should return a writable pointer into the live range", func() {
			v.PushBack(5)

			*v.At(0) = 42

			Expect(*v.FrontIf()).To(Equal(42))
		})
	})

	Describe("in-place construction", func() {
		type record struct {
			id      int
			payload [16]byte
		}

		It("should construct in the slot, with no intermediate value", func() {
			r := New[record]("Records", 2)

			code := r.EmplaceBack(func(rec *record) {
				rec.id = 1
				rec.payload[0] = 0xff
			})

			Expect(code).To(Equal(NoError))
			Expect(r.Size()).To(Equal(1))
			Expect(r.At(0).id).To(Equal(1))
			Expect(r.At(0).payload[0]).To(Equal(byte(0xff)))
		})

		It("should leave the slot zeroed when construct is nil", func() {
			r := New[record]("Records", 2)

			Expect(r.EmplaceBack(nil)).To(Equal(NoError))
			Expect(r.At(0).id).To(Equal(0))
		})

		It("should report OutOfSpace when full", func() {
			r := New[record]("Records", 1)
			r.EmplaceBack(nil)

			Expect(r.EmplaceBack(func(rec *record) {
				rec.id = 2
			})).To(Equal(OutOfSpace))
			Expect(r.Size()).To(Equal(1))
		})
	})

	Describe("iteration", func() {
		BeforeEach(func() {
			v.PushBack(10)
			v.PushBack(20)
			v.PushBack(30)
		})

		It("should iterate forward over the live range", func() {
			indices := []int{}
			values := []int{}
			for i, val := range v.All() {
				indices = append(indices, i)
				values = append(values, val)
			}

			Expect(indices).To(Equal([]int{0, 1, 2}))
			Expect(values).To(Equal([]int{10, 20, 30}))
		})

		It("should iterate backward over the live range", func() {
			values := []int{}
			for _, val := range v.Backward() {
				values = append(values, val)
			}

			Expect(values).To(Equal([]int{30, 20, 10}))
		})

		It("should expose the live range as a mutable view", func() {
			data := v.Data()
			data[1] = 99

			Expect(*v.AtIf(1)).To(Equal(99))
			Expect(data).To(HaveLen(3))
		})

		It("should stop early when the consumer breaks", func() {
			count := 0
			for range v.All() {
				count++
				break
			}

			Expect(count).To(Equal(1))
		})
	})

	Describe("copying", func() {
		It("should clone elements index for index", func() {
			v.PushBack(1)
			v.PushBack(2)

			c := v.Clone()

			Expect(c.Size()).To(Equal(2))
			Expect(c.Capacity()).To(Equal(3))
			Expect(c.Data()).To(Equal([]int{1, 2}))
			Expect(v.Data()).To(Equal([]int{1, 2}))
		})

		It("should not share storage with the clone", func() {
			v.PushBack(1)

			c := v.Clone()
			*c.At(0) = 100

			Expect(*v.At(0)).To(Equal(1))
		})

		It("should copy-assign, replacing previous contents", func() {
			v.PushBack(1)

			src := New[int]("Src", 3)
			src.PushBack(7)
			src.PushBack(8)

			Expect(v.CopyFrom(src)).To(Equal(NoError))
			Expect(v.Data()).To(Equal([]int{7, 8}))
			Expect(src.Data()).To(Equal([]int{7, 8}))
		})

		It("should treat self-copy as a no-op", func() {
			v.PushBack(1)

			Expect(v.CopyFrom(v)).To(Equal(NoError))
			Expect(v.Data()).To(Equal([]int{1}))
		})

		It("should refuse to copy from a larger source", func() {
			src := New[int]("Src", 10)
			for i := 0; i < 5; i++ {
				src.PushBack(i)
			}
			v.PushBack(42)

			Expect(v.CopyFrom(src)).To(Equal(OutOfSpace))
			Expect(v.Data()).To(Equal([]int{42}))
		})
	})

	Describe("moving", func() {
		It("should transfer elements and leave the source empty", func() {
			src := New[int]("Src", 5)
			src.PushBack(10)
			src.PushBack(20)
			src.PushBack(30)

			dst := New[int]("Dst", 5)
			Expect(dst.MoveFrom(src)).To(Equal(NoError))

			Expect(dst.Size()).To(Equal(3))
			Expect(dst.Data()).To(Equal([]int{10, 20, 30}))
			Expect(src.Size()).To(Equal(0))
			Expect(src.Empty()).To(BeTrue())
		})

		It("should treat self-move as a no-op", func() {
			v.PushBack(1)

			Expect(v.MoveFrom(v)).To(Equal(NoError))
			Expect(v.Data()).To(Equal([]int{1}))
		})

		It("should refuse to move from a larger source", func() {
			src := New[int]("Src", 10)
			for i := 0; i < 5; i++ {
				src.PushBack(i)
			}

			Expect(v.MoveFrom(src)).To(Equal(OutOfSpace))
			Expect(src.Size()).To(Equal(5))
		})
	})

	Describe("drop discipline", func() {
		var rec *dropRecorder

		BeforeEach(func() {
			rec = &dropRecorder{}
			v.AcceptHook(rec)
		})

		It("should fire the drop hook once per popped element", func() {
			v.PushBack(1)
			v.PushBack(2)

			v.PopBack()

			Expect(rec.dropped).To(Equal([]int{2}))
		})

		It("should not fire the drop hook on a failed pop", func() {
			v.PopBack()

			Expect(rec.dropped).To(BeEmpty())
		})

		It("should drop every live element exactly once on clear", func() {
			v.PushBack(1)
			v.PushBack(2)

			v.Clear()

			Expect(rec.dropped).To(Equal([]int{1, 2}))
		})

		It("should never drop slots that were never constructed", func() {
			v.PushBack(1)

			v.Clear()
			v.Clear()

			Expect(rec.dropped).To(Equal([]int{1}))
		})

		It("should drop overwritten elements on copy-assign", func() {
			v.PushBack(1)
			src := New[int]("Src", 3)
			src.PushBack(9)

			v.CopyFrom(src)

			Expect(rec.dropped).To(Equal([]int{1}))
		})

		It("should not fire the source's drop hooks on move", func() {
			src := New[int]("Src", 3)
			srcRec := &dropRecorder{}
			src.AcceptHook(srcRec)
			src.PushBack(10)

			dst := New[int]("Dst", 3)
			dst.MoveFrom(src)

			Expect(srcRec.dropped).To(BeEmpty())
			Expect(src.Empty()).To(BeTrue())
		})

		It("should fire the push hook per successful insertion only", func() {
			v.PushBack(1)
			v.PushBack(2)
			v.PushBack(3)
			v.PushBack(4)

			Expect(rec.pushed).To(Equal([]int{1, 2, 3}))
		})
	})

	Describe("wrapped storage", func() {
		It("should adopt caller-provided backing without allocating", func() {
			var backing [4]int
			w := Wrap("Stack", backing[:])

			Expect(w.Capacity()).To(Equal(4))
			Expect(w.Empty()).To(BeTrue())

			w.PushBack(5)
			Expect(backing[0]).To(Equal(5))
		})

		It("should discard pre-existing contents of the backing", func() {
			backing := []int{1, 2, 3}
			w := Wrap("Stack", backing)

			Expect(w.Size()).To(Equal(0))
			Expect(backing).To(Equal([]int{0, 0, 0}))
		})
	})

	Describe("zero capacity", func() {
		It("should reject every insertion", func() {
			z := New[int]("Zero", 0)

			Expect(z.PushBack(1)).To(Equal(OutOfSpace))
			Expect(z.PopBack()).To(Equal(Empty))
			Expect(z.FrontIf()).To(BeNil())
		})
	})

	Describe("naming", func() {
		It("should panic on an empty name", func() {
			Expect(func() {
				New[int]("", 1)
			}).To(Panic())
		})

		It("should panic on a name with white spaces", func() {
			Expect(func() {
				New[int]("a b", 1)
			}).To(Panic())
		})
	})

	It("should keep dead slots zeroed so removed values cannot leak", func() {
		p := New[*int]("Ptrs", 2)
		x := 5
		p.PushBack(&x)

		p.PopBack()

		Expect(*p.At(0)).To(BeNil())
	})
})
