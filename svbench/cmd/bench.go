package cmd

import (
	"time"

	"github.com/slotlab/staticvec"
)

// BenchResult is one measurement row in the results database.
type BenchResult struct {
	Run         string
	Bench       string
	Container   string
	Capacity    int
	Repeat      int
	NsPerOp     float64
	ItemsPerSec float64
}

// ProcessStats captures the state of the benchmark process after a run.
type ProcessStats struct {
	Run       string
	UserCPU   float64
	SystemCPU float64
	RSSBytes  uint64
	VMSBytes  uint64
}

// A benchCase measures one operation on one container. Prepare performs the
// untimed setup and returns the operation to measure; the operation processes
// exactly capacity items so that ns/op is comparable across containers.
type benchCase struct {
	bench     string
	container string
	prepare   func(capacity int) (op func())
}

func filledVector(capacity int) *staticvec.Vector[int] {
	v := staticvec.New[int]("Bench", capacity)
	for i := 0; i < capacity; i++ {
		v.PushBack(i)
	}

	return v
}

func filledSlice(capacity int) []int {
	s := make([]int, 0, capacity)
	for i := 0; i < capacity; i++ {
		s = append(s, i)
	}

	return s
}

var benchCases = []benchCase{
	{
		bench:     "PushBack",
		container: "staticvec",
		prepare: func(capacity int) func() {
			v := staticvec.New[int]("Bench", capacity)
			return func() {
				for i := 0; i < capacity; i++ {
					v.PushBack(i)
				}
			}
		},
	},
	{
		bench:     "PushBack",
		container: "slice",
		prepare: func(capacity int) func() {
			s := make([]int, 0, capacity)
			return func() {
				for i := 0; i < capacity; i++ {
					s = append(s, i)
				}
			}
		},
	},
	{
		bench:     "EmplaceBack",
		container: "staticvec",
		prepare: func(capacity int) func() {
			v := staticvec.New[int]("Bench", capacity)
			return func() {
				for i := 0; i < capacity; i++ {
					v.EmplaceBack(func(slot *int) { *slot = i })
				}
			}
		},
	},
	{
		bench:     "Access",
		container: "staticvec",
		prepare: func(capacity int) func() {
			v := filledVector(capacity)
			return func() {
				sum := 0
				for i := 0; i < capacity; i++ {
					sum += *v.At(i)
				}
				_ = sum
			}
		},
	},
	{
		bench:     "Access",
		container: "slice",
		prepare: func(capacity int) func() {
			s := filledSlice(capacity)
			return func() {
				sum := 0
				for i := 0; i < capacity; i++ {
					sum += s[i]
				}
				_ = sum
			}
		},
	},
	{
		bench:     "Iterate",
		container: "staticvec",
		prepare: func(capacity int) func() {
			v := filledVector(capacity)
			return func() {
				sum := 0
				for _, val := range v.Data() {
					sum += val
				}
				_ = sum
			}
		},
	},
	{
		bench:     "Iterate",
		container: "slice",
		prepare: func(capacity int) func() {
			s := filledSlice(capacity)
			return func() {
				sum := 0
				for _, val := range s {
					sum += val
				}
				_ = sum
			}
		},
	},
}

// measure runs one prepared case and returns nanoseconds per processed item.
func measure(capacity int, c benchCase) float64 {
	op := c.prepare(capacity)

	start := time.Now()
	op()
	elapsed := time.Since(start)

	return float64(elapsed.Nanoseconds()) / float64(capacity)
}
