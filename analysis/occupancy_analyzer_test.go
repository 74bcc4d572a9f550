package analysis

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/slotlab/staticvec"
)

var _ = Describe("OccupancyAnalyzer", func() {
	var (
		mockCtrl   *gomock.Controller
		perfLogger *MockPerfLogger
		vec        *staticvec.Vector[int]
		current    time.Time
	)

	clock := func() time.Time {
		return current
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		perfLogger = NewMockPerfLogger(mockCtrl)
		vec = staticvec.New[int]("Vec", 8)
		current = time.Unix(0, 0)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should summarize the whole lifetime without a period", func() {
		analyzer := MakeOccupancyAnalyzerBuilder().
			WithPerfLogger(perfLogger).
			WithSequence(vec).
			WithClock(clock).
			Build()
		vec.AcceptHook(analyzer)

		current = current.Add(1 * time.Second)
		vec.PushBack(1)

		current = current.Add(2 * time.Second)
		vec.PopBack()

		perfLogger.EXPECT().AddDataEntry(OccupancyEntry{
			Start:     0,
			End:       4,
			Where:     "Vec",
			What:      "Level",
			EntryType: "Sequence",
			Value:     0.5,
			Unit:      "",
		})

		current = current.Add(1 * time.Second)
		analyzer.Report()
	})

	It("should close elapsed periods as samples arrive", func() {
		analyzer := MakeOccupancyAnalyzerBuilder().
			WithPerfLogger(perfLogger).
			WithSequence(vec).
			WithClock(clock).
			WithPeriod(1 * time.Second).
			Build()
		vec.AcceptHook(analyzer)

		current = current.Add(500 * time.Millisecond)
		vec.PushBack(1)

		perfLogger.EXPECT().AddDataEntry(OccupancyEntry{
			Start:     0,
			End:       1,
			Where:     "Vec",
			What:      "Level",
			EntryType: "Sequence",
			Value:     0.5,
			Unit:      "",
		})
		perfLogger.EXPECT().AddDataEntry(OccupancyEntry{
			Start:     1,
			End:       2,
			Where:     "Vec",
			What:      "Level",
			EntryType: "Sequence",
			Value:     1,
			Unit:      "",
		})

		current = time.Unix(0, 0).Add(2500 * time.Millisecond)
		vec.PushBack(2)
	})

	It("should emit nothing when the sequence stayed empty", func() {
		analyzer := MakeOccupancyAnalyzerBuilder().
			WithPerfLogger(perfLogger).
			WithSequence(vec).
			WithClock(clock).
			Build()
		vec.AcceptHook(analyzer)

		current = current.Add(1 * time.Second)
		analyzer.Report()
	})

	It("should panic when built without a logger", func() {
		Expect(func() {
			MakeOccupancyAnalyzerBuilder().
				WithSequence(vec).
				Build()
		}).To(Panic())
	})

	It("should panic when built without a sequence", func() {
		Expect(func() {
			MakeOccupancyAnalyzerBuilder().
				WithPerfLogger(perfLogger).
				Build()
		}).To(Panic())
	})
})
