package analysis

import (
	"time"

	"github.com/slotlab/staticvec"
)

// Sequence is the view of a container that the analyzer needs.
type Sequence interface {
	Name() string
	Size() int
	Capacity() int
}

// An OccupancyAnalyzer records the occupancy level of a fixed-capacity
// sequence over wall-clock time. It implements staticvec.Hook; attach it to a
// vector with AcceptHook and it samples on every push and drop.
type OccupancyAnalyzer struct {
	PerfLogger

	seq       Sequence
	now       func() time.Time
	usePeriod bool
	period    time.Duration

	startTime       time.Time
	lastTime        time.Time
	lastLevel       int
	levelToDuration map[int]time.Duration
}

// Func records an occupancy level change.
func (a *OccupancyAnalyzer) Func(_ staticvec.HookCtx) {
	now := a.now()
	currLevel := a.seq.Size()

	if a.usePeriod {
		lastPeriodEndTime := a.periodEndTime(a.lastTime)

		if now.After(lastPeriodEndTime) {
			a.summarize(now)
			a.resetPeriod(now)
		}
	}

	a.levelToDuration[a.lastLevel] += now.Sub(a.lastTime)
	a.lastLevel = currLevel
	a.lastTime = now
}

// Report summarizes everything observed so far. In period mode it closes all
// periods that have fully elapsed; otherwise it emits a single entry covering
// the analyzer's whole lifetime.
func (a *OccupancyAnalyzer) Report() {
	a.summarize(a.now())
}

func (a *OccupancyAnalyzer) summarize(now time.Time) {
	if !a.usePeriod {
		a.summarizePeriod(now, a.startTime, now)
		return
	}

	periodStartTime := a.periodStartTime(a.lastTime)
	periodEndTime := a.periodEndTime(a.lastTime)

	for periodEndTime.Before(now) {
		a.summarizePeriod(now, periodStartTime, periodEndTime)

		a.levelToDuration = make(map[int]time.Duration)
		a.lastTime = periodEndTime
		periodStartTime = periodEndTime
		periodEndTime = periodStartTime.Add(a.period)
	}
}

func (a *OccupancyAnalyzer) summarizePeriod(
	now, periodStartTime, periodEndTime time.Time,
) {
	sumLevel := 0.0
	sumDuration := 0.0
	for level, duration := range a.levelToDuration {
		sumLevel += float64(level) * duration.Seconds()
		sumDuration += duration.Seconds()
	}

	summarizeEndTime := minTime(periodEndTime, now)
	if summarizeEndTime.After(a.lastTime) {
		remainingTime := summarizeEndTime.Sub(a.lastTime)
		sumLevel += float64(a.lastLevel) * remainingTime.Seconds()
		sumDuration += remainingTime.Seconds()
	}

	if sumDuration == 0 {
		return
	}

	avgLevel := sumLevel / sumDuration
	if avgLevel == 0 {
		return
	}

	a.PerfLogger.AddDataEntry(OccupancyEntry{
		Start:     periodStartTime.Sub(a.startTime).Seconds(),
		End:       periodEndTime.Sub(a.startTime).Seconds(),
		Where:     a.seq.Name(),
		What:      "Level",
		EntryType: "Sequence",
		Value:     avgLevel,
		Unit:      "",
	})
}

func (a *OccupancyAnalyzer) resetPeriod(now time.Time) {
	a.levelToDuration = make(map[int]time.Duration)

	a.lastTime = a.periodStartTime(now)
}

func (a *OccupancyAnalyzer) periodStartTime(t time.Time) time.Time {
	elapsed := t.Sub(a.startTime)
	n := int64(elapsed / a.period)

	return a.startTime.Add(time.Duration(n) * a.period)
}

func (a *OccupancyAnalyzer) periodEndTime(t time.Time) time.Time {
	return a.periodStartTime(t).Add(a.period)
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}

	return b
}

// OccupancyAnalyzerBuilder can build OccupancyAnalyzers.
type OccupancyAnalyzerBuilder struct {
	perfLogger PerfLogger
	seq        Sequence
	clock      func() time.Time
	usePeriod  bool
	period     time.Duration
}

// MakeOccupancyAnalyzerBuilder creates an OccupancyAnalyzerBuilder.
func MakeOccupancyAnalyzerBuilder() OccupancyAnalyzerBuilder {
	return OccupancyAnalyzerBuilder{
		clock: time.Now,
	}
}

// WithPerfLogger sets the PerfLogger to use.
func (b OccupancyAnalyzerBuilder) WithPerfLogger(
	perfLogger PerfLogger,
) OccupancyAnalyzerBuilder {
	b.perfLogger = perfLogger
	return b
}

// WithSequence sets the sequence to observe.
func (b OccupancyAnalyzerBuilder) WithSequence(
	seq Sequence,
) OccupancyAnalyzerBuilder {
	b.seq = seq
	return b
}

// WithClock sets the time source. It defaults to time.Now.
func (b OccupancyAnalyzerBuilder) WithClock(
	clock func() time.Time,
) OccupancyAnalyzerBuilder {
	b.clock = clock
	return b
}

// WithPeriod enables periodic summaries with the given period.
func (b OccupancyAnalyzerBuilder) WithPeriod(
	period time.Duration,
) OccupancyAnalyzerBuilder {
	b.usePeriod = true
	b.period = period
	return b
}

// Build creates an OccupancyAnalyzer.
func (b OccupancyAnalyzerBuilder) Build() *OccupancyAnalyzer {
	if b.perfLogger == nil {
		panic("perfLogger is not set")
	}

	if b.seq == nil {
		panic("sequence is not set")
	}

	if b.usePeriod && b.period <= 0 {
		panic("period must be positive")
	}

	start := b.clock()

	return &OccupancyAnalyzer{
		PerfLogger:      b.perfLogger,
		seq:             b.seq,
		now:             b.clock,
		usePeriod:       b.usePeriod,
		period:          b.period,
		startTime:       start,
		lastTime:        start,
		levelToDuration: make(map[int]time.Duration),
	}
}
