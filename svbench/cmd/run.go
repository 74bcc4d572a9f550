package cmd

import (
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"strconv"

	"github.com/google/pprof/profile"
	"github.com/rs/xid"
	"github.com/shirou/gopsutil/process"
	"github.com/spf13/cobra"

	"github.com/slotlab/staticvec/datarecording"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmarks and record the results.",
	Run: func(cmd *cobra.Command, args []string) {
		capacity, _ := cmd.Flags().GetInt("capacity")
		repeat, _ := cmd.Flags().GetInt("repeat")
		dbName, _ := cmd.Flags().GetString("db")
		cpuProfile, _ := cmd.Flags().GetString("cpuprofile")

		runBenchmarks(capacity, repeat, dbName, cpuProfile)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	defaultCapacity, _ := strconv.Atoi(
		envOrDefault("SVBENCH_CAPACITY", "65536"))
	defaultRepeat, _ := strconv.Atoi(envOrDefault("SVBENCH_REPEAT", "10"))

	runCmd.Flags().Int("capacity", defaultCapacity,
		"number of elements each operation processes")
	runCmd.Flags().Int("repeat", defaultRepeat,
		"number of times each benchmark is repeated")
	runCmd.Flags().String("db", envOrDefault("SVBENCH_DB", ""),
		"results database name; a unique name is generated when empty")
	runCmd.Flags().String("cpuprofile", "",
		"write a CPU profile to this file and print a summary")
}

func runBenchmarks(capacity, repeat int, dbName, cpuProfile string) {
	runID := xid.New().String()

	recorder := datarecording.New(dbName)
	recorder.CreateTable("results", BenchResult{})
	recorder.CreateTable("process_stats", ProcessStats{})

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		dieOnErr(err)

		err = pprof.StartCPUProfile(f)
		dieOnErr(err)
	}

	for _, c := range benchCases {
		for r := 0; r < repeat; r++ {
			nsPerOp := measure(capacity, c)

			recorder.InsertData("results", BenchResult{
				Run:         runID,
				Bench:       c.bench,
				Container:   c.container,
				Capacity:    capacity,
				Repeat:      r,
				NsPerOp:     nsPerOp,
				ItemsPerSec: 1e9 / nsPerOp,
			})
		}

		fmt.Fprintf(os.Stderr, "%-12s %-10s done\n", c.bench, c.container)
	}

	if cpuProfile != "" {
		pprof.StopCPUProfile()
		summarizeProfile(cpuProfile)
	}

	recordProcessStats(recorder, runID)
	recorder.Flush()
}

func recordProcessStats(recorder datarecording.DataRecorder, runID string) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot inspect benchmark process: %v\n", err)
		return
	}

	stats := ProcessStats{Run: runID}

	if times, err := proc.Times(); err == nil {
		stats.UserCPU = times.User
		stats.SystemCPU = times.System
	}

	if mem, err := proc.MemoryInfo(); err == nil {
		stats.RSSBytes = mem.RSS
		stats.VMSBytes = mem.VMS
	}

	recorder.InsertData("process_stats", stats)
}

// summarizeProfile prints the functions with the most CPU samples.
func summarizeProfile(path string) {
	f, err := os.Open(path)
	dieOnErr(err)
	defer f.Close()

	prof, err := profile.Parse(f)
	dieOnErr(err)

	valueIndex := len(prof.SampleType) - 1
	totals := map[string]int64{}
	var grandTotal int64

	for _, sample := range prof.Sample {
		if len(sample.Location) == 0 {
			continue
		}

		loc := sample.Location[0]
		if len(loc.Line) == 0 || loc.Line[0].Function == nil {
			continue
		}

		totals[loc.Line[0].Function.Name] += sample.Value[valueIndex]
		grandTotal += sample.Value[valueIndex]
	}

	type funcTotal struct {
		name  string
		value int64
	}

	sorted := make([]funcTotal, 0, len(totals))
	for name, value := range totals {
		sorted = append(sorted, funcTotal{name, value})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].value > sorted[j].value
	})

	fmt.Fprintf(os.Stderr, "\nTop functions by CPU samples:\n")
	for i, ft := range sorted {
		if i >= 10 {
			break
		}

		fmt.Fprintf(os.Stderr, "%6.2f%% %s\n",
			float64(ft.value)/float64(grandTotal)*100, ft.name)
	}
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
