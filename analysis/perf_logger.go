// Package analysis provides occupancy tracking for fixed-capacity sequences.
// An OccupancyAnalyzer observes a vector through its hooks and records
// time-weighted occupancy levels through a PerfLogger backend.
package analysis

// OccupancyEntry is a single entry in the occupancy database. Start and End
// are in seconds since the analyzer was created.
type OccupancyEntry struct {
	Start     float64
	End       float64
	Where     string
	What      string
	EntryType string
	Value     float64
	Unit      string
}

// PerfLogger is the interface that provides the service that can record
// occupancy data entries.
type PerfLogger interface {
	AddDataEntry(entry OccupancyEntry)
}
