package nerdstats

import (
	"runtime"
	"time"

	"github.com/thushan/holocron/pkg/format"
)

// NerdStats is a snapshot of the Go runtime, logged when the browser exits
// so slow sessions or leaks show up in the log file.
// See https://pkg.go.dev/runtime#MemStats for the fields.
type NerdStats struct {
	GoVersion string

	HeapAlloc  uint64
	HeapSys    uint64
	HeapInuse  uint64
	TotalAlloc uint64
	Mallocs    uint64
	Frees      uint64

	TotalGCTime time.Duration
	Uptime      time.Duration
	NumGC       uint32

	NumGoroutines int
	GOMAXPROCS    int
}

func Snapshot(startTime time.Time) *NerdStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &NerdStats{
		GoVersion:     runtime.Version(),
		HeapAlloc:     m.HeapAlloc,
		HeapSys:       m.HeapSys,
		HeapInuse:     m.HeapInuse,
		TotalAlloc:    m.TotalAlloc,
		Mallocs:       m.Mallocs,
		Frees:         m.Frees,
		NumGC:         m.NumGC,
		TotalGCTime:   time.Duration(m.PauseTotalNs),
		NumGoroutines: runtime.NumGoroutine(),
		GOMAXPROCS:    runtime.GOMAXPROCS(0),
		Uptime:        time.Since(startTime),
	}
}

// GetMemoryPressure is a rough LOW / MEDIUM / HIGH read of heap usage
func (ps *NerdStats) GetMemoryPressure() string {
	if ps.HeapSys == 0 {
		return "LOW"
	}
	heapUsageRatio := float64(ps.HeapInuse) / float64(ps.HeapSys)
	allocsPerFree := float64(ps.Mallocs) / float64(ps.Frees+1)

	if heapUsageRatio > 0.9 && allocsPerFree > 1.5 {
		return "HIGH"
	} else if heapUsageRatio > 0.7 || allocsPerFree > 1.2 {
		return "MEDIUM"
	}
	return "LOW"
}

func (ps *NerdStats) AverageGCPause() string {
	if ps.NumGC == 0 {
		return "N/A"
	}
	return format.Duration(ps.TotalGCTime / time.Duration(ps.NumGC))
}

// LogArgs flattens the snapshot into slog key/value pairs
func (ps *NerdStats) LogArgs() []any {
	return []any{
		"uptime", format.Duration(ps.Uptime),
		"heap_alloc", format.Bytes(int64(ps.HeapAlloc)),
		"heap_inuse", format.Bytes(int64(ps.HeapInuse)),
		"total_alloc", format.Bytes(int64(ps.TotalAlloc)),
		"memory_pressure", ps.GetMemoryPressure(),
		"num_gc", ps.NumGC,
		"avg_gc_pause", ps.AverageGCPause(),
		"goroutines", ps.NumGoroutines,
		"gomaxprocs", ps.GOMAXPROCS,
		"go_version", ps.GoVersion,
	}
}
