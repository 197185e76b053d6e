package nerdstats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot(t *testing.T) {
	start := time.Now().Add(-time.Minute)
	stats := Snapshot(start)

	assert.GreaterOrEqual(t, stats.Uptime, time.Minute)
	assert.Positive(t, stats.NumGoroutines)
	assert.Positive(t, stats.GOMAXPROCS)
	assert.NotEmpty(t, stats.GoVersion)
	assert.Contains(t, []string{"LOW", "MEDIUM", "HIGH"}, stats.GetMemoryPressure())

	args := stats.LogArgs()
	assert.Len(t, args, 20)
	assert.Equal(t, "uptime", args[0])
}

func TestMemoryPressure(t *testing.T) {
	tests := []struct {
		name  string
		stats NerdStats
		want  string
	}{
		{"empty", NerdStats{}, "LOW"},
		{"idle", NerdStats{HeapInuse: 10, HeapSys: 100, Mallocs: 100, Frees: 100}, "LOW"},
		{"busy heap", NerdStats{HeapInuse: 80, HeapSys: 100, Mallocs: 100, Frees: 100}, "MEDIUM"},
		{"high", NerdStats{HeapInuse: 95, HeapSys: 100, Mallocs: 300, Frees: 100}, "HIGH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stats.GetMemoryPressure())
		})
	}
}

func TestAverageGCPause(t *testing.T) {
	assert.Equal(t, "N/A", (&NerdStats{}).AverageGCPause())

	s := &NerdStats{NumGC: 4, TotalGCTime: 4 * time.Millisecond}
	assert.NotEqual(t, "N/A", s.AverageGCPause())
}
