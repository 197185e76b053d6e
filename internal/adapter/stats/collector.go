package stats

import (
	"net/url"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thushan/holocron/internal/logger"
	"github.com/thushan/holocron/pkg/format"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"

	// a session only ever talks to one or two hosts, anything past this is
	// folded into the totals only
	MaxTrackedHosts = 16
)

// Collector tallies every HTTP attempt a record source makes. Safe for use
// from the concurrent page fetchers.
type Collector struct {
	latencies *ReservoirSampler
	hosts     sync.Map // map[string]*hostData

	totalRequests      int64
	successfulRequests int64
	failedRequests     int64
	retries            int64
	totalBytes         int64
	totalLatency       int64
	trackedHosts       int64
}

type hostData struct {
	host               string
	totalRequests      int64
	successfulRequests int64
	failedRequests     int64
	totalBytes         int64
	totalLatency       int64
	minLatency         int64
	maxLatency         int64
	lastUsed           int64
}

// FetchStats is a point in time copy of the collector totals
type FetchStats struct {
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64
	Retries            int64
	TotalBytes         int64
	AverageLatency     int64
	P50Latency         int64
	P95Latency         int64
	P99Latency         int64
}

// HostStats is the per host breakdown, latencies in milliseconds
type HostStats struct {
	Host               string
	LastUsed           time.Time
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64
	TotalBytes         int64
	AverageLatency     int64
	MinLatency         int64
	MaxLatency         int64
}

func NewCollector() *Collector {
	return &Collector{
		latencies: NewReservoirSampler(DefaultSampleSize),
	}
}

// RecordRequest records one HTTP attempt against target
func (c *Collector) RecordRequest(target, status string, latency time.Duration, bytes int64) {
	latencyMs := latency.Milliseconds()

	atomic.AddInt64(&c.totalRequests, 1)
	if status == StatusSuccess {
		atomic.AddInt64(&c.successfulRequests, 1)
		atomic.AddInt64(&c.totalBytes, bytes)
		atomic.AddInt64(&c.totalLatency, latencyMs)
		c.latencies.Add(latencyMs)
	} else {
		atomic.AddInt64(&c.failedRequests, 1)
	}

	if data := c.host(hostOf(target)); data != nil {
		data.record(status, latencyMs, bytes)
	}
}

// RecordRetry counts an attempt that was made because an earlier one failed
func (c *Collector) RecordRetry() {
	atomic.AddInt64(&c.retries, 1)
}

func (c *Collector) Stats() FetchStats {
	successful := atomic.LoadInt64(&c.successfulRequests)

	var avg int64
	if successful > 0 {
		avg = atomic.LoadInt64(&c.totalLatency) / successful
	}
	p50, p95, p99 := c.latencies.Percentiles()

	return FetchStats{
		TotalRequests:      atomic.LoadInt64(&c.totalRequests),
		SuccessfulRequests: successful,
		FailedRequests:     atomic.LoadInt64(&c.failedRequests),
		Retries:            atomic.LoadInt64(&c.retries),
		TotalBytes:         atomic.LoadInt64(&c.totalBytes),
		AverageLatency:     avg,
		P50Latency:         p50,
		P95Latency:         p95,
		P99Latency:         p99,
	}
}

// HostStats returns the per host breakdown ordered by host
func (c *Collector) HostStats() []HostStats {
	var result []HostStats
	c.hosts.Range(func(_, value any) bool {
		result = append(result, value.(*hostData).snapshot())
		return true
	})
	slices.SortFunc(result, func(a, b HostStats) int {
		return strings.Compare(a.Host, b.Host)
	})
	return result
}

// Log writes a one line summary, nothing is logged when no requests were made
func (c *Collector) Log(log *logger.StyledLogger) {
	s := c.Stats()
	if s.TotalRequests == 0 {
		return
	}
	log.Info("Fetch stats",
		"requests", s.TotalRequests,
		"failed", s.FailedRequests,
		"retries", s.Retries,
		"received", format.Bytes(s.TotalBytes),
		"avg_ms", s.AverageLatency,
		"p95_ms", s.P95Latency,
		"p99_ms", s.P99Latency)
	for _, h := range c.HostStats() {
		log.Debug("Fetch stats for host", "host", h.Host,
			"requests", h.TotalRequests,
			"failed", h.FailedRequests,
			"min_ms", h.MinLatency,
			"max_ms", h.MaxLatency)
	}
}

func (c *Collector) host(name string) *hostData {
	if v, ok := c.hosts.Load(name); ok {
		return v.(*hostData)
	}
	if atomic.LoadInt64(&c.trackedHosts) >= MaxTrackedHosts {
		return nil
	}
	v, loaded := c.hosts.LoadOrStore(name, &hostData{host: name, minLatency: -1})
	if !loaded {
		atomic.AddInt64(&c.trackedHosts, 1)
	}
	return v.(*hostData)
}

func (d *hostData) record(status string, latencyMs, bytes int64) {
	atomic.AddInt64(&d.totalRequests, 1)
	atomic.StoreInt64(&d.lastUsed, time.Now().UnixNano())

	if status != StatusSuccess {
		atomic.AddInt64(&d.failedRequests, 1)
		return
	}
	atomic.AddInt64(&d.successfulRequests, 1)
	atomic.AddInt64(&d.totalBytes, bytes)
	atomic.AddInt64(&d.totalLatency, latencyMs)

	for {
		cur := atomic.LoadInt64(&d.minLatency)
		if (cur != -1 && latencyMs >= cur) || atomic.CompareAndSwapInt64(&d.minLatency, cur, latencyMs) {
			break
		}
	}
	for {
		cur := atomic.LoadInt64(&d.maxLatency)
		if latencyMs <= cur || atomic.CompareAndSwapInt64(&d.maxLatency, cur, latencyMs) {
			break
		}
	}
}

func (d *hostData) snapshot() HostStats {
	successful := atomic.LoadInt64(&d.successfulRequests)
	minLatency := atomic.LoadInt64(&d.minLatency)
	if minLatency < 0 {
		minLatency = 0
	}

	var avg int64
	if successful > 0 {
		avg = atomic.LoadInt64(&d.totalLatency) / successful
	}

	var lastUsed time.Time
	if ns := atomic.LoadInt64(&d.lastUsed); ns > 0 {
		lastUsed = time.Unix(0, ns)
	}

	return HostStats{
		Host:               d.host,
		LastUsed:           lastUsed,
		TotalRequests:      atomic.LoadInt64(&d.totalRequests),
		SuccessfulRequests: successful,
		FailedRequests:     atomic.LoadInt64(&d.failedRequests),
		TotalBytes:         atomic.LoadInt64(&d.totalBytes),
		AverageLatency:     avg,
		MinLatency:         minLatency,
		MaxLatency:         atomic.LoadInt64(&d.maxLatency),
	}
}

func hostOf(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
