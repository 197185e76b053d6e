package source

import (
	"time"

	"github.com/thushan/holocron/internal/adapter/stats"
	"github.com/thushan/holocron/internal/core/constants"
)

const (
	DefaultTimeout           = 10 * time.Second
	DefaultConcurrentFetches = 4
	DefaultRequestsPerSecond = 10.0
	MaxResponseSize          = 10 * 1024 * 1024 // 10MB limit per response

	DefaultMaxIdleConnections        = 10
	DefaultIdleConnTimeout           = 60 * time.Second
	DefaultMaxIdleConnectionsPerHost = 5
)

// Config configures a record source
type Config struct {
	Type              string
	BaseURL           string
	File              string
	RecordsPath       string
	Timeout           time.Duration
	MaxRetries        int
	RetryBackoff      time.Duration
	ConcurrentFetches int
	RequestsPerSecond float64

	// Stats receives every HTTP attempt, nil disables collection
	Stats *stats.Collector
}

// DefaultConfig returns a SWAPI source with the standard retry policy
func DefaultConfig() Config {
	return Config{
		Type:              constants.SourceTypeSWAPI,
		BaseURL:           constants.DefaultSWAPIBaseURL,
		Timeout:           DefaultTimeout,
		MaxRetries:        constants.DefaultMaxRetries,
		RetryBackoff:      constants.DefaultRetryBackoff,
		ConcurrentFetches: DefaultConcurrentFetches,
		RequestsPerSecond: DefaultRequestsPerSecond,
	}
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RetryBackoff < 0 {
		c.RetryBackoff = 0
	}
	if c.ConcurrentFetches < 1 {
		c.ConcurrentFetches = 1
	}
	if c.BaseURL == "" {
		c.BaseURL = constants.DefaultSWAPIBaseURL
	}
	return c
}
