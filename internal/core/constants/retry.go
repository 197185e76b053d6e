package constants

import "time"

// Retry and backoff constants for record fetches
const (
	// Retries after the first attempt, only for network and 5xx failures
	DefaultMaxRetries = 3

	// Linear backoff unit: 1s, 2s, 3s...
	DefaultRetryBackoff = 1 * time.Second

	// Upper bound for any single backoff wait
	DefaultMaxBackoff = 30 * time.Second
)
