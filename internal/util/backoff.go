package util

import (
	"time"

	"github.com/thushan/holocron/internal/core/constants"
)

// CalculateLinearBackoff computes the wait before a retry.
// Formula: baseDelay * retry, capped at DefaultMaxBackoff
func CalculateLinearBackoff(retry int, baseDelay time.Duration) time.Duration {
	if retry <= 0 || baseDelay <= 0 {
		return 0
	}

	backoff := baseDelay * time.Duration(retry)
	if backoff > constants.DefaultMaxBackoff {
		backoff = constants.DefaultMaxBackoff
	}
	return backoff
}
