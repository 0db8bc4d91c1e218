package usecase

import "time"

const (
	// DefaultListLimit and MaxListLimit bound pagination on listing queries.
	DefaultListLimit = 20
	MaxListLimit     = 100

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// TimelineCacheTTL bounds staleness of the cached due-date timeline.
	TimelineCacheTTL = 30 * time.Second
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
