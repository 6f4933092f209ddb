package rate

import "errors"

var (
	// ErrRateLimited is returned when a client exhausts its generation budget.
	ErrRateLimited = errors.New("rate limited")
	// ErrRedisUnavailable wraps every Redis failure.
	ErrRedisUnavailable = errors.New("redis unavailable")
)
