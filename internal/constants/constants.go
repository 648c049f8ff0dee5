package constants

import "time"

const (
	// PlayerFreshnessWindow bounds how old a cached player record may be
	// before its match list is refreshed from the API. Identity fields
	// change rarely; the match list changes with every game played.
	PlayerFreshnessWindow = 1 * time.Hour

	// CacheExpiry is how long cached match rows are kept before the startup
	// purge removes them.
	CacheExpiry = 7 * 24 * time.Hour
)

const (
	// DefaultMaxMatchNum is the sample size GetStats aims for.
	DefaultMaxMatchNum = 40

	// MinMatchNum is the smallest sample a score may be computed from.
	MinMatchNum = DefaultMaxMatchNum / 2
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second

	// RateLimitSafetyMargin is used when a 429 response carries no reset
	// header.
	RateLimitSafetyMargin = 5 * time.Second

	// RateLimitPollInterval is the step the client sleeps in while waiting
	// out an exhausted quota.
	RateLimitPollInterval = 1 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)
