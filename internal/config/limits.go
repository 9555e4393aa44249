package config

import "time"

const (
	// MaxContentBodyBytes bounds a single markdown entry.
	MaxContentBodyBytes = 1 << 20

	// MaxUploadBytes bounds one uploaded asset.
	MaxUploadBytes = 25 << 20

	// DefaultVersionListLimit is used when the caller passes no limit.
	DefaultVersionListLimit = 20

	// MaxVersionListLimit caps a single version listing.
	MaxVersionListLimit = 100

	// DefaultSessionTTL is the lifetime of an admin session token.
	DefaultSessionTTL = 7 * 24 * time.Hour
)
