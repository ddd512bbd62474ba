package domain

import (
	"time"

	"github.com/google/uuid"
)

// NewRecordID returns a fresh opaque primary key.
func NewRecordID() string {
	return uuid.NewString()
}

// Now returns the current time truncated to millisecond precision in UTC,
// matching the resolution of ISO-8601 timestamps written by the store.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
