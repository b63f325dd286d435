package db

import (
	"time"

	"github.com/careeridream/backend/internal/profile"
)

// dateArg converts an optional API date into a DATE column argument.
// Zero-valued dates store as NULL.
func dateArg(d *profile.Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.Time
}

// dateVal converts a nullable DATE column back into an API date.
func dateVal(t *time.Time) *profile.Date {
	if t == nil {
		return nil
	}
	return &profile.Date{Time: *t}
}
