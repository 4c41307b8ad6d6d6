// Package lifecycle holds shared shutdown policy.
package lifecycle

import "time"

// DefaultTimeout bounds graceful-shutdown work during application stop.
const DefaultTimeout = 10 * time.Second
