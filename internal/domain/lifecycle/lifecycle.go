// Package lifecycle holds process-wide start-up and shutdown settings.
package lifecycle

import "time"

// DefaultTimeout bounds graceful start and stop hooks.
const DefaultTimeout = 15 * time.Second
