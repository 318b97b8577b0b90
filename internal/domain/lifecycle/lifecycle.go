// Package lifecycle holds shared start/stop limits for long-running components.
package lifecycle

import "time"

// DefaultTimeout bounds start-up probes and graceful shutdown of a single component.
const DefaultTimeout = 10 * time.Second
