// Package lifecycle holds shared bounds for application start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single lifecycle hook such as a DB ping or HTTP shutdown.
const DefaultTimeout = 10 * time.Second
