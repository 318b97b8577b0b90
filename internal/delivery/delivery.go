// Package delivery defines the long-running entry points started by the application.
package delivery

import "context"

// Delivery is a server or background loop that runs until the application stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
