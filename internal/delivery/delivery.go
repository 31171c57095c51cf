// Package delivery defines the contract shared by everything that
// serves traffic or runs in the background for the process lifetime.
package delivery

import "context"

// Delivery is a long-running component (HTTP server, background
// sweeper) started at boot and stopped through its fx lifecycle hook.
type Delivery interface {
	// Serve blocks until the delivery stops or fails.
	Serve(ctx context.Context) error
}
