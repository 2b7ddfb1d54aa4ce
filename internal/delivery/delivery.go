// Package delivery defines the contract shared by all transport frontends.
package delivery

import "context"

// Delivery is a transport that can serve requests until its context is done
// or the process is shut down through the lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
