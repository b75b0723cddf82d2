package client

import "context"

// Client defines the minimal lifecycle contract for runnable register
// applications.
type Client interface {
	// Run executes one register action and returns its outcome. The first
	// positional argument picks the action.
	Run(ctx context.Context, args []string) error

	// Stop winds the engine down and releases durable storage.
	Stop()
}
