package ports

import "context"

// HealthChecker reports whether an external dependency is reachable.
type HealthChecker interface {
	// Ping verifies connectivity. Returns nil when the dependency is healthy.
	Ping(ctx context.Context) error
	// Name identifies the dependency ("postgresql", "redis").
	Name() string
}
