package ports

import "context"

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
