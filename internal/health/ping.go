package health

import "context"

// HealthPinger can be implemented by components that expose a dedicated
// connectivity probe. HealthPing must return nil when the component is healthy.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
