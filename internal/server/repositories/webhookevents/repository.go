package webhookevents

import "context"

type Repository interface {
	// Record remembers a webhook event id. It reports false when the id was
	// already recorded, which is how replays are detected.
	Record(ctx context.Context, id, eventType string) (bool, error)
}
