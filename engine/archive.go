package engine

import (
	"context"
	"time"
)

// =============================================================================
// ARCHIVAL TRANSITION - Active -> Archived, one way, swept lazily
// =============================================================================

// SweepArchived marks every active event whose date is strictly before now
// as archived, and returns how many transitioned. The sweep is idempotent:
// already-archived events are untouched, and there is no reverse transition.
// There is no background timer; callers (the dashboard read path) invoke it
// on access.
func SweepArchived(ctx context.Context, store EventStore, now time.Time) (int, error) {
	events, err := store.ListEvents(ctx, false)
	if err != nil {
		return 0, err
	}

	archived := 0
	for i := range events {
		if !events[i].Date.Before(now) {
			continue
		}
		events[i].IsArchived = true
		if err := store.SaveEvent(ctx, events[i]); err != nil {
			return archived, err
		}
		archived++
	}
	return archived, nil
}
