package engine

import (
	"context"
	"time"
)

// =============================================================================
// DAILY CAPACITY GUARD - Configurable cap on events per calendar day
// =============================================================================

// DailyCapacityGuard counts same-day non-archived events against the
// configured limit. The check is advisory at the request boundary and is
// re-evaluated under the engine mutex at the moment of creation, never
// cached, so concurrent creations cannot both slip under the cap.
type DailyCapacityGuard struct {
	Events   EventStore
	Settings SettingsStore
}

// CanCreateEvent returns a LimitReachedError if the day is full.
func (g *DailyCapacityGuard) CanCreateEvent(ctx context.Context, date time.Time) error {
	current, limit, err := g.DailyCount(ctx, date)
	if err != nil {
		return err
	}
	if current >= limit {
		return &LimitReachedError{Day: DayOf(date), Current: current, Limit: limit}
	}
	return nil
}

// DailyCount returns the current non-archived event count for the day and
// the configured limit.
func (g *DailyCapacityGuard) DailyCount(ctx context.Context, date time.Time) (current, limit int, err error) {
	limit, err = g.Settings.DailyEventLimit(ctx)
	if err != nil {
		return 0, 0, err
	}
	events, err := g.Events.ListEventsOnDay(ctx, DayOf(date))
	if err != nil {
		return 0, 0, err
	}
	return len(events), limit, nil
}
