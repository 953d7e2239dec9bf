package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mise/staffing-engine/engine"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEventRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ev := engine.Event{
		ID:         "wedding",
		Date:       time.Date(2026, time.June, 13, 0, 0, 0, 0, time.UTC),
		VenueID:    "venue-grand",
		ClientID:   "client-laurent",
		GuestCount: 120,
		AddOnIDs:   []engine.AddOnID{"bar"},
		Positions: []engine.EventPosition{
			{Position: "Server", RequiredCount: 3, Slots: []engine.StaffID{"bob", "", ""}},
			{Position: "Bartender", RequiredCount: 1, Slots: []engine.StaffID{""}},
		},
	}
	require.NoError(t, store.SaveEvent(ctx, ev))

	got, err := store.GetEvent(ctx, "wedding")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, ev.ID, got.ID)
	assert.True(t, ev.Date.Equal(got.Date))
	assert.Equal(t, ev.AddOnIDs, got.AddOnIDs)
	assert.Equal(t, ev.Positions, got.Positions)
	assert.False(t, got.IsArchived)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetEvent_AbsentReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetEvent(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListEventsOnDay_FiltersByDayAndArchival(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	day := time.Date(2026, time.June, 13, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveEvent(ctx, engine.Event{ID: "a", Date: day, GuestCount: 40}))
	require.NoError(t, store.SaveEvent(ctx, engine.Event{ID: "b", Date: day.Add(18 * time.Hour), GuestCount: 40}))
	require.NoError(t, store.SaveEvent(ctx, engine.Event{ID: "c", Date: day.AddDate(0, 0, 1), GuestCount: 40}))
	require.NoError(t, store.SaveEvent(ctx, engine.Event{ID: "d", Date: day, GuestCount: 40, IsArchived: true}))

	events, err := store.ListEventsOnDay(ctx, engine.DayOf(day))
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, engine.EventID("a"), events[0].ID)
	assert.Equal(t, engine.EventID("b"), events[1].ID)
}

func TestSaveEvent_UpsertMovesDay(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	day1 := time.Date(2026, time.June, 13, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	require.NoError(t, store.SaveEvent(ctx, engine.Event{ID: "a", Date: day1, GuestCount: 40}))
	require.NoError(t, store.SaveEvent(ctx, engine.Event{ID: "a", Date: day2, GuestCount: 60}))

	onDay1, err := store.ListEventsOnDay(ctx, engine.DayOf(day1))
	require.NoError(t, err)
	assert.Empty(t, onDay1)

	onDay2, err := store.ListEventsOnDay(ctx, engine.DayOf(day2))
	require.NoError(t, err)
	require.Len(t, onDay2, 1)
	assert.Equal(t, 60, onDay2[0].GuestCount)
}

func TestRuleRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rule := engine.StaffingRule{
		ID: "banquet", MinGuests: 50, MaxGuests: 150,
		RequiredPositions: []engine.PositionCount{{Position: "Server", Count: 4}},
		ExtraConditions:   []engine.ExtraCondition{{AddOnID: "bar", Position: "Server", Count: 1}},
	}
	require.NoError(t, store.SaveRule(ctx, rule))

	got, err := store.GetRule(ctx, "banquet")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rule, *got)

	require.NoError(t, store.DeleteRule(ctx, "banquet"))
	got, err = store.GetRule(ctx, "banquet")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStaffAndAddOnRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	st := engine.Staff{ID: "alice", Name: "Alice", Positions: []engine.Position{"Server", "Bartender"}}
	require.NoError(t, store.SaveStaff(ctx, st))

	gotStaff, err := store.GetStaff(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, gotStaff)
	assert.Equal(t, st, *gotStaff)

	a := engine.AddOn{ID: "bar", Name: "Bar Service", AssociatedPositions: []engine.Position{"Bartender"}}
	require.NoError(t, store.SaveAddOn(ctx, a))

	gotAddOn, err := store.GetAddOn(ctx, "bar")
	require.NoError(t, err)
	require.NotNil(t, gotAddOn)
	assert.Equal(t, a, *gotAddOn)
}

func TestDailyEventLimit_DefaultAndOverride(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	limit, err := store.DailyEventLimit(ctx)
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultDailyEventLimit, limit)

	require.NoError(t, store.SetDailyEventLimit(ctx, 5))
	limit, err = store.DailyEventLimit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, limit)
}

func TestRateCard(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePositionRate(ctx, "Server", decimal.RequireFromString("22.50")))
	require.NoError(t, store.SavePositionRate(ctx, "Server", decimal.RequireFromString("24.00")))

	card, err := store.RateCard(ctx)
	require.NoError(t, err)
	require.Contains(t, card, engine.Position("Server"))
	assert.True(t, card["Server"].Equal(decimal.RequireFromString("24")))
}

func TestClientsAndVenues(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveClient(ctx, Client{ID: "c1", Name: "Laurent", Email: "l@example.com"}))
	require.NoError(t, store.SaveVenue(ctx, Venue{ID: "v1", Name: "Grand Ballroom", Capacity: 400}))

	c, err := store.GetClient(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Laurent", c.Name)

	v, err := store.GetVenue(ctx, "v1")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 400, v.Capacity)

	require.NoError(t, store.DeleteClient(ctx, "c1"))
	c, err = store.GetClient(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveStaff(ctx, engine.Staff{ID: "alice", Name: "Alice"}))
	require.NoError(t, store.Reset(ctx))

	staff, err := store.ListStaff(ctx)
	require.NoError(t, err)
	assert.Empty(t, staff)
}
