package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mise/staffing-engine/engine"
	"github.com/mise/staffing-engine/engine/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestEngine(t *testing.T) (*engine.Engine, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	ctx := context.Background()

	for _, r := range banquetRules() {
		require.NoError(t, mem.SaveRule(ctx, r))
	}
	for _, a := range banquetAddOns() {
		require.NoError(t, mem.SaveAddOn(ctx, a))
	}
	for _, s := range []engine.Staff{
		{ID: "alice", Name: "Alice", Positions: []engine.Position{"Server", "Bartender"}},
		{ID: "bob", Name: "Bob", Positions: []engine.Position{"Server"}},
		{ID: "carol", Name: "Carol", Positions: []engine.Position{"Bartender"}},
	} {
		require.NoError(t, mem.SaveStaff(ctx, s))
	}

	return engine.New(mem), mem
}

func june(day, hour int) time.Time {
	return time.Date(2026, time.June, day, hour, 0, 0, 0, time.UTC)
}

func createEvent(t *testing.T, eng *engine.Engine, id string, date time.Time, guests int, addOns ...engine.AddOnID) *engine.Event {
	t.Helper()
	ev, err := eng.CreateEvent(context.Background(), engine.CreateEventRequest{
		ID:         engine.EventID(id),
		Date:       date,
		VenueID:    "venue-1",
		ClientID:   "client-1",
		GuestCount: guests,
		AddOnIDs:   addOns,
	})
	require.NoError(t, err)
	return ev
}

// =============================================================================
// EVENT CREATION & CAPACITY GUARD
// =============================================================================

func TestCreateEvent_ResolvesPositions(t *testing.T) {
	eng, _ := newTestEngine(t)

	ev := createEvent(t, eng, "ev-1", june(10, 18), 80, "bar")

	require.Len(t, ev.Positions, 2)
	assert.Equal(t, engine.Position("Server"), ev.Positions[0].Position)
	assert.Equal(t, 5, ev.Positions[0].RequiredCount)
	assert.Equal(t, engine.Position("Bartender"), ev.Positions[1].Position)
}

func TestCreateEvent_DailyLimitEnforced(t *testing.T) {
	// GIVEN: the default limit of 3 and three events on June 10
	// WHEN:  creating a fourth on the same day (different hour)
	// THEN:  LimitReached(3, 3); the next day is unaffected

	eng, _ := newTestEngine(t)
	ctx := context.Background()

	createEvent(t, eng, "ev-1", june(10, 10), 30)
	createEvent(t, eng, "ev-2", june(10, 14), 30)
	createEvent(t, eng, "ev-3", june(10, 18), 30)

	_, err := eng.CreateEvent(ctx, engine.CreateEventRequest{
		ID: "ev-4", Date: june(10, 20), GuestCount: 30,
	})
	require.Error(t, err)
	var limit *engine.LimitReachedError
	require.ErrorAs(t, err, &limit)
	assert.Equal(t, 3, limit.Current)
	assert.Equal(t, 3, limit.Limit)
	assert.True(t, engine.IsConflict(err))

	createEvent(t, eng, "ev-5", june(11, 10), 30)
}

func TestCreateEvent_RaisedLimitAllowsMore(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.SetDailyLimit(ctx, 4))
	for i, h := range []int{9, 12, 15, 18} {
		createEvent(t, eng, string(rune('a'+i)), june(10, h), 30)
	}

	_, err := eng.CreateEvent(ctx, engine.CreateEventRequest{ID: "ev-x", Date: june(10, 20), GuestCount: 30})
	assert.ErrorIs(t, err, engine.ErrLimitReached)
}

func TestSetDailyLimit_RejectsNonPositive(t *testing.T) {
	eng, _ := newTestEngine(t)
	assert.ErrorIs(t, eng.SetDailyLimit(context.Background(), 0), engine.ErrInvalidInput)
}

func TestDailyCount(t *testing.T) {
	eng, _ := newTestEngine(t)

	createEvent(t, eng, "ev-1", june(10, 10), 30)
	createEvent(t, eng, "ev-2", june(10, 14), 30)

	current, limit, err := eng.DailyCount(context.Background(), june(10, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, current)
	assert.Equal(t, 3, limit)
}

// =============================================================================
// STAFF ASSIGNMENT CONFLICTS
// =============================================================================

func TestAssignStaff_Success(t *testing.T) {
	eng, mem := newTestEngine(t)
	ctx := context.Background()

	createEvent(t, eng, "ev-1", june(10, 18), 80, "bar")
	require.NoError(t, eng.AssignStaff(ctx, "ev-1", "Server", "bob"))

	ev, err := mem.GetEvent(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, []engine.StaffID{"bob"}, ev.PositionByLabel("Server").Assigned())
}

func TestAssignStaff_NotQualified(t *testing.T) {
	// GIVEN: Bob's capabilities are {Server}
	// WHEN:  assigning Bob to a Bartender slot
	// THEN:  NotQualified

	eng, _ := newTestEngine(t)
	createEvent(t, eng, "ev-1", june(10, 18), 80, "bar")

	err := eng.AssignStaff(context.Background(), "ev-1", "Bartender", "bob")
	require.Error(t, err)
	var nq *engine.NotQualifiedError
	require.ErrorAs(t, err, &nq)
	assert.Equal(t, engine.Position("Bartender"), nq.Position)
}

func TestAssignStaff_AlreadyAssignedOtherPosition(t *testing.T) {
	// GIVEN: Alice holds a Server slot on the event
	// WHEN:  assigning Alice to Bartender on the same event
	// THEN:  AlreadyAssignedOtherPosition naming Server

	eng, _ := newTestEngine(t)
	ctx := context.Background()
	createEvent(t, eng, "ev-1", june(10, 18), 80, "bar")

	require.NoError(t, eng.AssignStaff(ctx, "ev-1", "Server", "alice"))
	err := eng.AssignStaff(ctx, "ev-1", "Bartender", "alice")

	require.Error(t, err)
	var aa *engine.AlreadyAssignedError
	require.ErrorAs(t, err, &aa)
	assert.Equal(t, engine.Position("Server"), aa.Existing)
}

func TestAssignStaff_DoubleBookedAcrossEvents(t *testing.T) {
	// GIVEN: Bob serves ev-1 on June 10
	// WHEN:  assigning Bob to ev-2, also June 10 (different hour)
	// THEN:  DoubleBooked naming ev-1; June 11 succeeds

	eng, _ := newTestEngine(t)
	ctx := context.Background()
	createEvent(t, eng, "ev-1", june(10, 12), 80, "bar")
	createEvent(t, eng, "ev-2", june(10, 19), 30)
	createEvent(t, eng, "ev-3", june(11, 12), 30)

	require.NoError(t, eng.AssignStaff(ctx, "ev-1", "Server", "bob"))

	err := eng.AssignStaff(ctx, "ev-2", "Server", "bob")
	require.Error(t, err)
	var db *engine.DoubleBookedError
	require.ErrorAs(t, err, &db)
	assert.Equal(t, engine.EventID("ev-1"), db.ConflictingEventID)

	assert.NoError(t, eng.AssignStaff(ctx, "ev-3", "Server", "bob"))
}

func TestAssignStaff_IdempotentReassign(t *testing.T) {
	// Assigning the same person to the same position twice is a no-op
	// success, not a conflict.
	eng, mem := newTestEngine(t)
	ctx := context.Background()
	createEvent(t, eng, "ev-1", june(10, 18), 80)

	require.NoError(t, eng.AssignStaff(ctx, "ev-1", "Server", "bob"))
	require.NoError(t, eng.AssignStaff(ctx, "ev-1", "Server", "bob"))

	ev, _ := mem.GetEvent(ctx, "ev-1")
	assert.Equal(t, []engine.StaffID{"bob"}, ev.PositionByLabel("Server").Assigned())
}

func TestAssignStaffSlot_SamePersonResolvesToHeldSlot(t *testing.T) {
	// A person holds at most one slot of a position. Re-assigning them to a
	// different empty slot of the same position resolves to the slot they
	// already hold instead of duplicating them.
	eng, mem := newTestEngine(t)
	ctx := context.Background()
	createEvent(t, eng, "ev-1", june(10, 18), 80)

	require.NoError(t, eng.AssignStaffSlot(ctx, "ev-1", "Server", 0, "bob"))
	require.NoError(t, eng.AssignStaffSlot(ctx, "ev-1", "Server", 2, "bob"))

	ev, _ := mem.GetEvent(ctx, "ev-1")
	pos := ev.PositionByLabel("Server")
	assert.Equal(t, []engine.StaffID{"bob"}, pos.Assigned())
	assert.Equal(t, 0, pos.SlotOf("bob"))
}

func TestAssignStaffSlot_OccupiedSlotRejected(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()
	createEvent(t, eng, "ev-1", june(10, 18), 80)

	require.NoError(t, eng.AssignStaffSlot(ctx, "ev-1", "Server", 0, "bob"))
	err := eng.AssignStaffSlot(ctx, "ev-1", "Server", 0, "alice")
	assert.ErrorIs(t, err, engine.ErrSlotOccupied)
}

func TestAssignStaff_UnknownEntities(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()
	createEvent(t, eng, "ev-1", june(10, 18), 80)

	assert.ErrorIs(t, eng.AssignStaff(ctx, "nope", "Server", "bob"), engine.ErrUnknownEntity)
	assert.ErrorIs(t, eng.AssignStaff(ctx, "ev-1", "Server", "nobody"), engine.ErrUnknownEntity)
	assert.ErrorIs(t, eng.AssignStaff(ctx, "ev-1", "Sommelier", "bob"), engine.ErrUnknownEntity)
}

// =============================================================================
// STAFF REMOVAL
// =============================================================================

func TestRemoveStaff_Roundtrip(t *testing.T) {
	eng, mem := newTestEngine(t)
	ctx := context.Background()
	createEvent(t, eng, "ev-1", june(10, 18), 80)

	require.NoError(t, eng.AssignStaff(ctx, "ev-1", "Server", "bob"))
	require.NoError(t, eng.RemoveStaff(ctx, "ev-1", "Server", "bob"))

	ev, _ := mem.GetEvent(ctx, "ev-1")
	assert.Empty(t, ev.PositionByLabel("Server").Assigned())

	// Removal frees the day: Bob can now take another June 10 event.
	createEvent(t, eng, "ev-2", june(10, 20), 30)
	assert.NoError(t, eng.AssignStaff(ctx, "ev-2", "Server", "bob"))
}

func TestRemoveStaff_UnassignedIsNoOp(t *testing.T) {
	// Removing someone who is not assigned is a no-op success.
	eng, _ := newTestEngine(t)
	createEvent(t, eng, "ev-1", june(10, 18), 80)

	assert.NoError(t, eng.RemoveStaff(context.Background(), "ev-1", "Server", "bob"))
}

// =============================================================================
// POSITION REGENERATION ON EDIT
// =============================================================================

func TestUpdateEvent_PreservesAssignmentsByLabel(t *testing.T) {
	// GIVEN: Bob holds a Server slot on an 80-guest event
	// WHEN:  guest count drops to 30 (Server count 5 -> 2)
	// THEN:  Bob's Server assignment survives, nothing is dropped

	eng, _ := newTestEngine(t)
	ctx := context.Background()
	createEvent(t, eng, "ev-1", june(10, 18), 80, "bar")
	require.NoError(t, eng.AssignStaff(ctx, "ev-1", "Server", "bob"))

	ev, dropped, err := eng.UpdateEvent(ctx, "ev-1", 30, nil)
	require.NoError(t, err)
	assert.Empty(t, dropped)
	assert.Equal(t, 2, ev.PositionByLabel("Server").RequiredCount)
	assert.Equal(t, []engine.StaffID{"bob"}, ev.PositionByLabel("Server").Assigned())
}

func TestUpdateEvent_DropsVanishedPosition(t *testing.T) {
	// GIVEN: Carol tends bar on an event with the bar add-on
	// WHEN:  the bar add-on is deselected
	// THEN:  the Bartender position disappears and the drop is reported

	eng, _ := newTestEngine(t)
	ctx := context.Background()
	createEvent(t, eng, "ev-1", june(10, 18), 80, "bar")
	require.NoError(t, eng.AssignStaff(ctx, "ev-1", "Bartender", "carol"))

	ev, dropped, err := eng.UpdateEvent(ctx, "ev-1", 80, nil)
	require.NoError(t, err)
	assert.Nil(t, ev.PositionByLabel("Bartender"))
	require.Len(t, dropped, 1)
	assert.Equal(t, engine.DroppedAssignment{Position: "Bartender", StaffID: "carol"}, dropped[0])
}

func TestUpdateEvent_TruncationDropsOverflowSlots(t *testing.T) {
	// Slots beyond the shrunken RequiredCount are dropped and reported;
	// earlier slots carry forward untouched.
	eng, _ := newTestEngine(t)
	ctx := context.Background()
	createEvent(t, eng, "ev-1", june(10, 18), 80) // Server x4

	require.NoError(t, eng.AssignStaffSlot(ctx, "ev-1", "Server", 0, "bob"))
	require.NoError(t, eng.AssignStaffSlot(ctx, "ev-1", "Server", 3, "alice"))

	ev, dropped, err := eng.UpdateEvent(ctx, "ev-1", 30, nil) // Server x2
	require.NoError(t, err)
	assert.Equal(t, []engine.StaffID{"bob"}, ev.PositionByLabel("Server").Assigned())
	require.Len(t, dropped, 1)
	assert.Equal(t, engine.StaffID("alice"), dropped[0].StaffID)
}

func TestUpdateEvent_UnknownEvent(t *testing.T) {
	eng, _ := newTestEngine(t)
	_, _, err := eng.UpdateEvent(context.Background(), "nope", 50, nil)
	assert.ErrorIs(t, err, engine.ErrUnknownEntity)
}

// =============================================================================
// ARCHIVAL
// =============================================================================

func TestSweepArchived_PastEventsTransition(t *testing.T) {
	// GIVEN: one event yesterday, one tomorrow
	// WHEN:  sweeping at "now"
	// THEN:  yesterday is archived, tomorrow stays active; re-running the
	//        sweep changes nothing

	eng, mem := newTestEngine(t)
	ctx := context.Background()
	now := june(15, 12)

	createEvent(t, eng, "past", june(14, 18), 30)
	createEvent(t, eng, "future", june(16, 18), 30)

	n, err := eng.SweepArchived(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	past, _ := mem.GetEvent(ctx, "past")
	future, _ := mem.GetEvent(ctx, "future")
	assert.True(t, past.IsArchived)
	assert.False(t, future.IsArchived)

	n, err = eng.SweepArchived(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "sweep is idempotent")
}

func TestArchivedEventsFreeTheDay(t *testing.T) {
	// Archived events no longer count toward capacity or day exclusivity.
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	createEvent(t, eng, "ev-1", june(10, 10), 30)
	createEvent(t, eng, "ev-2", june(10, 14), 30)
	createEvent(t, eng, "ev-3", june(10, 18), 30)
	require.NoError(t, eng.AssignStaff(ctx, "ev-1", "Server", "bob"))

	_, err := eng.SweepArchived(ctx, june(11, 0))
	require.NoError(t, err)

	current, _, err := eng.DailyCount(ctx, june(10, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, current)
}

func TestDashboard_SweepsBeforeListing(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	createEvent(t, eng, "past", june(14, 18), 30)
	createEvent(t, eng, "future", june(16, 18), 30)

	active, err := eng.Dashboard(ctx, june(15, 12))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, engine.EventID("future"), active[0].ID)
}

// =============================================================================
// ARCHIVED EVENTS ARE FROZEN
// =============================================================================

func TestArchivedEvent_RejectsEditAndAssignment(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	createEvent(t, eng, "past", june(14, 18), 80)
	_, err := eng.SweepArchived(ctx, june(15, 0))
	require.NoError(t, err)

	_, _, err = eng.UpdateEvent(ctx, "past", 50, nil)
	assert.True(t, errors.Is(err, engine.ErrInvalidInput))

	err = eng.AssignStaff(ctx, "past", "Server", "bob")
	assert.True(t, errors.Is(err, engine.ErrInvalidInput))
}
