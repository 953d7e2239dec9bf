package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mise/staffing-engine/engine"
	"github.com/mise/staffing-engine/engine/store"
)

func TestMemory_CatalogCopiesDoNotAliasStore(t *testing.T) {
	// Mutating a value returned by the store, or the value that was saved,
	// must not change what a later read sees.
	mem := store.NewMemory()
	ctx := context.Background()

	rule := engine.StaffingRule{
		ID:        "banquet",
		MinGuests: 50,
		MaxGuests: 150,
		RequiredPositions: []engine.PositionCount{
			{Position: "Server", Count: 4},
		},
		ExtraConditions: []engine.ExtraCondition{
			{AddOnID: "bar", Position: "Server", Count: 1},
		},
	}
	require.NoError(t, mem.SaveRule(ctx, rule))
	rule.RequiredPositions[0].Count = 99

	addOn := engine.AddOn{
		ID:                  "bar",
		Name:                "Full bar",
		AssociatedPositions: []engine.Position{"Bartender"},
	}
	require.NoError(t, mem.SaveAddOn(ctx, addOn))
	addOn.AssociatedPositions[0] = "Chef"

	staff := engine.Staff{ID: "alice", Name: "Alice", Positions: []engine.Position{"Server"}}
	require.NoError(t, mem.SaveStaff(ctx, staff))
	staff.Positions[0] = "Chef"

	got, err := mem.GetRule(ctx, "banquet")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.RequiredPositions[0].Count)

	got.RequiredPositions[0].Count = 7
	got.ExtraConditions[0].Count = 7
	rules, err := mem.ListRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, 4, rules[0].RequiredPositions[0].Count)
	assert.Equal(t, 1, rules[0].ExtraConditions[0].Count)

	rules[0].ExtraConditions[0].Position = "Chef"
	again, err := mem.GetRule(ctx, "banquet")
	require.NoError(t, err)
	assert.Equal(t, engine.Position("Server"), again.ExtraConditions[0].Position)

	gotAddOn, err := mem.GetAddOn(ctx, "bar")
	require.NoError(t, err)
	require.NotNil(t, gotAddOn)
	assert.Equal(t, []engine.Position{"Bartender"}, gotAddOn.AssociatedPositions)
	gotAddOn.AssociatedPositions[0] = "Attendant"
	addOns, err := mem.ListAddOns(ctx)
	require.NoError(t, err)
	require.Len(t, addOns, 1)
	assert.Equal(t, []engine.Position{"Bartender"}, addOns[0].AssociatedPositions)

	gotStaff, err := mem.GetStaff(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, gotStaff)
	assert.Equal(t, []engine.Position{"Server"}, gotStaff.Positions)
	gotStaff.Positions[0] = "Attendant"
	all, err := mem.ListStaff(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []engine.Position{"Server"}, all[0].Positions)
}
