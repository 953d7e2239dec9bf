package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mise/staffing-engine/engine"
)

// =============================================================================
// FIXTURES
// =============================================================================

func banquetRules() []engine.StaffingRule {
	return []engine.StaffingRule{
		{
			ID:        "small",
			MinGuests: 1, MaxGuests: 49,
			RequiredPositions: []engine.PositionCount{{Position: "Server", Count: 2}},
		},
		{
			ID:        "medium",
			MinGuests: 50, MaxGuests: 150,
			RequiredPositions: []engine.PositionCount{{Position: "Server", Count: 4}},
			ExtraConditions: []engine.ExtraCondition{
				{AddOnID: "bar", Position: "Server", Count: 1},
			},
		},
	}
}

func banquetAddOns() []engine.AddOn {
	return []engine.AddOn{
		{ID: "bar", Name: "Bar Service", AssociatedPositions: []engine.Position{"Bartender"}},
		{ID: "carving", Name: "Carving Station", AssociatedPositions: []engine.Position{"Chef"}},
	}
}

// =============================================================================
// RESOLUTION
// =============================================================================

func TestResolve_RuleWithBarAddOn(t *testing.T) {
	// GIVEN: rule 50-150 requires 4 Servers, with +1 Server when bar selected
	//        and the bar add-on itself pulls in 1 Bartender
	// WHEN:  resolving 80 guests with bar selected
	// THEN:  Server:5, Bartender:1 in that order

	positions := engine.Resolve(80, []engine.AddOnID{"bar"}, banquetRules(), banquetAddOns())

	require.Len(t, positions, 2)
	assert.Equal(t, engine.Position("Server"), positions[0].Position)
	assert.Equal(t, 5, positions[0].RequiredCount)
	assert.Equal(t, engine.Position("Bartender"), positions[1].Position)
	assert.Equal(t, 1, positions[1].RequiredCount)
}

func TestResolve_NoMatchingRule_EmptyList(t *testing.T) {
	// GIVEN: no rule covers 500 guests
	// WHEN:  resolving without add-ons
	// THEN:  empty list, not an error

	positions := engine.Resolve(500, nil, banquetRules(), banquetAddOns())
	assert.Empty(t, positions)
}

func TestResolve_NoMatchingRule_AddOnsStillApply(t *testing.T) {
	// Add-on associated positions apply independently of the matched rule.
	positions := engine.Resolve(500, []engine.AddOnID{"carving"}, banquetRules(), banquetAddOns())

	require.Len(t, positions, 1)
	assert.Equal(t, engine.Position("Chef"), positions[0].Position)
	assert.Equal(t, 1, positions[0].RequiredCount)
}

func TestResolve_UnknownAddOnIgnored(t *testing.T) {
	positions := engine.Resolve(30, []engine.AddOnID{"nope"}, banquetRules(), banquetAddOns())

	require.Len(t, positions, 1)
	assert.Equal(t, engine.Position("Server"), positions[0].Position)
	assert.Equal(t, 2, positions[0].RequiredCount)
}

func TestResolve_Deterministic(t *testing.T) {
	// Identical input must yield identical labels, counts, and order.
	selected := []engine.AddOnID{"bar", "carving"}

	first := engine.Resolve(80, selected, banquetRules(), banquetAddOns())
	for i := 0; i < 50; i++ {
		again := engine.Resolve(80, selected, banquetRules(), banquetAddOns())
		require.Equal(t, first, again)
	}
}

func TestResolve_AllSlotsOpen(t *testing.T) {
	positions := engine.Resolve(80, []engine.AddOnID{"bar"}, banquetRules(), banquetAddOns())

	for _, p := range positions {
		assert.Len(t, p.Slots, p.RequiredCount)
		assert.Empty(t, p.Assigned())
	}
}

// =============================================================================
// RULE VALIDATION
// =============================================================================

func TestValidateRule_OverlapRejected(t *testing.T) {
	// GIVEN: an existing rule covering 50-150
	// WHEN:  adding a rule covering 100-200
	// THEN:  rejected with RangeOverlapError naming the existing rule

	candidate := engine.StaffingRule{ID: "big", MinGuests: 100, MaxGuests: 200}
	err := engine.ValidateRule(candidate, banquetRules())

	require.Error(t, err)
	var overlap *engine.RangeOverlapError
	require.ErrorAs(t, err, &overlap)
	assert.Equal(t, engine.RuleID("medium"), overlap.ExistingRuleID)
	assert.True(t, engine.IsConflict(err))
}

func TestValidateRule_AdjacentRangesAccepted(t *testing.T) {
	// 1-49 and 50-150 exist; 151-300 touches neither.
	candidate := engine.StaffingRule{
		ID: "large", MinGuests: 151, MaxGuests: 300,
		RequiredPositions: []engine.PositionCount{{Position: "Server", Count: 8}},
	}
	assert.NoError(t, engine.ValidateRule(candidate, banquetRules()))
}

func TestValidateRule_InvertedRangeRejected(t *testing.T) {
	candidate := engine.StaffingRule{ID: "bad", MinGuests: 100, MaxGuests: 50}
	err := engine.ValidateRule(candidate, nil)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestValidateRule_ReplacingSelfSkipsOwnRange(t *testing.T) {
	// Re-saving a rule with its own id must not collide with itself.
	candidate := engine.StaffingRule{
		ID: "medium", MinGuests: 50, MaxGuests: 150,
		RequiredPositions: []engine.PositionCount{{Position: "Server", Count: 5}},
	}
	assert.NoError(t, engine.ValidateRule(candidate, banquetRules()))
}
