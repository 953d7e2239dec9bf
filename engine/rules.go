package engine

import "context"

// =============================================================================
// RULE VALIDATION - Non-overlap invariant, enforced at write time
// =============================================================================

// ValidateRule checks a candidate rule's shape and its range against the
// existing rules. Returns ErrInvalidInput for a malformed rule and a
// RangeOverlapError for a range collision. A rule replacing itself (same ID)
// is not compared against its own stored range.
func ValidateRule(candidate StaffingRule, existing []StaffingRule) error {
	if candidate.MinGuests < 0 || candidate.MaxGuests < candidate.MinGuests {
		return ErrInvalidInput
	}
	for _, pc := range candidate.RequiredPositions {
		if pc.Position == "" || pc.Count < 1 {
			return ErrInvalidInput
		}
	}
	for _, ec := range candidate.ExtraConditions {
		if ec.Position == "" || ec.AddOnID == "" || ec.Count < 1 {
			return ErrInvalidInput
		}
	}
	for _, r := range existing {
		if r.ID == candidate.ID {
			continue
		}
		if r.Overlaps(candidate) {
			return &RangeOverlapError{
				ExistingRuleID: r.ID,
				Min:            candidate.MinGuests,
				Max:            candidate.MaxGuests,
			}
		}
	}
	return nil
}

// MatchRule returns the rule whose range contains the guest count, or nil.
// Because ranges are pairwise non-overlapping, at most one rule matches.
func MatchRule(rules []StaffingRule, guests int) *StaffingRule {
	for i := range rules {
		if rules[i].Contains(guests) {
			return &rules[i]
		}
	}
	return nil
}

// =============================================================================
// RULE WRITES - Through the engine so validation sees a stable rule set
// =============================================================================

// CreateRule validates the candidate against the stored rules and persists
// it. Held under the engine mutex by the facade so two concurrent writes
// cannot both pass the overlap check.
func createRule(ctx context.Context, store Store, rule StaffingRule) error {
	existing, err := store.ListRules(ctx)
	if err != nil {
		return err
	}
	if err := ValidateRule(rule, existing); err != nil {
		return err
	}
	return store.SaveRule(ctx, rule)
}
