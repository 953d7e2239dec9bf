/*
resolver.go - Guest count + add-ons -> required positions

PURPOSE:
  The position resolver is the single place that derives staffing
  requirements. It is a pure function: same rules, add-ons, guest count and
  selection always produce the same ordered position list.

ALGORITHM:
  1. Find the rule whose [MinGuests, MaxGuests] contains the guest count.
     No match -> empty baseline (legitimately zero tracked positions).
  2. Seed an accumulator from the rule's required positions.
  3. Apply the rule's extra conditions whose add-on is selected.
  4. For every selected add-on, add 1 per associated position.
  5. Emit positions in first-seen order: rule positions, then
     extra-condition positions, then add-on positions.

  Ordering is a display convenience, not a correctness requirement, but it
  is deterministic and tested.

DEFENSIVE NORMALIZATION:
  Unmatched guest counts and unknown add-on ids are ignored, never fatal.
  The resolver returns no errors by design.
*/
package engine

// Resolve derives the required positions for an event. All slots in the
// returned positions are open; assignment happens later through the
// conflict checker.
func Resolve(guests int, selected []AddOnID, rules []StaffingRule, addOns []AddOn) []EventPosition {
	acc := newPositionAccumulator()

	rule := MatchRule(rules, guests)
	if rule != nil {
		for _, pc := range rule.RequiredPositions {
			acc.add(pc.Position, pc.Count)
		}
		for _, ec := range rule.ExtraConditions {
			if containsAddOn(selected, ec.AddOnID) {
				acc.add(ec.Position, ec.Count)
			}
		}
	}

	// Add-on associated positions apply independently of the matched rule.
	byID := make(map[AddOnID]AddOn, len(addOns))
	for _, a := range addOns {
		byID[a.ID] = a
	}
	for _, id := range selected {
		a, ok := byID[id]
		if !ok {
			continue // unknown add-on id: ignored, not fatal
		}
		for _, p := range a.AssociatedPositions {
			acc.add(p, 1)
		}
	}

	return acc.positions()
}

func containsAddOn(ids []AddOnID, id AddOnID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// =============================================================================
// ACCUMULATOR - Counts per label, first-seen iteration order
// =============================================================================

type positionAccumulator struct {
	order  []Position
	counts map[Position]int
}

func newPositionAccumulator() *positionAccumulator {
	return &positionAccumulator{counts: make(map[Position]int)}
}

func (a *positionAccumulator) add(label Position, count int) {
	if label == "" || count < 1 {
		return
	}
	if _, seen := a.counts[label]; !seen {
		a.order = append(a.order, label)
	}
	a.counts[label] += count
}

func (a *positionAccumulator) positions() []EventPosition {
	out := make([]EventPosition, 0, len(a.order))
	for _, label := range a.order {
		out = append(out, NewEventPosition(label, a.counts[label]))
	}
	return out
}
