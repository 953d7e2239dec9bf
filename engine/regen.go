package engine

// =============================================================================
// POSITION REGENERATION - Recompute positions, preserve assignments by label
// =============================================================================

// Regenerate merges existing staff assignments into a freshly resolved
// position list. For each new position, assignments from the prior position
// with the same label carry forward slot by slot, truncated to the new
// RequiredCount. Assignments to labels that no longer appear, and slot
// overflow beyond the new count, are dropped and reported to the caller;
// the drop itself is silent at the engine level, never an error.
func Regenerate(prev, next []EventPosition) ([]EventPosition, []DroppedAssignment) {
	prevByLabel := make(map[Position]EventPosition, len(prev))
	for _, p := range prev {
		prevByLabel[p.Position] = p
	}

	var dropped []DroppedAssignment
	merged := make([]EventPosition, len(next))
	for i, np := range next {
		merged[i] = np.Clone()
		op, ok := prevByLabel[np.Position]
		if !ok {
			continue
		}
		for slot, staffID := range op.Slots {
			if staffID == "" {
				continue
			}
			if slot < merged[i].RequiredCount {
				merged[i].Slots[slot] = staffID
			} else {
				dropped = append(dropped, DroppedAssignment{Position: np.Position, StaffID: staffID})
			}
		}
		delete(prevByLabel, np.Position)
	}

	// Whole positions that vanished: every assignment on them is dropped.
	// Iterate prev (not the map) to keep the report deterministic.
	for _, op := range prev {
		if _, unmatched := prevByLabel[op.Position]; !unmatched {
			continue
		}
		for _, staffID := range op.Slots {
			if staffID != "" {
				dropped = append(dropped, DroppedAssignment{Position: op.Position, StaffID: staffID})
			}
		}
	}

	return merged, dropped
}
