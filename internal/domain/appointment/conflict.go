package appointment

import (
	"sort"

	"github.com/google/uuid"
)

// FindConflict scans existing appointments of one service and date for the
// first one whose window overlaps candidate. Rejected/cancelled appointments
// never block, and excludeID skips the record being rescheduled so it cannot
// collide with itself. The scan runs in ascending start order so the reported
// collision is deterministic.
//
// Callers must hand in a valid candidate (end > start); the scan assumes it.
func FindConflict(existing []*Appointment, candidate TimeWindow, excludeID uuid.UUID) (uuid.UUID, bool) {
	sorted := make([]*Appointment, len(existing))
	copy(sorted, existing)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Window().StartMinutes() < sorted[j].Window().StartMinutes()
	})

	for _, appt := range sorted {
		if appt.ID() == excludeID {
			continue
		}
		if !appt.BlocksSlot() {
			continue
		}
		if appt.Window().Overlaps(candidate) {
			return appt.ID(), true
		}
	}
	return uuid.Nil, false
}
