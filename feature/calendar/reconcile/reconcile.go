package reconcile

import (
	"sort"

	"property-manager/feature/calendar/models"
)

// Diff is the minimal set of writes that brings the stored events for one
// (property, channel) in line with a freshly fetched snapshot.
type Diff struct {
	// ToInsert holds fresh events with no stored counterpart.
	ToInsert []models.CanonicalEvent `json:"to_insert"`

	// ToUpdate holds fresh events whose stored counterpart differs.
	ToUpdate []models.CanonicalEvent `json:"to_update"`

	// ToDelete holds the UIDs of stored events that must be removed: either
	// cancelled in the fresh snapshot or absent from it entirely.
	ToDelete []string `json:"to_delete"`
}

// Empty reports whether the diff contains no work.
func (d *Diff) Empty() bool {
	return len(d.ToInsert) == 0 && len(d.ToUpdate) == 0 && len(d.ToDelete) == 0
}

// Counts returns the insert/update/delete totals.
func (d *Diff) Counts() (inserted, updated, deleted int) {
	return len(d.ToInsert), len(d.ToUpdate), len(d.ToDelete)
}

// Reconcile computes the diff between a channel's fresh full-snapshot events
// and the previously stored events for the same (property, channel).
//
// The fresh snapshot is authoritative: a stored UID absent from it is deleted,
// never expired by wall-clock time. Cancelled fresh events are a presence
// signal; matched against a stored event they delete it, unmatched they are a
// no-op. Duplicate UIDs in the fresh snapshot resolve last-occurrence-wins.
//
// Reconcile is a pure function with deterministic (UID-sorted) output:
// identical inputs always yield an identical diff.
func Reconcile(propertyID uint, channel models.Channel, fresh, stored []models.CanonicalEvent) Diff {
	storedByUID := make(map[string]models.CanonicalEvent, len(stored))
	for _, e := range stored {
		storedByUID[e.UID] = e
	}

	freshByUID := make(map[string]models.CanonicalEvent, len(fresh))
	for _, e := range fresh {
		e.PropertyID = propertyID
		e.Channel = channel
		freshByUID[e.UID] = e
	}

	var diff Diff

	for uid, freshEvent := range freshByUID {
		storedEvent, exists := storedByUID[uid]

		if freshEvent.Status == models.StatusCancelled {
			// A cancellation removes the booking from the internal calendar.
			// Nothing to cancel if it was never stored.
			if exists {
				diff.ToDelete = append(diff.ToDelete, uid)
			}
			continue
		}

		if !exists {
			diff.ToInsert = append(diff.ToInsert, freshEvent)
			continue
		}

		if storedEvent.Changed(&freshEvent) {
			freshEvent.ID = storedEvent.ID
			diff.ToUpdate = append(diff.ToUpdate, freshEvent)
		}
	}

	// Full-snapshot semantics: stored events missing from the fresh feed no
	// longer exist on the channel.
	for uid := range storedByUID {
		if _, present := freshByUID[uid]; present {
			continue
		}
		diff.ToDelete = append(diff.ToDelete, uid)
	}

	sort.Slice(diff.ToInsert, func(i, j int) bool { return diff.ToInsert[i].UID < diff.ToInsert[j].UID })
	sort.Slice(diff.ToUpdate, func(i, j int) bool { return diff.ToUpdate[i].UID < diff.ToUpdate[j].UID })
	sort.Strings(diff.ToDelete)

	return diff
}
