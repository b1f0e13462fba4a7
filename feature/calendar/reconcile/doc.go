// Package reconcile computes insert/update/delete diffs between a channel's
// freshly fetched feed snapshot and the events already stored for the same
// (property, channel).
//
// The package is pure: no I/O, no clock, no logging. Applying a diff is the
// sync coordinator's job, which keeps the algorithm directly testable and
// trivially idempotent.
package reconcile
