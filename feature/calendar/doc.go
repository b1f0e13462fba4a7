// Package calendar implements the calendar reconciliation engine.
//
// Each supported channel (Airbnb, Booking.com, Expedia) publishes an
// iCalendar-style feed per property. A sync run treats every fetched feed as a
// full snapshot of that channel's current bookings, diffs it against the
// persisted events and applies the minimal insert/update/delete set. Deletion
// is always snapshot-driven, never time-driven.
//
// # Pipeline
//
//	feed.Fetcher -> feed.Parse -> reconcile.Reconcile -> Store writes
//
// The SyncService orchestrates the pipeline for one property's channels
// (concurrent fetch/parse, serialized persistence); the BatchService runs it
// across the fleet with a bounded worker pool; the Scheduler triggers batches
// on a cron expression.
//
// # Failure isolation
//
// One channel's fetch or format failure never aborts its sibling channels, and
// one property's failure never stops a batch. Every trigger returns a
// structured result describing exactly what succeeded and what did not.
package calendar
