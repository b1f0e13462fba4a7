// Package models defines the data model of the calendar reconciliation engine:
// channels, feed configuration, canonical events and the structured results
// returned by sync runs.
//
// CanonicalEvent rows follow full-snapshot semantics: a row is created when a
// UID first appears in a channel's feed, updated when the same UID reappears
// with changed fields, and deleted when the UID no longer appears in the latest
// snapshot. Nothing expires by wall-clock time alone.
package models
