// Package property manages the property inventory and its per-channel feed
// configuration. A property becomes visible to the calendar reconciliation
// engine once at least one channel has a non-empty feed URL.
package property
