// Package utils provides common utility functions for the property-manager application.
// It includes helpers for the whole-day calendar dates used across feeds, the event
// store and the reconciliation engine.
package utils
