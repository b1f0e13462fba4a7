// Package models defines the property records the management screens operate
// on. Channel feed configuration and calendar events live in the calendar
// feature's models; a property only carries its own descriptive fields and
// the last-synced bookkeeping timestamp.
package models
