package models

import (
	"time"
)

// Channel identifies an external booking platform publishing a calendar feed.
type Channel string

const (
	ChannelAirbnb  Channel = "airbnb"
	ChannelBooking Channel = "booking"
	ChannelExpedia Channel = "expedia"
)

// AllChannels lists every supported channel in a stable order.
var AllChannels = []Channel{ChannelAirbnb, ChannelBooking, ChannelExpedia}

// IsValid checks if the channel is a supported platform.
func (c Channel) IsValid() bool {
	switch c {
	case ChannelAirbnb, ChannelBooking, ChannelExpedia:
		return true
	default:
		return false
	}
}

// EventStatus is the normalized booking status of a feed event.
type EventStatus string

const (
	StatusConfirmed EventStatus = "confirmed"
	StatusTentative EventStatus = "tentative"
	StatusCancelled EventStatus = "cancelled"
)

// ChannelFeedConfig holds the feed URL for one (property, channel) pair.
// Absence of a row (or an empty URL) means the channel is not synced for
// that property. Rows are mutated only through the property endpoints.
type ChannelFeedConfig struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	PropertyID uint    `json:"property_id" gorm:"not null;uniqueIndex:idx_feed_property_channel"`
	Channel    Channel `json:"channel" gorm:"size:16;not null;uniqueIndex:idx_feed_property_channel"`
	FeedURL    string  `json:"feed_url" gorm:"size:2048"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanonicalEvent is the engine's normalized representation of one feed event.
// Within a property, the tuple (channel, uid) identifies at most one row; the
// unique index enforces that invariant at the store level.
type CanonicalEvent struct {
	ID uint `json:"id" gorm:"primaryKey"`

	// PropertyID is the owning property.
	PropertyID uint `json:"property_id" gorm:"not null;uniqueIndex:idx_event_property_channel_uid"`

	// Channel is the platform the event was published by.
	Channel Channel `json:"channel" gorm:"size:16;not null;uniqueIndex:idx_event_property_channel_uid"`

	// UID is the stable external identifier from the feed. Unique within one
	// channel's feed; may collide across channels.
	UID string `json:"uid" gorm:"size:255;not null;uniqueIndex:idx_event_property_channel_uid"`

	// StartDate and EndDate are whole-day UTC dates with StartDate < EndDate.
	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`

	// Status is the normalized booking status.
	Status EventStatus `json:"status" gorm:"size:16;not null"`

	// Summary and Description are opaque free text passed through from the feed.
	Summary     string `json:"summary"`
	Description string `json:"description"`

	// LastSeenAt is the sync run that last confirmed this event in the feed.
	LastSeenAt time.Time `json:"last_seen_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Changed reports whether any feed-sourced field differs from other.
// Identity fields and bookkeeping timestamps are not compared.
func (e *CanonicalEvent) Changed(other *CanonicalEvent) bool {
	return !e.StartDate.Equal(other.StartDate) ||
		!e.EndDate.Equal(other.EndDate) ||
		e.Status != other.Status ||
		e.Summary != other.Summary ||
		e.Description != other.Description
}

// ErrorKind classifies the fatal error of a channel sync, if any.
type ErrorKind string

const (
	// ErrorKindFetch covers transport failures: timeouts, unreachable hosts,
	// non-2xx responses and empty bodies.
	ErrorKindFetch ErrorKind = "fetch"
	// ErrorKindFeedFormat means the fetched document had no calendar structure.
	ErrorKindFeedFormat ErrorKind = "feed_format"
	// ErrorKindPersistence means a store write failed while applying the diff.
	ErrorKindPersistence ErrorKind = "persistence"
)

// SyncOutcome is the result of reconciling one (property, channel).
type SyncOutcome struct {
	// Channel is the platform this outcome describes.
	Channel Channel `json:"channel"`

	// Inserted, Updated and Deleted count the applied diff.
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`

	// Warnings lists per-event parse problems that did not abort the feed.
	Warnings []string `json:"warnings,omitempty"`

	// Success is false only for fetch, feed-format or persistence failures.
	// Event-level warnings do not flip it.
	Success bool `json:"success"`

	// ErrorKind and Error describe the fatal failure when Success is false.
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// PropertySyncResult aggregates the outcomes of every configured channel
// for one property.
type PropertySyncResult struct {
	// PropertyID is the synced property.
	PropertyID uint `json:"property_id"`

	// Outcomes holds one entry per configured channel.
	Outcomes []SyncOutcome `json:"outcomes"`

	// Success is true iff no channel had a fatal error.
	Success bool `json:"success"`

	// SyncedAt is the timestamp written back to the property.
	SyncedAt time.Time `json:"synced_at"`
}

// BatchSyncResult aggregates PropertySyncResult across a batch run.
type BatchSyncResult struct {
	// Attempted is the number of properties the batch enumerated.
	Attempted int `json:"attempted"`

	// Succeeded and Failed partition the attempted properties by
	// PropertySyncResult.Success.
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`

	// Results holds the per-property results in completion order.
	Results []PropertySyncResult `json:"results"`
}
