package models

import "time"

// Property is a managed rental property.
type Property struct {
	ID uint `json:"id" gorm:"primaryKey"`

	// Name is the display name of the property.
	Name string `json:"name" gorm:"size:255;not null"`

	// Address is the street address, opaque to the engine.
	Address string `json:"address" gorm:"size:512"`

	// Notes is free-form operator text.
	Notes string `json:"notes"`

	// LastSyncedAt is the completion time of the most recent calendar sync
	// run, written even on partial failure. Nil until the first run.
	LastSyncedAt *time.Time `json:"last_synced_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
