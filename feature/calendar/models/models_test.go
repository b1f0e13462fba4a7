package models

import (
	"testing"
	"time"

	"property-manager/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestChannel_IsValid(t *testing.T) {
	tests := []struct {
		name    string
		channel Channel
		want    bool
	}{
		{"Airbnb", ChannelAirbnb, true},
		{"Booking", ChannelBooking, true},
		{"Expedia", ChannelExpedia, true},
		{"Invalid", Channel("vrbo"), false},
		{"Empty", Channel(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.channel.IsValid())
		})
	}
}

func TestCanonicalEvent_Changed(t *testing.T) {
	base := func() *CanonicalEvent {
		return &CanonicalEvent{
			UID:         "X1",
			StartDate:   utils.Date(2025, time.June, 1),
			EndDate:     utils.Date(2025, time.June, 5),
			Status:      StatusConfirmed,
			Summary:     "Reserved",
			Description: "guest metadata",
		}
	}

	t.Run("Identical", func(t *testing.T) {
		assert.False(t, base().Changed(base()))
	})

	t.Run("EndDateMoved", func(t *testing.T) {
		other := base()
		other.EndDate = utils.Date(2025, time.June, 6)
		assert.True(t, base().Changed(other))
	})

	t.Run("StatusChanged", func(t *testing.T) {
		other := base()
		other.Status = StatusTentative
		assert.True(t, base().Changed(other))
	})

	t.Run("BookkeepingIgnored", func(t *testing.T) {
		other := base()
		other.LastSeenAt = time.Now()
		other.ID = 42
		assert.False(t, base().Changed(other))
	})
}
