package feed

import (
	"strings"
	"testing"
	"time"

	"property-manager/core/utils"
	"property-manager/feature/calendar/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vevent builds one event block from raw content lines.
func vevent(lines ...string) string {
	return "BEGIN:VEVENT\n" + strings.Join(lines, "\n") + "\nEND:VEVENT\n"
}

func calendarDoc(blocks ...string) string {
	return "BEGIN:VCALENDAR\nVERSION:2.0\nPRODID:-//channel//EN\n" +
		strings.Join(blocks, "") + "END:VCALENDAR\n"
}

func TestParse_SingleEvent(t *testing.T) {
	doc := calendarDoc(vevent(
		"UID:abc-123@airbnb.com",
		"DTSTART;VALUE=DATE:20250601",
		"DTEND;VALUE=DATE:20250605",
		"SUMMARY:Reserved",
		"DESCRIPTION:Guest arrives late\\, call ahead",
	))

	events, warnings, err := Parse(doc, models.ChannelAirbnb)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "abc-123@airbnb.com", e.UID)
	assert.Equal(t, models.ChannelAirbnb, e.Channel)
	assert.True(t, e.StartDate.Equal(utils.Date(2025, time.June, 1)))
	assert.True(t, e.EndDate.Equal(utils.Date(2025, time.June, 5)))
	assert.Equal(t, models.StatusConfirmed, e.Status, "status defaults to confirmed when absent")
	assert.Equal(t, "Reserved", e.Summary)
	assert.Equal(t, "Guest arrives late, call ahead", e.Description)
}

func TestParse_MalformedBlockIsolation(t *testing.T) {
	// Three valid blocks plus one missing its UID: exactly three events and
	// exactly one warning, never a parse failure.
	doc := calendarDoc(
		vevent("UID:a", "DTSTART:20250601", "DTEND:20250603"),
		vevent("DTSTART:20250610", "DTEND:20250612", "SUMMARY:No UID here"),
		vevent("UID:b", "DTSTART:20250615", "DTEND:20250618"),
		vevent("UID:c", "DTSTART:20250620", "DTEND:20250621"),
	)

	events, warnings, err := Parse(doc, models.ChannelBooking)
	require.NoError(t, err)
	assert.Len(t, events, 3)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "missing UID")
}

func TestParse_SkippedBlocks(t *testing.T) {
	tests := []struct {
		name    string
		block   string
		warning string
	}{
		{
			"MissingStart",
			vevent("UID:x", "DTEND:20250605"),
			"missing DTSTART",
		},
		{
			"MissingEnd",
			vevent("UID:x", "DTSTART:20250601"),
			"missing DTEND",
		},
		{
			"ZeroNightSpan",
			vevent("UID:x", "DTSTART:20250601", "DTEND:20250601"),
			"not after",
		},
		{
			"EndBeforeStart",
			vevent("UID:x", "DTSTART:20250605", "DTEND:20250601"),
			"not after",
		},
		{
			"GarbageDate",
			vevent("UID:x", "DTSTART:junkdate", "DTEND:20250605"),
			"too short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, warnings, err := Parse(calendarDoc(tt.block), models.ChannelExpedia)
			require.NoError(t, err)
			assert.Empty(t, events)
			require.Len(t, warnings, 1)
			assert.Contains(t, warnings[0], tt.warning)
		})
	}
}

func TestParse_CancelledEventsEmitted(t *testing.T) {
	doc := calendarDoc(vevent(
		"UID:cancelled-1",
		"DTSTART:20250701",
		"DTEND:20250704",
		"STATUS:CANCELLED",
	))

	events, warnings, err := Parse(doc, models.ChannelAirbnb)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, events, 1)
	assert.Equal(t, models.StatusCancelled, events[0].Status)
}

func TestParse_StatusValues(t *testing.T) {
	tests := []struct {
		value string
		want  models.EventStatus
	}{
		{"CONFIRMED", models.StatusConfirmed},
		{"confirmed", models.StatusConfirmed},
		{"TENTATIVE", models.StatusTentative},
		{"CANCELLED", models.StatusCancelled},
		{"SOMETHING-ELSE", models.StatusConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			doc := calendarDoc(vevent("UID:x", "DTSTART:20250601", "DTEND:20250602", "STATUS:"+tt.value))
			events, _, err := Parse(doc, models.ChannelBooking)
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, tt.want, events[0].Status)
		})
	}
}

func TestParse_FoldedLines(t *testing.T) {
	doc := calendarDoc(
		"BEGIN:VEVENT\n" +
			"UID:folded-1\n" +
			"DTSTART:20250801\n" +
			"DTEND:20250803\n" +
			"SUMMARY:Reservation for a guest with a very\n" +
			" long summary line that was folded\n" +
			"END:VEVENT\n")

	events, warnings, err := Parse(doc, models.ChannelAirbnb)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, events, 1)
	assert.Equal(t, "Reservation for a guest with a verylong summary line that was folded", events[0].Summary)
}

func TestParse_DatetimeValuesTruncated(t *testing.T) {
	doc := calendarDoc(vevent("UID:dt-1", "DTSTART:20250601T140000Z", "DTEND:20250603T100000Z"))

	events, _, err := Parse(doc, models.ChannelExpedia)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].StartDate.Equal(utils.Date(2025, time.June, 1)))
	assert.True(t, events[0].EndDate.Equal(utils.Date(2025, time.June, 3)))
}

func TestParse_EmptyCalendarIsNotAnError(t *testing.T) {
	// A well-formed envelope without events is a legitimate empty snapshot.
	events, warnings, err := Parse(calendarDoc(), models.ChannelAirbnb)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Empty(t, warnings)
}

func TestParse_NoCalendarStructure(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"HTMLErrorPage", "<html><body>503 Service Unavailable</body></html>"},
		{"PlainText", "this is not a calendar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, _, err := Parse(tt.raw, models.ChannelBooking)
			assert.Empty(t, events)

			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
		})
	}
}

func TestParse_DuplicateUIDsPassedThrough(t *testing.T) {
	// The parser preserves feed order; duplicate resolution is the
	// reconciler's job (last occurrence wins there).
	doc := calendarDoc(
		vevent("UID:dup", "DTSTART:20250601", "DTEND:20250603"),
		vevent("UID:dup", "DTSTART:20250610", "DTEND:20250612"),
	)

	events, _, err := Parse(doc, models.ChannelAirbnb)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, events[0].UID, events[1].UID)
}
