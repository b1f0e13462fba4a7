package feed

import (
	"bufio"
	"fmt"
	"strings"

	"property-manager/core/utils"
	"property-manager/feature/calendar/models"
)

// Parse turns the raw text of one fetched feed into canonical events.
//
// The document is an iCalendar-style text: a header region followed by zero or
// more BEGIN:VEVENT / END:VEVENT blocks. Blocks missing a mandatory field (UID,
// DTSTART, DTEND) or spanning zero nights are skipped and reported as warnings;
// they never abort the rest of the document. Cancelled blocks are emitted with
// StatusCancelled so the reconciler can treat them as a presence signal.
//
// The only error returned is a *FormatError, when the document has no calendar
// structure at all. A well-formed calendar with zero event blocks parses to an
// empty slice, which downstream means "all bookings on this channel are gone".
func Parse(raw string, channel models.Channel) ([]models.CanonicalEvent, []string, error) {
	lines := unfold(raw)

	var (
		events      []models.CanonicalEvent
		warnings    []string
		block       map[string]string
		blockNo     int
		sawCalendar bool
	)

	for _, line := range lines {
		name, value, ok := splitContentLine(line)
		if !ok {
			continue
		}

		switch name {
		case "BEGIN":
			switch value {
			case "VCALENDAR":
				sawCalendar = true
			case "VEVENT":
				sawCalendar = true
				blockNo++
				block = map[string]string{}
			}
		case "END":
			if value == "VEVENT" && block != nil {
				event, warning := buildEvent(block, blockNo, channel)
				if warning != "" {
					warnings = append(warnings, warning)
				} else {
					events = append(events, *event)
				}
				block = nil
			}
		case "UID", "DTSTART", "DTEND", "STATUS", "SUMMARY", "DESCRIPTION":
			if block != nil {
				block[name] = value
			}
		}
	}

	if !sawCalendar {
		return nil, warnings, &FormatError{Detail: "no calendar structure found"}
	}

	return events, warnings, nil
}

// buildEvent validates one collected VEVENT block. It returns either the event
// or a non-empty warning describing why the block was skipped.
func buildEvent(block map[string]string, blockNo int, channel models.Channel) (*models.CanonicalEvent, string) {
	uid := block["UID"]
	if uid == "" {
		return nil, fmt.Sprintf("event block %d: missing UID", blockNo)
	}

	rawStart, ok := block["DTSTART"]
	if !ok || rawStart == "" {
		return nil, fmt.Sprintf("event block %d (%s): missing DTSTART", blockNo, uid)
	}
	rawEnd, ok := block["DTEND"]
	if !ok || rawEnd == "" {
		return nil, fmt.Sprintf("event block %d (%s): missing DTEND", blockNo, uid)
	}

	start, err := utils.ParseCompactDate(rawStart)
	if err != nil {
		return nil, fmt.Sprintf("event block %d (%s): %v", blockNo, uid, err)
	}
	end, err := utils.ParseCompactDate(rawEnd)
	if err != nil {
		return nil, fmt.Sprintf("event block %d (%s): %v", blockNo, uid, err)
	}

	if !start.Before(end) {
		return nil, fmt.Sprintf("event block %d (%s): end date %s is not after start date %s",
			blockNo, uid, utils.FormatCompactDate(end), utils.FormatCompactDate(start))
	}

	return &models.CanonicalEvent{
		Channel:     channel,
		UID:         uid,
		StartDate:   start,
		EndDate:     end,
		Status:      parseStatus(block["STATUS"]),
		Summary:     unescape(block["SUMMARY"]),
		Description: unescape(block["DESCRIPTION"]),
	}, ""
}

// parseStatus maps the feed's STATUS value to a normalized status.
// Absent and unrecognized values default to confirmed.
func parseStatus(value string) models.EventStatus {
	switch strings.ToUpper(value) {
	case "CANCELLED":
		return models.StatusCancelled
	case "TENTATIVE":
		return models.StatusTentative
	default:
		return models.StatusConfirmed
	}
}

// unfold splits the document into lines, joining folded continuation lines
// (lines starting with a space or tab) onto their parent.
func unfold(raw string) []string {
	var lines []string

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}

	return lines
}

// splitContentLine splits "NAME;PARAM=X:value" into the bare property name and
// its value. Property parameters (e.g. DTSTART;VALUE=DATE:20250601) are dropped;
// feeds publish whole-day values so the parameters carry no information we use.
func splitContentLine(line string) (name, value string, ok bool) {
	colon := strings.Index(line, ":")
	if colon == -1 {
		return "", "", false
	}

	name = line[:colon]
	value = line[colon+1:]

	if semi := strings.Index(name, ";"); semi != -1 {
		name = name[:semi]
	}

	return strings.ToUpper(strings.TrimSpace(name)), value, true
}

// unescape resolves the iCal escape sequences used in free-text fields.
func unescape(value string) string {
	value = strings.ReplaceAll(value, "\\n", "\n")
	value = strings.ReplaceAll(value, "\\N", "\n")
	value = strings.ReplaceAll(value, "\\,", ",")
	value = strings.ReplaceAll(value, "\\;", ";")
	value = strings.ReplaceAll(value, "\\\\", "\\")
	return value
}
