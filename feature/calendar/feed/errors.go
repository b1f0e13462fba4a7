package feed

import "fmt"

// FetchErrorKind classifies transport failures.
type FetchErrorKind string

const (
	// FetchTimeout means the request exceeded the configured deadline.
	FetchTimeout FetchErrorKind = "timeout"
	// FetchUnreachable covers DNS, dial and other connection errors.
	FetchUnreachable FetchErrorKind = "unreachable"
	// FetchBadStatus means the server answered with a non-2xx status.
	FetchBadStatus FetchErrorKind = "bad_status"
	// FetchEmptyBody means the server answered 2xx with an empty body.
	// An empty body is never treated as "no events": only a parseable empty
	// snapshot may trigger deletions downstream.
	FetchEmptyBody FetchErrorKind = "empty_body"
)

// FetchError is the classified failure of a single feed retrieval.
type FetchError struct {
	// Kind is the failure classification.
	Kind FetchErrorKind
	// URL is the feed URL that failed.
	URL string
	// StatusCode is set for bad_status failures.
	StatusCode int
	// Err is the underlying transport error, if any.
	Err error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchBadStatus:
		return fmt.Sprintf("feed fetch %s: bad status %d", e.URL, e.StatusCode)
	case FetchEmptyBody:
		return fmt.Sprintf("feed fetch %s: empty response body", e.URL)
	default:
		return fmt.Sprintf("feed fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FormatError means a fetched document carried no calendar structure at all.
// A well-formed calendar with zero event blocks is NOT a FormatError; it is a
// legitimate empty snapshot.
type FormatError struct {
	// Detail describes what was missing.
	Detail string
}

func (e *FormatError) Error() string {
	return "feed format: " + e.Detail
}
