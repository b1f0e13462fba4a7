// Package feed retrieves and parses the iCalendar-style booking feeds published
// by the supported channels.
//
// The two halves are strictly separated: the Fetcher owns transport, timeouts
// and error classification; Parse is a pure transformation from raw text to
// canonical events plus per-block warnings. Neither half touches the store.
package feed
