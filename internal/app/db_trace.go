package app

import (
	"regexp"
	"strings"
)

// Span attributes keep the full statement out of the trace backend;
// whitespace is collapsed and long queries are truncated.
const tracedQueryLimit = 512

var sqlWhitespace = regexp.MustCompile(`\s+`)

func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}
	flat := sqlWhitespace.ReplaceAllString(query, " ")
	if len(flat) > tracedQueryLimit {
		return flat[:tracedQueryLimit] + "..."
	}
	return flat
}
