// Package filter implements the in-memory search over a password record
// list. Results are a pure function of the inputs: no hidden state ever
// influences membership, and the input order is preserved.
package filter

import "strings"

// Record is the view of a password record the engine needs. The main
// package's PasswordRecord satisfies it.
type Record interface {
	RecordTitle() string
	RecordUsername() string
	RecordURL() string
	RecordCategory() string
}

// Filter returns the sublist of records matching both the free-text
// query and the category selection.
//
// An empty query makes the text predicate always true; otherwise a
// record matches when the query is a case-insensitive substring of its
// title, username, or url. An empty categoryID makes the category
// predicate always true; otherwise the record's category reference must
// equal categoryID exactly, so uncategorized records never match a
// category selection.
func Filter[T Record](records []T, query, categoryID string) []T {
	matched := make([]T, 0, len(records))
	q := strings.ToLower(query)
	for _, r := range records {
		if categoryID != "" && r.RecordCategory() != categoryID {
			continue
		}
		if q != "" && !matchesQuery(r, q) {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

// matchesQuery expects q to be lowercased already.
func matchesQuery(r Record, q string) bool {
	if strings.Contains(strings.ToLower(r.RecordTitle()), q) {
		return true
	}
	if strings.Contains(strings.ToLower(r.RecordUsername()), q) {
		return true
	}
	return strings.Contains(strings.ToLower(r.RecordURL()), q)
}
