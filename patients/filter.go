package patients

import (
	"strings"

	"golang.org/x/text/cases"
)

// MatchesText reports whether the query is a case-insensitive substring of the patient's
// name or id. An empty query matches every patient.
func MatchesText(p Patient, query string) bool {
	if query == "" {
		return true
	}
	// casers are stateful and must not be shared between goroutines
	folder := cases.Fold()
	q := folder.String(query)
	return strings.Contains(folder.String(p.Name), q) || strings.Contains(folder.String(p.Id), q)
}

// Filter returns the patients matching both the category and the search query.
// The relative order of the collection is preserved and the input is never modified.
func Filter(collection []Patient, category CategoryId, query string) []Patient {
	predicate := PredicateFor(category)
	visible := make([]Patient, 0, len(collection))
	for _, p := range collection {
		if predicate(p) && MatchesText(p, query) {
			visible = append(visible, p)
		}
	}
	return visible
}
