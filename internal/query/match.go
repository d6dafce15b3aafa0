package query

import (
	"strings"

	"github.com/okazakilab/trackdash/internal/model"
)

// Tokenize lowercases a free-text query and splits it on runs of
// whitespace. An empty or whitespace-only query yields no tokens.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(query)))
}

// MatchesQuery reports whether every token of the query is a substring of
// the issue's searchable text: title, body, author login, and label names,
// joined by spaces and lowercased. An empty query matches everything.
func MatchesQuery(issue *model.Issue, query string) bool {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return true
	}

	haystack := strings.ToLower(searchableText(issue))
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}

func searchableText(issue *model.Issue) string {
	parts := make([]string, 0, 3+len(issue.Labels))
	parts = append(parts, issue.Title, issue.Body, issue.User.Login)
	for _, l := range issue.Labels {
		parts = append(parts, l.Name)
	}
	return strings.Join(parts, " ")
}
