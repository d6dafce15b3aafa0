package query

import (
	"regexp"
	"strings"
)

// Highlight markers wrapped around matched terms. The HTTP layer returns
// them verbatim; the CLI rewrites them to ANSI when stdout is a terminal.
const (
	MarkOpen  = "<mark>"
	MarkClose = "</mark>"
)

// Highlight wraps every case-insensitive occurrence of each term in the
// markers. Regex metacharacters in terms are escaped, so "$100" matches
// literally. Terms apply in order over the partially marked string; earlier
// wraps are not re-scanned by later terms. Empty terms are skipped, and an
// empty term list returns the text unchanged.
func Highlight(text string, terms []string) string {
	for _, term := range terms {
		if term == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
		if err != nil {
			// QuoteMeta output always compiles; guard anyway.
			continue
		}
		text = re.ReplaceAllStringFunc(text, func(m string) string {
			return MarkOpen + m + MarkClose
		})
	}
	return text
}

// StripMarks removes highlight markers, returning the original text.
func StripMarks(text string) string {
	text = strings.ReplaceAll(text, MarkOpen, "")
	return strings.ReplaceAll(text, MarkClose, "")
}
