package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Document reference patterns, tried in order: kind label + number token,
// réf/ref label, bare n° label.
var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:facture|invoice|devis|estimate)\s*(?:n[°o]?\.?|#|number)?\s*[:\s]*([A-Z0-9\-_]+)`),
	regexp.MustCompile(`(?i)(?:réf(?:érence)?|ref(?:erence)?)\s*[:\s]*([A-Z0-9\-_]+)`),
	regexp.MustCompile(`(?i)(?:n[°o]\.?)\s*([A-Z0-9\-_]+)`),
}

// ExtractTitle pattern-matches a document reference/title token and returns
// it upper-cased, or "" when nothing matches. Captures shorter than 2
// characters are rejected and the next pattern is tried.
func ExtractTitle(lines []string, textLower string) string {
	for _, re := range titlePatterns {
		m := re.FindStringSubmatch(textLower)
		if m == nil {
			continue
		}
		ref := strings.TrimSpace(m[1])
		if utf8.RuneCountInString(ref) >= 2 {
			return strings.ToUpper(ref)
		}
	}
	return ""
}
