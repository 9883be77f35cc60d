package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Document-label/reference/date/validity prefixes, locale-mixed. These guard
// both item strategies against reading boilerplate as a line item.
var metadataPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`^devis\s`),
	regexp.MustCompile(`^facture\s`),
	regexp.MustCompile(`^invoice\s`),
	regexp.MustCompile(`^estimate\s`),
	regexp.MustCompile(`^n[°o]\.?\s`),
	regexp.MustCompile(`^ref`),
	regexp.MustCompile(`^date\s`),
	regexp.MustCompile(`^client\s`),
	regexp.MustCompile(`^numéro`),
	regexp.MustCompile(`^number`),
	regexp.MustCompile(`^\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}`),
	regexp.MustCompile(`^valide`),
	regexp.MustCompile(`^valid`),
	regexp.MustCompile(`^émis`),
	regexp.MustCompile(`^issued`),
}

var digitStartRe = regexp.MustCompile(`^\d`)

// IsMetadata reports whether text looks like document boilerplate (labels,
// dates, references) rather than a service description.
func IsMetadata(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, re := range metadataPrefixes {
		if re.MatchString(lower) {
			return true
		}
	}
	// Very short and starting with a digit: almost certainly metadata.
	if utf8.RuneCountInString(text) < 15 && digitStartRe.MatchString(text) {
		return true
	}
	return false
}
