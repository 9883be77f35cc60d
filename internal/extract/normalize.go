package extract

import "strings"

// maxPages bounds how much of a document the engine reads. Pages past the
// cap are ignored so a pathological multi-page upload cannot blow up a run.
const maxPages = 10

// Normalize joins the per-page texts into one string and derives the
// trimmed, non-empty line sequence every later stage scans over.
func Normalize(pages []string) (fullText string, lines []string) {
	if len(pages) > maxPages {
		pages = pages[:maxPages]
	}

	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p)
		b.WriteString("\n")
	}
	fullText = b.String()

	for _, line := range strings.Split(fullText, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return fullText, lines
}
