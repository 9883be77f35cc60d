package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	addressWindow   = 500 // chars scanned after a marker match
	addressMaxLines = 5
	addressMinChars = 10 // joined block must exceed this to count
)

// Labeled section markers, tried in order; first match per side wins.
var (
	fromMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:from|de|émetteur|expéditeur)\s*[:\n]`),
		regexp.MustCompile(`(?i)(?:vendeur|seller)\s*[:\n]`),
	}
	toMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:to|à|destinataire|client|bill\s*to|facturer\s*à|customer)\s*[:\n]`),
		regexp.MustCompile(`(?i)(?:acheteur|buyer)\s*[:\n]`),
	}

	// A line opening another labeled section ends the current block.
	sectionStartRe = regexp.MustCompile(`^(from|to|de|à|client|total|montant|date|invoice|facture)`)

	// French/US postal codes anchor the fallback block search.
	postalCodeRe = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

	// Lines that are clearly totals/dates/metadata, not address parts.
	nonAddressRe = regexp.MustCompile(`^(total|montant|date|invoice|facture|devis|\d+[.,]\d+\s*€?$)`)
)

// ExtractAddresses locates the sender and recipient blocks. Labeled markers
// are tried first; any side still unfilled falls back to postal-code-anchored
// block detection. Absence is an empty string, never an error.
func ExtractAddresses(lines []string, fullText string) (from, to string) {
	for _, re := range fromMarkers {
		if loc := re.FindStringIndex(fullText); loc != nil {
			if addr := addressBlockAt(fullText, loc[1]); utf8.RuneCountInString(addr) > addressMinChars {
				from = addr
				break
			}
		}
	}
	for _, re := range toMarkers {
		if loc := re.FindStringIndex(fullText); loc != nil {
			if addr := addressBlockAt(fullText, loc[1]); utf8.RuneCountInString(addr) > addressMinChars {
				to = addr
				break
			}
		}
	}

	if from == "" || to == "" {
		blocks := findAddressBlocks(lines)
		if len(blocks) >= 2 {
			if from == "" {
				from = blocks[0]
			}
			if to == "" {
				to = blocks[1]
			}
		} else if len(blocks) == 1 && to == "" {
			to = blocks[0]
		}
	}

	return strings.TrimSpace(from), strings.TrimSpace(to)
}

// addressBlockAt collects up to addressMaxLines lines from the text window
// following a marker match. It stops at the first blank line after content
// or at a line that opens another labeled section.
func addressBlockAt(text string, start int) string {
	end := start + addressWindow
	if end > len(text) {
		end = len(text)
	}
	window := text[start:end]

	windowLines := strings.Split(window, "\n")
	if len(windowLines) > addressMaxLines {
		windowLines = windowLines[:addressMaxLines]
	}

	var collected []string
	for _, line := range windowLines {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(collected) > 0 {
				break
			}
			continue
		}
		if sectionStartRe.MatchString(strings.ToLower(line)) {
			break
		}
		collected = append(collected, line)
	}
	return strings.Join(collected, "\n")
}

// findAddressBlocks scans for postal codes and builds a candidate block from
// the surrounding lines [i-2, i+1]. Windows of nearby matches may overlap;
// downstream behavior depends on that, so no de-duplication is done.
func findAddressBlocks(lines []string) []string {
	var blocks []string

	i := 0
	for i < len(lines) {
		if !postalCodeRe.MatchString(lines[i]) {
			i++
			continue
		}

		start := i - 2
		if start < 0 {
			start = 0
		}
		end := i + 1
		if end > len(lines) {
			end = len(lines)
		}

		var blockLines []string
		for j := start; j <= end && j < len(lines); j++ {
			l := strings.TrimSpace(lines[j])
			if l != "" && !nonAddressRe.MatchString(strings.ToLower(l)) {
				blockLines = append(blockLines, l)
			}
		}
		if len(blockLines) > 0 {
			blocks = append(blocks, strings.Join(blockLines, "\n"))
		}
		i = end + 1
	}

	return blocks
}
