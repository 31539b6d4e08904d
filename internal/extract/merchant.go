package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// UnknownMerchant is the sentinel returned when no candidate qualifies.
const UnknownMerchant = "Unknown Merchant"

// merchantPatterns capture text following explicit cues, or a short line
// printed entirely in capitals the way receipt headers usually are.
var merchantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*(?:from|at|merchant|vendor|store)\s*[:\-]\s*(\S.*)$`),
	regexp.MustCompile(`(?m)^\s*([A-Z][A-Z&'. ]{2,39}?)\s*$`),
}

const (
	merchantMinLen = 3
	merchantMaxLen = 50
)

// Merchant returns a display name for the issuing business. Cue patterns are
// tried first; failing those, the first non-trivial line among the top five
// lines is used. Returns UnknownMerchant when nothing qualifies.
func Merchant(text string) string {
	for _, re := range merchantPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if name, ok := cleanMerchant(m[1]); ok {
				return name
			}
		}
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) < merchantMinLen || len(trimmed) > 40 {
			continue
		}
		if !containsLetter(trimmed) || summaryLine.MatchString(trimmed) {
			continue
		}
		return trimmed
	}
	return UnknownMerchant
}

func cleanMerchant(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < merchantMinLen || !containsLetter(s) {
		return "", false
	}
	// A bare "TOTAL" or "CASH" line is receipt furniture, not a name.
	if summaryLine.MatchString(s) {
		return "", false
	}
	if len(s) > merchantMaxLen {
		s = strings.TrimSpace(s[:merchantMaxLen])
	}
	return s, true
}

// containsLetter rejects purely numeric candidates such as phone numbers
// and invoice IDs.
func containsLetter(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLetter)
}
