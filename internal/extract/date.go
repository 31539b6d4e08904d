package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// datePattern pairs a regex with a parser for its capture groups.
type datePattern struct {
	re    *regexp.Regexp
	parse func(m []string) (time.Time, bool)
}

// datePatterns are tried in priority order: day-first numeric, year-first
// numeric, then the two month-name forms. The first match that parses to a
// real calendar date wins.
var datePatterns = []datePattern{
	{
		re:    regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})\b`),
		parse: parseDayMonthYear,
	},
	{
		re: regexp.MustCompile(`\b(\d{4})[/\-.](\d{1,2})[/\-.](\d{1,2})\b`),
		parse: func(m []string) (time.Time, bool) {
			return calendarDate(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]))
		},
	},
	{
		re: regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?[\s\-]*(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?,?[\s\-]+(\d{4})\b`),
		parse: func(m []string) (time.Time, bool) {
			return calendarDate(atoi(m[3]), monthsByPrefix[strings.ToLower(m[2])], atoi(m[1]))
		},
	},
	{
		re: regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?[\s\-]+(\d{1,2})(?:st|nd|rd|th)?,?[\s\-]+(\d{4})\b`),
		parse: func(m []string) (time.Time, bool) {
			return calendarDate(atoi(m[3]), monthsByPrefix[strings.ToLower(m[1])], atoi(m[2]))
		},
	},
}

// Date finds the first parseable date in the text and returns it as an ISO
// calendar date. When nothing parses it returns now's date with found=false;
// the fallback is a deliberate default, not an error.
func Date(text string, now time.Time) (date string, found bool) {
	for _, p := range datePatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			if t, ok := p.parse(m); ok {
				return t.Format(isoDate), true
			}
		}
	}
	return now.Format(isoDate), false
}

// parseDayMonthYear reads a D/M/Y numeric date, swapping day and month when
// the second field cannot be a month and the first can.
func parseDayMonthYear(m []string) (time.Time, bool) {
	day, month := atoi(m[1]), atoi(m[2])
	if month > 12 && day <= 12 {
		day, month = month, day
	}
	return calendarDate(atoi(m[3]), time.Month(month), day)
}

// calendarDate builds a date and rejects values time.Date would normalize
// away, such as 31/02.
func calendarDate(year int, month time.Month, day int) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
