package extract

import (
	"regexp"
	"strings"
)

var monthNames = map[string]string{
	"jan": "January", "january": "January",
	"feb": "February", "february": "February",
	"mar": "March", "march": "March",
	"apr": "April", "april": "April",
	"may": "May",
	"jun": "June", "june": "June",
	"jul": "July", "july": "July",
	"aug": "August", "august": "August",
	"sep": "September", "sept": "September", "september": "September",
	"oct": "October", "october": "October",
	"nov": "November", "november": "November",
	"dec": "December", "december": "December",
}

var monthNumbers = []string{"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

func normalizeMonth(m string) string {
	if full, ok := monthNames[strings.ToLower(m)]; ok {
		return full
	}
	return strings.ToUpper(m)
}

func formatMonthYear(month, year string) string {
	if month != "" && year != "" {
		return normalizeMonth(month) + " " + year
	}
	return year
}

func monthNumberName(num string) string {
	n := 0
	for _, r := range num {
		n = n*10 + int(r-'0')
	}
	if n >= 1 && n <= 12 {
		return monthNumbers[n]
	}
	return num
}

// expandFinancialYear turns "2019" + "20" into "2020" using the century of
// the start year.
func expandFinancialYear(startYear, endShort string) string {
	return startYear[:2] + endShort
}

// Heading period patterns, tried strictly in order: the first pattern that
// matches decides the audited period.
var (
	headingFullRangeRe     = regexp.MustCompile(`(?i)(?:for\s+the\s+period\s+|period\s+)(\d{4})\s*-\s*(\d{4})\s+to\s+(\d{4})\s*-\s*(\d{4})`)
	headingPeriodFromRe    = regexp.MustCompile(`(?i)FOR\s+THE\s+PERIOD\s+FROM\s+([A-Za-z]+)\s+(\d{4})\s+TO\s+([A-Za-z]+)\s+(\d{4})`)
	headingPeriodRe        = regexp.MustCompile(`(?i)FOR\s+THE\s+PERIOD\s+([A-Za-z]+)\s+(\d{4})\s+TO\s+([A-Za-z]+)\s+(\d{4})`)
	headingFromRe          = regexp.MustCompile(`(?i)FROM\s+([A-Za-z]+)\s+(\d{4})\s+TO\s+([A-Za-z]+)\s+(\d{4})`)
	headingPeriodYearsRe   = regexp.MustCompile(`(?i)PERIOD\s+FROM\s+(\d{4})\s+TO\s+(\d{4})`)
	headingYearRangeRe     = regexp.MustCompile(`(?i)(\d{4})\s+TO\s+(\d{4})|(\d{4})\s*[-–]\s*(\d{4})`)
	headingForFYRe         = regexp.MustCompile(`(?i)FOR\s+(\d{4})\s*[-–]\s*(\d{2})`)
	headingDuringRe        = regexp.MustCompile(`(?i)(?:DURING|IN)\s+(\d{4})`)
	headingFullDatesRe     = regexp.MustCompile(`(?i)(\d{1,2})/(\d{1,2})/(\d{4})\s+TO\s+(\d{1,2})/(\d{1,2})/(\d{4})`)
	headingFromFullDatesRe = regexp.MustCompile(`(?i)FROM\s+(\d{1,2})/(\d{1,2})/(\d{4})\s+TO\s+(\d{1,2})/(\d{1,2})/(\d{4})`)
	headingFinancialRe     = regexp.MustCompile(`(?i)FINANCIAL\s+YEAR\s+(\d{4})\s*[-–]\s*(\d{2})`)
	headingMonthRangeRe    = regexp.MustCompile(`(?i)([A-Za-z]+)\s+(\d{4})\s+(?:TO|[-–])\s+([A-Za-z]+)\s+(\d{4})`)
	headingYearsAndRe      = regexp.MustCompile(`(?i)(?:FOR\s+THE\s+|THE\s+)?YEARS?\s+(\d{4})\s*[-–]\s*(\d{2})\s+AND\s+(\d{4})\s*[-–]\s*(\d{2})`)
	headingTheYearFYRe     = regexp.MustCompile(`(?i)(?:the\s+year\s+|year\s+)(\d{4})\s*[-–]\s*(\d{2})`)
	headingThePeriodFYRe   = regexp.MustCompile(`(?i)(?:the\s+period\s+|period\s+)(\d{4})\s*[-–]\s*(\d{2})\s+to\s+(\d{4})\s*[-–]\s*(\d{2})`)
	headingFYRangeRe       = regexp.MustCompile(`(?i)(\d{4})\s*[-–]\s*(\d{2})\s+to\s+(\d{4})\s*[-–]\s*(\d{2})`)
	headingSingleFYRe      = regexp.MustCompile(`(?i)(?:^|\s)(\d{4})\s*[-–]\s*(\d{2})(?:\s|$)`)
)

// periodFromHeading extracts the audited period from the document heading.
// Returns ("", "") when no pattern matches.
func periodFromHeading(heading string) (string, string) {
	if heading == "" {
		return "", ""
	}
	if m := headingFullRangeRe.FindStringSubmatch(heading); m != nil {
		return m[1] + "-" + m[2], m[3] + "-" + m[4]
	}
	if m := headingPeriodFromRe.FindStringSubmatch(heading); m != nil {
		return formatMonthYear(m[1], m[2]), formatMonthYear(m[3], m[4])
	}
	if m := headingPeriodRe.FindStringSubmatch(heading); m != nil {
		return formatMonthYear(m[1], m[2]), formatMonthYear(m[3], m[4])
	}
	if m := headingFromRe.FindStringSubmatch(heading); m != nil {
		return formatMonthYear(m[1], m[2]), formatMonthYear(m[3], m[4])
	}
	if m := headingPeriodYearsRe.FindStringSubmatch(heading); m != nil {
		return m[1], m[2]
	}
	if m := headingYearRangeRe.FindStringSubmatch(heading); m != nil {
		if m[1] != "" {
			return m[1], m[2]
		}
		return m[3], m[4]
	}
	if m := headingForFYRe.FindStringSubmatch(heading); m != nil {
		return m[1], expandFinancialYear(m[1], m[2])
	}
	if m := headingDuringRe.FindStringSubmatch(heading); m != nil {
		return m[1], m[1]
	}
	if m := headingFullDatesRe.FindStringSubmatch(heading); m != nil {
		return m[1] + " " + monthNumberName(m[2]) + " " + m[3],
			m[4] + " " + monthNumberName(m[5]) + " " + m[6]
	}
	if m := headingFromFullDatesRe.FindStringSubmatch(heading); m != nil {
		return m[1] + " " + monthNumberName(m[2]) + " " + m[3],
			m[4] + " " + monthNumberName(m[5]) + " " + m[6]
	}
	if m := headingFinancialRe.FindStringSubmatch(heading); m != nil {
		return "April " + m[1], "March " + expandFinancialYear(m[1], m[2])
	}
	if m := headingMonthRangeRe.FindStringSubmatch(heading); m != nil {
		if looksLikeMonth(m[1]) && looksLikeMonth(m[3]) {
			return formatMonthYear(m[1], m[2]), formatMonthYear(m[3], m[4])
		}
	}
	if m := headingYearsAndRe.FindStringSubmatch(heading); m != nil {
		return m[1] + "-" + m[2], m[3] + "-" + m[4]
	}
	if m := headingTheYearFYRe.FindStringSubmatch(heading); m != nil {
		return m[1], expandFinancialYear(m[1], m[2])
	}
	if m := headingThePeriodFYRe.FindStringSubmatch(heading); m != nil {
		return m[1] + "-" + m[2], m[3] + "-" + m[4]
	}
	if m := headingFYRangeRe.FindStringSubmatch(heading); m != nil {
		return m[1] + "-" + m[2], m[3] + "-" + m[4]
	}
	if m := headingSingleFYRe.FindStringSubmatch(heading); m != nil {
		return m[1], expandFinancialYear(m[1], m[2])
	}
	return "", ""
}

func looksLikeMonth(word string) bool {
	if _, ok := monthNames[strings.ToLower(word)]; ok {
		return true
	}
	return len(word) >= 3
}

// Labeled period lines below the heading, e.g. "PERIOD OF AUDIT: 2021-22
// TO 2023-24".
var (
	labelAuditFYRe     = regexp.MustCompile(`(?i)period\s+of\s+audit\s*:\s*(\d{4})\s*[-–]\s*(\d{2})\s+to\s+(\d{4})\s*[-–]\s*(\d{2})`)
	labelAuditYearsRe  = regexp.MustCompile(`(?i)period\s+of\s+audit\s*:\s*(\d{4})\s+to\s+(\d{4})`)
	labelAuditRangeRe  = regexp.MustCompile(`(?i)period\s+of\s+audit\s*:\s*(\d{4})\s*[-–]\s*(\d{4})`)
	labelPeriodFYRe    = regexp.MustCompile(`(?i)audit\s+period\s*:\s*(\d{4})\s*[-–]\s*(\d{2})\s+to\s+(\d{4})\s*[-–]\s*(\d{2})`)
	labelPeriodYearsRe = regexp.MustCompile(`(?i)audit\s+period\s*:\s*(\d{4})\s+to\s+(\d{4})`)
	labelBareFYRe      = regexp.MustCompile(`(?i)^period\s*:\s*(\d{4})\s*[-–]\s*(\d{2})\s+to\s+(\d{4})\s*[-–]\s*(\d{2})`)
	labelBareYearsRe   = regexp.MustCompile(`(?i)^period\s*:\s*(\d{4})\s+to\s+(\d{4})`)
	labelSingleFYRe    = regexp.MustCompile(`(?i)period\s+of\s+audit\s*:\s*(\d{4})\s*[-–]\s*(\d{2})(?:\s|$)`)
	labelMonthRangeRe  = regexp.MustCompile(`(?i)period\s+of\s+audit\s*:\s*([A-Za-z]+)\s+(\d{4})\s+to\s+([A-Za-z]+)\s+(\d{4})`)
)

// periodBelowHeading scans the ten lines after the document heading for a
// labeled audit-period line.
func periodBelowHeading(lines []string, headingIdx int) (string, string) {
	if headingIdx < 0 {
		return "", ""
	}
	for i := headingIdx + 1; i < len(lines) && i <= headingIdx+10; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if m := labelAuditFYRe.FindStringSubmatch(line); m != nil {
			return m[1] + "-" + m[2], m[3] + "-" + m[4]
		}
		if m := labelAuditYearsRe.FindStringSubmatch(line); m != nil {
			return m[1], m[2]
		}
		if m := labelAuditRangeRe.FindStringSubmatch(line); m != nil {
			return m[1], m[2]
		}
		if m := labelPeriodFYRe.FindStringSubmatch(line); m != nil {
			return m[1] + "-" + m[2], m[3] + "-" + m[4]
		}
		if m := labelPeriodYearsRe.FindStringSubmatch(line); m != nil {
			return m[1], m[2]
		}
		if m := labelBareFYRe.FindStringSubmatch(line); m != nil {
			return m[1] + "-" + m[2], m[3] + "-" + m[4]
		}
		if m := labelBareYearsRe.FindStringSubmatch(line); m != nil {
			return m[1], m[2]
		}
		if m := labelSingleFYRe.FindStringSubmatch(line); m != nil {
			return m[1], expandFinancialYear(m[1], m[2])
		}
		if m := labelMonthRangeRe.FindStringSubmatch(line); m != nil {
			if monthValid(m[1]) && monthValid(m[3]) {
				return titleCase(m[1]) + " " + m[2], titleCase(m[3]) + " " + m[4]
			}
		}
	}
	return "", ""
}

func monthValid(word string) bool {
	_, ok := monthNames[strings.ToLower(word)]
	return ok
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

// Scope-of-audit narrative period patterns, last resort of the cascade.
var (
	scopePeriodFromMonthsRe = regexp.MustCompile(`(?i)period\s+from\s+([A-Za-z]+)\s+(\d{4})\s+to\s+([A-Za-z]+)\s+(\d{4})`)
	scopeFromMonthsRe       = regexp.MustCompile(`(?i)from\s+([A-Za-z]+)\s+(\d{4})\s+to\s+([A-Za-z]+)\s+(\d{4})`)
	scopePeriodFromFYRe     = regexp.MustCompile(`(?i)period\s+from\s+(\d{4})\s*[-–]\s*(\d{2})\s+to\s+(\d{4})\s*[-–]\s*(\d{2})`)
	scopePeriodYearsRe      = regexp.MustCompile(`(?i)period\s+(\d{4})\s+to\s+(\d{4})|period\s+(\d{4})\s*[-–]\s*(\d{4})`)
	scopeCoveringRe         = regexp.MustCompile(`(?i)covering\s+([A-Za-z]+)\s+(\d{4})\s+to\s+([A-Za-z]+)\s+(\d{4})`)
	scopeYearRangeRe        = regexp.MustCompile(`(?i)(\d{4})\s+to\s+(\d{4})|(\d{4})\s*[-–]\s*(\d{4})`)
	scopeForFYRe            = regexp.MustCompile(`(?i)for\s+(\d{4})\s*[-–]\s*(\d{2})`)
	scopeTheYearFYRe        = regexp.MustCompile(`(?i)(?:the\s+year\s+|year\s+)(\d{4})\s*[-–]\s*(\d{2})`)
)

// periodFromScope extracts the audited period from the Scope of Audit
// narrative.
func periodFromScope(lines []string) (string, string) {
	scope := scopeContent(lines)
	if scope == "" {
		return "", ""
	}
	if m := scopePeriodFromMonthsRe.FindStringSubmatch(scope); m != nil {
		return formatMonthYear(m[1], m[2]), formatMonthYear(m[3], m[4])
	}
	if m := scopeFromMonthsRe.FindStringSubmatch(scope); m != nil {
		return formatMonthYear(m[1], m[2]), formatMonthYear(m[3], m[4])
	}
	if m := scopePeriodFromFYRe.FindStringSubmatch(scope); m != nil {
		return m[1] + "-" + m[2], m[3] + "-" + m[4]
	}
	if m := scopePeriodYearsRe.FindStringSubmatch(scope); m != nil {
		if m[1] != "" {
			return m[1], m[2]
		}
		return m[3], m[4]
	}
	if m := scopeCoveringRe.FindStringSubmatch(scope); m != nil {
		return formatMonthYear(m[1], m[2]), formatMonthYear(m[3], m[4])
	}
	if m := scopeYearRangeRe.FindStringSubmatch(scope); m != nil {
		if m[1] != "" {
			return m[1], m[2]
		}
		return m[3], m[4]
	}
	if m := scopeForFYRe.FindStringSubmatch(scope); m != nil {
		return m[1], expandFinancialYear(m[1], m[2])
	}
	if m := scopeTheYearFYRe.FindStringSubmatch(scope); m != nil {
		return m[1], expandFinancialYear(m[1], m[2])
	}
	return "", ""
}
