package extract

import (
	"regexp"
	"strings"
)

const dayDate = `(\d{1,2}[/.-]\d{1,2}[/.-]\d{4})`

// Part I first-paragraph patterns: the opening sentence of most reports
// states when the inspection was conducted.
var (
	conductedFromRe        = regexp.MustCompile(`(?i)conducted from\s+` + dayDate + `\s+to\s+` + dayDate)
	auditConductedFromRe   = regexp.MustCompile(`(?i)audit.*?conducted from\s+` + dayDate + `\s+to\s+` + dayDate)
	membersRangeRe         = regexp.MustCompile(`(?i)from\s+` + dayDate + `\s+to\s+` + dayDate + `.*?members`)
	inspectionConductedRe  = regexp.MustCompile(`(?i)inspection.*?conducted from\s+` + dayDate + `\s+to\s+` + dayDate)
	bareDateRangeRe        = regexp.MustCompile(`(?i)` + dayDate + `\s+to\s+` + dayDate)
	labeledDatesOfAuditRe  = regexp.MustCompile(`(?i)dates?\s+of\s+audit\s*:\s*(\d{1,2}[./]\d{1,2}[./]\d{4})\s+to\s+(\d{1,2}[./]\d{1,2}[./]\d{4})`)
	labeledAuditDateRe     = regexp.MustCompile(`(?i)audit\s+date\s*:\s*(\d{1,2}[./]\d{1,2}[./]\d{4})\s+to\s+(\d{1,2}[./]\d{1,2}[./]\d{4})`)
	labeledInspectionRe    = regexp.MustCompile(`(?i)inspection\s+date\s*:\s*(\d{1,2}[./]\d{1,2}[./]\d{4})\s+to\s+(\d{1,2}[./]\d{1,2}[./]\d{4})`)
	scopeFromDatesRe       = regexp.MustCompile(`(?i)from\s+` + dayDate + `\s+to\s+` + dayDate)
	scopeConductedDatesRe  = regexp.MustCompile(`(?i)conducted from\s+` + dayDate + `\s+to\s+` + dayDate)
	scopeBareDatesRangeRe  = regexp.MustCompile(`(?i)` + dayDate + `\s+to\s+` + dayDate)
	auditContextKeywordsRe = regexp.MustCompile(`(?i)audit|inspection|conducted`)
)

// datesOfAudit extracts the calendar dates the audit took place: first from
// the opening paragraph of Part I, then from labeled "DATES OF AUDIT" lines
// anywhere, then from the Scope of Audit narrative.
func datesOfAudit(lines []string) (string, string) {
	if from, to := datesFromPartOne(lines); from != "" {
		return from, to
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if m := labeledDatesOfAuditRe.FindStringSubmatch(trimmed); m != nil {
			return m[1], m[2]
		}
		if m := labeledAuditDateRe.FindStringSubmatch(trimmed); m != nil {
			return m[1], m[2]
		}
		if m := labeledInspectionRe.FindStringSubmatch(trimmed); m != nil {
			return m[1], m[2]
		}
	}
	return datesFromScope(lines)
}

func datesFromPartOne(lines []string) (string, string) {
	start := partHeadingIndex(lines, []string{"i", "1"}, "")
	if start < 0 {
		return "", ""
	}
	for j := start + 1; j < len(lines) && j < start+10; j++ {
		para := strings.TrimSpace(lines[j])
		if para == "" || strings.HasPrefix(para, "#") {
			continue
		}
		if m := conductedFromRe.FindStringSubmatch(para); m != nil {
			return m[1], m[2]
		}
		if m := auditConductedFromRe.FindStringSubmatch(para); m != nil {
			return m[1], m[2]
		}
		if m := membersRangeRe.FindStringSubmatch(para); m != nil {
			return m[1], m[2]
		}
		if m := inspectionConductedRe.FindStringSubmatch(para); m != nil {
			return m[1], m[2]
		}
		if auditContextKeywordsRe.MatchString(para) {
			if m := bareDateRangeRe.FindStringSubmatch(para); m != nil {
				return m[1], m[2]
			}
		}
		// The inspection sentence sits in the first real paragraph; stop
		// once we have seen one.
		if len(para) > 50 {
			break
		}
	}
	return "", ""
}

func datesFromScope(lines []string) (string, string) {
	scope := scopeContent(lines)
	if scope == "" {
		return "", ""
	}
	if m := scopeConductedDatesRe.FindStringSubmatch(scope); m != nil {
		return m[1], m[2]
	}
	if m := scopeFromDatesRe.FindStringSubmatch(scope); m != nil {
		return m[1], m[2]
	}
	if m := scopeBareDatesRangeRe.FindStringSubmatch(scope); m != nil {
		return m[1], m[2]
	}
	return "", ""
}
