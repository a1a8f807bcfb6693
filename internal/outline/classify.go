package outline

import (
	"regexp"
	"strings"
)

// headingRule pairs a pattern anchored at the start of the trimmed line with
// the outline level it assigns. Rules are evaluated in order and the first
// match wins; a line matching nothing stays at level 0 and is treated as
// content rather than a heading.
type headingRule struct {
	re    *regexp.Regexp
	level int
}

var headingRules = []headingRule{
	// Document title.
	{regexp.MustCompile(`(?i)^INSPECTION REPORT`), 1},

	// PART divisions, with roman or arabic numerals, dashes and colons.
	{regexp.MustCompile(`(?i)^PART[\s\-]*[IVX]+`), 2},
	{regexp.MustCompile(`(?i)^Part[\s\-]*\d+`), 2},
	{regexp.MustCompile(`(?i)^Part[\s\-]*[IVX]*\s*:`), 2},
	{regexp.MustCompile(`(?i)^PART(\s|\-|–|—)*([IVX]+)?(\s|\-|–|—)*[A-Z]?\b`), 2},

	// Named sections that sit directly under a PART.
	{regexp.MustCompile(`(?i)^Introductory$`), 3},
	{regexp.MustCompile(`(?i)^Budget and Expenditure$`), 3},
	{regexp.MustCompile(`(?i)^Revenue Receipt$`), 3},
	{regexp.MustCompile(`(?i)^Organisational set up$`), 3},
	{regexp.MustCompile(`(?i)^Scope of Audit$`), 3},
	{regexp.MustCompile(`(?i)^Scope and Methodology of Audit$`), 3},
	{regexp.MustCompile(`(?i)^Scope of Audit:$`), 3},
	{regexp.MustCompile(`(?i)^Audit Scope$`), 3},
	{regexp.MustCompile(`(?i)^Sampling$`), 3},
	{regexp.MustCompile(`(?i)^Audit Objectives$`), 3},
	{regexp.MustCompile(`(?i)^Criteria$`), 3},
	{regexp.MustCompile(`(?i)^Audit Mandate$`), 3},
	{regexp.MustCompile(`(?i)^Best Practice`), 3},
	{regexp.MustCompile(`(?i)^Acknowledgement`), 3},
	{regexp.MustCompile(`(?i)^Review of old outstanding paras`), 3},
	{regexp.MustCompile(`(?i)^Introduction$`), 3},

	// Reference numbers and grouped audit findings.
	{regexp.MustCompile(`(?i)^REFERENCE NUMBER`), 3},
	{regexp.MustCompile(`(?i)^\(.*Audit Findings\)`), 3},
	{regexp.MustCompile(`^A[:\s]|^B[:\s]`), 3},
	{regexp.MustCompile(`^A\s*(I|II|III)[:\s]|^B\s*(I|II)[:\s]`), 3},

	// Individual paras and subject lines.
	{regexp.MustCompile(`^Para \d+`), 4},
	{regexp.MustCompile(`(?i)^[IVX]+\s+Subject`), 4},
	{regexp.MustCompile(`^Subject:`), 4},
	{regexp.MustCompile(`(?i)^Subject\s+`), 4},

	// Follow-up blocks and parenthesized sub-headings.
	{regexp.MustCompile(`(?i)^\(Follow up`), 3},
	{regexp.MustCompile(`^\([^)]+\)$`), 3},
}

// Classify assigns an outline level to a heading candidate. Level 0 means
// the line is not a recognized heading.
func Classify(text string) int {
	t := strings.TrimSpace(text)
	for _, rule := range headingRules {
		if rule.re.MatchString(t) {
			return rule.level
		}
	}
	return 0
}
