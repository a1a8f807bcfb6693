// Package patterns holds the regex families shared by the structure
// extractor, the outline renderer and the metadata extractor. Keeping them in
// one place guarantees the three stages agree on what counts as a budget,
// objective, criteria or scope line.
package patterns

import (
	"regexp"
	"strings"
)

// Budget covers the financial-performance heading variants, including
// numbered ("3.2 Financial Performance:") and lettered ("c) Budget ...")
// prefixes.
var Budget = compileAll(
	`BUDGET\s*/?\s*FINANCIAL\s+PERFORMANCE`,
	`FINANCIAL\s+PERFORMANCE`,
	`BUDGET\s+PERFORMANCE`,
	`BUDGET\s+AND\s+FINANCIAL\s+PERFORMANCE`,
	`c\)\s*Budget\s+and\s+Financial\s+Performance`,
	`^\s*c\)\s*Budget`,
	`Financial\s+Performance:`,
	`Budget\s+and\s+Financial\s+Performance:`,
	`Budget\s+allocation\s+for\s+the\s+audit\s+period:`,
	`^\s*Financial\s+Performance\s*:`,
	`^\s*Budget\s+and\s+Financial\s+Performance\s*:`,
	`^\s*Budget\s+allocation\s+for\s+the\s+audit\s+period\s*:`,
	`^\s*\d+\.\d+\s+Financial\s+Performance\s*:`,
	`^\s*\d+\.\d+\s*\t+Financial\s+Performance\s*:`,
	`\d+\.\d+\s*Financial\s+Performance:`,
	`\d+\.\d+\s*\t+Financial\s+Performance:`,
	`\d+\.\d+\s+Financial\s+Performance:`,
	`Financial\s+Performance`,
	`\d+\.\d+.*Financial\s+Performance`,
)

var Objective = compileAll(
	`Audit\s+objectives`,
	`AUDIT\s+OBJECTIVE`,
	`Audit\s+objective`,
	`AUDIT\s+OBJECTIVE:`,
	`Audit\s+Objective:`,
	`\d+\.\d+\s+Audit\s+objectives:`,
	`Audit\s+objectives:`,
)

var Criteria = compileAll(
	`Audit\s+Criteria`,
	`AUDIT\s+CRITERIA`,
	`Audit\s+criteria:`,
	`Audit\s+criteria`,
)

var Scope = compileAll(
	`Scope\s+of\s+Audit`,
	`SCOPE\s+OF\s+AUDIT`,
	`Scope\s+and\s+Methodology\s+of\s+Audit`,
	`SCOPE\s+AND\s+METHODOLOGY\s+OF\s+AUDIT`,
	`Scope\s+of\s+Audit:`,
	`SCOPE\s+OF\s+AUDIT:`,
	`Audit\s+Scope`,
	`AUDIT\s+SCOPE`,
)

var (
	numberPrefix = regexp.MustCompile(`^\s*\d+\.\d+\s*\t*\s*`)
	letterPrefix = regexp.MustCompile(`^\s*[a-z]\)\s*`)
)

func compileAll(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		res = append(res, regexp.MustCompile(`(?i)`+e))
	}
	return res
}

// MatchesAny reports whether any pattern in the family matches the text.
func MatchesAny(family []*regexp.Regexp, text string) bool {
	for _, re := range family {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// IsSpecialHeading reports whether the line belongs to the budget, objective
// or criteria family. The structure extractor forces such paragraphs to bold
// so the outline builder treats them as category headings.
func IsSpecialHeading(text string) bool {
	return MatchesAny(Budget, text) || MatchesAny(Objective, text) || MatchesAny(Criteria, text)
}

// IsCategoryHeading additionally admits the scope family. The outline
// renderer normalizes any such line to a level-4 heading.
func IsCategoryHeading(text string) bool {
	return IsSpecialHeading(text) || MatchesAny(Scope, text)
}

// StripPrefixes removes "1.2"-style and "c)"-style numbering from a category
// heading before it is rendered.
func StripPrefixes(text string) string {
	text = numberPrefix.ReplaceAllString(text, "")
	text = letterPrefix.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
