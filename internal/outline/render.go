package outline

import (
	"regexp"
	"strings"

	"github.com/sskannan007/UX-CAG/internal/patterns"
)

// Heading-like content lines: subjects, paras, reference numbers and
// observation markers that deserve promotion to level-4 headings.
var headingLikeRes = compileAnchored(
	`^Subject`,
	`^Subject:`,
	`^Para`,
	`^[IVX]+ Subject`,
	`^REFERENCE NUMBER`,
	`^Observation`,
	`^Audit Findings`,
)

// Sequence markers such as "I.", "3)" or "c." that open enumerated items
// under a reference section.
var sequenceRes = compileAnchored(
	`^[IVX]+[\.|\)]`,
	`^[0-9]+[\.|\)]`,
	`^[a-zA-Z][\.|\)]`,
)

var referenceRe = regexp.MustCompile(`(?i)reference`)

func compileAnchored(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		res = append(res, regexp.MustCompile(`(?i)`+e))
	}
	return res
}

func matchesAny(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Render writes the section tree as markdown. Headings render as #-runs of
// their level, except the budget/objective/criteria/scope category headings,
// which always normalize to level 4 with their numbering prefixes stripped.
// Every block is followed by a blank line.
func Render(root *Section) string {
	var sb strings.Builder
	for _, child := range root.Children {
		renderSection(&sb, child, nil)
	}
	return sb.String()
}

func renderSection(sb *strings.Builder, s, parent *Section) {
	if s.Heading != "" {
		if patterns.IsCategoryHeading(s.Heading) {
			sb.WriteString("#### " + patterns.StripPrefixes(s.Heading) + "\n\n")
		} else {
			sb.WriteString(strings.Repeat("#", s.Level) + " " + s.Heading + "\n\n")
		}
	}
	for _, item := range s.Content {
		renderItem(sb, item, parent)
	}
	for _, child := range s.Children {
		renderSection(sb, child, s)
	}
}

// renderItem promotes a content line to a level-4 heading when it is a
// category heading, a bold heading-like line, or an enumerated/heading-like
// line inside a reference-number section. The reference check looks at the
// parent of the section holding the item, so enumerated items of the
// sub-sections under "REFERENCE NUMBER ..." are the ones promoted.
func renderItem(sb *strings.Builder, item Item, parent *Section) {
	text := strings.TrimSpace(item.Text)
	headingLike := matchesAny(headingLikeRes, text)
	sequence := matchesAny(sequenceRes, text)
	category := patterns.IsCategoryHeading(text)

	underReference := parent != nil && parent.Heading != "" && parent.Level == 3 &&
		referenceRe.MatchString(parent.Heading)

	switch {
	case category:
		sb.WriteString("#### " + patterns.StripPrefixes(text) + "\n\n")
	case underReference && (headingLike || sequence || strings.HasPrefix(text, "Subject:")):
		sb.WriteString("#### " + item.Text + "\n\n")
	case item.Bold && headingLike:
		sb.WriteString("#### " + item.Text + "\n\n")
	default:
		sb.WriteString(item.Text + "\n\n")
	}
}
