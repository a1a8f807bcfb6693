package extract

import (
	"regexp"
	"strings"

	"github.com/sskannan007/UX-CAG/internal/patterns"
)

// Part span detection. Distinguishing "PART I" from "PART II"/"PART III"
// needs word boundaries, not substring checks.
var (
	partOneStartRe = regexp.MustCompile(`##?\s*part[-\s]?(i|1)\b`)
	partOneEndRe   = regexp.MustCompile(`##?\s*part[-\s]?(ii|2|iii|3)\b`)
)

// documentHeading returns the first heading line, whatever its level, and
// its line index, or ("", -1) when the document has none.
func documentHeading(lines []string) (string, int) {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#")), i
		}
	}
	return "", -1
}

// partOneText collects the Part I span as one space-joined string: every
// non-empty line between the PART I heading and the next PART II/III
// heading. This is the restricted search zone for the metadata resolvers.
func partOneText(lines []string) string {
	var b strings.Builder
	inside := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		switch {
		case partOneStartRe.MatchString(lower):
			inside = true
		case inside && partOneEndRe.MatchString(lower):
			inside = false
		case inside:
			b.WriteString(" ")
			b.WriteString(trimmed)
		}
	}
	return strings.TrimSpace(b.String())
}

// partHeadingIndex finds the first markdown heading line whose text names
// the given part token ("i"/"1", "v"/"5"). The exclude token guards against
// longer numerals ("iv" when scanning for "v").
func partHeadingIndex(lines []string, tokens []string, exclude string) int {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") {
			continue
		}
		lower := strings.ToLower(trimmed)
		if !strings.Contains(lower, "part") {
			continue
		}
		if exclude != "" && strings.Contains(lower, exclude) {
			continue
		}
		for _, tok := range tokens {
			if strings.Contains(lower, tok) {
				return i
			}
		}
	}
	return -1
}

// partOneBounds returns the [start, end) line range of Part I for narrative
// extraction: start is the "## ...part i" heading, end is the "## ...part
// ii" heading or the document end. Returns (-1, -1) when Part I is absent.
func partOneBounds(lines []string) (int, int) {
	start, end := -1, -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "##") {
			continue
		}
		lower := strings.ToLower(trimmed)
		if !strings.Contains(lower, "part") {
			continue
		}
		if start < 0 {
			if (strings.Contains(lower, "i") && !strings.Contains(lower, "ii")) ||
				(strings.Contains(trimmed, "1") && !strings.Contains(trimmed, "2")) {
				start = i
			}
			continue
		}
		if strings.Contains(lower, "ii") || strings.Contains(trimmed, "2") {
			end = i
			break
		}
	}
	if start < 0 {
		return -1, -1
	}
	if end < 0 {
		end = len(lines)
	}
	return start, end
}

var hashPrefixRe = regexp.MustCompile(`^#{4,}\s*`)

// scopeContent finds the Scope of Audit section and returns its first
// paragraph block (up to 15 lines, stopping at the next heading) as one
// space-joined string.
func scopeContent(lines []string) string {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !isScopeHeading(trimmed) {
			continue
		}
		var scope []string
		for j := i + 1; j < len(lines) && j < i+16; j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" {
				continue
			}
			if strings.HasPrefix(next, "#") {
				break
			}
			scope = append(scope, next)
		}
		return strings.Join(scope, " ")
	}
	return ""
}

func isScopeHeading(trimmed string) bool {
	candidate := trimmed
	if strings.HasPrefix(trimmed, "####") {
		candidate = strings.TrimSpace(hashPrefixRe.ReplaceAllString(trimmed, ""))
	}
	if patterns.MatchesAny(patterns.Scope, candidate) {
		return true
	}
	lower := strings.ToLower(trimmed)
	return strings.Contains(lower, "scope of audit") ||
		strings.Contains(lower, "audit scope") ||
		strings.Contains(lower, "scope and methodology")
}
