package extract

import (
	"regexp"
	"strings"

	"github.com/sskannan007/UX-CAG/internal/patterns"
)

var (
	numberedSectionRe = regexp.MustCompile(`^\s*\d+\.\d+`)
	criteriaStopRe    = regexp.MustCompile(`(?i)Audit\s+Criteria`)
)

// budgetFromPartOne collects the paragraphs and tables under a budget or
// financial-performance heading inside Part I.
func budgetFromPartOne(lines []string) []ContentItem {
	return narrativeFromPartOne(lines, patterns.Budget, true, nil)
}

// objectiveFromPartOne collects the paragraphs under an audit-objective
// heading inside Part I. Tables are skipped and the scan stops at the
// criteria heading, which often follows without an intervening section
// marker.
func objectiveFromPartOne(lines []string) []ContentItem {
	return narrativeFromPartOne(lines, patterns.Objective, false, criteriaStopRe)
}

// criteriaFromPartOne collects the paragraphs under an audit-criteria
// heading inside Part I.
func criteriaFromPartOne(lines []string) []ContentItem {
	return narrativeFromPartOne(lines, patterns.Criteria, false, nil)
}

func narrativeFromPartOne(lines []string, family []*regexp.Regexp, includeTables bool, stop *regexp.Regexp) []ContentItem {
	start, end := partOneBounds(lines)
	if start < 0 {
		return nil
	}

	var content []ContentItem
	i := start
	for i < end {
		line := strings.TrimSpace(lines[i])
		if !patterns.MatchesAny(family, headingText(line)) {
			i++
			continue
		}

		// Heading found: consume the block below it.
		i++
		for i < end {
			cl := strings.TrimSpace(lines[i])
			if strings.HasPrefix(cl, "#### ") || strings.HasPrefix(cl, "### ") ||
				strings.HasPrefix(cl, "## ") || numberedSectionRe.MatchString(cl) {
				break
			}
			if stop != nil && stop.MatchString(cl) {
				break
			}
			if cl == "" {
				i++
				continue
			}

			switch {
			case strings.Contains(cl, "<table>"):
				block, next := captureHTMLTable(lines, i, end)
				if includeTables {
					content = append(content, tableItem(block))
				}
				i = next
			case strings.Contains(cl, "|"):
				var tableLines []string
				for i < end && strings.Contains(lines[i], "|") {
					tableLines = append(tableLines, lines[i])
					i++
				}
				if includeTables && len(tableLines) > 0 {
					content = append(content, tableItem(blockToHTML(tableLines)))
				}
			default:
				content = append(content, paragraph(cl))
				i++
			}
		}
	}
	return content
}

// headingText strips markdown heading markers so the pattern families match
// both "#### Financial Performance" and bare numbered headings.
func headingText(line string) string {
	switch {
	case strings.HasPrefix(line, "#### "):
		return strings.TrimSpace(line[5:])
	case strings.HasPrefix(line, "###"):
		return strings.TrimSpace(line[3:])
	case strings.HasPrefix(line, "##"):
		return strings.TrimSpace(line[2:])
	}
	return line
}

// captureHTMLTable collects a possibly multi-line HTML table block starting
// at index i, balancing nested <table> tags, and returns the joined block
// (newlines removed) plus the index of the first line after it.
func captureHTMLTable(lines []string, i, end int) (string, int) {
	var block []string
	opens := strings.Count(lines[i], "<table>")
	closes := strings.Count(lines[i], "</table>")
	block = append(block, lines[i])
	i++
	for i < end && (opens == 0 || opens != closes) {
		opens += strings.Count(lines[i], "<table>")
		closes += strings.Count(lines[i], "</table>")
		block = append(block, lines[i])
		i++
	}
	return strings.ReplaceAll(strings.Join(block, ""), "\n", ""), i
}
