// Package extract turns the outline builder's markdown into the final JSON
// document: a metadata record resolved from restricted search zones plus a
// parts/sections/sub-sections content tree.
package extract

import (
	"log/slog"
	"strings"
)

// Extractor runs stage 3 for one markdown document at a time.
type Extractor struct {
	log *slog.Logger
	gaz *Gazetteer
}

func NewExtractor(gaz *Gazetteer, log *slog.Logger) *Extractor {
	return &Extractor{log: log, gaz: gaz}
}

// Process extracts the structured result from a rendered markdown document.
// name is the document identifier (input file stem); it becomes
// document_name unless an explicit "Document Name:" line overrides it.
func (e *Extractor) Process(name string, markdown []byte) *Result {
	lines := strings.Split(string(markdown), "\n")

	metadata := e.extractMetadata(lines)
	if metadata.DocumentName == "" {
		metadata.DocumentName = name
	}

	heading, headingIdx := documentHeading(lines)

	// Audited period cascade: heading patterns, then labeled lines below
	// the heading, then the scope narrative.
	if from, to := periodFromHeading(heading); from != "" {
		metadata.PeriodOfAudit.PeriodFrom = strptr(from)
		if to != "" {
			metadata.PeriodOfAudit.PeriodTo = strptr(to)
		} else {
			metadata.PeriodOfAudit.PeriodTo = strptr(from)
		}
	}
	if metadata.PeriodOfAudit.PeriodFrom == nil {
		if from, to := periodBelowHeading(lines, headingIdx); from != "" && to != "" {
			metadata.PeriodOfAudit.PeriodFrom = strptr(from)
			metadata.PeriodOfAudit.PeriodTo = strptr(to)
		}
	}
	if metadata.PeriodOfAudit.PeriodFrom == nil {
		if from, to := periodFromScope(lines); from != "" && to != "" {
			metadata.PeriodOfAudit.PeriodFrom = strptr(from)
			metadata.PeriodOfAudit.PeriodTo = strptr(to)
		}
	}

	if from, to := datesOfAudit(lines); from != "" {
		metadata.DateOfAudit.PeriodFrom = strptr(from)
		if to != "" {
			metadata.DateOfAudit.PeriodTo = strptr(to)
		} else {
			metadata.DateOfAudit.PeriodTo = strptr(from)
		}
	}

	if officers := extractAuditOfficers(lines); len(officers) > 0 {
		metadata.AuditOfficers = officers
	}
	if officers := extractAuditeeOfficers(lines); len(officers) > 0 {
		metadata.AuditeeOfficers = officers
	}

	result := &Result{
		Metadata: metadata,
		Parts:    buildParts(lines),
	}

	e.log.Debug("document extracted",
		"document", metadata.DocumentName,
		"parts", len(result.Parts),
		"audit_officers", len(metadata.AuditOfficers),
		"auditee_officers", len(metadata.AuditeeOfficers))
	return result
}

// buildParts walks the markdown lines and assembles the content tree:
// "## " opens a part, "### " a section, "#### " a sub-section; tables and
// paragraphs attach to the innermost open container, with "General"
// placeholders synthesized when content precedes its heading.
func buildParts(lines []string) []*Part {
	parts := []*Part{}
	var currentPart *Part
	var currentSection *Section
	var currentSub *SubSection

	appendItem := func(item ContentItem) {
		switch {
		case currentSub != nil:
			currentSub.Content = append(currentSub.Content, item)
		case currentSection != nil:
			currentSection.Content = append(currentSection.Content, item)
		case currentPart != nil:
			if len(currentPart.Sections) == 0 {
				currentPart.Sections = append(currentPart.Sections, generalSection())
			}
			last := currentPart.Sections[len(currentPart.Sections)-1]
			last.Content = append(last.Content, item)
		default:
			currentPart = &Part{Title: "General", Sections: []*Section{}}
			parts = append(parts, currentPart)
			currentSection = generalSection()
			currentPart.Sections = append(currentPart.Sections, currentSection)
			currentSection.Content = append(currentSection.Content, item)
		}
	}

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		if strings.Contains(line, "<table>") {
			block, next := captureHTMLTable(lines, i, len(lines))
			// A table before any heading has no container and is dropped;
			// only paragraphs synthesize the General placeholder part.
			if currentPart != nil || currentSection != nil || currentSub != nil {
				appendItem(tableItem(block))
			}
			i = next
			continue
		}

		switch {
		case strings.HasPrefix(line, "# ") && !strings.HasPrefix(line, "## "):
			// Document heading, already captured in metadata.
			i++
		case strings.HasPrefix(line, "## ") && !strings.HasPrefix(line, "### "):
			currentPart = &Part{Title: strings.TrimSpace(line[3:]), Sections: []*Section{}}
			parts = append(parts, currentPart)
			currentSection = nil
			currentSub = nil
			i++
		case strings.HasPrefix(line, "### ") && !strings.HasPrefix(line, "#### "):
			if currentPart == nil {
				currentPart = &Part{Title: "General", Sections: []*Section{}}
				parts = append(parts, currentPart)
			}
			currentSection = &Section{
				Title:       strings.TrimSpace(line[4:]),
				Content:     []ContentItem{},
				SubSections: []SubSection{},
			}
			currentPart.Sections = append(currentPart.Sections, currentSection)
			currentSub = nil
			i++
		case strings.HasPrefix(line, "#### "):
			if currentSection == nil {
				if currentPart == nil {
					currentPart = &Part{Title: "General", Sections: []*Section{}}
					parts = append(parts, currentPart)
				}
				currentSection = generalSection()
				currentPart.Sections = append(currentPart.Sections, currentSection)
			}
			currentSection.SubSections = append(currentSection.SubSections, SubSection{
				Title:   strings.TrimSpace(line[5:]),
				Content: []ContentItem{},
			})
			currentSub = &currentSection.SubSections[len(currentSection.SubSections)-1]
			i++
		case strings.Contains(line, "|"):
			var tableLines []string
			for i < len(lines) && strings.Contains(lines[i], "|") {
				tableLines = append(tableLines, lines[i])
				i++
			}
			if len(tableLines) > 0 &&
				(currentPart != nil || currentSection != nil || currentSub != nil) {
				appendItem(tableItem(blockToHTML(tableLines)))
			}
		default:
			appendItem(paragraph(line))
			i++
		}
	}
	return parts
}

func generalSection() *Section {
	return &Section{
		Title:       "General",
		Content:     []ContentItem{},
		SubSections: []SubSection{},
	}
}
