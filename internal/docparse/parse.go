// Package docparse is the structure extractor: it turns a .docx file into the
// flat doctree.Document the outline builder consumes. Block order follows the
// document body; merged table cells are resolved to anchor cells with
// explicit spans.
package docparse

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/sskannan007/UX-CAG/internal/doctree"
	"github.com/sskannan007/UX-CAG/internal/patterns"
)

// Extractor converts .docx files into structural trees.
type Extractor struct {
	log *slog.Logger
}

func NewExtractor(log *slog.Logger) *Extractor {
	return &Extractor{log: log}
}

var headingStyle = regexp.MustCompile(`(?i)^heading\s*(\d+)`)

// headingLevel maps a paragraph style ID to a declared heading level, or 0
// for body styles. Both "Heading3" style IDs and "heading 3" style names are
// accepted.
func headingLevel(style string) int {
	m := headingStyle.FindStringSubmatch(style)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// extract decodes word/document.xml and classifies every body block.
func (e *Extractor) extract(path string) (*doctree.Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx archive: %w", err)
	}
	defer zr.Close()

	var docXML *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML = f
			break
		}
	}
	if docXML == nil {
		return nil, fmt.Errorf("docx %s: no word/document.xml", path)
	}

	rc, err := docXML.Open()
	if err != nil {
		return nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	var parsed documentXML
	if err := xml.NewDecoder(rc).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode document.xml: %w", err)
	}

	doc := &doctree.Document{Name: filepath.Base(path)}
	for _, block := range parsed.Body.Blocks {
		switch {
		case block.Para != nil:
			if n := e.classifyParagraph(block.Para); n != nil {
				doc.Nodes = append(doc.Nodes, n)
			}
		case block.Table != nil:
			doc.Nodes = append(doc.Nodes, &doctree.Node{
				Kind:  doctree.KindTable,
				Table: e.resolveTable(block.Table),
			})
		}
	}
	return doc, nil
}

// classifyParagraph decides heading / bold / paragraph for one body
// paragraph. Headings keep their declared style level. The special category
// patterns (budget, objective, criteria) force bold regardless of run
// formatting so the outline builder can pick them up as category headings.
func (e *Extractor) classifyParagraph(p *paragraphXML) *doctree.Node {
	text := p.text()
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if lvl := headingLevel(p.styleID()); lvl > 0 {
		return &doctree.Node{Kind: doctree.KindHeading, Level: lvl, Text: text}
	}
	if patterns.IsSpecialHeading(strings.TrimSpace(text)) {
		return &doctree.Node{Kind: doctree.KindBold, Text: text}
	}
	if p.allRunsBold() {
		return &doctree.Node{Kind: doctree.KindBold, Text: text}
	}
	return &doctree.Node{Kind: doctree.KindParagraph, Text: text}
}
