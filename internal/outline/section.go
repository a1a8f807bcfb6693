// Package outline is the outline builder: it classifies heading candidates,
// groups content under a section tree and renders the tree to markdown with
// embedded HTML tables.
package outline

import (
	"log/slog"
	"strings"

	"github.com/sskannan007/UX-CAG/internal/doctree"
)

// Section is one node of the outline tree. The root section has level 0 and
// no heading; real sections always have a level >= 1.
type Section struct {
	Heading  string
	Level    int
	Content  []Item
	Children []*Section
}

// Item is a block of content attached to a section: a paragraph, a bold
// line, or a rendered HTML table.
type Item struct {
	Text string
	Bold bool
}

// Builder groups a structural tree into sections.
type Builder struct {
	log *slog.Logger
}

func NewBuilder(log *slog.Logger) *Builder {
	return &Builder{log: log}
}

// Build walks the flat node sequence and arranges it into a section tree.
// Heading and bold nodes are heading candidates; the very first candidate
// without leading whitespace is forced to level 1 (the document title). A
// candidate that classifies to level 0 attaches as content instead of
// opening a section, so unrecognized lines can never pop the stack.
func (b *Builder) Build(doc *doctree.Document) *Section {
	root := &Section{}
	stack := []*Section{root}
	titleSeen := false

	for _, n := range doc.Nodes {
		switch n.Kind {
		case doctree.KindHeading, doctree.KindBold:
			text := strings.TrimSpace(n.Text)
			if text == "" {
				continue
			}
			var level int
			if !titleSeen && !startsWithSpace(n.Text) {
				level = 1
				titleSeen = true
			} else {
				level = Classify(text)
			}
			if level == 0 {
				top := stack[len(stack)-1]
				top.Content = append(top.Content, Item{Text: text, Bold: n.Kind == doctree.KindBold})
				continue
			}
			for len(stack) > 1 && stack[len(stack)-1].Level >= level {
				stack = stack[:len(stack)-1]
			}
			sec := &Section{Heading: text, Level: level}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, sec)
			stack = append(stack, sec)
			b.log.Debug("opened section", "heading", text, "level", level)

		case doctree.KindParagraph:
			text := strings.TrimSpace(n.Text)
			if text == "" {
				continue
			}
			top := stack[len(stack)-1]
			top.Content = append(top.Content, Item{Text: text})

		case doctree.KindTable:
			top := stack[len(stack)-1]
			top.Content = append(top.Content, Item{Text: TableHTML(n.Table)})
		}
	}
	return root
}

func startsWithSpace(s string) bool {
	return s != "" && (s[0] == ' ' || s[0] == '\t')
}
