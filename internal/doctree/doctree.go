// Package doctree defines the intermediate structural tree produced by the
// structure extractor and consumed by the outline builder.
package doctree

import (
	"encoding/xml"
	"strconv"
)

// NodeKind classifies a block-level node.
type NodeKind string

const (
	KindHeading   NodeKind = "heading"
	KindBold      NodeKind = "bold"
	KindParagraph NodeKind = "paragraph"
	KindTable     NodeKind = "table"
)

// Document is the flat, ordered sequence of block nodes extracted from one
// source file.
type Document struct {
	Name  string // Source file base name
	Nodes []*Node
}

// Node is a single block: a heading with its declared level, a bold or plain
// paragraph, or a table grid.
type Node struct {
	Kind  NodeKind
	Level int    // Heading level as declared in the source style (headings only)
	Text  string // Paragraph/heading/bold text (empty for tables)
	Table *Table // Non-nil only when Kind == KindTable
}

// Table is a fully resolved grid: every merged region is represented once, at
// its anchor cell, with explicit spans.
type Table struct {
	Rows []*Row
}

// Row is one grid row. Rows may be ragged when the source row ended early.
type Row struct {
	Cells []*Cell
}

// Cell is an anchor cell of the grid. RowSpan and ColSpan are always >= 1.
type Cell struct {
	Text    string
	RowSpan int
	ColSpan int
	Tables  []*Table // Tables nested inside this cell, in order
}

// MarshalXML writes the document in the intermediate artifact shape:
//
//	<document name="...">
//	  <heading level="2">PART I</heading>
//	  <bold>Audit Objectives</bold>
//	  <paragraph>...</paragraph>
//	  <table><row><cell colspan="2">...</cell></row></table>
//	</document>
func (d *Document) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "document"}}
	if d.Name != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "name"}, Value: d.Name})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, n := range d.Nodes {
		if err := n.encode(e); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (n *Node) encode(e *xml.Encoder) error {
	switch n.Kind {
	case KindTable:
		return n.Table.encode(e)
	case KindHeading:
		start := xml.StartElement{Name: xml.Name{Local: "heading"}}
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "level"}, Value: strconv.Itoa(n.Level)})
		return encodeText(e, start, n.Text)
	case KindBold:
		return encodeText(e, xml.StartElement{Name: xml.Name{Local: "bold"}}, n.Text)
	default:
		return encodeText(e, xml.StartElement{Name: xml.Name{Local: "paragraph"}}, n.Text)
	}
}

func (t *Table) encode(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: "table"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, r := range t.Rows {
		rowStart := xml.StartElement{Name: xml.Name{Local: "row"}}
		if err := e.EncodeToken(rowStart); err != nil {
			return err
		}
		for _, c := range r.Cells {
			if err := c.encode(e); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(rowStart.End()); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (c *Cell) encode(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: "cell"}}
	if c.RowSpan > 1 {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "rowspan"}, Value: strconv.Itoa(c.RowSpan)})
	}
	if c.ColSpan > 1 {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "colspan"}, Value: strconv.Itoa(c.ColSpan)})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if c.Text != "" {
		if err := e.EncodeToken(xml.CharData(c.Text)); err != nil {
			return err
		}
	}
	for _, t := range c.Tables {
		if err := t.encode(e); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func encodeText(e *xml.Encoder, start xml.StartElement, text string) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if text != "" {
		if err := e.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}
