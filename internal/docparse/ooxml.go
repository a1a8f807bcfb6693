package docparse

import (
	"encoding/xml"
	"strings"
)

// Minimal decode types for word/document.xml. Field tags carry no namespace
// so they match the w: elements by local name. Only the properties the
// structure extractor needs are mapped; everything else is skipped.

type documentXML struct {
	Body bodyXML `xml:"body"`
}

// bodyXML preserves document order across mixed w:p and w:tbl children,
// which plain struct tags cannot do.
type bodyXML struct {
	Blocks []blockXML
}

type blockXML struct {
	Para  *paragraphXML
	Table *tableXML
}

func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				b.Blocks = append(b.Blocks, blockXML{Para: &p})
			case "tbl":
				var tbl tableXML
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				b.Blocks = append(b.Blocks, blockXML{Table: &tbl})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

type paragraphXML struct {
	Props *paraPropsXML `xml:"pPr"`
	Runs  []runXML      `xml:"r"`
}

// text concatenates the run texts without trimming; leading whitespace is
// significant to the outline builder's title detection.
func (p *paragraphXML) text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Texts {
			sb.WriteString(t)
		}
	}
	return sb.String()
}

// allRunsBold reports whether every run with visible text is bold. Paragraphs
// without any visible text are never bold.
func (p *paragraphXML) allRunsBold() bool {
	seen := false
	for _, r := range p.Runs {
		visible := false
		for _, t := range r.Texts {
			if strings.TrimSpace(t) != "" {
				visible = true
				break
			}
		}
		if !visible {
			continue
		}
		seen = true
		if !r.bold() {
			return false
		}
	}
	return seen
}

type paraPropsXML struct {
	Style *valXML `xml:"pStyle"`
}

func (p *paragraphXML) styleID() string {
	if p.Props == nil || p.Props.Style == nil {
		return ""
	}
	return p.Props.Style.Val
}

type runXML struct {
	Props *runPropsXML `xml:"rPr"`
	Texts []string     `xml:"t"`
}

func (r *runXML) bold() bool {
	if r.Props == nil || r.Props.Bold == nil {
		return false
	}
	switch strings.ToLower(r.Props.Bold.Val) {
	case "0", "false", "none", "off":
		return false
	}
	return true
}

type runPropsXML struct {
	Bold *valXML `xml:"b"`
}

type valXML struct {
	Val string `xml:"val,attr"`
}

type tableXML struct {
	Grid tblGridXML `xml:"tblGrid"`
	Rows []rowXML   `xml:"tr"`
}

// tblGridXML only needs the column count, so the gridCol elements decode to
// empty structs.
type tblGridXML struct {
	Cols []struct{} `xml:"gridCol"`
}

type rowXML struct {
	Cells []cellXML `xml:"tc"`
}

// cellXML needs a custom unmarshal for the same reason as bodyXML: a cell's
// paragraphs and nested tables must stay in document order.
type cellXML struct {
	Props  *cellPropsXML
	Blocks []blockXML
}

func (c *cellXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tcPr":
				var props cellPropsXML
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				c.Props = &props
			case "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				c.Blocks = append(c.Blocks, blockXML{Para: &p})
			case "tbl":
				var tbl tableXML
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				c.Blocks = append(c.Blocks, blockXML{Table: &tbl})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

type cellPropsXML struct {
	GridSpan *valXML    `xml:"gridSpan"`
	VMerge   *vMergeXML `xml:"vMerge"`
}

// vMergeXML distinguishes a bare <w:vMerge/> (continuation of the merge
// above) from an explicit w:val attribute.
type vMergeXML struct {
	Val    string `xml:"val,attr"`
	HasVal bool   `xml:"-"`
}

func (v *vMergeXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Local == "val" {
			v.Val = a.Value
			v.HasVal = true
		}
	}
	return d.Skip()
}

func (c *cellXML) gridSpanVal() string {
	if c.Props == nil || c.Props.GridSpan == nil {
		return ""
	}
	return c.Props.GridSpan.Val
}

// mergeRestart reports whether the cell opens a vertical merge.
func (c *cellXML) mergeRestart() bool {
	return c.Props != nil && c.Props.VMerge != nil && c.Props.VMerge.Val == "restart"
}

// mergeContinue reports whether the cell continues the merge opened above it.
// Word writes continuation cells as a bare <w:vMerge/> with no value.
func (c *cellXML) mergeContinue() bool {
	return c.Props != nil && c.Props.VMerge != nil && !c.Props.VMerge.HasVal
}
