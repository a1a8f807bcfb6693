package docparse

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sskannan007/UX-CAG/internal/doctree"
)

func testExtractor() *Extractor {
	return NewExtractor(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		style string
		want  int
	}{
		{"Heading1", 1},
		{"Heading3", 3},
		{"heading 2", 2},
		{"HEADING 4", 4},
		{"Title", 0},
		{"Normal", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := headingLevel(tt.style); got != tt.want {
			t.Errorf("headingLevel(%q) = %d, want %d", tt.style, got, tt.want)
		}
	}
}

// writeDocx writes a minimal .docx package containing only the given
// word/document.xml body content.
func writeDocx(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create docx: %v", err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body + `</w:body></w:document>`
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func para(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

func TestExtractClassifiesBlocks(t *testing.T) {
	body := `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>INSPECTION REPORT ON THE ACCOUNTS</w:t></w:r></w:p>` +
		`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>PART I</w:t></w:r></w:p>` +
		para("3.2 Financial Performance:") +
		para("The office is headed by the Tahsildar.") +
		`<w:p><w:r><w:t> </w:t></w:r></w:p>`

	doc, err := testExtractor().extract(writeDocx(t, body))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	want := []struct {
		kind  doctree.NodeKind
		level int
		text  string
	}{
		{doctree.KindHeading, 1, "INSPECTION REPORT ON THE ACCOUNTS"},
		{doctree.KindBold, 0, "PART I"},
		{doctree.KindBold, 0, "3.2 Financial Performance:"},
		{doctree.KindParagraph, 0, "The office is headed by the Tahsildar."},
	}
	if len(doc.Nodes) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(doc.Nodes), len(want))
	}
	for i, w := range want {
		n := doc.Nodes[i]
		if n.Kind != w.kind || n.Level != w.level || n.Text != w.text {
			t.Errorf("node %d = {%s %d %q}, want {%s %d %q}",
				i, n.Kind, n.Level, n.Text, w.kind, w.level, w.text)
		}
	}
}

func TestExtractMixedBoldRunsAreParagraphs(t *testing.T) {
	body := `<w:p>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t>Bold start</w:t></w:r>` +
		`<w:r><w:t xml:space="preserve"> plain tail</w:t></w:r>` +
		`</w:p>`
	doc, err := testExtractor().extract(writeDocx(t, body))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(doc.Nodes) != 1 || doc.Nodes[0].Kind != doctree.KindParagraph {
		t.Fatalf("expected single paragraph node, got %+v", doc.Nodes)
	}
	if doc.Nodes[0].Text != "Bold start plain tail" {
		t.Errorf("text = %q", doc.Nodes[0].Text)
	}
}

const cellTmpl = `<w:tc>%PROPS%<w:p><w:r><w:t>%TEXT%</w:t></w:r></w:p></w:tc>`

func tc(text, props string) string {
	s := strings.Replace(cellTmpl, "%PROPS%", props, 1)
	return strings.Replace(s, "%TEXT%", text, 1)
}

func TestExtractResolvesSpans(t *testing.T) {
	// 3-column grid:
	//   row 0: A spans two columns, B opens a vertical merge
	//   row 1: C, D, and the continuation of B
	body := `<w:tbl>` +
		`<w:tr>` +
		tc("A", `<w:tcPr><w:gridSpan w:val="2"/></w:tcPr>`) +
		tc("B", `<w:tcPr><w:vMerge w:val="restart"/></w:tcPr>`) +
		`</w:tr>` +
		`<w:tr>` +
		tc("C", "") +
		tc("D", "") +
		tc("", `<w:tcPr><w:vMerge/></w:tcPr>`) +
		`</w:tr>` +
		`</w:tbl>`

	doc, err := testExtractor().extract(writeDocx(t, body))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(doc.Nodes) != 1 || doc.Nodes[0].Kind != doctree.KindTable {
		t.Fatalf("expected single table node, got %+v", doc.Nodes)
	}
	tbl := doc.Nodes[0].Table
	if len(tbl.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(tbl.Rows))
	}

	r0 := tbl.Rows[0].Cells
	if len(r0) != 2 {
		t.Fatalf("row 0 has %d cells, want 2", len(r0))
	}
	if r0[0].Text != "A" || r0[0].ColSpan != 2 || r0[0].RowSpan != 1 {
		t.Errorf("cell A = %+v", r0[0])
	}
	if r0[1].Text != "B" || r0[1].ColSpan != 1 || r0[1].RowSpan != 2 {
		t.Errorf("cell B = %+v", r0[1])
	}

	r1 := tbl.Rows[1].Cells
	if len(r1) != 2 {
		t.Fatalf("row 1 has %d cells, want 2 (merge continuation must be absorbed)", len(r1))
	}
	if r1[0].Text != "C" || r1[1].Text != "D" {
		t.Errorf("row 1 = %q, %q", r1[0].Text, r1[1].Text)
	}

	// Partition property: the emitted spans tile the 2x3 grid exactly.
	area := 0
	for _, row := range tbl.Rows {
		for _, c := range row.Cells {
			area += c.RowSpan * c.ColSpan
		}
	}
	if area != 6 {
		t.Errorf("span area = %d, want 6", area)
	}
}

func TestExtractMalformedSpanDegradesToOne(t *testing.T) {
	body := `<w:tbl><w:tr>` +
		tc("X", `<w:tcPr><w:gridSpan w:val="banana"/></w:tcPr>`) +
		tc("Y", "") +
		`</w:tr></w:tbl>`
	doc, err := testExtractor().extract(writeDocx(t, body))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	cells := doc.Nodes[0].Table.Rows[0].Cells
	if len(cells) != 2 || cells[0].ColSpan != 1 {
		t.Fatalf("malformed span not degraded: %+v", cells)
	}
}

func TestExtractOutOfBoundsSpanDegradesToOne(t *testing.T) {
	// tblGrid declares two columns; a gridSpan of 5 points past the
	// table bounds and must degrade like any other malformed span.
	body := `<w:tbl>` +
		`<w:tblGrid><w:gridCol w:w="2400"/><w:gridCol w:w="2400"/></w:tblGrid>` +
		`<w:tr>` +
		tc("X", `<w:tcPr><w:gridSpan w:val="5"/></w:tcPr>`) +
		tc("Y", "") +
		`</w:tr></w:tbl>`
	doc, err := testExtractor().extract(writeDocx(t, body))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	cells := doc.Nodes[0].Table.Rows[0].Cells
	if len(cells) != 2 {
		t.Fatalf("row has %d cells, want 2", len(cells))
	}
	if cells[0].ColSpan != 1 || cells[1].ColSpan != 1 {
		t.Fatalf("out-of-bounds span not degraded: %+v", cells)
	}
}

func TestExtractSpanWithinGridKept(t *testing.T) {
	body := `<w:tbl>` +
		`<w:tblGrid><w:gridCol w:w="2400"/><w:gridCol w:w="2400"/></w:tblGrid>` +
		`<w:tr>` +
		tc("X", `<w:tcPr><w:gridSpan w:val="2"/></w:tcPr>`) +
		`</w:tr></w:tbl>`
	doc, err := testExtractor().extract(writeDocx(t, body))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	cells := doc.Nodes[0].Table.Rows[0].Cells
	if len(cells) != 1 || cells[0].ColSpan != 2 {
		t.Fatalf("in-bounds span altered: %+v", cells)
	}
}

func TestExtractNestedTable(t *testing.T) {
	body := `<w:tbl><w:tr><w:tc>` +
		`<w:p><w:r><w:t>outer</w:t></w:r></w:p>` +
		`<w:tbl><w:tr>` + tc("inner", "") + `</w:tr></w:tbl>` +
		`</w:tc></w:tr></w:tbl>`
	doc, err := testExtractor().extract(writeDocx(t, body))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	cell := doc.Nodes[0].Table.Rows[0].Cells[0]
	if cell.Text != "outer" {
		t.Errorf("cell text = %q", cell.Text)
	}
	if len(cell.Tables) != 1 || cell.Tables[0].Rows[0].Cells[0].Text != "inner" {
		t.Errorf("nested table not captured: %+v", cell.Tables)
	}
}

func TestParseCorruptFileYieldsRecoveryDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	if err := os.WriteFile(path, []byte("not a zip archive"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	doc, err := testExtractor().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(doc.Nodes))
	}
	if doc.Nodes[0].Kind != doctree.KindHeading || doc.Nodes[0].Text != "Document Recovery" {
		t.Errorf("first node = %+v", doc.Nodes[0])
	}
	if !strings.Contains(doc.Nodes[2].Text, "broken.docx") {
		t.Errorf("recovery notice does not name the file: %q", doc.Nodes[2].Text)
	}
}

func TestParseMissingFileIsTerminal(t *testing.T) {
	if _, err := testExtractor().Parse(filepath.Join(t.TempDir(), "absent.docx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDocumentArtifactXML(t *testing.T) {
	doc := &doctree.Document{
		Name: "sample.docx",
		Nodes: []*doctree.Node{
			{Kind: doctree.KindHeading, Level: 2, Text: "PART I"},
			{Kind: doctree.KindBold, Text: "Audit Objectives"},
			{Kind: doctree.KindTable, Table: &doctree.Table{Rows: []*doctree.Row{
				{Cells: []*doctree.Cell{{Text: "A", RowSpan: 1, ColSpan: 2}}},
			}}},
		},
	}
	out, err := xml.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(out)
	for _, want := range []string{
		`<heading level="2">PART I</heading>`,
		`<bold>Audit Objectives</bold>`,
		`<cell colspan="2">A</cell>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("artifact XML missing %q in %s", want, got)
		}
	}
	if strings.Contains(got, `rowspan="1"`) {
		t.Errorf("unit rowspan must be omitted: %s", got)
	}
}
