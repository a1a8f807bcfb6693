package outline

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/sskannan007/UX-CAG/internal/doctree"
)

func testBuilder() *Builder {
	return NewBuilder(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"INSPECTION REPORT ON THE ACCOUNTS OF TALUK OFFICE", 1},
		{"PART I", 2},
		{"Part-II", 2},
		{"PART – III", 2},
		{"Part 2", 2},
		{"PART V", 2},
		{"Introductory", 3},
		{"Scope of Audit", 3},
		{"Audit Objectives", 3},
		{"Acknowledgement", 3},
		{"REFERENCE NUMBER OF PREVIOUS INSPECTION REPORTS", 3},
		{"(Major Audit Findings)", 3},
		{"A: Major irregularities", 3},
		{"B I: Other observations", 3},
		{"Para 148", 4},
		{"II Subject: Encroachment of land", 4},
		{"Subject: Non-collection of lease rent", 4},
		{"(Follow up of previous reports)", 3},
		{"(Theft cases)", 3},
		{"The office functioned with sanctioned strength.", 0},
		{"para 148", 0},
	}
	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func heading(level int, text string) *doctree.Node {
	return &doctree.Node{Kind: doctree.KindHeading, Level: level, Text: text}
}

func bold(text string) *doctree.Node {
	return &doctree.Node{Kind: doctree.KindBold, Text: text}
}

func paragraph(text string) *doctree.Node {
	return &doctree.Node{Kind: doctree.KindParagraph, Text: text}
}

func TestBuildSectionTree(t *testing.T) {
	doc := &doctree.Document{Nodes: []*doctree.Node{
		heading(1, "INSPECTION REPORT ON THE ACCOUNTS"),
		heading(2, "PART I"),
		bold("Introductory"),
		paragraph("The Taluk Office, Ambasamudram was inspected."),
		bold("Scope of Audit"),
		paragraph("The audit covered the period 2021-22."),
		heading(2, "PART II"),
		paragraph("Second part content."),
	}}
	root := testBuilder().Build(doc)

	if len(root.Children) != 1 {
		t.Fatalf("root has %d children, want 1", len(root.Children))
	}
	title := root.Children[0]
	if title.Level != 1 {
		t.Fatalf("title level = %d, want 1", title.Level)
	}
	if len(title.Children) != 2 {
		t.Fatalf("title has %d children, want 2 parts", len(title.Children))
	}
	partI := title.Children[0]
	if partI.Heading != "PART I" || partI.Level != 2 {
		t.Fatalf("part I = %+v", partI)
	}
	if len(partI.Children) != 2 {
		t.Fatalf("part I has %d sections, want 2", len(partI.Children))
	}
	intro := partI.Children[0]
	if intro.Heading != "Introductory" || intro.Level != 3 {
		t.Errorf("intro = %+v", intro)
	}
	if len(intro.Content) != 1 || !strings.Contains(intro.Content[0].Text, "Ambasamudram") {
		t.Errorf("intro content = %+v", intro.Content)
	}
	if title.Children[1].Heading != "PART II" {
		t.Errorf("second part = %+v", title.Children[1])
	}
}

func TestBuildFirstHeadingForcedToTitle(t *testing.T) {
	doc := &doctree.Document{Nodes: []*doctree.Node{
		bold("OFFICE OF THE DISTRICT COLLECTOR"),
		heading(2, "PART I"),
	}}
	root := testBuilder().Build(doc)
	if len(root.Children) != 1 || root.Children[0].Level != 1 {
		t.Fatalf("first candidate not forced to level 1: %+v", root.Children)
	}
	if len(root.Children[0].Children) != 1 {
		t.Errorf("PART I should nest under the forced title")
	}
}

func TestBuildIndentedFirstHeadingNotForced(t *testing.T) {
	doc := &doctree.Document{Nodes: []*doctree.Node{
		bold("  Some indented preamble line"),
		bold("INSPECTION REPORT ON THE ACCOUNTS"),
	}}
	root := testBuilder().Build(doc)
	// The indented candidate classifies to 0 and stays content; the next
	// unindented candidate becomes the title.
	if len(root.Content) != 1 {
		t.Fatalf("root content = %+v", root.Content)
	}
	if len(root.Children) != 1 || root.Children[0].Heading != "INSPECTION REPORT ON THE ACCOUNTS" {
		t.Fatalf("title = %+v", root.Children)
	}
}

func TestBuildLevelZeroNeverPops(t *testing.T) {
	doc := &doctree.Document{Nodes: []*doctree.Node{
		heading(1, "INSPECTION REPORT"),
		heading(2, "PART I"),
		bold("Some unclassifiable bold line"),
		paragraph("Paragraph after the bold line."),
	}}
	root := testBuilder().Build(doc)
	partI := root.Children[0].Children[0]
	if len(partI.Content) != 2 {
		t.Fatalf("part I content = %+v", partI.Content)
	}
	if !partI.Content[0].Bold {
		t.Errorf("bold flag lost on level-0 candidate")
	}
	if len(partI.Children) != 0 {
		t.Errorf("level-0 candidate must not open a section")
	}
}

func TestTableHTML(t *testing.T) {
	tbl := &doctree.Table{Rows: []*doctree.Row{
		{Cells: []*doctree.Cell{
			{Text: "Name", RowSpan: 1, ColSpan: 2},
			{Text: "Period", RowSpan: 2, ColSpan: 1},
		}},
		{Cells: []*doctree.Cell{
			{Text: "Line one\nLine two", RowSpan: 1, ColSpan: 1},
			{Text: "B", RowSpan: 1, ColSpan: 1},
		}},
	}}
	html := TableHTML(tbl)
	for _, want := range []string{
		`<th colspan="2">Name</th>`,
		`<th rowspan="2">Period</th>`,
		`<td>Line one<br>Line two</td>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in:\n%s", want, html)
		}
	}
	if strings.Contains(html, `colspan="1"`) || strings.Contains(html, `rowspan="1"`) {
		t.Errorf("unit spans must not be rendered:\n%s", html)
	}
}

func TestTableHTMLNested(t *testing.T) {
	tbl := &doctree.Table{Rows: []*doctree.Row{
		{Cells: []*doctree.Cell{{
			Text: "outer", RowSpan: 1, ColSpan: 1,
			Tables: []*doctree.Table{{Rows: []*doctree.Row{
				{Cells: []*doctree.Cell{{Text: "inner", RowSpan: 1, ColSpan: 1}}},
			}}},
		}}},
	}}
	html := TableHTML(tbl)
	if !strings.Contains(html, "outer<br><table>") {
		t.Errorf("nested table not embedded after cell text:\n%s", html)
	}
	if !strings.Contains(html, "<th>inner</th>") {
		t.Errorf("nested table content missing:\n%s", html)
	}
}

func TestRenderCategoryHeadingNormalized(t *testing.T) {
	doc := &doctree.Document{Nodes: []*doctree.Node{
		heading(1, "INSPECTION REPORT"),
		heading(2, "PART I"),
		bold("3.2 Financial Performance:"),
		paragraph("Allocation details follow."),
	}}
	root := testBuilder().Build(doc)
	md := Render(root)
	if !strings.Contains(md, "#### Financial Performance:\n\n") {
		t.Errorf("category heading not normalized:\n%s", md)
	}
	if strings.Contains(md, "3.2 Financial") {
		t.Errorf("numbering prefix not stripped:\n%s", md)
	}
}

func TestRenderReferenceSectionPromotion(t *testing.T) {
	doc := &doctree.Document{Nodes: []*doctree.Node{
		heading(1, "INSPECTION REPORT"),
		heading(2, "PART IV"),
		bold("REFERENCE NUMBER OF PREVIOUS INSPECTION REPORTS"),
		bold("Para 7"),
		paragraph("I. First pending item"),
		paragraph("An ordinary sentence stays a paragraph."),
	}}
	root := testBuilder().Build(doc)
	md := Render(root)
	if !strings.Contains(md, "#### I. First pending item\n\n") {
		t.Errorf("sequence item under reference section not promoted:\n%s", md)
	}
	if strings.Contains(md, "#### An ordinary sentence") {
		t.Errorf("plain sentence wrongly promoted:\n%s", md)
	}
}

func TestRenderBoldHeadingLikePromoted(t *testing.T) {
	doc := &doctree.Document{Nodes: []*doctree.Node{
		heading(1, "INSPECTION REPORT"),
		heading(2, "PART II"),
		bold("Observation on cash book"),
	}}
	md := Render(testBuilder().Build(doc))
	if !strings.Contains(md, "#### Observation on cash book\n\n") {
		t.Errorf("bold heading-like content not promoted:\n%s", md)
	}
}

func TestRenderHeadingLevels(t *testing.T) {
	doc := &doctree.Document{Nodes: []*doctree.Node{
		heading(1, "INSPECTION REPORT"),
		heading(2, "PART III"),
		bold("Para 12"),
		paragraph("Body."),
	}}
	md := Render(testBuilder().Build(doc))
	for _, want := range []string{
		"# INSPECTION REPORT\n\n",
		"## PART III\n\n",
		"#### Para 12\n\n",
		"Body.\n\n",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("missing block %q in:\n%s", want, md)
		}
	}
}
