package extract

import (
	"encoding/json"
	"strings"
)

// PeriodRange is a from/to pair used for both the audited period and the
// dates the audit itself took place.
type PeriodRange struct {
	PeriodFrom *string `json:"Period_From"`
	PeriodTo   *string `json:"Period_To"`
}

// AuditOfficer is one member of the field audit party.
type AuditOfficer struct {
	Name        *string `json:"Audit_Officer_Name"`
	Designation *string `json:"Audit_Officer_Designation"`
	MemberFrom  *string `json:"Member_From"`
	MemberUntil *string `json:"Member_Until"`
}

// AuditeeOfficer is one office holder of the audited unit (Part V rosters).
type AuditeeOfficer struct {
	Name        *string `json:"Auditee_Officer_Name"`
	Designation *string `json:"Audit_Officer_Designation"`
	WorkedFrom  *string `json:"Worked_From"`
	WorkedUntil *string `json:"Worked_Until"`
}

// Metadata is the flat record attached to every extracted document. Field
// names (including the "audite_unit" and "budget/allocation" spellings) are
// part of the output contract and must not be normalized.
type Metadata struct {
	DocumentName    string           `json:"document_name"`
	DocumentHeading string           `json:"document_heading"`
	PeriodOfAudit   PeriodRange      `json:"Period_of_audit"`
	DateOfAudit     PeriodRange      `json:"Date_of_audit"`
	Departments     *string          `json:"departments"`
	State           *string          `json:"state"`
	IsState         bool             `json:"is_state"`
	District        *string          `json:"district"`
	DivisionName    *string          `json:"division_name"`
	AuditObjective  any              `json:"audit_objective"`
	AuditCriteria   any              `json:"audit_criteria"`
	AuditeeUnit     *string          `json:"audite_unit"`
	Expenditure     *string          `json:"expenditure"`
	Revenue         *string          `json:"revenue"`
	Budget          any              `json:"budget/allocation"`
	AuditOfficers   []AuditOfficer   `json:"Audit_Officer_Details"`
	AuditeeOfficers []AuditeeOfficer `json:"Auditee_Office_Details"`
	SignedBy        *string          `json:"signed_by"`
}

// ContentItem is a single paragraph or rendered HTML table within a section.
type ContentItem struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Table string `json:"table,omitempty"`
}

// SubSection groups content under a #### heading.
type SubSection struct {
	Title   string        `json:"sub_section_title"`
	Content []ContentItem `json:"content"`
}

// Section groups content and sub-sections under a ### heading.
type Section struct {
	Title       string        `json:"section_title"`
	Content     []ContentItem `json:"content"`
	SubSections []SubSection  `json:"sub_sections"`
}

// Part is a top-level ## division of the report.
type Part struct {
	Title    string     `json:"part_title"`
	Sections []*Section `json:"sections"`
}

// Result is the final JSON document for one input file.
type Result struct {
	Metadata Metadata `json:"metadata"`
	Parts    []*Part  `json:"parts"`
}

func paragraph(text string) ContentItem {
	return ContentItem{Type: "paragraph", Text: text}
}

func tableItem(html string) ContentItem {
	return ContentItem{Type: "table", Table: html}
}

func newMetadata() Metadata {
	return Metadata{
		AuditOfficers:   []AuditOfficer{{}},
		AuditeeOfficers: []AuditeeOfficer{{}},
	}
}

// Encode renders the result as indented JSON with control characters
// stripped from every string value.
func (r *Result) Encode() ([]byte, error) {
	r.sanitize()
	buf, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return buf, nil
}

var controlReplacer = strings.NewReplacer("\x00", "", "\x01", "", "\x02", "")

func cleanString(s string) string {
	return controlReplacer.Replace(s)
}

func cleanPtr(p *string) {
	if p != nil {
		*p = cleanString(*p)
	}
}

func (r *Result) sanitize() {
	m := &r.Metadata
	m.DocumentName = cleanString(m.DocumentName)
	m.DocumentHeading = cleanString(m.DocumentHeading)
	cleanPtr(m.PeriodOfAudit.PeriodFrom)
	cleanPtr(m.PeriodOfAudit.PeriodTo)
	cleanPtr(m.DateOfAudit.PeriodFrom)
	cleanPtr(m.DateOfAudit.PeriodTo)
	cleanPtr(m.Departments)
	cleanPtr(m.State)
	cleanPtr(m.District)
	cleanPtr(m.DivisionName)
	m.AuditObjective = cleanValue(m.AuditObjective)
	m.AuditCriteria = cleanValue(m.AuditCriteria)
	cleanPtr(m.AuditeeUnit)
	cleanPtr(m.Expenditure)
	cleanPtr(m.Revenue)
	m.Budget = cleanValue(m.Budget)
	for i := range m.AuditOfficers {
		o := &m.AuditOfficers[i]
		cleanPtr(o.Name)
		cleanPtr(o.Designation)
		cleanPtr(o.MemberFrom)
		cleanPtr(o.MemberUntil)
	}
	for i := range m.AuditeeOfficers {
		o := &m.AuditeeOfficers[i]
		cleanPtr(o.Name)
		cleanPtr(o.Designation)
		cleanPtr(o.WorkedFrom)
		cleanPtr(o.WorkedUntil)
	}
	cleanPtr(m.SignedBy)

	for _, part := range r.Parts {
		part.Title = cleanString(part.Title)
		for _, sec := range part.Sections {
			sec.Title = cleanString(sec.Title)
			cleanItems(sec.Content)
			for i := range sec.SubSections {
				sub := &sec.SubSections[i]
				sub.Title = cleanString(sub.Title)
				cleanItems(sub.Content)
			}
		}
	}
}

func cleanItems(items []ContentItem) {
	for i := range items {
		items[i].Text = cleanString(items[i].Text)
		items[i].Table = cleanString(items[i].Table)
	}
}

func cleanValue(v any) any {
	switch val := v.(type) {
	case string:
		return cleanString(val)
	case []ContentItem:
		cleanItems(val)
		return val
	default:
		return v
	}
}

func strptr(s string) *string { return &s }
