package extract

import (
	"regexp"
	"strings"
)

var fieldLineRe = regexp.MustCompile(`^(.*?):\s*(.*)$`)

// extractMetadata builds the metadata record: explicit "Field: Value" lines
// win, then the hierarchy-restricted resolvers fill the gaps from the
// heading and Part I, then the Part I narrative extractors populate the
// budget/objective/criteria blocks.
func (e *Extractor) extractMetadata(lines []string) Metadata {
	m := newMetadata()

	heading, _ := documentHeading(lines)
	if heading != "" {
		m.DocumentHeading = heading
	}
	zone := searchZone{heading: heading, partOne: partOneText(lines)}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		fm := fieldLineRe.FindStringSubmatch(line)
		if fm == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(fm[1]))
		value := strings.TrimSpace(fm[2])
		switch key {
		case "document name":
			m.DocumentName = value
		case "document heading":
			m.DocumentHeading = value
		case "state":
			m.State = strptr(value)
		case "district":
			m.District = strptr(value)
		case "division name":
			m.DivisionName = strptr(value)
		case "departments":
			m.Departments = strptr(value)
		case "audit objective":
			m.AuditObjective = value
		case "audit criteria":
			m.AuditCriteria = value
		case "audite unit":
			m.AuditeeUnit = strptr(value)
		case "expenditure":
			m.Expenditure = strptr(value)
		case "revenue":
			m.Revenue = strptr(value)
		case "budget", "allocation", "budget/allocation":
			m.Budget = value
		case "signed by":
			m.SignedBy = strptr(value)
		}
	}

	if m.Departments == nil {
		m.Departments = e.gaz.resolveDepartment(zone)
	}
	if m.State == nil {
		m.State = e.gaz.resolveState(zone)
	}
	m.IsState = m.State != nil
	if m.District == nil {
		m.District = e.gaz.resolveDistrict(zone)
	}
	if m.AuditeeUnit == nil {
		m.AuditeeUnit = e.gaz.resolveAuditeeUnit(zone)
	}

	if m.Budget == nil {
		if content := budgetFromPartOne(lines); len(content) > 0 {
			m.Budget = content
		}
	}
	if m.AuditObjective == nil {
		if content := objectiveFromPartOne(lines); len(content) > 0 {
			m.AuditObjective = content
		}
	}
	if m.AuditCriteria == nil {
		if content := criteriaFromPartOne(lines); len(content) > 0 {
			m.AuditCriteria = content
		}
	}

	return m
}
