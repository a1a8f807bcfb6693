package extract

import (
	"regexp"
	"strings"
)

// Trigger sentences. A roster table only counts when it follows one of
// these phrases in the document text.
var auditOfficerTriggers = []string{
	"by the following members of field audit party",
	"the audit was supervised by the following officers",
	"supervised by the following officers",
	"conducted by the following members",
	"audit team members",
}

var auditeeOfficerTriggers = []string{
	"the local audit was conducted by the following officers",
	"the following officers held the charge of the post of tahsildar",
	"officers held the charge of the post of tahsildar",
	"details of persons holding the leadership position",
	"during the period covered by audit",
	"the following person(s) held the charge of the post of block development officer",
	"person(s) held the charge of the post of block development officer",
	"held the charge of the post of block development officer",
	"charge of the post of block development officer",
	"the following officers held the charge of the post of district collector",
	"officers held the charge of the post of district collector",
	"held the charge of the post of district collector",
	"charge of the post of district collector",
}

// triggerDistance caps how far past its trigger sentence an audit-officer
// table may start and still be attributed to it.
const triggerDistance = 1000

var namePrefixRe = regexp.MustCompile(`^\d+\.?\s*`)

func triggerPositions(content string, triggers []string) []int {
	lower := strings.ToLower(content)
	var positions []int
	for _, trigger := range triggers {
		for start := 0; ; {
			pos := strings.Index(lower[start:], trigger)
			if pos < 0 {
				break
			}
			positions = append(positions, start+pos)
			start += pos + 1
		}
	}
	return positions
}

// extractAuditOfficers finds the field audit party roster: HTML tables
// shortly after a supervision trigger sentence, carrying name and
// designation columns.
func extractAuditOfficers(lines []string) []AuditOfficer {
	content := strings.Join(lines, "\n")
	positions := triggerPositions(content, auditOfficerTriggers)
	if len(positions) == 0 {
		return nil
	}

	tables := scanHTMLTables(content)
	var relevant [][][]string
	for _, tbl := range tables {
		for _, pos := range positions {
			if tbl.pos > pos && tbl.pos-pos < triggerDistance {
				relevant = append(relevant, tbl.rows)
				break
			}
		}
	}
	if len(relevant) == 0 {
		for _, tbl := range tables {
			relevant = append(relevant, tbl.rows)
		}
	}

	var officers []AuditOfficer
	for _, rows := range relevant {
		officers = append(officers, auditOfficersFromTable(rows)...)
	}
	return officers
}

func auditOfficersFromTable(rows [][]string) []AuditOfficer {
	if len(rows) < 2 {
		return nil
	}
	headers := lowerTrim(rows[0])
	if !anyContains(headers, "name") || !anyContains(headers, "designation") {
		return nil
	}

	nameCol, desigCol, fromCol, tillCol := -1, -1, -1, -1
	for i, h := range headers {
		switch {
		case strings.Contains(h, "name") && nameCol < 0:
			nameCol = i
		case strings.Contains(h, "designation") && desigCol < 0:
			desigCol = i
		case (strings.Contains(h, "member from") || strings.Contains(h, "effective from") ||
			strings.Contains(h, "from")) && fromCol < 0:
			fromCol = i
		case (strings.Contains(h, "member till") || strings.Contains(h, "member to") ||
			strings.Contains(h, "effective to") || strings.Contains(h, "till") ||
			strings.Contains(h, "to")) && tillCol < 0:
			tillCol = i
		}
	}

	var officers []AuditOfficer
	for _, row := range rows[1:] {
		name := cellAt(row, nameCol)
		if name == "" {
			continue
		}
		name = strings.TrimSpace(namePrefixRe.ReplaceAllString(name, ""))
		if containsAnyFold(name, "name", "sl.", "sr.", "no.") {
			continue
		}
		officer := AuditOfficer{Name: strptr(name)}
		if d := cellAt(row, desigCol); d != "" {
			officer.Designation = strptr(d)
		}
		if v := cellAt(row, fromCol); v != "" && v != "-" {
			officer.MemberFrom = strptr(v)
		}
		if v := cellAt(row, tillCol); v != "" && v != "-" {
			officer.MemberUntil = strptr(v)
		}
		officers = append(officers, officer)
	}
	return officers
}

// extractAuditeeOfficers finds the charge-holding rosters in Part V. Three
// table layouts occur in the corpus: the standard sl/name/from/to grid, the
// Tahsildar grid whose period column splits into From/To in a second header
// row, and the multi-section BDO grid with per-section designation rows.
func extractAuditeeOfficers(lines []string) []AuditeeOfficer {
	partVStart := partHeadingIndex(lines, []string{"v", "5"}, "iv")
	if partVStart < 0 {
		return nil
	}
	content := strings.Join(lines[partVStart:], "\n")
	lower := strings.ToLower(content)

	found := false
	for _, trigger := range auditeeOfficerTriggers {
		if strings.Contains(lower, trigger) {
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	positions := triggerPositions(content, auditeeOfficerTriggers)
	tables := scanHTMLTables(content)

	var relevant [][][]string
	for _, tbl := range tables {
		for _, pos := range positions {
			if tbl.pos > pos {
				relevant = append(relevant, tbl.rows)
				break
			}
		}
	}
	if len(relevant) == 0 {
		// Offset bookkeeping can miss when the trigger sits inside the
		// table itself; fall back to tables that look like rosters.
		for _, tbl := range tables {
			flat := strings.ToLower(strings.Join(flatten(tbl.rows), " "))
			if len(tbl.rows) > 1 &&
				(strings.Contains(flat, "audit officer") || strings.Contains(flat, "tahsildar")) {
				relevant = append(relevant, tbl.rows)
			}
		}
	}

	var officers []AuditeeOfficer
	for _, rows := range relevant {
		officers = append(officers, auditeeOfficersFromTable(rows, content)...)
	}
	return officers
}

func auditeeOfficersFromTable(rows [][]string, context string) []AuditeeOfficer {
	if len(rows) < 2 {
		return nil
	}
	headers := lowerTrim(rows[0])

	hasSl := anyContains(headers, "sl") || anyContains(headers, "no")
	hasName := anyContains(headers, "name")
	hasFrom := anyContains(headers, "from")
	hasTo := anyContains(headers, "to")

	dataStart := 1
	if len(rows) >= 3 && hasSl && hasName && !(hasFrom && hasTo) {
		second := lowerTrim(rows[1])
		if anyContains(second, "from") && anyContains(second, "to") {
			headers = second
			dataStart = 2
			hasFrom, hasTo = true, true
		}
	}

	hasBDO := anyContains(headers, "bdo") ||
		anyContains(headers, "block development officer") ||
		anyContains(headers, "bdo(b.p)") || anyContains(headers, "bdo(v.p)")

	switch {
	case hasBDO:
		return bdoOfficersFromTable(rows)
	case hasSl && hasName && hasFrom && hasTo:
		nameCol, fromCol, toCol := -1, -1, -1
		slCol := -1
		for i, h := range headers {
			switch {
			case (strings.Contains(h, "sl") || strings.Contains(h, "no")) && slCol < 0:
				slCol = i
			case strings.Contains(h, "name") && nameCol < 0:
				nameCol = i
			case strings.Contains(h, "from") && fromCol < 0:
				fromCol = i
			case strings.Contains(h, "to") && toCol < 0:
				toCol = i
			}
		}
		tableContext := strings.Join(headers, " ")
		designation := designationFromContext(context, tableContext)
		if designation == "" && strings.Contains(tableContext, "tahsildar") {
			designation = tahsildarVariant(tableContext)
		}
		return standardOfficersFromRows(rows[dataStart:], nameCol, fromCol, toCol, designation)
	case anyContains(headers, "tahsildar") && anyContains(headers, "period"):
		return tahsildarPeriodOfficers(rows, headers)
	}
	return nil
}

func standardOfficersFromRows(rows [][]string, nameCol, fromCol, toCol int, defaultDesignation string) []AuditeeOfficer {
	var officers []AuditeeOfficer
	for _, row := range rows {
		combined := cellAt(row, nameCol)
		if combined == "" {
			continue
		}

		name, designation := splitNameDesignation(combined, defaultDesignation)
		name = strings.TrimSpace(namePrefixRe.ReplaceAllString(name, ""))
		if containsAnyFold(name, "name", "sl.", "sr.", "no.", "from", "to") {
			continue
		}

		officer := AuditeeOfficer{Name: strptr(name)}
		if designation != "" {
			officer.Designation = strptr(designation)
		}
		officer.WorkedFrom = cleanRosterDate(cellAt(row, fromCol), false)
		officer.WorkedUntil = cleanRosterDate(cellAt(row, toCol), true)
		officers = append(officers, officer)
	}
	return officers
}

var designationKeywords = []string{"officer", "assistant", "senior", "junior", "supervisor", "engineer", "accountant"}

// splitNameDesignation separates "K. Kumar, Tahsildar" style cells. A
// table-level default designation always wins over the comma split.
func splitNameDesignation(combined, defaultDesignation string) (string, string) {
	if idx := strings.Index(combined, ","); idx >= 0 {
		name := strings.TrimSpace(combined[:idx])
		if defaultDesignation != "" {
			return name, defaultDesignation
		}
		return name, strings.TrimSpace(combined[idx+1:])
	}
	if defaultDesignation != "" {
		return combined, defaultDesignation
	}
	words := strings.Fields(combined)
	for i, word := range words {
		lower := strings.ToLower(word)
		for _, kw := range designationKeywords {
			if strings.Contains(lower, kw) {
				return strings.TrimSpace(strings.Join(words[:i], " ")),
					strings.TrimSpace(strings.Join(words[i:], " "))
			}
		}
	}
	return combined, "Officer"
}

func tahsildarPeriodOfficers(rows [][]string, headers []string) []AuditeeOfficer {
	if len(rows) < 3 {
		return nil
	}
	second := lowerTrim(rows[1])
	if !anyContains(second, "from") || !anyContains(second, "to") {
		return nil
	}

	nameCol, fromCol, toCol := -1, -1, -1
	for i, cell := range second {
		switch {
		case strings.Contains(cell, "from") && fromCol < 0:
			fromCol = i
		case strings.Contains(cell, "to") && toCol < 0:
			toCol = i
		case strings.Contains(cell, "name") || strings.Contains(cell, "tahsildar"):
			nameCol = i
		}
	}
	if nameCol < 0 && len(second) >= 2 {
		nameCol = 1
	}
	designation := tahsildarVariant(strings.Join(headers, " "))

	var officers []AuditeeOfficer
	for _, row := range rows[2:] {
		name := strings.TrimSpace(namePrefixRe.ReplaceAllString(cellAt(row, nameCol), ""))
		if name == "" || containsAnyFold(name, "name", "sl.", "sr.", "no.", "from", "to") {
			continue
		}
		officers = append(officers, AuditeeOfficer{
			Name:        strptr(name),
			Designation: strptr(designation),
			WorkedFrom:  cleanRosterDate(cellAt(row, fromCol), false),
			WorkedUntil: cleanRosterDate(cellAt(row, toCol), true),
		})
	}
	return officers
}

// bdoOfficersFromTable handles the multi-section BDO grid: designation rows
// (BDO(B.P) / BDO(V.P)) introduce a section, each section carries its own
// From/To header row, and data rows follow until the next section.
func bdoOfficersFromTable(rows [][]string) []AuditeeOfficer {
	if len(rows) < 3 {
		return nil
	}

	designation := ""
	slCol, nameCol, fromCol, toCol := -1, -1, -1, -1
	var officers []AuditeeOfficer

	for _, row := range rows {
		rowText := strings.ToLower(strings.Join(row, " "))

		if strings.Contains(rowText, "bdo(b.p)") {
			designation = "Block Development Officer (B.P)"
		} else if strings.Contains(rowText, "bdo(v.p)") {
			designation = "Block Development Officer (V.P)"
		}

		if strings.Contains(rowText, "from") && strings.Contains(rowText, "to") {
			slCol, nameCol, fromCol, toCol = -1, -1, -1, -1
			for j, cell := range row {
				lower := strings.ToLower(strings.TrimSpace(cell))
				switch {
				case (strings.Contains(lower, "sl") || strings.Contains(lower, "no")) && slCol < 0:
					slCol = j
				case strings.Contains(lower, "name") && nameCol < 0:
					nameCol = j
				case strings.Contains(lower, "from") && fromCol < 0:
					fromCol = j
				case strings.Contains(lower, "to") && toCol < 0:
					toCol = j
				}
			}
			continue
		}

		if designation == "" || slCol < 0 || nameCol < 0 || fromCol < 0 || toCol < 0 {
			continue
		}
		if containsAnyFold(rowText, "sl.", "name", "from", "to", "period") {
			continue
		}

		name := strings.TrimSpace(namePrefixRe.ReplaceAllString(cellAt(row, nameCol), ""))
		if name == "" || len(name) <= 2 || containsAnyFold(name, "name", "sl.", "sr.", "no.", "from", "to") {
			continue
		}
		officers = append(officers, AuditeeOfficer{
			Name:        strptr(name),
			Designation: strptr(designation),
			WorkedFrom:  cleanRosterDate(cellAt(row, fromCol), false),
			WorkedUntil: cleanRosterDate(cellAt(row, toCol), true),
		})
	}
	return officers
}

// designationFromContext infers the post the roster covers from the prose
// around the table.
func designationFromContext(content, tableHeaders string) string {
	lower := strings.ToLower(content)

	if strings.Contains(lower, "district collector") {
		return "District Collector"
	}
	if strings.Contains(lower, "block development officer") || strings.Contains(lower, "bdo") {
		switch {
		case strings.Contains(lower, "b.p") || strings.Contains(lower, "block panchayat"):
			return "Block Development Officer (B.P)"
		case strings.Contains(lower, "v.p") || strings.Contains(lower, "village panchayat"):
			return "Block Development Officer (V.P)"
		default:
			return "Block Development Officer"
		}
	}
	if strings.Contains(lower, "tahsildar") {
		return tahsildarVariant(lower)
	}
	if strings.Contains(tableHeaders, "name of the officer") {
		if strings.Contains(lower, "revenue") && strings.Contains(lower, "officer") {
			return "Revenue Officer"
		}
		return "Officer"
	}
	return ""
}

func tahsildarVariant(context string) string {
	switch {
	case strings.Contains(context, "regular"):
		return "Tahsildar (Regular)"
	case strings.Contains(context, "special"):
		return "Special Tahsildar"
	default:
		return "Tahsildar"
	}
}

// cleanRosterDate normalizes roster date cells: dashes become dots, a
// missing middle dot ("06.082019") is restored, "till date" becomes the
// canonical "Till date", and placeholder dashes become nil.
func cleanRosterDate(s string, allowTillDate bool) *string {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}
	s = strings.ReplaceAll(s, "-", ".")
	if allowTillDate && strings.Contains(strings.ToLower(s), "till date") {
		return strptr("Till date")
	}
	if len(s) == 9 && strings.Count(s, ".") == 1 {
		parts := strings.SplitN(s, ".", 2)
		if len(parts[0]) == 2 && len(parts[1]) == 6 {
			s = parts[0] + "." + parts[1][:2] + "." + parts[1][2:]
		}
	}
	return strptr(s)
}

func lowerTrim(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.ToLower(strings.TrimSpace(cell))
	}
	return out
}

func anyContains(cells []string, sub string) bool {
	for _, c := range cells {
		if strings.Contains(c, sub) {
			return true
		}
	}
	return false
}

func containsAnyFold(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func flatten(rows [][]string) []string {
	var out []string
	for _, row := range rows {
		out = append(out, row...)
	}
	return out
}
