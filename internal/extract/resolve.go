package extract

import (
	"regexp"
	"strings"
)

// searchZone is the restricted text the resolvers are allowed to match
// against: the document heading and the Part I span. Matches anywhere else
// in the document must not populate metadata.
type searchZone struct {
	heading string
	partOne string
}

// resolveState checks the heading first, then Part I. Exact containment of
// a canonical state name wins; otherwise the fuzzy gate (all four scores,
// threshold + token overlap) decides.
func (g *Gazetteer) resolveState(zone searchZone) *string {
	for _, text := range []string{zone.heading, zone.partOne} {
		if text == "" {
			continue
		}
		for _, state := range g.States {
			if containsFold(text, state) {
				return strptr(state)
			}
		}
		if m := g.bestFuzzy(g.States, text, allScores); m != "" {
			return strptr(m)
		}
	}
	return nil
}

// resolveDepartment checks the heading first, then Part I: exact canonical
// department names, then office/role keyword mappings, then word-bounded
// abbreviations, then the fuzzy gate on the canonical list.
func (g *Gazetteer) resolveDepartment(zone searchZone) *string {
	for _, text := range []string{zone.heading, zone.partOne} {
		if text == "" {
			continue
		}
		for _, dept := range g.Departments {
			if containsFold(text, dept) {
				return strptr(dept)
			}
		}
		lower := strings.ToLower(text)
		for _, om := range g.OfficeMappings {
			if strings.Contains(lower, om.Keyword) {
				return strptr(om.Department)
			}
		}
		if dept := g.matchAbbreviation(text); dept != "" {
			return strptr(dept)
		}
		if m := g.bestFuzzy(g.Departments, text, ratioPartial); m != "" {
			return strptr(m)
		}
	}
	return nil
}

var wordRe = regexp.MustCompile(`[A-Za-z&]+`)

func (g *Gazetteer) matchAbbreviation(text string) string {
	for _, word := range wordRe.FindAllString(text, -1) {
		if dept, ok := g.Abbreviations[strings.ToUpper(word)]; ok {
			return dept
		}
	}
	return ""
}

// resolveDistrict checks the heading first, then Part I, normalizing known
// misspellings before matching.
func (g *Gazetteer) resolveDistrict(zone searchZone) *string {
	for _, text := range []string{zone.heading, zone.partOne} {
		if text == "" {
			continue
		}
		fixed := strings.ToUpper(text)
		for bad, good := range g.DistrictFixes {
			fixed = strings.ReplaceAll(fixed, bad, good)
		}
		for _, district := range g.Districts {
			if strings.Contains(fixed, strings.ToUpper(district)) {
				return strptr(district)
			}
		}
		if m := g.bestFuzzy(g.Districts, fixed, ratioPartial); m != "" {
			return strptr(m)
		}
	}
	return nil
}

// resolveAuditeeUnit matches the known unit list against the document
// heading only. Part I content is deliberately not consulted.
func (g *Gazetteer) resolveAuditeeUnit(zone searchZone) *string {
	if zone.heading == "" {
		return nil
	}
	if m := g.bestFuzzy(g.AuditeeUnits, zone.heading, ratioPartial); m != "" {
		return strptr(m)
	}
	return nil
}
