package extract

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/gazetteer.yaml
var defaultGazetteer []byte

// OfficeMapping ties an office or role keyword to the department it belongs
// to. Mappings are checked in file order, first hit wins.
type OfficeMapping struct {
	Keyword    string `yaml:"keyword"`
	Department string `yaml:"department"`
}

// Gazetteer holds the canonical name lists the metadata resolvers match
// against. The default set is embedded; Load can replace it from a file.
type Gazetteer struct {
	FuzzyThreshold int               `yaml:"fuzzy_threshold"`
	TokenOverlap   float64           `yaml:"token_overlap"`
	States         []string          `yaml:"states"`
	Departments    []string          `yaml:"departments"`
	OfficeMappings []OfficeMapping   `yaml:"office_mappings"`
	Abbreviations  map[string]string `yaml:"abbreviations"`
	Districts      []string          `yaml:"districts"`
	DistrictFixes  map[string]string `yaml:"district_fixes"`
	AuditeeUnits   []string          `yaml:"auditee_units"`
}

// DefaultGazetteer returns the embedded reference lists.
func DefaultGazetteer() (*Gazetteer, error) {
	return parseGazetteer(defaultGazetteer)
}

// LoadGazetteer reads reference lists from path, falling back to the
// embedded defaults when path is empty.
func LoadGazetteer(path string) (*Gazetteer, error) {
	if path == "" {
		return DefaultGazetteer()
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gazetteer: %w", err)
	}
	g, err := parseGazetteer(buf)
	if err != nil {
		return nil, fmt.Errorf("parse gazetteer %s: %w", path, err)
	}
	return g, nil
}

func parseGazetteer(buf []byte) (*Gazetteer, error) {
	var g Gazetteer
	if err := yaml.Unmarshal(buf, &g); err != nil {
		return nil, fmt.Errorf("decode gazetteer: %w", err)
	}
	if g.FuzzyThreshold <= 0 {
		g.FuzzyThreshold = 99
	}
	if g.TokenOverlap <= 0 {
		g.TokenOverlap = 0.8
	}
	return &g, nil
}
