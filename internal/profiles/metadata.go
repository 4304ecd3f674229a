package profiles

import (
	"strings"

	"github.com/sam-fakhreddine/aws-containers-sub004/models"
)

// MetadataRule assigns display metadata to profiles whose name contains
// one of its keywords. First matching rule wins. Purely cosmetic.
type MetadataRule struct {
	Keywords []string `yaml:"keywords" json:"keywords"`
	Color    string   `yaml:"color" json:"color"`
	Icon     string   `yaml:"icon" json:"icon"`
}

func (r MetadataRule) matches(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range r.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

const (
	defaultColor = "blue"
	defaultIcon  = "circle"
)

// DefaultMetadataRules is the built-in rule set; a settings file may
// replace it.
func DefaultMetadataRules() []MetadataRule {
	return []MetadataRule{
		{Keywords: []string{"prod", "production"}, Color: "red", Icon: "briefcase"},
		{Keywords: []string{"stg", "staging", "stage"}, Color: "yellow", Icon: "circle"},
		{Keywords: []string{"dev", "development"}, Color: "green", Icon: "fingerprint"},
		{Keywords: []string{"test", "qa"}, Color: "turquoise", Icon: "circle"},
		{Keywords: []string{"ite", "integration"}, Color: "blue", Icon: "circle"},
	}
}

// Metadata resolves color and icon for profile names.
type Metadata struct {
	rules []MetadataRule
}

func NewMetadata(rules []MetadataRule) *Metadata {
	if len(rules) == 0 {
		rules = DefaultMetadataRules()
	}
	return &Metadata{rules: rules}
}

func (m *Metadata) Color(name string) string {
	for _, r := range m.rules {
		if r.matches(name) {
			return r.Color
		}
	}
	return defaultColor
}

func (m *Metadata) Icon(name string) string {
	for _, r := range m.rules {
		if r.matches(name) {
			return r.Icon
		}
	}
	return defaultIcon
}

// Apply sets display metadata on the profile, falling back to the defaults
// so every profile always carries a deterministic color and icon.
func (m *Metadata) Apply(p *models.Profile) {
	p.Color = m.Color(p.Name)
	p.Icon = m.Icon(p.Name)
}
