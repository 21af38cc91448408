package authz

import (
	"fmt"
	"os"

	"qubeia/internal/models"

	"gopkg.in/yaml.v3"
)

// SectionClass determines how a section gates entry and visibility.
type SectionClass string

const (
	// SectionOpen admits every known role; all items are visible to everyone.
	SectionOpen SectionClass = "open"
	// SectionCapabilityGated admits only roles holding a named capability.
	SectionCapabilityGated SectionClass = "capability-gated"
	// SectionRankRestricted admits everyone, but full visibility (seeing
	// other authors' items) requires a minimum rank or a named capability.
	// Below that, viewers only see their own submissions.
	SectionRankRestricted SectionClass = "rank-restricted"
)

// Section describes one forum section and its access rules. For
// rank-restricted sections exactly one of MinRank or Capability is set and
// drives full visibility.
type Section struct {
	Name       string       `yaml:"name"`
	Class      SectionClass `yaml:"class"`
	Capability Capability   `yaml:"capability,omitempty"`
	MinRank    models.Role  `yaml:"min_rank,omitempty"`
	// Triage enables the report-status workflow for items in the section.
	Triage bool `yaml:"triage,omitempty"`
}

// defaultSections is the built-in section catalog. The policy is fixed, not
// tuned at runtime; the YAML loader exists for deployments that rename or
// extend sections wholesale.
var defaultSections = []Section{
	{Name: "general", Class: SectionOpen},
	{Name: "off-topic", Class: SectionOpen},
	{Name: "code-share", Class: SectionOpen},
	{Name: "support", Class: SectionOpen},
	{Name: "bot", Class: SectionOpen},
	{Name: "website", Class: SectionOpen},
	{Name: "dev-panel", Class: SectionCapabilityGated, Capability: CapabilityDevPanel},
	{Name: "player-reports", Class: SectionRankRestricted, MinRank: models.RoleModerator},
	{Name: "bug-reports", Class: SectionRankRestricted, Capability: CapabilityBugTriage, Triage: true},
	{Name: "support-tickets", Class: SectionRankRestricted, MinRank: models.RoleHelper},
}

// SectionPolicy resolves section access for roles.
type SectionPolicy struct {
	sections map[string]Section
	ordered  []Section
}

// NewSectionPolicy returns a policy over the built-in section catalog.
func NewSectionPolicy() *SectionPolicy {
	return newSectionPolicy(defaultSections)
}

// NewSectionPolicyFromFile returns a policy whose catalog is loaded from a
// YAML file. The file fully replaces the built-in catalog.
func NewSectionPolicyFromFile(path string) (*SectionPolicy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sections file: %w", err)
	}
	var doc struct {
		Sections []Section `yaml:"sections"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse sections file: %w", err)
	}
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("sections file %s defines no sections", path)
	}
	for _, s := range doc.Sections {
		switch s.Class {
		case SectionOpen, SectionCapabilityGated, SectionRankRestricted:
		default:
			return nil, fmt.Errorf("section %q has unknown class %q", s.Name, s.Class)
		}
		if s.Class == SectionCapabilityGated && s.Capability == "" {
			return nil, fmt.Errorf("capability-gated section %q names no capability", s.Name)
		}
		if s.Class == SectionRankRestricted && s.Capability == "" && s.MinRank == "" {
			return nil, fmt.Errorf("rank-restricted section %q names neither min_rank nor capability", s.Name)
		}
	}
	return newSectionPolicy(doc.Sections), nil
}

func newSectionPolicy(sections []Section) *SectionPolicy {
	byName := make(map[string]Section, len(sections))
	for _, s := range sections {
		byName[s.Name] = s
	}
	return &SectionPolicy{sections: byName, ordered: sections}
}

// Classify returns the section definition by name.
func (p *SectionPolicy) Classify(name string) (Section, bool) {
	s, ok := p.sections[name]
	return s, ok
}

// Sections returns the catalog in declaration order.
func (p *SectionPolicy) Sections() []Section {
	return p.ordered
}

// CanEnter reports whether the role may enter the section at all. Only
// capability-gated sections deny entry; rank-restricted sections admit
// everyone and restrict visibility instead. The second return is false when
// the section does not exist.
func (p *SectionPolicy) CanEnter(role models.Role, name string) (allowed, found bool) {
	s, ok := p.sections[name]
	if !ok {
		return false, false
	}
	if !KnownRole(role) {
		return false, true
	}
	if s.Class == SectionCapabilityGated {
		return HasCapability(role, s.Capability), true
	}
	return true, true
}

// FullVisibility reports whether the role sees every item in the section, as
// opposed to only its own submissions.
func (p *SectionPolicy) FullVisibility(role models.Role, name string) bool {
	s, ok := p.sections[name]
	if !ok {
		return false
	}
	switch s.Class {
	case SectionOpen:
		return KnownRole(role)
	case SectionCapabilityGated:
		return HasCapability(role, s.Capability)
	case SectionRankRestricted:
		if s.Capability != "" {
			return HasCapability(role, s.Capability)
		}
		return RankAtLeast(role, s.MinRank)
	}
	return false
}

// TriageCapability returns the capability required to set report status on
// items in the section, or false if the section has no triage workflow.
func (p *SectionPolicy) TriageCapability(name string) (Capability, bool) {
	s, ok := p.sections[name]
	if !ok || !s.Triage {
		return "", false
	}
	cap := s.Capability
	if cap == "" {
		cap = CapabilityBugTriage
	}
	return cap, true
}

// UsesReportStatus reports whether items created in the section carry the
// report-status workflow state.
func (p *SectionPolicy) UsesReportStatus(name string) bool {
	s, ok := p.sections[name]
	return ok && s.Triage
}
