// Package manual defines the game-manual data model for competition
// rulebooks: rules, rule groups, and the per-program/per-season manual
// snapshot that the markup and search engines operate on.
//
// A GameManual is treated as a read-only snapshot for the duration of a
// view session. Nothing in this package mutates a loaded manual; updates
// replace the whole value.
package manual

import (
	"fmt"
	"strings"
)

// Program identifies a competition program (e.g. "V5RC", "VEXU").
type Program string

const (
	ProgramV5RC  Program = "V5RC"
	ProgramVIQRC Program = "VIQRC"
	ProgramVEXU  Program = "VEXU"
	ProgramADC   Program = "ADC"
)

// baseVariants marks the programs that are the base variant of their
// family. Broader variants (university, aerial) see rule groups the base
// variants hide.
var baseVariants = map[Program]bool{
	ProgramV5RC:  true,
	ProgramVIQRC: true,
}

// IsBaseVariant reports whether the program is the base variant of its
// family.
func (p Program) IsBaseVariant() bool {
	return baseVariants[p]
}

// Rule is one addressable rule entry in a rulebook. Rules are immutable
// once loaded from the manual document.
type Rule struct {
	// ID is the unique identifier of the rule within the manual.
	ID string `json:"id"`

	// Code is the bracketed display token, e.g. "<SC1>" or "<R3d>".
	Code string `json:"code"`

	// Title is the short rule title.
	Title string `json:"title"`

	// Description is the one-line summary shown in rule lists.
	Description string `json:"description"`

	// FullText is the long body text in rulebook markup, if any.
	FullText string `json:"full_text,omitempty"`

	// CompleteText is the complete body text including violation notes.
	// When present it is a superset of FullText.
	CompleteText string `json:"complete_text,omitempty"`

	// Category is the rule's category label, e.g. "Scoring".
	Category string `json:"category"`

	// Link is an optional external reference URL.
	Link string `json:"link,omitempty"`

	// RelatedRuleIDs lists identifiers of related rules.
	RelatedRuleIDs []string `json:"related,omitempty"`

	// ImageURLs lists illustration URLs for the rule.
	ImageURLs []string `json:"images,omitempty"`
}

// BodyText returns the most complete body text available for the rule:
// CompleteText if present, else FullText, else the description.
func (r *Rule) BodyText() string {
	if r.CompleteText != "" {
		return r.CompleteText
	}
	if r.FullText != "" {
		return r.FullText
	}
	return r.Description
}

// RuleGroup is a named category bucket of rules. Rules keep the authorial
// order from the source document; the sequence is not guaranteed sorted.
type RuleGroup struct {
	// Name is the group name, e.g. "Safety Rules".
	Name string `json:"name"`

	// Programs lists the programs the group applies to. An empty list
	// means the group applies to every program.
	Programs []Program `json:"programs,omitempty"`

	// Rules holds the group's rules in authorial order.
	Rules []*Rule `json:"rules"`
}

// AppliesTo reports whether the group applies to the given program.
func (g *RuleGroup) AppliesTo(p Program) bool {
	if len(g.Programs) == 0 {
		return true
	}
	for _, gp := range g.Programs {
		if gp == p {
			return true
		}
	}
	return false
}

// GameManual is the full rulebook document for one program and season.
type GameManual struct {
	Program   Program      `json:"program"`
	Season    string       `json:"season"`
	Title     string       `json:"title"`
	SourceURL string       `json:"source_url,omitempty"`
	Version   string       `json:"version,omitempty"`
	QAURL     string       `json:"qa_url,omitempty"`
	Groups    []*RuleGroup `json:"groups"`
}

// ID returns the library identifier for the manual, derived from its
// program and season (e.g. "v5rc-2025-2026").
func (m *GameManual) ID() string {
	return fmt.Sprintf("%s-%s", strings.ToLower(string(m.Program)), m.Season)
}

// AllRules returns every rule in the manual in document order.
func (m *GameManual) AllRules() []*Rule {
	var rules []*Rule
	for _, group := range m.Groups {
		rules = append(rules, group.Rules...)
	}
	return rules
}

// RuleByID returns the rule with the given identifier, or nil.
func (m *GameManual) RuleByID(id string) *Rule {
	for _, group := range m.Groups {
		for _, rule := range group.Rules {
			if rule.ID == id {
				return rule
			}
		}
	}
	return nil
}

// RuleByCode returns the first rule whose code matches exactly, or nil.
func (m *GameManual) RuleByCode(code string) *Rule {
	for _, group := range m.Groups {
		for _, rule := range group.Rules {
			if rule.Code == code {
				return rule
			}
		}
	}
	return nil
}

// GroupOf returns the group that contains the given rule ID, or nil.
func (m *GameManual) GroupOf(ruleID string) *RuleGroup {
	for _, group := range m.Groups {
		for _, rule := range group.Rules {
			if rule.ID == ruleID {
				return group
			}
		}
	}
	return nil
}

// Statistics summarizes a manual for library manifests and status output.
type Statistics struct {
	Groups     int            `json:"groups"`
	Rules      int            `json:"rules"`
	ByCategory map[string]int `json:"by_category,omitempty"`
}

// Statistics returns counts of groups, rules, and rules per category.
func (m *GameManual) Statistics() Statistics {
	stats := Statistics{
		Groups:     len(m.Groups),
		ByCategory: make(map[string]int),
	}
	for _, group := range m.Groups {
		stats.Rules += len(group.Rules)
		for _, rule := range group.Rules {
			if rule.Category != "" {
				stats.ByCategory[rule.Category]++
			}
		}
	}
	return stats
}
