package search

import (
	"sort"
	"strings"

	"github.com/coolbeans/rulehub/pkg/manual"
)

// DefaultCanonicalOrder is the fixed authorial ordering of rule groups
// used when no search query is active. Groups not listed here sort after
// all canonical groups, alphabetically.
var DefaultCanonicalOrder = []string{
	"Safety Rules",
	"General Rules",
	"Scoring Rules",
	"Specific Game Rules",
	"Robot Rules",
	"Judging Rules",
	"Tournament Rules",
}

// DefaultDenylist names the rule groups hidden from the base variant of a
// program family. Broader variants (VEXU and similar) see the unfiltered
// set. Static configuration, not a derived computation.
var DefaultDenylist = []string{
	"VEX U Robot Rules",
	"VEX U Game Rules",
}

// OrderGroups sorts groups by the canonical ordering: a group whose name
// appears in canonical sorts by its canonical index; every other group
// sorts after all canonical groups, alphabetically among themselves. The
// input slice is not modified.
func OrderGroups(groups []*manual.RuleGroup, canonical []string) []*manual.RuleGroup {
	rank := make(map[string]int, len(canonical))
	for i, name := range canonical {
		rank[name] = i
	}

	out := make([]*manual.RuleGroup, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		ri, iCanonical := rank[out[i].Name]
		rj, jCanonical := rank[out[j].Name]
		switch {
		case iCanonical && jCanonical:
			return ri < rj
		case iCanonical:
			return true
		case jCanonical:
			return false
		default:
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		}
	})
	return out
}

// FilterGroupsByProgram returns the groups visible to the given program:
// groups that apply to the program, minus the denylisted names when the
// program is the base variant of its family.
func FilterGroupsByProgram(groups []*manual.RuleGroup, program manual.Program, denylist []string) []*manual.RuleGroup {
	denied := make(map[string]bool, len(denylist))
	if program.IsBaseVariant() {
		for _, name := range denylist {
			denied[name] = true
		}
	}

	out := make([]*manual.RuleGroup, 0, len(groups))
	for _, group := range groups {
		if !group.AppliesTo(program) {
			continue
		}
		if denied[group.Name] {
			continue
		}
		out = append(out, group)
	}
	return out
}
