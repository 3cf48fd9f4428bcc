package search

import (
	"testing"

	"github.com/coolbeans/rulehub/pkg/manual"
)

func namedGroups(names ...string) []*manual.RuleGroup {
	groups := make([]*manual.RuleGroup, len(names))
	for i, name := range names {
		groups[i] = &manual.RuleGroup{Name: name}
	}
	return groups
}

func groupNames(groups []*manual.RuleGroup) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}

func TestOrderGroups_CanonicalThenAlphabetical(t *testing.T) {
	groups := namedGroups("Zeta Rules", "Scoring Rules", "Safety Rules")
	out := OrderGroups(groups, []string{"Scoring Rules", "Safety Rules"})

	want := []string{"Scoring Rules", "Safety Rules", "Zeta Rules"}
	got := groupNames(out)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestOrderGroups_UnknownGroupsAlphabetical(t *testing.T) {
	groups := namedGroups("delta", "Alpha", "charlie", "Safety Rules")
	out := OrderGroups(groups, []string{"Safety Rules"})

	want := []string{"Safety Rules", "Alpha", "charlie", "delta"}
	got := groupNames(out)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestOrderGroups_InputNotMutated(t *testing.T) {
	groups := namedGroups("B", "A")
	OrderGroups(groups, nil)
	if groups[0].Name != "B" || groups[1].Name != "A" {
		t.Error("input slice was reordered")
	}
}

func TestFilterGroupsByProgram_DenylistOnBaseVariant(t *testing.T) {
	groups := namedGroups("Robot Rules", "VEX U Robot Rules", "VEX U Game Rules")

	base := FilterGroupsByProgram(groups, manual.ProgramV5RC, DefaultDenylist)
	got := groupNames(base)
	if len(got) != 1 || got[0] != "Robot Rules" {
		t.Errorf("base variant sees %v, want denylisted groups removed", got)
	}

	broader := FilterGroupsByProgram(groups, manual.ProgramVEXU, DefaultDenylist)
	if len(broader) != 3 {
		t.Errorf("broader variant sees %d groups, want the unfiltered set", len(broader))
	}
}

func TestFilterGroupsByProgram_Membership(t *testing.T) {
	groups := []*manual.RuleGroup{
		{Name: "Everyone"},
		{Name: "IQ Only", Programs: []manual.Program{manual.ProgramVIQRC}},
	}
	out := FilterGroupsByProgram(groups, manual.ProgramV5RC, nil)
	got := groupNames(out)
	if len(got) != 1 || got[0] != "Everyone" {
		t.Errorf("got %v, want groups scoped to other programs removed", got)
	}
}
