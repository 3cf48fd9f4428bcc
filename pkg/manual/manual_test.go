package manual

import (
	"strings"
	"testing"
)

func testManual() *GameManual {
	return &GameManual{
		Program: ProgramV5RC,
		Season:  "2025-2026",
		Title:   "Test Game Manual",
		Groups: []*RuleGroup{
			{
				Name: "Safety Rules",
				Rules: []*Rule{
					{ID: "s1", Code: "<S1>", Title: "Be safe", Category: "Safety"},
				},
			},
			{
				Name:     "Scoring Rules",
				Programs: []Program{ProgramV5RC, ProgramVEXU},
				Rules: []*Rule{
					{ID: "sc1", Code: "<SC1>", Title: "Scoring basics", Category: "Scoring"},
					{ID: "r3", Code: "<R3>", Title: "Robot sizing", Category: "Robot"},
				},
			},
		},
	}
}

func TestGameManual_Lookups(t *testing.T) {
	m := testManual()

	if got := len(m.AllRules()); got != 3 {
		t.Errorf("AllRules = %d rules, want 3", got)
	}
	if rule := m.RuleByID("sc1"); rule == nil || rule.Code != "<SC1>" {
		t.Errorf("RuleByID(sc1) = %+v", rule)
	}
	if rule := m.RuleByCode("<R3>"); rule == nil || rule.ID != "r3" {
		t.Errorf("RuleByCode(<R3>) = %+v", rule)
	}
	if m.RuleByCode("<NOPE1>") != nil {
		t.Error("RuleByCode should return nil for unknown code")
	}
	if group := m.GroupOf("r3"); group == nil || group.Name != "Scoring Rules" {
		t.Errorf("GroupOf(r3) = %+v", group)
	}
}

func TestGameManual_ID(t *testing.T) {
	m := testManual()
	if got := m.ID(); got != "v5rc-2025-2026" {
		t.Errorf("ID = %q", got)
	}
}

func TestGameManual_Statistics(t *testing.T) {
	stats := testManual().Statistics()
	if stats.Groups != 2 || stats.Rules != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ByCategory["Scoring"] != 1 {
		t.Errorf("ByCategory = %v", stats.ByCategory)
	}
}

func TestRuleGroup_AppliesTo(t *testing.T) {
	m := testManual()
	scoring := m.Groups[1]
	if !scoring.AppliesTo(ProgramVEXU) {
		t.Error("scoring group should apply to VEXU")
	}
	if scoring.AppliesTo(ProgramVIQRC) {
		t.Error("scoring group should not apply to VIQRC")
	}
	// Empty program list applies everywhere.
	if !m.Groups[0].AppliesTo(ProgramADC) {
		t.Error("group without programs should apply to every program")
	}
}

func TestProgram_IsBaseVariant(t *testing.T) {
	if !ProgramV5RC.IsBaseVariant() || !ProgramVIQRC.IsBaseVariant() {
		t.Error("V5RC and VIQRC are base variants")
	}
	if ProgramVEXU.IsBaseVariant() {
		t.Error("VEXU is not a base variant")
	}
}

func TestRule_BodyText(t *testing.T) {
	r := &Rule{Description: "d", FullText: "f", CompleteText: "c"}
	if r.BodyText() != "c" {
		t.Errorf("BodyText = %q, want complete text first", r.BodyText())
	}
	r.CompleteText = ""
	if r.BodyText() != "f" {
		t.Errorf("BodyText = %q, want full text", r.BodyText())
	}
	r.FullText = ""
	if r.BodyText() != "d" {
		t.Errorf("BodyText = %q, want description", r.BodyText())
	}
}

func TestLoad(t *testing.T) {
	doc := `{
		"program": "V5RC",
		"season": "2025-2026",
		"title": "Test",
		"groups": [
			{"name": "Safety Rules", "rules": [{"id": "s1", "code": "<S1>", "title": "Be safe"}]}
		]
	}`
	m, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Program != ProgramV5RC || len(m.Groups) != 1 {
		t.Errorf("manual = %+v", m)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"not json", "not json"},
		{"no program", `{"season": "2025-2026"}`},
		{"no season", `{"program": "V5RC"}`},
		{"unnamed group", `{"program": "V5RC", "season": "x", "groups": [{"rules": []}]}`},
		{"rule without id", `{"program": "V5RC", "season": "x", "groups": [{"name": "G", "rules": [{"code": "<G1>"}]}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tc.doc)); err == nil {
				t.Error("Load should fail")
			}
		})
	}
}
