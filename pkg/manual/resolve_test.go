package manual

import "testing"

func resolveManual() *GameManual {
	return &GameManual{
		Program: ProgramV5RC,
		Season:  "2025-2026",
		Groups: []*RuleGroup{
			{
				Name: "Scoring Rules",
				Rules: []*Rule{
					{ID: "sc1", Code: "<SC1>"},
					{ID: "r3", Code: "<R3>"},
					{ID: "g7a", Code: "<G7a>"},
				},
			},
		},
	}
}

func TestResolveReference_Exact(t *testing.T) {
	m := resolveManual()
	rule, ok := ResolveReference("<SC1>", m)
	if !ok || rule.ID != "sc1" {
		t.Errorf("ResolveReference(<SC1>) = %+v, %v", rule, ok)
	}
}

func TestResolveReference_ExactSuffixPreferred(t *testing.T) {
	// <G7a> exists literally and must win over the stripped <G7>.
	m := resolveManual()
	rule, ok := ResolveReference("<G7a>", m)
	if !ok || rule.ID != "g7a" {
		t.Errorf("ResolveReference(<G7a>) = %+v, %v", rule, ok)
	}
}

func TestResolveReference_SuffixFallback(t *testing.T) {
	m := resolveManual()
	rule, ok := ResolveReference("<R3d>", m)
	if !ok || rule.ID != "r3" {
		t.Errorf("ResolveReference(<R3d>) = %+v, %v, want fallback to <R3>", rule, ok)
	}
}

func TestResolveReference_NotFound(t *testing.T) {
	m := resolveManual()
	if _, ok := ResolveReference("<T9>", m); ok {
		t.Error("unknown code should not resolve")
	}
	// No partial matching: <SC> is not a prefix lookup.
	if _, ok := ResolveReference("<SC>", m); ok {
		t.Error("partial code should not resolve")
	}
	if _, ok := ResolveReference("", m); ok {
		t.Error("empty code should not resolve")
	}
	if _, ok := ResolveReference("<SC1>", nil); ok {
		t.Error("nil manual should not resolve")
	}
}
