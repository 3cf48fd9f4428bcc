package manual

import "regexp"

// codeSuffixPattern matches a rule code carrying a single trailing
// lowercase sub-part letter, e.g. "<R3d>". The first capture group is the
// code with the suffix stripped (brackets restored by the caller).
var codeSuffixPattern = regexp.MustCompile(`^<([A-Z]+[0-9]+)[a-z]>$`)

// ResolveReference maps a rule-code token to the rule it names within the
// manual. Resolution is exact-match only: the code is compared verbatim
// against every rule's code across all groups; if nothing matches and the
// code carries a lowercase sub-part suffix, the lookup is retried with the
// suffix stripped ("<R3d>" falls back to "<R3>"). There is no partial or
// fuzzy matching. Returns the first match in document order, or false.
func ResolveReference(code string, m *GameManual) (*Rule, bool) {
	if m == nil || code == "" {
		return nil, false
	}
	if rule := m.RuleByCode(code); rule != nil {
		return rule, true
	}
	if sub := codeSuffixPattern.FindStringSubmatch(code); sub != nil {
		if rule := m.RuleByCode("<" + sub[1] + ">"); rule != nil {
			return rule, true
		}
	}
	return nil, false
}
