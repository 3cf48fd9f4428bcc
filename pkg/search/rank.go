// Package search ranks and orders rule collections: free-text search with
// field-priority scoring, canonical group ordering, and program-scoped
// group filtering.
//
// Ranking and ordering are mutually exclusive per render pass: an active
// query imposes hit-priority ordering, otherwise the canonical group
// order applies.
package search

import (
	"sort"
	"strings"

	"github.com/coolbeans/rulehub/pkg/manual"
	"github.com/coolbeans/rulehub/pkg/markup"
)

// Priority scores by matched field. Matching stops at the first field
// that contains the query; the scores are not cumulative.
const (
	PriorityCode     = 4
	PriorityTitle    = 3
	PriorityCategory = 2
	PriorityBody     = 1
	PriorityNone     = 0
)

// Hit pairs a matched rule with its owning group and priority score.
// Hits are computed fresh per query; they are never cached.
type Hit struct {
	Rule     *manual.Rule
	Group    *manual.RuleGroup
	Priority int
}

// Score computes the priority score of a rule for a query. Fields are
// checked in strict order (code, title, category, then stripped body
// text) and the first containing field decides the score. Comparison is
// case-insensitive substring containment.
func Score(rule *manual.Rule, query string) int {
	q := strings.ToLower(query)
	if q == "" {
		return PriorityNone
	}
	switch {
	case strings.Contains(strings.ToLower(rule.Code), q):
		return PriorityCode
	case strings.Contains(strings.ToLower(rule.Title), q):
		return PriorityTitle
	case strings.Contains(strings.ToLower(rule.Category), q):
		return PriorityCategory
	case bodyContains(rule, q):
		return PriorityBody
	default:
		return PriorityNone
	}
}

// bodyContains matches the query against the rule's description and body
// texts with markup tokens removed, so authored markers never produce or
// suppress matches.
func bodyContains(rule *manual.Rule, q string) bool {
	for _, text := range []string{rule.Description, rule.FullText, rule.CompleteText} {
		if text == "" {
			continue
		}
		if strings.Contains(strings.ToLower(markup.Strip(text)), q) {
			return true
		}
	}
	return false
}

// RankAndFilter scores every rule in every group against the query,
// drops non-matches, and rebuilds the groups in rank order. An empty
// query returns the groups unchanged.
//
// The sort is stable and descending by priority only: ties keep their
// original relative order. Rebuilt groups appear in first-appearance
// order among the sorted hits, not in canonical order.
func RankAndFilter(groups []*manual.RuleGroup, query string) []*manual.RuleGroup {
	if strings.TrimSpace(query) == "" {
		return groups
	}

	var hits []Hit
	for _, group := range groups {
		for _, rule := range group.Rules {
			if priority := Score(rule, query); priority > PriorityNone {
				hits = append(hits, Hit{Rule: rule, Group: group, Priority: priority})
			}
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Priority > hits[j].Priority
	})

	return regroup(hits)
}

// regroup rebuilds rule groups from ranked hits, preserving the
// rank-induced order of rules within each group.
func regroup(hits []Hit) []*manual.RuleGroup {
	var out []*manual.RuleGroup
	index := make(map[string]*manual.RuleGroup)
	for _, hit := range hits {
		group, ok := index[hit.Group.Name]
		if !ok {
			group = &manual.RuleGroup{
				Name:     hit.Group.Name,
				Programs: hit.Group.Programs,
			}
			index[hit.Group.Name] = group
			out = append(out, group)
		}
		group.Rules = append(group.Rules, hit.Rule)
	}
	if out == nil {
		return []*manual.RuleGroup{}
	}
	return out
}
