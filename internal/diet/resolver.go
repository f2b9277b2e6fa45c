package diet

import "strings"

// RuleSet is the flattened result of following a rule's extends chain.
// Blocklist maps category names to exact-match terms; the reserved
// "patterns" category holds free-text substring patterns.
type RuleSet struct {
	Blocklist map[string][]string
	Flags     map[string]string
}

// Resolve flattens the named rule's inheritance chain into one RuleSet.
// The chain is walked root ancestor first so child layers can override
// parent flags and append new terms. A name seen twice stops the walk
// silently, so a miswired extends cycle cannot hang resolution.
func (t *Tables) Resolve(name string) RuleSet {
	var chain []DietRule
	visited := make(map[string]bool)

	for cur := name; cur != "" && !visited[cur]; {
		visited[cur] = true
		rule, ok := t.Rules[cur]
		if !ok {
			break
		}
		chain = append([]DietRule{rule}, chain...)
		cur = rule.Extends
	}

	resolved := RuleSet{
		Blocklist: make(map[string][]string),
		Flags:     make(map[string]string),
	}
	for _, layer := range chain {
		for category, terms := range layer.Blocklist {
			resolved.appendTerms(category, terms)
		}
		resolved.appendTerms(PatternsCategory, layer.Patterns)
		for term, level := range layer.Flags {
			resolved.Flags[term] = level
		}
	}
	return resolved
}

// appendTerms merges terms into a blocklist category, keeping the supplied
// casing and skipping terms the category already carries.
func (rs *RuleSet) appendTerms(category string, terms []string) {
	if len(terms) == 0 {
		return
	}
	existing := rs.Blocklist[category]
	seen := make(map[string]bool, len(existing))
	for _, term := range existing {
		seen[strings.ToLower(term)] = true
	}
	for _, term := range terms {
		key := strings.ToLower(term)
		if seen[key] {
			continue
		}
		seen[key] = true
		existing = append(existing, term)
	}
	rs.Blocklist[category] = existing
}
