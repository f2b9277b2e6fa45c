package diet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Maitreya04/greendotv3/internal/models"
)

// match kinds used to discriminate otherwise identical reasons
const (
	matchExact   = "exact"
	matchFlag    = "flag"
	matchPattern = "pattern"
	matchPhrase  = "phrase"
)

// categoryFor maps a blocklist category name onto the closed reason
// category set. Unknown names fall through to additive.
func categoryFor(name string) models.ReasonCategory {
	switch name {
	case "meat":
		return models.CategoryMeat
	case "dairy":
		return models.CategoryDairy
	case "egg":
		return models.CategoryEgg
	case "honey":
		return models.CategoryHoney
	case "roots":
		return models.CategoryRoot
	case "fungi":
		return models.CategoryFungi
	default:
		// alcohol, animal_products, patterns and anything unrecognized
		return models.CategoryAdditive
	}
}

type reasonKey struct {
	text     string
	category models.ReasonCategory
	severity models.Severity
	kind     string
}

// match scans the token sequence and the rebuilt phrase against the resolved
// rule set and returns a deduplicated reason list. Advisory flags only apply
// to the jain diet; they are inert everywhere else.
func match(tokens []string, phrase string, resolved RuleSet, mode models.DietMode) []models.Reason {
	var reasons []models.Reason
	seen := make(map[reasonKey]bool)

	add := func(key reasonKey, explanation string) {
		if seen[key] {
			return
		}
		seen[key] = true
		reasons = append(reasons, models.Reason{
			Ingredient:  key.text,
			Category:    key.category,
			Severity:    key.severity,
			Explanation: explanation,
		})
	}

	// Category order is sorted so two identical calls produce identical
	// reason lists regardless of map iteration order.
	categories := make([]string, 0, len(resolved.Blocklist))
	for name := range resolved.Blocklist {
		if name != PatternsCategory {
			categories = append(categories, name)
		}
	}
	sort.Strings(categories)

	for _, name := range categories {
		terms := make(map[string]bool, len(resolved.Blocklist[name]))
		for _, term := range resolved.Blocklist[name] {
			terms[strings.ToLower(term)] = true
		}
		category := categoryFor(name)
		for _, token := range tokens {
			if terms[token] {
				add(reasonKey{token, category, models.SeverityBlocking, matchExact},
					fmt.Sprintf("%s is a restricted %s ingredient", token, name))
			}
		}
	}

	if mode == models.DietJain && len(resolved.Flags) > 0 {
		for _, token := range tokens {
			switch resolved.Flags[token] {
			case FlagUnsure:
				add(reasonKey{token, models.CategoryAdditive, models.SeverityWarning, matchFlag},
					fmt.Sprintf("%s may be derived from restricted sources", token))
			case FlagWarning:
				add(reasonKey{token, models.CategoryAdditive, models.SeverityWarning, matchFlag},
					fmt.Sprintf("%s is cautioned for a jain diet", token))
			}
		}
	}

	patterns := resolved.Blocklist[PatternsCategory]

	// Per-token substring containment: the first pattern hit wins per token.
	for _, token := range tokens {
		for _, pattern := range patterns {
			if strings.Contains(token, strings.ToLower(pattern)) {
				add(reasonKey{token, models.CategoryAdditive, models.SeverityBlocking, matchPattern},
					fmt.Sprintf("%s matches restricted pattern %q", token, pattern))
				break
			}
		}
	}

	// Whole-phrase containment catches multi-word patterns that token
	// matching cannot see. Keyed by the pattern text, not the token.
	for _, pattern := range patterns {
		lowered := strings.ToLower(pattern)
		if strings.Contains(phrase, lowered) {
			add(reasonKey{lowered, models.CategoryAdditive, models.SeverityBlocking, matchPhrase},
				fmt.Sprintf("ingredient list contains %q", pattern))
		}
	}

	return reasons
}
