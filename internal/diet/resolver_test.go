package diet

import (
	"reflect"
	"testing"
)

func TestResolveInheritance(t *testing.T) {
	tables := DefaultTables()

	t.Run("vegan inherits vegetarian meat terms", func(t *testing.T) {
		resolved := tables.Resolve("vegan")
		if !containsTerm(resolved.Blocklist["meat"], "chicken") {
			t.Error("vegan rule set should inherit meat terms from vegetarian")
		}
		if !containsTerm(resolved.Blocklist["dairy"], "milk") {
			t.Error("vegan rule set should carry its own dairy terms")
		}
	})

	t.Run("jain inherits the whole chain", func(t *testing.T) {
		resolved := tables.Resolve("jain")
		for category, term := range map[string]string{
			"meat":  "beef",
			"dairy": "whey",
			"roots": "onion",
			"fungi": "mushroom",
		} {
			if !containsTerm(resolved.Blocklist[category], term) {
				t.Errorf("jain rule set missing %q in category %q", term, category)
			}
		}
	})

	t.Run("patterns merge into the reserved bucket", func(t *testing.T) {
		resolved := tables.Resolve("vegan")
		if !containsTerm(resolved.Blocklist[PatternsCategory], "fish oil") {
			t.Error("vegan patterns should include inherited vegetarian patterns")
		}
		if !containsTerm(resolved.Blocklist[PatternsCategory], "milk solids") {
			t.Error("vegan patterns should include its own layer")
		}
	})

	t.Run("vegetarian does not see child layers", func(t *testing.T) {
		resolved := tables.Resolve("vegetarian")
		if len(resolved.Blocklist["dairy"]) != 0 {
			t.Error("vegetarian rule set should not contain vegan dairy terms")
		}
		if len(resolved.Flags) != 0 {
			t.Error("vegetarian rule set should not contain jain flags")
		}
	})

	t.Run("unknown rule resolves empty", func(t *testing.T) {
		resolved := tables.Resolve("paleo")
		if len(resolved.Blocklist) != 0 || len(resolved.Flags) != 0 {
			t.Errorf("unknown rule should resolve to an empty set, got %v", resolved)
		}
	})
}

func TestResolveMergeSemantics(t *testing.T) {
	tables := &Tables{
		Rules: map[string]DietRule{
			"parent": {
				Blocklist: map[string][]string{"meat": {"beef", "pork"}},
				Patterns:  []string{"animal fat"},
				Flags:     map[string]string{"vinegar": FlagWarning, "enzymes": FlagUnsure},
			},
			"child": {
				Extends:   "parent",
				Blocklist: map[string][]string{"meat": {"Beef", "chicken"}},
				Patterns:  []string{"animal fat", "bone char"},
				Flags:     map[string]string{"vinegar": FlagUnsure},
			},
		},
	}

	resolved := tables.Resolve("child")

	t.Run("terms deduplicate per category", func(t *testing.T) {
		expected := []string{"beef", "pork", "chicken"}
		if !reflect.DeepEqual(resolved.Blocklist["meat"], expected) {
			t.Errorf("meat terms = %v, want %v", resolved.Blocklist["meat"], expected)
		}
	})

	t.Run("patterns deduplicate", func(t *testing.T) {
		expected := []string{"animal fat", "bone char"}
		if !reflect.DeepEqual(resolved.Blocklist[PatternsCategory], expected) {
			t.Errorf("patterns = %v, want %v", resolved.Blocklist[PatternsCategory], expected)
		}
	})

	t.Run("child flags override parent flags", func(t *testing.T) {
		if resolved.Flags["vinegar"] != FlagUnsure {
			t.Errorf("vinegar flag = %q, want child override %q", resolved.Flags["vinegar"], FlagUnsure)
		}
		if resolved.Flags["enzymes"] != FlagUnsure {
			t.Error("parent-only flags should survive the merge")
		}
	})
}

func TestResolveCycleDoesNotHang(t *testing.T) {
	tables := &Tables{
		Rules: map[string]DietRule{
			"a": {
				Extends:   "b",
				Blocklist: map[string][]string{"meat": {"beef"}},
			},
			"b": {
				Extends:   "a",
				Blocklist: map[string][]string{"dairy": {"milk"}},
			},
		},
	}

	// Must terminate and keep whatever was accumulated before the repeat.
	resolved := tables.Resolve("a")
	if !containsTerm(resolved.Blocklist["meat"], "beef") {
		t.Error("cycle resolution should keep the target rule's own terms")
	}
	if !containsTerm(resolved.Blocklist["dairy"], "milk") {
		t.Error("cycle resolution should keep the ancestor layer seen before the repeat")
	}
}

func containsTerm(terms []string, want string) bool {
	for _, term := range terms {
		if term == want {
			return true
		}
	}
	return false
}
