// Package diet implements the diet classification engine: it turns raw
// ingredient text into a verdict, confidence score, human-readable reasons
// and a normalized allergen set for a selected diet mode.
package diet

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Advisory flag levels for terms a diet discourages without blocking them.
const (
	FlagUnsure  = "unsure"
	FlagWarning = "warning"
)

// PatternsCategory is the reserved blocklist bucket that a rule's flat
// patterns list is merged into during resolution.
const PatternsCategory = "patterns"

// DietRule is one named rule layer. Rules form an inheritance chain via
// Extends; Tables.Resolve flattens the chain into a RuleSet.
type DietRule struct {
	Extends   string              `json:"extends,omitempty"`
	Blocklist map[string][]string `json:"blocklist,omitempty"`
	Patterns  []string            `json:"patterns,omitempty"`
	Flags     map[string]string   `json:"flags,omitempty"`
}

// AllergenEntry names one allergen and the exact tokens that reveal it.
// Entries are kept in a slice so extraction order is stable.
type AllergenEntry struct {
	Name  string   `json:"name"`
	Terms []string `json:"terms"`
}

// Tables holds the rule and allergen data classification runs against.
// Loaded once at startup and treated as read-only afterwards.
type Tables struct {
	Rules     map[string]DietRule `json:"rules"`
	Allergens []AllergenEntry     `json:"allergens"`
}

// LoadTables reads a JSON override file in the same shape as the built-in
// tables. Operators can hot-swap rule data without recompiling.
func LoadTables(path string) (*Tables, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open rules file: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("could not read rules file: %w", err)
	}

	tables := &Tables{}
	if err := json.Unmarshal(bytes, tables); err != nil {
		return nil, fmt.Errorf("could not parse rules file: %w", err)
	}

	return tables, nil
}

// DefaultTables returns the built-in rule and allergen data. The vegetarian
// rule is the root of the chain; vegan extends it and jain extends vegan.
func DefaultTables() *Tables {
	return &Tables{
		Rules: map[string]DietRule{
			"vegetarian": {
				Blocklist: map[string][]string{
					"meat": {
						"chicken", "beef", "pork", "mutton", "lamb", "veal",
						"turkey", "duck", "goat", "bacon", "ham", "salami",
						"pepperoni", "sausage", "fish", "tuna", "salmon",
						"sardine", "sardines", "anchovy", "anchovies", "cod",
						"prawn", "prawns", "shrimp", "crab", "lobster",
						"squid", "octopus", "oyster", "mussels",
					},
					"animal_products": {
						"gelatin", "gelatine", "lard", "tallow", "suet",
						"rennet", "pepsin", "carmine", "cochineal",
						"isinglass", "shellac", "l-cysteine",
						"e120", "e441", "e542", "e904", "e920",
					},
				},
				Patterns: []string{
					"fish oil", "fish sauce", "animal fat", "animal rennet",
					"bone char", "bone phosphate", "chicken extract",
					"beef extract", "meat extract", "oyster sauce",
					"anchov", "gelat",
				},
			},
			"vegan": {
				Extends: "vegetarian",
				Blocklist: map[string][]string{
					"dairy": {
						"milk", "whey", "casein", "butter", "cream", "cheese",
						"ghee", "lactose", "yogurt", "yoghurt", "curd",
						"paneer", "buttermilk",
					},
					"egg": {
						"egg", "eggs", "albumin", "albumen", "mayonnaise",
						"meringue",
					},
					"honey": {
						"honey", "beeswax", "propolis", "e901", "e913",
					},
				},
				Patterns: []string{
					"milk solids", "milk powder", "milk fat", "whey powder",
					"egg white", "egg yolk", "royal jelly", "caseinate",
					"lactalbumin",
				},
			},
			"jain": {
				Extends: "vegan",
				Blocklist: map[string][]string{
					"roots": {
						"potato", "potatoes", "onion", "onions", "garlic",
						"carrot", "carrots", "ginger", "radish", "beetroot",
						"turnip", "leek", "leeks", "shallot",
					},
					"fungi": {
						"mushroom", "mushrooms", "yeast", "truffle",
					},
					"alcohol": {
						"alcohol", "wine", "beer", "rum", "brandy", "whisky",
						"liqueur",
					},
				},
				Patterns: []string{
					"onion powder", "garlic powder", "root extract",
				},
				Flags: map[string]string{
					"vinegar":   FlagUnsure,
					"cultured":  FlagUnsure,
					"enzymes":   FlagUnsure,
					"fermented": FlagWarning,
					"brewed":    FlagWarning,
				},
			},
		},
		Allergens: []AllergenEntry{
			{Name: "gluten", Terms: []string{"wheat", "barley", "rye", "malt", "semolina", "spelt", "gluten"}},
			{Name: "milk", Terms: []string{"milk", "whey", "casein", "lactose", "butter", "cream", "ghee", "cheese"}},
			{Name: "eggs", Terms: []string{"egg", "eggs", "albumin", "albumen"}},
			{Name: "soy", Terms: []string{"soy", "soya", "soybean", "soybeans", "tofu", "edamame"}},
			{Name: "peanuts", Terms: []string{"peanut", "peanuts", "groundnut", "groundnuts"}},
			{Name: "tree nuts", Terms: []string{"almond", "almonds", "cashew", "cashews", "hazelnut", "hazelnuts", "walnut", "walnuts", "pistachio", "pistachios", "pecan", "pecans"}},
			{Name: "sesame", Terms: []string{"sesame", "tahini"}},
			{Name: "fish", Terms: []string{"fish", "anchovy", "anchovies", "tuna", "salmon", "sardine", "sardines", "cod"}},
			{Name: "crustaceans", Terms: []string{"shrimp", "prawn", "prawns", "crab", "lobster"}},
			{Name: "mustard", Terms: []string{"mustard"}},
			{Name: "celery", Terms: []string{"celery", "celeriac"}},
			{Name: "sulphites", Terms: []string{"sulphite", "sulphites", "sulfite", "sulfites", "e220", "e221", "e222"}},
		},
	}
}
