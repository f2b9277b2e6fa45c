package models

import "strings"

// DietMode selects which diet rule set a classification resolves.
type DietMode string

const (
	DietVegetarian DietMode = "vegetarian"
	DietVegan      DietMode = "vegan"
	DietJain       DietMode = "jain"
)

// ParseDietMode validates a diet string coming from the API surface.
func ParseDietMode(s string) (DietMode, bool) {
	switch mode := DietMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case DietVegetarian, DietVegan, DietJain:
		return mode, true
	}
	return "", false
}

// Verdict is the three-way outcome of a classification.
type Verdict string

const (
	VerdictYes    Verdict = "yes"
	VerdictNo     Verdict = "no"
	VerdictUnsure Verdict = "unsure"
)

// Severity says how strongly a matched ingredient counts against the diet.
// A blocking reason forces verdict "no"; a warning only downgrades to "unsure".
type Severity string

const (
	SeverityBlocking Severity = "blocking"
	SeverityWarning  Severity = "warning"
)

// ReasonCategory is the closed set of categories a reason is reported under.
type ReasonCategory string

const (
	CategoryMeat     ReasonCategory = "meat"
	CategoryDairy    ReasonCategory = "dairy"
	CategoryEgg      ReasonCategory = "egg"
	CategoryHoney    ReasonCategory = "honey"
	CategoryRoot     ReasonCategory = "root"
	CategoryFungi    ReasonCategory = "fungi"
	CategoryAdditive ReasonCategory = "additive"
)

// Reason explains one ingredient match against the resolved rule set.
type Reason struct {
	Ingredient  string         `json:"ingredient"`
	Category    ReasonCategory `json:"category"`
	Severity    Severity       `json:"severity"`
	Explanation string         `json:"explanation"`
}

// AnalysisResult is the full outcome of classifying one ingredient list.
// Confidence reflects how much ingredient text was available to analyze
// (0-100), not how certain the classification itself is.
type AnalysisResult struct {
	Verdict    Verdict  `json:"verdict"`
	Confidence int      `json:"confidence"`
	Reasons    []Reason `json:"reasons"`
	Allergens  []string `json:"allergens"`
}
