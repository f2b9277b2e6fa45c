package models

// Nutriments carries the per-100g values the ranking engine compares.
// Pointers distinguish "not reported" from zero.
type Nutriments struct {
	Sugars100g *float64 `json:"sugars_100g,omitempty"`
	Salt100g   *float64 `json:"salt_100g,omitempty"`
}

// QualitySignals groups the optional per-product metrics used for scoring.
// All fields may be absent in catalog data.
type QualitySignals struct {
	NutritionGrade string     `json:"nutrition_grade,omitempty"`
	NovaGroup      *int       `json:"nova_group,omitempty"`
	EcoScoreGrade  string     `json:"ecoscore_grade,omitempty"`
	EcoScore       *float64   `json:"ecoscore_score,omitempty"`
	Nutriments     Nutriments `json:"nutriments"`
	AdditivesCount *int       `json:"additives_n,omitempty"`
	PalmOilCount   *int       `json:"ingredients_from_palm_oil_n,omitempty"`
}

// Product is a full catalog record fetched by barcode.
type Product struct {
	Code            string   `json:"code"`
	Name            string   `json:"product_name,omitempty"`
	Brands          string   `json:"brands,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	CategoriesTags  []string `json:"categories_tags,omitempty"`
	CountriesTags   []string `json:"countries_tags,omitempty"`
	IngredientsText string   `json:"ingredients_text,omitempty"`
	QualitySignals
}

// Baseline is the scanned product that alternatives are compared against.
// Category and country tags may be missing; the ranking engine backfills them
// with a catalog lookup by code.
type Baseline struct {
	Code           string   `json:"code"`
	Name           string   `json:"name,omitempty"`
	CategoriesTags []string `json:"categories_tags,omitempty"`
	CountriesTags  []string `json:"countries_tags,omitempty"`
	QualitySignals
}

// Candidate is a catalog search hit evaluated as a possible alternative.
type Candidate struct {
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	Brands          string   `json:"brands,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	CategoriesTags  []string `json:"categories_tags,omitempty"`
	LabelsTags      []string `json:"labels_tags,omitempty"`
	AllergensTags   []string `json:"allergens_tags,omitempty"`
	AnalysisTags    []string `json:"ingredients_analysis_tags,omitempty"`
	IngredientsText string   `json:"ingredients_text,omitempty"`
	QualitySignals
}

// SortMode orders the final suggestion list.
type SortMode string

const (
	SortBalanced SortMode = "balanced"
	SortNutri    SortMode = "nutri"
	SortNova     SortMode = "nova"
	SortEco      SortMode = "eco"
	SortSugar    SortMode = "sugar"
	SortSalt     SortMode = "salt"
)

// SuggestionPrefs are the user constraints applied while ranking alternatives.
type SuggestionPrefs struct {
	Diet           DietMode `json:"diet"`
	AvoidAllergens []string `json:"avoid_allergens,omitempty"`
	PalmOilFree    bool     `json:"palm_oil_free,omitempty"`
	RequiredLabels []string `json:"required_labels,omitempty"`
	Country        string   `json:"country,omitempty"`
	Limit          int      `json:"limit,omitempty"`
	Sort           SortMode `json:"sort,omitempty"`
}

// GradeDelta compares a letter grade between baseline and candidate.
type GradeDelta struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// ValueDelta compares a numeric signal between baseline and candidate.
type ValueDelta struct {
	From *float64 `json:"from,omitempty"`
	To   *float64 `json:"to,omitempty"`
}

// Deltas collects the per-metric baseline-vs-candidate comparisons. A delta
// is emitted only when at least one side has a value.
type Deltas struct {
	Nutri     *GradeDelta `json:"nutri,omitempty"`
	Nova      *ValueDelta `json:"nova,omitempty"`
	Eco       *GradeDelta `json:"eco,omitempty"`
	Sugar     *ValueDelta `json:"sugar,omitempty"`
	Salt      *ValueDelta `json:"salt,omitempty"`
	Additives *ValueDelta `json:"additives,omitempty"`
}

// Badges are quick facts the client renders on a suggestion card.
type Badges struct {
	PalmOilFree   bool     `json:"palm_oil_free"`
	MatchedLabels []string `json:"matched_labels,omitempty"`
}

// Suggestion is a candidate that survived filtering, scored against the
// baseline. DietVerdict is always "yes" because non-fits were filtered out.
type Suggestion struct {
	Candidate
	DietVerdict Verdict `json:"diet_verdict"`
	Badges      Badges  `json:"badges"`
	Deltas      Deltas  `json:"deltas"`
	Score       float64 `json:"score"`
}
