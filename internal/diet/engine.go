package diet

import (
	"strings"

	"github.com/Maitreya04/greendotv3/internal/models"
)

// Engine classifies ingredient text against a diet's resolved rule set.
// It holds only the read-only tables, so one Engine is safe for concurrent
// use from any number of goroutines.
type Engine struct {
	tables *Tables
}

// NewEngine creates an engine over the given tables, falling back to the
// built-in tables when nil.
func NewEngine(tables *Tables) *Engine {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Engine{tables: tables}
}

// Classify turns raw ingredient text into a verdict, confidence, reasons and
// allergens for the selected diet. It is a pure function of its inputs:
// malformed or empty input degrades to a low-confidence result, never an
// error.
func (e *Engine) Classify(ingredientsText string, diet models.DietMode) models.AnalysisResult {
	tokens := Tokenize(ingredientsText)
	phrase := strings.Join(tokens, " ")
	resolved := e.tables.Resolve(string(diet))

	reasons := match(tokens, phrase, resolved, diet)
	verdict := reduceVerdict(reasons)

	return models.AnalysisResult{
		Verdict:    verdict,
		Confidence: confidence(ingredientsText, reasons, verdict),
		Reasons:    reasons,
		Allergens:  e.tables.ExtractAllergens(tokens),
	}
}
