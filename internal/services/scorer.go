package services

import (
	"math"
	"strings"

	"github.com/Maitreya04/greendotv3/internal/models"
)

// gradeRank orders letter grades best-first: a=1 .. e=5. Unknown grades
// rank 0 and are excluded from comparisons.
func gradeRank(grade string) int {
	switch strings.ToLower(strings.TrimSpace(grade)) {
	case "a":
		return 1
	case "b":
		return 2
	case "c":
		return 3
	case "d":
		return 4
	case "e":
		return 5
	}
	return 0
}

// improvementScore is the balanced-mode score: credit for every signal on
// which the candidate strictly improves on the baseline, a penalty for
// added additives. Also used as the tiebreak in single-metric sort modes.
func improvementScore(candidate models.Candidate, baseline models.Baseline, prefs models.SuggestionPrefs) float64 {
	score := 0.0

	if b, c := gradeRank(baseline.NutritionGrade), gradeRank(candidate.NutritionGrade); b > 0 && c > 0 && c < b {
		score += 20 + 10*float64(b-c)
	}
	if baseline.NovaGroup != nil && candidate.NovaGroup != nil && *candidate.NovaGroup < *baseline.NovaGroup {
		score += 12 + 6*float64(*baseline.NovaGroup-*candidate.NovaGroup)
	}
	if b, c := gradeRank(baseline.EcoScoreGrade), gradeRank(candidate.EcoScoreGrade); b > 0 && c > 0 && c < b {
		score += 15 + 7*float64(b-c)
	}
	if isPalmOilFree(candidate.PalmOilCount) && !isPalmOilFree(baseline.PalmOilCount) {
		score += 10
	}
	score += 8 * float64(len(matchedLabels(candidate.LabelsTags, prefs.RequiredLabels)))

	if baseline.Nutriments.Sugars100g != nil && candidate.Nutriments.Sugars100g != nil {
		b, c := *baseline.Nutriments.Sugars100g, *candidate.Nutriments.Sugars100g
		if b > 0 && c < b {
			score += 10 * (b - c) / b
		}
	}
	if baseline.AdditivesCount != nil && candidate.AdditivesCount != nil && *candidate.AdditivesCount > *baseline.AdditivesCount {
		score -= 8 * float64(*candidate.AdditivesCount-*baseline.AdditivesCount)
	}

	return score
}

// sortMetric extracts the ascending sort key for a single-metric mode.
// Candidates missing the chosen metric sort last.
func sortMetric(candidate models.Candidate, mode models.SortMode) float64 {
	switch mode {
	case models.SortNutri:
		if rank := gradeRank(candidate.NutritionGrade); rank > 0 {
			return float64(rank)
		}
	case models.SortNova:
		if candidate.NovaGroup != nil {
			return float64(*candidate.NovaGroup)
		}
	case models.SortEco:
		if rank := gradeRank(candidate.EcoScoreGrade); rank > 0 {
			return float64(rank)
		}
	case models.SortSugar:
		if candidate.Nutriments.Sugars100g != nil {
			return *candidate.Nutriments.Sugars100g
		}
	case models.SortSalt:
		if candidate.Nutriments.Salt100g != nil {
			return *candidate.Nutriments.Salt100g
		}
	}
	return math.Inf(1)
}

// buildDeltas emits the per-metric baseline-vs-candidate pairs, each present
// only when at least one side has a defined value.
func buildDeltas(baseline models.Baseline, candidate models.Candidate) models.Deltas {
	var deltas models.Deltas

	if baseline.NutritionGrade != "" || candidate.NutritionGrade != "" {
		deltas.Nutri = &models.GradeDelta{
			From: strings.ToLower(baseline.NutritionGrade),
			To:   strings.ToLower(candidate.NutritionGrade),
		}
	}
	if baseline.NovaGroup != nil || candidate.NovaGroup != nil {
		deltas.Nova = &models.ValueDelta{
			From: intValue(baseline.NovaGroup),
			To:   intValue(candidate.NovaGroup),
		}
	}
	if baseline.EcoScoreGrade != "" || candidate.EcoScoreGrade != "" {
		deltas.Eco = &models.GradeDelta{
			From: strings.ToLower(baseline.EcoScoreGrade),
			To:   strings.ToLower(candidate.EcoScoreGrade),
		}
	}
	if baseline.Nutriments.Sugars100g != nil || candidate.Nutriments.Sugars100g != nil {
		deltas.Sugar = &models.ValueDelta{
			From: baseline.Nutriments.Sugars100g,
			To:   candidate.Nutriments.Sugars100g,
		}
	}
	if baseline.Nutriments.Salt100g != nil || candidate.Nutriments.Salt100g != nil {
		deltas.Salt = &models.ValueDelta{
			From: baseline.Nutriments.Salt100g,
			To:   candidate.Nutriments.Salt100g,
		}
	}
	if baseline.AdditivesCount != nil || candidate.AdditivesCount != nil {
		deltas.Additives = &models.ValueDelta{
			From: intValue(baseline.AdditivesCount),
			To:   intValue(candidate.AdditivesCount),
		}
	}

	return deltas
}

func intValue(n *int) *float64 {
	if n == nil {
		return nil
	}
	v := float64(*n)
	return &v
}
