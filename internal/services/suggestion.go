// Package services hosts the alternative ranking engine: candidate
// acquisition, preference filtering, scoring and diversification.
package services

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/Maitreya04/greendotv3/internal/diet"
	"github.com/Maitreya04/greendotv3/internal/models"
)

// DefaultLimit is the suggestion count returned when the caller does not ask
// for a specific limit.
const DefaultLimit = 8

// maxPerBrand caps how many suggestions a single brand may occupy.
const maxPerBrand = 2

// Catalog is the external product source the suggestion service queries.
// Injected so tests can substitute deterministic fakes for the network.
type Catalog interface {
	ProductByCode(ctx context.Context, code string) (*models.Product, error)
	SearchCategory(ctx context.Context, slug, country string) ([]models.Candidate, error)
}

// genericSlugs are category names too broad to anchor a useful search.
var genericSlugs = map[string]bool{
	"food":                            true,
	"foods":                           true,
	"beverages":                       true,
	"drinks":                          true,
	"snacks":                          true,
	"sweet-snacks":                    true,
	"groceries":                       true,
	"meals":                           true,
	"plant-based-foods":               true,
	"plant-based-foods-and-beverages": true,
	"dairies":                         true,
	"fermented-foods":                 true,
}

// preferredKeywords bias slug selection toward specific product kinds. The
// longest keyword contained in any slug wins.
var preferredKeywords = []string{
	"chocolate", "biscuit", "cookie", "chips", "crisps", "yogurt", "cheese",
	"juice", "cereal", "bread", "noodle", "pasta", "ice-cream", "spread",
	"sauce", "soup", "tea", "coffee", "bar",
}

// SuggestionService ranks better-fitting alternatives for a baseline product.
type SuggestionService struct {
	catalog    Catalog
	classifier *diet.Engine
}

// NewSuggestionService creates a suggestion service over the given catalog
// and classification engine.
func NewSuggestionService(catalog Catalog, classifier *diet.Engine) *SuggestionService {
	return &SuggestionService{
		catalog:    catalog,
		classifier: classifier,
	}
}

// RankAlternatives finds same-category products that fit the user's diet and
// constraints better than the baseline, ordered by the selected sort mode.
// Collaborator failures are handled locally: a failed backfill proceeds with
// partial data, a failed search yields an empty list. The result is always a
// non-nil, possibly empty slice.
func (s *SuggestionService) RankAlternatives(ctx context.Context, baseline models.Baseline, prefs models.SuggestionPrefs) []models.Suggestion {
	if len(baseline.CategoriesTags) == 0 && baseline.Code != "" {
		if product, err := s.catalog.ProductByCode(ctx, baseline.Code); err != nil {
			log.Printf("Warning: baseline backfill for %s failed: %v", baseline.Code, err)
		} else if product != nil {
			baseline.CategoriesTags = product.CategoriesTags
			if len(baseline.CountriesTags) == 0 {
				baseline.CountriesTags = product.CountriesTags
			}
			if baseline.Name == "" {
				baseline.Name = product.Name
			}
		}
	}

	// Suggestions are category-scoped: no usable category, no suggestions.
	slug := selectCategorySlug(baseline.CategoriesTags)
	if slug == "" {
		return []models.Suggestion{}
	}

	country := strings.ToLower(strings.TrimSpace(prefs.Country))
	if country == "" && len(baseline.CountriesTags) > 0 {
		country = leafSlug(baseline.CountriesTags[0])
	}

	hits, err := s.catalog.SearchCategory(ctx, slug, country)
	if err != nil {
		log.Printf("Warning: category search %q failed: %v", slug, err)
		return []models.Suggestion{}
	}

	type scoredCandidate struct {
		candidate models.Candidate
		score     float64
	}

	var survivors []scoredCandidate
	for _, candidate := range hits {
		if candidate.Code == "" || candidate.Code == baseline.Code {
			continue
		}
		// Search results can be loosely matched; require the candidate to
		// actually carry the selected category.
		if !hasCategorySlug(candidate.CategoriesTags, slug) {
			continue
		}
		if !s.admit(candidate, prefs) {
			continue
		}
		survivors = append(survivors, scoredCandidate{
			candidate: candidate,
			score:     improvementScore(candidate, baseline, prefs),
		})
	}

	if prefs.Sort == "" || prefs.Sort == models.SortBalanced {
		sort.SliceStable(survivors, func(i, j int) bool {
			return survivors[i].score > survivors[j].score
		})
	} else {
		sort.SliceStable(survivors, func(i, j int) bool {
			mi := sortMetric(survivors[i].candidate, prefs.Sort)
			mj := sortMetric(survivors[j].candidate, prefs.Sort)
			if mi != mj {
				return mi < mj
			}
			return survivors[i].score > survivors[j].score
		})
	}

	// Diversification: walk the ordered list and keep at most two candidates
	// per primary brand. Excess entries are dropped, not reordered.
	perBrand := make(map[string]int)
	kept := survivors[:0]
	for _, entry := range survivors {
		brand := primaryBrand(entry.candidate.Brands)
		if perBrand[brand] >= maxPerBrand {
			continue
		}
		perBrand[brand]++
		kept = append(kept, entry)
	}

	limit := prefs.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(kept) > limit {
		kept = kept[:limit]
	}

	suggestions := make([]models.Suggestion, 0, len(kept))
	for _, entry := range kept {
		suggestions = append(suggestions, models.Suggestion{
			Candidate:   entry.candidate,
			DietVerdict: models.VerdictYes,
			Badges: models.Badges{
				PalmOilFree:   isPalmOilFree(entry.candidate.PalmOilCount),
				MatchedLabels: matchedLabels(entry.candidate.LabelsTags, prefs.RequiredLabels),
			},
			Deltas: buildDeltas(baseline, entry.candidate),
			Score:  entry.score,
		})
	}
	return suggestions
}

// admit applies the preference checks in order; the first failing check
// rejects the candidate.
func (s *SuggestionService) admit(candidate models.Candidate, prefs models.SuggestionPrefs) bool {
	if !s.dietFits(candidate, prefs.Diet) {
		return false
	}
	if hasAvoidedAllergen(candidate.AllergensTags, prefs.AvoidAllergens) {
		return false
	}
	if prefs.PalmOilFree && !isPalmOilFree(candidate.PalmOilCount) {
		return false
	}
	return hasRequiredLabels(candidate.LabelsTags, prefs.RequiredLabels)
}

// dietFits requires a verdict of exactly "yes". With ingredient text the
// classification engine decides; without it the catalog's own analysis tags
// substitute for vegan and vegetarian. Jain has no such tag, so a jain
// request over a text-less candidate stays unsure and is rejected.
func (s *SuggestionService) dietFits(candidate models.Candidate, mode models.DietMode) bool {
	if candidate.IngredientsText != "" {
		result := s.classifier.Classify(candidate.IngredientsText, mode)
		return result.Verdict == models.VerdictYes
	}
	switch mode {
	case models.DietVegan:
		return hasAnalysisTag(candidate.AnalysisTags, "vegan")
	case models.DietVegetarian:
		return hasAnalysisTag(candidate.AnalysisTags, "vegetarian")
	}
	return false
}

func hasAnalysisTag(tags []string, want string) bool {
	for _, tag := range tags {
		if normalizeTag(tag) == want {
			return true
		}
	}
	return false
}

func hasAvoidedAllergen(tags, avoid []string) bool {
	if len(avoid) == 0 || len(tags) == 0 {
		return false
	}
	avoided := make(map[string]bool, len(avoid))
	for _, name := range avoid {
		avoided[strings.ToLower(strings.TrimSpace(name))] = true
	}
	for _, tag := range tags {
		if avoided[normalizeTag(tag)] {
			return true
		}
	}
	return false
}

// hasRequiredLabels checks every required label has a case-insensitive
// substring match somewhere in the candidate's label tags.
func hasRequiredLabels(labelTags, required []string) bool {
	for _, want := range required {
		if !labelsContain(labelTags, want) {
			return false
		}
	}
	return true
}

func matchedLabels(labelTags, required []string) []string {
	var matched []string
	for _, want := range required {
		if labelsContain(labelTags, want) {
			matched = append(matched, want)
		}
	}
	return matched
}

func labelsContain(labelTags []string, want string) bool {
	lowered := strings.ToLower(want)
	for _, tag := range labelTags {
		if strings.Contains(strings.ToLower(tag), lowered) {
			return true
		}
	}
	return false
}

// normalizeTag lowercases a catalog tag and strips its "en:" prefix.
func normalizeTag(tag string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(tag)), "en:")
}

// isPalmOilFree treats a missing palm-oil ingredient count as zero.
func isPalmOilFree(count *int) bool {
	return count == nil || *count == 0
}

// selectCategorySlug picks the single category slug the alternative search
// is scoped to. Generic slugs are discarded; among the rest a slug carrying
// a preferred keyword wins (longest keyword first), otherwise the longest
// remaining slug. Returns "" when nothing usable survives.
func selectCategorySlug(tags []string) string {
	var slugs []string
	for _, tag := range tags {
		slug := leafSlug(tag)
		if slug == "" || genericSlugs[slug] {
			continue
		}
		slugs = append(slugs, slug)
	}
	if len(slugs) == 0 {
		return ""
	}

	best := ""
	bestKeyword := 0
	for _, slug := range slugs {
		for _, keyword := range preferredKeywords {
			if strings.Contains(slug, keyword) && len(keyword) > bestKeyword {
				best = slug
				bestKeyword = len(keyword)
			}
		}
	}
	if best != "" {
		return best
	}

	for _, slug := range slugs {
		if len(slug) > len(best) {
			best = slug
		}
	}
	return best
}

// leafSlug lowercases a tag and strips any language prefix such as "en:".
func leafSlug(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.LastIndex(tag, ":"); i >= 0 {
		tag = tag[i+1:]
	}
	return tag
}

func hasCategorySlug(tags []string, slug string) bool {
	for _, tag := range tags {
		if leafSlug(tag) == slug {
			return true
		}
	}
	return false
}

// primaryBrand isolates the first-listed brand name for diversification.
func primaryBrand(brands string) string {
	first := strings.SplitN(brands, ",", 2)[0]
	return strings.ToLower(strings.TrimSpace(first))
}
