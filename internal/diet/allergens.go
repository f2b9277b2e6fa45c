package diet

import "strings"

// ExtractAllergens returns the allergens revealed by the token sequence, in
// table order, each at most once. The first matching term per allergen
// suffices; the scan then moves to the next allergen.
func (t *Tables) ExtractAllergens(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	present := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		present[token] = true
	}

	var found []string
	for _, entry := range t.Allergens {
		for _, term := range entry.Terms {
			if present[strings.ToLower(term)] {
				found = append(found, entry.Name)
				break
			}
		}
	}
	return found
}
