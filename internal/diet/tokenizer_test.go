package diet

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   \t  ", nil},
		{"lowercases", "Milk Powder", []string{"milk", "powder"}},
		{"strips punctuation", "sugar, salt. water! yeast?", []string{"sugar", "salt", "water", "yeast"}},
		{"strips brackets", "emulsifier (soy lecithin) [e322]", []string{"emulsifier", "soy", "lecithin", "e322"}},
		{"collapses whitespace", "water ,  salt", []string{"water", "salt"}},
		{"preserves duplicates and order", "milk milk cream", []string{"milk", "milk", "cream"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
