package diet

import "strings"

// punctuation that separates ingredients on food labels
var separatorReplacer = strings.NewReplacer(
	"(", " ", ")", " ", "[", " ", "]", " ",
	",", " ", ".", " ", "!", " ", "?", " ",
)

// Tokenize splits raw ingredient text into normalized lowercase tokens.
// Duplicates and order are preserved so callers can rebuild the phrase.
// Empty input yields an empty sequence, never an error.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Fields(separatorReplacer.Replace(strings.ToLower(text)))
}
