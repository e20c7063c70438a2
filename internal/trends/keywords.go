package trends

import (
	"regexp"
	"strings"
)

var (
	noisePattern = regexp.MustCompile(`http\S+|@\S+|#`)
	wordPattern  = regexp.MustCompile(`\b\w+\b`)
)

var fashionVocabulary = []string{
	"fashion", "style", "outfit", "clothing", "wear", "dress", "shoes",
	"sneakers", "streetwear", "designer", "brand", "trend", "look",
	"aesthetic", "fit", "drip", "ootd", "vintage", "luxury", "casual",
	"formal", "accessories", "jewelry", "bag", "jacket", "coat", "pants",
	"jeans", "shirt", "hoodie", "sweater", "boots", "sustainable",
}

// ExtractKeywords pulls up to 5 fashion-related keywords out of free text.
// URLs, mentions and hashtag markers are stripped first.
func ExtractKeywords(text string) []string {
	cleaned := noisePattern.ReplaceAllString(strings.ToLower(text), "")

	var keywords []string
	for _, word := range wordPattern.FindAllString(cleaned, -1) {
		if len(word) > 3 && IsFashionRelated(word) {
			keywords = append(keywords, word)
		}
		if len(keywords) == 5 {
			break
		}
	}
	return keywords
}

// IsFashionRelated reports whether text mentions any fashion vocabulary term.
func IsFashionRelated(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range fashionVocabulary {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
