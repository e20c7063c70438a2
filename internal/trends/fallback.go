package trends

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
)

// fallbackTemplates is a curated list of evergreen fashion topics used when
// every live source comes up empty.
var fallbackTemplates = []string{
	// Seasonal
	"Winter layering essentials for {year}",
	"Spring fashion must-haves",
	"Summer outfit ideas that are trending",
	"Fall wardrobe staples everyone needs",

	// Style aesthetics
	"Quiet luxury aesthetic explained",
	"Old money style guide",
	"Coastal grandmother fashion trend",
	"Dark academia outfit ideas",
	"Clean girl aesthetic looks",
	"Y2K fashion comeback",
	"90s minimalist style",
	"Cottagecore outfit inspiration",

	// Specific items
	"Oversized blazer styling tips",
	"Wide leg pants outfit ideas",
	"Platform shoes trend",
	"Cargo pants comeback",
	"Leather jacket outfit ideas",
	"Chunky loafer styling",
	"Maxi skirt outfit combinations",
	"Trench coat style guide",

	// Color
	"Dopamine dressing colors",
	"Monochrome outfit ideas",
	"Neutral tones fashion",
	"Bold color blocking trends",

	// Sustainability
	"Thrift store fashion finds",
	"Sustainable fashion brands",
	"Capsule wardrobe essentials",
	"Vintage clothing styling tips",

	// Celebrity styles
	"Bella Hadid street style",
	"Hailey Bieber outfit recreation",
	"Zendaya fashion moments",
	"Korean street fashion trends",

	// Shopping guides
	"Amazon fashion finds under $50",
	"Zara trending items",
	"H&M outfit ideas",
	"Shein haul favorites",

	// Techniques
	"How to style oversized clothing",
	"Layering tips for petites",
	"Outfit formulas that always work",
	"Mix and match capsule wardrobe",

	// Accessories
	"Trending jewelry {year}",
	"Designer bag dupes",
	"Sunglasses trends",
	"Belt styling ideas",

	// Body type
	"Fashion for curvy bodies",
	"Tall girl outfit ideas",
	"Petite styling hacks",

	// Occasions
	"Date night outfit ideas",
	"Business casual lookbook",
	"Gym to brunch outfits",
	"Wedding guest dress code",
}

var defaultKeywords = []string{"fashion", "style", "outfit"}

// GenerateFallbackTrends emits up to count trends from the template list,
// shuffled, with randomized scores in [100,500].
func GenerateFallbackTrends(count int) []model.TrendRecord {
	templates := make([]string, len(fallbackTemplates))
	copy(templates, fallbackTemplates)
	rand.Shuffle(len(templates), func(i, j int) {
		templates[i], templates[j] = templates[j], templates[i]
	})

	if count > len(templates) {
		count = len(templates)
	}

	year := fmt.Sprintf("%d", time.Now().Year())

	records := make([]model.TrendRecord, 0, count)
	for _, template := range templates[:count] {
		title := strings.ReplaceAll(template, "{year}", year)

		keywords := ExtractKeywords(title)
		if len(keywords) == 0 {
			keywords = append([]string(nil), defaultKeywords...)
		}

		records = append(records, model.TrendRecord{
			Source:      model.SourceFallback,
			Title:       title,
			Description: "Trending topic: " + title,
			Keywords:    keywords,
			Score:       100 + rand.Intn(401),
			DetectedAt:  time.Now(),
		})
	}

	return records
}
