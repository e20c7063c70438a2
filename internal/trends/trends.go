package trends

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
)

// similarityThreshold is the word-overlap ratio above which two titles are
// treated as duplicates. The ratio is |intersection| / |new title's words|;
// a ratio of exactly 0.7 is kept.
const similarityThreshold = 0.7

// Source produces trend records from one external signal source. A source
// that is unconfigured or failing contributes zero records.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.TrendRecord, error)
}

// Aggregator merges, scores and deduplicates trends across all sources.
type Aggregator struct {
	sources []Source
}

func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{sources: sources}
}

// Collect queries every source, falls back to generated trends when all
// sources come up empty, and returns up to max records ordered by score
// descending with near-duplicate titles removed.
func (a *Aggregator) Collect(ctx context.Context, max int) []model.TrendRecord {
	var all []model.TrendRecord

	for _, source := range a.sources {
		records, err := source.Fetch(ctx)
		if err != nil {
			slog.Warn("Trend source failed", "source", source.Name(), "error", err)
			continue
		}
		slog.Info("Trend source fetched", "source", source.Name(), "count", len(records))
		all = append(all, records...)
	}

	if len(all) == 0 {
		slog.Warn("No trends from any source, using fallback generator")
		all = GenerateFallbackTrends(max)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})

	unique := Deduplicate(all)
	slog.Info("Collected trends", "total", len(all), "unique", len(unique))

	if len(unique) > max {
		unique = unique[:max]
	}
	return unique
}

// CollectNiche restricts results to trends whose title or keywords mention
// any word of the niche phrase.
func (a *Aggregator) CollectNiche(ctx context.Context, niche string, limit int) []model.TrendRecord {
	all := a.Collect(ctx, 50)

	nicheWords := strings.Fields(strings.ToLower(niche))

	var matched []model.TrendRecord
	for _, trend := range all {
		text := strings.ToLower(trend.Title + " " + strings.Join(trend.Keywords, " "))

		for _, word := range nicheWords {
			if strings.Contains(text, word) {
				matched = append(matched, trend)
				break
			}
		}
		if len(matched) >= limit {
			break
		}
	}
	return matched
}

// Deduplicate drops trends whose title exactly matches (case-insensitive) or
// is too similar to an already accepted title. First seen wins; comparison
// follows insertion order.
func Deduplicate(records []model.TrendRecord) []model.TrendRecord {
	var unique []model.TrendRecord
	var seenTitles []string
	seenExact := make(map[string]bool)

	for _, record := range records {
		title := strings.ToLower(record.Title)

		if seenExact[title] {
			continue
		}

		similar := false
		titleWords := wordSet(title)
		for _, seen := range seenTitles {
			if overlapRatio(titleWords, wordSet(seen)) > similarityThreshold {
				similar = true
				break
			}
		}
		if similar {
			continue
		}

		unique = append(unique, record)
		seenTitles = append(seenTitles, title)
		seenExact[title] = true
	}

	return unique
}

func wordSet(title string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(title) {
		set[word] = true
	}
	return set
}

// overlapRatio is |a ∩ b| / |a|.
func overlapRatio(a, b map[string]bool) float64 {
	if len(a) == 0 {
		return 0
	}
	intersection := 0
	for word := range a {
		if b[word] {
			intersection++
		}
	}
	return float64(intersection) / float64(len(a))
}
