package trends

import (
	"strings"
	"testing"
)

func TestExtractKeywordsStripsNoise(t *testing.T) {
	keywords := ExtractKeywords("Fashion tips https://example.com @user #trending")

	for _, keyword := range keywords {
		if strings.Contains(keyword, "http") || strings.Contains(keyword, "example") {
			t.Errorf("keyword %q should have been stripped as noise", keyword)
		}
		if strings.HasPrefix(keyword, "@") || strings.HasPrefix(keyword, "#") {
			t.Errorf("keyword %q retains a marker prefix", keyword)
		}
	}

	if len(keywords) == 0 {
		t.Error("expected at least the 'fashion' keyword to survive")
	}
}

func TestExtractKeywordsIdempotent(t *testing.T) {
	first := ExtractKeywords("oversized blazer styling tips for streetwear looks")
	second := ExtractKeywords(strings.Join(first, " "))

	if len(second) != len(first) {
		t.Fatalf("second pass changed keyword count: %d vs %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("keyword %d changed between passes: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestExtractKeywordsCapsAtFive(t *testing.T) {
	keywords := ExtractKeywords("fashion style outfit clothing dress shoes sneakers streetwear designer")
	if len(keywords) > 5 {
		t.Errorf("got %d keywords, want at most 5", len(keywords))
	}
}

func TestExtractKeywordsSkipsShortWords(t *testing.T) {
	keywords := ExtractKeywords("fit bag mix")
	for _, keyword := range keywords {
		if len(keyword) <= 3 {
			t.Errorf("keyword %q is too short to keep", keyword)
		}
	}
}

func TestGenerateFallbackTrends(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{name: "small", requested: 5, want: 5},
		{name: "all", requested: len(fallbackTemplates), want: len(fallbackTemplates)},
		{name: "overAvailable", requested: 1000, want: len(fallbackTemplates)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := GenerateFallbackTrends(tt.requested)
			if len(records) != tt.want {
				t.Fatalf("got %d records, want %d", len(records), tt.want)
			}
			for _, record := range records {
				if len(record.Keywords) == 0 {
					t.Errorf("trend %q has no keywords", record.Title)
				}
				if record.Score < 100 || record.Score > 500 {
					t.Errorf("trend %q score %d outside [100,500]", record.Title, record.Score)
				}
				if strings.Contains(record.Title, "{year}") {
					t.Errorf("trend %q retains an unexpanded placeholder", record.Title)
				}
			}
		})
	}
}
