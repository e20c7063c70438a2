package content

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/llm"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/prompts"
)

type scriptedProvider struct {
	responses []string
	err       error
	calls     int
}

func (s *scriptedProvider) Name() string { return "scripted" }

func (s *scriptedProvider) Complete(_ context.Context, _ string, _ int, _ float64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.calls >= len(s.responses) {
		return "", errors.New("no more responses")
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func testPrompts(t *testing.T) *prompts.Prompts {
	t.Helper()
	p, err := prompts.Load()
	if err != nil {
		t.Fatalf("prompts.Load() error = %v", err)
	}
	return p
}

func sampleTrend() model.TrendRecord {
	return model.TrendRecord{
		Title:    "Oversized blazers",
		Keywords: []string{"blazer", "oversized", "style"},
		Score:    250,
	}
}

func TestScriptUsesProviderOutput(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"Here is your script."}}
	gen := NewGenerator(llm.NewChain(provider), testPrompts(t))

	got := gen.Script(context.Background(), sampleTrend(), 45)
	if got != "Here is your script." {
		t.Errorf("Script() = %q", got)
	}
}

func TestScriptFallbackContainsTrendTitle(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("provider down")}
	gen := NewGenerator(llm.NewChain(provider), testPrompts(t))

	got := gen.Script(context.Background(), sampleTrend(), 45)
	if !strings.Contains(got, "Oversized blazers") {
		t.Errorf("fallback script %q does not mention the trend title", got)
	}
}

func TestMetadataParsesJSON(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"title":"5 Blazer Tricks","description":"Style tips","hashtags":["#fashion","#blazer"],"keywords":["blazer"]}`,
	}}
	gen := NewGenerator(llm.NewChain(provider), testPrompts(t))

	meta := gen.Metadata(context.Background(), "script", sampleTrend())
	if meta.Title != "5 Blazer Tricks" {
		t.Errorf("Title = %q", meta.Title)
	}
	if len(meta.Tags) != 2 || meta.Tags[0] != "fashion" || meta.Tags[1] != "blazer" {
		t.Errorf("Tags = %v, want hashtags without the # prefix", meta.Tags)
	}
}

func TestMetadataStripsCodeFences(t *testing.T) {
	fenced := "Sure, here is the metadata:\n```json\n{\"title\":\"Fenced\",\"description\":\"d\",\"hashtags\":[\"#a\"],\"keywords\":[]}\n```\nHope that helps!"
	provider := &scriptedProvider{responses: []string{fenced}}
	gen := NewGenerator(llm.NewChain(provider), testPrompts(t))

	meta := gen.Metadata(context.Background(), "script", sampleTrend())
	if meta.Title != "Fenced" {
		t.Errorf("Title = %q, want fenced JSON parsed", meta.Title)
	}
}

func TestMetadataFallbackOnBadJSON(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"this is not json at all"}}
	gen := NewGenerator(llm.NewChain(provider), testPrompts(t))

	longScript := strings.Repeat("styling advice ", 30)
	meta := gen.Metadata(context.Background(), longScript, sampleTrend())

	if meta.Title != "Oversized blazers" {
		t.Errorf("fallback Title = %q", meta.Title)
	}
	if len(meta.Description) > 200 {
		t.Errorf("fallback Description length = %d, want <= 200", len(meta.Description))
	}
	if len(meta.Hashtags) == 0 {
		t.Error("fallback Hashtags is empty")
	}
	if len(meta.Tags) != 3 {
		t.Errorf("fallback Tags = %v, want the trend keywords", meta.Tags)
	}
}

func TestMetadataFallbackDefaultTags(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("down")}
	gen := NewGenerator(llm.NewChain(provider), testPrompts(t))

	trend := sampleTrend()
	trend.Keywords = nil
	meta := gen.Metadata(context.Background(), "script", trend)

	want := []string{"fashion", "style", "trend"}
	if len(meta.Tags) != len(want) {
		t.Fatalf("Tags = %v, want %v", meta.Tags, want)
	}
	for i := range want {
		if meta.Tags[i] != want[i] {
			t.Errorf("Tags[%d] = %q, want %q", i, meta.Tags[i], want[i])
		}
	}
}

func TestBatchGeneratePerTrendIsolation(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"script one",
		`{"title":"One","description":"d","hashtags":["#a"],"keywords":[]}`,
		"script two",
		`{"title":"Two","description":"d","hashtags":["#b"],"keywords":[]}`,
	}}
	gen := NewGenerator(llm.NewChain(provider), testPrompts(t))

	trends := []model.TrendRecord{sampleTrend(), {Title: "Second trend"}, {Title: "Third trend"}}
	packages := gen.BatchGenerate(context.Background(), trends, 45)

	// The third trend exhausts the scripted responses, so it gets fallback
	// script and metadata rather than being dropped.
	if len(packages) != 3 {
		t.Fatalf("len(packages) = %d, want 3", len(packages))
	}
	for _, pkg := range packages {
		if pkg.Status != model.StatusReady {
			t.Errorf("package status = %q, want ready", pkg.Status)
		}
		if pkg.Script == "" {
			t.Error("package has empty script")
		}
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fence with prose", "Here you go:\n```json\n{\"a\":1}\n```\nEnjoy", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.in); got != tt.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMetadataFallbackKeepsMultiByteRunesIntact(t *testing.T) {
	trend := model.TrendRecord{Title: strings.Repeat("a", 59) + "éé"}
	script := strings.Repeat("é", 250)

	meta := fallbackMetadata(script, trend)

	if !utf8.ValidString(meta.Title) {
		t.Errorf("title is not valid UTF-8: %q", meta.Title)
	}
	if n := utf8.RuneCountInString(meta.Title); n != 60 {
		t.Errorf("title rune count = %d, want 60", n)
	}
	if !utf8.ValidString(meta.Description) {
		t.Error("description is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(meta.Description); n != 200 {
		t.Errorf("description rune count = %d, want 200", n)
	}
}
