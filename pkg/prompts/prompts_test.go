package prompts

import (
	"strings"
	"testing"
)

func TestRenderScript(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	out, err := p.RenderScript(ScriptParams{
		Title:     "Quiet luxury aesthetic explained",
		Keywords:  "luxury, style",
		Duration:  45,
		WordCount: 112,
		Hook:      "Did you know...",
		CTA:       "Save this for later!",
	})
	if err != nil {
		t.Fatalf("RenderScript() error = %v", err)
	}

	for _, want := range []string{"Quiet luxury aesthetic explained", "45-second", "112 words", "Did you know...", "Save this for later!"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered script prompt missing %q", want)
		}
	}
}

func TestRenderMetadata(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	out, err := p.RenderMetadata(MetadataParams{
		Script:     "some script text",
		TrendTitle: "Y2K fashion comeback",
	})
	if err != nil {
		t.Fatalf("RenderMetadata() error = %v", err)
	}

	if !strings.Contains(out, "Y2K fashion comeback") {
		t.Error("rendered metadata prompt missing trend title")
	}
	if !strings.Contains(out, `"hashtags"`) {
		t.Error("rendered metadata prompt should request a JSON object with hashtags")
	}
}
