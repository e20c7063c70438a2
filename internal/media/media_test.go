package media

import (
	"strings"
	"testing"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
)

func TestSpecFor(t *testing.T) {
	tests := []struct {
		aspect string
		want   model.VideoSpec
	}{
		{"9:16", model.VideoSpec{Width: 1080, Height: 1920, FPS: 30}},
		{"1:1", model.VideoSpec{Width: 1080, Height: 1080, FPS: 30}},
		{"16:9", model.VideoSpec{Width: 1920, Height: 1080, FPS: 30}},
		{"", model.VideoSpec{Width: 1920, Height: 1080, FPS: 30}},
		{"4:3", model.VideoSpec{Width: 1920, Height: 1080, FPS: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.aspect, func(t *testing.T) {
			if got := SpecFor(tt.aspect); got != tt.want {
				t.Errorf("SpecFor(%q) = %+v, want %+v", tt.aspect, got, tt.want)
			}
		})
	}
}

func TestOrientationFor(t *testing.T) {
	if got := OrientationFor("9:16"); got != "portrait" {
		t.Errorf("OrientationFor(9:16) = %q", got)
	}
	if got := OrientationFor("16:9"); got != "landscape" {
		t.Errorf("OrientationFor(16:9) = %q", got)
	}
}

func TestGenerateGroupsThreeWords(t *testing.T) {
	gen := NewSubtitleGenerator(SubtitleOptions{})
	script := "one two three four five six seven"

	captions := gen.Generate(script, 14.0)
	if len(captions) != 3 {
		t.Fatalf("len(captions) = %d, want 3", len(captions))
	}

	if captions[0].Text != "one two three" {
		t.Errorf("captions[0].Text = %q", captions[0].Text)
	}
	if captions[2].Text != "seven" {
		t.Errorf("captions[2].Text = %q, want trailing partial group", captions[2].Text)
	}

	// 7 words over 14 seconds is 2 seconds per word.
	if captions[0].StartTime != 0 || captions[0].EndTime != 6 {
		t.Errorf("captions[0] window = [%v, %v], want [0, 6]", captions[0].StartTime, captions[0].EndTime)
	}
	if captions[1].StartTime != 6 || captions[1].EndTime != 12 {
		t.Errorf("captions[1] window = [%v, %v], want [6, 12]", captions[1].StartTime, captions[1].EndTime)
	}
	if captions[2].EndTime != 14 {
		t.Errorf("captions[2].EndTime = %v, want capped at audio duration", captions[2].EndTime)
	}
}

func TestGenerateContiguousWindows(t *testing.T) {
	gen := NewSubtitleGenerator(SubtitleOptions{})
	captions := gen.Generate(strings.Repeat("word ", 20), 30.0)

	for i := 1; i < len(captions); i++ {
		if captions[i].StartTime != captions[i-1].EndTime {
			t.Errorf("gap between captions %d and %d: %v != %v",
				i-1, i, captions[i-1].EndTime, captions[i].StartTime)
		}
	}
}

func TestGenerateEmptyScript(t *testing.T) {
	gen := NewSubtitleGenerator(SubtitleOptions{})
	if captions := gen.Generate("   ", 10.0); captions != nil {
		t.Errorf("Generate(blank) = %v, want nil", captions)
	}
}

func TestToASSLayout(t *testing.T) {
	gen := NewSubtitleGenerator(SubtitleOptions{})
	spec := model.VideoSpec{Width: 1080, Height: 1920, FPS: 30}
	captions := []Caption{{Text: "hello world there", StartTime: 0, EndTime: 2.5}}

	out := gen.ToASS(captions, spec)

	if !strings.Contains(out, "PlayResX: 1080") || !strings.Contains(out, "PlayResY: 1920") {
		t.Error("ASS output missing play resolution")
	}
	// Bottom-center alignment with a quarter-height margin puts the text at
	// the 75% line.
	if !strings.Contains(out, ",2,50,50,480,1") {
		t.Errorf("ASS style line does not anchor captions at 75%% height:\n%s", out)
	}
	if !strings.Contains(out, "Dialogue: 0,0:00:00.00,0:00:02.50,Default,,0,0,0,,hello world there") {
		t.Errorf("ASS output missing dialogue line:\n%s", out)
	}
}

func TestFormatASSTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00:00.00"},
		{2.5, "0:00:02.50"},
		{65.25, "0:01:05.25"},
		{3671.9, "1:01:11.90"},
	}

	for _, tt := range tests {
		if got := formatASSTime(tt.seconds); got != tt.want {
			t.Errorf("formatASSTime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestEscapeDrawtext(t *testing.T) {
	if got := escapeDrawtext("@FashionAI"); got != "@FashionAI" {
		t.Errorf("escapeDrawtext = %q", got)
	}
	if got := escapeDrawtext("it's 9:16"); got != `it\'s 9\:16` {
		t.Errorf("escapeDrawtext = %q", got)
	}
}
