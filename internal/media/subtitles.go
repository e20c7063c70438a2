package media

import (
	"fmt"
	"strings"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
)

const wordsPerCaption = 3

// Caption is one on-screen text group with its display window.
type Caption struct {
	Text      string
	StartTime float64
	EndTime   float64
}

// SubtitleGenerator renders captions as an ASS overlay. Words are shown in
// groups of three, each word getting an equal share of the audio duration.
type SubtitleGenerator struct {
	fontName     string
	fontSize     int
	primaryColor string
	outlineColor string
	outlineSize  int
}

type SubtitleOptions struct {
	FontName    string
	FontSize    int
	OutlineSize int
}

func NewSubtitleGenerator(opts SubtitleOptions) *SubtitleGenerator {
	fontName := opts.FontName
	if fontName == "" {
		fontName = "Arial"
	}
	fontSize := opts.FontSize
	if fontSize == 0 {
		fontSize = 70
	}
	outlineSize := opts.OutlineSize
	if outlineSize == 0 {
		outlineSize = 3
	}

	return &SubtitleGenerator{
		fontName:     fontName,
		fontSize:     fontSize,
		primaryColor: "&H00FFFFFF",
		outlineColor: "&H00000000",
		outlineSize:  outlineSize,
	}
}

// Generate splits the script into three-word captions spread uniformly
// across the audio duration.
func (g *SubtitleGenerator) Generate(script string, audioDuration float64) []Caption {
	words := strings.Fields(script)
	if len(words) == 0 {
		return nil
	}

	timePerWord := audioDuration / float64(len(words))
	captions := make([]Caption, 0, (len(words)+wordsPerCaption-1)/wordsPerCaption)

	for i := 0; i < len(words); i += wordsPerCaption {
		end := i + wordsPerCaption
		if end > len(words) {
			end = len(words)
		}

		startTime := float64(i) * timePerWord
		endTime := float64(end) * timePerWord
		if endTime > audioDuration {
			endTime = audioDuration
		}

		captions = append(captions, Caption{
			Text:      strings.Join(words[i:end], " "),
			StartTime: startTime,
			EndTime:   endTime,
		})
	}

	return captions
}

// ToASS renders captions bottom-anchored at roughly three quarters of the
// frame height.
func (g *SubtitleGenerator) ToASS(captions []Caption, spec model.VideoSpec) string {
	var sb strings.Builder

	sb.WriteString("[Script Info]\n")
	sb.WriteString("Title: Generated Captions\n")
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString(fmt.Sprintf("PlayResX: %d\n", spec.Width))
	sb.WriteString(fmt.Sprintf("PlayResY: %d\n", spec.Height))
	sb.WriteString("\n")

	// Alignment 2 is bottom-center; the vertical margin lifts the text to
	// the 75% line.
	marginV := spec.Height / 4

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	sb.WriteString(fmt.Sprintf("Style: Default,%s,%d,%s,%s,%s,&H80000000,-1,0,0,0,100,100,0,0,1,%d,1,2,50,50,%d,1\n",
		g.fontName, g.fontSize, g.primaryColor, g.primaryColor, g.outlineColor, g.outlineSize, marginV))
	sb.WriteString("\n")

	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, caption := range captions {
		start := formatASSTime(caption.StartTime)
		end := formatASSTime(caption.EndTime)
		sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n", start, end, caption.Text))
	}

	return sb.String()
}

func formatASSTime(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := int(seconds) % 60
	centis := int((seconds - float64(int(seconds))) * 100)

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}
