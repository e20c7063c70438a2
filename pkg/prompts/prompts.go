package prompts

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

const defaultScriptPrompt = `Create a {{.Duration}}-second YouTube Shorts/TikTok/Reels script about this fashion trend:

Trend: {{.Title}}
Context: {{.Description}}
Keywords: {{.Keywords}}

Requirements:
1. Start with this hook style: "{{.Hook}}"
2. Write for voiceover (natural, conversational tone)
3. Keep it {{.Duration}} seconds when spoken (approximately {{.WordCount}} words)
4. Make it educational yet entertaining
5. Include 3 specific styling tips or facts
6. End with: "{{.CTA}}"
7. Use simple language, short sentences
8. Make it shareable and valuable

Output only the script text, no extra formatting or labels.`

const defaultMetadataPrompt = `Based on this short-form video script, generate metadata:

Script: {{.Script}}

Original trend: {{.TrendTitle}}

Generate:
1. A catchy title (max 60 characters, clickable, uses numbers or questions)
2. A description (max 200 characters, includes value prop)
3. 10 relevant hashtags (mix of popular and niche)
4. 5 search keywords

Format as JSON:
{
    "title": "...",
    "description": "...",
    "hashtags": ["tag1", "tag2", ...],
    "keywords": ["keyword1", ...]
}`

type Prompts struct {
	Script   string `yaml:"script"`
	Metadata string `yaml:"metadata"`
}

type ScriptParams struct {
	Title       string
	Description string
	Keywords    string
	Duration    int
	WordCount   int
	Hook        string
	CTA         string
}

type MetadataParams struct {
	Script     string
	TrendTitle string
}

// Load returns the built-in prompts, overridden by prompts.yaml when present.
func Load() (*Prompts, error) {
	p := &Prompts{
		Script:   defaultScriptPrompt,
		Metadata: defaultMetadataPrompt,
	}

	data, err := os.ReadFile(defaultPromptsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("read prompts file: %w", err)
	}

	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse prompts file: %w", err)
	}

	if p.Script == "" {
		p.Script = defaultScriptPrompt
	}
	if p.Metadata == "" {
		p.Metadata = defaultMetadataPrompt
	}

	return p, nil
}

func (p *Prompts) RenderScript(params ScriptParams) (string, error) {
	return render(p.Script, params)
}

func (p *Prompts) RenderMetadata(params MetadataParams) (string, error) {
	return render(p.Metadata, params)
}

func render(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
