package media

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/speech"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/stock"
)

const (
	defaultFFmpegPath  = "ffmpeg"
	defaultFFprobePath = "ffprobe"
	maxStockClips      = 3
	maxSlideshowImages = 5
)

// Assembler turns a script plus metadata into a finished video file. Every
// stage failure is logged and collapses to a false return so one bad video
// never aborts a batch.
type Assembler struct {
	ffmpegPath  string
	ffprobePath string
	voice       *speech.Chain
	pexels      *stock.PexelsClient
	unsplash    *stock.UnsplashClient
	subtitleGen *SubtitleGenerator
	watermark   string
}

type AssemblerOptions struct {
	Voice       *speech.Chain
	Pexels      *stock.PexelsClient
	Unsplash    *stock.UnsplashClient
	SubtitleGen *SubtitleGenerator
	Watermark   string
}

func NewAssembler(opts AssemblerOptions) *Assembler {
	watermark := opts.Watermark
	if watermark == "" {
		watermark = "@FashionAI"
	}
	subtitleGen := opts.SubtitleGen
	if subtitleGen == nil {
		subtitleGen = NewSubtitleGenerator(SubtitleOptions{})
	}

	return &Assembler{
		ffmpegPath:  defaultFFmpegPath,
		ffprobePath: defaultFFprobePath,
		voice:       opts.Voice,
		pexels:      opts.Pexels,
		unsplash:    opts.Unsplash,
		subtitleGen: subtitleGen,
		watermark:   watermark,
	}
}

// Assemble builds the video at outputPath. Temp audio and clips are removed
// regardless of outcome.
func (a *Assembler) Assemble(ctx context.Context, script string, meta model.ContentMetadata, outputPath, aspectRatio string) bool {
	slog.Info("Creating video", "title", meta.Title, "aspect", aspectRatio)

	spec := SpecFor(aspectRatio)

	workDir, err := os.MkdirTemp(filepath.Dir(outputPath), "assemble_*")
	if err != nil {
		slog.Error("Failed to create work directory", "error", err)
		return false
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	audioPath := filepath.Join(workDir, "voiceover.mp3")
	if err := a.voice.Synthesize(ctx, script, audioPath); err != nil {
		slog.Error("Voiceover generation failed", "error", err)
		return false
	}

	duration, err := a.probeDuration(ctx, audioPath)
	if err != nil {
		slog.Error("Failed to probe voiceover duration", "error", err)
		return false
	}

	keyword := "fashion"
	if len(meta.Keywords) > 0 {
		keyword = meta.Keywords[0]
	}

	clips := a.fetchStockClips(ctx, keyword, duration, spec, aspectRatio, workDir)
	if len(clips) == 0 {
		slog.Info("No stock footage found, building slideshow", "keyword", keyword)
		clips = a.buildSlideshow(ctx, keyword, duration, spec, aspectRatio, workDir)
	}
	if len(clips) == 0 {
		slog.Error("No visual assets available", "keyword", keyword)
		return false
	}

	concatPath := filepath.Join(workDir, "visuals.mp4")
	if err := a.concatClips(ctx, clips, concatPath); err != nil {
		slog.Error("Failed to concatenate clips", "error", err)
		return false
	}

	captions := a.subtitleGen.Generate(script, duration)
	assPath := filepath.Join(workDir, "captions.ass")
	if err := os.WriteFile(assPath, []byte(a.subtitleGen.ToASS(captions, spec)), 0o644); err != nil {
		slog.Error("Failed to write caption file", "error", err)
		return false
	}

	if err := a.renderFinal(ctx, concatPath, audioPath, assPath, outputPath, duration, spec); err != nil {
		slog.Error("Final render failed", "error", err)
		return false
	}

	slog.Info("Video created", "path", outputPath, "duration", duration)
	return true
}

// Duration returns the media length of the file at path in seconds.
func (a *Assembler) Duration(ctx context.Context, path string) (float64, error) {
	return a.probeDuration(ctx, path)
}

func (a *Assembler) fetchStockClips(ctx context.Context, keyword string, duration float64, spec model.VideoSpec, aspectRatio, workDir string) []string {
	if a.pexels == nil {
		slog.Warn("Stock video client not configured")
		return nil
	}

	videos, err := a.pexels.Search(ctx, keyword, 5, OrientationFor(aspectRatio))
	if err != nil {
		slog.Warn("Stock video search failed", "error", err)
		return nil
	}
	if len(videos) == 0 {
		return nil
	}

	count := len(videos)
	if count > maxStockClips {
		count = maxStockClips
	}
	targetPerClip := duration / float64(count)

	var clips []string
	for i, video := range videos[:count] {
		if len(video.VideoFiles) == 0 {
			continue
		}

		rawPath := filepath.Join(workDir, fmt.Sprintf("raw_%d.mp4", i))
		if err := a.pexels.Download(ctx, video.VideoFiles[0].Link, rawPath); err != nil {
			slog.Warn("Stock video download failed", "error", err)
			continue
		}

		clipPath := filepath.Join(workDir, fmt.Sprintf("clip_%d.mp4", i))
		if err := a.prepareClip(ctx, rawPath, clipPath, video.Duration, targetPerClip, spec); err != nil {
			slog.Warn("Stock clip preparation failed", "error", err)
			continue
		}
		clips = append(clips, clipPath)
	}

	slog.Info("Fetched stock video clips", "count", len(clips))
	return clips
}

// prepareClip trims the source to the target share, starting at a random
// offset when the source is longer, and normalizes to the output spec.
func (a *Assembler) prepareClip(ctx context.Context, srcPath, destPath string, srcDuration, targetDuration float64, spec model.VideoSpec) error {
	start := 0.0
	if srcDuration > targetDuration {
		start = rand.Float64() * (srcDuration - targetDuration)
	}

	args := []string{
		"-y",
		"-ss", fmt.Sprintf("%.2f", start),
		"-t", fmt.Sprintf("%.2f", targetDuration),
		"-i", srcPath,
		"-vf", scaleCropFilter(spec),
		"-r", fmt.Sprintf("%d", spec.FPS),
		"-an",
		"-c:v", "libx264",
		"-preset", "fast",
		destPath,
	}

	return a.runFFmpeg(ctx, args)
}

func (a *Assembler) buildSlideshow(ctx context.Context, keyword string, duration float64, spec model.VideoSpec, aspectRatio, workDir string) []string {
	if a.unsplash == nil {
		slog.Warn("Stock photo client not configured")
		return nil
	}

	photos, err := a.unsplash.Search(ctx, keyword, maxSlideshowImages, OrientationFor(aspectRatio))
	if err != nil {
		slog.Warn("Stock photo search failed", "error", err)
		return nil
	}
	if len(photos) == 0 {
		return nil
	}

	perImage := duration / float64(len(photos))

	var clips []string
	for i, photo := range photos {
		imgPath := filepath.Join(workDir, fmt.Sprintf("img_%d.jpg", i))
		if err := a.unsplash.Download(ctx, photo.URLs.Regular, imgPath); err != nil {
			slog.Warn("Stock photo download failed", "error", err)
			continue
		}

		clipPath := filepath.Join(workDir, fmt.Sprintf("slide_%d.mp4", i))
		if err := a.imageToClip(ctx, imgPath, clipPath, perImage, spec); err != nil {
			slog.Warn("Slideshow clip render failed", "error", err)
			continue
		}
		clips = append(clips, clipPath)
	}

	slog.Info("Created slideshow", "images", len(clips))
	return clips
}

// imageToClip renders a still photo as a clip with a continuous slow zoom.
func (a *Assembler) imageToClip(ctx context.Context, imgPath, destPath string, duration float64, spec model.VideoSpec) error {
	frames := int(duration * float64(spec.FPS))
	zoomFilter := fmt.Sprintf(
		"%s,zoompan=z='min(zoom+0.0015,1.2)':d=%d:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':s=%dx%d:fps=%d",
		scaleCropFilter(spec), frames, spec.Width, spec.Height, spec.FPS,
	)

	args := []string{
		"-y",
		"-loop", "1",
		"-i", imgPath,
		"-t", fmt.Sprintf("%.2f", duration),
		"-vf", zoomFilter,
		"-c:v", "libx264",
		"-preset", "fast",
		destPath,
	}

	return a.runFFmpeg(ctx, args)
}

func (a *Assembler) concatClips(ctx context.Context, clips []string, destPath string) error {
	listPath := filepath.Join(filepath.Dir(destPath), fmt.Sprintf("concat_%s.txt", uuid.NewString()))

	var listContent strings.Builder
	for _, clip := range clips {
		absPath, err := filepath.Abs(clip)
		if err != nil {
			return fmt.Errorf("resolve clip path: %w", err)
		}
		listContent.WriteString(fmt.Sprintf("file '%s'\n", absPath))
	}
	if err := os.WriteFile(listPath, []byte(listContent.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	defer func() { _ = os.Remove(listPath) }()

	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		destPath,
	}

	return a.runFFmpeg(ctx, args)
}

// renderFinal burns captions and watermark over the visuals and attaches
// the voiceover. The audio length defines the final length.
func (a *Assembler) renderFinal(ctx context.Context, videoPath, audioPath, assPath, outputPath string, duration float64, spec model.VideoSpec) error {
	watermarkFilter := fmt.Sprintf(
		"drawtext=text='%s':fontcolor=white@0.7:fontsize=24:borderw=1:bordercolor=black:x=w*0.05:y=h*0.05",
		escapeDrawtext(a.watermark),
	)
	filter := fmt.Sprintf("[0:v]ass=%s,%s[v]", escapeFilterPath(assPath), watermarkFilter)

	args := []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-filter_complex", filter,
		"-map", "[v]",
		"-map", "1:a",
		"-t", fmt.Sprintf("%.2f", duration),
		"-r", fmt.Sprintf("%d", spec.FPS),
		"-c:v", "libx264",
		"-c:a", "aac",
		"-ar", "44100",
		"-preset", "medium",
		outputPath,
	}

	return a.runFFmpeg(ctx, args)
}

func (a *Assembler) runFFmpeg(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, a.ffmpegPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w, output: %s", err, string(output))
	}
	return nil
}

func (a *Assembler) probeDuration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	cmd := exec.CommandContext(ctx, a.ffprobePath, args...)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var dur float64
	if _, err := fmt.Sscanf(string(output), "%f", &dur); err != nil {
		return 0, fmt.Errorf("parse duration: %w", err)
	}

	return dur, nil
}

func scaleCropFilter(spec model.VideoSpec) string {
	return fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
		spec.Width, spec.Height, spec.Width, spec.Height)
}

func escapeDrawtext(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, `:`, `\:`)
	return s
}

func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	path = strings.ReplaceAll(path, `:`, `\:`)
	return path
}
