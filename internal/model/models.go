package model

import "time"

// TrendSource identifies where a trend record was detected.
type TrendSource string

const (
	SourceReddit       TrendSource = "reddit"
	SourceGoogleTrends TrendSource = "google_trends"
	SourceTwitter      TrendSource = "twitter"
	SourceTikTok       TrendSource = "tiktok"
	SourceFallback     TrendSource = "fallback"
)

// Platform identifies an upload destination.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
)

// AllPlatforms lists every supported upload destination in dispatch order.
var AllPlatforms = []Platform{
	PlatformYouTube,
	PlatformTikTok,
	PlatformInstagram,
	PlatformTwitter,
	PlatformFacebook,
}

type PackageStatus string

const (
	StatusReady  PackageStatus = "ready"
	StatusFailed PackageStatus = "failed"
)

type UploadStatus string

const (
	UploadSuccess UploadStatus = "success"
	UploadFailed  UploadStatus = "failed"
)

// TrendRecord is a normalized signal about a currently popular topic.
// Records are immutable after creation.
type TrendRecord struct {
	ID          int64
	Source      TrendSource
	Title       string
	Description string
	Keywords    []string
	Score       int
	URL         string
	DetectedAt  time.Time
	Used        bool
}

// ContentMetadata is platform metadata generated alongside a script.
type ContentMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Hashtags    []string `json:"hashtags"`
	Keywords    []string `json:"keywords"`
	Tags        []string `json:"tags"`
}

// ContentPackage is a generated script plus metadata derived from exactly
// one trend.
type ContentPackage struct {
	Script   string
	Metadata ContentMetadata
	Trend    TrendRecord
	Status   PackageStatus
}

// VideoSpec is the fixed (width, height, fps) triple for an aspect ratio.
type VideoSpec struct {
	Width  int
	Height int
	FPS    int
}

// VideoArtifact is a finished video file produced from one content package.
type VideoArtifact struct {
	ID        int64
	FilePath  string
	Duration  float64
	Spec      VideoSpec
	CreatedAt time.Time
}

// UploadResult records the outcome of one (video, platform) upload.
// A nil URL means the upload failed.
type UploadResult struct {
	ID         int64
	VideoID    int64
	Platform   Platform
	ContentID  string
	URL        *string
	Status     UploadStatus
	UploadedAt time.Time
}

// Stats is a point-in-time engagement reading from one platform.
type Stats struct {
	Views    int64
	Likes    int64
	Comments int64
	Shares   int64
	Revenue  float64
}

// AnalyticsSnapshot is the live per-upload stats row. At most one snapshot
// exists per upload; refreshes overwrite in place.
type AnalyticsSnapshot struct {
	ID          int64
	UploadID    int64
	Stats       Stats
	LastUpdated time.Time
}
