package distribution

import (
	"strings"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
)

// ContentID extracts the platform-native content identifier from a public
// URL. An unrecognized URL shape returns the URL unchanged so analytics can
// still key on something stable.
func ContentID(platform model.Platform, url string) string {
	switch platform {
	case model.PlatformYouTube:
		return segmentAfter(url, "/shorts/")
	case model.PlatformInstagram:
		return segmentAfter(url, "/reel/")
	case model.PlatformFacebook:
		return segmentAfter(url, "/reel/")
	case model.PlatformTwitter:
		return segmentAfter(url, "/status/")
	case model.PlatformTikTok:
		trimmed := strings.TrimSuffix(url, "/")
		if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
			return trimmed[idx+1:]
		}
		return trimmed
	default:
		return url
	}
}

func segmentAfter(url, marker string) string {
	idx := strings.Index(url, marker)
	if idx < 0 {
		return url
	}

	id := url[idx+len(marker):]
	id = strings.TrimSuffix(id, "/")
	if slash := strings.Index(id, "/"); slash >= 0 {
		id = id[:slash]
	}
	if q := strings.Index(id, "?"); q >= 0 {
		id = id[:q]
	}
	return id
}
