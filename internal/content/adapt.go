package content

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/textutil"
)

// AdaptForPlatform returns a platform-tuned copy of the metadata. The input
// is never mutated, so one base metadata can be adapted for every platform.
func AdaptForPlatform(meta model.ContentMetadata, platform model.Platform) model.ContentMetadata {
	adapted := meta
	adapted.Hashtags = append([]string(nil), meta.Hashtags...)
	adapted.Keywords = append([]string(nil), meta.Keywords...)
	adapted.Tags = append([]string(nil), meta.Tags...)

	switch platform {
	case model.PlatformYouTube:
		adapted.Title = meta.Title + " #Shorts"
		adapted.Description = meta.Description + "\n\n#Shorts #Fashion"

	case model.PlatformTikTok:
		desc := meta.Description
		if utf8.RuneCountInString(desc) > 100 {
			desc = textutil.Truncate(desc, 97) + "..."
		}
		adapted.Description = desc + "\n\n" + joinHashtags(meta.Tags, 5)

	case model.PlatformInstagram:
		adapted.Description = meta.Description + "\n\n" + joinHashtags(meta.Tags, 30)

	case model.PlatformTwitter:
		desc := textutil.Truncate(meta.Description, 200)
		adapted.Description = desc + " " + joinHashtags(meta.Tags, 3)
	}

	return adapted
}

func joinHashtags(tags []string, limit int) string {
	if len(tags) > limit {
		tags = tags[:limit]
	}

	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, fmt.Sprintf("#%s", tag))
	}
	return strings.Join(parts, " ")
}
