package media

import "github.com/singhxgaurav-code/viral-fashion-agent/internal/model"

// SpecFor maps an aspect ratio to the fixed output dimensions. Anything
// other than vertical or square renders horizontal.
func SpecFor(aspectRatio string) model.VideoSpec {
	switch aspectRatio {
	case "9:16":
		return model.VideoSpec{Width: 1080, Height: 1920, FPS: 30}
	case "1:1":
		return model.VideoSpec{Width: 1080, Height: 1080, FPS: 30}
	default:
		return model.VideoSpec{Width: 1920, Height: 1080, FPS: 30}
	}
}

// OrientationFor returns the stock-footage orientation filter for an aspect
// ratio.
func OrientationFor(aspectRatio string) string {
	if aspectRatio == "9:16" {
		return "portrait"
	}
	return "landscape"
}
