package service

import (
	"math"
	"strings"
	"time"
)

// Technology tags a project can be badged with.
const (
	TechNodeJS     = "Node.js"
	TechNextJS     = "Next.js"
	TechReactJS    = "React.js"
	TechTypeScript = "TypeScript"
)

// TechnologyOrder is the canonical display order. NormalizeTechnologies
// always emits tags in this order regardless of submission order.
var TechnologyOrder = []string{TechNodeJS, TechNextJS, TechReactJS, TechTypeScript}

// DemoImages are shared placeholder images used when a project has no
// uploaded image. They are never deleted by project lifecycle
// operations.
var DemoImages = []string{
	"/img/demo-image-1.jpg",
	"/img/demo-image-2.jpg",
	"/img/demo-image-3.jpg",
	"/img/demo-image-4.jpg",
	"/img/demo-image-5.jpg",
}

const uploadedImagePrefix = "/uploads/"

// IsUploadedImage reports whether ref points at an uploaded file rather
// than a shared demo image.
func IsUploadedImage(ref string) bool {
	return strings.HasPrefix(ref, uploadedImagePrefix)
}

// NormalizeTechnologies maps checkbox flags keyed by tag name to the
// ordered tag list.
func NormalizeTechnologies(flags map[string]bool) []string {
	out := make([]string, 0, len(TechnologyOrder))
	for _, tag := range TechnologyOrder {
		if flags[tag] {
			out = append(out, tag)
		}
	}
	return out
}

// ComputeDuration returns the project duration in whole months using a
// fixed 30-day month: ceil(days / 30), clamped to a minimum of 1. A
// same-day or inverted range yields 1. The imprecision is deliberate,
// this is a display value, not calendar arithmetic.
func ComputeDuration(start, end time.Time) int {
	days := end.Sub(start).Hours() / 24
	months := int(math.Ceil(days / 30))
	if months < 1 {
		return 1
	}
	return months
}
