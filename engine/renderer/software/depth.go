package software

import (
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
)

// DepthTest reports whether a candidate depth value passes against the
// stored reference. Unknown modes pass.
func DepthTest(mode metadata.DepthTestMode, value, reference uint32) bool {
	switch mode {
	case metadata.DepthTestNever:
		return false
	case metadata.DepthTestAlways:
		return true
	case metadata.DepthTestLess:
		return value < reference
	case metadata.DepthTestLessEqual:
		return value <= reference
	case metadata.DepthTestGreater:
		return value > reference
	case metadata.DepthTestGreaterEqual:
		return value >= reference
	case metadata.DepthTestEqual:
		return value == reference
	case metadata.DepthTestNotEqual:
		return value != reference
	}
	return true
}

// depthFromNdc maps z in [-1,1] onto the full uint32 range.
func depthFromNdc(z float32) uint32 {
	d := (0.5 + 0.5*float64(z)) * float64(DepthFar)
	if d <= 0 {
		return 0
	}
	if d >= float64(DepthFar) {
		return DepthFar
	}
	return uint32(d)
}
