package section

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/turnery/pkg/shape"
)

// Pattern selects which sections receive a hole.
type Pattern func(index int) bool

// Shape generates an inner hole outline from a section's outer
// outline and its normalized height.
type Shape func(outer v2.VecSet, t float64) v2.VecSet

// Default hole scale factors: the hole shrinks from 40% of the outer
// outline at the base to 25% at the tip.
const (
	holeScaleBase = 0.40
	holeScaleTip  = 0.25

	// Caller-supplied fixed factors are clamped to this range.
	holeScaleMin = 0.2
	holeScaleMax = 0.6
)

// EvenPattern is the default hole pattern: every even section index.
func EvenPattern(index int) bool {
	return index%2 == 0
}

// DefaultShape scales the outer outline toward its centroid by a
// factor interpolated from 0.40 at t=0 to 0.25 at t=1.
func DefaultShape(outer v2.VecSet, t float64) v2.VecSet {
	factor := holeScaleBase + (holeScaleTip-holeScaleBase)*t
	return shape.ScaleAbout(outer, factor, shape.Centroid(outer))
}

// ScaledShape returns a hole generator using a fixed scale factor,
// clamped to [0.2, 0.6].
func ScaledShape(factor float64) Shape {
	if factor < holeScaleMin {
		factor = holeScaleMin
	} else if factor > holeScaleMax {
		factor = holeScaleMax
	}
	return func(outer v2.VecSet, _ float64) v2.VecSet {
		return shape.ScaleAbout(outer, factor, shape.Centroid(outer))
	}
}

// InsertHoles appends one generated hole to each non-gap section
// selected by the pattern; other sections pass through unchanged. A
// nil pattern selects even indices, a nil shape uses DefaultShape.
// Holes keep the outer's winding at generation time but are
// semantically clockwise relative to the CCW outer; the loft engine
// reverses triangle winding for hole walls accordingly.
func InsertHoles(sections []CrossSection, pattern Pattern, holeShape Shape) []CrossSection {
	if pattern == nil {
		pattern = EvenPattern
	}
	if holeShape == nil {
		holeShape = DefaultShape
	}
	out := make([]CrossSection, len(sections))
	for i, s := range sections {
		out[i] = s
		if s.IsGap() || !pattern(i) {
			continue
		}
		hole := holeShape(s.Outer, s.T)
		if len(hole) == 0 {
			continue
		}
		holes := make([]v2.VecSet, len(s.Holes), len(s.Holes)+1)
		copy(holes, s.Holes)
		out[i].Holes = append(holes, hole)
	}
	return out
}
