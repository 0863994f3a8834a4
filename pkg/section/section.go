// Package section builds the ordered 2D cross-sections consumed by
// the loft engine. A section is an outer outline (CCW) at a normalized
// height t, with optional inner hole outlines (semantically CW).
package section

import (
	"math"
	"sort"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/turnery/pkg/ease"
	"github.com/chazu/turnery/pkg/shape"
)

// CrossSection is one outline placed at normalized height T. An empty
// Outer marks an intentional gap: no geometry is generated there and
// the lofted body splits around it. Sections are never mutated after
// the hole inserter has run.
type CrossSection struct {
	Outer v2.VecSet   `json:"outer"`
	Holes []v2.VecSet `json:"holes,omitempty"`
	T     float64     `json:"t"`
}

// IsGap reports whether the section is an intentional gap.
func (s CrossSection) IsGap() bool {
	return len(s.Outer) == 0
}

// Options controls section building.
type Options struct {
	// Sorted orders sources by descending absolute area so the largest
	// outline becomes the base (t=0). Order-preserving mode (Sorted
	// false) keeps nil sources in place as gap sections.
	Sorted bool

	// Easing remaps the linear index ratio to T. Nil means linear.
	Easing ease.Func

	// Normalize resamples all retained outlines to the maximum vertex
	// count among them, so adjacent sections can be tubed.
	Normalize bool
}

// Build converts an ordered sequence of outlines into cross-sections.
// A nil source marks a removed outline and becomes a gap section; gaps
// are only expected in order-preserving mode.
func Build(sources []v2.VecSet, opts Options) []CrossSection {
	n := len(sources)
	if n == 0 {
		return nil
	}

	polys := make([]v2.VecSet, n)
	copy(polys, sources)

	if opts.Sorted {
		sort.SliceStable(polys, func(i, j int) bool {
			return math.Abs(shape.Area(polys[i])) > math.Abs(shape.Area(polys[j]))
		})
	}

	if opts.Normalize {
		maxVerts := 0
		for _, p := range polys {
			if len(p) > maxVerts {
				maxVerts = len(p)
			}
		}
		if maxVerts >= 3 {
			for i, p := range polys {
				if p != nil {
					polys[i] = shape.Resample(p, maxVerts)
				}
			}
		}
	}

	sections := make([]CrossSection, n)
	for i, p := range polys {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		if opts.Easing != nil {
			t = opts.Easing(t)
		}
		sections[i] = CrossSection{Outer: p, T: t}
	}
	return sections
}

// FromInstances converts pattern instances to outline sources. A nil
// entry in the instance filter marks a removed instance; removed
// returns true for indices to drop. A nil removed keeps everything.
func FromInstances(instances []shape.Instance, removed func(i int) bool) []v2.VecSet {
	out := make([]v2.VecSet, len(instances))
	for i, inst := range instances {
		if removed != nil && removed(i) {
			continue
		}
		out[i] = shape.Outline(inst)
	}
	return out
}
