package loft

import (
	"fmt"
	"log/slog"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/turnery/pkg/section"
	"github.com/chazu/turnery/pkg/shape"
)

// tipAreaEpsilon is the absolute signed area below which a final
// section counts as a collapsed tip.
const tipAreaEpsilon = 0.001

// Options controls lofting.
type Options struct {
	Height   float64 // total height of the lofted body
	TwistDeg float64 // rotation of the tip relative to the base, degrees
	Taper    float64 // fractional radius reduction at the tip, linear in t
	Smooth   bool    // vertex-averaged normals instead of flat

	// CloseTip closes a collapsed final section with a centroid fan.
	// Only the legacy single-path parameter mode sets this.
	CloseTip bool

	// Logger receives non-fatal warnings. Nil uses slog.Default().
	Logger *slog.Logger
}

// Warning reports a recoverable geometric degeneracy encountered
// while lofting, such as mismatched vertex counts between adjacent
// sections. The mesh is still produced, minus the affected walls.
type Warning struct {
	Section int    `json:"section"`
	Message string `json:"message"`
}

// Loft converts a cross-section sequence into a triangle mesh. Gaps
// (empty outer outlines) split the body into disconnected segments.
// Ends are not capped unless CloseTip applies. Never fails: degenerate
// input yields an empty or partial mesh plus warnings.
func Loft(sections []section.CrossSection, opts Options) (*Mesh, []Warning) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mesh := &Mesh{}
	if len(sections) == 0 {
		return mesh, nil
	}

	transformed := transformSections(sections, opts)

	var warnings []Warning

	// Emit outer rings. rings[i] is the first vertex index of section
	// i's outer outline, or -1 for a gap.
	rings := make([]int, len(transformed))
	for i, s := range transformed {
		if s.IsGap() {
			rings[i] = -1
			continue
		}
		rings[i] = mesh.VertexCount()
		y := s.T * opts.Height
		for _, p := range s.Outer {
			mesh.addVertex(p.X, y, p.Y)
		}
	}

	// Body walls between adjacent non-gap sections.
	for i := 0; i < len(transformed)-1; i++ {
		a, b := transformed[i], transformed[i+1]
		if a.IsGap() || b.IsGap() {
			continue // intentional opening
		}
		if len(a.Outer) != len(b.Outer) {
			w := Warning{
				Section: i,
				Message: fmt.Sprintf("vertex count mismatch between sections %d and %d (%d vs %d), wall skipped",
					i, i+1, len(a.Outer), len(b.Outer)),
			}
			warnings = append(warnings, w)
			logger.Warn("loft: "+w.Message, "section", i)
			continue
		}
		tubeRing(mesh, uint32(rings[i]), uint32(rings[i+1]), len(a.Outer), false)
	}

	// Hole tubes, per slot, with reversed winding so wall normals face
	// inward. Never capped; a slot missing from an adjacent section
	// simply breaks the tube there.
	maxSlots := 0
	for _, s := range transformed {
		if len(s.Holes) > maxSlots {
			maxSlots = len(s.Holes)
		}
	}
	for slot := 0; slot < maxSlots; slot++ {
		tubeHoleSlot(mesh, transformed, slot, opts.Height)
	}

	// Tip closing applies only to the legacy single-path mode.
	if opts.CloseTip {
		closeTip(mesh, transformed, rings, opts.Height)
	}

	computeNormals(mesh, opts.Smooth)
	return mesh, warnings
}

// transformSections applies taper and twist and leaves elevation to
// the emit stage. Input sections are never mutated.
func transformSections(sections []section.CrossSection, opts Options) []section.CrossSection {
	out := make([]section.CrossSection, len(sections))
	for i, s := range sections {
		out[i] = s
		if s.IsGap() {
			continue
		}
		outer := s.Outer
		holes := s.Holes

		if opts.Taper != 0 {
			factor := 1 - opts.Taper*s.T
			outer = shape.ScaleAbout(outer, factor, shape.Centroid(outer))
			holes = scaleHoles(holes, factor)
		}
		if opts.TwistDeg != 0 {
			angle := opts.TwistDeg * s.T * math.Pi / 180
			outer = shape.RotateAbout(outer, angle, v2.Vec{})
			rotated := make([]v2.VecSet, len(holes))
			for h, hole := range holes {
				rotated[h] = shape.RotateAbout(hole, angle, v2.Vec{})
			}
			holes = rotated
		}

		out[i].Outer = outer
		out[i].Holes = holes
	}
	return out
}

// scaleHoles scales each hole toward its own centroid.
func scaleHoles(holes []v2.VecSet, factor float64) []v2.VecSet {
	out := make([]v2.VecSet, len(holes))
	for i, hole := range holes {
		out[i] = shape.ScaleAbout(hole, factor, shape.Centroid(hole))
	}
	return out
}

// tubeRing connects two rings of n vertices with a strip of quads.
// With reversed false the triangles face outward for CCW outlines;
// reversed flips the winding for hole walls.
func tubeRing(mesh *Mesh, lower, upper uint32, n int, reversed bool) {
	for j := 0; j < n; j++ {
		k := (j + 1) % n
		a := lower + uint32(j)
		b := lower + uint32(k)
		c := upper + uint32(j)
		d := upper + uint32(k)
		if reversed {
			mesh.addTriangle(a, b, c)
			mesh.addTriangle(b, d, c)
		} else {
			mesh.addTriangle(a, c, b)
			mesh.addTriangle(b, c, d)
		}
	}
}

// tubeHoleSlot emits the wall tube for one hole slot across all
// sections that carry it.
func tubeHoleSlot(mesh *Mesh, sections []section.CrossSection, slot int, height float64) {
	// Ring start index per section, -1 where the slot is absent.
	rings := make([]int, len(sections))
	for i, s := range sections {
		if slot >= len(s.Holes) {
			rings[i] = -1
			continue
		}
		hole := s.Holes[slot]
		rings[i] = mesh.VertexCount()
		y := s.T * height
		for _, p := range hole {
			mesh.addVertex(p.X, y, p.Y)
		}
	}
	for i := 0; i < len(sections)-1; i++ {
		if rings[i] < 0 || rings[i+1] < 0 {
			continue
		}
		na := len(sections[i].Holes[slot])
		nb := len(sections[i+1].Holes[slot])
		if na != nb || na == 0 {
			continue
		}
		tubeRing(mesh, uint32(rings[i]), uint32(rings[i+1]), na, true)
	}
}

// closeTip fans the last non-gap section's outline from its centroid
// when the outline has collapsed to near-zero area.
func closeTip(mesh *Mesh, sections []section.CrossSection, rings []int, height float64) {
	last := -1
	for i := len(sections) - 1; i >= 0; i-- {
		if !sections[i].IsGap() {
			last = i
			break
		}
	}
	if last < 0 {
		return
	}
	outer := sections[last].Outer
	if math.Abs(shape.Area(outer)) >= tipAreaEpsilon {
		return
	}
	c := shape.Centroid(outer)
	center := mesh.addVertex(c.X, sections[last].T*height, c.Y)
	ring := uint32(rings[last])
	n := len(outer)
	for j := 0; j < n; j++ {
		k := (j + 1) % n
		mesh.addTriangle(ring+uint32(j), ring+uint32(k), center)
	}
}
