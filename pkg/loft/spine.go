package loft

import (
	"math"
	"math/rand"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// minRadius is the lower bound on a spine ring radius, avoiding
// degenerate rings.
const minRadius = 0.001

// DefaultRingSegments is the vertex count of a spine ring.
const DefaultRingSegments = 16

// SpinePoint is one ring anchor along a generated centerline path.
type SpinePoint struct {
	Position v3.Vec  `json:"position"`
	Radius   float64 `json:"radius"`
	Length   float64 `json:"length"`
	Rotation float64 `json:"rotation"` // degrees, ring offset about the vertical axis
}

// SpineSpec is the parameter set of the spine generator. Radius
// variation uses a seeded RNG, so generation is deterministic per seed.
type SpineSpec struct {
	Steps         int     `json:"steps"`
	RadiusStart   float64 `json:"radius_start"`
	RadiusEnd     float64 `json:"radius_end"`
	Height        float64 `json:"height"`
	SpiralStepDeg float64 `json:"spiral_step"`
	DriftX        float64 `json:"drift_x"`
	DriftY        float64 `json:"drift_y"`
	SegmentLength float64 `json:"segment_length"`
	Variation     float64 `json:"variation"`    // 0..1, max perturbation of variation*radius/2
	RemoveEvery   int     `json:"remove_every"` // 0 disables removal
	Seed          int64   `json:"seed"`
}

// GenerateSpine walks the centerline and emits ring anchors. Removed
// points are genuinely absent from the result, not nulled, so ring
// lofting needs no gap handling. Radius interpolates linearly from
// start to end and is floored at a small epsilon.
func GenerateSpine(spec SpineSpec) []SpinePoint {
	if spec.Steps <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(spec.Seed))

	out := make([]SpinePoint, 0, spec.Steps)
	var px, pz float64
	spiral := 0.0
	spiralStep := spec.SpiralStepDeg * math.Pi / 180

	for i := 0; i < spec.Steps; i++ {
		u := 0.0
		if spec.Steps > 1 {
			u = float64(i) / float64(spec.Steps-1)
		}
		radius := spec.RadiusStart + (spec.RadiusEnd-spec.RadiusStart)*u
		if spec.Variation > 0 {
			// Draw even for removed points so the sequence is stable
			// under removal frequency changes elsewhere in the walk.
			radius += (rng.Float64() - 0.5) * spec.Variation * radius
		}
		if radius < minRadius {
			radius = minRadius
		}

		removed := spec.RemoveEvery > 0 && (i+1)%spec.RemoveEvery == 0
		if !removed {
			out = append(out, SpinePoint{
				Position: v3.Vec{X: px, Y: u * spec.Height, Z: pz},
				Radius:   radius,
				Length:   spec.SegmentLength,
				Rotation: float64(i) * spec.SpiralStepDeg,
			})
		}

		s, c := math.Sincos(spiral)
		px += spec.DriftX*c - spec.DriftY*s
		pz += spec.DriftX*s + spec.DriftY*c
		spiral += spiralStep
	}
	return out
}

// LoftSpine connects the ring of each spine point to the next,
// exactly like the body walls of a cross-section loft. segments <= 2
// selects the default ring resolution. No holes or taper apply.
func LoftSpine(points []SpinePoint, segments int, smooth bool) *Mesh {
	if segments <= 2 {
		segments = DefaultRingSegments
	}
	mesh := &Mesh{}
	if len(points) == 0 {
		return mesh
	}

	rings := make([]uint32, len(points))
	for i, p := range points {
		rings[i] = uint32(mesh.VertexCount())
		offset := p.Rotation * math.Pi / 180
		for j := 0; j < segments; j++ {
			a := offset + 2*math.Pi*float64(j)/float64(segments)
			mesh.addVertex(
				p.Position.X+p.Radius*math.Cos(a),
				p.Position.Y,
				p.Position.Z+p.Radius*math.Sin(a),
			)
		}
	}
	for i := 0; i < len(points)-1; i++ {
		tubeRing(mesh, rings[i], rings[i+1], segments, false)
	}

	computeNormals(mesh, smooth)
	return mesh
}
