package shape

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Instance is one placement of a primitive outline produced by the
// pattern generator. Instances are immutable once created.
type Instance struct {
	Center   v2.Vec  `json:"center"`
	Rotation float64 `json:"rotation"` // radians
	Scale    float64 `json:"scale"`
	Kind     Kind    `json:"kind"`
	Size     float64 `json:"size"`
	Params   Params  `json:"params"`
}

// Spec is the full parameter set of the pattern generator. Angular
// inputs are in degrees; generated instances carry radians.
type Spec struct {
	Kind             Kind    `json:"kind"`
	Steps            int     `json:"steps"`
	Size             float64 `json:"size"`
	ScaleStart       float64 `json:"scale_start"`
	ScaleFactor      float64 `json:"scale_factor"` // per-step multiplier
	RotationStartDeg float64 `json:"rotation_start"`
	RotationStepDeg  float64 `json:"rotation_step"`
	DriftX           float64 `json:"drift_x"`
	DriftY           float64 `json:"drift_y"`
	SpiralStepDeg    float64 `json:"spiral_step"` // rotates the drift vector per step
	Params           Params  `json:"params"`
}

// Generate emits Spec.Steps instances. The running position advances
// by the drift vector rotated by the cumulative spiral angle; rotation
// and scale advance by their per-step increments. All inputs are
// unconstrained; degenerate parameters simply collapse later shapes.
func Generate(spec Spec) []Instance {
	out := make([]Instance, 0, spec.Steps)

	pos := v2.Vec{}
	rot := spec.RotationStartDeg * math.Pi / 180
	rotStep := spec.RotationStepDeg * math.Pi / 180
	scale := spec.ScaleStart
	spiral := 0.0
	spiralStep := spec.SpiralStepDeg * math.Pi / 180
	drift := v2.Vec{X: spec.DriftX, Y: spec.DriftY}

	for i := 0; i < spec.Steps; i++ {
		out = append(out, Instance{
			Center:   pos,
			Rotation: rot,
			Scale:    scale,
			Kind:     spec.Kind,
			Size:     spec.Size,
			Params:   spec.Params,
		})

		s, c := math.Sincos(spiral)
		pos = v2.Vec{
			X: pos.X + drift.X*c - drift.Y*s,
			Y: pos.Y + drift.X*s + drift.Y*c,
		}
		rot += rotStep
		scale *= spec.ScaleFactor
		spiral += spiralStep
	}
	return out
}

// Outline returns the placed polygon for an instance: the primitive
// outline rotated, scaled, and translated to the instance center.
func Outline(inst Instance) v2.VecSet {
	poly := Polygon(inst.Kind, inst.Size, inst.Params)
	if inst.Rotation != 0 {
		poly = RotateAbout(poly, inst.Rotation, v2.Vec{})
	}
	if inst.Scale != 1 {
		poly = ScaleAbout(poly, inst.Scale, v2.Vec{})
	}
	return Translate(poly, inst.Center)
}
