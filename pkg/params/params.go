// Package params provides the flat parameter records of the legacy
// direct mode. The records bypass the graph layer and call the
// geometry pipeline straight through, so slider panels can rebuild a
// mesh without constructing a document.
package params

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/turnery/pkg/ease"
	"github.com/chazu/turnery/pkg/loft"
	"github.com/chazu/turnery/pkg/section"
	"github.com/chazu/turnery/pkg/shape"
)

// ShellParams describes a plain hollow vessel: one outline lofted
// straight up with a wall of constant thickness.
type ShellParams struct {
	Kind      shape.Kind `json:"kind"`
	Height    float64    `json:"height"`
	Radius    float64    `json:"radius"`
	Thickness float64    `json:"thickness"`
	Segments  int        `json:"segments"`
	Smooth    bool       `json:"smooth"`

	Shape shape.Params `json:"shape"`
}

// DefaultShell returns the panel's initial slider positions.
func DefaultShell() ShellParams {
	return ShellParams{
		Kind:      shape.Circle,
		Height:    100,
		Radius:    30,
		Thickness: 3,
	}
}

// Build produces the shell mesh. A thickness outside (0, radius)
// yields a solid body with no inner wall.
func (p ShellParams) Build() *loft.Mesh {
	outer := shape.Polygon(p.Kind, p.Radius, p.Shape)
	if p.Segments > 0 {
		outer = shape.Resample(outer, p.Segments)
	}

	var holes []v2.VecSet
	if p.Thickness > 0 && p.Thickness < p.Radius {
		inner := shape.ScaleAbout(outer,
			(p.Radius-p.Thickness)/p.Radius, shape.Centroid(outer))
		holes = []v2.VecSet{inner}
	}

	sections := []section.CrossSection{
		{Outer: outer, Holes: holes, T: 0},
		{Outer: outer, Holes: holes, T: 1},
	}
	mesh, _ := loft.Loft(sections, loft.Options{
		Height: p.Height,
		Smooth: p.Smooth,
	})
	return mesh
}

// PatternParams drives the full patterned loft in one record: the
// pattern generator inputs, section assembly, hole insertion, and the
// loft controls. Unlike the graph path it closes a collapsed tip.
type PatternParams struct {
	Kind             shape.Kind `json:"kind"`
	Steps            int        `json:"steps"`
	Size             float64    `json:"size"`
	ScaleStart       float64    `json:"scaleStart"`
	ScaleFactor      float64    `json:"scaleFactor"`
	RotationStartDeg float64    `json:"rotationStart"`
	RotationStepDeg  float64    `json:"rotationStep"`
	DriftX           float64    `json:"driftX"`
	DriftY           float64    `json:"driftY"`
	SpiralStepDeg    float64    `json:"spiralStep"`

	Shape shape.Params `json:"shape"`

	RemoveEvery int    `json:"removeEvery"`
	Sorted      bool   `json:"sorted"`
	Normalize   bool   `json:"normalize"`
	Easing      string `json:"easing"`

	HoleEvery int     `json:"holeEvery"`
	HoleScale float64 `json:"holeScale"`

	Height   float64 `json:"height"`
	TwistDeg float64 `json:"twist"`
	Taper    float64 `json:"taper"`
	Smooth   bool    `json:"smooth"`
}

// DefaultPattern returns the panel's initial slider positions.
func DefaultPattern() PatternParams {
	return PatternParams{
		Kind:        shape.Circle,
		Steps:       8,
		Size:        10,
		ScaleStart:  1,
		ScaleFactor: 0.95,
		Sorted:      true,
		Normalize:   true,
		Easing:      "linear",
		Height:      100,
	}
}

// Spec converts the pattern inputs to a generator spec.
func (p PatternParams) Spec() shape.Spec {
	return shape.Spec{
		Kind:             p.Kind,
		Steps:            p.Steps,
		Size:             p.Size,
		ScaleStart:       p.ScaleStart,
		ScaleFactor:      p.ScaleFactor,
		RotationStartDeg: p.RotationStartDeg,
		RotationStepDeg:  p.RotationStepDeg,
		DriftX:           p.DriftX,
		DriftY:           p.DriftY,
		SpiralStepDeg:    p.SpiralStepDeg,
		Params:           p.Shape,
	}
}

// Build runs the pattern pipeline end to end and returns the mesh
// together with any loft warnings.
func (p PatternParams) Build() (*loft.Mesh, []loft.Warning) {
	instances := shape.Generate(p.Spec())

	var removed func(int) bool
	if n := p.RemoveEvery; n > 0 {
		removed = func(i int) bool { return (i+1)%n == 0 }
	}
	sources := section.FromInstances(instances, removed)

	easing, ok := ease.ByName(p.Easing)
	if !ok {
		easing = ease.Linear
	}
	sections := section.Build(sources, section.Options{
		Sorted:    p.Sorted,
		Easing:    easing,
		Normalize: p.Normalize,
	})

	if p.HoleEvery > 0 {
		pattern := func(i int) bool { return i%p.HoleEvery == 0 }
		holeShape := section.DefaultShape
		if p.HoleScale > 0 {
			holeShape = section.ScaledShape(p.HoleScale)
		}
		sections = section.InsertHoles(sections, pattern, holeShape)
	}

	return loft.Loft(sections, loft.Options{
		Height:   p.Height,
		TwistDeg: p.TwistDeg,
		Taper:    p.Taper,
		Smooth:   p.Smooth,
		CloseTip: true,
	})
}
