// Package shape provides the 2D primitive outlines and the pattern
// generator that drive the lofting pipeline. Outlines are ordered
// counter-clockwise vertex sets in the working plane.
package shape

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Kind enumerates the primitive outline generators.
type Kind int

const (
	Circle Kind = iota
	Square
	Triangle
	Hexagon
	Star
	Cross
)

func (k Kind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	case Hexagon:
		return "hexagon"
	case Star:
		return "star"
	case Cross:
		return "cross"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "circle":
		return Circle, nil
	case "square":
		return Square, nil
	case "triangle":
		return Triangle, nil
	case "hexagon":
		return Hexagon, nil
	case "star":
		return Star, nil
	case "cross":
		return Cross, nil
	}
	return Circle, fmt.Errorf("unknown shape kind %q", s)
}

// Params carries the shape-specific parameters. Zero values select
// the defaults.
type Params struct {
	StarPoints     int     `json:"star_points,omitempty"`     // number of star tips
	CrossThickness float64 `json:"cross_thickness,omitempty"` // arm half-width as a fraction of size
}

const (
	defaultStarPoints     = 5
	defaultCrossThickness = 0.4

	// circleSegments is the vertex count used to approximate a circle.
	circleSegments = 32

	// starInnerRatio is the inner/outer radius ratio for star tips.
	starInnerRatio = 0.5
)

// withDefaults returns p with zero fields replaced by the defaults.
func (p Params) withDefaults() Params {
	if p.StarPoints <= 0 {
		p.StarPoints = defaultStarPoints
	}
	if p.CrossThickness <= 0 {
		p.CrossThickness = defaultCrossThickness
	}
	return p
}

// Polygon returns the outline of a primitive shape, centered on the
// origin with circumradius (or half-width) size, wound counter-clockwise.
func Polygon(kind Kind, size float64, params Params) v2.VecSet {
	params = params.withDefaults()
	switch kind {
	case Circle:
		return sdf.Nagon(circleSegments, size)
	case Square:
		return v2.VecSet{
			{X: size, Y: size},
			{X: -size, Y: size},
			{X: -size, Y: -size},
			{X: size, Y: -size},
		}
	case Triangle:
		return sdf.Nagon(3, size)
	case Hexagon:
		return sdf.Nagon(6, size)
	case Star:
		return starPolygon(size, params.StarPoints)
	case Cross:
		return crossPolygon(size, params.CrossThickness)
	default:
		return sdf.Nagon(circleSegments, size)
	}
}

// starPolygon builds a star with the given number of tips by
// alternating between the outer and inner radius.
func starPolygon(size float64, points int) v2.VecSet {
	inner := size * starInnerRatio
	poly := make(v2.VecSet, 0, 2*points)
	for i := 0; i < 2*points; i++ {
		r := size
		if i%2 == 1 {
			r = inner
		}
		a := float64(i) * math.Pi / float64(points)
		poly = append(poly, v2.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)})
	}
	return poly
}

// crossPolygon builds a plus sign with overall half-width size and arm
// half-width thickness*size, as a 12-vertex outline.
func crossPolygon(size, thickness float64) v2.VecSet {
	t := size * thickness
	return v2.VecSet{
		{X: t, Y: t},
		{X: t, Y: size},
		{X: -t, Y: size},
		{X: -t, Y: t},
		{X: -size, Y: t},
		{X: -size, Y: -t},
		{X: -t, Y: -t},
		{X: -t, Y: -size},
		{X: t, Y: -size},
		{X: t, Y: -t},
		{X: size, Y: -t},
		{X: size, Y: t},
	}
}
