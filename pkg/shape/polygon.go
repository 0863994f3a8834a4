package shape

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Area returns the signed area of a closed polygon via the shoelace
// formula. Counter-clockwise polygons have positive area.
func Area(poly v2.VecSet) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return sum / 2
}

// Centroid returns the vertex centroid of a polygon. An empty polygon
// yields the origin.
func Centroid(poly v2.VecSet) v2.Vec {
	if len(poly) == 0 {
		return v2.Vec{}
	}
	var c v2.Vec
	for _, p := range poly {
		c.X += p.X
		c.Y += p.Y
	}
	c.X /= float64(len(poly))
	c.Y /= float64(len(poly))
	return c
}

// Translate returns a copy of poly moved by d.
func Translate(poly v2.VecSet, d v2.Vec) v2.VecSet {
	out := make(v2.VecSet, len(poly))
	for i, p := range poly {
		out[i] = v2.Vec{X: p.X + d.X, Y: p.Y + d.Y}
	}
	return out
}

// RotateAbout returns a copy of poly rotated by angle radians about
// the given center.
func RotateAbout(poly v2.VecSet, angle float64, center v2.Vec) v2.VecSet {
	s, c := math.Sincos(angle)
	out := make(v2.VecSet, len(poly))
	for i, p := range poly {
		dx := p.X - center.X
		dy := p.Y - center.Y
		out[i] = v2.Vec{
			X: center.X + dx*c - dy*s,
			Y: center.Y + dx*s + dy*c,
		}
	}
	return out
}

// ScaleAbout returns a copy of poly scaled by factor toward/away from
// the given center.
func ScaleAbout(poly v2.VecSet, factor float64, center v2.Vec) v2.VecSet {
	out := make(v2.VecSet, len(poly))
	for i, p := range poly {
		out[i] = v2.Vec{
			X: center.X + (p.X-center.X)*factor,
			Y: center.Y + (p.Y-center.Y)*factor,
		}
	}
	return out
}

// Resample re-parameterizes a closed polygon to exactly max(k,3)
// vertices evenly spaced by arc length along the original boundary.
// The polygon is implicitly closed (last vertex connects to the first).
// A zero-perimeter polygon is returned unchanged.
func Resample(poly v2.VecSet, k int) v2.VecSet {
	if k < 3 {
		k = 3
	}
	n := len(poly)
	if n == 0 {
		return poly
	}

	// Per-edge lengths and total perimeter.
	lengths := make([]float64, n)
	perimeter := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		dx := poly[j].X - poly[i].X
		dy := poly[j].Y - poly[i].Y
		lengths[i] = math.Hypot(dx, dy)
		perimeter += lengths[i]
	}
	if perimeter == 0 {
		return poly
	}

	out := make(v2.VecSet, 0, k)
	step := perimeter / float64(k)
	edge := 0
	walked := 0.0 // distance covered by fully consumed edges
	for i := 0; i < k; i++ {
		target := float64(i) * step
		for edge < n-1 && walked+lengths[edge] < target {
			walked += lengths[edge]
			edge++
		}
		// Interpolate within the current edge, clamping the fraction
		// to absorb floating point rounding.
		frac := 0.0
		if lengths[edge] > 0 {
			frac = (target - walked) / lengths[edge]
		}
		if frac < 0 {
			frac = 0
		} else if frac > 1 {
			frac = 1
		}
		a := poly[edge]
		b := poly[(edge+1)%n]
		out = append(out, v2.Vec{
			X: a.X + (b.X-a.X)*frac,
			Y: a.Y + (b.Y-a.Y)*frac,
		})
	}
	return out
}
