// Package ease provides easing functions used to bias cross-section
// placement along a lofted body. All functions map a normalized
// position in [0,1] to a normalized position in [0,1].
package ease

import "math"

// Func maps a normalized position to a normalized position.
type Func func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// InQuad accelerates from zero velocity.
func InQuad(t float64) float64 { return t * t }

// OutQuad decelerates to zero velocity.
func OutQuad(t float64) float64 { return t * (2 - t) }

// InOutQuad accelerates until halfway, then decelerates.
func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// InCubic accelerates from zero velocity, cubically.
func InCubic(t float64) float64 { return t * t * t }

// OutCubic decelerates to zero velocity, cubically.
func OutCubic(t float64) float64 {
	u := t - 1
	return u*u*u + 1
}

// InOutCubic accelerates until halfway, then decelerates, cubically.
func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 0.5*u*u*u + 1
}

// InSine accelerates along a quarter sine wave.
func InSine(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) }

// OutSine decelerates along a quarter sine wave.
func OutSine(t float64) float64 { return math.Sin(t * math.Pi / 2) }

// byName maps easing names to functions for script and graph lookup.
var byName = map[string]Func{
	"linear":       Linear,
	"in-quad":      InQuad,
	"out-quad":     OutQuad,
	"in-out-quad":  InOutQuad,
	"in-cubic":     InCubic,
	"out-cubic":    OutCubic,
	"in-out-cubic": InOutCubic,
	"in-sine":      InSine,
	"out-sine":     OutSine,
}

// ByName returns the easing function with the given name, or false if
// no such easing exists.
func ByName(name string) (Func, bool) {
	f, ok := byName[name]
	return f, ok
}
