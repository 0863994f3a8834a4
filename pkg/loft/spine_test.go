package loft

import (
	"math"
	"testing"
)

func TestGenerateSpineCounts(t *testing.T) {
	points := GenerateSpine(SpineSpec{Steps: 10, RadiusStart: 5, RadiusEnd: 1, Height: 100})
	if len(points) != 10 {
		t.Fatalf("got %d points, want 10", len(points))
	}
	if points[0].Radius != 5 || points[9].Radius != 1 {
		t.Errorf("radius endpoints = %f, %f, want 5, 1", points[0].Radius, points[9].Radius)
	}
	if points[0].Position.Y != 0 || points[9].Position.Y != 100 {
		t.Errorf("height endpoints = %f, %f, want 0, 100", points[0].Position.Y, points[9].Position.Y)
	}
}

func TestGenerateSpineRemoval(t *testing.T) {
	points := GenerateSpine(SpineSpec{Steps: 10, RadiusStart: 5, RadiusEnd: 5, RemoveEvery: 3})
	// Steps 2, 5, 8 (every third) are skipped entirely.
	if len(points) != 7 {
		t.Fatalf("got %d points, want 7", len(points))
	}
	for _, p := range points {
		if p.Radius != 5 {
			t.Errorf("retained point radius = %f, want 5", p.Radius)
		}
	}
}

func TestGenerateSpineDeterministicPerSeed(t *testing.T) {
	spec := SpineSpec{Steps: 20, RadiusStart: 10, RadiusEnd: 2, Height: 50, Variation: 0.5, Seed: 42}
	a := GenerateSpine(spec)
	b := GenerateSpine(spec)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs between identical runs", i)
		}
	}
	spec.Seed = 43
	c := GenerateSpine(spec)
	same := true
	for i := range a {
		if a[i].Radius != c[i].Radius {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds should perturb radii differently")
	}
}

func TestGenerateSpineRadiusFloor(t *testing.T) {
	points := GenerateSpine(SpineSpec{Steps: 5, RadiusStart: 1, RadiusEnd: -3})
	for i, p := range points {
		if p.Radius < minRadius {
			t.Errorf("point %d radius = %f, below floor", i, p.Radius)
		}
	}
}

func TestGenerateSpineDrift(t *testing.T) {
	points := GenerateSpine(SpineSpec{Steps: 3, RadiusStart: 1, RadiusEnd: 1, DriftX: 10})
	wantX := []float64{0, 10, 20}
	for i, p := range points {
		if math.Abs(p.Position.X-wantX[i]) > 1e-9 || math.Abs(p.Position.Z) > 1e-9 {
			t.Errorf("point %d at (%f, %f), want (%f, 0)", i, p.Position.X, p.Position.Z, wantX[i])
		}
	}
}

func TestLoftSpine(t *testing.T) {
	points := GenerateSpine(SpineSpec{Steps: 4, RadiusStart: 5, RadiusEnd: 5, Height: 30})
	mesh := LoftSpine(points, 0, false)
	if got := mesh.VertexCount(); got != 4*DefaultRingSegments {
		t.Errorf("vertex count = %d, want %d", got, 4*DefaultRingSegments)
	}
	// 3 walls of 16 quads each.
	if got := mesh.TriangleCount(); got != 3*DefaultRingSegments*2 {
		t.Errorf("triangle count = %d, want %d", got, 3*DefaultRingSegments*2)
	}
}

func TestLoftSpineEmpty(t *testing.T) {
	mesh := LoftSpine(nil, 16, false)
	if !mesh.IsEmpty() {
		t.Error("lofting no points should produce an empty mesh")
	}
}
