package loft

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/turnery/pkg/section"
	"github.com/chazu/turnery/pkg/shape"
)

// stack builds sections from square half-widths; a negative half-width
// becomes a gap.
func stack(halfWidths ...float64) []section.CrossSection {
	src := make([]v2.VecSet, len(halfWidths))
	for i, hw := range halfWidths {
		if hw >= 0 {
			src[i] = shape.Polygon(shape.Square, hw, shape.Params{})
		}
	}
	return section.Build(src, section.Options{})
}

func TestLoftEmptyInput(t *testing.T) {
	mesh, warnings := Loft(nil, Options{Height: 10})
	if !mesh.IsEmpty() {
		t.Error("lofting no sections should produce an empty mesh")
	}
	if len(warnings) != 0 {
		t.Errorf("got %d warnings, want 0", len(warnings))
	}
}

func TestLoftBody(t *testing.T) {
	mesh, warnings := Loft(stack(10, 8, 6), Options{Height: 30})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	// 3 rings of 4 vertices, 2 walls of 4 quads each.
	if got := mesh.VertexCount(); got != 12 {
		t.Errorf("vertex count = %d, want 12", got)
	}
	if got := mesh.TriangleCount(); got != 16 {
		t.Errorf("triangle count = %d, want 16", got)
	}
	if len(mesh.Normals) != len(mesh.Vertices) {
		t.Errorf("normals length %d != vertices length %d", len(mesh.Normals), len(mesh.Vertices))
	}
	// Sections sit at y = t * height.
	wantY := []float32{0, 15, 30}
	for ring := 0; ring < 3; ring++ {
		y := mesh.Vertices[3*(4*ring)+1]
		if y != wantY[ring] {
			t.Errorf("ring %d y = %f, want %f", ring, y, wantY[ring])
		}
	}
}

func TestLoftGapSplitsBody(t *testing.T) {
	mesh, warnings := Loft(stack(10, -1, 10), Options{Height: 20})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	// Two rings of 4 vertices, no walls at all: both neighbors of the
	// gap have no partner.
	if got := mesh.TriangleCount(); got != 0 {
		t.Errorf("triangle count = %d, want 0 (gap severs both walls)", got)
	}
}

func TestLoftGapDisconnectsNeighbors(t *testing.T) {
	// Four sections with a gap in the middle: walls exist only within
	// each side, never across the gap.
	mesh, _ := Loft(stack(10, 9, -1, 8, 7), Options{Height: 40})
	// Ring blocks: section 0 -> [0,4), 1 -> [4,8), 3 -> [8,12), 4 -> [12,16).
	lowMax := uint32(8)
	for t3 := 0; t3 < mesh.TriangleCount(); t3++ {
		var below, above bool
		for j := 0; j < 3; j++ {
			if mesh.Indices[3*t3+j] < lowMax {
				below = true
			} else {
				above = true
			}
		}
		if below && above {
			t.Fatalf("triangle %d bridges the gap", t3)
		}
	}
	// 4 quads below the gap + 4 above.
	if got := mesh.TriangleCount(); got != 16 {
		t.Errorf("triangle count = %d, want 16", got)
	}
}

func TestLoftVertexCountMismatch(t *testing.T) {
	src := []v2.VecSet{
		shape.Polygon(shape.Square, 10, shape.Params{}),
		shape.Polygon(shape.Hexagon, 10, shape.Params{}),
	}
	mesh, warnings := Loft(section.Build(src, section.Options{}), Options{Height: 10})
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Section != 0 {
		t.Errorf("warning section = %d, want 0", warnings[0].Section)
	}
	if got := mesh.TriangleCount(); got != 0 {
		t.Errorf("mismatched wall should be skipped, got %d triangles", got)
	}
}

func TestLoftTaper(t *testing.T) {
	mesh, _ := Loft(stack(10, 10), Options{Height: 10, Taper: 0.5})
	// Base ring unscaled, top ring scaled by (1 - 0.5*1) = 0.5.
	baseX := mesh.Vertices[0]
	topX := mesh.Vertices[3*4]
	if math.Abs(float64(baseX)-10) > 1e-6 {
		t.Errorf("base corner x = %f, want 10", baseX)
	}
	if math.Abs(float64(topX)-5) > 1e-6 {
		t.Errorf("tapered top corner x = %f, want 5", topX)
	}
}

func TestLoftTwist(t *testing.T) {
	mesh, _ := Loft(stack(10, 10), Options{Height: 10, TwistDeg: 90})
	// First vertex of the base ring is the square corner (10, 10); at
	// the tip, twisted by 90 degrees about the vertical axis.
	x0, _, z0 := mesh.vertex(0)
	x1, _, z1 := mesh.vertex(4)
	if math.Abs(x0-10) > 1e-6 || math.Abs(z0-10) > 1e-6 {
		t.Fatalf("base corner = (%f, %f), want (10, 10)", x0, z0)
	}
	// (10,10) rotated 90 degrees -> (-10, 10).
	if math.Abs(x1+10) > 1e-5 || math.Abs(z1-10) > 1e-5 {
		t.Errorf("twisted corner = (%f, %f), want (-10, 10)", x1, z1)
	}
}

func TestLoftHolesTubed(t *testing.T) {
	sections := section.InsertHoles(stack(10, 10, 10), func(int) bool { return true }, nil)
	mesh, warnings := Loft(sections, Options{Height: 20})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	// Outer: 3 rings * 4 verts, walls 2*4 quads. Holes: 3 rings * 4
	// verts, tubes 2*4 quads.
	if got := mesh.VertexCount(); got != 24 {
		t.Errorf("vertex count = %d, want 24", got)
	}
	if got := mesh.TriangleCount(); got != 32 {
		t.Errorf("triangle count = %d, want 32", got)
	}
}

func TestLoftHoleSlotBreaks(t *testing.T) {
	// Hole only on the first and last of three sections: the tube
	// cannot span the middle section.
	sections := section.InsertHoles(stack(10, 10, 10), func(i int) bool { return i != 1 }, nil)
	mesh, _ := Loft(sections, Options{Height: 20})
	// Outer walls: 16 triangles. Hole rings exist on sections 0 and 2
	// but no adjacent pair shares the slot, so no hole wall triangles.
	if got := mesh.TriangleCount(); got != 16 {
		t.Errorf("triangle count = %d, want 16 (no hole tube across missing slot)", got)
	}
}

func TestLoftCloseTip(t *testing.T) {
	// Final section collapsed to a point: with CloseTip the tip is
	// fanned from the centroid.
	src := []v2.VecSet{
		shape.Polygon(shape.Square, 10, shape.Params{}),
		shape.ScaleAbout(shape.Polygon(shape.Square, 10, shape.Params{}), 0, v2.Vec{}),
	}
	sections := section.Build(src, section.Options{})

	open, _ := Loft(sections, Options{Height: 10})
	closed, _ := Loft(sections, Options{Height: 10, CloseTip: true})
	if closed.TriangleCount() != open.TriangleCount()+4 {
		t.Errorf("tip fan should add 4 triangles: open %d, closed %d",
			open.TriangleCount(), closed.TriangleCount())
	}
	if closed.VertexCount() != open.VertexCount()+1 {
		t.Errorf("tip fan should add exactly one centroid vertex")
	}
}

func TestLoftCloseTipRequiresCollapse(t *testing.T) {
	sections := stack(10, 8)
	open, _ := Loft(sections, Options{Height: 10})
	closed, _ := Loft(sections, Options{Height: 10, CloseTip: true})
	if closed.TriangleCount() != open.TriangleCount() {
		t.Error("tip with non-zero area must stay open")
	}
}

func TestSmoothNormalsUnit(t *testing.T) {
	mesh, _ := Loft(stack(10, 8, 6), Options{Height: 30, Smooth: true})
	for i := 0; i < len(mesh.Normals); i += 3 {
		l := math.Sqrt(float64(mesh.Normals[i]*mesh.Normals[i] +
			mesh.Normals[i+1]*mesh.Normals[i+1] +
			mesh.Normals[i+2]*mesh.Normals[i+2]))
		if math.Abs(l-1) > 1e-3 {
			t.Fatalf("normal %d has length %f, want 1", i/3, l)
		}
	}
}

func TestInputSectionsUntouched(t *testing.T) {
	sections := stack(10, 10)
	before := sections[1].Outer[0]
	Loft(sections, Options{Height: 10, Taper: 0.5, TwistDeg: 45})
	after := sections[1].Outer[0]
	if before != after {
		t.Error("loft must not mutate its input sections")
	}
}
