package loft

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTriangles(t *testing.T) {
	mesh, _ := Loft(stack(10, 10), Options{Height: 20})
	tris := Triangles(mesh)

	if len(tris) != mesh.TriangleCount() {
		t.Fatalf("got %d triangles, want %d", len(tris), mesh.TriangleCount())
	}

	// Corners match the mesh buffer exactly.
	for i, tri := range tris {
		for j := 0; j < 3; j++ {
			x, y, z := mesh.vertex(mesh.Indices[3*i+j])
			if tri[j].X != x || tri[j].Y != y || tri[j].Z != z {
				t.Fatalf("triangle %d corner %d = %v, want (%g, %g, %g)",
					i, j, tri[j], x, y, z)
			}
		}
	}

	// Wall triangles of an axis-aligned square loft are non-degenerate.
	for i, tri := range tris {
		n := tri.Normal()
		if n.X == 0 && n.Y == 0 && n.Z == 0 {
			t.Errorf("triangle %d has a zero normal", i)
		}
	}
}

func TestSaveSTL(t *testing.T) {
	mesh, _ := Loft(stack(10, 8), Options{Height: 20})
	path := filepath.Join(t.TempDir(), "body.stl")

	if err := SaveSTL(path, mesh); err != nil {
		t.Fatalf("SaveSTL: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	// Binary STL: 80-byte header + 4-byte count + 50 bytes per triangle.
	want := int64(84 + 50*mesh.TriangleCount())
	if info.Size() != want {
		t.Errorf("file size %d, want %d", info.Size(), want)
	}
}

func TestSaveSTLRefusesEmptyMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.stl")
	if err := SaveSTL(path, &Mesh{}); err == nil {
		t.Fatal("expected an error for an empty mesh")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for an empty mesh")
	}
}
