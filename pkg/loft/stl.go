package loft

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Triangles converts a mesh into sdfx triangles. The engine itself
// carries no rendering dependency; this adapter is the bridge to any
// renderer or file format sdfx supports.
func Triangles(m *Mesh) []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for t := 0; t < m.TriangleCount(); t++ {
		var tri sdf.Triangle3
		for j := 0; j < 3; j++ {
			x, y, z := m.vertex(m.Indices[3*t+j])
			tri[j] = v3.Vec{X: x, Y: y, Z: z}
		}
		out = append(out, &tri)
	}
	return out
}

// SaveSTL writes a mesh to an STL file.
func SaveSTL(path string, m *Mesh) error {
	if m.IsEmpty() {
		return fmt.Errorf("loft: refusing to write empty mesh to %s", path)
	}
	return render.SaveSTL(path, Triangles(m))
}
