// Package loft turns ordered 2D cross-sections into triangulated 3D
// meshes: body walls between adjacent sections, independently tubed
// holes, taper and twist transforms, and degenerate tip capping.
package loft

// Mesh is a triangle mesh suitable for rendering or export.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // which graph node this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// addVertex appends a vertex and returns its index.
func (m *Mesh) addVertex(x, y, z float64) uint32 {
	idx := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices, float32(x), float32(y), float32(z))
	return idx
}

// addTriangle appends one triangle.
func (m *Mesh) addTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// vertex returns the vertex at index i as float64 components.
func (m *Mesh) vertex(i uint32) (x, y, z float64) {
	return float64(m.Vertices[3*i]), float64(m.Vertices[3*i+1]), float64(m.Vertices[3*i+2])
}
