package loft

import "math"

// computeNormals fills the mesh normal array. Flat mode assigns each
// vertex the normal of one incident face; smooth mode averages all
// incident face normals and renormalizes.
func computeNormals(mesh *Mesh, smooth bool) {
	mesh.Normals = make([]float32, len(mesh.Vertices))
	if smooth {
		accum := make([]float64, len(mesh.Vertices))
		for t := 0; t < mesh.TriangleCount(); t++ {
			nx, ny, nz := faceNormal(mesh, t)
			for j := 0; j < 3; j++ {
				i := mesh.Indices[3*t+j]
				accum[3*i] += nx
				accum[3*i+1] += ny
				accum[3*i+2] += nz
			}
		}
		for i := 0; i < len(accum); i += 3 {
			x, y, z := normalize(accum[i], accum[i+1], accum[i+2])
			mesh.Normals[i] = float32(x)
			mesh.Normals[i+1] = float32(y)
			mesh.Normals[i+2] = float32(z)
		}
		return
	}
	for t := 0; t < mesh.TriangleCount(); t++ {
		nx, ny, nz := faceNormal(mesh, t)
		for j := 0; j < 3; j++ {
			i := mesh.Indices[3*t+j]
			mesh.Normals[3*i] = float32(nx)
			mesh.Normals[3*i+1] = float32(ny)
			mesh.Normals[3*i+2] = float32(nz)
		}
	}
}

// faceNormal returns the unit normal of triangle t.
func faceNormal(mesh *Mesh, t int) (float64, float64, float64) {
	ia := mesh.Indices[3*t]
	ib := mesh.Indices[3*t+1]
	ic := mesh.Indices[3*t+2]
	ax, ay, az := mesh.vertex(ia)
	bx, by, bz := mesh.vertex(ib)
	cx, cy, cz := mesh.vertex(ic)

	ux, uy, uz := bx-ax, by-ay, bz-az
	vx, vy, vz := cx-ax, cy-ay, cz-az
	return normalize(uy*vz-uz*vy, uz*vx-ux*vz, ux*vy-uy*vx)
}

// normalize returns the unit vector, or zero for a degenerate input.
func normalize(x, y, z float64) (float64, float64, float64) {
	l := math.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		return 0, 0, 0
	}
	return x / l, y / l, z / l
}
