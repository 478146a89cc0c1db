package scene

import "github.com/go-gl/mathgl/mgl32"

// rayEpsilon rejects near-parallel rays and self-hits at the origin.
const rayEpsilon = 1e-7

// Triangle is three vertices in the owning node's local space.
type Triangle [3]mgl32.Vec3

// Mesh is renderable, pickable geometry. HalfExtents is set for box meshes so
// renderers can draw them as cubes.
type Mesh struct {
	Triangles   []Triangle
	HalfExtents mgl32.Vec3
}

// BoxMesh returns an axis-aligned box centered on the local origin.
func BoxMesh(half mgl32.Vec3) *Mesh {
	x, y, z := half.X(), half.Y(), half.Z()
	v := [8]mgl32.Vec3{
		{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
	}
	faces := [6][4]int{
		{0, 3, 2, 1}, // back  (-z)
		{4, 5, 6, 7}, // front (+z)
		{0, 4, 7, 3}, // left  (-x)
		{1, 2, 6, 5}, // right (+x)
		{0, 1, 5, 4}, // bottom
		{3, 7, 6, 2}, // top
	}
	m := &Mesh{HalfExtents: half, Triangles: make([]Triangle, 0, 12)}
	for _, f := range faces {
		m.Triangles = append(m.Triangles,
			Triangle{v[f[0]], v[f[1]], v[f[2]]},
			Triangle{v[f[0]], v[f[2]], v[f[3]]},
		)
	}
	return m
}

// IntersectTriangle returns the distance along dir at which the ray hits tri
// (Möller–Trumbore, double sided). dir need not be unit length; t is in units of dir.
func IntersectTriangle(origin, dir mgl32.Vec3, tri Triangle) (t float32, ok bool) {
	e1 := tri[1].Sub(tri[0])
	e2 := tri[2].Sub(tri[0])
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if det > -rayEpsilon && det < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := origin.Sub(tri[0])
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t = e2.Dot(q) * inv
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}
