package model

import (
	"errors"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objview/pkg/wavefront"
)

// ErrMissingAttributes is returned when the geometry lacks one of the
// attribute lists the interleaved layout needs.
var ErrMissingAttributes = errors.New("geometry missing vertices, texcoords, normals, or faces")

// Build combines the raw attribute lists and the triangulated faces
// into one flat interleaved vertex buffer. Per vertex:
//
//	[px py pz  u v  nx ny nz  tx ty tz]
//
// Vertices are emitted triangle-major with no deduplication, grouped
// by material so each Group maps to one contiguous draw range. The
// tangent is computed once per triangle from the UV-weighted edge
// vectors and replicated across its three corners; a degenerate UV
// mapping (zero determinant) is passed through as-is.
//
// All four inputs must be non-empty; otherwise Build returns
// ErrMissingAttributes and an empty mesh the caller can render
// nothing from without faulting.
func Build(obj *wavefront.OBJ, tris []wavefront.Triangle, mats []int) (*Mesh, error) {
	if len(obj.Vertices) == 0 || len(obj.TexCoords) == 0 || len(obj.Normals) == 0 || len(tris) == 0 {
		return &Mesh{}, ErrMissingAttributes
	}

	// Bucket triangles by material so each material becomes one
	// contiguous index range.
	byMaterial := make(map[int][]int)
	for i := range tris {
		m := 0
		if i < len(mats) {
			m = mats[i]
		}
		byMaterial[m] = append(byMaterial[m], i)
	}
	matOrder := make([]int, 0, len(byMaterial))
	for m := range byMaterial {
		matOrder = append(matOrder, m)
	}
	sort.Ints(matOrder)

	mesh := &Mesh{
		Vertices: make([]float32, 0, len(tris)*3*FloatsPerVertex),
		Indices:  make([]uint32, 0, len(tris)*3),
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}

	for _, m := range matOrder {
		start := int32(len(mesh.Indices))
		for _, ti := range byMaterial[m] {
			appendTriangle(mesh, obj, tris[ti])
		}
		mesh.Groups = append(mesh.Groups, Group{
			Material:   m,
			StartIndex: start,
			IndexCount: int32(len(mesh.Indices)) - start,
		})
	}

	return mesh, nil
}

// appendTriangle emits the three interleaved vertices of one triangle.
func appendTriangle(mesh *Mesh, obj *wavefront.OBJ, tri wavefront.Triangle) {
	var pos [3]mgl32.Vec3
	var uv [3]mgl32.Vec2

	for i, c := range tri {
		p := obj.Vertices[c.Vertex]
		pos[i] = mgl32.Vec3{p[0], p[1], p[2]}

		t := obj.TexCoords[clampIndex(c.TexCoord, len(obj.TexCoords))]
		uv[i] = mgl32.Vec2{t[0], t[1]}
	}

	tangent := faceTangent(pos, uv)

	for i, c := range tri {
		n := obj.Normals[clampIndex(c.Normal, len(obj.Normals))]

		mesh.Vertices = append(mesh.Vertices,
			pos[i].X(), pos[i].Y(), pos[i].Z(),
			uv[i].X(), uv[i].Y(),
			n[0], n[1], n[2],
			tangent.X(), tangent.Y(), tangent.Z(),
		)
		mesh.Indices = append(mesh.Indices, uint32(len(mesh.Indices)))
		updateBounds(&mesh.Bounds, pos[i])
	}
}

// faceTangent computes the triangle's tangent (the direction of
// increasing U) with the inverse-UV-determinant formula.
func faceTangent(pos [3]mgl32.Vec3, uv [3]mgl32.Vec2) mgl32.Vec3 {
	edge1 := pos[1].Sub(pos[0])
	edge2 := pos[2].Sub(pos[0])
	duv1 := uv[1].Sub(uv[0])
	duv2 := uv[2].Sub(uv[0])

	// A zero determinant (collapsed UVs) divides through unchecked;
	// the resulting non-finite tangent only degrades normal mapping
	// for that triangle.
	f := 1.0 / (duv1.X()*duv2.Y() - duv2.X()*duv1.Y())

	return mgl32.Vec3{
		f * (duv2.Y()*edge1.X() - duv1.Y()*edge2.X()),
		f * (duv2.Y()*edge1.Y() - duv1.Y()*edge2.Y()),
		f * (duv2.Y()*edge1.Z() - duv1.Y()*edge2.Z()),
	}
}

// clampIndex guards against texcoord/normal indices past the parsed
// lists; such corners read entry 0 instead of faulting.
func clampIndex(i, n int) int {
	if i < 0 || i >= n {
		return 0
	}
	return i
}

func updateBounds(b *Bounds, p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
