// Package scene assembles parsed Wavefront geometry, materials, and
// GPU resources into a renderable scene object.
package scene

import (
	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/pkg/wavefront"
)

// Object is one fully loaded model. It exclusively owns the raw parse
// results, the interleaved mesh, the material list with texture maps,
// and the GPU buffer handles. All fields are write-once: a reload
// builds a new Object and releases the old one, never mutates it.
type Object struct {
	Name string
	Path string

	// Raw parse results, kept for the UI (counts) and for rebuilds.
	Vertices  [][3]float32
	TexCoords [][2]float32
	Normals   [][3]float32
	Faces     []wavefront.Face

	// Triangulated geometry and per-triangle material indices.
	Triangles    []wavefront.Triangle
	TriMaterials []int

	// Interleaved buffers and per-material draw ranges.
	Mesh *model.Mesh

	Materials []*Material

	buffers MeshBuffers
}

// Buffers returns the GPU buffer handle, or nil after Release.
func (o *Object) Buffers() MeshBuffers {
	if o == nil {
		return nil
	}
	return o.buffers
}

// MaterialAt returns the material for a draw group, falling back to
// the first material for out-of-range indices.
func (o *Object) MaterialAt(idx int) *Material {
	if idx < 0 || idx >= len(o.Materials) {
		idx = 0
	}
	return o.Materials[idx]
}

// Release tears down everything the object owns: each material's
// paired image/texture slots first, then the vertex/index buffers.
// Safe to call on nil and more than once.
func (o *Object) Release() {
	if o == nil {
		return
	}
	for _, m := range o.Materials {
		m.Release()
	}
	if o.buffers != nil {
		o.buffers.Release()
		o.buffers = nil
	}
}
