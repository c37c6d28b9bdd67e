// Package model builds GPU-ready interleaved vertex buffers from
// parsed Wavefront geometry.
package model

// FloatsPerVertex is the interleaved stride: position(3) + uv(2) +
// normal(3) + tangent(3).
const FloatsPerVertex = 11

// Group is a contiguous index-buffer range drawn with one material.
type Group struct {
	Material   int   // Index into the scene's material list
	StartIndex int32 // First index in the EBO
	IndexCount int32 // Number of indices to draw
}

// Mesh holds the flat vertex and index buffers ready for GPU upload.
// Vertices are triangle-major with no deduplication, so Indices is
// always the sequence 0..len-1; it exists so the renderer can draw
// per-Group ranges with one element buffer.
type Mesh struct {
	Vertices []float32 // len = 3 * triangles * FloatsPerVertex
	Indices  []uint32
	Groups   []Group
	Bounds   Bounds
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds is the axis-aligned bounding box of the mesh, used by the
// viewer to frame the camera on load.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the bounding box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}
