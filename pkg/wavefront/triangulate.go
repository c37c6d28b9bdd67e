package wavefront

import "fmt"

// Triangle is one triangulated face corner triple.
type Triangle [3]Corner

// Triangulate fan-triangulates a convex polygon face: an n-corner face
// yields n-2 triangles (0,1,2), (0,2,3), ... all sharing corner 0.
// Non-convex polygons produce incorrect but well-formed output; that is
// a documented limitation of the fan split.
func Triangulate(f Face) ([]Triangle, error) {
	n := len(f.Corners)
	if n < MinFaceCorners || n > MaxFaceCorners {
		return nil, fmt.Errorf("%w: got %d", ErrBadFaceSize, n)
	}

	tris := make([]Triangle, 0, n-2)
	for i := 2; i < n; i++ {
		tris = append(tris, Triangle{f.Corners[0], f.Corners[i-1], f.Corners[i]})
	}
	return tris, nil
}

// TriangulateAll expands every face into triangles and resolves each
// face's material name through matIndex. Every triangle from the same
// face shares that face's material index; names matIndex cannot
// resolve (it returns a negative value) fall back to material 0, as
// does a face with no usemtl context. Faces Triangulate rejects are
// skipped and reported as warnings.
func TriangulateAll(faces []Face, matIndex func(name string) int) ([]Triangle, []int, []Warning) {
	var (
		tris     []Triangle
		mats     []int
		warnings []Warning
	)

	for i, f := range faces {
		ft, err := Triangulate(f)
		if err != nil {
			// Warning.Line carries the face index here; the line
			// number is gone by the time faces are triangulated.
			warnings = append(warnings, Warning{Line: i, Err: err})
			continue
		}

		mat := 0
		if f.Material != "" && matIndex != nil {
			if idx := matIndex(f.Material); idx >= 0 {
				mat = idx
			}
		}

		tris = append(tris, ft...)
		for range ft {
			mats = append(mats, mat)
		}
	}

	return tris, mats, warnings
}
