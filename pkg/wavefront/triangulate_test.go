package wavefront

import (
	"errors"
	"fmt"
	"testing"
)

// makeFace builds a face with sequential vertex indices 0..n-1.
func makeFace(n int, material string) Face {
	corners := make([]Corner, n)
	for i := range corners {
		corners[i] = Corner{Vertex: i}
	}
	return Face{Corners: corners, Material: material}
}

func TestTriangulate_FanCount(t *testing.T) {
	for n := MinFaceCorners; n <= MaxFaceCorners; n++ {
		t.Run(fmt.Sprintf("%d-gon", n), func(t *testing.T) {
			tris, err := Triangulate(makeFace(n, ""))
			if err != nil {
				t.Fatalf("Triangulate failed: %v", err)
			}
			if len(tris) != n-2 {
				t.Fatalf("expected %d triangles, got %d", n-2, len(tris))
			}

			// Fan shape: every triangle starts at corner 0 and the
			// union of used vertices covers the whole polygon.
			used := make(map[int]bool)
			for i, tri := range tris {
				if tri[0].Vertex != 0 {
					t.Errorf("triangle %d: expected fan apex 0, got %d", i, tri[0].Vertex)
				}
				for _, c := range tri {
					used[c.Vertex] = true
				}
			}
			if len(used) != n {
				t.Errorf("expected all %d vertices used, got %d", n, len(used))
			}
		})
	}
}

func TestTriangulate_RejectsBadSizes(t *testing.T) {
	for _, n := range []int{0, 1, 2, 13, 20} {
		_, err := Triangulate(makeFace(n, ""))
		if !errors.Is(err, ErrBadFaceSize) {
			t.Errorf("%d corners: expected ErrBadFaceSize, got %v", n, err)
		}
	}
}

func TestTriangulateAll_MaterialAssignment(t *testing.T) {
	lookup := func(name string) int {
		switch name {
		case "stone":
			return 1
		case "wood":
			return 2
		}
		return -1
	}

	faces := []Face{
		makeFace(3, ""),        // no usemtl context -> 0
		makeFace(4, "stone"),   // resolved -> 1, both triangles
		makeFace(3, "unknown"), // unresolved -> 0
		makeFace(3, "wood"),    // resolved -> 2
	}

	tris, mats, warnings := TriangulateAll(faces, lookup)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(tris) != 5 {
		t.Fatalf("expected 5 triangles, got %d", len(tris))
	}
	want := []int{0, 1, 1, 0, 2}
	for i, m := range mats {
		if m != want[i] {
			t.Errorf("triangle %d: expected material %d, got %d", i, want[i], m)
		}
	}
}

func TestTriangulateAll_SkipsBadFaces(t *testing.T) {
	faces := []Face{
		makeFace(2, ""), // too small
		makeFace(3, ""),
	}

	tris, mats, warnings := TriangulateAll(faces, nil)
	if len(tris) != 1 || len(mats) != 1 {
		t.Errorf("expected 1 surviving triangle, got %d", len(tris))
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if !errors.Is(warnings[0].Err, ErrBadFaceSize) {
		t.Errorf("expected ErrBadFaceSize, got %v", warnings[0].Err)
	}
}

func TestTriangulateAll_NilLookup(t *testing.T) {
	_, mats, _ := TriangulateAll([]Face{makeFace(3, "anything")}, nil)
	if len(mats) != 1 || mats[0] != 0 {
		t.Errorf("expected fallback material 0 with nil lookup, got %v", mats)
	}
}
