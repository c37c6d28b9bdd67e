package wavefront

import (
	"errors"
	"strings"
	"testing"
)

func parseString(t *testing.T, src string) *OBJ {
	t.Helper()
	obj, err := ParseOBJ(strings.NewReader(src), "test.obj")
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	return obj
}

func TestParseOBJ_Records(t *testing.T) {
	obj := parseString(t, `
# comment
o Cube
mtllib cube.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vn 0 0 1
usemtl Stone
f 1 2 3
`)

	if obj.Name != "Cube" {
		t.Errorf("expected name Cube, got %q", obj.Name)
	}
	if obj.MTLLib != "cube.mtl" {
		t.Errorf("expected mtllib cube.mtl, got %q", obj.MTLLib)
	}
	if len(obj.Vertices) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(obj.Vertices))
	}
	if obj.Vertices[2] != [3]float32{1, 1, 0} {
		t.Errorf("vertex 2: got %v", obj.Vertices[2])
	}
	if len(obj.TexCoords) != 2 {
		t.Errorf("expected 2 texcoords, got %d", len(obj.TexCoords))
	}
	if len(obj.Normals) != 1 {
		t.Errorf("expected 1 normal, got %d", len(obj.Normals))
	}
	if len(obj.Faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(obj.Faces))
	}
	if obj.Faces[0].Material != "Stone" {
		t.Errorf("expected face material Stone, got %q", obj.Faces[0].Material)
	}
}

func TestParseOBJ_ObjectNameReplaced(t *testing.T) {
	obj := parseString(t, "o First\no Second Name\n")
	if obj.Name != "Second Name" {
		t.Errorf("expected last o record to win, got %q", obj.Name)
	}
}

func TestParseOBJ_FaceIndexDefaults(t *testing.T) {
	obj := parseString(t, `
v 0 0 0
v 1 0 0
v 1 1 0
f 1 2 3
`)

	if len(obj.Faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(obj.Faces))
	}
	for i, c := range obj.Faces[0].Corners {
		if c.Vertex != i {
			t.Errorf("corner %d: expected vertex %d, got %d", i, i, c.Vertex)
		}
		if c.TexCoord != 0 || c.Normal != 0 {
			t.Errorf("corner %d: expected default texcoord/normal 0, got %d/%d", i, c.TexCoord, c.Normal)
		}
	}
}

func TestParseOBJ_FaceIndexGroups(t *testing.T) {
	tests := []struct {
		name string
		face string
		want Corner
	}{
		{"full triple", "f 1/2/1 2/1/1 3/2/1", Corner{Vertex: 0, TexCoord: 1, Normal: 0}},
		{"vertex and texcoord", "f 1/2 2/1 3/2", Corner{Vertex: 0, TexCoord: 1, Normal: 0}},
		{"vertex and normal", "f 1//1 2//1 3//1", Corner{Vertex: 0, TexCoord: 0, Normal: 0}},
	}

	const prelude = "v 0 0 0\nv 1 0 0\nv 1 1 0\nvt 0 0\nvt 1 1\nvn 0 0 1\n"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := parseString(t, prelude+tt.face+"\n")
			if len(obj.Faces) != 1 {
				t.Fatalf("expected 1 face, got %d", len(obj.Faces))
			}
			if got := obj.Faces[0].Corners[0]; got != tt.want {
				t.Errorf("corner 0: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseOBJ_ShortFaceSkippedWithWarning(t *testing.T) {
	obj := parseString(t, `
v 0 0 0
v 1 0 0
v 1 1 0
f 1 2
f 1 2 3
`)

	if len(obj.Faces) != 1 {
		t.Errorf("expected the valid face to survive, got %d faces", len(obj.Faces))
	}
	if len(obj.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(obj.Warnings))
	}
	if !errors.Is(obj.Warnings[0].Err, ErrBadFaceSize) {
		t.Errorf("expected ErrBadFaceSize, got %v", obj.Warnings[0].Err)
	}
	if obj.Warnings[0].Line != 5 {
		t.Errorf("expected warning on line 5, got %d", obj.Warnings[0].Line)
	}
}

func TestParseOBJ_OutOfRangeVertexSkipped(t *testing.T) {
	obj := parseString(t, `
v 0 0 0
v 1 0 0
v 1 1 0
f 1 2 9
f 3 2 1
`)

	if len(obj.Faces) != 1 {
		t.Errorf("expected 1 surviving face, got %d", len(obj.Faces))
	}
	if len(obj.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(obj.Warnings))
	}
	if !errors.Is(obj.Warnings[0].Err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", obj.Warnings[0].Err)
	}
}

func TestParseOBJ_FatalErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"non-numeric vertex", "v 0 abc 0\n"},
		{"short vertex record", "v 0 0\n"},
		{"short texcoord record", "vt 0\n"},
		{"short normal record", "vn 1 0\n"},
		{"non-numeric face index", "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 x 3\n"},
		{"mtllib without argument", "mtllib\n"},
		{"usemtl without argument", "usemtl\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src), "test.obj")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("expected ErrMalformedRecord, got %v", err)
			}
		})
	}
}

func TestParseOBJ_UnknownRecordsIgnored(t *testing.T) {
	obj := parseString(t, `
s off
g group1
vp 0 0
v 0 0 0
v 1 0 0
v 1 1 0
f 1 2 3
`)

	if len(obj.Faces) != 1 || len(obj.Warnings) != 0 {
		t.Errorf("unknown records should be ignored: faces=%d warnings=%d",
			len(obj.Faces), len(obj.Warnings))
	}
}

func TestParseOBJ_QuadScenario(t *testing.T) {
	// Unit square, one quad face, as in a minimal exported file.
	obj := parseString(t, `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)

	if len(obj.Vertices) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(obj.Vertices))
	}
	if len(obj.Faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(obj.Faces))
	}

	tris, err := Triangulate(obj.Faces[0])
	if err != nil {
		t.Fatalf("Triangulate failed: %v", err)
	}
	if len(tris) != 2 {
		t.Fatalf("expected 2 triangles from a quad, got %d", len(tris))
	}

	want := [][3]int{{0, 1, 2}, {0, 2, 3}}
	for i, tri := range tris {
		for j := 0; j < 3; j++ {
			if tri[j].Vertex != want[i][j] {
				t.Errorf("triangle %d corner %d: expected vertex %d, got %d",
					i, j, want[i][j], tri[j].Vertex)
			}
		}
	}
}

func TestParseOBJFile_NotFound(t *testing.T) {
	_, err := ParseOBJFile("/nonexistent/model.obj")
	if err == nil {
		t.Error("expected error for missing file")
	}
}
