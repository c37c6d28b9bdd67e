package wavefront

import (
	"errors"
	"strings"
	"testing"
)

func TestParseMTL_Defaults(t *testing.T) {
	mtl, err := ParseMTL(strings.NewReader("newmtl Plain\n"), "test.mtl")
	if err != nil {
		t.Fatalf("ParseMTL failed: %v", err)
	}
	if len(mtl.Materials) != 1 {
		t.Fatalf("expected 1 material, got %d", len(mtl.Materials))
	}

	mat := mtl.Materials[0]
	if mat.Name != "Plain" {
		t.Errorf("expected name Plain, got %q", mat.Name)
	}
	if mat.Ambient != DefaultAmbient {
		t.Errorf("expected default ambient %v, got %v", DefaultAmbient, mat.Ambient)
	}
	if mat.Diffuse != DefaultDiffuse {
		t.Errorf("expected default diffuse %v, got %v", DefaultDiffuse, mat.Diffuse)
	}
	if mat.Specular != DefaultSpecular {
		t.Errorf("expected default specular %v, got %v", DefaultSpecular, mat.Specular)
	}
	if mat.DiffuseMap != "" || mat.NormalMap != "" || mat.RoughnessMap != "" || mat.MetallicMap != "" {
		t.Error("expected all texture slots empty")
	}
}

func TestParseMTL_ColorsAndMaps(t *testing.T) {
	mtl, err := ParseMTL(strings.NewReader(`
newmtl Stone
Ka 0.1 0.1 0.1
Kd 0.5 0.4 0.3
Ks 1 1 1
map_Kd stone_d.png
map_Bump stone_n.png
map_Pr stone_r.png
map_Pm stone_m.png
newmtl Wood
Kd 0.6 0.3 0.1
`), "test.mtl")
	if err != nil {
		t.Fatalf("ParseMTL failed: %v", err)
	}
	if len(mtl.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(mtl.Materials))
	}

	stone := mtl.Materials[0]
	if stone.Ambient != [3]float32{0.1, 0.1, 0.1} {
		t.Errorf("Ka: got %v", stone.Ambient)
	}
	if stone.Diffuse != [3]float32{0.5, 0.4, 0.3} {
		t.Errorf("Kd: got %v", stone.Diffuse)
	}
	if stone.Specular != [3]float32{1, 1, 1} {
		t.Errorf("Ks: got %v", stone.Specular)
	}
	if stone.DiffuseMap != "stone_d.png" || stone.NormalMap != "stone_n.png" ||
		stone.RoughnessMap != "stone_r.png" || stone.MetallicMap != "stone_m.png" {
		t.Errorf("texture maps: got %+v", stone)
	}

	// Properties bind to the most recently declared material.
	wood := mtl.Materials[1]
	if wood.Diffuse != [3]float32{0.6, 0.3, 0.1} {
		t.Errorf("Wood Kd: got %v", wood.Diffuse)
	}
	if wood.Ambient != DefaultAmbient {
		t.Errorf("Wood ambient should stay default, got %v", wood.Ambient)
	}
}

func TestParseMTL_PropertyBeforeNewmtl(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"Ka first", "Ka 1 1 1\n"},
		{"Kd first", "Kd 1 1 1\n"},
		{"map first", "map_Kd tex.png\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMTL(strings.NewReader(tt.src), "test.mtl")
			if !errors.Is(err, ErrNoMaterialDefined) {
				t.Errorf("expected ErrNoMaterialDefined, got %v", err)
			}
		})
	}
}

func TestParseMTL_NonNumericColor(t *testing.T) {
	_, err := ParseMTL(strings.NewReader("newmtl M\nKd 1 x 0\n"), "test.mtl")
	if !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestParseMTL_MapPathWithSpaces(t *testing.T) {
	mtl, err := ParseMTL(strings.NewReader("newmtl M\nmap_Kd my textures/diffuse 01.png\n"), "test.mtl")
	if err != nil {
		t.Fatalf("ParseMTL failed: %v", err)
	}
	if got := mtl.Materials[0].DiffuseMap; got != "my textures/diffuse 01.png" {
		t.Errorf("expected path with spaces preserved, got %q", got)
	}
}

func TestMTL_IndexByName(t *testing.T) {
	mtl, err := ParseMTL(strings.NewReader("newmtl A\nnewmtl B\n"), "test.mtl")
	if err != nil {
		t.Fatalf("ParseMTL failed: %v", err)
	}

	if idx := mtl.IndexByName("B"); idx != 1 {
		t.Errorf("expected index 1 for B, got %d", idx)
	}
	if idx := mtl.IndexByName("missing"); idx != -1 {
		t.Errorf("expected -1 for unknown name, got %d", idx)
	}
}

func TestParseMTLFile_NotFound(t *testing.T) {
	_, err := ParseMTLFile("/nonexistent/materials.mtl")
	if err == nil {
		t.Error("expected error for missing file")
	}
}
