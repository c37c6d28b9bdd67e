// MTL (material library) format parser.
package wavefront

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MTL format errors.
var (
	ErrNoMaterialDefined = errors.New("material property before newmtl")
)

// Default colors applied to every new material until overridden.
var (
	DefaultAmbient  = [3]float32{0.2, 0.2, 0.2}
	DefaultDiffuse  = [3]float32{0.8, 0.8, 0.8}
	DefaultSpecular = [3]float32{0, 0, 0}
)

// MaterialDef is one named material parsed from an MTL file. Texture
// map fields hold the path strings as written in the file; resolving
// and decoding them is the scene loader's job.
type MaterialDef struct {
	Name     string
	Ambient  [3]float32 // Ka
	Diffuse  [3]float32 // Kd
	Specular [3]float32 // Ks

	DiffuseMap   string // map_Kd
	NormalMap    string // map_Bump
	RoughnessMap string // map_Pr
	MetallicMap  string // map_Pm
}

// MTL holds the materials parsed from one material library file, in
// declaration order. Names are unique within one file; a duplicate
// newmtl simply starts a new record.
type MTL struct {
	Materials []MaterialDef
	Warnings  []Warning
}

// IndexByName returns the position of the named material, or -1.
func (m *MTL) IndexByName(name string) int {
	for i := range m.Materials {
		if m.Materials[i].Name == name {
			return i
		}
	}
	return -1
}

// ParseMTL parses MTL data from a reader. name is used for error
// messages only.
func ParseMTL(r io.Reader, name string) (*MTL, error) {
	mtl := &MTL{}
	line := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := mtl.dispatch(fields, line); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return mtl, nil
}

// ParseMTLFile parses an MTL file from disk.
func ParseMTLFile(path string) (*MTL, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening MTL file: %w", err)
	}
	defer f.Close()
	return ParseMTL(f, filepath.Base(path))
}

func (m *MTL) dispatch(fields []string, line int) error {
	switch fields[0] {
	case "newmtl":
		if len(fields) < 2 {
			return fmt.Errorf("%w: newmtl needs a name", ErrMalformedRecord)
		}
		m.Materials = append(m.Materials, MaterialDef{
			Name:     fields[1],
			Ambient:  DefaultAmbient,
			Diffuse:  DefaultDiffuse,
			Specular: DefaultSpecular,
		})
	case "Ka":
		return m.setColor(fields, func(mat *MaterialDef, c [3]float32) { mat.Ambient = c })
	case "Kd":
		return m.setColor(fields, func(mat *MaterialDef, c [3]float32) { mat.Diffuse = c })
	case "Ks":
		return m.setColor(fields, func(mat *MaterialDef, c [3]float32) { mat.Specular = c })
	case "map_Kd":
		return m.setMap(fields, func(mat *MaterialDef, p string) { mat.DiffuseMap = p })
	case "map_Bump", "map_bump":
		return m.setMap(fields, func(mat *MaterialDef, p string) { mat.NormalMap = p })
	case "map_Pr":
		return m.setMap(fields, func(mat *MaterialDef, p string) { mat.RoughnessMap = p })
	case "map_Pm":
		return m.setMap(fields, func(mat *MaterialDef, p string) { mat.MetallicMap = p })
	}
	return nil
}

// current returns the most recently declared material.
func (m *MTL) current() (*MaterialDef, error) {
	if len(m.Materials) == 0 {
		return nil, ErrNoMaterialDefined
	}
	return &m.Materials[len(m.Materials)-1], nil
}

func (m *MTL) setColor(fields []string, set func(*MaterialDef, [3]float32)) error {
	mat, err := m.current()
	if err != nil {
		return err
	}
	c, err := parseFloats3(fields)
	if err != nil {
		return err
	}
	set(mat, c)
	return nil
}

func (m *MTL) setMap(fields []string, set func(*MaterialDef, string)) error {
	mat, err := m.current()
	if err != nil {
		return err
	}
	if len(fields) < 2 {
		return fmt.Errorf("%w: %q needs a path", ErrMalformedRecord, fields[0])
	}
	// Texture paths may contain spaces; everything after the tag is
	// the path.
	set(mat, strings.Join(fields[1:], " "))
	return nil
}
