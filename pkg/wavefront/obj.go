// Package wavefront provides parsers for the Wavefront OBJ and MTL
// text formats, covering the subset used by the viewer: vertex
// positions, texture coordinates, normals, polygonal faces with 3-12
// corners, object names, and material library references.
package wavefront

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrMalformedRecord = errors.New("malformed OBJ record")
	ErrBadFaceSize     = errors.New("face must have 3 to 12 corners")
	ErrIndexOutOfRange = errors.New("face index out of range")
)

// Face size limits for polygon records.
const (
	MinFaceCorners = 3
	MaxFaceCorners = 12
)

// Corner is one face corner referencing the raw attribute lists.
// All indices are 0-based; texture coordinate and normal indices are
// optional in the source format and default to 0 when absent.
type Corner struct {
	Vertex   int // Index into OBJ.Vertices
	TexCoord int // Index into OBJ.TexCoords
	Normal   int // Index into OBJ.Normals
}

// Face is a polygon record of 3 to 12 corners. Material carries the
// name set by the most recent usemtl record, or "" if none preceded
// the face.
type Face struct {
	Corners  []Corner
	Material string
}

// Warning describes a non-fatal defect found while parsing. The
// offending record is skipped and the rest of the file still parses.
type Warning struct {
	Line int   // 1-based line number in the source file
	Err  error // Wraps one of the sentinel errors above
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %v", w.Line, w.Err)
}

// OBJ holds the raw data parsed from a geometry file. Attribute lists
// keep the file's declaration order; faces reference them by 0-based
// index.
type OBJ struct {
	Name      string       // Last "o" record, or "" if none
	MTLLib    string       // Referenced material file name, or ""
	Vertices  [][3]float32 // Vertex positions
	TexCoords [][2]float32 // Texture coordinates (U, V)
	Normals   [][3]float32 // Normals, not normalized by the parser
	Faces     []Face       // Polygon faces in declaration order
	Warnings  []Warning    // Skipped records
}

// objParser keeps the per-file parse context that the format threads
// between lines: the active material name and the running line number.
type objParser struct {
	obj      *OBJ
	material string
	line     int
}

// ParseOBJ parses OBJ data from a reader. name is used for error
// messages only. Fatal errors (unparseable numbers, short attribute
// records) abort the parse; defective face records are skipped and
// recorded in OBJ.Warnings.
func ParseOBJ(r io.Reader, name string) (*OBJ, error) {
	p := &objParser{obj: &OBJ{}}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := p.dispatch(fields); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, p.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return p.obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()
	return ParseOBJ(f, filepath.Base(path))
}

// dispatch routes one record to its handler based on the first token.
// Unrecognized record types are ignored for forward compatibility.
func (p *objParser) dispatch(fields []string) error {
	switch fields[0] {
	case "o":
		p.obj.Name = strings.Join(fields[1:], " ")
	case "mtllib":
		if len(fields) < 2 {
			return fmt.Errorf("%w: mtllib needs a file name", ErrMalformedRecord)
		}
		p.obj.MTLLib = fields[1]
	case "usemtl":
		if len(fields) < 2 {
			return fmt.Errorf("%w: usemtl needs a material name", ErrMalformedRecord)
		}
		p.material = fields[1]
	case "v":
		v, err := parseFloats3(fields)
		if err != nil {
			return err
		}
		p.obj.Vertices = append(p.obj.Vertices, v)
	case "vt":
		vt, err := parseFloats2(fields)
		if err != nil {
			return err
		}
		p.obj.TexCoords = append(p.obj.TexCoords, vt)
	case "vn":
		vn, err := parseFloats3(fields)
		if err != nil {
			return err
		}
		p.obj.Normals = append(p.obj.Normals, vn)
	case "f":
		return p.parseFace(fields[1:])
	}
	return nil
}

// parseFace parses the index groups of a face record. A face with a
// bad corner count or an out-of-range vertex index is skipped with a
// warning; an unparseable index is fatal.
func (p *objParser) parseFace(groups []string) error {
	if len(groups) < MinFaceCorners || len(groups) > MaxFaceCorners {
		p.warn(fmt.Errorf("%w: got %d", ErrBadFaceSize, len(groups)))
		return nil
	}

	corners := make([]Corner, 0, len(groups))
	for _, group := range groups {
		c, err := parseCorner(group)
		if err != nil {
			return err
		}
		if c.Vertex < 0 || c.Vertex >= len(p.obj.Vertices) {
			p.warn(fmt.Errorf("%w: vertex %d of %d", ErrIndexOutOfRange, c.Vertex+1, len(p.obj.Vertices)))
			return nil
		}
		corners = append(corners, c)
	}

	p.obj.Faces = append(p.obj.Faces, Face{Corners: corners, Material: p.material})
	return nil
}

func (p *objParser) warn(err error) {
	p.obj.Warnings = append(p.obj.Warnings, Warning{Line: p.line, Err: err})
}

// parseCorner parses one "v", "v/vt", "v//vn" or "v/vt/vn" index
// group. Source indices are 1-based; absent or empty sub-tokens
// default to index 0 (the first parsed texcoord/normal).
func parseCorner(group string) (Corner, error) {
	var c Corner
	parts := strings.Split(group, "/")
	if len(parts) > 3 {
		return c, fmt.Errorf("%w: index group %q", ErrMalformedRecord, group)
	}

	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return c, fmt.Errorf("%w: vertex index %q", ErrMalformedRecord, parts[0])
	}
	c.Vertex = v - 1

	if len(parts) > 1 && parts[1] != "" {
		vt, err := strconv.Atoi(parts[1])
		if err != nil {
			return c, fmt.Errorf("%w: texcoord index %q", ErrMalformedRecord, parts[1])
		}
		c.TexCoord = vt - 1
	}
	if len(parts) > 2 && parts[2] != "" {
		vn, err := strconv.Atoi(parts[2])
		if err != nil {
			return c, fmt.Errorf("%w: normal index %q", ErrMalformedRecord, parts[2])
		}
		c.Normal = vn - 1
	}

	return c, nil
}

// parseFloats3 parses exactly 3 float tokens following a record tag.
func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 4 {
		return out, fmt.Errorf("%w: %q needs 3 values, got %d", ErrMalformedRecord, fields[0], len(fields)-1)
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return out, fmt.Errorf("%w: %q is not a number", ErrMalformedRecord, fields[i+1])
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFloats2 parses exactly 2 float tokens following a record tag.
func parseFloats2(fields []string) ([2]float32, error) {
	var out [2]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("%w: %q needs 2 values, got %d", ErrMalformedRecord, fields[0], len(fields)-1)
	}
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return out, fmt.Errorf("%w: %q is not a number", ErrMalformedRecord, fields[i+1])
		}
		out[i] = float32(f)
	}
	return out, nil
}
