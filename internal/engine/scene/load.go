package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/assets"
	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/internal/engine/texture"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/pkg/wavefront"
)

// Report collects the non-fatal findings of one load: conditions that
// degrade the result (skipped faces, missing material file or
// textures) without aborting it. The UI displays these after a load
// that otherwise succeeded.
type Report struct {
	Warnings   []string
	MTLMissing bool
	Materials  int
	Triangles  int
	Duration   time.Duration
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Load runs the blocking one-shot load pipeline: path validation,
// geometry parse, material parse, texture decode/upload, fan
// triangulation, interleaved buffer build, and GPU buffer upload.
//
// Fatal conditions (invalid path, unreadable or unparseable geometry,
// no renderable triangles, GPU failure) return an error and leave no
// resources allocated. Recoverable conditions land in the Report; in
// particular a missing material file yields an object with only the
// default material.
func Load(path string, dev Device, aliases *assets.Table) (*Object, *Report, error) {
	start := time.Now()
	report := &Report{}

	cleaned, err := aliases.Clean(path)
	if err != nil {
		return nil, report, err
	}

	logger.Info("loading model", zap.String("path", cleaned))

	obj, err := wavefront.ParseOBJFile(cleaned)
	if err != nil {
		return nil, report, err
	}
	for _, w := range obj.Warnings {
		report.warnf("%s: %s", filepath.Base(cleaned), w)
	}

	baseDir := filepath.Dir(cleaned)
	materials := loadMaterials(obj, baseDir, dev, report)

	matIndex := make(map[string]int, len(materials))
	for i, m := range materials {
		matIndex[m.Name] = i
	}
	tris, triMats, triWarnings := wavefront.TriangulateAll(obj.Faces, func(name string) int {
		if idx, ok := matIndex[name]; ok {
			return idx
		}
		return -1
	})
	for _, w := range triWarnings {
		report.warnf("face %d: %v", w.Line, w.Err)
	}

	mesh, err := model.Build(obj, tris, triMats)
	if err != nil {
		releaseMaterials(materials)
		return nil, report, fmt.Errorf("building buffers for %s: %w", filepath.Base(cleaned), err)
	}

	buffers, err := dev.CreateMesh(mesh.Vertices, mesh.Indices)
	if err != nil {
		releaseMaterials(materials)
		return nil, report, fmt.Errorf("uploading mesh: %w", err)
	}

	name := obj.Name
	if name == "" {
		name = filepath.Base(cleaned)
	}

	report.Materials = len(materials)
	report.Triangles = mesh.TriangleCount()
	report.Duration = time.Since(start)

	logger.Info("model loaded",
		zap.String("name", name),
		zap.Int("triangles", report.Triangles),
		zap.Int("materials", report.Materials),
		zap.Int("warnings", len(report.Warnings)),
		zap.Duration("took", report.Duration),
	)

	return &Object{
		Name:         name,
		Path:         cleaned,
		Vertices:     obj.Vertices,
		TexCoords:    obj.TexCoords,
		Normals:      obj.Normals,
		Faces:        obj.Faces,
		Triangles:    tris,
		TriMaterials: triMats,
		Mesh:         mesh,
		Materials:    materials,
		buffers:      buffers,
	}, report, nil
}

// loadMaterials parses the referenced material library and uploads its
// texture maps. Every failure here is recoverable: a missing or
// unparseable MTL file leaves the object with the default material, a
// missing or undecodable texture leaves its slot empty.
func loadMaterials(obj *wavefront.OBJ, baseDir string, dev Device, report *Report) []*Material {
	if obj.MTLLib == "" {
		return []*Material{DefaultMaterial()}
	}

	mtlPath := filepath.Join(baseDir, obj.MTLLib)
	mtl, err := wavefront.ParseMTLFile(mtlPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			report.MTLMissing = true
			report.warnf("material file not found: %s", obj.MTLLib)
		} else {
			report.warnf("material file %s: %v", obj.MTLLib, err)
		}
		logger.Warn("proceeding without materials", zap.String("mtl", mtlPath), zap.Error(err))
		return []*Material{DefaultMaterial()}
	}

	materials := make([]*Material, 0, len(mtl.Materials))
	for _, def := range mtl.Materials {
		m := newMaterial(def)
		m.DiffuseMap = loadTextureMap(def.DiffuseMap, baseDir, dev, TextureColor, report)
		m.NormalMap = loadTextureMap(def.NormalMap, baseDir, dev, TextureColor, report)
		m.RoughnessMap = loadTextureMap(def.RoughnessMap, baseDir, dev, TextureGrayscale, report)
		m.MetallicMap = loadTextureMap(def.MetallicMap, baseDir, dev, TextureGrayscale, report)
		materials = append(materials, m)
	}

	if len(materials) == 0 {
		return []*Material{DefaultMaterial()}
	}
	return materials
}

// loadTextureMap resolves, decodes, and uploads one texture slot.
// Returns nil (and records a warning) when the slot cannot be filled.
func loadTextureMap(ref, baseDir string, dev Device, kind TextureKind, report *Report) *TextureMap {
	if ref == "" {
		return nil
	}

	resolved, err := assets.ResolveTexture(ref, baseDir)
	if err != nil {
		report.warnf("%v", err)
		return nil
	}

	img, err := texture.Load(resolved)
	if err != nil {
		report.warnf("%v", err)
		return nil
	}

	tex, err := dev.CreateTexture(img, TextureOptions{Kind: kind})
	if err != nil {
		report.warnf("creating texture %s: %v", filepath.Base(resolved), err)
		return nil
	}

	return &TextureMap{Path: ref, Image: img, texture: tex}
}

func releaseMaterials(materials []*Material) {
	for _, m := range materials {
		m.Release()
	}
}
