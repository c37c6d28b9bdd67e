package scene

import (
	"image"

	"github.com/Faultbox/objview/pkg/wavefront"
)

// TextureMap owns one texture slot: the decoded CPU image, the GPU
// texture created from it, and the path the material file referenced.
// The two resources live and die together; Release frees both.
type TextureMap struct {
	Path    string
	Image   *image.RGBA
	texture Texture
}

// Texture returns the GPU handle, or nil after Release.
func (t *TextureMap) Texture() Texture {
	if t == nil {
		return nil
	}
	return t.texture
}

// Release frees the GPU texture and drops the CPU-side pixels.
func (t *TextureMap) Release() {
	if t == nil {
		return
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
	t.Image = nil
}

// Material is one shading entry of a loaded object: scalar colors from
// the MTL record plus up to four texture map slots. Visible is the
// only field the UI overlay mutates; everything else is write-once.
type Material struct {
	Name     string
	Ambient  [3]float32
	Diffuse  [3]float32
	Specular [3]float32

	DiffuseMap   *TextureMap
	NormalMap    *TextureMap
	RoughnessMap *TextureMap
	MetallicMap  *TextureMap

	Visible bool
}

// newMaterial copies the scalar properties of a parsed material
// definition; texture slots are filled by the loader.
func newMaterial(def wavefront.MaterialDef) *Material {
	return &Material{
		Name:     def.Name,
		Ambient:  def.Ambient,
		Diffuse:  def.Diffuse,
		Specular: def.Specular,
		Visible:  true,
	}
}

// DefaultMaterial is used when an object references no material file
// or the file is missing: untextured, MTL default colors.
func DefaultMaterial() *Material {
	return &Material{
		Name:     "default",
		Ambient:  wavefront.DefaultAmbient,
		Diffuse:  wavefront.DefaultDiffuse,
		Specular: wavefront.DefaultSpecular,
		Visible:  true,
	}
}

// maps returns the populated texture slots.
func (m *Material) maps() []*TextureMap {
	var out []*TextureMap
	for _, tm := range []*TextureMap{m.DiffuseMap, m.NormalMap, m.RoughnessMap, m.MetallicMap} {
		if tm != nil {
			out = append(out, tm)
		}
	}
	return out
}

// Release frees all texture slots of the material.
func (m *Material) Release() {
	for _, tm := range m.maps() {
		tm.Release()
	}
}
