package scene

import "image"

// TextureKind selects GPU sampling configuration per material slot.
type TextureKind int

const (
	// TextureColor is a full RGBA map (diffuse, normal).
	TextureColor TextureKind = iota
	// TextureGrayscale is a single-channel map (roughness, metallic)
	// uploaded as one channel and swizzled so every channel reads the
	// same value.
	TextureGrayscale
)

// TextureOptions configures GPU texture creation. The loader always
// requests repeat wrapping and linear filtering; the options struct
// exists so the renderer does not hard-code per-slot decisions.
type TextureOptions struct {
	Kind TextureKind
}

// Texture is an opaque GPU texture handle.
type Texture interface {
	Release()
}

// MeshBuffers is an opaque handle to uploaded vertex/index buffers.
type MeshBuffers interface {
	Release()
}

// Device is the GPU collaborator the loader needs. All calls must be
// made from the thread owning the graphics context; the loader runs
// on that thread by construction. The renderer provides the real
// OpenGL implementation, tests provide fakes.
type Device interface {
	CreateTexture(img *image.RGBA, opts TextureOptions) (Texture, error)
	CreateMesh(vertices []float32, indices []uint32) (MeshBuffers, error)
}
