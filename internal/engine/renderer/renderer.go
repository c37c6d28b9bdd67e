// Package renderer provides the OpenGL renderer and GPU resource upload.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/engine/renderer/shaders"
	"github.com/Faultbox/objview/internal/engine/scene"
	"github.com/Faultbox/objview/internal/engine/shader"
	"github.com/Faultbox/objview/internal/logger"
)

// Channels toggles which material texture maps feed the shader. The UI
// mutates these; maps that are off fall back to material scalars.
type Channels struct {
	Diffuse   bool
	Normal    bool
	Roughness bool
	Metallic  bool
}

// AllChannels returns a Channels with every map enabled.
func AllChannels() Channels {
	return Channels{Diffuse: true, Normal: true, Roughness: true, Metallic: true}
}

// Renderer owns the GL state, the object shader, and a fallback
// texture for materials with no diffuse map. It also implements
// scene.Device (see device.go).
type Renderer struct {
	program *shader.Program

	// 1x1 white, bound when a group's material has no diffuse map so
	// the shader's albedo stays the material color.
	fallbackTex *glTexture
}

// New initializes OpenGL state and compiles the object shader.
// Must be called after the GL context exists.
func New() (*Renderer, error) {
	r := &Renderer{}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	gpuName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", gpuName),
	)

	program, err := shader.Compile(shaders.ObjectVertexShader, shaders.ObjectFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("object shader: %w", err)
	}
	r.program = program

	fallback, err := r.createFallbackTexture()
	if err != nil {
		program.Delete()
		return nil, err
	}
	r.fallbackTex = fallback

	return r, nil
}

func (r *Renderer) createFallbackTexture() (*glTexture, error) {
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.Pix[0], white.Pix[1], white.Pix[2], white.Pix[3] = 255, 255, 255, 255

	tex, err := r.CreateTexture(white, scene.TextureOptions{Kind: scene.TextureColor})
	if err != nil {
		return nil, fmt.Errorf("fallback texture: %w", err)
	}
	return tex.(*glTexture), nil
}

// Close releases renderer-owned resources. Loaded objects release
// their own buffers and textures.
func (r *Renderer) Close() {
	if r.fallbackTex != nil {
		r.fallbackTex.Release()
		r.fallbackTex = nil
	}
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
}

// Draw renders an object with the given transforms, walking its draw
// groups and binding each group's material. Groups whose material is
// hidden are skipped.
func (r *Renderer) Draw(obj *scene.Object, modelMat, view, proj mgl32.Mat4, viewPos, lightDir mgl32.Vec3, channels Channels) {
	if obj == nil || obj.Buffers() == nil {
		return
	}
	mesh, ok := obj.Buffers().(*glMesh)
	if !ok || mesh.vao == 0 {
		return
	}

	// The UI renderer leaves depth testing off each frame.
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r.program.Use()

	mvp := proj.Mul4(view).Mul4(modelMat)
	r.program.SetMat4("uMVP", mvp)
	r.program.SetMat4("uModel", modelMat)
	r.program.SetVec3("uViewPos", viewPos)
	r.program.SetVec3("uLightDir", lightDir)

	r.program.SetInt("uDiffuseMap", 0)
	r.program.SetInt("uNormalMap", 1)
	r.program.SetInt("uRoughnessMap", 2)
	r.program.SetInt("uMetallicMap", 3)

	gl.BindVertexArray(mesh.vao)

	for _, group := range obj.Mesh.Groups {
		mat := obj.MaterialAt(group.Material)
		if !mat.Visible {
			continue
		}

		r.program.SetVec3("uAmbient", mgl32.Vec3(mat.Ambient))
		r.program.SetVec3("uDiffuse", mgl32.Vec3(mat.Diffuse))
		r.program.SetVec3("uSpecular", mgl32.Vec3(mat.Specular))

		r.bindMap(0, "uUseDiffuseMap", mat.DiffuseMap, channels.Diffuse, true)
		r.bindMap(1, "uUseNormalMap", mat.NormalMap, channels.Normal, false)
		r.bindMap(2, "uUseRoughnessMap", mat.RoughnessMap, channels.Roughness, false)
		r.bindMap(3, "uUseMetallicMap", mat.MetallicMap, channels.Metallic, false)

		gl.DrawElementsWithOffset(gl.TRIANGLES, group.IndexCount, gl.UNSIGNED_INT, uintptr(group.StartIndex*4))
	}

	gl.BindVertexArray(0)
}

// bindMap binds one material texture slot and sets its use flag. The
// diffuse unit falls back to white so albedo stays the material color.
func (r *Renderer) bindMap(unit uint32, flag string, tm *scene.TextureMap, enabled, useFallback bool) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)

	tex, _ := tm.Texture().(*glTexture)
	if enabled && tex != nil && tex.id != 0 {
		gl.BindTexture(gl.TEXTURE_2D, tex.id)
		r.program.SetBool(flag, true)
		return
	}

	if useFallback {
		gl.BindTexture(gl.TEXTURE_2D, r.fallbackTex.id)
	} else {
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	r.program.SetBool(flag, false)
}
