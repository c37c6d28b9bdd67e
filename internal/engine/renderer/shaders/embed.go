// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// ObjectVertexShader is the vertex shader for model rendering.
//
//go:embed object.vert
var ObjectVertexShader string

// ObjectFragmentShader is the fragment shader for model rendering.
//
//go:embed object.frag
var ObjectFragmentShader string
