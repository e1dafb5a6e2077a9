// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// ModelVertexShader is the default vertex shader for PLY models. User
// shaders loaded with -vert replace it and see the same attributes and
// uniforms.
//
//go:embed model.vert
var ModelVertexShader string

// ModelFragmentShader is the default fragment shader for PLY models.
//
//go:embed model.frag
var ModelFragmentShader string

// OrnamentVertexShader draws the ground grid and normal lines.
//
//go:embed ornament.vert
var OrnamentVertexShader string

// OrnamentFragmentShader draws the ground grid and normal lines.
//
//go:embed ornament.frag
var OrnamentFragmentShader string
