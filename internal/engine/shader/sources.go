package shader

import _ "embed"

// FlatVertexShader draws geometry in a single color.
//
//go:embed glsl/flat.vert
var FlatVertexShader string

// FlatFragmentShader outputs u_color.
//
//go:embed glsl/flat.frag
var FlatFragmentShader string

// LitVertexShader passes world position and normal to LitFragmentShader.
//
//go:embed glsl/lit.vert
var LitVertexShader string

// LitFragmentShader shades with one directional, one point and one spot light.
//
//go:embed glsl/lit.frag
var LitFragmentShader string
