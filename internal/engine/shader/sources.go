package shader

import _ "embed"

// SceneVertexShader transforms colored mesh vertices by uMVP.
//
//go:embed glsl/scene.vert
var SceneVertexShader string

// SceneFragmentShader outputs the interpolated vertex color.
//
//go:embed glsl/scene.frag
var SceneFragmentShader string

// LinesVertexShader transforms position-only debug lines by uMVP.
//
//go:embed glsl/lines.vert
var LinesVertexShader string

// LinesFragmentShader paints debug lines in uColor.
//
//go:embed glsl/lines.frag
var LinesFragmentShader string

// Program names.
const (
	SceneProgram = "scene"
	LinesProgram = "lines"
)
