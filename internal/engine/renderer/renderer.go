// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lathe/internal/engine/shader"
	"github.com/Faultbox/lathe/internal/logger"
	"github.com/Faultbox/lathe/pkg/math"
	"github.com/Faultbox/lathe/pkg/mesh"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor mesh.RGB
}

// GPUMesh is a mesh uploaded to vertex and index buffers.
type GPUMesh struct {
	vao, vbo, ebo uint32
	count         int32
	mode          uint32
	Topology      mesh.Topology
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	sceneProgram *shader.Program
	linesProgram *shader.Program

	// streaming buffer for debug lines
	linesVAO uint32
	linesVBO uint32
	linesCap int

	wireframe bool
	uploaded  int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	r.SetClearColor(cfg.ClearColor)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.sceneProgram, err = shader.New(shader.SceneProgram, shader.SceneVertexShader, shader.SceneFragmentShader)
	if err != nil {
		return nil, err
	}
	r.linesProgram, err = shader.New(shader.LinesProgram, shader.LinesVertexShader, shader.LinesFragmentShader)
	if err != nil {
		r.sceneProgram.Delete()
		return nil, err
	}

	gl.GenVertexArrays(1, &r.linesVAO)
	gl.GenBuffers(1, &r.linesVBO)

	return r, nil
}

// Close cleans up renderer resources. Uploaded meshes must be released by
// their owners first.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.uploaded != 0 {
		logger.Warn("meshes still uploaded at close", zap.Int("count", r.uploaded))
	}
	if r.linesVAO != 0 {
		gl.DeleteVertexArrays(1, &r.linesVAO)
	}
	if r.linesVBO != 0 {
		gl.DeleteBuffers(1, &r.linesVBO)
	}
	if r.sceneProgram != nil {
		r.sceneProgram.Delete()
	}
	if r.linesProgram != nil {
		r.linesProgram.Delete()
	}
}

// SetClearColor sets the background color.
func (r *Renderer) SetClearColor(c mesh.RGB) {
	r.config.ClearColor = c
	gl.ClearColor(c[0], c[1], c[2], 1.0)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Aspect returns width/height of the viewport.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetWireframe switches polygon fill mode.
func (r *Renderer) SetWireframe(on bool) {
	r.wireframe = on
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// Wireframe reports whether wireframe mode is on.
func (r *Renderer) Wireframe() bool {
	return r.wireframe
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Upload copies m into GPU buffers. Position is bound to attribute 0 and
// color to attribute 1.
func (r *Renderer) Upload(m *mesh.Mesh) (*GPUMesh, error) {
	if err := checkMesh(m); err != nil {
		return nil, err
	}

	g := &GPUMesh{
		count:    int32(len(m.Indices)),
		mode:     drawMode(m.Topology),
		Topology: m.Topology,
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	stride := int32(mesh.VertexStride * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, mesh.ColorOffset*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	r.uploaded++
	logger.Debug("mesh uploaded",
		zap.Uint32("vao", g.vao),
		zap.Stringer("topology", m.Topology),
		zap.Int32("indices", g.count),
	)
	return g, nil
}

// Draw renders g with the given model-view-projection matrix.
func (r *Renderer) Draw(g *GPUMesh, mvp math.Mat4) {
	r.sceneProgram.Use()
	r.sceneProgram.SetMat4("uMVP", mvp)
	if r.wireframe {
		r.sceneProgram.SetFloat("uTint", 0.35)
	} else {
		r.sceneProgram.SetFloat("uTint", 0)
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(g.mode, g.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// DrawLines renders position-only line segments (x, y, z per vertex, two
// vertices per segment) in a flat color. Lines always draw filled.
func (r *Renderer) DrawLines(vertices []float32, mvp math.Mat4, color mesh.RGB) {
	if len(vertices) < 6 {
		return
	}

	gl.BindVertexArray(r.linesVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.linesVBO)
	size := len(vertices) * 4
	if size > r.linesCap {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&vertices[0]), gl.DYNAMIC_DRAW)
		r.linesCap = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&vertices[0]))
	}
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	r.linesProgram.Use()
	r.linesProgram.SetMat4("uMVP", mvp)
	r.linesProgram.SetVec3("uColor", color)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/3))
	gl.BindVertexArray(0)
}

// ReadPixels returns the back buffer as tightly packed RGBA rows, bottom row
// first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// Release frees the buffers of g. Releasing twice is a no-op.
func (r *Renderer) Release(g *GPUMesh) {
	if g == nil || g.vao == 0 {
		return
	}
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
	g.vao, g.vbo, g.ebo = 0, 0, 0
	r.uploaded--
}

func drawMode(t mesh.Topology) uint32 {
	if t == mesh.TriangleStrip {
		return gl.TRIANGLE_STRIP
	}
	return gl.TRIANGLES
}

var errEmptyMesh = errors.New("empty mesh")

func checkMesh(m *mesh.Mesh) error {
	if m == nil || len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return errEmptyMesh
	}
	if len(m.Vertices)%mesh.VertexStride != 0 {
		return fmt.Errorf("vertex data length %d is not a multiple of %d", len(m.Vertices), mesh.VertexStride)
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("index %d at %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}
