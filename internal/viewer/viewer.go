// Package viewer implements the interactive scene viewer loop.
package viewer

import (
	"errors"
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/lathe/internal/config"
	"github.com/Faultbox/lathe/internal/engine/camera"
	"github.com/Faultbox/lathe/internal/engine/debug"
	"github.com/Faultbox/lathe/internal/engine/input"
	"github.com/Faultbox/lathe/internal/engine/picking"
	"github.com/Faultbox/lathe/internal/engine/renderer"
	"github.com/Faultbox/lathe/internal/engine/window"
	"github.com/Faultbox/lathe/internal/logger"
	"github.com/Faultbox/lathe/internal/scene"
	"github.com/Faultbox/lathe/pkg/math"
	"github.com/Faultbox/lathe/pkg/mesh"
)

// SelectedColor outlines the entry picked with a left click.
var SelectedColor = mesh.RGB{0.1, 1, 0.4}

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	mode   camera.Mode
	opts   camera.Options
	camera camera.Camera

	scenePath string
	scene     *scene.Scene
	meshes    []*renderer.GPUMesh // parallel to scene.Entries
	watcher   *scene.Watcher

	// paths picked in the file dialog, consumed on the main thread
	pendingPath chan string

	screenshots    *debug.ScreenshotCapture
	capturePending bool
	showBounds     bool
	selected       int // entry index, -1 for none
}

// New creates the window, renderer and initial scene.
func New(cfg *config.Config) (*App, error) {
	mode, err := camera.ParseMode(cfg.Camera.Mode)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:         cfg,
		log:         logger.Named("viewer"),
		mode:        mode,
		opts:        cameraOptions(cfg.Camera),
		input:       input.New(),
		pendingPath: make(chan string, 1),
		screenshots: debug.NewScreenshotCapture(cfg.Screenshots.Dir, cfg.Screenshots.Prefix),
		showBounds:  cfg.Render.ShowBounds,
		selected:    -1,
	}

	// Build the scene before touching SDL so a bad file fails fast.
	desc, err := loadDescription(cfg.Scene.Path)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}
	s, err := scene.Build(desc)
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}

	a.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window, since the GL context must exist.
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		ClearColor: s.ClearColor,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer.SetWireframe(cfg.Render.Wireframe)

	if err := a.install(cfg.Scene.Path, s, true); err != nil {
		a.Close()
		return nil, err
	}

	a.log.Info("viewer initialized",
		zap.String("scene", s.Name),
		zap.String("camera", string(a.mode)),
	)
	return a, nil
}

// Run starts the main loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting render loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		a.pollSceneChanges()
		if x, y, ok := a.input.Clicked(); ok {
			a.pick(x, y)
		}

		a.camera.Apply(a.input.Controls(dt), dt)

		a.render()
		if a.capturePending {
			a.captureScreenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.window.SetTitle(fmt.Sprintf("%s - %s [%s] %d fps",
				a.cfg.Window.Title, a.scene.Name, a.mode, frameCount))
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases GPU resources, the watcher and the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if a.renderer != nil {
		a.releaseMeshes(a.meshes)
		a.meshes = nil
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvents() {
	for _, ev := range a.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			a.renderer.Resize(a.window.DrawableSize())
		case input.EventKeyDown:
			if ev.Repeat {
				continue
			}
			a.handleKey(ev.Key)
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false

	case sdl.SCANCODE_TAB:
		a.switchCamera(a.mode.Toggle())

	case sdl.SCANCODE_F:
		a.renderer.SetWireframe(!a.renderer.Wireframe())
		a.log.Debug("wireframe", zap.Bool("on", a.renderer.Wireframe()))

	case sdl.SCANCODE_B:
		a.showBounds = !a.showBounds

	case sdl.SCANCODE_R:
		a.reload(a.scenePath, false)

	case sdl.SCANCODE_O:
		a.openSceneDialog()

	case sdl.SCANCODE_F12:
		a.capturePending = true
	}
}

func (a *App) render() {
	a.renderer.Begin()

	viewProj := a.viewProjection()

	for i, e := range a.scene.Entries {
		a.renderer.Draw(a.meshes[i], viewProj.Mul(e.Model))
	}

	for i, e := range a.scene.Entries {
		switch {
		case i == a.selected:
			a.renderer.DrawLines(debug.BoundsWireframe(e.Mesh.Bounds, e.Model), viewProj, SelectedColor)
		case a.showBounds:
			a.renderer.DrawLines(debug.BoundsWireframe(e.Mesh.Bounds, e.Model), viewProj, debug.DefaultBBoxColor)
		}
	}
}

func (a *App) viewProjection() math.Mat4 {
	return a.camera.Projection(a.renderer.Aspect()).Mul(a.camera.ViewMatrix())
}

// pick selects the entry under window position (x, y), or clears the
// selection when nothing is hit.
func (a *App) pick(x, y int) {
	w, h := a.window.GetSize()
	ray, ok := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), a.viewProjection())
	if !ok {
		return
	}
	i, dist := picking.Nearest(ray, worldBounds(a.scene))
	a.selected = i
	if i < 0 {
		a.log.Debug("nothing picked")
		return
	}
	e := a.scene.Entries[i]
	a.log.Info("entry selected",
		zap.String("name", e.Name),
		zap.Stringer("topology", e.Mesh.Topology),
		zap.Int("vertices", e.Mesh.VertexCount()),
		zap.Float32("distance", dist),
	)
}

func worldBounds(s *scene.Scene) []mesh.Bounds {
	boxes := make([]mesh.Bounds, len(s.Entries))
	for i, e := range s.Entries {
		boxes[i] = e.Bounds
	}
	return boxes
}

func (a *App) captureScreenshot() {
	a.capturePending = false
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

func (a *App) switchCamera(mode camera.Mode) {
	target := a.camera.Target()
	if mode == camera.ModeOrbit {
		_, target = initialView(a.scene)
	}
	cam, err := camera.New(mode, a.camera.Position(), target, a.opts)
	if err != nil {
		a.log.Error("camera switch failed", zap.Error(err))
		return
	}
	a.mode, a.camera = mode, cam
	a.log.Info("camera mode", zap.String("mode", string(mode)))
}

// openSceneDialog shows a native file dialog. The dialog blocks, so it runs
// on its own goroutine and hands the result to the main thread.
func (a *App) openSceneDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Scene files", "yaml", "yml").
			Filter("All Files", "*").
			Title("Open Scene").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				a.log.Warn("file dialog error", zap.Error(err))
			}
			return
		}
		select {
		case a.pendingPath <- filename:
		default:
		}
	}()
}

func (a *App) pollSceneChanges() {
	select {
	case path := <-a.pendingPath:
		a.reload(path, true)
	default:
	}

	if a.watcher == nil {
		return
	}
	select {
	case <-a.watcher.Changes():
		a.log.Info("scene file changed", zap.String("path", a.scenePath))
		a.reload(a.scenePath, false)
	default:
	}
}

// reload rebuilds the scene from path. On any failure the current scene
// stays on screen.
func (a *App) reload(path string, resetCamera bool) {
	desc, err := loadDescription(path)
	if err != nil {
		a.log.Warn("scene reload failed, keeping current scene", zap.String("path", path), zap.Error(err))
		return
	}
	s, err := scene.Build(desc)
	if err != nil {
		a.log.Warn("scene rebuild failed, keeping current scene", zap.String("path", path), zap.Error(err))
		return
	}
	if err := a.install(path, s, resetCamera); err != nil {
		a.log.Warn("scene upload failed, keeping current scene", zap.Error(err))
	}
}

// install uploads s and swaps it in. Nothing changes if any upload fails.
func (a *App) install(path string, s *scene.Scene, resetCamera bool) error {
	meshes := make([]*renderer.GPUMesh, 0, len(s.Entries))
	for _, e := range s.Entries {
		g, err := a.renderer.Upload(e.Mesh)
		if err != nil {
			a.releaseMeshes(meshes)
			return fmt.Errorf("entry %q: %w", e.Name, err)
		}
		meshes = append(meshes, g)
	}

	a.releaseMeshes(a.meshes)
	a.scene, a.meshes = s, meshes
	a.selected = -1
	a.renderer.SetClearColor(s.ClearColor)

	if resetCamera || a.camera == nil {
		eye, target := initialView(s)
		cam, err := camera.New(a.mode, eye, target, a.opts)
		if err != nil {
			return err
		}
		a.camera = cam
	}

	if path != a.scenePath || (a.watcher == nil && path != "") {
		a.scenePath = path
		a.restartWatcher()
	}

	a.log.Info("scene installed",
		zap.String("name", s.Name),
		zap.Int("entries", len(s.Entries)),
		zap.Int("vertices", s.VertexCount()),
	)
	return nil
}

func (a *App) restartWatcher() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if a.scenePath == "" || !a.cfg.Scene.Watch {
		return
	}
	w, err := scene.Watch(a.scenePath, scene.DefaultDebounce)
	if err != nil {
		a.log.Warn("scene hot reload disabled", zap.String("path", a.scenePath), zap.Error(err))
		return
	}
	a.watcher = w
}

func (a *App) releaseMeshes(meshes []*renderer.GPUMesh) {
	for _, g := range meshes {
		a.renderer.Release(g)
	}
}

// loadDescription reads the scene at path, or the built-in room when path
// is empty.
func loadDescription(path string) (*scene.Description, error) {
	if path == "" {
		return scene.Default(), nil
	}
	return scene.Load(path)
}

// cameraOptions converts configured camera settings.
func cameraOptions(cfg config.CameraConfig) camera.Options {
	opts := camera.DefaultOptions()
	if cfg.FOV > 0 {
		opts.FOV = cfg.FOV
	}
	if cfg.MoveSpeed > 0 {
		opts.MoveSpeed = cfg.MoveSpeed
	}
	if cfg.LookSensitivity > 0 {
		opts.LookSensitivity = cfg.LookSensitivity
	}
	if cfg.ZoomSensitivity > 0 {
		opts.ZoomSensitivity = cfg.ZoomSensitivity
	}
	opts.MinHeight = cfg.MinHeight
	opts.MaxHeight = cfg.MaxHeight
	opts.InvertLookY = cfg.InvertLookY
	opts.AutoRotate = cfg.OrbitAutoRotate
	return opts
}

// initialView returns the scene's camera placement, or a view that frames
// the whole scene when none is given.
func initialView(s *scene.Scene) (eye, target math.Vec3) {
	eye = math.V3(s.Camera.Position)
	target = math.V3(s.Camera.Target)
	if eye != target {
		return eye, target
	}
	center := s.Bounds.Center()
	size := s.Bounds.Size().Length()
	if size == 0 {
		size = 10
	}
	return center.Add(math.Vec3{Y: size * 0.4, Z: size}), center
}
