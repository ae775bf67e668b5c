// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig     `yaml:"window"`
	Camera      CameraConfig     `yaml:"camera"`
	Scene       SceneConfig      `yaml:"scene"`
	Render      RenderConfig     `yaml:"render"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds camera behaviour.
type CameraConfig struct {
	Mode            string  `yaml:"mode"` // "fly" or "orbit"
	FOV             float32 `yaml:"fov"`  // degrees
	MoveSpeed       float32 `yaml:"move_speed"`
	LookSensitivity float32 `yaml:"look_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	MinHeight       float32 `yaml:"min_height"`
	MaxHeight       float32 `yaml:"max_height"`
	InvertLookY     bool    `yaml:"invert_look_y"`
	OrbitAutoRotate float32 `yaml:"orbit_auto_rotate"` // radians per second
}

// SceneConfig selects the scene description.
type SceneConfig struct {
	Path  string `yaml:"path"` // empty uses the built-in room
	Watch bool   `yaml:"watch"`
}

// RenderConfig holds draw toggles.
type RenderConfig struct {
	Wireframe  bool `yaml:"wireframe"`
	ShowBounds bool `yaml:"show_bounds"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "lathe",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			Mode:            "fly",
			FOV:             45,
			MoveSpeed:       6,
			LookSensitivity: 0.1,
			ZoomSensitivity: 2,
			MinHeight:       -5,
			MaxHeight:       40,
		},
		Scene: SceneConfig{
			Watch: true,
		},
		Screenshots: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "lathe",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
