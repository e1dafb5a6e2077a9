// Package config handles plyview configuration loading and management.
package config

// Config holds all settings shared by plyview and plytool.
type Config struct {
	Viewer  ViewerConfig  `yaml:"viewer"`
	Grid    GridConfig    `yaml:"grid"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// ViewerConfig holds window and interactive display settings.
type ViewerConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Fullscreen   bool    `yaml:"fullscreen"`
	VSync        bool    `yaml:"vsync"`
	Faceted      bool    `yaml:"faceted"`      // Shade with face normals
	CullFaces    bool    `yaml:"cull_faces"`   // Back-face culling
	DepthTest    bool    `yaml:"depth_test"`   // Depth testing
	ShowNormals  bool    `yaml:"show_normals"` // Draw normal lines
	ShowGrid     bool    `yaml:"show_grid"`
	NormalLength float32 `yaml:"normal_length"`
	VertexShader string  `yaml:"vertex_shader"`   // Optional GLSL file, reloadable
	FragShader   string  `yaml:"fragment_shader"` // Optional GLSL file, reloadable
}

// GridConfig holds ground grid settings.
type GridConfig struct {
	Width   int    `yaml:"width"`   // Cells along X
	Height  int    `yaml:"height"`  // Cells along Y
	Texture string `yaml:"texture"` // Optional image; a checker is generated otherwise
}

// RenderConfig holds software renderer settings.
type RenderConfig struct {
	Size        int    `yaml:"size"`        // Output edge length in pixels
	Supersample int    `yaml:"supersample"` // Render at Size*Supersample, then downscale
	Format      string `yaml:"format"`      // "webp" or "png"
	Workers     int    `yaml:"workers"`     // Parallel render jobs
	Faceted     bool   `yaml:"faceted"`
	Background  string `yaml:"background"` // Hex RGBA, e.g. "1a1a26ff"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Width:        1280,
			Height:       720,
			Fullscreen:   false,
			VSync:        true,
			Faceted:      false,
			CullFaces:    true,
			DepthTest:    true,
			ShowNormals:  false,
			ShowGrid:     true,
			NormalLength: 0.25,
		},
		Grid: GridConfig{
			Width:  10,
			Height: 10,
		},
		Render: RenderConfig{
			Size:        512,
			Supersample: 2,
			Format:      "webp",
			Workers:     4,
			Faceted:     false,
			Background:  "00000000",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
