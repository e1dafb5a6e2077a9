package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile    = flag.String("log", "", "Write logs to this file")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFaceted    = flag.Bool("faceted", false, "Shade with per-face normals")
	flagNormals    = flag.Bool("normals", false, "Draw normal lines")
	flagGridW      = flag.Int("grid-width", 0, "Ground grid cells along X")
	flagGridH      = flag.Int("grid-height", 0, "Ground grid cells along Y")
	flagSize       = flag.Int("size", 0, "Rendered image size in pixels")
	flagFormat     = flag.String("format", "", "Rendered image format (webp, png)")
	flagWorkers    = flag.Int("workers", 0, "Parallel render jobs")
	flagVert       = flag.String("vert", "", "Vertex shader file (reload with R)")
	flagFrag       = flag.String("frag", "", "Fragment shader file (reload with R)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagWindowed {
		cfg.Viewer.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
	if *flagFaceted {
		cfg.Viewer.Faceted = true
		cfg.Render.Faceted = true
	}
	if *flagNormals {
		cfg.Viewer.ShowNormals = true
	}
	if *flagGridW > 0 {
		cfg.Grid.Width = *flagGridW
	}
	if *flagGridH > 0 {
		cfg.Grid.Height = *flagGridH
	}
	if *flagSize > 0 {
		cfg.Render.Size = *flagSize
	}
	if *flagFormat != "" {
		cfg.Render.Format = *flagFormat
	}
	if *flagWorkers > 0 {
		cfg.Render.Workers = *flagWorkers
	}
	if *flagVert != "" {
		cfg.Viewer.VertexShader = *flagVert
	}
	if *flagFrag != "" {
		cfg.Viewer.FragShader = *flagFrag
	}
}
