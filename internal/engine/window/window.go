// Package window opens the SDL2 window and its OpenGL 4.1 core context.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/plyview/internal/logger"
)

func init() {
	// GL contexts are bound to the thread that created them.
	runtime.LockOSThread()
}

// Config describes the window to open.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Samples    int // MSAA samples, 0 disables
}

type glAttribute struct {
	attr  sdl.GLattr
	value int
}

// glAttributes lists the context attributes to set before the window exists.
// 4.1 core is the newest profile macOS offers.
func glAttributes(samples int) []glAttribute {
	attrs := []glAttribute{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
		{sdl.GL_CONTEXT_MINOR_VERSION, 1},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_DOUBLEBUFFER, 1},
		{sdl.GL_DEPTH_SIZE, 24},
	}
	if samples > 0 {
		attrs = append(attrs,
			glAttribute{sdl.GL_MULTISAMPLEBUFFERS, 1},
			glAttribute{sdl.GL_MULTISAMPLESAMPLES, samples},
		)
	}
	return attrs
}

// Window owns the SDL window and its GL context.
type Window struct {
	win *sdl.Window
	ctx sdl.GLContext
	log *zap.Logger
}

// New initializes SDL video and opens a resizable GL window.
func New(cfg Config) (*Window, error) {
	w := &Window{log: logger.Named("window")}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}
	for _, a := range glAttributes(cfg.Samples) {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			sdl.Quit()
			return nil, fmt.Errorf("setting GL attribute %d: %w", a.attr, err)
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.win, err = sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w.ctx, err = w.win.GLCreateContext()
	if err != nil {
		w.win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("creating GL context: %w", err)
	}

	w.setSwapInterval(cfg.VSync)

	dw, dh := w.DrawableSize()
	w.log.Info("window created",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("drawable_width", dw),
		zap.Int("drawable_height", dh),
		zap.Int("samples", cfg.Samples),
		zap.Bool("fullscreen", cfg.Fullscreen),
	)
	return w, nil
}

// setSwapInterval prefers adaptive vsync and falls back to plain vsync.
func (w *Window) setSwapInterval(vsync bool) {
	if !vsync {
		sdl.GLSetSwapInterval(0)
		return
	}
	if err := sdl.GLSetSwapInterval(-1); err == nil {
		return
	}
	if err := sdl.GLSetSwapInterval(1); err != nil {
		w.log.Warn("vsync unavailable", zap.Error(err))
	}
}

// Swap presents the back buffer.
func (w *Window) Swap() {
	w.win.GLSwap()
}

// DrawableSize returns the framebuffer size in pixels, which differs from
// the window size on high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.win.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

// Close releases the context and window, then shuts SDL down.
func (w *Window) Close() {
	if w.ctx != nil {
		sdl.GLDeleteContext(w.ctx)
	}
	if w.win != nil {
		w.win.Destroy()
	}
	sdl.Quit()
	w.log.Debug("window closed")
}
