// Package viewer is the interactive PLY model viewer.
package viewer

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/plyview/internal/config"
	"github.com/Faultbox/plyview/internal/engine/camera"
	"github.com/Faultbox/plyview/internal/engine/input"
	"github.com/Faultbox/plyview/internal/engine/renderer"
	"github.com/Faultbox/plyview/internal/engine/renderer/shaders"
	"github.com/Faultbox/plyview/internal/engine/shader"
	"github.com/Faultbox/plyview/internal/engine/window"
	"github.com/Faultbox/plyview/internal/logger"
	"github.com/Faultbox/plyview/internal/snapshot"
	"github.com/Faultbox/plyview/internal/texture"
	"github.com/Faultbox/plyview/pkg/mesh"
	"github.com/Faultbox/plyview/pkg/ply"
)

var (
	gridLight = color.NRGBA{R: 220, G: 220, B: 225, A: 255}
	gridDark  = color.NRGBA{R: 170, G: 170, B: 180, A: 255}

	normalColor = [4]float32{0.9, 0.2, 0.1, 1}
	white       = [4]float32{1, 1, 1, 1}
)

// Viewer owns the window, GPU resources and interaction state.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	win   *window.Window
	rend  *renderer.Renderer
	input *input.Queue
	cam   *camera.OrbitCamera

	modelProgram    *shader.Program
	ornamentProgram *shader.Program

	modelPath    string
	model        *renderer.Mesh
	modelTexture *renderer.Texture
	normals      [2]*renderer.Lines // smooth, faceted

	grid        *renderer.Mesh
	gridTexture *renderer.Texture

	bounds     [2]mgl32.Vec3 // Current model bounds
	settings   Settings
	modelAngle float32
	capture    *snapshot.Capture
}

// New opens the window and builds GPU state. The viewer starts with no model.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:   cfg,
		log:   logger.Named("viewer"),
		input: input.NewQueue(),
		cam:   camera.NewOrbitCamera(),
		settings: Settings{
			Faceted:     cfg.Viewer.Faceted,
			CullFaces:   cfg.Viewer.CullFaces,
			DepthTest:   cfg.Viewer.DepthTest,
			ShowNormals: cfg.Viewer.ShowNormals,
			ShowGrid:    cfg.Viewer.ShowGrid,
		},
		capture: snapshot.NewCapture("", "plyview", cfg.Render.Format),
	}

	var err error
	v.win, err = window.New(window.Config{
		Title:      "plyview",
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w, h := v.win.DrawableSize()
	v.rend, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		v.win.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	v.ornamentProgram, err = shader.NewProgram(shaders.OrnamentVertexShader, shaders.OrnamentFragmentShader)
	if err != nil {
		v.win.Close()
		return nil, fmt.Errorf("building ornament shaders: %w", err)
	}
	if err := v.buildModelProgram(); err != nil {
		v.ornamentProgram.Delete()
		v.win.Close()
		return nil, err
	}

	if err := v.buildGrid(); err != nil {
		v.Close()
		return nil, err
	}
	return v, nil
}

// modelSources returns the model shader pair. Each stage comes from its
// configured file, or the embedded default when none is set.
func (v *Viewer) modelSources() (string, string, error) {
	vert, err := readShader(v.cfg.Viewer.VertexShader, shaders.ModelVertexShader)
	if err != nil {
		return "", "", err
	}
	frag, err := readShader(v.cfg.Viewer.FragShader, shaders.ModelFragmentShader)
	if err != nil {
		return "", "", err
	}
	return vert, frag, nil
}

func readShader(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading shader: %w", err)
	}
	return string(src), nil
}

// buildModelProgram builds the model program on startup. Broken user
// shaders fall back to the defaults so the viewer still opens.
func (v *Viewer) buildModelProgram() error {
	vert, frag, err := v.modelSources()
	if err == nil {
		v.modelProgram, err = shader.NewProgram(vert, frag)
	}
	if err == nil {
		return nil
	}

	v.log.Warn("user shaders failed, using defaults", zap.Error(err))
	v.modelProgram, err = shader.NewProgram(shaders.ModelVertexShader, shaders.ModelFragmentShader)
	if err != nil {
		return fmt.Errorf("building model shaders: %w", err)
	}
	return nil
}

// ReloadShaders rebuilds the model program from its sources. On error the
// previous program stays active.
func (v *Viewer) ReloadShaders() error {
	vert, frag, err := v.modelSources()
	if err != nil {
		return err
	}
	if err := v.modelProgram.Rebuild(vert, frag); err != nil {
		return err
	}
	v.log.Info("shader program built successfully")
	return nil
}

func (v *Viewer) buildGrid() error {
	buf, err := mesh.Grid(v.cfg.Grid.Width, v.cfg.Grid.Height)
	if err != nil {
		return fmt.Errorf("building grid: %w", err)
	}
	v.grid = renderer.UploadMesh(buf)

	img := texture.Checker(64, 2, gridLight, gridDark)
	if path := v.cfg.Grid.Texture; path != "" {
		loaded, err := texture.Load(path, true)
		if err != nil {
			v.log.Warn("grid texture unavailable, using checker", zap.String("path", path), zap.Error(err))
		} else {
			img = loaded
		}
	}
	v.gridTexture = renderer.UploadTexture(img)

	v.log.Debug("grid built",
		zap.Int("width", v.cfg.Grid.Width),
		zap.Int("height", v.cfg.Grid.Height),
		zap.Int("vertices", buf.Vertices),
	)
	return nil
}

// LoadModel parses, assembles and uploads a PLY file, replacing the current
// model. The texture is taken from the derived "-texture.png" path when
// present. On error the current model is kept.
func (v *Viewer) LoadModel(path string) error {
	m, err := ply.ParseFile(path)
	if err != nil {
		return err
	}
	buf, err := mesh.Assemble(m)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	v.releaseModel()
	v.modelPath = path
	v.model = renderer.UploadMesh(buf)
	v.model.SetFaceted(v.settings.Faceted)

	length := v.cfg.Viewer.NormalLength
	v.normals[0] = renderer.UploadLines(mesh.NormalLines(buf, false, length))
	v.normals[1] = renderer.UploadLines(mesh.NormalLines(buf, true, length))

	texPath := texture.PathForModel(path)
	img, err := texture.Load(texPath, true)
	switch {
	case err == nil:
		v.modelTexture = renderer.UploadTexture(img)
	case errors.Is(err, texture.ErrNoTexture):
		v.log.Debug("no model texture", zap.String("path", texPath))
	default:
		v.log.Warn("model texture unreadable", zap.String("path", texPath), zap.Error(err))
	}

	lo, hi := buf.Bounds()
	v.bounds = [2]mgl32.Vec3{lo, hi}
	v.cam.FitToBounds(lo, hi)
	v.win.SetTitle("plyview - " + filepath.Base(path))

	v.log.Info("model loaded",
		zap.String("path", path),
		zap.Int("triangles", buf.Triangles()),
		zap.Bool("textured", v.modelTexture != nil),
	)
	return nil
}

func (v *Viewer) releaseModel() {
	if v.model != nil {
		v.model.Delete()
		v.model = nil
	}
	if v.modelTexture != nil {
		v.modelTexture.Delete()
		v.modelTexture = nil
	}
	for i, l := range v.normals {
		if l != nil {
			l.Delete()
			v.normals[i] = nil
		}
	}
}

// Run processes events and draws frames until the window is closed.
func (v *Viewer) Run() error {
	for {
		if quit := v.handleEvents(v.input.Poll()); quit {
			return nil
		}
		v.draw()
		v.win.Swap()
	}
}

// handleEvents applies one frame of input. It returns true on quit.
func (v *Viewer) handleEvents(events []input.Event) bool {
	for _, e := range events {
		switch e.Kind {
		case input.Quit:
			return true

		case input.Resize:
			v.rend.Resize(v.win.DrawableSize())

		case input.Key:
			a, ok := keyBindings[e.Key]
			if !ok || (e.Repeat && !repeatable(a)) {
				continue
			}
			if v.perform(a) {
				return true
			}

		case input.Drag:
			v.cam.HandleDrag(e.DX, e.DY)

		case input.Zoom:
			v.cam.HandleZoom(e.Steps)

		case input.Drop:
			if err := v.LoadModel(e.Path); err != nil {
				v.log.Error("failed to load model", zap.String("path", e.Path), zap.Error(err))
			}
		}
	}
	return false
}

// perform executes a keyboard action. It returns true on quit.
func (v *Viewer) perform(a Action) bool {
	if v.settings.Toggle(a) {
		if a == ActionToggleFaceted && v.model != nil {
			v.model.SetFaceted(v.settings.Faceted)
		}
		v.log.Debug("toggled", zap.Stringer("action", a), zap.Any("settings", v.settings))
		return false
	}

	switch a {
	case ActionToggleProjection:
		p := v.cam.ToggleProjection()
		v.log.Debug("projection changed", zap.Stringer("projection", p))
	case ActionReloadShaders:
		if err := v.ReloadShaders(); err != nil {
			v.log.Error("shader reload failed", zap.Error(err))
		}
	case ActionReloadModel:
		if v.modelPath != "" {
			if err := v.LoadModel(v.modelPath); err != nil {
				v.log.Error("failed to reload model", zap.Error(err))
			}
		}
	case ActionScreenshot:
		v.draw()
		pixels, w, h := v.rend.ReadPixels()
		path, err := v.capture.CapturePixels(pixels, w, h)
		if err != nil {
			v.log.Error("screenshot failed", zap.Error(err))
		} else {
			v.log.Info("screenshot saved", zap.String("path", path))
		}
	case ActionRotateLeft:
		v.modelAngle = wrapDegrees(v.modelAngle - RotateStep)
	case ActionRotateRight:
		v.modelAngle = wrapDegrees(v.modelAngle + RotateStep)
	case ActionFitCamera:
		projection := v.cam.Projection
		v.cam = camera.NewOrbitCamera()
		v.cam.Projection = projection
		if v.model != nil {
			v.cam.FitToBounds(v.bounds[0], v.bounds[1])
		}
	case ActionQuit:
		return true
	}
	return false
}

func (v *Viewer) draw() {
	view := v.cam.ViewMatrix()
	proj := v.cam.ProjectionMatrix(v.rend.Aspect())
	model := mgl32.HomogRotate3DZ(mgl32.DegToRad(v.modelAngle))
	normalMatrix := view.Mul4(model).Inv().Transpose()

	v.rend.Begin(renderer.State{
		CullFaces: v.settings.CullFaces,
		DepthTest: v.settings.DepthTest,
	})

	if v.model != nil {
		p := v.modelProgram
		p.Use()
		p.SetMat4("uModel", model)
		p.SetMat4("uView", view)
		p.SetMat4("uProjection", proj)
		p.SetMat4("uNormalMatrix", normalMatrix)
		p.SetInt("uTexture", 0)
		if v.modelTexture != nil {
			v.modelTexture.Bind(0)
			p.SetInt("uHasTexture", 1)
		} else {
			p.SetInt("uHasTexture", 0)
		}
		v.model.Draw()
	}

	v.rend.BeginOrnaments()

	p := v.ornamentProgram
	p.Use()
	p.SetMat4("uView", view)
	p.SetMat4("uProjection", proj)
	p.SetInt("uTexture", 0)

	if v.settings.ShowGrid {
		identity := mgl32.Ident4()
		p.SetMat4("uModel", identity)
		p.SetInt("uUseTexture", 1)
		p.SetVec4("uColor", white)
		v.gridTexture.Bind(0)
		v.grid.Draw()
	}

	if v.settings.ShowNormals && v.model != nil {
		idx := 0
		if v.settings.Faceted {
			idx = 1
		}
		p.SetMat4("uModel", model)
		p.SetInt("uUseTexture", 0)
		p.SetVec4("uColor", normalColor)
		v.normals[idx].Draw()
	}
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	v.releaseModel()
	if v.grid != nil {
		v.grid.Delete()
	}
	if v.gridTexture != nil {
		v.gridTexture.Delete()
	}
	if v.modelProgram != nil {
		v.modelProgram.Delete()
	}
	if v.ornamentProgram != nil {
		v.ornamentProgram.Delete()
	}
	v.win.Close()
}
