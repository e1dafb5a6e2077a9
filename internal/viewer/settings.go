package viewer

// Settings are the display toggles changed from the keyboard.
type Settings struct {
	Faceted     bool
	CullFaces   bool
	DepthTest   bool
	ShowNormals bool
	ShowGrid    bool
}

// Action is a keyboard command.
type Action int

const (
	ActionNone Action = iota
	ActionToggleFaceted
	ActionToggleCull
	ActionToggleDepth
	ActionToggleNormals
	ActionToggleGrid
	ActionToggleProjection
	ActionReloadShaders
	ActionReloadModel
	ActionScreenshot
	ActionRotateLeft
	ActionRotateRight
	ActionFitCamera
	ActionQuit
)

var actionNames = map[Action]string{
	ActionToggleFaceted:    "faceted",
	ActionToggleCull:       "cull",
	ActionToggleDepth:      "depth",
	ActionToggleNormals:    "normals",
	ActionToggleGrid:       "grid",
	ActionToggleProjection: "projection",
	ActionReloadShaders:    "reload-shaders",
	ActionReloadModel:      "reload-model",
	ActionScreenshot:       "screenshot",
	ActionRotateLeft:       "rotate-left",
	ActionRotateRight:      "rotate-right",
	ActionFitCamera:        "fit",
	ActionQuit:             "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// Toggle flips the setting an action controls. It reports false for
// actions that are not simple toggles.
func (s *Settings) Toggle(a Action) bool {
	switch a {
	case ActionToggleFaceted:
		s.Faceted = !s.Faceted
	case ActionToggleCull:
		s.CullFaces = !s.CullFaces
	case ActionToggleDepth:
		s.DepthTest = !s.DepthTest
	case ActionToggleNormals:
		s.ShowNormals = !s.ShowNormals
	case ActionToggleGrid:
		s.ShowGrid = !s.ShowGrid
	default:
		return false
	}
	return true
}

// RotateStep is the model rotation per arrow key press, in degrees.
const RotateStep = 5

// wrapDegrees maps an angle into [0, 360).
func wrapDegrees(d float32) float32 {
	for d >= 360 {
		d -= 360
	}
	for d < 0 {
		d += 360
	}
	return d
}
