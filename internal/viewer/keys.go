package viewer

import "github.com/veandco/go-sdl2/sdl"

// keyBindings maps scancodes to actions.
var keyBindings = map[sdl.Scancode]Action{
	sdl.SCANCODE_F:      ActionToggleFaceted,
	sdl.SCANCODE_C:      ActionToggleCull,
	sdl.SCANCODE_D:      ActionToggleDepth,
	sdl.SCANCODE_N:      ActionToggleNormals,
	sdl.SCANCODE_G:      ActionToggleGrid,
	sdl.SCANCODE_P:      ActionToggleProjection,
	sdl.SCANCODE_R:      ActionReloadShaders,
	sdl.SCANCODE_L:      ActionReloadModel,
	sdl.SCANCODE_S:      ActionScreenshot,
	sdl.SCANCODE_LEFT:   ActionRotateLeft,
	sdl.SCANCODE_RIGHT:  ActionRotateRight,
	sdl.SCANCODE_HOME:   ActionFitCamera,
	sdl.SCANCODE_ESCAPE: ActionQuit,
	sdl.SCANCODE_Q:      ActionQuit,
}

// repeatable actions also fire on key auto-repeat.
func repeatable(a Action) bool {
	return a == ActionRotateLeft || a == ActionRotateRight
}
