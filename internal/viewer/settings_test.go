package viewer

import "testing"

func TestSettingsToggle(t *testing.T) {
	tests := []struct {
		action Action
		get    func(Settings) bool
	}{
		{ActionToggleFaceted, func(s Settings) bool { return s.Faceted }},
		{ActionToggleCull, func(s Settings) bool { return s.CullFaces }},
		{ActionToggleDepth, func(s Settings) bool { return s.DepthTest }},
		{ActionToggleNormals, func(s Settings) bool { return s.ShowNormals }},
		{ActionToggleGrid, func(s Settings) bool { return s.ShowGrid }},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			var s Settings
			if !s.Toggle(tt.action) {
				t.Fatal("expected Toggle to handle action")
			}
			if !tt.get(s) {
				t.Error("expected setting on after first toggle")
			}
			s.Toggle(tt.action)
			if tt.get(s) {
				t.Error("expected setting off after second toggle")
			}
		})
	}
}

func TestSettingsToggleIgnoresOtherActions(t *testing.T) {
	for _, a := range []Action{ActionNone, ActionToggleProjection, ActionReloadShaders, ActionQuit} {
		s := Settings{}
		if s.Toggle(a) {
			t.Errorf("Toggle(%v) = true, want false", a)
		}
		if s != (Settings{}) {
			t.Errorf("Toggle(%v) changed settings: %+v", a, s)
		}
	}
}

func TestKeyBindings(t *testing.T) {
	bound := make(map[Action]bool)
	for _, a := range keyBindings {
		bound[a] = true
	}
	for a := ActionToggleFaceted; a <= ActionQuit; a++ {
		if !bound[a] {
			t.Errorf("action %v has no key", a)
		}
	}
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{365, 5},
		{-5, 355},
		{720, 0},
	}
	for _, tt := range tests {
		if got := wrapDegrees(tt.in); got != tt.want {
			t.Errorf("wrapDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
