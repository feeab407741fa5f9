package scene

import (
	"strings"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"hollow-glass", "Hollow Glass"},
		{"single_sphere", "Single Sphere"},
		{"spheres", "Spheres"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestListScenes(t *testing.T) {
	expected := []string{"hollow-glass", "quads", "single-sphere", "spheres"}
	names := ListScenes()
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected %v, got %v", expected, names)
	}

	infos := ListSceneInfo()
	if len(infos) != len(expected) {
		t.Fatalf("Expected %d scene infos, got %d", len(expected), len(infos))
	}
	for _, info := range infos {
		if info.DisplayName == "" || info.Description == "" {
			t.Errorf("Scene %q is missing metadata: %+v", info.ID, info)
		}
	}
}

func TestNewScene(t *testing.T) {
	for _, name := range ListScenes() {
		t.Run(name, func(t *testing.T) {
			s, err := NewScene(name, 60, 40, 7)
			if err != nil {
				t.Fatalf("NewScene(%q): %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if s.GetWorld() == nil || s.GetCamera() == nil {
				t.Fatal("Scene must have a world and a camera")
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("Scene should not be empty")
			}
			if err := s.SamplingConfig.Validate(); err != nil {
				t.Errorf("Recommended sampling config is invalid: %v", err)
			}
			if s.SamplingConfig.Width != 60 || s.SamplingConfig.Height != 40 || s.SamplingConfig.Seed != 7 {
				t.Errorf("Unexpected sampling config %+v", s.SamplingConfig)
			}
			if s.CameraConfig.AspectRatio != 1.5 {
				t.Errorf("Expected aspect ratio 1.5, got %f", s.CameraConfig.AspectRatio)
			}
		})
	}
}

func TestNewScene_Unknown(t *testing.T) {
	_, err := NewScene("teapot", 10, 10, 1)
	if err == nil {
		t.Fatal("Expected an error for an unknown scene")
	}
	if !strings.Contains(err.Error(), "teapot") || !strings.Contains(err.Error(), "spheres") {
		t.Errorf("Error should name the scene and the alternatives: %v", err)
	}
}
