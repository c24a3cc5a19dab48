package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"mirror-hall", "Mirror Hall"},
		{"two_lights", "Two Lights"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
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

func TestParseJSONMetadata(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.json",
			content: `{"name": "Mirror Hall", "variant": "Two Lights", "description": "Facing mirrors",
				"group": "Reflections", "objects": []}`,
			expected: SceneInfo{
				ID:          "complete_metadata",
				Name:        "Mirror Hall",
				DisplayName: "Mirror Hall - Two Lights",
				Description: "Facing mirrors",
				Group:       "Reflections",
				Type:        "json",
				Variant:     "Two Lights",
			},
		},
		{
			name:    "no-metadata.json",
			content: `{"objects": []}`,
			expected: SceneInfo{
				ID:          "no-metadata",
				Name:        "No Metadata", // From filename
				DisplayName: "No Metadata",
				Group:       "Scene Files", // Default group
				Type:        "json",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, dir, tc.name, tc.content)

			result, err := ParseJSONMetadata(path)
			if err != nil {
				t.Fatalf("ParseJSONMetadata() error: %v", err)
			}

			tc.expected.FilePath = path
			if result != tc.expected {
				t.Errorf("ParseJSONMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestParseJSONMetadata_Invalid(t *testing.T) {
	dir := t.TempDir()

	// Missing and malformed files keep the filename fallbacks but report the problem
	for _, path := range []string{
		filepath.Join(dir, "missing.json"),
		writeFile(t, dir, "broken.json", `{"name": `),
	} {
		result, err := ParseJSONMetadata(path)
		if err == nil {
			t.Errorf("%s: expected an error", path)
		}
		if result.ID == "" || result.DisplayName == "" {
			t.Errorf("%s: expected fallback fields, got %+v", path, result)
		}
	}
}

func TestListJSONScenes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "zeta.json", `{"name": "Zeta"}`)
	writeFile(t, dir, "alpha.json", `{"name": "Alpha"}`)
	writeFile(t, dir, "notes.txt", `not a scene`)

	scenes, err := ListJSONScenes(dir)
	if err != nil {
		t.Fatalf("ListJSONScenes() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(scenes))
	}
	if scenes[0].Name != "Alpha" || scenes[1].Name != "Zeta" {
		t.Errorf("Expected scenes sorted by display name, got %s, %s", scenes[0].Name, scenes[1].Name)
	}

	empty, err := ListJSONScenes("")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("Expected an empty, non-nil list without a directory, got %v (%v)", empty, err)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mirrors.json", `{"name": "Mirrors", "group": "Reflections"}`)
	writeFile(t, dir, "room.json", `{"name": "Room"}`)

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	expectedGroups := []string{BuiltInGroup, "Reflections", "Scene Files"}
	if len(response.Groups) != len(expectedGroups) {
		t.Fatalf("Expected %d groups, got %d", len(expectedGroups), len(response.Groups))
	}
	for i, name := range expectedGroups {
		if response.Groups[i].Name != name {
			t.Errorf("Group %d: expected %q, got %q", i, name, response.Groups[i].Name)
		}
	}

	builtIn := response.Groups[0].Scenes
	if len(builtIn) != 1 || builtIn[0].ID != "default" {
		t.Errorf("Expected the default built-in scene, got %+v", builtIn)
	}
}
