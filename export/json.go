package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"routeboard/diagram"
)

// LoadScene decodes a scene file and validates it. Missing or clashing IDs are
// renumbered before validation.
func LoadScene(r io.Reader) (*diagram.Scene, error) {
	var scene diagram.Scene
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&scene); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	diagram.EnsureUniqueIDs(&scene)
	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	return &scene, nil
}

// SaveScene writes scene as indented JSON.
func SaveScene(w io.Writer, scene *diagram.Scene) error {
	data, err := json.MarshalIndent(scene, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// LoadSceneFile reads a scene from path.
func LoadSceneFile(path string) (*diagram.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene: %w", err)
	}
	defer f.Close()
	return LoadScene(f)
}

// SaveSceneFile writes scene to path, replacing any existing file.
func SaveSceneFile(path string, scene *diagram.Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := SaveScene(f, scene); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type jsonExporter struct{}

func (jsonExporter) Extension() string { return ".json" }

func (jsonExporter) Export(w io.Writer, scene *diagram.Scene) error {
	return SaveScene(w, scene)
}
