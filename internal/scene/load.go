package scene

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a single scene from disk.
func Load(path string) (*Scene, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("scene path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSceneNotFound, path)
		}
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}

	scene, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	scene.Source = path
	return scene, nil
}

// Parse decodes and validates a scene document.
func Parse(data []byte) (*Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, err
	}

	scene.Name = strings.TrimSpace(scene.Name)
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return &scene, nil
}

// Save writes a scene document to disk.
func Save(path string, scene *Scene) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("scene path is required")
	}
	if err := scene.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(scene)
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene %s: %w", path, err)
	}
	return nil
}
