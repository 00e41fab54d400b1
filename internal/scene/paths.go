package scene

import (
	"os"
	"path/filepath"
	"strings"
)

// Extensions recognized as scene files.
var sceneExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
}

// IsSceneFile reports whether the path looks like a scene document.
func IsSceneFile(path string) bool {
	return sceneExtensions[strings.ToLower(filepath.Ext(path))]
}

// ListSceneFiles returns the scene file paths in a directory, sorted by
// name. A missing directory yields an empty list.
func ListSceneFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !IsSceneFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}
