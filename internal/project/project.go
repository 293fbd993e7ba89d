package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/stethoproject/stpack/internal/dist"
)

// Project identifies the packaging run by its anchor: the file-system
// location of the running tool, from which resource paths are computed.
type Project struct {
	// AnchorPath is the normalized absolute path of the anchor.
	AnchorPath string

	// PropertiesPath is the anchor-relative gradle.properties location.
	PropertiesPath string

	// DisplayName is a human-readable name derived from the directory
	// holding gradle.properties (the project root).
	DisplayName string
}

// Resolve creates a Project from an absolute anchor path.
// The path is normalized (trailing slashes removed, cleaned).
// Returns an error if the path is empty or not absolute.
func Resolve(anchorPath string) (Project, error) {
	if anchorPath == "" {
		return Project{}, fmt.Errorf("anchor path cannot be empty")
	}

	cleaned := filepath.Clean(anchorPath)

	if !filepath.IsAbs(cleaned) {
		return Project{}, fmt.Errorf("anchor path must be absolute: %s", anchorPath)
	}

	propsPath := dist.PropertiesPath(cleaned)

	return Project{
		AnchorPath:     cleaned,
		PropertiesPath: propsPath,
		DisplayName:    deriveName(propsPath),
	}, nil
}

// DefaultAnchor returns the running executable's path, the compiled
// analogue of a script's own location.
func DefaultAnchor() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	// Resolve symlinks so the anchor reflects the install location.
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return exe, nil
	}
	return resolved, nil
}

// deriveName extracts a display name from the properties file path.
// Uses the name of the directory containing gradle.properties.
func deriveName(propsPath string) string {
	name := filepath.Base(filepath.Dir(propsPath))
	if name == "/" || name == "." {
		return "/"
	}
	return name
}
