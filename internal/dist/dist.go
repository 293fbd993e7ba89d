// Package dist resolves the distribution version from the Android
// project's gradle.properties.
package dist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/stethoproject/stpack/internal/props"
)

const (
	// PropertiesFile is the well-known gradle properties file name.
	PropertiesFile = "gradle.properties"

	// VersionKey is the property holding the distribution version.
	VersionKey = "VERSION_NAME"
)

// PropertiesPath computes the gradle.properties location for an anchor:
// two directory levels above the anchor's directory.
func PropertiesPath(anchorPath string) string {
	return filepath.Join(filepath.Dir(anchorPath), "..", "..", PropertiesFile)
}

// Resolve reads the version from the gradle.properties file located
// relative to anchorPath. Single-shot: no caching, no retry.
//
// Errors: a wrapped fs.ErrNotExist when the file is missing,
// props.ErrMissingKey when VERSION_NAME is absent, and *props.ParseError
// for a malformed line. The version value itself is passed through
// verbatim, with no format validation.
func Resolve(anchorPath string) (string, error) {
	return ResolveFile(PropertiesPath(anchorPath), VersionKey)
}

// ResolveFile reads key from the flat properties file at path.
func ResolveFile(path, key string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := props.Parse(f)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}

	version, err := doc.Get(props.DefaultSection, key)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return version, nil
}
